// Package config loads phpstyle's tool configuration.
//
// Values are layered, lowest to highest precedence: built-in defaults, the
// phpstyle.yaml file, PHPSTYLE_* environment variables, and command-line
// flags that were explicitly set.
package config

// Config holds the resolved tool configuration.
type Config struct {
	// Standard is the name of the coding standard to check against.
	Standard string `koanf:"standard"`

	// StandardsDir holds user standard definitions (<Name>.yaml).
	StandardsDir string `koanf:"standards_dir"`

	// RulesDir holds Starlark rule scripts (*.star).
	RulesDir string `koanf:"rules_dir"`

	Checkstyle string `koanf:"checkstyle"` // checkstyle XML report path
	JSON       string `koanf:"json"`       // JSON report path
	Quiet      bool   `koanf:"quiet"`

	// Extensions lists the file extensions checked when walking directories,
	// normalized to lowercase with a leading dot.
	Extensions []string `koanf:"extensions"`

	// Exclude lists glob patterns matched against slash-separated paths
	// relative to each walked directory, and against base names.
	Exclude []string `koanf:"exclude"`

	Jobs     int    `koanf:"jobs"`
	Cache    string `koanf:"cache"` // result cache database; empty disables caching
	LogLevel string `koanf:"log_level"`
	NoColor  bool   `koanf:"no_color"`

	// ConfigFile is the file the configuration was read from, if any.
	ConfigFile string `koanf:"-"`

	// ProjectRoot anchors relative paths from the config file and defaults.
	ProjectRoot string `koanf:"-"`
}
