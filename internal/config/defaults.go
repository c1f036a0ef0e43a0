package config

import "github.com/leapstack-labs/phpstyle/pkg/standard"

// Default configuration values.
const (
	DefaultStandardsDir = ".phpstyle/standards"
	DefaultRulesDir     = ".phpstyle/rules"
	DefaultLogLevel     = "warn"
	EnvPrefix           = "PHPSTYLE_"
)

// ConfigFileNames are searched in order in each directory.
var ConfigFileNames = []string{"phpstyle.yaml", "phpstyle.yml", ".phpstyle.yaml", ".phpstyle.yml"}

// DefaultExtensions are checked when walking directories.
var DefaultExtensions = []string{".php"}

// defaults returns the lowest configuration layer.
func defaults() map[string]any {
	return map[string]any{
		"standard":      standard.DefaultStandard,
		"standards_dir": DefaultStandardsDir,
		"rules_dir":     DefaultRulesDir,
		"checkstyle":    "",
		"json":          "",
		"quiet":         false,
		"extensions":    DefaultExtensions,
		"exclude":       []string{},
		"jobs":          0,
		"cache":         "",
		"log_level":     DefaultLogLevel,
		"no_color":      false,
	}
}
