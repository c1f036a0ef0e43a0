package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"go.uber.org/zap/zapcore"
)

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// listKeys are split on commas when they come from the environment.
var listKeys = map[string]bool{"extensions": true, "exclude": true}

// pathKeys are resolved against the project root unless set by a flag.
var pathKeys = []string{"standards_dir", "rules_dir", "cache"}

// skipFlags never map to configuration keys.
var skipFlags = map[string]bool{"config": true, "help": true, "version": true}

// Load reads configuration from defaults, the config file, the environment
// and flags. cfgFile overrides the config file search; flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file: explicit path, else search upward from CWD
	projectRoot := cwd
	if cfgFile != "" {
		cfgFile = ExpandHome(cfgFile)
		if _, err := os.Stat(cfgFile); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		if abs, err := filepath.Abs(cfgFile); err == nil {
			cfgFile = abs
		}
		projectRoot = filepath.Dir(cfgFile)
	} else if found := FindConfigFile(cwd); found != "" {
		cfgFile = found
		projectRoot = filepath.Dir(found)
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// 3. Environment variables: PHPSTYLE_RULES_DIR -> rules_dir
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, any) {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		if listKeys[key] {
			return key, splitList(value)
		}
		return key, value
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were explicitly set; their paths are relative to CWD
	flagPaths := make(map[string]bool)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed || skipFlags[f.Name] {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			flagPaths[key] = true
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Decode
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.ConfigFile = cfgFile
	cfg.ProjectRoot = projectRoot

	// 6. Paths
	for _, key := range pathKeys {
		p := cfg.path(key)
		*p = ExpandHome(*p)
		base := projectRoot
		if flagPaths[key] {
			base = cwd
		}
		*p = resolvePathRelativeTo(*p, base)
	}
	cfg.Checkstyle = ExpandHome(cfg.Checkstyle)
	cfg.JSON = ExpandHome(cfg.JSON)

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) path(key string) *string {
	switch key {
	case "standards_dir":
		return &c.StandardsDir
	case "rules_dir":
		return &c.RulesDir
	default:
		return &c.Cache
	}
}

// normalize validates values and fills in derived defaults.
func (c *Config) normalize() error {
	var errs []error

	if strings.TrimSpace(c.Standard) == "" {
		errs = append(errs, errors.New("standard must not be empty"))
	}

	if c.Jobs < 0 {
		errs = append(errs, fmt.Errorf("jobs must not be negative, got %d", c.Jobs))
	} else if c.Jobs == 0 {
		c.Jobs = runtime.NumCPU()
	}

	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("invalid log_level: %w", err))
	}

	exts := make([]string, 0, len(c.Extensions))
	for _, ext := range c.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	if len(exts) == 0 {
		errs = append(errs, errors.New("extensions must not be empty"))
	}
	c.Extensions = exts

	for _, pattern := range c.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			errs = append(errs, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err))
		}
	}

	return errors.Join(errs...)
}

// FindConfigFile searches startDir and its parents for a config file.
// Returns empty string if not found within maxUpwardSearchLevels.
func FindConfigFile(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}
	return ""
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
// Returns the path unchanged if it's empty or already absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
