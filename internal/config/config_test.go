package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in a fresh directory with a fake home and no
// PHPSTYLE_ variables leaking in from the environment.
func isolate(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	t.Chdir(dir)
	t.Setenv("HOME", filepath.Join(dir, "home"))
	for _, kv := range os.Environ() {
		if key, _, _ := strings.Cut(kv, "="); strings.HasPrefix(key, EnvPrefix) {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("config", "", "")
	fs.StringP("standard", "s", "", "")
	fs.String("standards-dir", "", "")
	fs.String("rules-dir", "", "")
	fs.StringP("checkstyle", "c", "", "")
	fs.String("json", "", "")
	fs.BoolP("quiet", "q", false, "")
	fs.Int("jobs", 0, "")
	fs.String("cache", "", "")
	fs.String("log-level", "", "")
	fs.Bool("no-color", false, "")
	fs.StringSlice("extensions", nil, "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "ZF2", cfg.Standard)
	assert.Equal(t, filepath.Join(dir, DefaultStandardsDir), cfg.StandardsDir)
	assert.Equal(t, filepath.Join(dir, DefaultRulesDir), cfg.RulesDir)
	assert.Equal(t, []string{".php"}, cfg.Extensions)
	assert.Empty(t, cfg.Exclude)
	assert.Equal(t, runtime.NumCPU(), cfg.Jobs)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.Cache)
	assert.Empty(t, cfg.ConfigFile)
	assert.Equal(t, dir, cfg.ProjectRoot)
}

func TestLoad_FileSearchedUpward(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "phpstyle.yaml"), `
standard: PSR2
rules_dir: tools/rules
cache: .cache/phpstyle.db
extensions: [php, INC]
exclude: ["vendor/*"]
jobs: 3
`)
	sub := filepath.Join(dir, "src", "app")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	t.Chdir(sub)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "phpstyle.yaml"), cfg.ConfigFile)
	assert.Equal(t, dir, cfg.ProjectRoot)
	assert.Equal(t, "PSR2", cfg.Standard)
	assert.Equal(t, filepath.Join(dir, "tools", "rules"), cfg.RulesDir, "relative to the config file")
	assert.Equal(t, filepath.Join(dir, ".cache", "phpstyle.db"), cfg.Cache)
	assert.Equal(t, []string{".php", ".inc"}, cfg.Extensions)
	assert.Equal(t, []string{"vendor/*"}, cfg.Exclude)
	assert.Equal(t, 3, cfg.Jobs)
}

func TestLoad_HiddenFileName(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".phpstyle.yaml"), "standard: PSR1\n")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "PSR1", cfg.Standard)
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "conf", "custom.yml"), "standards_dir: std\n")

	cfg, err := Load("conf/custom.yml", nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "conf", "std"), cfg.StandardsDir)

	_, err = Load("missing.yaml", nil)
	assert.Error(t, err)
}

func TestLoad_Precedence(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "phpstyle.yaml"), "standard: PSR1\nquiet: false\njobs: 2\n")
	t.Setenv("PHPSTYLE_STANDARD", "PSR2")
	t.Setenv("PHPSTYLE_QUIET", "true")
	t.Setenv("PHPSTYLE_EXCLUDE", "vendor/*, build/*")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "PSR2", cfg.Standard, "env beats file")
	assert.True(t, cfg.Quiet)
	assert.Equal(t, 2, cfg.Jobs)
	assert.Equal(t, []string{"vendor/*", "build/*"}, cfg.Exclude)

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"-s", "ZF2", "--jobs", "5", "--rules-dir", "mine"}))

	cfg, err = Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "ZF2", cfg.Standard, "flags beat env")
	assert.Equal(t, 5, cfg.Jobs)
	assert.True(t, cfg.Quiet, "unset flags do not override")
	assert.Equal(t, filepath.Join(dir, "mine"), cfg.RulesDir)
}

func TestLoad_FlagPathsRelativeToCWD(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "phpstyle.yaml"), "standard: PSR2\n")
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	t.Chdir(sub)

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--standards-dir", "std"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(sub, "std"), cfg.StandardsDir)
	assert.Equal(t, filepath.Join(dir, DefaultRulesDir), cfg.RulesDir)
}

func TestLoad_HomeExpansion(t *testing.T) {
	dir := isolate(t)
	t.Setenv("PHPSTYLE_STANDARDS_DIR", "~/standards")
	t.Setenv("PHPSTYLE_JSON", "~/out.json")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "home", "standards"), cfg.StandardsDir)
	assert.Equal(t, filepath.Join(dir, "home", "out.json"), cfg.JSON)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative jobs", "jobs: -1\n"},
		{"bad log level", "log_level: loud\n"},
		{"no extensions", "extensions: []\n"},
		{"bad exclude", "exclude: [\"[\"]\n"},
		{"empty standard", "standard: \"\"\n"},
		{"not yaml", "standard: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			writeFile(t, filepath.Join(dir, "phpstyle.yaml"), tt.yaml)
			_, err := Load("", nil)
			assert.Error(t, err)
		})
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/dev")
	assert.Equal(t, "/home/dev", ExpandHome("~"))
	assert.Equal(t, "/home/dev/x", ExpandHome("~/x"))
	assert.Equal(t, "~user/x", ExpandHome("~user/x"))
	assert.Equal(t, "rel/x", ExpandHome("rel/x"))
}
