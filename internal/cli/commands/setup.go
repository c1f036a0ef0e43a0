package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leapstack-labs/phpstyle/internal/cli/output"
	"github.com/leapstack-labs/phpstyle/internal/config"
	"github.com/leapstack-labs/phpstyle/pkg/core"
	"github.com/leapstack-labs/phpstyle/pkg/lint"
	_ "github.com/leapstack-labs/phpstyle/pkg/lint/rules" // register built-in rules
	"github.com/leapstack-labs/phpstyle/pkg/lint/script"
	"github.com/leapstack-labs/phpstyle/pkg/standard"
)

// ErrViolations is returned by check commands when the run found violations
// or skipped inputs. It maps to exit status 1 without an error message.
var ErrViolations = errors.New("violations found")

// configKey and loggerKey store the loaded configuration in the command context.
type (
	configKey struct{}
	loggerKey struct{}
)

// WithConfig returns ctx carrying cfg and logger.
func WithConfig(ctx context.Context, cfg *config.Config, logger *zap.Logger) context.Context {
	ctx = context.WithValue(ctx, configKey{}, cfg)
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetConfig retrieves the config from the command context, loading defaults
// when the command runs outside the root command.
func GetConfig(ctx context.Context) (*config.Config, error) {
	if ctx != nil {
		if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
			return c, nil
		}
	}
	return config.Load("", nil)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
			return l
		}
	}
	return zap.NewNop()
}

// CommandContext bundles what every command needs.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *zap.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext for cmd. mode selects the
// renderer's output format.
func NewCommandContext(cmd *cobra.Command, mode output.Mode) (*CommandContext, error) {
	cfg, err := GetConfig(cmd.Context())
	if err != nil {
		return nil, err
	}

	var opts []output.RendererOption
	if cfg.NoColor {
		opts = append(opts, output.WithColor(false))
	}
	return &CommandContext{
		Cfg:      cfg,
		Logger:   GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode, opts...),
	}, nil
}

// Resolver returns the standard resolver for the configured directories.
func (cc *CommandContext) Resolver() *standard.Resolver {
	return standard.NewResolver(
		standard.Builtin(),
		standard.DirSource(cc.Cfg.StandardsDir),
		standard.WithLogger(cc.Logger),
	)
}

// Registry returns the built-in rules plus the scripted rules of the
// configured rules directory.
func (cc *CommandContext) Registry() (*lint.Registry, error) {
	reg := lint.Default().Clone()
	n, err := script.NewLoader(cc.Cfg.RulesDir, script.WithLogger(cc.Logger)).Register(reg)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		cc.Logger.Debug("loaded scripted rules", zap.Int("count", n), zap.String("dir", cc.Cfg.RulesDir))
	}
	return reg, nil
}

// Checker is a resolved standard compiled against a registry.
type Checker struct {
	Standard    *core.Standard
	Rules       *lint.RuleSet
	Fingerprint string
}

// NewChecker resolves the configured standard and prepares its rules.
// Skipped rules are logged by the manager and do not fail the run.
func (cc *CommandContext) NewChecker(version string) (*Checker, error) {
	std, err := cc.Resolver().Resolve(cc.Cfg.Standard)
	if err != nil {
		return nil, err
	}
	reg, err := cc.Registry()
	if err != nil {
		return nil, err
	}

	rs := lint.NewManager(reg, lint.WithLogger(cc.Logger)).Prepare(std)
	fp, err := fingerprint(std, reg, version)
	if err != nil {
		return nil, err
	}
	return &Checker{Standard: std, Rules: rs, Fingerprint: fp}, nil
}

// fingerprint identifies everything besides file content that affects
// results: the resolved standard, the tool version and the source of every
// scripted rule.
func fingerprint(std *core.Standard, reg *lint.Registry, version string) (string, error) {
	h := sha256.New()
	_, _ = fmt.Fprintf(h, "%s\x00%s\x00", version, std.Fingerprint())

	var scripts []string
	for _, def := range reg.All() {
		if def.Source != "" {
			scripts = append(scripts, def.Source)
		}
	}
	slices.Sort(scripts)
	for _, path := range scripts {
		data, err := os.ReadFile(path) //nolint:gosec // G304: rule scripts are user configuration
		if err != nil {
			return "", fmt.Errorf("failed to read rule script: %w", err)
		}
		sum := sha256.Sum256(data)
		_, _ = fmt.Fprintf(h, "%s\x00%x\x00", path, sum)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
