package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leapstack-labs/phpstyle/internal/cache"
	"github.com/leapstack-labs/phpstyle/internal/cli/output"
	"github.com/leapstack-labs/phpstyle/internal/discover"
	"github.com/leapstack-labs/phpstyle/internal/report"
	"github.com/leapstack-labs/phpstyle/internal/runner"
)

// NewCheckCommand creates the check command.
func NewCheckCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "check <path>...",
		Short: "Check PHP files against a coding standard",
		Long: `Check PHP files and directories against a coding standard.

Directories are walked recursively; only files with a configured extension
(.php by default) are checked. Files named explicitly are always checked.

The exit status is 0 when no violations were found and 1 otherwise.`,
		Example: `  # Check a directory against the default standard
  phpstyle check src/

  # Use PSR2 and write a checkstyle report
  phpstyle check -s PSR2 -c build/checkstyle.xml src/ tests/

  # Report only to a JSON file
  phpstyle check -q --json report.json src/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return RunCheck(cmd, args, version)
		},
	}
}

// RunCheck checks paths with the configuration in cmd's context.
func RunCheck(cmd *cobra.Command, paths []string, version string) error {
	cc, err := NewCommandContext(cmd, output.ModeText)
	if err != nil {
		return err
	}
	res, err := cc.Check(cmd.Context(), paths, version)
	if err != nil {
		return err
	}
	if res.Failed() {
		return ErrViolations
	}
	return nil
}

// Check runs one full check of paths and closes every sink.
func (cc *CommandContext) Check(ctx context.Context, paths []string, version string) (*runner.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	chk, err := cc.NewChecker(version)
	if err != nil {
		return nil, err
	}

	found := discover.Discover(paths, discover.Options{
		Extensions: cc.Cfg.Extensions,
		Exclude:    cc.Cfg.Exclude,
		Logger:     cc.Logger,
	})
	for _, p := range found.Problems {
		var derr *discover.Error
		if errors.As(p, &derr) {
			cc.Renderer.Error("Cannot open " + derr.Path)
		} else {
			cc.Renderer.Error(p.Error())
		}
	}

	sink := cc.sinks(version)

	opts := []runner.Option{runner.WithJobs(cc.Cfg.Jobs), runner.WithLogger(cc.Logger)}
	var store *cache.Store
	var run *cache.Run
	if cc.Cfg.Cache != "" {
		store, err = cache.Open(cc.Cfg.Cache, cache.WithLogger(cc.Logger))
		if err != nil {
			cc.Logger.Warn("cache disabled", zap.Error(err))
		} else {
			defer func() { _ = store.Close() }()
			opts = append(opts, runner.WithCache(store, chk.Fingerprint))
			if run, err = store.CreateRun(ctx, chk.Standard.Name); err != nil {
				cc.Logger.Warn("failed to record run", zap.Error(err))
			}
		}
	}

	res, runErr := runner.New(chk.Rules, sink, opts...).Run(ctx, found.Files)
	closeErr := sink.Close()
	if runErr != nil {
		return res, runErr
	}
	if closeErr != nil {
		return res, fmt.Errorf("failed to write reports: %w", closeErr)
	}

	for _, p := range res.Problems {
		cc.Renderer.Error(p.Error())
	}
	res.Problems = append(found.Problems, res.Problems...)

	if run != nil {
		err := store.CompleteRun(ctx, run.ID, cache.RunTotals{
			Files:    res.Summary.Files,
			Errors:   res.Summary.Errors,
			Warnings: res.Summary.Warnings,
			Cached:   res.Cached,
		})
		if err != nil {
			cc.Logger.Warn("failed to record run", zap.Error(err))
		}
	}

	cc.Logger.Info("check finished",
		zap.String("standard", chk.Standard.Name),
		zap.Int("files", res.Summary.Files),
		zap.Int("errors", res.Summary.Errors),
		zap.Int("warnings", res.Summary.Warnings),
		zap.Int("cached", res.Cached))
	return res, nil
}

// sinks builds the configured report sinks. Quiet drops only the console.
func (cc *CommandContext) sinks(version string) report.Sink {
	var sinks []report.Sink
	if !cc.Cfg.Quiet {
		sinks = append(sinks, report.NewConsole(cc.Renderer))
	}
	if cc.Cfg.Checkstyle != "" {
		sinks = append(sinks, report.NewCheckstyleFile(cc.Cfg.Checkstyle, version))
	}
	if cc.Cfg.JSON != "" {
		sinks = append(sinks, report.NewJSONFile(cc.Cfg.JSON))
	}
	return report.Multi(sinks...)
}
