// Package cli provides the command-line interface for phpstyle.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/phpstyle/internal/cli/commands"
	"github.com/leapstack-labs/phpstyle/internal/config"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "phpstyle [flags] <path>...",
		Short: "phpstyle - PHP coding standard checker",
		Long: `phpstyle checks PHP source files against a coding standard.

A standard is an ordered list of rules: PSR1, PSR2 and ZF2 are built in, and
user definitions in the standards directory can override or extend them.
Running phpstyle with paths is the same as 'phpstyle check'.`,
		Version: Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.LogLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if cfg.ConfigFile != "" {
				logger.Debug("using config file " + cfg.ConfigFile)
			}

			cmd.SetContext(commands.WithConfig(cmd.Context(), cfg, logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return commands.RunCheck(cmd, args, Version)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: phpstyle.yaml searched upward)")
	pf.StringP("standard", "s", "", "Use specified coding standard (default ZF2)")
	pf.StringP("checkstyle", "c", "", "Generate checkstyle report to FILENAME")
	pf.BoolP("quiet", "q", false, "Run silently (no console report)")
	pf.String("json", "", "Generate JSON report to FILENAME")
	pf.String("standards-dir", "", "Directory of user standard definitions")
	pf.String("rules-dir", "", "Directory of Starlark rule scripts")
	pf.StringSlice("extensions", nil, "File extensions checked in directories (default .php)")
	pf.StringSlice("exclude", nil, "Glob patterns of paths to skip")
	pf.Int("jobs", 0, "Files checked in parallel (default: number of CPUs)")
	pf.String("cache", "", "Result cache database (empty disables caching)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.Bool("no-color", false, "Disable colored output")

	_ = rootCmd.RegisterFlagCompletionFunc("standard", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"PSR1", "PSR2", "ZF2"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewCheckCommand(Version))
	rootCmd.AddCommand(commands.NewStandardsCommand())
	rootCmd.AddCommand(commands.NewRulesCommand())
	rootCmd.AddCommand(commands.NewWatchCommand(Version))
	rootCmd.AddCommand(commands.NewCacheCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command until it finishes or the process is
// interrupted. Violations yield ErrViolations without printing anything.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, commands.ErrViolations) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return err
	}
	return nil
}
