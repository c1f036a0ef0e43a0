package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/phpstyle/internal/cache"
	"github.com/leapstack-labs/phpstyle/internal/cli/output"
)

// ErrNoCache is returned by cache commands when no cache database is configured.
var ErrNoCache = errors.New("no cache configured; set 'cache' in phpstyle.yml or pass --cache")

// CacheOptions holds options for the cache commands.
type CacheOptions struct {
	Format string // Output format
}

// NewCacheCommand creates the cache command and its subcommands.
func NewCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the result cache",
		Long: `Inspect or clear the result cache configured with 'cache' or --cache.

Cached results are reused only while the file content and the resolved standard
are unchanged, so clearing is never needed for correctness.`,
		Example: `  # Drop every cached result
  phpstyle cache clear --cache .phpstyle/cache.db

  # Show the totals of the last run
  phpstyle cache last`,
	}

	cmd.AddCommand(newCacheClearCommand())
	cmd.AddCommand(newCacheLastCommand())
	return cmd
}

func newCacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached result",
		Long:  `Remove every cached result. The run history is kept.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := NewCommandContext(cmd, output.ModeText)
			if err != nil {
				return err
			}
			store, ok, err := openCache(cc)
			if err != nil || !ok {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			cc.Renderer.Success("Cleared cached results in " + store.Path())
			return nil
		},
	}
}

func newCacheLastCommand() *cobra.Command {
	opts := &CacheOptions{}
	cmd := &cobra.Command{
		Use:   "last",
		Short: "Show the most recent run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := NewCommandContext(cmd, output.Mode(opts.Format))
			if err != nil {
				return err
			}
			store, ok, err := openCache(cc)
			if err != nil || !ok {
				return err
			}
			defer func() { _ = store.Close() }()

			run, err := store.LatestRun(cmd.Context())
			if err != nil {
				return err
			}
			return showRun(cc, run)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")
	return cmd
}

// openCache opens the configured cache database. ok is false, with a note
// printed, when the database has not been created yet.
func openCache(cc *CommandContext) (*cache.Store, bool, error) {
	if cc.Cfg.Cache == "" {
		return nil, false, ErrNoCache
	}
	if _, err := os.Stat(cc.Cfg.Cache); errors.Is(err, os.ErrNotExist) {
		cc.Renderer.Muted("No cache at " + cc.Cfg.Cache)
		return nil, false, nil
	}
	store, err := cache.Open(cc.Cfg.Cache, cache.WithLogger(cc.Logger))
	if err != nil {
		return nil, false, err
	}
	return store, true, nil
}

func showRun(cc *CommandContext, run *cache.Run) error {
	r := cc.Renderer
	if run == nil {
		if r.EffectiveMode() == output.ModeJSON {
			return r.JSON(map[string]any{"run": nil})
		}
		r.Muted("No runs recorded")
		return nil
	}

	status := "incomplete"
	if run.CompletedAt != nil {
		status = run.CompletedAt.Sub(run.StartedAt).Round(time.Millisecond).String()
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(map[string]any{"run": run})
	case output.ModeMarkdown:
		r.Header(1, "Last Run")
		r.Println(output.FormatKeyValue("ID", run.ID))
		r.Println(output.FormatKeyValue("Standard", run.Standard))
		r.Println(output.FormatKeyValue("Started", run.StartedAt.Format(time.RFC3339)))
		r.Println(output.FormatKeyValue("Duration", status))
		r.Println(output.FormatKeyValue("Files", fmt.Sprintf("%d (%d cached)", run.Files, run.Cached)))
		r.Println(output.FormatKeyValue("Errors", fmt.Sprint(run.Errors)))
		r.Println(output.FormatKeyValue("Warnings", fmt.Sprint(run.Warnings)))
		r.Println("")
		return nil
	}

	r.Header(1, "Last Run")
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendRows([]table.Row{
		{"ID", run.ID},
		{"Standard", run.Standard},
		{"Started", run.StartedAt.Local().Format(time.DateTime)},
		{"Duration", status},
		{"Files", fmt.Sprintf("%d (%d cached)", run.Files, run.Cached)},
		{"Errors", run.Errors},
		{"Warnings", run.Warnings},
	})
	t.Render()
	return nil
}
