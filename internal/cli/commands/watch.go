package commands

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leapstack-labs/phpstyle/internal/cli/output"
)

// DefaultDebounce is how long watch waits for changes to settle.
const DefaultDebounce = 200 * time.Millisecond

// NewWatchCommand creates the watch command.
func NewWatchCommand(version string) *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch <path>...",
		Short: "Re-check files whenever they change",
		Long: `Check the given paths, then watch them and check again after every change.

Changes to rule scripts and standard definitions also trigger a new check.
Press Ctrl+C to stop.`,
		Example: `  phpstyle watch src/
  phpstyle watch --debounce 1s -s PSR2 src/ tests/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			cc, err := NewCommandContext(cmd, output.ModeText)
			if err != nil {
				return err
			}
			return runWatch(cmd.Context(), cc, args, version, debounce)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", DefaultDebounce, "Wait this long for changes to settle")
	return cmd
}

func runWatch(ctx context.Context, cc *CommandContext, paths []string, version string, debounce time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	roots := slices.Clone(paths)
	roots = append(roots, cc.Cfg.RulesDir, cc.Cfg.StandardsDir)
	for _, p := range roots {
		if err := watchPath(watcher, p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			cc.Logger.Warn("cannot watch", zap.String("path", p), zap.Error(err))
		}
	}

	check := func() {
		if _, err := cc.Check(ctx, paths, version); err != nil && !errors.Is(err, context.Canceled) {
			cc.Renderer.Error(err.Error())
		}
		cc.Renderer.Muted("Watching for changes. Press Ctrl+C to stop.")
	}
	check()

	w := &watchLoop{
		debounce: debounce,
		relevant: relevantFunc(cc.Cfg.Extensions, paths),
		onDir: func(dir string) {
			if err := watchPath(watcher, dir); err != nil {
				cc.Logger.Debug("cannot watch", zap.String("path", dir), zap.Error(err))
			}
		},
		onChange: func(name string) {
			cc.Renderer.Println("")
			cc.Renderer.Muted("Change detected: " + name)
			check()
		},
		logger: cc.Logger,
	}
	w.run(ctx, watcher.Events, watcher.Errors)
	return nil
}

// watchPath adds path to the watcher: directories recursively, skipping
// hidden ones, and files through their parent directory.
func watchPath(watcher *fsnotify.Watcher, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return watcher.Add(filepath.Dir(path))
	}
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != path && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(p)
	})
}

// relevantFunc reports whether a changed file should trigger a check.
func relevantFunc(extensions, explicit []string) func(string) bool {
	named := make(map[string]bool, len(explicit))
	for _, p := range explicit {
		named[filepath.Clean(p)] = true
	}
	return func(name string) bool {
		if named[filepath.Clean(name)] {
			return true
		}
		ext := strings.ToLower(filepath.Ext(name))
		return ext == ".star" || ext == ".yaml" || ext == ".yml" || slices.Contains(extensions, ext)
	}
}

// watchLoop debounces file events into change callbacks. Callbacks run on
// the loop goroutine, so checks never overlap.
type watchLoop struct {
	debounce time.Duration
	relevant func(name string) bool
	onDir    func(dir string)
	onChange func(name string)
	logger   *zap.Logger
}

func (w *watchLoop) run(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) {
	var timer *time.Timer
	var fire <-chan time.Time
	var last string
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) && w.onDir != nil {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					w.onDir(event.Name)
					continue
				}
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !w.relevant(event.Name) {
				continue
			}
			last = event.Name
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.onChange(last)

		case err, ok := <-errs:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", zap.Error(err))
		}
	}
}
