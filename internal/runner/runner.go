// Package runner drives the per-file pipeline: read, tokenize, check, report.
//
// Files are checked by a bounded worker pool. Each worker owns the SourceFile
// it builds, and results reach the sink in the order the files were given
// regardless of which worker finishes first.
package runner

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/phpstyle/internal/cache"
	"github.com/leapstack-labs/phpstyle/internal/report"
	"github.com/leapstack-labs/phpstyle/pkg/core"
	"github.com/leapstack-labs/phpstyle/pkg/lint"
	"github.com/leapstack-labs/phpstyle/pkg/tokenizer"
)

// Cache stores results between runs.
type Cache interface {
	Get(ctx context.Context, path, hash, fingerprint string) ([]core.Violation, bool, error)
	Put(ctx context.Context, path, hash, fingerprint string, violations []core.Violation) error
}

// Runner checks files against one prepared rule set.
type Runner struct {
	rules       *lint.RuleSet
	fingerprint string
	sink        report.Sink
	tokenizer   *tokenizer.Tokenizer
	cache       Cache
	jobs        int
	logger      *zap.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithJobs sets the number of files checked concurrently. Values below 1
// mean one per CPU.
func WithJobs(n int) Option {
	return func(r *Runner) { r.jobs = n }
}

// WithCache enables result caching. fingerprint identifies everything besides
// file content that affects results, usually the resolved standard.
func WithCache(c Cache, fingerprint string) Option {
	return func(r *Runner) {
		r.cache = c
		r.fingerprint = fingerprint
	}
}

// WithTokenizer replaces the default tokenizer.
func WithTokenizer(t *tokenizer.Tokenizer) Option {
	return func(r *Runner) {
		if t != nil {
			r.tokenizer = t
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Runner that checks with rules and reports to sink.
func New(rules *lint.RuleSet, sink report.Sink, opts ...Option) *Runner {
	r := &Runner{
		rules:     rules,
		sink:      sink,
		tokenizer: tokenizer.New(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.jobs < 1 {
		r.jobs = runtime.NumCPU()
	}
	return r
}

// Result summarizes a run.
type Result struct {
	Summary report.Summary
	// Cached counts files whose violations came from the cache.
	Cached int
	// Problems holds files that could not be read; they are not reported.
	Problems []error
}

// Failed reports whether the run found violations or skipped files.
func (r *Result) Failed() bool {
	return r.Summary.Violations() > 0 || len(r.Problems) > 0
}

type outcome struct {
	file   *core.SourceFile
	cached bool
	err    error
}

// Run checks files and streams them to the sink in order. The sink is not
// closed. Cancellation is observed between files; the partial Result is
// returned along with ctx's error.
func (r *Runner) Run(parent context.Context, files []string) (*Result, error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs)

	slots := make([]chan outcome, len(files))
	for i := range slots {
		slots[i] = make(chan outcome, 1)
	}

	launched := make(chan struct{})
	go func() {
		defer close(launched)
		for i, path := range files {
			if gctx.Err() != nil {
				return
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				slots[i] <- r.checkFile(gctx, path)
				return nil
			})
		}
	}()

	res := &Result{}
	var sinkErr error
emit:
	for i := range files {
		var out outcome
		select {
		case out = <-slots[i]:
		case <-gctx.Done():
			break emit
		}

		if out.err != nil {
			r.logger.Warn("skipping file", zap.Error(out.err))
			res.Problems = append(res.Problems, out.err)
			continue
		}
		if out.cached {
			res.Cached++
		}
		res.Summary.Add(out.file)
		if err := r.sink.AddFile(out.file); err != nil {
			sinkErr = fmt.Errorf("failed to report %s: %w", out.file.Path, err)
			cancel()
			break emit
		}
	}

	<-launched
	waitErr := g.Wait()

	if sinkErr != nil {
		return res, sinkErr
	}
	if err := parent.Err(); err != nil {
		return res, err
	}
	return res, waitErr
}

// checkFile produces one file's violations, from the cache when possible.
func (r *Runner) checkFile(ctx context.Context, path string) outcome {
	content, err := os.ReadFile(path) //nolint:gosec // G304: paths come from discovery
	if err != nil {
		return outcome{err: fmt.Errorf("cannot open %s: %w", path, err)}
	}

	var hash string
	if r.cache != nil {
		hash = cache.ContentHash(content)
		vs, ok, err := r.cache.Get(ctx, path, hash, r.fingerprint)
		if err != nil {
			r.logger.Warn("cache lookup failed", zap.String("path", path), zap.Error(err))
		}
		if ok {
			r.logger.Debug("cache hit", zap.String("path", path))
			return outcome{file: &core.SourceFile{Path: path, Content: content, Violations: vs}, cached: true}
		}
	}

	file := r.tokenizer.Tokenize(path, content)
	r.rules.Check(file)
	r.logger.Debug("checked file",
		zap.String("path", path),
		zap.Int("tokens", len(file.Tokens)),
		zap.Int("violations", len(file.Violations)))

	if r.cache != nil {
		if err := r.cache.Put(ctx, path, hash, r.fingerprint, file.Violations); err != nil {
			r.logger.Warn("cache store failed", zap.String("path", path), zap.Error(err))
		}
	}
	return outcome{file: file}
}
