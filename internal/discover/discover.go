// Package discover expands command-line paths into the list of files to check.
package discover

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Options controls directory walking.
type Options struct {
	// Extensions are the lowercase file extensions, with dot, picked up while
	// walking directories. Files named explicitly are always included.
	Extensions []string

	// Exclude holds glob patterns matched against the slash-separated path
	// relative to the walked directory and against the base name.
	Exclude []string

	Logger *zap.Logger
}

// Error is an input that could not be discovered.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// ErrNotRegular is reported for inputs that are neither files nor directories.
var ErrNotRegular = errors.New("not a regular file or directory")

// Result lists discovered files in input order, directories expanded in
// lexical order, without duplicates.
type Result struct {
	Files    []string
	Problems []error // *Error
}

// Discover expands paths. Missing or unreadable inputs are recorded in
// Problems and skipped.
func Discover(paths []string, opts Options) Result {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &discoverer{opts: opts, logger: logger, seen: make(map[string]bool)}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			d.problem(p, err)
			continue
		}
		switch {
		case info.IsDir():
			d.walk(p)
		case info.Mode().IsRegular():
			d.add(p)
		default:
			d.problem(p, ErrNotRegular)
		}
	}
	return d.result
}

type discoverer struct {
	opts   Options
	logger *zap.Logger
	seen   map[string]bool
	result Result
}

func (d *discoverer) add(path string) {
	key := filepath.Clean(path)
	if d.seen[key] {
		return
	}
	d.seen[key] = true
	d.result.Files = append(d.result.Files, path)
}

func (d *discoverer) problem(path string, err error) {
	d.logger.Warn("skipping input", zap.String("path", path), zap.Error(err))
	d.result.Problems = append(d.result.Problems, &Error{Path: path, Err: err})
}

// walk visits root recursively in lexical order.
func (d *discoverer) walk(root string) {
	_ = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			d.problem(path, err)
			if entry != nil && entry.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		if d.excluded(filepath.ToSlash(rel), entry.Name()) {
			d.logger.Debug("excluded", zap.String("path", path))
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			if strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.Type().IsRegular() && d.matchesExtension(entry.Name()) {
			d.add(path)
		}
		return nil
	})
}

func (d *discoverer) excluded(rel, name string) bool {
	for _, pattern := range d.opts.Exclude {
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

func (d *discoverer) matchesExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range d.opts.Extensions {
		if ext == want {
			return true
		}
	}
	return false
}
