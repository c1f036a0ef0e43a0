package script

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"
	"go.uber.org/zap"

	"github.com/leapstack-labs/phpstyle/pkg/core"
	"github.com/leapstack-labs/phpstyle/pkg/lint"
	"github.com/leapstack-labs/phpstyle/pkg/token"
)

// DefaultMaxSteps bounds the Starlark steps of a single check call.
const DefaultMaxSteps = 1_000_000

var ruleID = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
}

// Loader scans a directory for .star files and turns them into rule definitions.
type Loader struct {
	dir      string
	maxSteps uint64
	logger   *zap.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger routes script print() output and load messages to logger.
func WithLogger(logger *zap.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithMaxSteps sets the step budget per check call.
func WithMaxSteps(n uint64) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.maxSteps = n
		}
	}
}

// NewLoader creates a loader for the scripts in dir.
func NewLoader(dir string, opts ...LoaderOption) *Loader {
	l := &Loader{dir: dir, maxSteps: DefaultMaxSteps, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load parses every *.star file in the directory, in name order.
// A missing directory yields no definitions.
func (l *Loader) Load() ([]lint.Definition, error) {
	info, err := os.Stat(l.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to access scripts directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scripts path is not a directory: %s", l.dir)
	}

	files, err := filepath.Glob(filepath.Join(l.dir, "*.star"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scripts directory: %w", err)
	}

	defs := make([]lint.Definition, 0, len(files))
	for _, file := range files {
		def, err := l.loadFile(file)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// Register loads all scripts and registers them into reg. Callers pass a
// clone of lint.Default() so built-ins stay untouched.
func (l *Loader) Register(reg *lint.Registry) (int, error) {
	defs, err := l.Load()
	if err != nil {
		return 0, err
	}
	for _, def := range defs {
		if err := reg.Register(def); err != nil {
			return 0, &LoadError{File: def.Source, Err: err}
		}
		l.logger.Debug("registered script rule", zap.String("rule", def.ID), zap.String("file", def.Source))
	}
	return len(defs), nil
}

func (l *Loader) loadFile(path string) (lint.Definition, error) {
	content, err := os.ReadFile(path) //nolint:gosec // G304: path comes from a glob within the scripts directory
	if err != nil {
		return lint.Definition{}, &LoadError{File: path, Err: err}
	}

	stem := strings.TrimSuffix(filepath.Base(path), ".star")
	thread := &starlark.Thread{Name: "load:" + stem, Print: l.print}

	predeclared := starlark.StringDict{"struct": starlark.NewBuiltin("struct", starlarkstruct.Make)}
	globals, err := starlark.ExecFileOptions(fileOptions, thread, path, content, predeclared)
	if err != nil {
		return lint.Definition{}, &LoadError{File: path, Err: err}
	}
	globals.Freeze()

	def, err := l.definition(stem, path, globals)
	if err != nil {
		return lint.Definition{}, &LoadError{File: path, Err: err}
	}
	return def, nil
}

// definition reads the rule globals of one module.
func (l *Loader) definition(stem, path string, globals starlark.StringDict) (lint.Definition, error) {
	id, err := stringGlobal(globals, "id", stem)
	if err != nil {
		return lint.Definition{}, err
	}
	if !ruleID.MatchString(id) {
		return lint.Definition{}, fmt.Errorf("rule id %q must be kebab-case", id)
	}

	description, err := stringGlobal(globals, "description", "")
	if err != nil {
		return lint.Definition{}, err
	}

	sev, err := stringGlobal(globals, "severity", "")
	if err != nil {
		return lint.Definition{}, err
	}
	severity, ok := core.ParseSeverity(sev)
	if !ok {
		return lint.Definition{}, fmt.Errorf("invalid severity %q", sev)
	}

	types, err := tokenTypes(globals)
	if err != nil {
		return lint.Definition{}, err
	}

	check, ok := globals["check"].(starlark.Callable)
	if !ok {
		return lint.Definition{}, errors.New("missing check(tokens, index, options) function")
	}

	r := &rule{id: id, tokens: types, check: check, maxSteps: l.maxSteps, print: l.print}
	return lint.Definition{
		ID:              id,
		Name:            "script." + strings.ReplaceAll(id, "-", "_"),
		Group:           "script",
		Description:     description,
		DefaultSeverity: severity,
		Tokens:          types,
		Source:          path,
		New:             r.instantiate,
	}, nil
}

func (l *Loader) print(thread *starlark.Thread, msg string) {
	l.logger.Debug("script print", zap.String("thread", thread.Name), zap.String("msg", msg))
}

// stringGlobal returns the string global name, or def when it is unset.
func stringGlobal(globals starlark.StringDict, name, def string) (string, error) {
	v, ok := globals[name]
	if !ok {
		return def, nil
	}
	s, ok := starlark.AsString(v)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %s", name, v.Type())
	}
	return s, nil
}

// tokenTypes resolves the tokens global, a list of token type names.
func tokenTypes(globals starlark.StringDict) ([]token.TokenType, error) {
	v, ok := globals["tokens"]
	if !ok {
		return nil, errors.New("missing tokens list")
	}
	seq, ok := v.(starlark.Iterable)
	if !ok {
		return nil, fmt.Errorf("tokens must be a list, got %s", v.Type())
	}

	var types []token.TokenType
	iter := seq.Iterate()
	defer iter.Done()

	var item starlark.Value
	for iter.Next(&item) {
		name, ok := starlark.AsString(item)
		if !ok {
			return nil, fmt.Errorf("tokens must contain strings, got %s", item.Type())
		}
		t, ok := token.LookupType(name)
		if !ok {
			return nil, fmt.Errorf("unknown token type %q", name)
		}
		types = append(types, t)
	}
	if len(types) == 0 {
		return nil, errors.New("tokens list is empty")
	}
	return types, nil
}

// LoadError reports a script that could not be loaded.
type LoadError struct {
	File string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("scripts/%s: %v", filepath.Base(e.File), e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
