package standard

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"
)

// Source provides standard definitions by name.
type Source interface {
	// Lookup returns the definition named name. ok is false when the source
	// does not define it; err is reserved for unreadable or invalid definitions.
	Lookup(name string) (def *Definition, ok bool, err error)
	// Names lists the standards the source defines, sorted.
	Names() ([]string, error)
}

var definitionExts = []string{".yaml", ".yml"}

// FSSource reads "<name>.yaml" or "<name>.yml" files from the root of a file system.
type FSSource struct {
	fsys  fs.FS
	label string
}

// NewFSSource creates a source over fsys. label names the source in errors.
func NewFSSource(fsys fs.FS, label string) *FSSource {
	return &FSSource{fsys: fsys, label: label}
}

// DirSource creates a source over a directory on disk. A missing directory
// behaves as an empty source.
func DirSource(dir string) *FSSource {
	return NewFSSource(os.DirFS(dir), dir)
}

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Builtin returns the source of the standards shipped with phpstyle.
func Builtin() *FSSource {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(err) // the directory is embedded at build time
	}
	return NewFSSource(sub, "builtin")
}

// String returns the source label.
func (s *FSSource) String() string { return s.label }

// Lookup implements Source.
func (s *FSSource) Lookup(name string) (*Definition, bool, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || !fs.ValidPath(name) {
		return nil, false, nil
	}

	for _, ext := range definitionExts {
		file := name + ext
		data, err := fs.ReadFile(s.fsys, file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, false, fmt.Errorf("read standard %s from %s: %w", name, s.label, err)
		}

		def, err := ParseDefinition(data)
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", path.Join(s.label, file), err)
		}
		// The file name is authoritative; the name key is informational.
		def.Name = name
		return def, true, nil
	}
	return nil, false, nil
}

// Names implements Source.
func (s *FSSource) Names() ([]string, error) {
	entries, err := fs.ReadDir(s.fsys, ".")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list standards in %s: %w", s.label, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := path.Ext(e.Name())
		if slices.Contains(definitionExts, ext) {
			names = append(names, strings.TrimSuffix(e.Name(), ext))
		}
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

// MapSource is an in-memory Source keyed by standard name.
type MapSource map[string]*Definition

// Lookup implements Source.
func (m MapSource) Lookup(name string) (*Definition, bool, error) {
	def, ok := m[name]
	if !ok {
		return nil, false, nil
	}
	if err := def.Validate(); err != nil {
		return nil, false, err
	}
	return def, true, nil
}

// Names implements Source.
func (m MapSource) Names() ([]string, error) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}
