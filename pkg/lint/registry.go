package lint

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// defaultRegistry is the process-wide registry filled by rule packages at init.
var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// Register adds a rule to the default registry and panics on a duplicate id.
// Call this from init() functions in rule packages.
func Register(def Definition) {
	defaultRegistry.MustRegister(def)
}

// Registry maps rule ids to their definitions and factories.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Definition // keyed by ID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Definition)}
}

// Register adds def. It fails on an empty id, a missing factory or a duplicate id.
func (r *Registry) Register(def Definition) error {
	if strings.TrimSpace(def.ID) == "" {
		return fmt.Errorf("register rule: empty id")
	}
	if def.New == nil {
		return fmt.Errorf("register rule %q: no factory", def.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rules[def.ID]; exists {
		return fmt.Errorf("register rule %q: %w", def.ID, ErrDuplicateRule)
	}
	r.rules[def.ID] = def
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(def Definition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// Lookup returns the definition for id.
func (r *Registry) Lookup(id string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.rules[id]
	return def, ok
}

// All returns all definitions sorted by id.
func (r *Registry) All() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]Definition, 0, len(r.rules))
	for _, def := range r.rules {
		defs = append(defs, def)
	}
	slices.SortFunc(defs, func(a, b Definition) int {
		return strings.Compare(a.ID, b.ID)
	})
	return defs
}

// ByGroup returns the definitions in group, sorted by id.
func (r *Registry) ByGroup(group string) []Definition {
	var defs []Definition
	for _, def := range r.All() {
		if def.Group == group {
			defs = append(defs, def)
		}
	}
	return defs
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}

// Clone returns an independent copy. Scripted rules are registered into a
// clone so the default registry stays untouched.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c := &Registry{rules: make(map[string]Definition, len(r.rules))}
	for id, def := range r.rules {
		c.rules[id] = def
	}
	return c
}
