// Package standard loads named coding standards and resolves them into the
// ordered rule configuration the rule manager consumes.
//
// Built-in definitions ship embedded in the binary. A user directory, usually
// .phpstyle/standards in the project, may override any of them: each user rule entry
// replaces the built-in entry with the same id in place, and new entries are
// appended. A definition may extend another standard by exact name.
package standard

import (
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/leapstack-labs/phpstyle/pkg/core"
)

// DefaultStandard is used when no standard is configured.
const DefaultStandard = "ZF2"

// Resolver merges built-in and user standard definitions.
type Resolver struct {
	builtin Source
	user    Source
	logger  *zap.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the logger used for resolution tracing.
func WithLogger(logger *zap.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver creates a Resolver. user may be nil.
func NewResolver(builtin, user Source, opts ...ResolverOption) *Resolver {
	r := &Resolver{builtin: builtin, user: user, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve is shorthand for NewResolver(builtin, user).Resolve(name).
func Resolve(name string, builtin, user Source) (*core.Standard, error) {
	return NewResolver(builtin, user).Resolve(name)
}

// Resolve builds the standard called name.
//
// The built-in definition is required, except that a user-only definition is
// accepted when it extends a standard that itself resolves. Extended standards
// are resolved first and the extending definition is merged over them.
func (r *Resolver) Resolve(name string) (*core.Standard, error) {
	return r.resolve(name, nil)
}

func (r *Resolver) resolve(name string, chain []string) (*core.Standard, error) {
	if slices.Contains(chain, name) {
		return nil, fmt.Errorf("%w: %s", ErrExtendsCycle, strings.Join(append(chain, name), " -> "))
	}
	chain = append(chain, name)

	builtinDef, hasBuiltin, err := lookup(r.builtin, name)
	if err != nil {
		return nil, err
	}
	userDef, hasUser, err := lookup(r.user, name)
	if err != nil {
		return nil, err
	}

	std := &core.Standard{Name: name}
	switch {
	case hasBuiltin:
		if err := r.apply(std, builtinDef, chain); err != nil {
			return nil, err
		}
		if hasUser {
			r.logger.Debug("merging user standard over built-in",
				zap.String("standard", name), zap.Int("rules", len(userDef.Rules)))
			std.Rules = Merge(std.Rules, userDef.RuleConfigs())
		}
	case hasUser && userDef.Extends != "":
		r.logger.Debug("resolving user-defined standard",
			zap.String("standard", name), zap.String("extends", userDef.Extends))
		if err := r.apply(std, userDef, chain); err != nil {
			return nil, err
		}
	default:
		return nil, &NotFoundError{Name: name, Available: r.available()}
	}

	return std, nil
}

// apply resolves def's base, if any, and merges def over it into std.
func (r *Resolver) apply(std *core.Standard, def *Definition, chain []string) error {
	if def.Extends != "" {
		base, err := r.resolve(def.Extends, chain)
		if err != nil {
			return fmt.Errorf("standard %s extends %s: %w", std.Name, def.Extends, err)
		}
		std.Extends = def.Extends
		std.Rules = base.Rules
	}
	std.Rules = Merge(std.Rules, def.RuleConfigs())
	return nil
}

// available lists every standard either source can resolve by name.
func (r *Resolver) available() []string {
	var names []string
	for _, src := range []Source{r.builtin, r.user} {
		if src == nil {
			continue
		}
		if n, err := src.Names(); err == nil {
			names = append(names, n...)
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// Names returns the names of all standards known to the built-in and user sources.
func (r *Resolver) Names() []string {
	return r.available()
}

// Definition returns the user definition for name if there is one, else the
// built-in one. It does not follow extends.
func (r *Resolver) Definition(name string) (*Definition, bool, error) {
	if def, ok, err := lookup(r.user, name); ok || err != nil {
		return def, ok, err
	}
	return lookup(r.builtin, name)
}

func lookup(src Source, name string) (*Definition, bool, error) {
	if src == nil {
		return nil, false, nil
	}
	return src.Lookup(name)
}
