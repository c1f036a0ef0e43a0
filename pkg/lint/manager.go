package lint

import (
	"cmp"
	"errors"
	"slices"

	"go.uber.org/zap"

	"github.com/leapstack-labs/phpstyle/pkg/core"
	"github.com/leapstack-labs/phpstyle/pkg/token"
)

// Manager turns standards into RuleSets and runs them over files.
type Manager struct {
	registry *Registry
	logger   *zap.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger for configuration warnings.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates a Manager over reg; a nil reg means Default().
func NewManager(reg *Registry, opts ...Option) *Manager {
	if reg == nil {
		reg = Default()
	}
	m := &Manager{registry: reg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Registry returns the registry rules are instantiated from.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// slot is one prepared rule.
type slot struct {
	rule     Rule
	id       string
	severity core.Severity
	order    int // position in the standard
}

// RuleSet is a standard compiled for dispatch. It is immutable after Prepare
// and safe for concurrent Check calls on distinct files.
type RuleSet struct {
	standard string
	slots    []slot
	dispatch [][]int // token type -> slot indexes, in standard order
	skipped  []error
}

// Prepare instantiates every enabled rule of std in declared order and builds
// the dispatch table. Rules with no registered implementation or with invalid
// options are skipped, logged and listed in Skipped; preparation never fails.
func (m *Manager) Prepare(std *core.Standard) *RuleSet {
	rs := &RuleSet{
		standard: std.Name,
		dispatch: make([][]int, token.NumTypes),
	}

	for _, rc := range std.EnabledRules() {
		def, ok := m.registry.Lookup(rc.RuleID)
		if !ok {
			err := &UnknownRuleError{RuleID: rc.RuleID}
			m.logger.Warn("skipping rule", zap.String("standard", std.Name), zap.Error(err))
			rs.skipped = append(rs.skipped, err)
			continue
		}

		rule, err := def.New(rc.Options)
		if err == nil && rule == nil {
			err = errors.New("factory returned no rule")
		}
		if err != nil {
			err = &InvalidOptionsError{RuleID: rc.RuleID, Err: err}
			m.logger.Warn("skipping rule", zap.String("standard", std.Name), zap.Error(err))
			rs.skipped = append(rs.skipped, err)
			continue
		}

		idx := len(rs.slots)
		rs.slots = append(rs.slots, slot{
			rule:     rule,
			id:       rc.RuleID,
			severity: rc.Severity.Or(def.DefaultSeverity).Or(core.SeverityWarning),
			order:    idx,
		})

		seen := make(map[token.TokenType]bool)
		for _, t := range rule.InterestedTokens() {
			if t < 0 || int(t) >= token.NumTypes || seen[t] {
				continue
			}
			seen[t] = true
			rs.dispatch[t] = append(rs.dispatch[t], idx)
		}
	}

	m.logger.Debug("prepared standard",
		zap.String("standard", std.Name),
		zap.Int("rules", len(rs.slots)),
		zap.Int("skipped", len(rs.skipped)))
	return rs
}

// Check runs rs over file. See RuleSet.Check.
func (m *Manager) Check(file *core.SourceFile, rs *RuleSet) {
	rs.Check(file)
}

// Standard returns the name of the standard the set was prepared from.
func (rs *RuleSet) Standard() string { return rs.standard }

// Len returns the number of active rules.
func (rs *RuleSet) Len() int { return len(rs.slots) }

// RuleIDs returns the active rule ids in standard order.
func (rs *RuleSet) RuleIDs() []string {
	ids := make([]string, len(rs.slots))
	for i, s := range rs.slots {
		ids[i] = s.id
	}
	return ids
}

// Skipped returns the configuration errors of rules left out of the set:
// *UnknownRuleError or *InvalidOptionsError.
func (rs *RuleSet) Skipped() []error {
	return slices.Clone(rs.skipped)
}

// ordered is a violation with the rank of the rule that produced it.
type ordered struct {
	v     core.Violation
	order int
}

// Check replaces file.Violations with the result of one pass over file.Tokens.
//
// For each token, every interested rule is invoked in standard order. A rule
// that returns an error or panics yields one error-severity violation at that
// token and dispatch continues. Violations are ordered by offset, then by rule
// order, so running Check twice gives identical results.
func (rs *RuleSet) Check(file *core.SourceFile) {
	var found []ordered
	tokens := file.Tokens

	for i, tok := range tokens {
		if int(tok.Type) >= len(rs.dispatch) || tok.Type < 0 {
			continue
		}
		for _, si := range rs.dispatch[tok.Type] {
			s := &rs.slots[si]

			findings, err := invoke(s, tokens, i)
			if err != nil {
				found = append(found, ordered{order: s.order, v: core.Violation{
					File:     file.Path,
					Line:     tok.Pos.Line,
					Column:   tok.Pos.Column,
					Offset:   tok.Pos.Offset,
					RuleID:   s.id,
					Severity: core.SeverityError,
					Message:  err.Error(),
				}})
				continue
			}

			for _, f := range findings {
				pos := f.Pos
				if !pos.IsValid() {
					pos = tok.Pos
				}
				found = append(found, ordered{order: s.order, v: core.Violation{
					File:     file.Path,
					Line:     pos.Line,
					Column:   pos.Column,
					Offset:   pos.Offset,
					RuleID:   s.id,
					Severity: s.severity,
					Message:  f.Message,
				}})
			}
		}
	}

	slices.SortStableFunc(found, func(a, b ordered) int {
		return cmp.Or(
			cmp.Compare(a.v.Offset, b.v.Offset),
			cmp.Compare(a.order, b.order),
		)
	})

	var violations []core.Violation
	if len(found) > 0 {
		violations = make([]core.Violation, len(found))
		for i, o := range found {
			violations[i] = o.v
		}
	}
	file.Violations = violations
}

// invoke is the single failure boundary around rule code.
func invoke(s *slot, tokens []token.Token, index int) (findings []Finding, err error) {
	defer func() {
		if r := recover(); r != nil {
			findings = nil
			err = &RuleExecutionError{RuleID: s.id, Pos: tokens[index].Pos, Panic: r}
		}
	}()

	findings, err = s.rule.Check(tokens, index)
	if err != nil {
		return nil, &RuleExecutionError{RuleID: s.id, Pos: tokens[index].Pos, Err: err}
	}
	return findings, nil
}
