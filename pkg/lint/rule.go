package lint

import (
	"fmt"

	"github.com/leapstack-labs/phpstyle/pkg/core"
	"github.com/leapstack-labs/phpstyle/pkg/token"
)

// Rule is a configured style check.
//
// A Rule subscribes to token types once, during preparation, and is then called
// for every token of those types. Check receives the whole token sequence and the
// index of the current token; it may look ahead or behind but must not modify
// the slice. Rules must not keep state between calls: the same RuleSet is shared
// across files and goroutines.
type Rule interface {
	// ID returns the stable identifier, e.g. "no-tabs".
	ID() string

	// InterestedTokens returns the token types Check is called for.
	InterestedTokens() []token.TokenType

	// Check inspects tokens[index] and returns zero or more findings.
	// A returned error is reported as a rule execution failure.
	Check(tokens []token.Token, index int) ([]Finding, error)
}

// Finding is a rule result before the manager stamps file, rule id and severity.
// A zero Pos means the position of the current token.
type Finding struct {
	Pos     token.Position
	Message string
}

// At returns a finding at tok's position.
func At(tok token.Token, format string, args ...any) Finding {
	return Finding{Pos: tok.Pos, Message: fmt.Sprintf(format, args...)}
}

// Factory builds a rule from its options. It returns an error when the options
// are invalid; the rule is then skipped.
type Factory func(opts map[string]any) (Rule, error)

// Definition registers a rule with its documentation.
// Rules are stateless - all context comes via the Check parameters.
type Definition struct {
	ID              string            // Unique identifier, e.g. "line-length"
	Name            string            // Human-readable name, e.g. "whitespace.line_length"
	Group           string            // Category, e.g. "whitespace", "naming"
	Description     string            // Human-readable description
	DefaultSeverity core.Severity     // Used when the standard leaves severity unset
	Tokens          []token.TokenType // Token types the rule inspects (documentation only)
	ConfigKeys      []string          // Option keys the rule accepts
	Source          string            // "builtin" or the path of a script
	New             Factory           // Builds a configured instance

	// Documentation fields
	Rationale   string // Why this rule exists, what problems it prevents
	BadExample  string // Code showing the anti-pattern
	GoodExample string // Code showing the correct pattern
}

// Info extracts metadata for documentation and tooling.
func (d Definition) Info() core.RuleInfo {
	tokens := make([]string, len(d.Tokens))
	for i, t := range d.Tokens {
		tokens[i] = t.String()
	}
	source := d.Source
	if source == "" {
		source = "builtin"
	}
	return core.RuleInfo{
		ID:              d.ID,
		Name:            d.Name,
		Group:           d.Group,
		Description:     d.Description,
		DefaultSeverity: d.DefaultSeverity,
		ConfigKeys:      d.ConfigKeys,
		Tokens:          tokens,
		Source:          source,
		Rationale:       d.Rationale,
		BadExample:      d.BadExample,
		GoodExample:     d.GoodExample,
	}
}

// CheckFunc is the signature of Rule.Check.
type CheckFunc func(tokens []token.Token, index int) ([]Finding, error)

// funcRule adapts a CheckFunc to Rule.
type funcRule struct {
	id     string
	tokens []token.TokenType
	check  CheckFunc
}

// NewRule returns a Rule backed by check.
func NewRule(id string, tokens []token.TokenType, check CheckFunc) Rule {
	return &funcRule{id: id, tokens: tokens, check: check}
}

func (r *funcRule) ID() string                          { return r.id }
func (r *funcRule) InterestedTokens() []token.TokenType { return r.tokens }

func (r *funcRule) Check(tokens []token.Token, index int) ([]Finding, error) {
	return r.check(tokens, index)
}

// Static returns a Factory for rules without options: it always returns rule.
func Static(rule Rule) Factory {
	return func(map[string]any) (Rule, error) {
		return rule, nil
	}
}
