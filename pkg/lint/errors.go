package lint

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/phpstyle/pkg/token"
)

// Sentinel errors for errors.Is checks.
var (
	// ErrUnknownRule means a standard names a rule with no registered implementation.
	ErrUnknownRule = errors.New("unknown rule")
	// ErrInvalidOptions means a rule factory rejected the configured options.
	ErrInvalidOptions = errors.New("invalid rule options")
	// ErrRuleExecution means a rule failed while checking a token.
	ErrRuleExecution = errors.New("rule execution failed")
	// ErrDuplicateRule means a rule id was registered twice.
	ErrDuplicateRule = errors.New("duplicate rule")
)

// UnknownRuleError is recorded when a standard enables a rule the registry
// does not know. The rule is skipped; other rules still run.
type UnknownRuleError struct {
	RuleID string
}

func (e *UnknownRuleError) Error() string {
	return fmt.Sprintf("unknown rule %q", e.RuleID)
}

// Unwrap returns ErrUnknownRule.
func (e *UnknownRuleError) Unwrap() error { return ErrUnknownRule }

// InvalidOptionsError is recorded when a rule's factory rejects its options.
type InvalidOptionsError struct {
	RuleID string
	Err    error
}

func (e *InvalidOptionsError) Error() string {
	return fmt.Sprintf("rule %q: invalid options: %v", e.RuleID, e.Err)
}

// Unwrap returns both ErrInvalidOptions and the factory error.
func (e *InvalidOptionsError) Unwrap() []error { return []error{ErrInvalidOptions, e.Err} }

// RuleExecutionError describes a rule that returned an error or panicked.
type RuleExecutionError struct {
	RuleID string
	Pos    token.Position
	Err    error // nil when the rule panicked
	Panic  any   // recovered value, if any
}

func (e *RuleExecutionError) Error() string {
	return "rule execution failed: " + e.cause()
}

func (e *RuleExecutionError) cause() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("panic: %v", e.Panic)
}

// Unwrap returns ErrRuleExecution and the rule's error, if any.
func (e *RuleExecutionError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrRuleExecution, e.Err}
	}
	return []error{ErrRuleExecution}
}
