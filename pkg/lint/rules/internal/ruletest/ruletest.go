// Package ruletest runs single built-in rules over PHP snippets for tests.
package ruletest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/leapstack-labs/phpstyle/pkg/core"
	"github.com/leapstack-labs/phpstyle/pkg/lint"
	"github.com/leapstack-labs/phpstyle/pkg/tokenizer"
)

// Run checks src with only ruleID enabled and returns the violations.
// The rule must be registered in lint.Default and accept opts.
func Run(t *testing.T, src, ruleID string, opts map[string]any) []core.Violation {
	t.Helper()

	std := &core.Standard{
		Name:  "test",
		Rules: []core.RuleConfig{{RuleID: ruleID, Enabled: true, Options: opts}},
	}
	rs := lint.NewManager(lint.Default(), lint.WithLogger(zaptest.NewLogger(t))).Prepare(std)
	require.Empty(t, rs.Skipped(), "rule %s did not prepare", ruleID)

	file := tokenizer.Tokenize("test.php", []byte(src))
	rs.Check(file)
	return file.Violations
}

// Messages returns the messages of vs in order.
func Messages(vs []core.Violation) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Message
	}
	return out
}

// Prepare returns the configuration errors of ruleID with opts.
func Prepare(t *testing.T, ruleID string, opts map[string]any) []error {
	t.Helper()
	std := &core.Standard{
		Name:  "test",
		Rules: []core.RuleConfig{{RuleID: ruleID, Enabled: true, Options: opts}},
	}
	return lint.NewManager(lint.Default()).Prepare(std).Skipped()
}
