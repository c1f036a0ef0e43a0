// Package lint is the rule engine: the Rule contract, the registry of rule
// factories and the Manager that compiles a standard into a dispatch table.
//
// # Rule Registration
//
// Rules are registered via init() functions when their packages are imported:
//
//	import _ "github.com/leapstack-labs/phpstyle/pkg/lint/rules"
//
// A rule registers a Definition carrying its documentation and a Factory that
// builds a configured instance from the standard's options:
//
//	var NoTabs = lint.Definition{
//		ID:              "no-tabs",
//		Group:           "whitespace",
//		Description:     "Indent with spaces, not tabs.",
//		DefaultSeverity: core.SeverityWarning,
//		New:             lint.Static(lint.NewRule("no-tabs", tokens, check)),
//	}
//
//	func init() {
//		lint.Register(NoTabs)
//	}
//
// # Dispatch
//
// Prepare instantiates the enabled rules of a standard in declared order and
// indexes them by the token types they are interested in. Check then walks the
// token sequence once and calls only the rules subscribed to each token's type:
//
//	m := lint.NewManager(nil, lint.WithLogger(logger))
//	rs := m.Prepare(std)
//	for _, e := range rs.Skipped() {
//		// *UnknownRuleError or *InvalidOptionsError
//	}
//	rs.Check(file)
//
// A rule that returns an error or panics produces one error-severity violation
// for the offending token instead of aborting the file.
package lint
