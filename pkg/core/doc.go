// Package core defines the shared data model of phpstyle.
//
// This package contains:
//   - Source files and the violations found in them (SourceFile, Violation)
//   - Resolved coding standards (Standard, RuleConfig)
//   - Severity levels and rule metadata (Severity, RuleInfo)
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
// All other packages depend on core, not the reverse.
package core
