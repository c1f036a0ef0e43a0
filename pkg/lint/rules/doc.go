// Package rules provides the built-in PHP coding standard rules.
//
// Rules are organized by category:
//   - whitespace: Tabs, indentation, line endings, line length, blank lines
//   - files: End of file, closing tag, short open tag, byte order mark
//   - keywords: Lowercase keywords and constants
//   - naming: Class and method name casing
//   - spacing: Control structure and comma spacing
//   - comments: Comment style
//   - functions: Forbidden function calls
//
// To register all rules with the global lint registry, import this package
// with a blank identifier:
//
//	import _ "github.com/leapstack-labs/phpstyle/pkg/lint/rules"
//
// Individual rule categories can also be imported:
//
//	import _ "github.com/leapstack-labs/phpstyle/pkg/lint/rules/whitespace"
package rules
