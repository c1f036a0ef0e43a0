// Package whitespace provides lint rules for indentation, line endings and
// line layout.
//
// Rules in this package:
//   - no-tabs: Indent with spaces
//   - trailing-whitespace: No whitespace before a line break
//   - indentation: Indentation is a multiple of the configured width
//   - line-endings: One line ending style per file
//   - line-length: Soft and hard line length limits
//   - blank-lines: Limit consecutive blank lines
package whitespace
