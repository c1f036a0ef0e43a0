// Package spacing provides lint rules for the spaces around control
// structures and punctuation.
//
// Rules in this package:
//   - control-spacing: One space between a control keyword and its parenthesis
//   - comma-spacing: No space before a comma, one space after
package spacing
