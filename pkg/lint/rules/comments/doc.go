// Package comments provides lint rules for comment style.
//
// Rules in this package:
//   - no-hash-comments: Use // instead of # for line comments
package comments
