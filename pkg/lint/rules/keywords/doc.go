// Package keywords provides lint rules for the spelling of PHP keywords and
// the built-in constants true, false and null.
//
// Rules in this package:
//   - lowercase-keywords: Keywords are written in lowercase
//   - lowercase-constants: true, false and null are written in lowercase
package keywords
