// Package functions provides lint rules about function calls.
//
// Rules in this package:
//   - forbidden-functions: Calls to listed functions are reported
package functions
