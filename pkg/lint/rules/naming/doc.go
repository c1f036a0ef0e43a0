// Package naming provides lint rules for declaration names.
//
// Rules in this package:
//   - class-name: Classes, interfaces, traits and enums use StudlyCaps
//   - method-name: Methods use camelCase
package naming
