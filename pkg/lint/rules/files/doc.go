// Package files provides lint rules about the shape of a PHP file as a whole:
// how it opens, how it ends and what encoding marks it carries.
//
// Rules in this package:
//   - end-of-file: Exactly one newline at end of file
//   - no-closing-tag: Omit ?> at the end of pure PHP files
//   - no-short-open-tag: Use <?php, never <?
//   - no-bom: UTF-8 without byte order mark
package files
