// Package scan provides token-walking utilities for lint rules.
package scan

import (
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/phpstyle/pkg/token"
)

// Next returns the index of the first non-trivia token after i, or -1.
func Next(tokens []token.Token, i int) int {
	for j := i + 1; j < len(tokens); j++ {
		if !token.IsTrivia(tokens[j].Type) {
			return j
		}
	}
	return -1
}

// Prev returns the index of the last non-trivia token before i, or -1.
func Prev(tokens []token.Token, i int) int {
	for j := i - 1; j >= 0; j-- {
		if !token.IsTrivia(tokens[j].Type) {
			return j
		}
	}
	return -1
}

// TypeAt returns the type of tokens[i], or EOF when i is out of range.
func TypeAt(tokens []token.Token, i int) token.TokenType {
	if i < 0 || i >= len(tokens) {
		return token.EOF
	}
	return tokens[i].Type
}

// AtLineStart reports whether tokens[i] is the first token on its line.
func AtLineStart(tokens []token.Token, i int) bool {
	if i == 0 {
		return true
	}
	prev := tokens[i-1]
	return prev.Type == token.NEWLINE || strings.HasSuffix(prev.Text, "\n")
}

// IsMember reports whether the identifier at i follows ->, ?-> or ::.
func IsMember(tokens []token.Token, i int) bool {
	switch TypeAt(tokens, Prev(tokens, i)) {
	case token.OBJECT_OP, token.NULLSAFE_OP, token.DOUBLE_COLON:
		return true
	}
	return false
}

// LineStart returns the position of the first byte of pos's line.
func LineStart(pos token.Position) token.Position {
	return token.Position{Line: pos.Line, Column: 1, Offset: pos.Offset - (pos.Column - 1)}
}

// Lines splits s after every \n, \r\n and \r. Each line keeps its line
// break, so the lengths add up to len(s). A trailing empty line is dropped.
func Lines(s string) []string {
	var lines []string
	for s != "" {
		k := strings.IndexAny(s, "\r\n")
		if k < 0 {
			lines = append(lines, s)
			break
		}
		end := k + 1
		if s[k] == '\r' && end < len(s) && s[end] == '\n' {
			end++
		}
		lines = append(lines, s[:end])
		s = s[end:]
	}
	return lines
}

// Width returns the display width of s in characters.
func Width(s string) int {
	return utf8.RuneCountInString(s)
}

// Quote renders a line break or whitespace run for messages: "\r\n" -> `\r\n`.
func Quote(s string) string {
	r := strings.NewReplacer("\r", `\r`, "\n", `\n`, "\t", `\t`)
	return `"` + r.Replace(s) + `"`
}
