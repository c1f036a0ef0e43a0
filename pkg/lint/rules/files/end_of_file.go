package files

import (
	"strings"

	"github.com/leapstack-labs/phpstyle/pkg/core"
	"github.com/leapstack-labs/phpstyle/pkg/lint"
	"github.com/leapstack-labs/phpstyle/pkg/token"
)

func init() {
	lint.Register(EndOfFile)
}

var endOfFileTokens = []token.TokenType{token.EOF}

// EndOfFile reports files that do not end with exactly one line break.
var EndOfFile = lint.Definition{
	ID:              "end-of-file",
	Name:            "files.end_of_file",
	Group:           "files",
	Description:     "Files must end with a single newline character.",
	DefaultSeverity: core.SeverityError,
	Tokens:          endOfFileTokens,
	New:             lint.Static(lint.NewRule("end-of-file", endOfFileTokens, checkEndOfFile)),

	Rationale: `Tools like cat and diff expect a final newline; extra blank lines at the
end are noise.`,

	BadExample: "<?php\necho 1;",

	GoodExample: "<?php\necho 1;\n",
}

func checkEndOfFile(tokens []token.Token, i int) ([]lint.Finding, error) {
	if i == 0 {
		return nil, nil
	}

	found := 0
loop:
	for j := i - 1; j >= 0; j-- {
		tok := tokens[j]
		switch tok.Type {
		case token.NEWLINE:
			found++
		case token.WHITESPACE:
		case token.INLINE_HTML:
			found += trailingBreaks(tok.Text)
			if strings.TrimRight(tok.Text, " \t\r\n") != "" {
				break loop
			}
		default:
			break loop
		}
	}

	if found == 1 {
		return nil, nil
	}
	return []lint.Finding{lint.At(tokens[i], "Expected 1 newline at end of file; %d found", found)}, nil
}

// trailingBreaks counts the line breaks at the end of s, ignoring blanks between them.
func trailingBreaks(s string) int {
	n := 0
	for {
		s = strings.TrimRight(s, " \t")
		switch {
		case strings.HasSuffix(s, "\r\n"):
			s = s[:len(s)-2]
		case strings.HasSuffix(s, "\n"), strings.HasSuffix(s, "\r"):
			s = s[:len(s)-1]
		default:
			return n
		}
		n++
	}
}
