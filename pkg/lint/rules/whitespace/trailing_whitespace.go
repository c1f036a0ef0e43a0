package whitespace

import (
	"github.com/leapstack-labs/phpstyle/pkg/core"
	"github.com/leapstack-labs/phpstyle/pkg/lint"
	"github.com/leapstack-labs/phpstyle/pkg/lint/internal/scan"
	"github.com/leapstack-labs/phpstyle/pkg/token"
)

func init() {
	lint.Register(TrailingWhitespace)
}

var trailingTokens = []token.TokenType{token.WHITESPACE}

// TrailingWhitespace reports whitespace directly before a line break or the end of the file.
var TrailingWhitespace = lint.Definition{
	ID:              "trailing-whitespace",
	Name:            "whitespace.trailing",
	Group:           "whitespace",
	Description:     "Lines must not end with whitespace.",
	DefaultSeverity: core.SeverityWarning,
	Tokens:          trailingTokens,
	New:             lint.Static(lint.NewRule("trailing-whitespace", trailingTokens, checkTrailingWhitespace)),

	Rationale: `Trailing whitespace is invisible in most editors and shows up as noise in
diffs when someone's editor strips it.`,

	BadExample: "$a = 1;   \n",

	GoodExample: "$a = 1;\n",
}

func checkTrailingWhitespace(tokens []token.Token, i int) ([]lint.Finding, error) {
	switch scan.TypeAt(tokens, i+1) {
	case token.NEWLINE, token.EOF:
		return []lint.Finding{lint.At(tokens[i], "Whitespace found at end of line")}, nil
	}
	return nil, nil
}
