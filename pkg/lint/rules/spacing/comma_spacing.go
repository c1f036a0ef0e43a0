package spacing

import (
	"github.com/leapstack-labs/phpstyle/pkg/core"
	"github.com/leapstack-labs/phpstyle/pkg/lint"
	"github.com/leapstack-labs/phpstyle/pkg/lint/internal/scan"
	"github.com/leapstack-labs/phpstyle/pkg/token"
)

func init() {
	lint.Register(CommaSpacing)
}

var commaTokens = []token.TokenType{token.COMMA}

// CommaSpacing reports whitespace before a comma and anything but a single
// space after it. A comma may end a line or precede a closing bracket or a
// comment.
var CommaSpacing = lint.Definition{
	ID:              "comma-spacing",
	Name:            "spacing.comma",
	Group:           "spacing",
	Description:     "Commas must not be preceded by whitespace and must be followed by exactly one space.",
	DefaultSeverity: core.SeverityWarning,
	Tokens:          commaTokens,
	New:             lint.Static(lint.NewRule("comma-spacing", commaTokens, checkCommaSpacing)),

	BadExample: "foo($a ,$b,  $c);",

	GoodExample: "foo($a, $b, $c);",
}

func checkCommaSpacing(tokens []token.Token, i int) ([]lint.Finding, error) {
	var findings []lint.Finding

	if prev := i - 1; scan.TypeAt(tokens, prev) == token.WHITESPACE && !scan.AtLineStart(tokens, prev) {
		findings = append(findings, lint.At(tokens[prev],
			"Expected 0 spaces before comma; %d found", len(tokens[prev].Text)))
	}

	switch after := scan.TypeAt(tokens, i+1); after {
	case token.NEWLINE, token.EOF, token.RPAREN, token.RBRACKET,
		token.COMMENT, token.BLOCK_COMMENT, token.DOC_COMMENT, token.CLOSE_TAG:
	case token.WHITESPACE:
		ws := tokens[i+1]
		switch scan.TypeAt(tokens, i+2) {
		case token.NEWLINE, token.EOF, token.COMMENT, token.BLOCK_COMMENT, token.DOC_COMMENT:
			return findings, nil
		}
		if ws.Text != " " {
			findings = append(findings, lint.At(tokens[i],
				"Expected 1 space after comma; %d found", len(ws.Text)))
		}
	default:
		findings = append(findings, lint.At(tokens[i], "Expected 1 space after comma; 0 found"))
	}
	return findings, nil
}
