package files

import (
	"strings"

	"github.com/leapstack-labs/phpstyle/pkg/core"
	"github.com/leapstack-labs/phpstyle/pkg/lint"
	"github.com/leapstack-labs/phpstyle/pkg/token"
)

func init() {
	lint.Register(NoClosingTag)
}

var closingTagTokens = []token.TokenType{token.CLOSE_TAG}

// NoClosingTag reports a ?> followed by nothing but whitespace.
var NoClosingTag = lint.Definition{
	ID:              "no-closing-tag",
	Name:            "files.no_closing_tag",
	Group:           "files",
	Description:     "The closing ?> tag must be omitted from files containing only PHP.",
	DefaultSeverity: core.SeverityError,
	Tokens:          closingTagTokens,
	New:             lint.Static(lint.NewRule("no-closing-tag", closingTagTokens, checkNoClosingTag)),

	Rationale: `Whitespace after a final ?> is sent to the client and breaks header() calls
and binary responses.`,

	BadExample: "<?php\necho 1;\n?>\n",

	GoodExample: "<?php\necho 1;\n",
}

func checkNoClosingTag(tokens []token.Token, i int) ([]lint.Finding, error) {
	for _, tok := range tokens[i+1:] {
		switch tok.Type {
		case token.EOF:
			return []lint.Finding{lint.At(tokens[i], "A closing tag is not permitted at the end of a PHP file")}, nil
		case token.NEWLINE, token.WHITESPACE:
		case token.INLINE_HTML:
			if strings.TrimSpace(tok.Text) != "" {
				return nil, nil
			}
		default:
			return nil, nil
		}
	}
	return nil, nil
}
