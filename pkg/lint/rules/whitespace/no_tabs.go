package whitespace

import (
	"strings"

	"github.com/leapstack-labs/phpstyle/pkg/core"
	"github.com/leapstack-labs/phpstyle/pkg/lint"
	"github.com/leapstack-labs/phpstyle/pkg/token"
)

func init() {
	lint.Register(NoTabs)
}

var noTabsTokens = []token.TokenType{token.WHITESPACE}

// NoTabs reports whitespace runs that contain a tab character.
var NoTabs = lint.Definition{
	ID:              "no-tabs",
	Name:            "whitespace.no_tabs",
	Group:           "whitespace",
	Description:     "Spaces must be used for indentation and alignment; tabs are not allowed.",
	DefaultSeverity: core.SeverityWarning,
	Tokens:          noTabsTokens,
	New:             lint.Static(lint.NewRule("no-tabs", noTabsTokens, checkNoTabs)),

	Rationale: `Tabs render at different widths in different editors, so code aligned with
tabs looks misaligned to everyone else. Spaces look the same everywhere.`,

	BadExample: "if ($a) {\n\treturn 1;\n}",

	GoodExample: "if ($a) {\n    return 1;\n}",
}

func checkNoTabs(tokens []token.Token, i int) ([]lint.Finding, error) {
	tok := tokens[i]
	idx := strings.IndexByte(tok.Text, '\t')
	if idx < 0 {
		return nil, nil
	}
	pos := tok.Pos
	pos.Column += idx
	pos.Offset += idx
	return []lint.Finding{{Pos: pos, Message: "Tabs must not be used; use spaces"}}, nil
}
