package spacing

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/phpstyle/pkg/core"
	"github.com/leapstack-labs/phpstyle/pkg/lint"
	"github.com/leapstack-labs/phpstyle/pkg/lint/internal/scan"
	"github.com/leapstack-labs/phpstyle/pkg/token"
)

func init() {
	lint.Register(ControlSpacing)
}

var controlTokens = []token.TokenType{
	token.IF, token.ELSEIF, token.FOR, token.FOREACH,
	token.WHILE, token.SWITCH, token.CATCH, token.MATCH,
}

// ControlSpacing reports control structures without exactly one space before
// the opening parenthesis. Gaps holding comments are left alone.
var ControlSpacing = lint.Definition{
	ID:              "control-spacing",
	Name:            "spacing.control_structure",
	Group:           "spacing",
	Description:     "Control structure keywords must be followed by exactly one space before the opening parenthesis.",
	DefaultSeverity: core.SeverityWarning,
	Tokens:          controlTokens,
	New:             lint.Static(lint.NewRule("control-spacing", controlTokens, checkControlSpacing)),

	Rationale: `The space sets control structures apart from function calls, which take
no space before the parenthesis.`,

	BadExample: "if($a) {\n}\nforeach  ($b as $c) {\n}",

	GoodExample: "if ($a) {\n}\nforeach ($b as $c) {\n}",
}

func checkControlSpacing(tokens []token.Token, i int) ([]lint.Finding, error) {
	next := scan.Next(tokens, i)
	if scan.TypeAt(tokens, next) != token.LPAREN {
		return nil, nil
	}

	found := 0
	for _, tok := range tokens[i+1 : next] {
		switch tok.Type {
		case token.WHITESPACE:
			found += len(tok.Text)
		case token.NEWLINE:
			return []lint.Finding{controlFinding(tokens[i], "newline")}, nil
		default:
			return nil, nil
		}
	}
	if found == 1 && tokens[i+1].Text == " " {
		return nil, nil
	}
	return []lint.Finding{controlFinding(tokens[i], strconv.Itoa(found))}, nil
}

func controlFinding(tok token.Token, found string) lint.Finding {
	return lint.At(tok, "Expected 1 space after %s keyword; %s found", strings.ToUpper(tok.Text), found)
}
