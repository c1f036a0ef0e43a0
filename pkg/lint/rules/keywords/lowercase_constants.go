package keywords

import (
	"strings"

	"github.com/leapstack-labs/phpstyle/pkg/core"
	"github.com/leapstack-labs/phpstyle/pkg/lint"
	"github.com/leapstack-labs/phpstyle/pkg/lint/internal/scan"
	"github.com/leapstack-labs/phpstyle/pkg/token"
)

func init() {
	lint.Register(LowercaseConstants)
}

var constantTokens = []token.TokenType{token.IDENT}

// LowercaseConstants reports true, false and null written with uppercase letters.
// Class members and declarations that happen to use these names are ignored.
var LowercaseConstants = lint.Definition{
	ID:              "lowercase-constants",
	Name:            "keywords.lowercase_constants",
	Group:           "keywords",
	Description:     "The PHP constants true, false and null must be lowercase.",
	DefaultSeverity: core.SeverityWarning,
	Tokens:          constantTokens,
	New:             lint.Static(lint.NewRule("lowercase-constants", constantTokens, checkLowercaseConstants)),

	Rationale: `Like keywords, these constants are case-insensitive; one spelling keeps
code greppable.`,

	BadExample: "return TRUE;",

	GoodExample: "return true;",
}

func checkLowercaseConstants(tokens []token.Token, i int) ([]lint.Finding, error) {
	tok := tokens[i]
	want := strings.ToLower(tok.Text)
	switch want {
	case "true", "false", "null":
	default:
		return nil, nil
	}
	if tok.Text == want || scan.IsMember(tokens, i) {
		return nil, nil
	}
	switch scan.TypeAt(tokens, scan.Prev(tokens, i)) {
	case token.CONST, token.FUNCTION, token.BACKSLASH:
		return nil, nil
	}
	return []lint.Finding{lint.At(tok, `TRUE, FALSE and NULL must be lowercase; expected "%s" but found "%s"`, want, tok.Text)}, nil
}
