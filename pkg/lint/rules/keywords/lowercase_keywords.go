package keywords

import (
	"strings"

	"github.com/leapstack-labs/phpstyle/pkg/core"
	"github.com/leapstack-labs/phpstyle/pkg/lint"
	"github.com/leapstack-labs/phpstyle/pkg/token"
)

func init() {
	lint.Register(LowercaseKeywords)
}

var keywordTokens = token.Keywords()

// LowercaseKeywords reports keywords that contain uppercase letters.
var LowercaseKeywords = lint.Definition{
	ID:              "lowercase-keywords",
	Name:            "keywords.lowercase",
	Group:           "keywords",
	Description:     "PHP keywords must be lowercase.",
	DefaultSeverity: core.SeverityWarning,
	Tokens:          keywordTokens,
	New:             lint.Static(lint.NewRule("lowercase-keywords", keywordTokens, checkLowercaseKeywords)),

	Rationale: `PHP keywords are case-insensitive, so only convention keeps them
consistent. Lowercase is what the manual and nearly all code use.`,

	BadExample: "IF ($a) {\n    RETURN Array();\n}",

	GoodExample: "if ($a) {\n    return array();\n}",
}

func checkLowercaseKeywords(tokens []token.Token, i int) ([]lint.Finding, error) {
	tok := tokens[i]
	want := strings.ToLower(tok.Text)
	if tok.Text == want {
		return nil, nil
	}
	return []lint.Finding{lint.At(tok, `PHP keywords must be lowercase; expected "%s" but found "%s"`, want, tok.Text)}, nil
}
