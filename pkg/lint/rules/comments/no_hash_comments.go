package comments

import (
	"strings"

	"github.com/leapstack-labs/phpstyle/pkg/core"
	"github.com/leapstack-labs/phpstyle/pkg/lint"
	"github.com/leapstack-labs/phpstyle/pkg/token"
)

func init() {
	lint.Register(NoHashComments)
}

var commentTokens = []token.TokenType{token.COMMENT}

// NoHashComments reports Perl-style # line comments. Attributes (#[...]) are
// separate tokens and never match.
var NoHashComments = lint.Definition{
	ID:              "no-hash-comments",
	Name:            "comments.no_hash",
	Group:           "comments",
	Description:     "Line comments must start with //, not #.",
	DefaultSeverity: core.SeverityWarning,
	Tokens:          commentTokens,
	New:             lint.Static(lint.NewRule("no-hash-comments", commentTokens, checkNoHashComments)),

	BadExample: "# increment the counter\n$i++;",

	GoodExample: "// increment the counter\n$i++;",
}

func checkNoHashComments(tokens []token.Token, i int) ([]lint.Finding, error) {
	if !strings.HasPrefix(tokens[i].Text, "#") {
		return nil, nil
	}
	return []lint.Finding{lint.At(tokens[i], `Perl-style comments are not allowed; use "// Comment." instead`)}, nil
}
