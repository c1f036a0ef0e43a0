package naming

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/phpstyle/pkg/core"
	"github.com/leapstack-labs/phpstyle/pkg/lint"
	"github.com/leapstack-labs/phpstyle/pkg/lint/internal/scan"
	"github.com/leapstack-labs/phpstyle/pkg/token"
)

func init() {
	lint.Register(MethodName)
}

var methodTokens = []token.TokenType{token.FUNCTION}

var camelCaps = regexp.MustCompile(`^[a-z][A-Za-z0-9]*$`)

// MethodName reports methods whose name is not camelCase. A function counts
// as a method when a visibility or static/abstract/final modifier precedes it.
// Magic methods (__construct, __get, ...) are exempt.
var MethodName = lint.Definition{
	ID:              "method-name",
	Name:            "naming.method_name",
	Group:           "naming",
	Description:     "Method names must be declared in camelCase.",
	DefaultSeverity: core.SeverityWarning,
	Tokens:          methodTokens,
	New:             lint.Static(lint.NewRule("method-name", methodTokens, checkMethodName)),

	BadExample: "public function get_user_name()\n{\n}",

	GoodExample: "public function getUserName()\n{\n}",
}

func checkMethodName(tokens []token.Token, i int) ([]lint.Finding, error) {
	switch scan.TypeAt(tokens, scan.Prev(tokens, i)) {
	case token.PUBLIC, token.PROTECTED, token.PRIVATE, token.STATIC, token.ABSTRACT, token.FINAL:
	default:
		return nil, nil
	}

	next := scan.Next(tokens, i)
	if scan.TypeAt(tokens, next) == token.AMP {
		next = scan.Next(tokens, next)
	}
	if next < 0 || tokens[next].Type != token.IDENT {
		return nil, nil
	}

	name := tokens[next]
	if strings.HasPrefix(name.Text, "__") || camelCaps.MatchString(name.Text) {
		return nil, nil
	}
	return []lint.Finding{lint.At(name, `Method name "%s" is not in camel caps format`, name.Text)}, nil
}
