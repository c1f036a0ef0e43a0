package naming

import (
	"regexp"

	"github.com/leapstack-labs/phpstyle/pkg/core"
	"github.com/leapstack-labs/phpstyle/pkg/lint"
	"github.com/leapstack-labs/phpstyle/pkg/lint/internal/scan"
	"github.com/leapstack-labs/phpstyle/pkg/token"
)

func init() {
	lint.Register(ClassName)
}

var classTokens = []token.TokenType{token.CLASS, token.INTERFACE, token.TRAIT, token.ENUM}

var studlyCaps = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)

var declarationKinds = map[token.TokenType]string{
	token.CLASS:     "Class",
	token.INTERFACE: "Interface",
	token.TRAIT:     "Trait",
	token.ENUM:      "Enum",
}

// ClassName reports type declarations whose name is not StudlyCaps.
// Anonymous classes have no name and are skipped.
var ClassName = lint.Definition{
	ID:              "class-name",
	Name:            "naming.class_name",
	Group:           "naming",
	Description:     "Class, interface, trait and enum names must be declared in StudlyCaps.",
	DefaultSeverity: core.SeverityError,
	Tokens:          classTokens,
	New:             lint.Static(lint.NewRule("class-name", classTokens, checkClassName)),

	Rationale: `Autoloaders map class names to file paths; one casing convention keeps
that mapping predictable.`,

	BadExample: "class user_repository\n{\n}",

	GoodExample: "class UserRepository\n{\n}",
}

func checkClassName(tokens []token.Token, i int) ([]lint.Finding, error) {
	next := scan.Next(tokens, i)
	if next < 0 || tokens[next].Type != token.IDENT {
		return nil, nil
	}
	name := tokens[next]
	if studlyCaps.MatchString(name.Text) {
		return nil, nil
	}
	return []lint.Finding{lint.At(name, `%s name "%s" is not in StudlyCaps format`,
		declarationKinds[tokens[i].Type], name.Text)}, nil
}
