package functions

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/phpstyle/pkg/core"
	"github.com/leapstack-labs/phpstyle/pkg/lint"
	"github.com/leapstack-labs/phpstyle/pkg/lint/internal/scan"
	"github.com/leapstack-labs/phpstyle/pkg/token"
)

func init() {
	lint.Register(ForbiddenFunctions)
}

var defaultForbidden = []string{"eval", "create_function"}

// ForbiddenFunctions reports calls to the functions listed in the "functions"
// option. Names are matched case-insensitively. Language constructs such as
// eval or exit are reported wherever they appear; other names only when called.
var ForbiddenFunctions = lint.Definition{
	ID:              "forbidden-functions",
	Name:            "functions.forbidden",
	Group:           "functions",
	Description:     "Listed functions must not be called (default: eval, create_function).",
	DefaultSeverity: core.SeverityError,
	Tokens:          forbiddenTokens(defaultForbidden),
	ConfigKeys:      []string{"functions"},
	New:             newForbiddenFunctions,

	Rationale: `eval and create_function execute strings as code; they are slow, hard to
analyse and a common injection vector.`,

	BadExample: `$f = create_function('$a', 'return $a * 2;');`,

	GoodExample: `$f = fn($a) => $a * 2;`,
}

type forbiddenOptions struct {
	Functions []string `mapstructure:"functions"`
}

// forbiddenTokens returns IDENT plus the keyword type of every listed name.
func forbiddenTokens(names []string) []token.TokenType {
	types := []token.TokenType{token.IDENT}
	for _, name := range names {
		if t := token.LookupIdent(name); token.IsKeyword(t) && !slices.Contains(types, t) {
			types = append(types, t)
		}
	}
	return types
}

func newForbiddenFunctions(opts map[string]any) (lint.Rule, error) {
	cfg := forbiddenOptions{Functions: defaultForbidden}
	if err := lint.DecodeOptions(opts, &cfg); err != nil {
		return nil, err
	}

	forbidden := make(map[string]bool, len(cfg.Functions))
	for _, name := range cfg.Functions {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			return nil, fmt.Errorf("functions must not contain empty names")
		}
		forbidden[canonicalName(name)] = true
	}

	return lint.NewRule("forbidden-functions", forbiddenTokens(cfg.Functions), func(tokens []token.Token, i int) ([]lint.Finding, error) {
		tok := tokens[i]
		name := strings.ToLower(tok.Text)
		if !forbidden[canonicalName(name)] {
			return nil, nil
		}
		if tok.Type == token.IDENT && !isGlobalCall(tokens, i) {
			return nil, nil
		}
		return []lint.Finding{lint.At(tok, "The use of function %s() is forbidden", name)}, nil
	}), nil
}

// canonicalName folds die into exit; both spell the same construct.
func canonicalName(name string) string {
	if name == "die" {
		return "exit"
	}
	return name
}

// isGlobalCall reports whether the identifier at i calls a function rather than
// naming a member, a declaration, a class or a namespaced function.
func isGlobalCall(tokens []token.Token, i int) bool {
	if scan.TypeAt(tokens, scan.Next(tokens, i)) != token.LPAREN || scan.IsMember(tokens, i) {
		return false
	}

	prev := scan.Prev(tokens, i)
	switch scan.TypeAt(tokens, prev) {
	case token.FUNCTION, token.NEW, token.CONST:
		return false
	case token.BACKSLASH:
		// \eval() is global, Foo\eval() is not.
		return prev == 0 || (tokens[prev-1].Type != token.IDENT && tokens[prev-1].Type != token.NAMESPACE)
	}
	return true
}
