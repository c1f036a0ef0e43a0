package whitespace

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/phpstyle/pkg/core"
	"github.com/leapstack-labs/phpstyle/pkg/lint"
	"github.com/leapstack-labs/phpstyle/pkg/lint/internal/scan"
	"github.com/leapstack-labs/phpstyle/pkg/token"
)

func init() {
	lint.Register(Indentation)
}

var indentationTokens = []token.TokenType{token.WHITESPACE}

// Indentation reports leading spaces that are not a multiple of the indent width.
var Indentation = lint.Definition{
	ID:              "indentation",
	Name:            "whitespace.indentation",
	Group:           "whitespace",
	Description:     "Code must be indented by a multiple of the indent width (default 4 spaces).",
	DefaultSeverity: core.SeverityWarning,
	Tokens:          indentationTokens,
	ConfigKeys:      []string{"width"},
	New:             newIndentation,

	Rationale: `A fixed indent step keeps nesting depth readable at a glance.`,

	BadExample: "function a()\n{\n  return 1;\n}",

	GoodExample: "function a()\n{\n    return 1;\n}",
}

type indentationOptions struct {
	Width int `mapstructure:"width"`
}

func newIndentation(opts map[string]any) (lint.Rule, error) {
	cfg := indentationOptions{Width: 4}
	if err := lint.DecodeOptions(opts, &cfg); err != nil {
		return nil, err
	}
	if cfg.Width < 1 {
		return nil, fmt.Errorf("width must be positive, got %d", cfg.Width)
	}

	return lint.NewRule("indentation", indentationTokens, func(tokens []token.Token, i int) ([]lint.Finding, error) {
		tok := tokens[i]
		if !scan.AtLineStart(tokens, i) || strings.Contains(tok.Text, "\t") {
			return nil, nil
		}
		// Blank lines are trailing-whitespace's concern.
		switch scan.TypeAt(tokens, i+1) {
		case token.NEWLINE, token.EOF:
			return nil, nil
		}
		if n := len(tok.Text); n%cfg.Width != 0 {
			return []lint.Finding{lint.At(tok,
				"Line indented incorrectly; expected a multiple of %d spaces, found %d", cfg.Width, n)}, nil
		}
		return nil, nil
	}), nil
}
