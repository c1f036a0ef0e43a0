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
	lint.Register(LineEndings)
}

var lineEndingTokens = []token.TokenType{token.NEWLINE}

var lineEndingStyles = map[string]string{
	"lf":   "\n",
	"crlf": "\r\n",
	"cr":   "\r",
}

// LineEndings reports the first line break that does not use the configured style.
var LineEndings = lint.Definition{
	ID:              "line-endings",
	Name:            "whitespace.line_endings",
	Group:           "whitespace",
	Description:     `All lines must end with the configured line ending ("lf" by default).`,
	DefaultSeverity: core.SeverityError,
	Tokens:          lineEndingTokens,
	ConfigKeys:      []string{"style"},
	New:             newLineEndings,

	Rationale: `Mixed line endings produce whole-file diffs and confuse tools that split
on one style only.`,

	BadExample: "<?php\r\necho 1;\r\n",

	GoodExample: "<?php\necho 1;\n",
}

type lineEndingOptions struct {
	Style string `mapstructure:"style"`
}

func newLineEndings(opts map[string]any) (lint.Rule, error) {
	cfg := lineEndingOptions{Style: "lf"}
	if err := lint.DecodeOptions(opts, &cfg); err != nil {
		return nil, err
	}
	want, ok := lineEndingStyles[strings.ToLower(cfg.Style)]
	if !ok {
		return nil, fmt.Errorf("style must be lf, crlf or cr, got %q", cfg.Style)
	}

	return lint.NewRule("line-endings", lineEndingTokens, func(tokens []token.Token, i int) ([]lint.Finding, error) {
		if tokens[i].Text == want {
			return nil, nil
		}
		// Report once per file: stay quiet when an earlier break was already wrong.
		for j := i - 1; j >= 0; j-- {
			if tokens[j].Type == token.NEWLINE && tokens[j].Text != want {
				return nil, nil
			}
		}
		return []lint.Finding{lint.At(tokens[i],
			"End of line character is invalid; expected %s but found %s",
			scan.Quote(want), scan.Quote(tokens[i].Text))}, nil
	}), nil
}
