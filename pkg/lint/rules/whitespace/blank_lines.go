package whitespace

import (
	"fmt"

	"github.com/leapstack-labs/phpstyle/pkg/core"
	"github.com/leapstack-labs/phpstyle/pkg/lint"
	"github.com/leapstack-labs/phpstyle/pkg/lint/internal/scan"
	"github.com/leapstack-labs/phpstyle/pkg/token"
)

func init() {
	lint.Register(BlankLines)
}

var blankLineTokens = []token.TokenType{token.NEWLINE}

// BlankLines reports runs of more than max consecutive blank lines, once per run.
var BlankLines = lint.Definition{
	ID:              "blank-lines",
	Name:            "whitespace.blank_lines",
	Group:           "whitespace",
	Description:     "No more than the configured number of consecutive blank lines (default 2).",
	DefaultSeverity: core.SeverityWarning,
	Tokens:          blankLineTokens,
	ConfigKeys:      []string{"max"},
	New:             newBlankLines,

	Rationale: `One blank line separates ideas; several in a row are usually leftovers
from deleted code.`,

	BadExample: "$a = 1;\n\n\n\n$b = 2;",

	GoodExample: "$a = 1;\n\n$b = 2;",
}

type blankLineOptions struct {
	Max int `mapstructure:"max"`
}

func newBlankLines(opts map[string]any) (lint.Rule, error) {
	cfg := blankLineOptions{Max: 2}
	if err := lint.DecodeOptions(opts, &cfg); err != nil {
		return nil, err
	}
	if cfg.Max < 0 {
		return nil, fmt.Errorf("max must not be negative, got %d", cfg.Max)
	}

	return lint.NewRule("blank-lines", blankLineTokens, func(tokens []token.Token, i int) ([]lint.Finding, error) {
		// Count blank lines ending here, looking back at most max+1 lines.
		run := 0
		for j := i; run <= cfg.Max+1; {
			prev, blank := blankLineBefore(tokens, j)
			if !blank {
				break
			}
			run++
			j = prev
		}
		if run != cfg.Max+1 {
			return nil, nil
		}
		return []lint.Finding{{
			Pos:     scan.LineStart(tokens[i].Pos),
			Message: fmt.Sprintf("Found more than %d consecutive blank lines", cfg.Max),
		}}, nil
	}), nil
}

// blankLineBefore reports whether the line ended by the newline at i is blank
// (empty or whitespace only) and follows another line break, returning that
// earlier newline's index.
func blankLineBefore(tokens []token.Token, i int) (int, bool) {
	j := i - 1
	if scan.TypeAt(tokens, j) == token.WHITESPACE {
		j--
	}
	if scan.TypeAt(tokens, j) == token.NEWLINE {
		return j, true
	}
	return -1, false
}
