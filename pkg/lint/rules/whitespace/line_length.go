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
	lint.Register(LineLength)
}

var lineLengthTokens = []token.TokenType{token.NEWLINE, token.EOF}

// LineLength reports lines longer than the soft limit, or the absolute limit
// when one is set. A limit of 0 disables that check.
var LineLength = lint.Definition{
	ID:              "line-length",
	Name:            "whitespace.line_length",
	Group:           "whitespace",
	Description:     "Lines should not exceed the soft limit and must not exceed the absolute limit.",
	DefaultSeverity: core.SeverityWarning,
	Tokens:          lineLengthTokens,
	ConfigKeys:      []string{"limit", "absolute_limit"},
	New:             newLineLength,

	Rationale: `Long lines force horizontal scrolling and make side-by-side diffs hard to read.`,

	BadExample: `$result = $this->service->findAllByCustomerAndStatus($customer, Status::ACTIVE, $limit, $offset);`,

	GoodExample: `$result = $this->service->findAllByCustomerAndStatus(
    $customer,
    Status::ACTIVE,
    $limit,
    $offset
);`,
}

type lineLengthOptions struct {
	Limit         int `mapstructure:"limit"`
	AbsoluteLimit int `mapstructure:"absolute_limit"`
}

func newLineLength(opts map[string]any) (lint.Rule, error) {
	cfg := lineLengthOptions{Limit: 80, AbsoluteLimit: 120}
	if err := lint.DecodeOptions(opts, &cfg); err != nil {
		return nil, err
	}
	if cfg.Limit < 0 || cfg.AbsoluteLimit < 0 {
		return nil, fmt.Errorf("limits must not be negative")
	}
	if cfg.Limit > 0 && cfg.AbsoluteLimit > 0 && cfg.AbsoluteLimit < cfg.Limit {
		return nil, fmt.Errorf("absolute_limit %d is below limit %d", cfg.AbsoluteLimit, cfg.Limit)
	}

	return lint.NewRule("line-length", lineLengthTokens, func(tokens []token.Token, i int) ([]lint.Finding, error) {
		// The physical lines since the previous NEWLINE token, including the
		// ones inside multi-line comments, strings and heredocs.
		first := i
		for first > 0 && tokens[first-1].Type != token.NEWLINE {
			first--
		}
		if first == i {
			return nil, nil
		}

		var b strings.Builder
		for _, t := range tokens[first:i] {
			b.WriteString(t.Text)
		}

		var findings []lint.Finding
		start := tokens[first].Pos
		offset := start.Offset
		for n, line := range scan.Lines(b.String()) {
			pos := token.Position{Line: start.Line + n, Column: 1, Offset: offset}
			offset += len(line)

			width := scan.Width(strings.TrimRight(line, "\r\n"))
			switch {
			case cfg.AbsoluteLimit > 0 && width > cfg.AbsoluteLimit:
				findings = append(findings, lint.Finding{Pos: pos, Message: fmt.Sprintf(
					"Line exceeds maximum limit of %d characters; contains %d characters", cfg.AbsoluteLimit, width)})
			case cfg.Limit > 0 && width > cfg.Limit:
				findings = append(findings, lint.Finding{Pos: pos, Message: fmt.Sprintf(
					"Line exceeds %d characters; contains %d characters", cfg.Limit, width)})
			}
		}
		return findings, nil
	}), nil
}
