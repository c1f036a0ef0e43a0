package whitespace_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/phpstyle/pkg/lint"
	"github.com/leapstack-labs/phpstyle/pkg/lint/rules/internal/ruletest"
	_ "github.com/leapstack-labs/phpstyle/pkg/lint/rules/whitespace" // register rules
)

func TestNoTabs(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantCol []int
	}{
		{"tab indent", "<?php\n\treturn 1;\n", []int{1}},
		{"tab after spaces", "<?php\n  \treturn 1;\n", []int{3}},
		{"tab between tokens", "<?php $a =\t1;\n", []int{11}},
		{"spaces only", "<?php\n    return 1;\n", nil},
		{"tab inside string", "<?php $a = \"\t\";\n", nil},
		{"tab in inline html", "\t<p>\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs := ruletest.Run(t, tt.src, "no-tabs", nil)
			var cols []int
			for _, v := range vs {
				cols = append(cols, v.Column)
			}
			assert.Equal(t, tt.wantCol, cols)
		})
	}
}

func TestTrailingWhitespace(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want int
	}{
		{"end of line", "<?php\n$a = 1;  \n", 1},
		{"blank line with spaces", "<?php\n$a = 1;\n    \n$b = 2;\n", 1},
		{"end of file", "<?php\n$a = 1; ", 1},
		{"clean", "<?php\n$a = 1;\n", 0},
		{"before comment", "<?php\n$a = 1; // ok\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, ruletest.Run(t, tt.src, "trailing-whitespace", nil), tt.want)
		})
	}
}

func TestIndentation(t *testing.T) {
	tests := []struct {
		name string
		src  string
		opts map[string]any
		want []string
	}{
		{
			name: "multiple of four",
			src:  "<?php\nif ($a) {\n    if ($b) {\n        return;\n    }\n}\n",
		},
		{
			name: "two spaces",
			src:  "<?php\nif ($a) {\n  return;\n}\n",
			want: []string{"Line indented incorrectly; expected a multiple of 4 spaces, found 2"},
		},
		{
			name: "custom width",
			src:  "<?php\nif ($a) {\n  return;\n}\n",
			opts: map[string]any{"width": 2},
		},
		{
			name: "blank line ignored",
			src:  "<?php\n$a = 1;\n   \n",
		},
		{
			name: "tabs left to no-tabs",
			src:  "<?php\n\t return;\n",
		},
		{
			name: "docblock interior is one token",
			src:  "<?php\n/**\n * Doc.\n */\nfunction a() {}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs := ruletest.Run(t, tt.src, "indentation", tt.opts)
			if tt.want == nil {
				assert.Empty(t, vs)
				return
			}
			assert.Equal(t, tt.want, ruletest.Messages(vs))
		})
	}
}

func TestIndentation_InvalidWidth(t *testing.T) {
	errs := ruletest.Prepare(t, "indentation", map[string]any{"width": 0})
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], lint.ErrInvalidOptions)
}

func TestLineEndings(t *testing.T) {
	vs := ruletest.Run(t, "<?php\r\n$a = 1;\r\n$b = 2;\n", "line-endings", nil)
	require.Len(t, vs, 1, "reported once per file")
	assert.Equal(t, 1, vs[0].Line)
	assert.Equal(t, `End of line character is invalid; expected "\n" but found "\r\n"`, vs[0].Message)

	vs = ruletest.Run(t, "<?php\r\n$a = 1;\r\n", "line-endings", map[string]any{"style": "crlf"})
	assert.Empty(t, vs)

	vs = ruletest.Run(t, "<?php\n$a = 1;\n", "line-endings", map[string]any{"style": "CRLF"})
	require.Len(t, vs, 1)

	assert.Len(t, ruletest.Prepare(t, "line-endings", map[string]any{"style": "unix"}), 1)
}

func TestLineLength(t *testing.T) {
	long := "<?php\n$a = '" + strings.Repeat("x", 80) + "';\n"
	huge := "<?php\n$a = '" + strings.Repeat("x", 130) + "';\n"
	unicode := "<?php\n$a = '" + strings.Repeat("é", 70) + "';\n"

	vs := ruletest.Run(t, long, "line-length", nil)
	require.Len(t, vs, 1)
	assert.Equal(t, "Line exceeds 80 characters; contains 88 characters", vs[0].Message)
	assert.Equal(t, 2, vs[0].Line)
	assert.Equal(t, 1, vs[0].Column)

	vs = ruletest.Run(t, huge, "line-length", nil)
	require.Len(t, vs, 1)
	assert.Equal(t, "Line exceeds maximum limit of 120 characters; contains 138 characters", vs[0].Message)

	assert.Empty(t, ruletest.Run(t, unicode, "line-length", nil), "width counts characters, not bytes")

	vs = ruletest.Run(t, "<?php\n$a = '"+strings.Repeat("x", 80)+"';", "line-length", nil)
	assert.Len(t, vs, 1, "last line without newline")

	assert.Empty(t, ruletest.Run(t, huge, "line-length", map[string]any{"limit": 0, "absolute_limit": 0}))
	assert.Len(t, ruletest.Prepare(t, "line-length", map[string]any{"limit": 100, "absolute_limit": 90}), 1)
}

func TestLineLength_MultiLineToken(t *testing.T) {
	src := "<?php\n/* " + strings.Repeat("x", 10) + "\n" + strings.Repeat("y", 85) + " */\n"
	vs := ruletest.Run(t, src, "line-length", nil)
	require.Len(t, vs, 1)
	assert.Equal(t, 3, vs[0].Line)
	assert.Contains(t, vs[0].Message, "contains 88 characters")
}

func TestLineLength_InsideTokens(t *testing.T) {
	long := strings.Repeat("x", 130)
	soft := strings.Repeat("y", 90)

	tests := []struct {
		name  string
		src   string
		lines []int
		width []int
	}{
		{
			name:  "docblock line",
			src:   "<?php\n/**\n * " + long + "\n */\nfunction a() {}\n",
			lines: []int{3},
			width: []int{133},
		},
		{
			name:  "first line of a multi-line string",
			src:   "<?php\n$a = '" + long + "\nshort';\n",
			lines: []int{2},
			width: []int{136},
		},
		{
			name:  "heredoc body",
			src:   "<?php\n$a = <<<EOT\n" + soft + "\nEOT;\n",
			lines: []int{3},
			width: []int{90},
		},
		{
			name:  "every line of one span once",
			src:   "<?php\n/* a\n" + soft + "\n*/ $b = '" + soft + "';\n",
			lines: []int{3, 4},
			width: []int{90, 101},
		},
		{
			name:  "crlf inside a comment",
			src:   "<?php\r\n/* a\r\n" + soft + " */\r\n",
			lines: []int{3},
			width: []int{93},
		},
		{
			name: "short lines",
			src:  "<?php\n/**\n * Doc.\n */\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs := ruletest.Run(t, tt.src, "line-length", nil)
			var lines, widths []int
			for _, v := range vs {
				lines = append(lines, v.Line)
				assert.Equal(t, 1, v.Column)
				var w int
				_, err := fmt.Sscanf(v.Message[strings.LastIndex(v.Message, "contains"):], "contains %d characters", &w)
				require.NoError(t, err, v.Message)
				widths = append(widths, w)
			}
			assert.Equal(t, tt.lines, lines)
			assert.Equal(t, tt.width, widths)
		})
	}
}

func TestLineLength_Offsets(t *testing.T) {
	src := "<?php\n/*\n" + strings.Repeat("z", 85) + "\n*/\n"
	vs := ruletest.Run(t, src, "line-length", nil)
	require.Len(t, vs, 1)
	assert.Equal(t, strings.Index(src, "zzz"), vs[0].Offset)
}

func TestBlankLines(t *testing.T) {
	tests := []struct {
		name string
		src  string
		opts map[string]any
		want []int
	}{
		{"two allowed", "<?php\n$a = 1;\n\n\n$b = 2;\n", nil, nil},
		{"three reported once", "<?php\n$a = 1;\n\n\n\n\n\n$b = 2;\n", nil, []int{5}},
		{"whitespace-only lines count", "<?php\n$a = 1;\n  \n \n\t\n$b = 2;\n", nil, []int{5}},
		{"two runs", "<?php\n$a;\n\n\n\n$b;\n\n\n\n$c;\n", nil, []int{5, 9}},
		{"max zero", "<?php\n$a;\n\n$b;\n", map[string]any{"max": 0}, []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs := ruletest.Run(t, tt.src, "blank-lines", tt.opts)
			var lines []int
			for _, v := range vs {
				lines = append(lines, v.Line)
			}
			assert.Equal(t, tt.want, lines)
		})
	}
}
