package spacing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/phpstyle/pkg/lint/rules/internal/ruletest"
	_ "github.com/leapstack-labs/phpstyle/pkg/lint/rules/spacing" // register rules
)

func TestControlSpacing(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "one space",
			src:  "<?php\nif ($a) {\n} elseif ($b) {\n}\nwhile ($c) {}\nforeach ($d as $e) {}\n",
		},
		{
			name: "no space",
			src:  "<?php\nif($a) {}\n",
			want: []string{"Expected 1 space after IF keyword; 0 found"},
		},
		{
			name: "two spaces",
			src:  "<?php\nforeach  ($a as $b) {}\n",
			want: []string{"Expected 1 space after FOREACH keyword; 2 found"},
		},
		{
			name: "tab",
			src:  "<?php\nswitch\t($a) {}\n",
			want: []string{"Expected 1 space after SWITCH keyword; 1 found"},
		},
		{
			name: "newline",
			src:  "<?php\nwhile\n($a) {}\n",
			want: []string{"Expected 1 space after WHILE keyword; newline found"},
		},
		{
			name: "catch and match",
			src:  "<?php\ntry {} catch(E $e) {}\n$x = match($y) {};\n",
			want: []string{
				"Expected 1 space after CATCH keyword; 0 found",
				"Expected 1 space after MATCH keyword; 0 found",
			},
		},
		{
			name: "comment in gap",
			src:  "<?php\nif /* x */ ($a) {}\n",
		},
		{
			name: "else if",
			src:  "<?php\nelse if ($a): endif;\n",
		},
		{
			name: "method called match",
			src:  "<?php\n$a->match($b);\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs := ruletest.Run(t, tt.src, "control-spacing", nil)
			if tt.want == nil {
				assert.Empty(t, vs)
				return
			}
			assert.Equal(t, tt.want, ruletest.Messages(vs))
		})
	}
}

func TestCommaSpacing(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "clean",
			src:  "<?php\nfoo($a, $b, $c);\n",
		},
		{
			name: "missing space after",
			src:  "<?php\nfoo($a,$b);\n",
			want: []string{"Expected 1 space after comma; 0 found"},
		},
		{
			name: "space before",
			src:  "<?php\nfoo($a , $b);\n",
			want: []string{"Expected 0 spaces before comma; 1 found"},
		},
		{
			name: "too many after",
			src:  "<?php\nfoo($a,   $b);\n",
			want: []string{"Expected 1 space after comma; 3 found"},
		},
		{
			name: "both sides",
			src:  "<?php\nfoo($a  ,$b);\n",
			want: []string{
				"Expected 0 spaces before comma; 2 found",
				"Expected 1 space after comma; 0 found",
			},
		},
		{
			name: "end of line and trailing comma",
			src:  "<?php\n$a = [\n    1,\n    2,\n];\nfoo($a,);\n",
		},
		{
			name: "leading comma",
			src:  "<?php\n$a = [\n    1\n    , 2\n];\n",
		},
		{
			name: "comment after",
			src:  "<?php\n$a = [1, // one\n    2,  // two\n];\n",
		},
		{
			name: "commas in strings",
			src:  "<?php\n$a = 'x,y ,z';\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs := ruletest.Run(t, tt.src, "comma-spacing", nil)
			if tt.want == nil {
				assert.Empty(t, vs)
				return
			}
			assert.Equal(t, tt.want, ruletest.Messages(vs))
		})
	}
}

func TestCommaSpacing_Positions(t *testing.T) {
	vs := ruletest.Run(t, "<?php\nfoo($a ,$b);\n", "comma-spacing", nil)
	require.Len(t, vs, 2)
	assert.Equal(t, 7, vs[0].Column, "reported at the whitespace")
	assert.Equal(t, 8, vs[1].Column, "reported at the comma")
}
