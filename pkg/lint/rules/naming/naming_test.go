package naming_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/phpstyle/pkg/lint/rules/internal/ruletest"
	_ "github.com/leapstack-labs/phpstyle/pkg/lint/rules/naming" // register rules
)

func TestClassName(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "studly caps",
			src:  "<?php\nclass UserRepository {}\ninterface Countable2 {}\n",
		},
		{
			name: "snake case",
			src:  "<?php\nclass user_repository {}\n",
			want: []string{`Class name "user_repository" is not in StudlyCaps format`},
		},
		{
			name: "every declaration kind",
			src:  "<?php\ninterface fooable {}\ntrait bar_trait {}\nenum status {}\n",
			want: []string{
				`Interface name "fooable" is not in StudlyCaps format`,
				`Trait name "bar_trait" is not in StudlyCaps format`,
				`Enum name "status" is not in StudlyCaps format`,
			},
		},
		{
			name: "anonymous class",
			src:  "<?php\n$a = new class() {};\n$b = new class {};\n",
		},
		{
			name: "class constant",
			src:  "<?php\n$a = Foo::class;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs := ruletest.Run(t, tt.src, "class-name", nil)
			if tt.want == nil {
				assert.Empty(t, vs)
				return
			}
			assert.Equal(t, tt.want, ruletest.Messages(vs))
		})
	}
}

func TestClassName_ReportsAtName(t *testing.T) {
	vs := ruletest.Run(t, "<?php\nfinal class  lower {}\n", "class-name", nil)
	require.Len(t, vs, 1)
	assert.Equal(t, 2, vs[0].Line)
	assert.Equal(t, 14, vs[0].Column)
}

func TestMethodName(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "camel case",
			src:  "<?php\nclass A {\n    public function getName() {}\n    private static function build2() {}\n}\n",
		},
		{
			name: "snake case",
			src:  "<?php\nclass A {\n    public function get_name() {}\n}\n",
			want: []string{`Method name "get_name" is not in camel caps format`},
		},
		{
			name: "studly caps",
			src:  "<?php\nclass A {\n    protected function GetName() {}\n    abstract function Run();\n}\n",
			want: []string{
				`Method name "GetName" is not in camel caps format`,
				`Method name "Run" is not in camel caps format`,
			},
		},
		{
			name: "by reference",
			src:  "<?php\nclass A {\n    public function &Ref_it() {}\n}\n",
			want: []string{`Method name "Ref_it" is not in camel caps format`},
		},
		{
			name: "magic methods",
			src:  "<?php\nclass A {\n    public function __construct() {}\n    public function __toString() {}\n}\n",
		},
		{
			name: "plain functions",
			src:  "<?php\nfunction snake_case() {}\n$f = function () {};\n",
		},
		{
			name: "static closure",
			src:  "<?php\n$f = static function () {};\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs := ruletest.Run(t, tt.src, "method-name", nil)
			if tt.want == nil {
				assert.Empty(t, vs)
				return
			}
			assert.Equal(t, tt.want, ruletest.Messages(vs))
		})
	}
}
