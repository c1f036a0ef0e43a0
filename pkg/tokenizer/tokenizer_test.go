package tokenizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/phpstyle/pkg/token"
)

type tok struct {
	typ  token.TokenType
	text string
}

func scan(t *testing.T, src string, opts ...Option) []token.Token {
	t.Helper()
	tokens := New(opts...).TokenizeString(src)
	require.NotEmpty(t, tokens)
	require.Equal(t, token.EOF, tokens[len(tokens)-1].Type, "stream must end with EOF")
	return tokens
}

func assertTokens(t *testing.T, got []token.Token, want []tok) {
	t.Helper()
	require.Len(t, got, len(want), "wrong number of tokens: %v", got)
	for i, w := range want {
		assert.Equal(t, w.typ, got[i].Type, "token[%d] type (%q)", i, got[i].Text)
		assert.Equal(t, w.text, got[i].Text, "token[%d] text", i)
	}
}

func TestTokenize_InlineHTMLAndTags(t *testing.T) {
	got := scan(t, "<p>x</p>\n<?php echo 1; ?>\n<b><?= $a ?>")
	assertTokens(t, got, []tok{
		{token.INLINE_HTML, "<p>x</p>\n"},
		{token.OPEN_TAG, "<?php"},
		{token.WHITESPACE, " "},
		{token.ECHO, "echo"},
		{token.WHITESPACE, " "},
		{token.LNUMBER, "1"},
		{token.SEMICOLON, ";"},
		{token.WHITESPACE, " "},
		{token.CLOSE_TAG, "?>"},
		{token.NEWLINE, "\n"},
		{token.INLINE_HTML, "<b>"},
		{token.OPEN_TAG_WITH_ECHO, "<?="},
		{token.WHITESPACE, " "},
		{token.VARIABLE, "$a"},
		{token.WHITESPACE, " "},
		{token.CLOSE_TAG, "?>"},
		{token.EOF, ""},
	})
}

func TestTokenize_ShortOpenTag(t *testing.T) {
	got := scan(t, "<? foo();")
	assert.Equal(t, token.OPEN_TAG, got[0].Type)
	assert.Equal(t, "<?", got[0].Text)
	assert.Equal(t, token.IDENT, got[2].Type)
}

func TestTokenize_CodeModeTab(t *testing.T) {
	got := scan(t, "a\tb\n", WithCodeMode())
	assertTokens(t, got, []tok{
		{token.IDENT, "a"},
		{token.WHITESPACE, "\t"},
		{token.IDENT, "b"},
		{token.NEWLINE, "\n"},
		{token.EOF, ""},
	})
	assert.Equal(t, token.Position{Line: 1, Column: 2, Offset: 1}, got[1].Pos)
	assert.Equal(t, token.Position{Line: 2, Column: 1, Offset: 4}, got[4].Pos)
}

func TestTokenize_Keywords(t *testing.T) {
	got := scan(t, "IF ($a) Function foo() {} $o->class; Foo::NEW; $o?->list; function print() {}", WithCodeMode())

	byText := func(text string) []token.TokenType {
		var out []token.TokenType
		for _, tk := range got {
			if tk.Text == text {
				out = append(out, tk.Type)
			}
		}
		return out
	}

	assert.Equal(t, []token.TokenType{token.IF}, byText("IF"), "keyword lookup is case-insensitive")
	assert.Equal(t, []token.TokenType{token.FUNCTION}, byText("Function"))
	assert.Equal(t, []token.TokenType{token.IDENT}, byText("class"), "member after ->")
	assert.Equal(t, []token.TokenType{token.IDENT}, byText("NEW"), "member after ::")
	assert.Equal(t, []token.TokenType{token.IDENT}, byText("list"), "member after ?->")
	assert.Equal(t, []token.TokenType{token.IDENT}, byText("print"), "declared name after function")
}

func TestTokenize_ContextualKeywords(t *testing.T) {
	tests := []struct {
		name string
		src  string
		text string
		want token.TokenType
	}{
		{"enum declaration", "enum Suit: string {}", "enum", token.ENUM},
		{"enum across lines", "Enum\n  Status {}", "Enum", token.ENUM},
		{"enum in use statement", "use MyCLabs\\Enum\\Enum;", "Enum", token.IDENT},
		{"enum as parent class", "class Status extends Enum {}", "Enum", token.IDENT},
		{"enum before implements", "class Enum implements Foo {}", "Enum", token.IDENT},
		{"enum call", "Enum::from(1);", "Enum", token.IDENT},
		{"enum without name", "$a = enum;", "enum", token.IDENT},
		{"readonly property", "public readonly int $a;", "readonly", token.READONLY},
		{"readonly class", "readonly class Foo {}", "readonly", token.READONLY},
		{"readonly function call", "readonly ($a);", "readonly", token.IDENT},
		{"keyword after namespace separator", "new \\App\\List();", "List", token.IDENT},
		{"keyword before namespace separator", "use Foo\\Function\\Bar;", "Function", token.IDENT},
		{"relative name", "namespace\\foo();", "namespace", token.IDENT},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var found bool
			for _, tk := range scan(t, tt.src, WithCodeMode()) {
				if tk.Text == tt.text {
					found = true
					assert.Equal(t, tt.want, tk.Type)
				}
			}
			require.True(t, found, "no token %q", tt.text)
		})
	}
}

func TestTokenize_Comments(t *testing.T) {
	got := scan(t, "// a\n# b\n#[Attr]\n/* c */ /** d */ /**/", WithCodeMode())
	assertTokens(t, got, []tok{
		{token.COMMENT, "// a"},
		{token.NEWLINE, "\n"},
		{token.COMMENT, "# b"},
		{token.NEWLINE, "\n"},
		{token.ATTRIBUTE, "#["},
		{token.IDENT, "Attr"},
		{token.RBRACKET, "]"},
		{token.NEWLINE, "\n"},
		{token.BLOCK_COMMENT, "/* c */"},
		{token.WHITESPACE, " "},
		{token.DOC_COMMENT, "/** d */"},
		{token.WHITESPACE, " "},
		{token.BLOCK_COMMENT, "/**/"},
		{token.EOF, ""},
	})
}

func TestTokenize_LineCommentEndsAtCloseTag(t *testing.T) {
	got := scan(t, "<?php // hi ?>x")
	assertTokens(t, got, []tok{
		{token.OPEN_TAG, "<?php"},
		{token.WHITESPACE, " "},
		{token.COMMENT, "// hi "},
		{token.CLOSE_TAG, "?>"},
		{token.INLINE_HTML, "x"},
		{token.EOF, ""},
	})
}

func TestTokenize_Strings(t *testing.T) {
	got := scan(t, `'it\'s' "a\"b" `+"`ls`", WithCodeMode())
	assertTokens(t, got, []tok{
		{token.STRING, `'it\'s'`},
		{token.WHITESPACE, " "},
		{token.STRING, `"a\"b"`},
		{token.WHITESPACE, " "},
		{token.STRING, "`ls`"},
		{token.EOF, ""},
	})
}

func TestTokenize_Numbers(t *testing.T) {
	tests := []struct {
		src  string
		want token.TokenType
	}{
		{"42", token.LNUMBER},
		{"1_000", token.LNUMBER},
		{"0x1F", token.LNUMBER},
		{"0b101", token.LNUMBER},
		{"0o17", token.LNUMBER},
		{"4.2", token.DNUMBER},
		{".5", token.DNUMBER},
		{"1e10", token.DNUMBER},
		{"2.5E-3", token.DNUMBER},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got := scan(t, tt.src, WithCodeMode())
			assertTokens(t, got, []tok{{tt.want, tt.src}, {token.EOF, ""}})
		})
	}
}

func TestTokenize_Operators(t *testing.T) {
	got := scan(t, "$a ??= $b <=> $c?->d ... **= !== <>", WithCodeMode())
	var ops []token.TokenType
	for _, tk := range got {
		if token.IsOperator(tk.Type) {
			ops = append(ops, tk.Type)
		}
	}
	assert.Equal(t, []token.TokenType{
		token.COALESCE_ASSIGN, token.SPACESHIP, token.NULLSAFE_OP,
		token.ELLIPSIS, token.POW_ASSIGN, token.NOT_IDENTICAL, token.NE,
	}, ops)
}

func TestTokenize_Heredoc(t *testing.T) {
	src := "$x = <<<EOT\nline $a\n  EOT;\n$y = <<<'RAW'\nraw\nRAW\n"
	got := scan(t, src, WithCodeMode())

	var docs []string
	for _, tk := range got {
		if tk.Type == token.HEREDOC {
			docs = append(docs, tk.Text)
		}
	}
	assert.Equal(t, []string{"<<<EOT\nline $a\n  EOT", "<<<'RAW'\nraw\nRAW"}, docs)

	// Position after a multi-line token keeps counting lines.
	for _, tk := range got {
		if tk.Text == "$y" {
			assert.Equal(t, 4, tk.Pos.Line)
			assert.Equal(t, 1, tk.Pos.Column)
		}
	}
}

func TestTokenize_ShiftIsNotHeredoc(t *testing.T) {
	got := scan(t, "$a <<< 3", WithCodeMode())
	var types []token.TokenType
	for _, tk := range got {
		if token.IsOperator(tk.Type) {
			types = append(types, tk.Type)
		}
	}
	assert.Equal(t, []token.TokenType{token.SL, token.LT}, types)
}

func TestTokenize_IllegalSpans(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want tok
	}{
		{"unterminated string", "$a = 'abc", tok{token.ILLEGAL, "'abc"}},
		{"unterminated comment", "/* abc\n", tok{token.ILLEGAL, "/* abc\n"}},
		{"unterminated heredoc", "<<<EOT\nabc\n", tok{token.ILLEGAL, "<<<EOT\nabc\n"}},
		{"stray bytes", "a\x00\x01b", tok{token.ILLEGAL, "\x00\x01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scan(t, tt.src, WithCodeMode())
			found := false
			for _, tk := range got {
				if tk.Type == token.ILLEGAL {
					assert.Equal(t, tt.want.text, tk.Text)
					found = true
				}
			}
			assert.True(t, found, "expected an ILLEGAL token in %v", got)
		})
	}
}

func TestTokenize_LineEndings(t *testing.T) {
	got := scan(t, "a\r\nb\rc\nd", WithCodeMode())
	assertTokens(t, got, []tok{
		{token.IDENT, "a"},
		{token.NEWLINE, "\r\n"},
		{token.IDENT, "b"},
		{token.NEWLINE, "\r"},
		{token.IDENT, "c"},
		{token.NEWLINE, "\n"},
		{token.IDENT, "d"},
		{token.EOF, ""},
	})
	for i, line := range []int{1, 1, 2, 2, 3, 3, 4, 4} {
		assert.Equal(t, line, got[i].Pos.Line, "token[%d] line", i)
	}
}

// Concatenating token texts must reproduce the input, and offsets must be
// strictly increasing for non-empty tokens.
func TestTokenize_Completeness(t *testing.T) {
	inputs := []string{
		"",
		"plain html only",
		"<?php\n",
		"<?php\nnamespace App;\n\nclass Foo extends Bar\n{\n    public function baz(int $x): ?string\n    {\n        return $x > 0 ? \"yes {$x}\" : null;\n    }\n}\n",
		"<?php echo 'x' ?>\r\n<div><?= $y ?></div>",
		"<?php $s = <<<EOT\n  a\n  EOT;\n",
		"<?php /* never closed",
		"<?php 'never closed",
		"<?php \x00\xff\x01 $a;",
		"\xEF\xBB\xBF<?php echo 1;",
		"<?php\tif(\t$a ) {\r\n}\r",
		"<?php $a?->b::c->d;#[X]\n# c ?> tail",
	}

	for _, in := range inputs {
		for _, opts := range [][]Option{nil, {WithCodeMode()}} {
			tokens := New(opts...).TokenizeString(in)

			var b strings.Builder
			prevEnd := 0
			for i, tk := range tokens {
				b.WriteString(tk.Text)
				assert.Equal(t, prevEnd, tk.Pos.Offset, "token[%d] must start where the previous ended", i)
				assert.True(t, tk.Pos.IsValid(), "token[%d] position", i)
				if i > 0 && tk.Text != "" {
					assert.Greater(t, tk.Pos.Offset, tokens[i-1].Pos.Offset)
				}
				prevEnd = tk.End()
			}
			assert.Equal(t, in, b.String())

			last := tokens[len(tokens)-1]
			assert.Equal(t, token.EOF, last.Type)
			assert.Equal(t, len(in), last.Pos.Offset)
		}
	}
}

func TestTokenize_SourceFile(t *testing.T) {
	content := []byte("<?php\n$a = 1;\n")
	f := Tokenize("a.php", content)
	assert.Equal(t, "a.php", f.Path)
	assert.Equal(t, content, f.Content)
	assert.Equal(t, token.OPEN_TAG, f.Tokens[0].Type)
	assert.Empty(t, f.Violations)
}
