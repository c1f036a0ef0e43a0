package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		ident string
		want  TokenType
	}{
		{"function", FUNCTION},
		{"FUNCTION", FUNCTION},
		{"Function", FUNCTION},
		{"class", CLASS},
		{"die", EXIT},
		{"exit", EXIT},
		{"include_once", INCLUDE_ONCE},
		{"foo", IDENT},
		{"strlen", IDENT},
		{"true", IDENT},
	}

	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			assert.Equal(t, tt.want, LookupIdent(tt.ident))
		})
	}
}

func TestTypeNamesAreUnique(t *testing.T) {
	seen := make(map[string]TokenType)
	for i := 0; i < NumTypes; i++ {
		typ := TokenType(i)
		if typ == operatorBeg || typ == operatorEnd || typ == keywordBeg {
			continue
		}
		name := typ.String()
		require.NotContains(t, name, "TOKEN(", "type %d has no name", i)
		prev, dup := seen[name]
		require.False(t, dup, "name %q used by %d and %d", name, prev, i)
		seen[name] = typ
	}
}

func TestLookupType(t *testing.T) {
	typ, ok := LookupType("WHITESPACE")
	require.True(t, ok)
	assert.Equal(t, WHITESPACE, typ)

	typ, ok = LookupType("function")
	require.True(t, ok)
	assert.Equal(t, FUNCTION, typ)

	typ, ok = LookupType("EXIT")
	require.True(t, ok)
	assert.Equal(t, EXIT, typ)

	_, ok = LookupType("NOPE")
	assert.False(t, ok)
}

func TestSymbolsFitMaxLen(t *testing.T) {
	for text, typ := range symbols {
		assert.LessOrEqual(t, len(text), MaxSymbolLen, text)
		assert.True(t, IsOperator(typ), text)
	}
}

func TestClassification(t *testing.T) {
	assert.True(t, IsKeyword(ABSTRACT))
	assert.True(t, IsKeyword(YIELD))
	assert.False(t, IsKeyword(IDENT))
	assert.False(t, IsKeyword(ATTRIBUTE))

	assert.True(t, IsOperator(PLUS))
	assert.True(t, IsOperator(ATTRIBUTE))
	assert.False(t, IsOperator(ABSTRACT))

	assert.True(t, IsTrivia(DOC_COMMENT))
	assert.False(t, IsTrivia(INLINE_HTML))

	assert.Len(t, Keywords(), int(keywordEnd-keywordBeg-1))
}

func TestTokenEnd(t *testing.T) {
	tok := Token{Type: IDENT, Text: "foo", Pos: Position{Line: 1, Column: 7, Offset: 6}}
	assert.Equal(t, 9, tok.End())
	assert.True(t, tok.Is(VARIABLE, IDENT))
	assert.False(t, tok.Is(VARIABLE))
	assert.Equal(t, "1:7", tok.Pos.String())
}
