package script

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/leapstack-labs/phpstyle/pkg/token"
)

// tokenList is a read-only Starlark sequence over a file's tokens.
// Elements are built on access.
type tokenList struct {
	tokens []token.Token
}

var (
	_ starlark.Indexable = (*tokenList)(nil)
	_ starlark.Sequence  = (*tokenList)(nil)
)

func newTokenList(tokens []token.Token) *tokenList {
	return &tokenList{tokens: tokens}
}

func (l *tokenList) String() string        { return fmt.Sprintf("<tokens len=%d>", len(l.tokens)) }
func (l *tokenList) Type() string          { return "tokens" }
func (l *tokenList) Freeze()               {}
func (l *tokenList) Truth() starlark.Bool  { return len(l.tokens) > 0 }
func (l *tokenList) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: tokens") }
func (l *tokenList) Len() int              { return len(l.tokens) }

func (l *tokenList) Index(i int) starlark.Value {
	return tokenValue(l.tokens[i])
}

func (l *tokenList) Iterate() starlark.Iterator {
	return &tokenIterator{list: l}
}

type tokenIterator struct {
	list *tokenList
	i    int
}

func (it *tokenIterator) Next(p *starlark.Value) bool {
	if it.i >= len(it.list.tokens) {
		return false
	}
	*p = tokenValue(it.list.tokens[it.i])
	it.i++
	return true
}

func (it *tokenIterator) Done() {}

// tokenValue exposes one token as a struct.
func tokenValue(tok token.Token) starlark.Value {
	return starlarkstruct.FromStringDict(starlark.String("token"), starlark.StringDict{
		"type":   starlark.String(tok.Type.String()),
		"text":   starlark.String(tok.Text),
		"line":   starlark.MakeInt(tok.Pos.Line),
		"column": starlark.MakeInt(tok.Pos.Column),
		"offset": starlark.MakeInt(tok.Pos.Offset),
	})
}
