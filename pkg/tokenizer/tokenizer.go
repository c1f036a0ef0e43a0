// Package tokenizer turns PHP source into the flat token stream that rules
// inspect. Whitespace, newlines and comments are kept as tokens, and the token
// texts always concatenate back to the original input.
package tokenizer

import (
	"github.com/leapstack-labs/phpstyle/pkg/core"
	"github.com/leapstack-labs/phpstyle/pkg/token"
)

// Tokenizer converts file contents into tokens.
// A Tokenizer has no mutable state and may be shared between goroutines.
type Tokenizer struct {
	codeMode bool
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithCodeMode starts scanning inside PHP code instead of inline HTML. Useful for
// snippets that carry no open tag.
func WithCodeMode() Option {
	return func(t *Tokenizer) {
		t.codeMode = true
	}
}

// New creates a Tokenizer.
func New(opts ...Option) *Tokenizer {
	t := &Tokenizer{}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tokenize scans content and returns a SourceFile holding the tokens. The
// returned file's Content is content itself; token texts are slices of one
// string copy of it. Tokenize never fails: malformed input yields ILLEGAL tokens.
func (t *Tokenizer) Tokenize(path string, content []byte) *core.SourceFile {
	return &core.SourceFile{
		Path:    path,
		Content: content,
		Tokens:  t.TokenizeString(string(content)),
	}
}

// TokenizeString scans src and returns its tokens, ending with EOF.
func (t *Tokenizer) TokenizeString(src string) []token.Token {
	l := NewLexer(src, t.codeMode)
	// Roughly one token per four bytes of typical PHP.
	tokens := make([]token.Token, 0, len(src)/4+1)
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

var defaultTokenizer = New()

// Tokenize scans content starting in inline HTML, as PHP does.
func Tokenize(path string, content []byte) *core.SourceFile {
	return defaultTokenizer.Tokenize(path, content)
}
