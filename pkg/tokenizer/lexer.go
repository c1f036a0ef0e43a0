package tokenizer

import (
	"strings"

	"github.com/leapstack-labs/phpstyle/pkg/token"
)

// Lexer produces PHP tokens one at a time. It never fails: bytes that cannot
// start a token, and strings, comments or heredocs that run off the end of the
// input, come back as ILLEGAL tokens. The texts of all tokens returned up to and
// including EOF concatenate to the input.
type Lexer struct {
	input     string
	pos       int  // offset of ch
	ch        byte // current char under examination
	line      int  // current line number (1-based)
	lineStart int  // offset of the first byte of the current line

	inCode       bool // inside <?php ... ?>
	closeNewline bool // a newline right after ?> belongs to the tag
	memberNext   bool // the next identifier is a member or declaration name
}

// NewLexer creates a new Lexer for input. When inCode is false the lexer starts in
// inline HTML, as the PHP engine does.
func NewLexer(input string, inCode bool) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		inCode: inCode,
	}
	if len(input) > 0 {
		l.ch = input[0]
	}
	return l
}

// atEOF reports whether the whole input has been consumed.
func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// readChar consumes the current character.
func (l *Lexer) readChar() {
	if l.atEOF() {
		return
	}
	if l.ch == '\n' || (l.ch == '\r' && l.peekChar() != '\n') {
		l.line++
		l.lineStart = l.pos + 1
	}
	l.pos++
	if l.atEOF() {
		l.ch = 0
	} else {
		l.ch = l.input[l.pos]
	}
}

// readN consumes n characters.
func (l *Lexer) readN(n int) {
	for ; n > 0; n-- {
		l.readChar()
	}
}

// advanceTo consumes characters up to offset end.
func (l *Lexer) advanceTo(end int) {
	for l.pos < end && !l.atEOF() {
		l.readChar()
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	return l.peekAt(1)
}

func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) hasPrefix(s string) bool {
	return strings.HasPrefix(l.input[l.pos:], s)
}

// currentPos returns the current position.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.pos - l.lineStart + 1,
		Offset: l.pos,
	}
}

// newToken creates a token spanning from start to the current position.
func (l *Lexer) newToken(typ token.TokenType, start token.Position) token.Token {
	return token.Token{Type: typ, Text: l.input[start.Offset:l.pos], Pos: start}
}

// NextToken returns the next token. Once the input is exhausted it returns a
// zero-length EOF token on every call.
func (l *Lexer) NextToken() token.Token {
	start := l.currentPos()
	if l.atEOF() {
		return token.Token{Type: token.EOF, Pos: start}
	}

	var tok token.Token
	if l.inCode {
		tok = l.lexCode(start)
	} else {
		tok = l.lexHTML(start)
	}

	if !token.IsTrivia(tok.Type) {
		switch tok.Type {
		case token.OBJECT_OP, token.NULLSAFE_OP, token.DOUBLE_COLON, token.FUNCTION, token.CONST:
			l.memberNext = true
		default:
			l.memberNext = false
		}
	}
	return tok
}

// lexHTML scans inline HTML up to the next open tag.
func (l *Lexer) lexHTML(start token.Position) token.Token {
	if l.closeNewline {
		l.closeNewline = false
		if l.ch == '\n' || l.ch == '\r' {
			return l.lexNewline(start)
		}
	}

	if l.hasPrefix("<?") {
		return l.lexOpenTag(start)
	}

	end := len(l.input)
	if idx := strings.Index(l.input[l.pos:], "<?"); idx >= 0 {
		end = l.pos + idx
	}
	l.advanceTo(end)
	return l.newToken(token.INLINE_HTML, start)
}

func (l *Lexer) lexOpenTag(start token.Position) token.Token {
	l.inCode = true
	l.memberNext = false

	rest := l.input[l.pos:]
	switch {
	case len(rest) >= 5 && strings.EqualFold(rest[:5], "<?php") && (len(rest) == 5 || isSpace(rest[5])):
		l.readN(5)
		return l.newToken(token.OPEN_TAG, start)
	case strings.HasPrefix(rest, "<?="):
		l.readN(3)
		return l.newToken(token.OPEN_TAG_WITH_ECHO, start)
	default:
		l.readN(2)
		return l.newToken(token.OPEN_TAG, start)
	}
}

// lexCode scans one token inside PHP code.
func (l *Lexer) lexCode(start token.Position) token.Token {
	switch {
	case l.ch == ' ' || l.ch == '\t':
		for l.ch == ' ' || l.ch == '\t' {
			l.readChar()
		}
		return l.newToken(token.WHITESPACE, start)
	case l.ch == '\n' || l.ch == '\r':
		return l.lexNewline(start)
	case l.ch == '?' && l.peekChar() == '>':
		l.readN(2)
		l.inCode = false
		l.closeNewline = true
		return l.newToken(token.CLOSE_TAG, start)
	case l.ch == '#' && l.peekChar() == '[':
		l.readN(2)
		return l.newToken(token.ATTRIBUTE, start)
	case l.ch == '#' || (l.ch == '/' && l.peekChar() == '/'):
		return l.lexLineComment(start)
	case l.ch == '/' && l.peekChar() == '*':
		return l.lexBlockComment(start)
	case l.ch == '$' && isIdentStart(l.peekChar()):
		l.readChar()
		l.readIdentifier()
		return l.newToken(token.VARIABLE, start)
	case l.ch == '\'' || l.ch == '"' || l.ch == '`':
		return l.lexQuoted(start)
	case l.ch == '<' && l.hasPrefix("<<<"):
		if tok, ok := l.lexHeredoc(start); ok {
			return tok
		}
	case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())):
		return l.lexNumber(start)
	case isIdentStart(l.ch):
		l.readIdentifier()
		tok := l.newToken(token.IDENT, start)
		if !l.memberNext && !l.inQualifiedName(start.Offset) {
			tok.Type = l.keyword(tok.Text)
		}
		return tok
	}

	// Operators, longest match first.
	for n := token.MaxSymbolLen; n > 0; n-- {
		if l.pos+n > len(l.input) {
			continue
		}
		if typ, ok := token.LookupSymbol(l.input[l.pos : l.pos+n]); ok {
			l.readN(n)
			return l.newToken(typ, start)
		}
	}

	// Stray bytes: one ILLEGAL token for the whole run.
	l.readChar()
	for !l.atEOF() && !canStart[l.ch] {
		l.readChar()
	}
	return l.newToken(token.ILLEGAL, start)
}

// inQualifiedName reports whether the identifier that started at offset and
// ends at l.pos is a segment of a namespaced name such as Foo\Enum.
func (l *Lexer) inQualifiedName(offset int) bool {
	return (offset > 0 && l.input[offset-1] == '\\') || l.ch == '\\'
}

// keyword resolves the identifier just read. enum and readonly are keywords
// only in the positions where PHP's own scanner treats them as such.
func (l *Lexer) keyword(text string) token.TokenType {
	typ := token.LookupIdent(text)
	switch typ {
	case token.ENUM:
		if !l.enumDeclaration() {
			return token.IDENT
		}
	case token.READONLY:
		if i := l.skipBlanks(l.pos); i < len(l.input) && l.input[i] == '(' {
			return token.IDENT
		}
	}
	return typ
}

// enumDeclaration reports whether the enum just read starts a declaration:
// blanks, then a name other than extends or implements.
func (l *Lexer) enumDeclaration() bool {
	i := l.skipBlanks(l.pos)
	if i == l.pos || i >= len(l.input) || !isIdentStart(l.input[i]) {
		return false
	}
	j := i
	for j < len(l.input) && isIdentChar(l.input[j]) {
		j++
	}
	word := l.input[i:j]
	return !strings.EqualFold(word, "extends") && !strings.EqualFold(word, "implements")
}

// skipBlanks returns the offset of the first non-blank byte at or after i.
func (l *Lexer) skipBlanks(i int) int {
	for i < len(l.input) && isSpace(l.input[i]) {
		i++
	}
	return i
}

// lexNewline consumes one \n, \r\n or \r.
func (l *Lexer) lexNewline(start token.Position) token.Token {
	if l.ch == '\r' && l.peekChar() == '\n' {
		l.readChar()
	}
	l.readChar()
	return l.newToken(token.NEWLINE, start)
}

// lexLineComment consumes a // or # comment. It ends before the line break or
// before a closing tag.
func (l *Lexer) lexLineComment(start token.Position) token.Token {
	for !l.atEOF() && l.ch != '\n' && l.ch != '\r' {
		if l.ch == '?' && l.peekChar() == '>' {
			break
		}
		l.readChar()
	}
	return l.newToken(token.COMMENT, start)
}

// lexBlockComment consumes a /* */ or /** */ comment; an unterminated comment
// runs to the end of the input as ILLEGAL.
func (l *Lexer) lexBlockComment(start token.Position) token.Token {
	typ := token.BLOCK_COMMENT
	if l.hasPrefix("/**") && !l.hasPrefix("/**/") {
		typ = token.DOC_COMMENT
	}

	idx := strings.Index(l.input[l.pos+2:], "*/")
	if idx < 0 {
		l.advanceTo(len(l.input))
		return l.newToken(token.ILLEGAL, start)
	}
	l.advanceTo(l.pos + 2 + idx + 2)
	return l.newToken(typ, start)
}

// lexQuoted consumes a single, double or backtick quoted string. Backslash
// escapes the next byte.
func (l *Lexer) lexQuoted(start token.Position) token.Token {
	quote := l.ch
	l.readChar()
	for !l.atEOF() {
		switch l.ch {
		case '\\':
			l.readN(2)
		case quote:
			l.readChar()
			return l.newToken(token.STRING, start)
		default:
			l.readChar()
		}
	}
	return l.newToken(token.ILLEGAL, start)
}

// lexHeredoc consumes a heredoc or nowdoc, terminator included. It returns false
// without consuming anything when "<<<" is not followed by a valid label line.
func (l *Lexer) lexHeredoc(start token.Position) (token.Token, bool) {
	in := l.input
	i := l.pos + 3
	for i < len(in) && (in[i] == ' ' || in[i] == '\t') {
		i++
	}

	var quote byte
	if i < len(in) && (in[i] == '\'' || in[i] == '"') {
		quote = in[i]
		i++
	}
	if i >= len(in) || !isIdentStart(in[i]) {
		return token.Token{}, false
	}
	labelStart := i
	for i < len(in) && isIdentChar(in[i]) {
		i++
	}
	label := in[labelStart:i]
	if quote != 0 {
		if i >= len(in) || in[i] != quote {
			return token.Token{}, false
		}
		i++
	}

	// The label must end its line.
	switch {
	case strings.HasPrefix(in[i:], "\r\n"):
		i += 2
	case i < len(in) && (in[i] == '\n' || in[i] == '\r'):
		i++
	default:
		return token.Token{}, false
	}

	// Find a line whose first non-blank text is the label.
	for lineStart := i; lineStart < len(in); {
		j := lineStart
		for j < len(in) && (in[j] == ' ' || in[j] == '\t') {
			j++
		}
		end := j + len(label)
		if strings.HasPrefix(in[j:], label) && (end >= len(in) || !isIdentChar(in[end])) {
			l.advanceTo(end)
			return l.newToken(token.HEREDOC, start), true
		}

		next := strings.IndexAny(in[lineStart:], "\r\n")
		if next < 0 {
			break
		}
		lineStart += next + 1
		if in[lineStart-1] == '\r' && lineStart < len(in) && in[lineStart] == '\n' {
			lineStart++
		}
	}

	l.advanceTo(len(in))
	return l.newToken(token.ILLEGAL, start), true
}

// lexNumber consumes an integer or floating point literal.
func (l *Lexer) lexNumber(start token.Position) token.Token {
	if l.ch == '0' {
		var digit func(byte) bool
		switch l.peekChar() {
		case 'x', 'X':
			digit = isHexDigit
		case 'b', 'B':
			digit = func(c byte) bool { return c == '0' || c == '1' }
		case 'o', 'O':
			digit = func(c byte) bool { return c >= '0' && c <= '7' }
		}
		if digit != nil {
			l.readN(2)
			for digit(l.ch) || l.ch == '_' {
				l.readChar()
			}
			return l.newToken(token.LNUMBER, start)
		}
	}

	typ := token.LNUMBER
	l.readDigits()
	if l.ch == '.' && isDigit(l.peekChar()) {
		typ = token.DNUMBER
		l.readChar()
		l.readDigits()
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekAt(2))) {
			typ = token.DNUMBER
			l.readN(2)
			l.readDigits()
		}
	}
	return l.newToken(typ, start)
}

func (l *Lexer) readDigits() {
	for isDigit(l.ch) || (l.ch == '_' && isDigit(l.peekChar())) {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() {
	for !l.atEOF() && isIdentChar(l.ch) {
		l.readChar()
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// isIdentStart follows PHP's label rule: [a-zA-Z_\x80-\xff].
func isIdentStart(ch byte) bool {
	return isLetter(ch) || ch == '_' || ch >= 0x80
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

// canStart marks bytes that begin some token in code mode.
var canStart [256]bool

func init() {
	for c := 0; c < 256; c++ {
		ch := byte(c)
		canStart[c] = isIdentChar(ch) || isSpace(ch)
	}
	for _, c := range "$'\"`#/.?<" {
		canStart[c] = true
	}
	for c := 0; c < 256; c++ {
		if _, ok := token.LookupSymbol(string(rune(c))); ok && c < 0x80 {
			canStart[c] = true
		}
	}
}
