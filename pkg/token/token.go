// Package token defines the lexical token types of PHP source code.
//
// Every keyword and operator has its own TokenType so rules can subscribe to exactly
// the tokens they inspect. Whitespace, newlines and comments are first-class tokens.
package token

import (
	"fmt"
	"strings"
)

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

//nolint:revive // ALL_CAPS names mirror the PHP tokenizer conventions
const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Markup
	INLINE_HTML        // text outside <?php ... ?>
	OPEN_TAG           // <?php or <?
	OPEN_TAG_WITH_ECHO // <?=
	CLOSE_TAG          // ?>

	// Trivia
	WHITESPACE    // spaces and tabs
	NEWLINE       // \n, \r\n or \r
	COMMENT       // // ... or # ...
	BLOCK_COMMENT // /* ... */
	DOC_COMMENT   // /** ... */

	// Names and literals
	VARIABLE // $name
	IDENT    // name
	LNUMBER  // 42, 0x2A, 0b101, 0o52, 1_000
	DNUMBER  // 4.2, 1e10
	STRING   // 'a', "a", `a`
	HEREDOC  // <<<EOT ... EOT

	operatorBeg
	// Operators and punctuation
	PLUS            // +
	MINUS           // -
	STAR            // *
	SLASH           // /
	PERCENT         // %
	POW             // **
	DOT             // .
	ASSIGN          // =
	PLUS_ASSIGN     // +=
	MINUS_ASSIGN    // -=
	MUL_ASSIGN      // *=
	DIV_ASSIGN      // /=
	CONCAT_ASSIGN   // .=
	MOD_ASSIGN      // %=
	POW_ASSIGN      // **=
	AND_ASSIGN      // &=
	OR_ASSIGN       // |=
	XOR_ASSIGN      // ^=
	SL_ASSIGN       // <<=
	SR_ASSIGN       // >>=
	COALESCE_ASSIGN // ??=
	EQ              // ==
	IDENTICAL       // ===
	NE              // != or <>
	NOT_IDENTICAL   // !==
	LT              // <
	GT              // >
	LE              // <=
	GE              // >=
	SPACESHIP       // <=>
	BOOL_AND        // &&
	BOOL_OR         // ||
	NOT             // !
	AMP             // &
	PIPE            // |
	CARET           // ^
	TILDE           // ~
	SL              // <<
	SR              // >>
	INC             // ++
	DEC             // --
	OBJECT_OP       // ->
	NULLSAFE_OP     // ?->
	DOUBLE_ARROW    // =>
	DOUBLE_COLON    // ::
	QUESTION        // ?
	COALESCE        // ??
	COLON           // :
	SEMICOLON       // ;
	COMMA           // ,
	LPAREN          // (
	RPAREN          // )
	LBRACKET        // [
	RBRACKET        // ]
	LBRACE          // {
	RBRACE          // }
	AT              // @
	DOLLAR          // $
	BACKSLASH       // \
	ELLIPSIS        // ...
	ATTRIBUTE       // #[
	operatorEnd

	keywordBeg
	// Keywords (alphabetical)
	ABSTRACT
	AND
	ARRAY
	AS
	BREAK
	CALLABLE
	CASE
	CATCH
	CLASS
	CLONE
	CONST
	CONTINUE
	DECLARE
	DEFAULT
	DO
	ECHO
	ELSE
	ELSEIF
	EMPTY
	ENDDECLARE
	ENDFOR
	ENDFOREACH
	ENDIF
	ENDSWITCH
	ENDWHILE
	ENUM
	EVAL
	EXIT
	EXTENDS
	FINAL
	FINALLY
	FN
	FOR
	FOREACH
	FUNCTION
	GLOBAL
	GOTO
	IF
	IMPLEMENTS
	INCLUDE
	INCLUDE_ONCE
	INSTANCEOF
	INSTEADOF
	INTERFACE
	ISSET
	LIST
	MATCH
	NAMESPACE
	NEW
	OR
	PRINT
	PRIVATE
	PROTECTED
	PUBLIC
	READONLY
	REQUIRE
	REQUIRE_ONCE
	RETURN
	STATIC
	SWITCH
	THROW
	TRAIT
	TRY
	UNSET
	USE
	VAR
	WHILE
	XOR
	YIELD
	keywordEnd
)

// NumTypes is the number of token types; valid types are in [0, NumTypes).
const NumTypes = int(keywordEnd)

// String returns the name of the token type, e.g. "WHITESPACE" or "FUNCTION".
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// tokenNames maps token types to their names. Keyword names are filled in from the
// keywords table by init.
var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	INLINE_HTML:        "INLINE_HTML",
	OPEN_TAG:           "OPEN_TAG",
	OPEN_TAG_WITH_ECHO: "OPEN_TAG_WITH_ECHO",
	CLOSE_TAG:          "CLOSE_TAG",

	WHITESPACE:    "WHITESPACE",
	NEWLINE:       "NEWLINE",
	COMMENT:       "COMMENT",
	BLOCK_COMMENT: "BLOCK_COMMENT",
	DOC_COMMENT:   "DOC_COMMENT",

	VARIABLE: "VARIABLE",
	IDENT:    "IDENT",
	LNUMBER:  "LNUMBER",
	DNUMBER:  "DNUMBER",
	STRING:   "STRING",
	HEREDOC:  "HEREDOC",

	PLUS:            "PLUS",
	MINUS:           "MINUS",
	STAR:            "STAR",
	SLASH:           "SLASH",
	PERCENT:         "PERCENT",
	POW:             "POW",
	DOT:             "DOT",
	ASSIGN:          "ASSIGN",
	PLUS_ASSIGN:     "PLUS_ASSIGN",
	MINUS_ASSIGN:    "MINUS_ASSIGN",
	MUL_ASSIGN:      "MUL_ASSIGN",
	DIV_ASSIGN:      "DIV_ASSIGN",
	CONCAT_ASSIGN:   "CONCAT_ASSIGN",
	MOD_ASSIGN:      "MOD_ASSIGN",
	POW_ASSIGN:      "POW_ASSIGN",
	AND_ASSIGN:      "AND_ASSIGN",
	OR_ASSIGN:       "OR_ASSIGN",
	XOR_ASSIGN:      "XOR_ASSIGN",
	SL_ASSIGN:       "SL_ASSIGN",
	SR_ASSIGN:       "SR_ASSIGN",
	COALESCE_ASSIGN: "COALESCE_ASSIGN",
	EQ:              "EQ",
	IDENTICAL:       "IDENTICAL",
	NE:              "NE",
	NOT_IDENTICAL:   "NOT_IDENTICAL",
	LT:              "LT",
	GT:              "GT",
	LE:              "LE",
	GE:              "GE",
	SPACESHIP:       "SPACESHIP",
	BOOL_AND:        "BOOL_AND",
	BOOL_OR:         "BOOL_OR",
	NOT:             "NOT",
	AMP:             "AMP",
	PIPE:            "PIPE",
	CARET:           "CARET",
	TILDE:           "TILDE",
	SL:              "SL",
	SR:              "SR",
	INC:             "INC",
	DEC:             "DEC",
	OBJECT_OP:       "OBJECT_OP",
	NULLSAFE_OP:     "NULLSAFE_OP",
	DOUBLE_ARROW:    "DOUBLE_ARROW",
	DOUBLE_COLON:    "DOUBLE_COLON",
	QUESTION:        "QUESTION",
	COALESCE:        "COALESCE",
	COLON:           "COLON",
	SEMICOLON:       "SEMICOLON",
	COMMA:           "COMMA",
	LPAREN:          "LPAREN",
	RPAREN:          "RPAREN",
	LBRACKET:        "LBRACKET",
	RBRACKET:        "RBRACKET",
	LBRACE:          "LBRACE",
	RBRACE:          "RBRACE",
	AT:              "AT",
	DOLLAR:          "DOLLAR",
	BACKSLASH:       "BACKSLASH",
	ELLIPSIS:        "ELLIPSIS",
	ATTRIBUTE:       "ATTRIBUTE",
}

// keywords maps lowercase keyword strings to their token types.
var keywords = map[string]TokenType{
	"abstract":     ABSTRACT,
	"and":          AND,
	"array":        ARRAY,
	"as":           AS,
	"break":        BREAK,
	"callable":     CALLABLE,
	"case":         CASE,
	"catch":        CATCH,
	"class":        CLASS,
	"clone":        CLONE,
	"const":        CONST,
	"continue":     CONTINUE,
	"declare":      DECLARE,
	"default":      DEFAULT,
	"die":          EXIT,
	"do":           DO,
	"echo":         ECHO,
	"else":         ELSE,
	"elseif":       ELSEIF,
	"empty":        EMPTY,
	"enddeclare":   ENDDECLARE,
	"endfor":       ENDFOR,
	"endforeach":   ENDFOREACH,
	"endif":        ENDIF,
	"endswitch":    ENDSWITCH,
	"endwhile":     ENDWHILE,
	"enum":         ENUM,
	"eval":         EVAL,
	"exit":         EXIT,
	"extends":      EXTENDS,
	"final":        FINAL,
	"finally":      FINALLY,
	"fn":           FN,
	"for":          FOR,
	"foreach":      FOREACH,
	"function":     FUNCTION,
	"global":       GLOBAL,
	"goto":         GOTO,
	"if":           IF,
	"implements":   IMPLEMENTS,
	"include":      INCLUDE,
	"include_once": INCLUDE_ONCE,
	"instanceof":   INSTANCEOF,
	"insteadof":    INSTEADOF,
	"interface":    INTERFACE,
	"isset":        ISSET,
	"list":         LIST,
	"match":        MATCH,
	"namespace":    NAMESPACE,
	"new":          NEW,
	"or":           OR,
	"print":        PRINT,
	"private":      PRIVATE,
	"protected":    PROTECTED,
	"public":       PUBLIC,
	"readonly":     READONLY,
	"require":      REQUIRE,
	"require_once": REQUIRE_ONCE,
	"return":       RETURN,
	"static":       STATIC,
	"switch":       SWITCH,
	"throw":        THROW,
	"trait":        TRAIT,
	"try":          TRY,
	"unset":        UNSET,
	"use":          USE,
	"var":          VAR,
	"while":        WHILE,
	"xor":          XOR,
	"yield":        YIELD,
}

// symbols maps operator and punctuation text to token types. The lexer matches
// the longest entry at the current position.
var symbols = map[string]TokenType{
	"+":   PLUS,
	"-":   MINUS,
	"*":   STAR,
	"/":   SLASH,
	"%":   PERCENT,
	"**":  POW,
	".":   DOT,
	"=":   ASSIGN,
	"+=":  PLUS_ASSIGN,
	"-=":  MINUS_ASSIGN,
	"*=":  MUL_ASSIGN,
	"/=":  DIV_ASSIGN,
	".=":  CONCAT_ASSIGN,
	"%=":  MOD_ASSIGN,
	"**=": POW_ASSIGN,
	"&=":  AND_ASSIGN,
	"|=":  OR_ASSIGN,
	"^=":  XOR_ASSIGN,
	"<<=": SL_ASSIGN,
	">>=": SR_ASSIGN,
	"??=": COALESCE_ASSIGN,
	"==":  EQ,
	"===": IDENTICAL,
	"!=":  NE,
	"<>":  NE,
	"!==": NOT_IDENTICAL,
	"<":   LT,
	">":   GT,
	"<=":  LE,
	">=":  GE,
	"<=>": SPACESHIP,
	"&&":  BOOL_AND,
	"||":  BOOL_OR,
	"!":   NOT,
	"&":   AMP,
	"|":   PIPE,
	"^":   CARET,
	"~":   TILDE,
	"<<":  SL,
	">>":  SR,
	"++":  INC,
	"--":  DEC,
	"->":  OBJECT_OP,
	"?->": NULLSAFE_OP,
	"=>":  DOUBLE_ARROW,
	"::":  DOUBLE_COLON,
	"?":   QUESTION,
	"??":  COALESCE,
	":":   COLON,
	";":   SEMICOLON,
	",":   COMMA,
	"(":   LPAREN,
	")":   RPAREN,
	"[":   LBRACKET,
	"]":   RBRACKET,
	"{":   LBRACE,
	"}":   RBRACE,
	"@":   AT,
	"$":   DOLLAR,
	"\\":  BACKSLASH,
	"...": ELLIPSIS,
}

// MaxSymbolLen is the length in bytes of the longest operator.
const MaxSymbolLen = 3

// typesByName is the reverse of tokenNames.
var typesByName = make(map[string]TokenType, NumTypes)

func init() {
	for word, t := range keywords {
		if word == "die" { // alias of exit
			continue
		}
		tokenNames[t] = strings.ToUpper(word)
	}
	for t, name := range tokenNames {
		typesByName[name] = t
	}
}

// LookupIdent returns the keyword token type for ident, matched case-insensitively,
// or IDENT when ident is not a keyword.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[strings.ToLower(ident)]; ok {
		return tok
	}
	return IDENT
}

// LookupSymbol returns the operator token type for the exact text s.
func LookupSymbol(s string) (TokenType, bool) {
	tok, ok := symbols[s]
	return tok, ok
}

// LookupType returns the token type with the given name, as produced by String.
func LookupType(name string) (TokenType, bool) {
	t, ok := typesByName[strings.ToUpper(name)]
	return t, ok
}

// IsKeyword returns true if the token type is a keyword.
func IsKeyword(t TokenType) bool {
	return t > keywordBeg && t < keywordEnd
}

// IsOperator returns true if the token type is an operator or punctuation.
func IsOperator(t TokenType) bool {
	return t > operatorBeg && t < operatorEnd
}

// IsTrivia returns true for tokens that carry no syntax: whitespace, newlines
// and comments.
func IsTrivia(t TokenType) bool {
	switch t {
	case WHITESPACE, NEWLINE, COMMENT, BLOCK_COMMENT, DOC_COMMENT:
		return true
	}
	return false
}

// Keywords returns all keyword token types in declaration order.
func Keywords() []TokenType {
	out := make([]TokenType, 0, keywordEnd-keywordBeg-1)
	for t := keywordBeg + 1; t < keywordEnd; t++ {
		out = append(out, t)
	}
	return out
}

// Token represents a lexical token with position information.
// Text is a slice of the original input.
type Token struct {
	Type TokenType
	Text string
	Pos  Position
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Pos.Offset + len(t.Text)
}

// Is reports whether the token has one of the given types.
func (t Token) Is(types ...TokenType) bool {
	for _, typ := range types {
		if t.Type == typ {
			return true
		}
	}
	return false
}
