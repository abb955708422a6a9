// Package lexer provides tokenization for MiniML source text.
package lexer

import "fmt"

// TokenType represents the type of a token.
type TokenType string

// Token types produced by the lexer.
const (
	// Basic tokens
	IDENTIFIER TokenType = "IDENTIFIER" // Variable and function names (e.g., f, acc, _tmp1)
	NUMBER     TokenType = "NUMBER"     // Integer literals (e.g., 0, 92)
	KEYWORD    TokenType = "KEYWORD"    // Reserved words, including true and false

	// Operators
	PLUS  TokenType = "PLUS"  // +
	MINUS TokenType = "MINUS" // -
	STAR  TokenType = "STAR"  // *
	SLASH TokenType = "SLASH" // /
	LT    TokenType = "LT"    // <
	EQ    TokenType = "EQ"    // ==
	GT    TokenType = "GT"    // >

	// Punctuation
	LPAREN TokenType = "LPAREN" // (
	RPAREN TokenType = "RPAREN" // )
	COLON  TokenType = "COLON"  // :
	ARROW  TokenType = "ARROW"  // ->

	// Special tokens
	EOF TokenType = "EOF" // End of input
)

// Reserved words.
const (
	KwIf    = "if"
	KwThen  = "then"
	KwElse  = "else"
	KwFun   = "fun"
	KwIs    = "is"
	KwLet   = "let"
	KwRec   = "rec"
	KwAnd   = "and"
	KwIn    = "in"
	KwTrue  = "true"
	KwFalse = "false"
	KwInt   = "int"
	KwBool  = "bool"
)

var keywords = map[string]bool{
	KwIf: true, KwThen: true, KwElse: true, KwFun: true, KwIs: true,
	KwLet: true, KwRec: true, KwAnd: true, KwIn: true,
	KwTrue: true, KwFalse: true, KwInt: true, KwBool: true,
}

// IsReserved reports whether word is a reserved word.
func IsReserved(word string) bool {
	return keywords[word]
}

// ValidIdentifier reports whether word lexes as a single IDENTIFIER token.
func ValidIdentifier(word string) bool {
	if word == "" || !isAlpha(word[0]) {
		return false
	}
	for i := 1; i < len(word); i++ {
		if !isAlphaNumeric(word[i]) {
			return false
		}
	}
	return !IsReserved(word)
}

// Token represents a single token from the lexer.
type Token struct {
	Type   TokenType `json:"type"`
	Value  string    `json:"value"`
	Line   int       `json:"line"`
	Column int       `json:"col"`
	Offset int       `json:"offset"`
}

// NewToken creates a new token with the given properties.
func NewToken(typ TokenType, value string, line, col, offset int) Token {
	return Token{
		Type:   typ,
		Value:  value,
		Line:   line,
		Column: col,
		Offset: offset,
	}
}

// IsKeyword returns true if the token is the given reserved word.
func (t Token) IsKeyword(word string) bool {
	return t.Type == KEYWORD && t.Value == word
}

// IsIdentifier returns true if the token is an identifier.
func (t Token) IsIdentifier() bool {
	return t.Type == IDENTIFIER
}

// IsOperator returns true if the token is an arithmetic or comparison operator.
func (t Token) IsOperator() bool {
	switch t.Type {
	case PLUS, MINUS, STAR, SLASH, LT, EQ, GT:
		return true
	}
	return false
}

// IsLiteral returns true if the token represents a literal value.
func (t Token) IsLiteral() bool {
	return t.Type == NUMBER || t.IsKeyword(KwTrue) || t.IsKeyword(KwFalse)
}

// Describe renders the token the way error messages quote it.
func (t Token) Describe() string {
	switch t.Type {
	case EOF:
		return "end of input"
	case IDENTIFIER:
		return fmt.Sprintf("identifier %q", t.Value)
	case NUMBER:
		return fmt.Sprintf("number %s", t.Value)
	default:
		return "`" + t.Value + "`"
	}
}
