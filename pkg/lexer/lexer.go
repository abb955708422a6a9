// Package lexer provides tokenization for MiniML source text.
//
// The lexer is a pull source: the parser asks for one token at a time with
// Next and never needs more than one token of lookahead. Tokenize drains the
// whole input for tools that want the flat token list.
//
// Token Types:
//
//	IDENTIFIER  - [_a-zA-Z][_a-zA-Z0-9]* that is not a reserved word
//	NUMBER      - [0-9]+, must fit in an int64
//	KEYWORD     - if then else fun is let rec and in true false int bool
//	PLUS MINUS STAR SLASH          - + - * /
//	LT EQ GT                       - < == >
//	LPAREN RPAREN COLON ARROW      - ( ) : ->
//	EOF         - end of input, repeated on every later call to Next
//
// Output Format of TokenizeJSON:
//
//	[{"type": "KEYWORD", "value": "let", "line": 1, "col": 0, "offset": 0}, ...]
package lexer

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Lexer tokenizes MiniML source code.
type Lexer struct {
	input string // The source code being tokenized
	pos   int    // Current position in input
	line  int    // Current line number (1-indexed)
	col   int    // Current column number (0-indexed)
}

// New creates a new Lexer for the given input.
func New(input string) *Lexer {
	return &Lexer{
		input: input,
		pos:   0,
		line:  1,
		col:   0,
	}
}

// NewFromReader creates a new Lexer from an io.Reader.
func NewFromReader(r io.Reader) (*Lexer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return New(string(data)), nil
}

// Next scans and returns the next token. At the end of input it returns an
// EOF token, and keeps doing so on every later call.
func (l *Lexer) Next() (Token, error) {
	l.skipWhitespace()
	if l.isAtEnd() {
		return NewToken(EOF, "", l.line, l.col, l.pos), nil
	}
	return l.scanToken()
}

// Tokenize processes the entire input and returns all tokens, without the
// trailing EOF token.
func (l *Lexer) Tokenize() ([]Token, error) {
	tokens := make([]Token, 0)
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// TokenizeJSON processes the input and returns tokens as a JSON array.
func (l *Lexer) TokenizeJSON() (string, error) {
	tokens, err := l.Tokenize()
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(tokens)
	if err != nil {
		return "", fmt.Errorf("failed to marshal tokens: %w", err)
	}
	return string(data), nil
}

// Helper methods for character access and movement

func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekNext() byte {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

func (l *Lexer) advance() byte {
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch
}

func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) errorf(line, col, offset int, format string, args ...interface{}) *Error {
	return &Error{
		Line:   line,
		Column: col,
		Offset: offset,
		Msg:    fmt.Sprintf(format, args...),
	}
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}

// scanToken scans a single token from the current position.
func (l *Lexer) scanToken() (Token, error) {
	line, col, start := l.line, l.col, l.pos
	char := l.peek()
	next := l.peekNext()

	single := func(typ TokenType) (Token, error) {
		l.advance()
		return NewToken(typ, string(char), line, col, start), nil
	}

	switch char {
	case '+':
		return single(PLUS)
	case '*':
		return single(STAR)
	case '/':
		return single(SLASH)
	case '<':
		return single(LT)
	case '>':
		return single(GT)
	case '(':
		return single(LPAREN)
	case ')':
		return single(RPAREN)
	case ':':
		return single(COLON)

	// Minus or arrow
	case '-':
		if next == '>' {
			l.advance()
			l.advance()
			return NewToken(ARROW, "->", line, col, start), nil
		}
		return single(MINUS)

	// Equality; a lone = is not a token
	case '=':
		if next == '=' {
			l.advance()
			l.advance()
			return NewToken(EQ, "==", line, col, start), nil
		}
		return Token{}, l.errorf(line, col, start, "unexpected character '=' (equality is written ==)")
	}

	if isDigit(char) {
		return l.scanNumber()
	}
	if isAlpha(char) {
		return l.scanIdentifierOrKeyword()
	}
	return Token{}, l.errorf(line, col, start, "unexpected character %q", rune(char))
}

// scanNumber handles integer literals.
func (l *Lexer) scanNumber() (Token, error) {
	line, col, start := l.line, l.col, l.pos
	for !l.isAtEnd() && isDigit(l.peek()) {
		l.advance()
	}
	text := l.input[start:l.pos]
	if _, err := strconv.ParseInt(text, 10, 64); err != nil {
		return Token{}, l.errorf(line, col, start, "integer literal %s out of range", text)
	}
	return NewToken(NUMBER, text, line, col, start), nil
}

// scanIdentifierOrKeyword handles identifiers and reserved words.
func (l *Lexer) scanIdentifierOrKeyword() (Token, error) {
	line, col, start := l.line, l.col, l.pos
	for !l.isAtEnd() && isAlphaNumeric(l.peek()) {
		l.advance()
	}
	word := l.input[start:l.pos]
	if IsReserved(word) {
		return NewToken(KEYWORD, word, line, col, start), nil
	}
	return NewToken(IDENTIFIER, word, line, col, start), nil
}

// String returns a string representation of the lexer state (for debugging).
func (l *Lexer) String() string {
	return fmt.Sprintf("Lexer{pos=%d, line=%d, col=%d}", l.pos, l.line, l.col)
}
