package parser

import "github.com/chazu/miniml/pkg/lexer"

// TokenSource yields tokens one at a time. At the end of input it returns an
// EOF token on every call. *lexer.Lexer satisfies it.
type TokenSource interface {
	Next() (lexer.Token, error)
}

// sliceSource replays an already lexed token list.
type sliceSource struct {
	tokens []lexer.Token
	pos    int
}

// FromTokens returns a TokenSource over tokens. A trailing EOF token is
// optional; one is synthesized after the last token. An EOF token anywhere
// else is a syntax error at its index.
func FromTokens(tokens []lexer.Token) TokenSource {
	return &sliceSource{tokens: tokens}
}

func (s *sliceSource) Next() (lexer.Token, error) {
	if s.pos >= len(s.tokens) {
		eof := lexer.Token{Type: lexer.EOF}
		if n := len(s.tokens); n > 0 {
			last := s.tokens[n-1]
			eof.Line = last.Line
			eof.Column = last.Column + len(last.Value)
			eof.Offset = last.Offset + len(last.Value)
		}
		return eof, nil
	}
	tok := s.tokens[s.pos]
	if tok.Type == lexer.EOF && s.pos < len(s.tokens)-1 {
		return lexer.Token{}, &SyntaxError{
			Index:    s.pos,
			Line:     tok.Line,
			Column:   tok.Column,
			Offset:   tok.Offset,
			Found:    tok,
			Expected: []string{"EOF only as the last token"},
		}
	}
	s.pos++
	return tok, nil
}
