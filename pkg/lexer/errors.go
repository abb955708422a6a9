package lexer

import "fmt"

// Error is a lexical error: input that does not form a token.
type Error struct {
	Line   int
	Column int
	Offset int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: lexical error: %s", e.Line, e.Column, e.Msg)
}
