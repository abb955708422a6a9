package parser

import (
	"fmt"
	"strings"

	"github.com/chazu/miniml/pkg/lexer"
)

// SyntaxError reports the first token at which no grammar alternative
// matches. It is the only error the parser itself produces; lexical errors
// are returned unchanged.
type SyntaxError struct {
	Index    int         // index of the offending token in the stream
	Line     int         // position of the offending token
	Column   int
	Offset   int
	Found    lexer.Token // the offending token (EOF when input ran out)
	Expected []string    // summary of what would have been accepted
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d:%d: syntax error: unexpected %s", e.Line, e.Column, e.Found.Describe())
	if len(e.Expected) > 0 {
		b.WriteString(", expected ")
		b.WriteString(joinAlternatives(e.Expected))
	}
	return b.String()
}

func joinAlternatives(alts []string) string {
	switch len(alts) {
	case 1:
		return alts[0]
	case 2:
		return alts[0] + " or " + alts[1]
	}
	return strings.Join(alts[:len(alts)-1], ", ") + " or " + alts[len(alts)-1]
}
