package parser

import (
	"fmt"

	"rdmd/internal/token"
)

// UnexpectedTokenError reports a token that does not fit the grammar at a
// point where a specific token was required. There is no recovery: a
// malformed file fails whole.
type UnexpectedTokenError struct {
	Expected string
	Found    string
	Line     uint32
	Col      uint32
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("%d:%d: expected %s, found %s", e.Line, e.Col, e.Expected, e.Found)
}

// UnexpectedEOFError reports input that ended where another token was
// required.
type UnexpectedEOFError struct {
	Line uint32
	Col  uint32
}

func (e *UnexpectedEOFError) Error() string {
	return fmt.Sprintf("%d:%d: unexpected end of input", e.Line, e.Col)
}

func describeToken(tok token.Token) string {
	if tok.Kind == token.EOF {
		return "end of input"
	}
	if tok.Text != "" {
		return fmt.Sprintf("%q", tok.Text)
	}
	return tok.Kind.String()
}
