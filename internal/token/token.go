package token

import (
	"rdmd/internal/source"
)

// Token represents a single Rd source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	Line uint32 // 1-based line of the token start
	Col  uint32 // 1-based column of the token start, in runes
}

// IsDelimiter reports whether the token is a brace or bracket.
func (t Token) IsDelimiter() bool {
	switch t.Kind {
	case OpenBrace, CloseBrace, OpenBracket, CloseBracket:
		return true
	default:
		return false
	}
}

// IsBlank reports whether the token is whitespace or a newline.
func (t Token) IsBlank() bool {
	return t.Kind == Whitespace || t.Kind == Newline
}
