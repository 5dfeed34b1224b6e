package token

// Kind represents the category of an Rd source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Backslash is a `\` that does not begin an escape sequence.
	Backslash
	// OpenBrace is `{`.
	OpenBrace
	// CloseBrace is `}`.
	CloseBrace
	// OpenBracket is `[`.
	OpenBracket
	// CloseBracket is `]`.
	CloseBracket
	// Text is a run of ordinary characters, or a single decoded escape.
	Text
	// Whitespace is a run of spaces and tabs (never newlines).
	Whitespace
	// Newline is a single `\n`, `\r\n`, or bare `\r`.
	Newline
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case Backslash:
		return "Backslash"
	case OpenBrace:
		return "OpenBrace"
	case CloseBrace:
		return "CloseBrace"
	case OpenBracket:
		return "OpenBracket"
	case CloseBracket:
		return "CloseBracket"
	case Text:
		return "Text"
	case Whitespace:
		return "Whitespace"
	case Newline:
		return "Newline"
	}
	return "Unknown"
}
