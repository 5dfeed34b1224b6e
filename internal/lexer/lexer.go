package lexer

import (
	"unicode/utf8"

	"rdmd/internal/source"
	"rdmd/internal/token"
)

// Lexer turns an Rd byte stream into a flat token stream. It has no error
// states: every input produces a finite sequence ending in one EOF, after
// which Next keeps returning EOF.
type Lexer struct {
	file   *source.File
	cursor Cursor
	line   uint32
	col    uint32
	look   *token.Token
}

// New creates a lexer over the provided file.
func New(file *source.File) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		line:   1,
		col:    1,
	}
}

// Scan collects every token of the file, including the terminating EOF.
func Scan(file *source.File) []token.Token {
	lx := New(file)
	toks := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// Next returns the next token. `%` comments are consumed here, invisibly
// to the caller: Next is only entered at token boundaries, which is the
// "outside any token" condition for comment starts.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipComments()

	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off},
			Line: lx.line,
			Col:  lx.col,
		}
	}

	mark := lx.cursor.Mark()
	startLine, startCol := lx.line, lx.col

	switch b := lx.cursor.Peek(); {
	case b == '\\':
		return lx.scanBackslash(mark, startLine, startCol)
	case b == '{':
		return lx.scanSingle(token.OpenBrace, mark, startLine, startCol)
	case b == '}':
		return lx.scanSingle(token.CloseBrace, mark, startLine, startCol)
	case b == '[':
		return lx.scanSingle(token.OpenBracket, mark, startLine, startCol)
	case b == ']':
		return lx.scanSingle(token.CloseBracket, mark, startLine, startCol)
	case b == '\n' || b == '\r':
		return lx.scanNewline(mark, startLine, startCol)
	case b == ' ' || b == '\t':
		return lx.scanWhitespace(mark, startLine, startCol)
	default:
		return lx.scanText(mark, startLine, startCol)
	}
}

// skipComments consumes `%` comments through (and including) their
// terminating newline. A comment at EOF just runs out.
func (lx *Lexer) skipComments() {
	for !lx.cursor.EOF() && lx.cursor.Peek() == '%' {
		for !lx.cursor.EOF() {
			b := lx.cursor.Bump()
			if b == '\n' {
				lx.newlineAt()
				break
			}
			if b == '\r' {
				if lx.cursor.Peek() == '\n' {
					lx.cursor.Bump()
				}
				lx.newlineAt()
				break
			}
		}
	}
}

func (lx *Lexer) newlineAt() {
	lx.line++
	lx.col = 1
}

func (lx *Lexer) scanBackslash(mark Mark, line, col uint32) token.Token {
	if _, next, ok := lx.cursor.Peek2(); ok {
		switch next {
		case '{', '}', '%', '\\':
			// escape sequence, decoded here: the span covers both bytes
			// but the text is the single literal character
			lx.cursor.Bump()
			ch := lx.cursor.Bump()
			lx.col += 2
			return token.Token{
				Kind: token.Text,
				Span: lx.cursor.SpanFrom(mark),
				Text: string(ch),
				Line: line,
				Col:  col,
			}
		}
	}
	lx.cursor.Bump()
	lx.col++
	return token.Token{
		Kind: token.Backslash,
		Span: lx.cursor.SpanFrom(mark),
		Text: "\\",
		Line: line,
		Col:  col,
	}
}

func (lx *Lexer) scanSingle(kind token.Kind, mark Mark, line, col uint32) token.Token {
	b := lx.cursor.Bump()
	lx.col++
	return token.Token{
		Kind: kind,
		Span: lx.cursor.SpanFrom(mark),
		Text: string(b),
		Line: line,
		Col:  col,
	}
}

func (lx *Lexer) scanNewline(mark Mark, line, col uint32) token.Token {
	b := lx.cursor.Bump()
	if b == '\r' && lx.cursor.Peek() == '\n' {
		lx.cursor.Bump()
	}
	lx.newlineAt()
	sp := lx.cursor.SpanFrom(mark)
	return token.Token{
		Kind: token.Newline,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
		Line: line,
		Col:  col,
	}
}

func (lx *Lexer) scanWhitespace(mark Mark, line, col uint32) token.Token {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b != ' ' && b != '\t' {
			break
		}
		lx.cursor.Bump()
		lx.col++
	}
	sp := lx.cursor.SpanFrom(mark)
	return token.Token{
		Kind: token.Whitespace,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
		Line: line,
		Col:  col,
	}
}

// scanText extends until the next character in the stop set
// {\, {, }, [, ], newline, %, space, tab}. Note the known imprecision:
// after a Backslash token this makes punctuation part of the macro name
// (`\dots)` lexes as Backslash + Text("dots)")); the parser tolerates it.
func (lx *Lexer) scanText(mark Mark, line, col uint32) token.Token {
	for !lx.cursor.EOF() && !isTextStop(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(mark)
	text := string(lx.file.Content[sp.Start:sp.End])
	lx.col += uint32(utf8.RuneCountInString(text))
	return token.Token{
		Kind: token.Text,
		Span: sp,
		Text: text,
		Line: line,
		Col:  col,
	}
}

func isTextStop(b byte) bool {
	switch b {
	case '\\', '{', '}', '[', ']', '\n', '\r', '%', ' ', '\t':
		return true
	default:
		return false
	}
}
