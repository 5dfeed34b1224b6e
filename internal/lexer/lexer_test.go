package lexer_test

import (
	"testing"

	"rdmd/internal/lexer"
	"rdmd/internal/source"
	"rdmd/internal/token"
)

// makeTestLexer builds a lexer over an in-memory file.
func makeTestLexer(input string) *lexer.Lexer {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.Rd", []byte(input))
	return lexer.New(fs.Get(fileID))
}

// collectAllTokens scans every token up to and including EOF.
func collectAllTokens(lx *lexer.Lexer) []token.Token {
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

type want struct {
	kind token.Kind
	text string
}

func checkTokens(t *testing.T, input string, wants []want) {
	t.Helper()
	toks := collectAllTokens(makeTestLexer(input))
	wants = append(wants, want{token.EOF, ""})
	if len(toks) != len(wants) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(wants), toks)
	}
	for i, w := range wants {
		if toks[i].Kind != w.kind || toks[i].Text != w.text {
			t.Errorf("token %d = (%s, %q), want (%s, %q)", i, toks[i].Kind, toks[i].Text, w.kind, w.text)
		}
	}
}

func TestBasicTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		wants []want
	}{
		{
			name:  "macro with braces",
			input: `\name{foo}`,
			wants: []want{
				{token.Backslash, `\`},
				{token.Text, "name"},
				{token.OpenBrace, "{"},
				{token.Text, "foo"},
				{token.CloseBrace, "}"},
			},
		},
		{
			name:  "brackets",
			input: `\link[pkg]{topic}`,
			wants: []want{
				{token.Backslash, `\`},
				{token.Text, "link"},
				{token.OpenBracket, "["},
				{token.Text, "pkg"},
				{token.CloseBracket, "]"},
				{token.OpenBrace, "{"},
				{token.Text, "topic"},
				{token.CloseBrace, "}"},
			},
		},
		{
			name:  "whitespace run preserved",
			input: "a  \tb",
			wants: []want{
				{token.Text, "a"},
				{token.Whitespace, "  \t"},
				{token.Text, "b"},
			},
		},
		{
			name:  "newline variants",
			input: "a\nb\r\nc\rd",
			wants: []want{
				{token.Text, "a"},
				{token.Newline, "\n"},
				{token.Text, "b"},
				{token.Newline, "\r\n"},
				{token.Text, "c"},
				{token.Newline, "\r"},
				{token.Text, "d"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkTokens(t, tt.input, tt.wants)
		})
	}
}

func TestEscapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		wants []want
	}{
		{
			name:  "escaped braces",
			input: `\{x\}`,
			wants: []want{
				{token.Text, "{"},
				{token.Text, "x"},
				{token.Text, "}"},
			},
		},
		{
			name:  "escaped percent is not a comment",
			input: `100\% done`,
			wants: []want{
				{token.Text, "100"},
				{token.Text, "%"},
				{token.Whitespace, " "},
				{token.Text, "done"},
			},
		},
		{
			name:  "escaped backslash",
			input: `\\cr`,
			wants: []want{
				{token.Text, `\`},
				{token.Text, "cr"},
			},
		},
		{
			name:  "lone backslash before non-escapable",
			input: `\R`,
			wants: []want{
				{token.Backslash, `\`},
				{token.Text, "R"},
			},
		},
		{
			name:  "backslash at end of input",
			input: `x\`,
			wants: []want{
				{token.Text, "x"},
				{token.Backslash, `\`},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkTokens(t, tt.input, tt.wants)
		})
	}
}

func TestComments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		wants []want
	}{
		{
			name:  "whole-line comment",
			input: "% a comment\nx",
			wants: []want{{token.Text, "x"}},
		},
		{
			name:  "trailing comment eats the newline",
			input: "x % note\ny",
			wants: []want{
				{token.Text, "x"},
				{token.Whitespace, " "},
				{token.Text, "y"},
			},
		},
		{
			name:  "comment at EOF without newline",
			input: "x\n% tail",
			wants: []want{
				{token.Text, "x"},
				{token.Newline, "\n"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkTokens(t, tt.input, tt.wants)
		})
	}
}

func TestMacroNameAbsorbsPunctuation(t *testing.T) {
	// Bug-compatible behavior: `)` is not in the text stop set, so it
	// rides along with the macro name after a backslash.
	checkTokens(t, `(\dots)`, []want{
		{token.Text, "("},
		{token.Backslash, `\`},
		{token.Text, "dots)"},
	})
}

func TestLineColTracking(t *testing.T) {
	toks := collectAllTokens(makeTestLexer("ab\né\\x"))
	// ab NL é \ x EOF
	type pos struct{ line, col uint32 }
	wants := []pos{
		{1, 1}, // ab
		{1, 3}, // newline
		{2, 1}, // é
		{2, 2}, // backslash (é is one column)
		{2, 3}, // x
		{2, 4}, // EOF
	}
	for i, w := range wants {
		if toks[i].Line != w.line || toks[i].Col != w.col {
			t.Errorf("token %d (%s %q) at %d:%d, want %d:%d",
				i, toks[i].Kind, toks[i].Text, toks[i].Line, toks[i].Col, w.line, w.col)
		}
	}
}

func TestEOFIsSticky(t *testing.T) {
	lx := makeTestLexer("x")
	collectAllTokens(lx)
	for i := 0; i < 3; i++ {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("Next after EOF = %s, want EOF", tok.Kind)
		}
	}
}

func TestSpanLengthsCoverInput(t *testing.T) {
	// Without comments or escapes, token spans partition the input.
	input := "\\title{The \\emph{big} one}\n"
	toks := collectAllTokens(makeTestLexer(input))
	var total uint32
	for _, tok := range toks {
		total += tok.Span.Len()
	}
	if total != uint32(len(input)) {
		t.Errorf("span lengths sum to %d, want %d", total, len(input))
	}
}
