package parser

import (
	"strings"

	"rdmd/internal/rd"
	"rdmd/internal/token"
)

// parseContent accumulates nodes until the matching close brace, which is
// left for the caller. Text, whitespace, and newlines merge into a single
// running Text node; a backslash flushes the buffer and dispatches a
// macro; a nested brace group is parsed recursively and spliced in line.
// Stray brackets become literal characters.
//
// With stopAtItem set, the walk also stops (without consuming) in front
// of a `\item`, which is how list bodies delimit unbraced item content.
func (p *Parser) parseContent(stopAtItem bool) ([]rd.Node, error) {
	var nodes []rd.Node
	var buf strings.Builder

	flush := func() {
		if buf.Len() > 0 {
			nodes = append(nodes, &rd.Text{Value: buf.String()})
			buf.Reset()
		}
	}

	for {
		switch tok := p.cur(); tok.Kind {
		case token.CloseBrace:
			flush()
			return nodes, nil
		case token.EOF:
			return nil, p.unexpectedEOF()
		case token.Backslash:
			if stopAtItem && p.atItemStart() {
				flush()
				return nodes, nil
			}
			flush()
			node, err := p.parseMacro()
			if err != nil {
				return nil, err
			}
			if node != nil {
				nodes = append(nodes, node)
			}
		case token.OpenBrace:
			flush()
			p.advance()
			inner, err := p.parseContent(false)
			if err != nil {
				return nil, err
			}
			if err := p.expectCloseBrace(); err != nil {
				return nil, err
			}
			nodes = append(nodes, inner...)
		case token.Newline:
			buf.WriteByte('\n')
			p.advance()
		case token.OpenBracket:
			buf.WriteByte('[')
			p.advance()
		case token.CloseBracket:
			buf.WriteByte(']')
			p.advance()
		default: // Text, Whitespace
			buf.WriteString(tok.Text)
			p.advance()
		}
	}
}

// atItemStart reports whether the parser sits on `\item`.
func (p *Parser) atItemStart() bool {
	return p.at(token.Backslash) &&
		p.peekNext().Kind == token.Text &&
		p.peekNext().Text == "item"
}

// firstTextChild returns the trimmed value of the first Text node in a
// sequence, or "".
func firstTextChild(nodes []rd.Node) string {
	for _, n := range nodes {
		if t, ok := n.(*rd.Text); ok {
			return strings.TrimSpace(t.Value)
		}
	}
	return ""
}
