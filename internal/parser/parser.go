package parser

import (
	"rdmd/internal/lexer"
	"rdmd/internal/rd"
	"rdmd/internal/source"
	"rdmd/internal/token"
)

// Parser is the per-file state of the recursive descent. It walks an
// index into a fully materialized token slice so that the list parser can
// restore position after a failed `\item` label lookahead.
type Parser struct {
	toks []token.Token
	pos  int
}

// Parse lexes and parses one Rd file into a document.
func Parse(file *source.File) (*rd.Document, error) {
	return ParseTokens(lexer.Scan(file))
}

// ParseTokens parses a token stream produced by the lexer. The stream
// must be terminated by an EOF token.
func ParseTokens(toks []token.Token) (*rd.Document, error) {
	p := &Parser{toks: toks}
	return p.parseDocument()
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF is sticky
	}
	return p.toks[p.pos]
}

// peekNext looks one token past the current one.
func (p *Parser) peekNext() token.Token {
	if p.pos+1 >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+1]
}

func (p *Parser) at(k token.Kind) bool {
	return p.cur().Kind == k
}

func (p *Parser) advance() token.Token {
	tok := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return tok
}

func (p *Parser) unexpectedEOF() error {
	tok := p.cur()
	return &UnexpectedEOFError{Line: tok.Line, Col: tok.Col}
}

func (p *Parser) expect(k token.Kind, expected string) (token.Token, error) {
	if p.at(k) {
		return p.advance(), nil
	}
	tok := p.cur()
	if tok.Kind == token.EOF {
		return tok, p.unexpectedEOF()
	}
	return tok, &UnexpectedTokenError{
		Expected: expected,
		Found:    describeToken(tok),
		Line:     tok.Line,
		Col:      tok.Col,
	}
}

func (p *Parser) expectOpenBrace() error {
	_, err := p.expect(token.OpenBrace, "'{'")
	return err
}

func (p *Parser) expectCloseBrace() error {
	_, err := p.expect(token.CloseBrace, "'}'")
	return err
}

// parseDocument is the top-level loop: skip leading whitespace and
// newlines, read backslash-introduced sections until EOF. Anything else
// at top level is silently skipped.
func (p *Parser) parseDocument() (*rd.Document, error) {
	doc := &rd.Document{}
	for {
		switch p.cur().Kind {
		case token.EOF:
			return doc, nil
		case token.Backslash:
			sec, err := p.parseSection()
			if err != nil {
				return nil, err
			}
			doc.Sections = append(doc.Sections, sec)
		default:
			p.advance()
		}
	}
}

// parseSection reads one `\tag{...}` top-level section. `\section` takes
// a title argument before its body; tags without a following brace (bare
// `\keyword`) get empty content.
func (p *Parser) parseSection() (rd.Section, error) {
	p.advance() // backslash

	name := ""
	if p.at(token.Text) {
		name = p.advance().Text
	}

	if name == "section" {
		title, err := p.parsePlainGroup()
		if err != nil {
			return rd.Section{}, err
		}
		content, err := p.parseGroup()
		if err != nil {
			return rd.Section{}, err
		}
		return rd.Section{Kind: rd.SecCustom, Name: title, Content: content}, nil
	}

	kind := rd.SectionKindFor(name)
	sec := rd.Section{Kind: kind}
	if kind == rd.SecUnknown {
		sec.Name = name
	}

	if p.at(token.OpenBrace) {
		content, err := p.parseGroup()
		if err != nil {
			return rd.Section{}, err
		}
		sec.Content = content
	}
	return sec, nil
}

// parseGroup parses one `{content}` argument.
func (p *Parser) parseGroup() ([]rd.Node, error) {
	if err := p.expectOpenBrace(); err != nil {
		return nil, err
	}
	content, err := p.parseContent(false)
	if err != nil {
		return nil, err
	}
	if err := p.expectCloseBrace(); err != nil {
		return nil, err
	}
	return content, nil
}

// parsePlainGroup parses one `{text}` argument as plain text, balanced
// over nested braces with no macro processing. Escapes were already
// decoded by the lexer.
func (p *Parser) parsePlainGroup() (string, error) {
	if err := p.expectOpenBrace(); err != nil {
		return "", err
	}
	return p.plainTextUntilClose()
}

// plainTextUntilClose consumes through the `}` matching an already
// consumed `{`, returning the raw text between them.
func (p *Parser) plainTextUntilClose() (string, error) {
	var sb []byte
	depth := 0
	for {
		switch tok := p.cur(); tok.Kind {
		case token.EOF:
			return "", p.unexpectedEOF()
		case token.OpenBrace:
			depth++
			sb = append(sb, '{')
			p.advance()
		case token.CloseBrace:
			if depth == 0 {
				p.advance()
				return string(sb), nil
			}
			depth--
			sb = append(sb, '}')
			p.advance()
		case token.Newline:
			sb = append(sb, '\n')
			p.advance()
		default:
			sb = append(sb, tok.Text...)
			p.advance()
		}
	}
}

// parseOptionalBracket reads a `[...]` argument if one is present,
// returning its raw text.
func (p *Parser) parseOptionalBracket() (string, bool, error) {
	if !p.at(token.OpenBracket) {
		return "", false, nil
	}
	p.advance()
	var sb []byte
	for {
		switch tok := p.cur(); tok.Kind {
		case token.EOF:
			return "", false, p.unexpectedEOF()
		case token.CloseBracket:
			p.advance()
			return string(sb), true, nil
		case token.Newline:
			sb = append(sb, '\n')
			p.advance()
		default:
			sb = append(sb, tok.Text...)
			p.advance()
		}
	}
}
