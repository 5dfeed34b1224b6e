package parser

import (
	"strings"

	"rdmd/internal/rd"
	"rdmd/internal/token"
)

// parseItemList reads the brace body of `\itemize` or `\enumerate`.
// Material before the first `\item` is discarded; each item runs until
// the next `\item` or the closing brace.
func (p *Parser) parseItemList() ([]*rd.Item, error) {
	if err := p.expectOpenBrace(); err != nil {
		return nil, err
	}

	var items []*rd.Item
	for {
		switch {
		case p.at(token.CloseBrace):
			p.advance()
			return items, nil
		case p.at(token.EOF):
			return nil, p.unexpectedEOF()
		case p.atItemStart():
			item, err := p.parseItem()
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		default:
			p.advance()
		}
	}
}

// parseItem handles both item shapes a list may mix: an unbraced run of
// content, or the two-argument `\item{label}{content}` form. A single
// brace group directly after the tag is ambiguous, so the label parse is
// speculative: when no second group follows, the position is restored and
// the group is taken as ordinary content.
func (p *Parser) parseItem() (*rd.Item, error) {
	p.advance() // backslash
	p.advance() // item
	return p.parseItemBody()
}

func (p *Parser) parseItemBody() (*rd.Item, error) {
	if p.at(token.OpenBrace) {
		mark := p.pos
		label, err := p.parseGroup()
		if err == nil && p.at(token.OpenBrace) {
			content, err := p.parseGroup()
			if err != nil {
				return nil, err
			}
			return &rd.Item{Label: label, Content: content}, nil
		}
		p.pos = mark
	}

	content, err := p.parseContent(true)
	if err != nil {
		return nil, err
	}
	return &rd.Item{Content: content}, nil
}

// parseDescribe reads `\describe{...}`, where both item arguments are
// mandatory.
func (p *Parser) parseDescribe() (rd.Node, error) {
	if err := p.expectOpenBrace(); err != nil {
		return nil, err
	}

	list := &rd.Describe{}
	for {
		switch {
		case p.at(token.CloseBrace):
			p.advance()
			return list, nil
		case p.at(token.EOF):
			return nil, p.unexpectedEOF()
		case p.atItemStart():
			p.advance() // backslash
			p.advance() // item
			term, err := p.parseGroup()
			if err != nil {
				return nil, err
			}
			desc, err := p.parseGroup()
			if err != nil {
				return nil, err
			}
			list.Items = append(list.Items, &rd.DescribeItem{Term: term, Description: desc})
		default:
			p.advance()
		}
	}
}

// parseTabular reads `\tabular{alignment}{cells}`. The cell body is
// parsed as ordinary content and split afterwards: `\cr` ends a row,
// `\tab` ends a cell.
func (p *Parser) parseTabular() (rd.Node, error) {
	alignment, err := p.parsePlainGroup()
	if err != nil {
		return nil, err
	}
	content, err := p.parseGroup()
	if err != nil {
		return nil, err
	}

	tab := &rd.Tabular{Alignment: strings.TrimSpace(alignment)}

	var row [][]rd.Node
	var cell []rd.Node
	endCell := func() {
		row = append(row, cell)
		cell = nil
	}
	endRow := func() {
		endCell()
		tab.Rows = append(tab.Rows, row)
		row = nil
	}

	for _, n := range content {
		switch n.(type) {
		case *rd.Tab:
			endCell()
		case *rd.LineBreak:
			endRow()
		default:
			cell = append(cell, n)
		}
	}
	// A trailing `\cr` leaves only inter-row whitespace behind; drop it
	// rather than emit a phantom row.
	if len(cell) > 0 || len(row) > 0 {
		if !onlyBlankText(cell) || len(row) > 0 {
			endRow()
		}
	}
	return tab, nil
}

func onlyBlankText(cell []rd.Node) bool {
	for _, n := range cell {
		t, ok := n.(*rd.Text)
		if !ok || strings.TrimSpace(t.Value) != "" {
			return false
		}
	}
	return true
}
