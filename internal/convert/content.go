package convert

import (
	"regexp"
	"strings"

	"rdmd/internal/md"
	"rdmd/internal/rd"
)

// convertContent walks a node sequence, buffering inline conversions
// into the current paragraph and flushing on block nodes or blank lines
// inside text.
func (c *converter) convertContent(nodes []rd.Node) []md.Node {
	var blocks []md.Node
	var para []md.Node

	flush := func() {
		para = trimParagraph(para)
		if len(para) > 0 {
			blocks = append(blocks, &md.Paragraph{Children: para})
		}
		para = nil
	}
	emit := func(ns ...md.Node) {
		flush()
		blocks = append(blocks, ns...)
	}

	for i := 0; i < len(nodes); i++ {
		if code, ok := matchRoxygenBlock(nodes[i:]); ok {
			emit(code)
			i += 2
			continue
		}

		switch n := nodes[i].(type) {
		case *rd.Text:
			// A blank line splits the paragraph.
			parts := strings.Split(n.Value, "\n\n")
			for j, part := range parts {
				if j > 0 {
					flush()
				}
				if part != "" {
					para = append(para, &md.Text{Value: normalizeText(part)})
				}
			}
		case *rd.Itemize:
			emit(c.convertList(n.Items, false))
		case *rd.Enumerate:
			emit(c.convertList(n.Items, true))
		case *rd.Describe:
			emit(c.convertDescribe(n))
		case *rd.Tabular:
			emit(c.convertTabular(n))
		case *rd.SectionNode:
			emit(c.nestedSection(n.Title, n.Content)...)
		case *rd.Subsection:
			emit(c.nestedSection(n.Title, n.Content)...)
		case *rd.Preformatted:
			emit(&md.Code{Value: n.Value})
		case *rd.Verbatim:
			emit(&md.Code{Value: n.Value})
		case *rd.Deqn:
			emit(&md.Math{Value: n.Latex})
		default:
			para = append(para, c.convertInline(nodes[i])...)
		}
	}
	flush()
	return blocks
}

func (c *converter) nestedSection(title string, content []rd.Node) []md.Node {
	c.depth++
	defer func() { c.depth-- }()
	return append([]md.Node{c.heading(title)}, c.convertContent(content)...)
}

func (c *converter) convertList(items []*rd.Item, ordered bool) md.Node {
	list := &md.List{Ordered: ordered, Start: 1}
	for _, item := range items {
		children := c.convertContent(item.Content)
		if label := c.convertInlineSeq(item.Label); len(label) > 0 {
			lead := []md.Node{&md.Strong{Children: label}, &md.Text{Value: ": "}}
			if p, ok := firstParagraph(children); ok {
				p.Children = append(lead, p.Children...)
			} else {
				children = append([]md.Node{&md.Paragraph{Children: lead}}, children...)
			}
		}
		list.Children = append(list.Children, &md.ListItem{Children: children})
	}
	return list
}

func firstParagraph(blocks []md.Node) (*md.Paragraph, bool) {
	if len(blocks) > 0 {
		if p, ok := blocks[0].(*md.Paragraph); ok {
			return p, true
		}
	}
	return nil, false
}

func (c *converter) convertDescribe(n *rd.Describe) md.Node {
	dl := &md.DefinitionList{}
	for _, item := range n.Items {
		dl.Children = append(dl.Children,
			&md.Term{Children: c.convertInlineSeq(item.Term)},
			&md.Description{Children: c.convertContent(item.Description)},
		)
	}
	return dl
}

func (c *converter) convertTabular(n *rd.Tabular) md.Node {
	table := &md.Table{}
	for _, ch := range n.Alignment {
		switch ch {
		case 'l':
			table.Align = append(table.Align, md.AlignLeft)
		case 'c':
			table.Align = append(table.Align, md.AlignCenter)
		case 'r':
			table.Align = append(table.Align, md.AlignRight)
		default:
			table.Align = append(table.Align, md.AlignNone)
		}
	}
	maxCells := 0
	for _, row := range n.Rows {
		mdRow := &md.TableRow{}
		for _, cell := range row {
			mdRow.Children = append(mdRow.Children, &md.TableCell{
				Children: trimParagraph(c.convertInlineSeq(cell)),
			})
		}
		maxCells = max(maxCells, len(row))
		table.Children = append(table.Children, mdRow)
	}
	for len(table.Align) < maxCells {
		table.Align = append(table.Align, md.AlignNone)
	}
	return table
}

// convertInlineSeq converts a node sequence for an inline-only slot
// (headings, table cells, definition terms). Block structures that
// cannot nest there fall back to their extracted text.
func (c *converter) convertInlineSeq(nodes []rd.Node) []md.Node {
	var out []md.Node
	for _, n := range nodes {
		switch n := n.(type) {
		case *rd.Text:
			if v := normalizeText(n.Value); v != "" {
				out = append(out, &md.Text{Value: v})
			}
		case *rd.Itemize, *rd.Enumerate, *rd.Describe, *rd.Tabular,
			*rd.SectionNode, *rd.Subsection, *rd.Preformatted:
			out = append(out, &md.Text{Value: rd.ExtractText([]rd.Node{n})})
		default:
			out = append(out, c.convertInline(n)...)
		}
	}
	return out
}

// trimParagraph strips the leading space of the first text node and the
// trailing space of the last, dropping nodes that become empty. A
// paragraph of pure whitespace vanishes.
func trimParagraph(para []md.Node) []md.Node {
	for len(para) > 0 {
		t, ok := para[0].(*md.Text)
		if !ok {
			break
		}
		t.Value = strings.TrimLeft(t.Value, " ")
		if t.Value != "" {
			break
		}
		para = para[1:]
	}
	for len(para) > 0 {
		t, ok := para[len(para)-1].(*md.Text)
		if !ok {
			break
		}
		t.Value = strings.TrimRight(t.Value, " ")
		if t.Value != "" {
			break
		}
		para = para[:len(para)-1]
	}
	return para
}

var sourceDivRe = regexp.MustCompile(`<div class="([^"]*)"`)

// matchRoxygenBlock recognizes the three-node fenced-code shape the
// roxygen2 markdown compiler produces:
//
//	\if{html}{\out{<div class="sourceCode r">}}
//	\preformatted{...}
//	\if{html}{\out{</div>}}
func matchRoxygenBlock(nodes []rd.Node) (*md.Code, bool) {
	if len(nodes) < 3 {
		return nil, false
	}
	open, ok := htmlOutValue(nodes[0])
	if !ok {
		return nil, false
	}
	pre, ok := nodes[1].(*rd.Preformatted)
	if !ok {
		return nil, false
	}
	closing, ok := htmlOutValue(nodes[2])
	if !ok || !strings.Contains(closing, "</div>") {
		return nil, false
	}

	m := sourceDivRe.FindStringSubmatch(open)
	if m == nil {
		return nil, false
	}
	lang := ""
	switch class := m[1]; {
	case class == "r":
		lang = "r"
	case class == "sourceCode":
		lang = ""
	case strings.HasPrefix(class, "sourceCode "):
		lang = strings.TrimPrefix(class, "sourceCode ")
	default:
		return nil, false
	}
	return &md.Code{Lang: lang, Value: pre.Value}, true
}

// htmlOutValue unwraps `\if{html}{\out{...}}`.
func htmlOutValue(n rd.Node) (string, bool) {
	cond, ok := n.(*rd.If)
	if !ok || strings.TrimSpace(cond.Format) != "html" || len(cond.Content) != 1 {
		return "", false
	}
	out, ok := cond.Content[0].(*rd.Out)
	if !ok {
		return "", false
	}
	return out.Value, true
}
