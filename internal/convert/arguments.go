package convert

import (
	"strconv"
	"strings"

	"rdmd/internal/md"
	"rdmd/internal/mdwriter"
	"rdmd/internal/rd"
)

// argumentsSection tabulates the top-level \item entries. Without any
// items the section body converts like ordinary content.
func (c *converter) argumentsSection(content []rd.Node) []md.Node {
	var items []*rd.Item
	for _, n := range content {
		if item, ok := n.(*rd.Item); ok {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		body := c.convertContent(content)
		if len(body) == 0 {
			return nil
		}
		return append([]md.Node{c.heading("Arguments")}, body...)
	}

	var table md.Node
	if c.opts.ArgumentsFormat == ArgumentsGrid {
		table = c.argumentsGrid(items)
	} else {
		table = c.argumentsPipe(items)
	}
	return []md.Node{c.heading("Arguments"), table}
}

func (c *converter) argumentsPipe(items []*rd.Item) md.Node {
	table := &md.Table{
		Align: []md.Align{md.AlignLeft, md.AlignLeft},
		Children: []md.Node{&md.TableRow{Children: []md.Node{
			&md.TableCell{Children: []md.Node{&md.Text{Value: "Argument"}}},
			&md.TableCell{Children: []md.Node{&md.Text{Value: "Description"}}},
		}}},
	}
	for _, item := range items {
		label := strings.TrimSpace(rd.ExtractText(item.Label))
		table.Children = append(table.Children, &md.TableRow{Children: []md.Node{
			&md.TableCell{Children: []md.Node{&md.InlineCode{Value: label}}},
			&md.TableCell{Children: flattenBlocks(c.convertContent(item.Content))},
		}})
	}
	return table
}

// flattenBlocks linearizes block content for a pipe-table cell:
// paragraphs join with <br>, lists become bullet or ordinal markers with
// <br> between entries, code becomes inline code.
func flattenBlocks(blocks []md.Node) []md.Node {
	var out []md.Node
	br := func() {
		if len(out) > 0 {
			out = append(out, &md.HTML{Value: "<br>"})
		}
	}
	for _, b := range blocks {
		switch b := b.(type) {
		case *md.Paragraph:
			br()
			out = append(out, b.Children...)
		case *md.List:
			for i, item := range b.Children {
				li, ok := item.(*md.ListItem)
				if !ok {
					continue
				}
				br()
				marker := "- "
				if b.Ordered {
					start := b.Start
					if start == 0 {
						start = 1
					}
					marker = strconv.Itoa(start+i) + ". "
				}
				out = append(out, &md.Text{Value: marker})
				out = append(out, flattenBlocks(li.Children)...)
			}
		case *md.Code:
			br()
			out = append(out, &md.InlineCode{Value: b.Value})
		default:
			br()
			out = append(out, b)
		}
	}
	return out
}

// argumentsGrid renders each cell to a markdown string and lays the
// result out as a Pandoc grid table, emitted opaquely so the writer
// passes it through untouched.
func (c *converter) argumentsGrid(items []*rd.Item) md.Node {
	wopts := mdwriter.Options{QuartoCodeBlocks: c.opts.QuartoCodeBlocks}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		label := strings.TrimSpace(rd.ExtractText(item.Label))
		desc := mdwriter.RenderFragment(c.convertContent(item.Content), wopts)
		rows = append(rows, []string{"`" + label + "`", strings.TrimRight(desc, "\n")})
	}
	return &md.HTML{Value: mdwriter.GridTable([]string{"Argument", "Description"}, rows)}
}
