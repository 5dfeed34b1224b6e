// Package convert lowers an Rd document tree into the markdown tree.
// Section order follows the pkgdown convention regardless of source
// order; everything below the section level is handled by the content
// and inline walkers.
package convert

import (
	"strings"

	"rdmd/internal/md"
	"rdmd/internal/rd"
)

type converter struct {
	opts Options
	// depth tracks \section/\subsection nesting; headings are emitted
	// one level below it, clamped at h6.
	depth int
}

// fixedOrder is the pkgdown section sequence between the title and any
// custom sections. Examples always come last.
var fixedOrder = []struct {
	kind  rd.SectionKind
	title string
}{
	{rd.SecDescription, "Description"},
	{rd.SecUsage, "Usage"},
	{rd.SecArguments, "Arguments"},
	{rd.SecValue, "Value"},
	{rd.SecDetails, "Details"},
	{rd.SecFormat, "Format"},
	{rd.SecSource, "Source"},
	{rd.SecNote, "Note"},
	{rd.SecReferences, "References"},
	{rd.SecAuthor, "Author(s)"},
	{rd.SecSeeAlso, "See also"},
}

// Convert builds the markdown document for one Rd file.
func Convert(doc *rd.Document, opts Options) *md.Root {
	c := &converter{opts: opts, depth: 1}
	root := &md.Root{}

	if title := doc.Title(); title != "" {
		root.Children = append(root.Children, &md.Heading{
			Depth:    1,
			Children: []md.Node{&md.Text{Value: title}},
		})
	}

	for _, entry := range fixedOrder {
		for _, sec := range doc.FindAll(entry.kind) {
			root.Children = append(root.Children, c.convertSection(sec, entry.title)...)
		}
	}

	for i := range doc.Sections {
		sec := &doc.Sections[i]
		if sec.Kind == rd.SecCustom {
			root.Children = append(root.Children, c.customSection(sec)...)
		}
	}

	for _, sec := range doc.FindAll(rd.SecExamples) {
		root.Children = append(root.Children, c.examplesSection(sec.Content)...)
	}

	return root
}

func (c *converter) headingDepth() int {
	return min(c.depth+1, 6)
}

func (c *converter) heading(title string) *md.Heading {
	return &md.Heading{
		Depth:    c.headingDepth(),
		Children: []md.Node{&md.Text{Value: title}},
	}
}

func (c *converter) convertSection(sec *rd.Section, title string) []md.Node {
	switch sec.Kind {
	case rd.SecUsage:
		return c.usageSection(sec.Content)
	case rd.SecArguments:
		return c.argumentsSection(sec.Content)
	default:
		body := c.convertContent(sec.Content)
		if len(body) == 0 {
			return nil
		}
		return append([]md.Node{c.heading(title)}, body...)
	}
}

func (c *converter) customSection(sec *rd.Section) []md.Node {
	body := c.convertContent(sec.Content)
	return append([]md.Node{c.heading(sec.Name)}, body...)
}

// usageSection emits the section heading and one non-executable R block
// holding the linearized usage text, with method declarations rewritten
// to their commented call forms.
func (c *converter) usageSection(content []rd.Node) []md.Node {
	value := strings.TrimSpace(rd.ExtractText(content))
	if value == "" {
		return nil
	}
	return []md.Node{
		c.heading("Usage"),
		&md.Code{Lang: "r", Value: value},
	}
}
