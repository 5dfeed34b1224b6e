// Package mdwriter serializes the markdown tree to text. Emission is a
// single forward pass; the only state is the trailing byte written,
// used for line-start tracking and for keeping adjacent inline code
// spans apart.
package mdwriter

import (
	"strconv"
	"strings"

	"rdmd/internal/md"
)

// Options mirror the converter's output mode.
type Options struct {
	// QuartoCodeBlocks switches executable R fences to `{r}`.
	QuartoCodeBlocks bool
}

type writer struct {
	b    strings.Builder
	opts Options
	last byte
}

// Render serializes a document, front matter first. fm may be nil.
func Render(root *md.Root, fm *FrontMatter, opts Options) string {
	w := &writer{opts: opts}
	if fm != nil {
		w.frontMatter(fm)
	}
	w.blocks(root.Children)
	return w.b.String()
}

// RenderFragment serializes a block sequence without front matter, for
// callers that need a subtree as a string.
func RenderFragment(blocks []md.Node, opts Options) string {
	w := &writer{opts: opts}
	w.blocks(blocks)
	return w.b.String()
}

func (w *writer) write(s string) {
	if s == "" {
		return
	}
	w.b.WriteString(s)
	w.last = s[len(s)-1]
}

// blocks emits children with one blank line between successive blocks.
// Every block emitter ends its output with a newline.
func (w *writer) blocks(children []md.Node) {
	first := true
	for _, ch := range children {
		if ch == nil {
			continue
		}
		if !first {
			w.write("\n")
		}
		first = false
		w.block(ch)
	}
}

func (w *writer) block(n md.Node) {
	switch n := n.(type) {
	case *md.Heading:
		w.write(strings.Repeat("#", n.Depth) + " ")
		w.inlines(n.Children)
		w.write("\n")
	case *md.Paragraph:
		w.inlines(n.Children)
		w.write("\n")
	case *md.Blockquote:
		w.prefixed(n.Children, "> ", "> ")
	case *md.List:
		w.list(n, 0)
	case *md.Code:
		w.codeBlock(n, "")
	case *md.Table:
		w.table(n)
	case *md.DefinitionList:
		w.definitionList(n)
	case *md.Math:
		w.write("$$\n" + n.Value + "\n$$\n")
	case *md.HTML:
		w.write(n.Value)
		if w.last != '\n' {
			w.write("\n")
		}
	case *md.ThematicBreak:
		w.write("---\n")
	default:
		// Inline node at block level: wrap as a paragraph.
		w.inline(n)
		w.write("\n")
	}
}

func (w *writer) inlines(nodes []md.Node) {
	for _, n := range nodes {
		w.inline(n)
	}
}

func (w *writer) inline(n md.Node) {
	switch n := n.(type) {
	case *md.Text:
		w.write(n.Value)
	case *md.Emphasis:
		w.write("*")
		w.inlines(n.Children)
		w.write("*")
	case *md.Strong:
		w.write("**")
		w.inlines(n.Children)
		w.write("**")
	case *md.InlineCode:
		w.inlineCode(n.Value)
	case *md.Break:
		w.write("  \n")
	case *md.Link:
		w.write("[")
		w.inlines(n.Children)
		if n.Title != "" {
			w.write("](" + n.URL + " \"" + n.Title + "\")")
		} else {
			w.write("](" + n.URL + ")")
		}
	case *md.Image:
		if n.Title != "" {
			w.write("![" + n.Alt + "](" + n.URL + " \"" + n.Title + "\")")
		} else {
			w.write("![" + n.Alt + "](" + n.URL + ")")
		}
	case *md.InlineMath:
		w.write("$" + n.Value + "$")
	case *md.HTML:
		w.write(n.Value)
	default:
		// Block node in an inline slot: materialize and inline its text.
		w.write(strings.TrimRight(RenderFragment([]md.Node{n}, w.opts), "\n"))
	}
}

// inlineCode emits a code span, doubling the fence when the value holds
// a backtick and spacing it off a preceding backtick so neighbors never
// merge.
func (w *writer) inlineCode(value string) {
	if w.last == '`' {
		w.write(" ")
	}
	if strings.Contains(value, "`") {
		w.write("`` " + value + " ``")
		return
	}
	w.write("`" + value + "`")
}

// codeBlock emits a fenced block whose fence outruns the longest
// backtick run in the body.
func (w *writer) codeBlock(n *md.Code, indent string) {
	fence := strings.Repeat("`", max(3, longestBacktickRun(n.Value)+1))
	info := n.Lang
	if w.opts.QuartoCodeBlocks && n.Lang == "r" && n.Meta == "executable" {
		info = "{r}"
	}
	w.write(indent + fence + info + "\n")
	body := n.Value
	if body != "" && !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	for line := range strings.Lines(body) {
		w.write(indent + line)
	}
	w.write(indent + fence + "\n")
}

func longestBacktickRun(s string) int {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return longest
}

// list emits items at the given indent; nested lists recurse two spaces
// deeper.
func (w *writer) list(n *md.List, indent int) {
	start := n.Start
	if start == 0 {
		start = 1
	}
	pad := strings.Repeat(" ", indent)
	cont := strings.Repeat(" ", indent+2)
	num := start
	for _, ch := range n.Children {
		item, ok := ch.(*md.ListItem)
		if !ok {
			continue
		}
		marker := "- "
		if n.Ordered {
			marker = strconv.Itoa(num) + ". "
			num++
		}
		frag := RenderFragment(item.Children, w.opts)
		lines := strings.Split(strings.TrimRight(frag, "\n"), "\n")
		w.write(pad + marker + lines[0] + "\n")
		for _, line := range lines[1:] {
			if line == "" {
				w.write("\n")
			} else {
				w.write(cont + line + "\n")
			}
		}
	}
}

// prefixed emits a block sequence with a prefix on the first line and
// another on continuations (blockquotes).
func (w *writer) prefixed(children []md.Node, first, rest string) {
	frag := RenderFragment(children, w.opts)
	lines := strings.Split(strings.TrimRight(frag, "\n"), "\n")
	for i, line := range lines {
		p := rest
		if i == 0 {
			p = first
		}
		w.write(strings.TrimRight(p+line, " ") + "\n")
	}
}

func (w *writer) table(n *md.Table) {
	numCols := 0
	var rows [][]string
	for _, ch := range n.Children {
		row, ok := ch.(*md.TableRow)
		if !ok {
			continue
		}
		var cells []string
		for _, cch := range row.Children {
			cell, ok := cch.(*md.TableCell)
			if !ok {
				continue
			}
			cells = append(cells, strings.TrimRight(inlineString(cell.Children, w.opts), "\n"))
		}
		numCols = max(numCols, len(cells))
		rows = append(rows, cells)
	}
	if len(rows) == 0 || numCols == 0 {
		return
	}

	writeRow := func(cells []string) {
		w.write("|")
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			w.write(" " + cell + " |")
		}
		w.write("\n")
	}

	writeRow(rows[0])
	w.write("|")
	for i := 0; i < numCols; i++ {
		marker := "----"
		if i < len(n.Align) {
			switch n.Align[i] {
			case md.AlignLeft:
				marker = ":---"
			case md.AlignCenter:
				marker = ":--:"
			case md.AlignRight:
				marker = "---:"
			}
		}
		w.write(" " + marker + " |")
	}
	w.write("\n")
	for _, row := range rows[1:] {
		writeRow(row)
	}
}

// definitionList follows the Pandoc shape: the term on its own line,
// each description introduced by `:   ` with four-space continuation.
func (w *writer) definitionList(n *md.DefinitionList) {
	first := true
	for _, ch := range n.Children {
		switch ch := ch.(type) {
		case *md.Term:
			if !first {
				w.write("\n")
			}
			first = false
			w.inlines(ch.Children)
			w.write("\n")
		case *md.Description:
			frag := RenderFragment(ch.Children, w.opts)
			lines := strings.Split(strings.TrimRight(frag, "\n"), "\n")
			for i, line := range lines {
				switch {
				case i == 0:
					w.write(":   " + line + "\n")
				case line == "":
					w.write("\n")
				default:
					w.write("    " + line + "\n")
				}
			}
		}
	}
}

// inlineString materializes an inline sequence on its own writer.
func inlineString(nodes []md.Node, opts Options) string {
	w := &writer{opts: opts}
	w.inlines(nodes)
	return w.b.String()
}
