// Package md defines the output document tree, a small subset of the
// mdast model. Converters build this tree and the writer serializes it;
// neither side re-parses markdown text.
package md

// Node is a markdown tree node. The concrete variants below are the
// only implementations.
type Node interface{ mdNode() }

// Align is a table column alignment.
type Align uint8

const (
	AlignNone Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Root is the document.
type Root struct{ Children []Node }

// Heading depth is clamped to 1..6 by construction.
type Heading struct {
	Depth    int
	Children []Node
}

type Paragraph struct{ Children []Node }

type Blockquote struct{ Children []Node }

// List is ordered or bulleted. Start is the first ordinal of an ordered
// list and ignored otherwise.
type List struct {
	Ordered  bool
	Start    int
	Children []Node
}

type ListItem struct{ Children []Node }

// Code is a fenced code block. Lang becomes the info string; Meta marks
// executability for quarto output.
type Code struct {
	Lang  string
	Meta  string
	Value string
}

// Table rows are TableRow children; the first row is the header. Align
// must cover the widest row.
type Table struct {
	Align    []Align
	Children []Node
}

type TableRow struct{ Children []Node }

type TableCell struct{ Children []Node }

// DefinitionList alternates Term and Description children.
type DefinitionList struct{ Children []Node }

type Term struct{ Children []Node }

type Description struct{ Children []Node }

type Text struct{ Value string }

type Emphasis struct{ Children []Node }

type Strong struct{ Children []Node }

type InlineCode struct{ Value string }

// Break is a hard line break.
type Break struct{}

type Link struct {
	URL      string
	Title    string
	Children []Node
}

type Image struct {
	URL   string
	Title string
	Alt   string
}

// Math is display math; InlineMath is `$...$`.
type Math struct{ Value string }

type InlineMath struct{ Value string }

// HTML passes raw markup through untouched.
type HTML struct{ Value string }

type ThematicBreak struct{}

func (*Root) mdNode()           {}
func (*Heading) mdNode()        {}
func (*Paragraph) mdNode()      {}
func (*Blockquote) mdNode()     {}
func (*List) mdNode()           {}
func (*ListItem) mdNode()       {}
func (*Code) mdNode()           {}
func (*Table) mdNode()          {}
func (*TableRow) mdNode()       {}
func (*TableCell) mdNode()      {}
func (*DefinitionList) mdNode() {}
func (*Term) mdNode()           {}
func (*Description) mdNode()    {}
func (*Text) mdNode()           {}
func (*Emphasis) mdNode()       {}
func (*Strong) mdNode()         {}
func (*InlineCode) mdNode()     {}
func (*Break) mdNode()          {}
func (*Link) mdNode()           {}
func (*Image) mdNode()          {}
func (*Math) mdNode()           {}
func (*InlineMath) mdNode()     {}
func (*HTML) mdNode()           {}
func (*ThematicBreak) mdNode()  {}
