package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"rdmd/internal/rd"
)

// FormatDocumentPretty dumps a parsed Rd document as an indented tree,
// one node per line.
func FormatDocumentPretty(w io.Writer, doc *rd.Document) {
	for i := range doc.Sections {
		sec := &doc.Sections[i]
		fmt.Fprintf(w, "section %s\n", sectionLabel(sec))
		writeNodes(w, sec.Content, 1)
	}
}

func sectionLabel(sec *rd.Section) string {
	switch sec.Kind {
	case rd.SecCustom:
		return "custom " + strconv.Quote(sec.Name)
	case rd.SecUnknown:
		return "unknown " + strconv.Quote(sec.Name)
	default:
		return sectionKindName(sec.Kind)
	}
}

func sectionKindName(kind rd.SectionKind) string {
	names := map[rd.SectionKind]string{
		rd.SecName:        "name",
		rd.SecTitle:       "title",
		rd.SecDescription: "description",
		rd.SecAlias:       "alias",
		rd.SecUsage:       "usage",
		rd.SecArguments:   "arguments",
		rd.SecValue:       "value",
		rd.SecDetails:     "details",
		rd.SecNote:        "note",
		rd.SecAuthor:      "author",
		rd.SecReferences:  "references",
		rd.SecSeeAlso:     "seealso",
		rd.SecExamples:    "examples",
		rd.SecKeyword:     "keyword",
		rd.SecConcept:     "concept",
		rd.SecFormat:      "format",
		rd.SecSource:      "source",
		rd.SecEncoding:    "encoding",
		rd.SecDocType:     "docType",
		rd.SecRdVersion:   "RdVersion",
	}
	if name, ok := names[kind]; ok {
		return name
	}
	return "?"
}

func writeNodes(w io.Writer, nodes []rd.Node, depth int) {
	for _, n := range nodes {
		writeNode(w, n, depth)
	}
}

func writeItems(w io.Writer, items []*rd.Item, depth int) {
	for _, item := range items {
		writeNode(w, item, depth)
	}
}

func writeNode(w io.Writer, node rd.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	line := func(format string, args ...any) {
		fmt.Fprintf(w, indent+format+"\n", args...)
	}
	children := func(label string, nodes []rd.Node) {
		line("%s", label)
		writeNodes(w, nodes, depth+1)
	}

	switch n := node.(type) {
	case *rd.Text:
		line("text %s", truncQuote(n.Value))
	case *rd.Verbatim:
		line("verbatim %s", truncQuote(n.Value))
	case *rd.Preformatted:
		line("preformatted %s", truncQuote(n.Value))
	case *rd.Code:
		children("code", n.Children)
	case *rd.Verb:
		line("verb %s", truncQuote(n.Value))
	case *rd.Emph:
		children("emph", n.Children)
	case *rd.Strong:
		children("strong", n.Children)
	case *rd.Samp:
		children("samp", n.Children)
	case *rd.File:
		children("file", n.Children)
	case *rd.Dfn:
		children("dfn", n.Children)
	case *rd.Kbd:
		children("kbd", n.Children)
	case *rd.SQuote:
		children("sQuote", n.Children)
	case *rd.DQuote:
		children("dQuote", n.Children)
	case *rd.Href:
		children("href url="+strconv.Quote(n.URL), n.Text)
	case *rd.Link:
		label := "link topic=" + strconv.Quote(n.Topic)
		if n.Package != "" {
			label += " package=" + strconv.Quote(n.Package)
		}
		children(label, n.Text)
	case *rd.LinkS4Class:
		line("linkS4class class=%q package=%q", n.Class, n.Package)
	case *rd.URL:
		line("url %q", n.Value)
	case *rd.Email:
		line("email %q", n.Value)
	case *rd.DOI:
		line("doi %q", n.Value)
	case *rd.Pkg:
		line("pkg %q", n.Value)
	case *rd.Var:
		line("var %q", n.Value)
	case *rd.Env:
		line("env %q", n.Value)
	case *rd.Option:
		line("option %q", n.Value)
	case *rd.Command:
		line("command %q", n.Value)
	case *rd.Acronym:
		line("acronym %q", n.Value)
	case *rd.Abbr:
		line("abbr %q", n.Value)
	case *rd.Cite:
		line("cite %q", n.Value)
	case *rd.Out:
		line("out %s", truncQuote(n.Value))
	case *rd.Sexpr:
		line("Sexpr %s", truncQuote(n.Code))
	case *rd.Eqn:
		line("eqn %s", truncQuote(n.Latex))
	case *rd.Deqn:
		line("deqn %s", truncQuote(n.Latex))
	case *rd.Special:
		line("special %q", rd.SpecialText(n.Char))
	case *rd.LineBreak:
		line("cr")
	case *rd.Tab:
		line("tab")
	case *rd.If:
		children("if format="+strconv.Quote(n.Format), n.Content)
	case *rd.IfElse:
		line("ifelse format=%q", n.Format)
		children("then", n.Then)
		children("else", n.Else)
	case *rd.Method:
		line("method generic=%q class=%q", n.Generic, n.Class)
	case *rd.S3Method:
		line("S3method generic=%q class=%q", n.Generic, n.Class)
	case *rd.S4Method:
		line("S4method generic=%q signature=%q", n.Generic, n.Signature)
	case *rd.Figure:
		if n.Option != nil {
			line("figure file=%q expert=%v value=%q", n.File, n.Option.Expert, n.Option.Value)
		} else {
			line("figure file=%q", n.File)
		}
	case *rd.Itemize:
		line("itemize")
		writeItems(w, n.Items, depth+1)
	case *rd.Enumerate:
		line("enumerate")
		writeItems(w, n.Items, depth+1)
	case *rd.Item:
		line("item")
		if n.Label != nil {
			children("label", n.Label)
		}
		writeNodes(w, n.Content, depth+1)
	case *rd.Describe:
		line("describe")
		for _, item := range n.Items {
			writeNode(w, &rd.Item{Label: item.Term, Content: item.Description}, depth+1)
		}
	case *rd.Tabular:
		line("tabular align=%q rows=%d", n.Alignment, len(n.Rows))
	case *rd.SectionNode:
		children("section "+strconv.Quote(n.Title), n.Content)
	case *rd.Subsection:
		children("subsection "+strconv.Quote(n.Title), n.Content)
	case *rd.DontRun:
		children("dontrun", n.Children)
	case *rd.DontTest:
		children("donttest", n.Children)
	case *rd.DontShow:
		children("dontshow", n.Children)
	case *rd.DontDiff:
		children("dontdiff", n.Children)
	case *rd.Macro:
		line("macro %q args=%d", n.Name, len(n.Args))
		for _, arg := range n.Args {
			writeNodes(w, arg, depth+1)
		}
	default:
		line("%T", node)
	}
}

func truncQuote(s string) string {
	const limit = 48
	if len(s) > limit {
		s = s[:limit] + "…"
	}
	return strconv.Quote(s)
}
