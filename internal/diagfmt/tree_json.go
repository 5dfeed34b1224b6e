package diagfmt

import (
	"encoding/json"
	"io"

	"rdmd/internal/rd"
)

// FormatDocumentJSON dumps a parsed Rd document as JSON: a list of
// sections with nested node objects, each carrying a "kind" tag.
func FormatDocumentJSON(w io.Writer, doc *rd.Document) error {
	sections := make([]map[string]any, 0, len(doc.Sections))
	for i := range doc.Sections {
		sec := &doc.Sections[i]
		obj := map[string]any{
			"kind":    sectionLabelJSON(sec),
			"content": nodesJSON(sec.Content),
		}
		if sec.Name != "" {
			obj["name"] = sec.Name
		}
		sections = append(sections, obj)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{"sections": sections})
}

func sectionLabelJSON(sec *rd.Section) string {
	switch sec.Kind {
	case rd.SecCustom:
		return "section"
	case rd.SecUnknown:
		return "unknown"
	default:
		return sectionKindName(sec.Kind)
	}
}

func nodesJSON(nodes []rd.Node) []map[string]any {
	out := make([]map[string]any, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, nodeJSON(n))
	}
	return out
}

func itemsJSON(items []*rd.Item) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, nodeJSON(item))
	}
	return out
}

func nodeJSON(node rd.Node) map[string]any {
	kind := func(name string, fields map[string]any) map[string]any {
		if fields == nil {
			fields = map[string]any{}
		}
		fields["kind"] = name
		return fields
	}

	switch n := node.(type) {
	case *rd.Text:
		return kind("text", map[string]any{"value": n.Value})
	case *rd.Verbatim:
		return kind("verbatim", map[string]any{"value": n.Value})
	case *rd.Preformatted:
		return kind("preformatted", map[string]any{"value": n.Value})
	case *rd.Code:
		return kind("code", map[string]any{"children": nodesJSON(n.Children)})
	case *rd.Verb:
		return kind("verb", map[string]any{"value": n.Value})
	case *rd.Emph:
		return kind("emph", map[string]any{"children": nodesJSON(n.Children)})
	case *rd.Strong:
		return kind("strong", map[string]any{"children": nodesJSON(n.Children)})
	case *rd.Samp:
		return kind("samp", map[string]any{"children": nodesJSON(n.Children)})
	case *rd.File:
		return kind("file", map[string]any{"children": nodesJSON(n.Children)})
	case *rd.Dfn:
		return kind("dfn", map[string]any{"children": nodesJSON(n.Children)})
	case *rd.Kbd:
		return kind("kbd", map[string]any{"children": nodesJSON(n.Children)})
	case *rd.SQuote:
		return kind("sQuote", map[string]any{"children": nodesJSON(n.Children)})
	case *rd.DQuote:
		return kind("dQuote", map[string]any{"children": nodesJSON(n.Children)})
	case *rd.Href:
		return kind("href", map[string]any{"url": n.URL, "text": nodesJSON(n.Text)})
	case *rd.Link:
		fields := map[string]any{"topic": n.Topic, "text": nodesJSON(n.Text)}
		if n.Package != "" {
			fields["package"] = n.Package
		}
		return kind("link", fields)
	case *rd.LinkS4Class:
		fields := map[string]any{"class": n.Class}
		if n.Package != "" {
			fields["package"] = n.Package
		}
		return kind("linkS4class", fields)
	case *rd.URL:
		return kind("url", map[string]any{"value": n.Value})
	case *rd.Email:
		return kind("email", map[string]any{"value": n.Value})
	case *rd.DOI:
		return kind("doi", map[string]any{"value": n.Value})
	case *rd.Pkg:
		return kind("pkg", map[string]any{"value": n.Value})
	case *rd.Var:
		return kind("var", map[string]any{"value": n.Value})
	case *rd.Env:
		return kind("env", map[string]any{"value": n.Value})
	case *rd.Option:
		return kind("option", map[string]any{"value": n.Value})
	case *rd.Command:
		return kind("command", map[string]any{"value": n.Value})
	case *rd.Acronym:
		return kind("acronym", map[string]any{"value": n.Value})
	case *rd.Abbr:
		return kind("abbr", map[string]any{"value": n.Value})
	case *rd.Cite:
		return kind("cite", map[string]any{"value": n.Value})
	case *rd.Out:
		return kind("out", map[string]any{"value": n.Value})
	case *rd.Sexpr:
		return kind("Sexpr", map[string]any{"code": n.Code})
	case *rd.Eqn:
		fields := map[string]any{"latex": n.Latex}
		if n.ASCII != "" {
			fields["ascii"] = n.ASCII
		}
		return kind("eqn", fields)
	case *rd.Deqn:
		fields := map[string]any{"latex": n.Latex}
		if n.ASCII != "" {
			fields["ascii"] = n.ASCII
		}
		return kind("deqn", fields)
	case *rd.Special:
		return kind("special", map[string]any{"text": rd.SpecialText(n.Char)})
	case *rd.LineBreak:
		return kind("cr", nil)
	case *rd.Tab:
		return kind("tab", nil)
	case *rd.If:
		return kind("if", map[string]any{"format": n.Format, "content": nodesJSON(n.Content)})
	case *rd.IfElse:
		return kind("ifelse", map[string]any{"format": n.Format, "then": nodesJSON(n.Then), "else": nodesJSON(n.Else)})
	case *rd.Method:
		return kind("method", map[string]any{"generic": n.Generic, "class": n.Class})
	case *rd.S3Method:
		return kind("S3method", map[string]any{"generic": n.Generic, "class": n.Class})
	case *rd.S4Method:
		return kind("S4method", map[string]any{"generic": n.Generic, "signature": n.Signature})
	case *rd.Figure:
		fields := map[string]any{"file": n.File}
		if n.Option != nil {
			fields["expert"] = n.Option.Expert
			fields["value"] = n.Option.Value
		}
		return kind("figure", fields)
	case *rd.Itemize:
		return kind("itemize", map[string]any{"items": itemsJSON(n.Items)})
	case *rd.Enumerate:
		return kind("enumerate", map[string]any{"items": itemsJSON(n.Items)})
	case *rd.Item:
		fields := map[string]any{"content": nodesJSON(n.Content)}
		if n.Label != nil {
			fields["label"] = nodesJSON(n.Label)
		}
		return kind("item", fields)
	case *rd.Describe:
		items := make([]map[string]any, 0, len(n.Items))
		for _, item := range n.Items {
			items = append(items, map[string]any{
				"term":        nodesJSON(item.Term),
				"description": nodesJSON(item.Description),
			})
		}
		return kind("describe", map[string]any{"items": items})
	case *rd.Tabular:
		rows := make([][]any, 0, len(n.Rows))
		for _, row := range n.Rows {
			cells := make([]any, 0, len(row))
			for _, cell := range row {
				cells = append(cells, nodesJSON(cell))
			}
			rows = append(rows, cells)
		}
		return kind("tabular", map[string]any{"align": n.Alignment, "rows": rows})
	case *rd.SectionNode:
		return kind("section", map[string]any{"title": n.Title, "content": nodesJSON(n.Content)})
	case *rd.Subsection:
		return kind("subsection", map[string]any{"title": n.Title, "content": nodesJSON(n.Content)})
	case *rd.DontRun:
		return kind("dontrun", map[string]any{"children": nodesJSON(n.Children)})
	case *rd.DontTest:
		return kind("donttest", map[string]any{"children": nodesJSON(n.Children)})
	case *rd.DontShow:
		return kind("dontshow", map[string]any{"children": nodesJSON(n.Children)})
	case *rd.DontDiff:
		return kind("dontdiff", map[string]any{"children": nodesJSON(n.Children)})
	case *rd.Macro:
		args := make([]any, 0, len(n.Args))
		for _, arg := range n.Args {
			args = append(args, nodesJSON(arg))
		}
		return kind("macro", map[string]any{"name": n.Name, "args": args})
	default:
		return kind("unknown", nil)
	}
}
