package convert

import (
	"regexp"
	"strings"

	"rdmd/internal/md"
	"rdmd/internal/rd"
)

// convertInline lowers one inline Rd node. Dropped nodes (excluded
// conditionals, \Sexpr) return nil.
func (c *converter) convertInline(node rd.Node) []md.Node {
	one := func(n md.Node) []md.Node { return []md.Node{n} }

	switch n := node.(type) {
	case *rd.Text:
		return one(&md.Text{Value: normalizeText(n.Value)})
	case *rd.Code:
		// `\code{\link{...}}` is a link wearing code formatting; the
		// link conversion already wraps its display in inline code.
		if len(n.Children) == 1 {
			if link, ok := n.Children[0].(*rd.Link); ok {
				return one(c.convertLink(link))
			}
		}
		return one(&md.InlineCode{Value: rd.ExtractText(n.Children)})
	case *rd.Verb:
		return one(&md.InlineCode{Value: n.Value})
	case *rd.Emph:
		return one(&md.Emphasis{Children: c.convertInlineSeq(n.Children)})
	case *rd.Strong:
		return one(&md.Strong{Children: c.convertInlineSeq(n.Children)})
	case *rd.Dfn:
		return one(&md.Emphasis{Children: c.convertInlineSeq(n.Children)})
	case *rd.Samp:
		return one(&md.InlineCode{Value: rd.ExtractText(n.Children)})
	case *rd.File:
		return one(&md.InlineCode{Value: rd.ExtractText(n.Children)})
	case *rd.Kbd:
		return one(&md.InlineCode{Value: rd.ExtractText(n.Children)})
	case *rd.Acronym:
		return one(&md.Text{Value: n.Value})
	case *rd.Env:
		return one(&md.InlineCode{Value: n.Value})
	case *rd.Option:
		return one(&md.InlineCode{Value: n.Value})
	case *rd.Command:
		return one(&md.InlineCode{Value: n.Value})
	case *rd.Var:
		return one(&md.Emphasis{Children: []md.Node{&md.Text{Value: n.Value}}})
	case *rd.Pkg:
		return one(&md.Strong{Children: []md.Node{&md.Text{Value: n.Value}}})
	case *rd.SQuote:
		return one(&md.Text{Value: "'" + rd.ExtractText(n.Children) + "'"})
	case *rd.DQuote:
		return one(&md.Text{Value: `"` + rd.ExtractText(n.Children) + `"`})
	case *rd.Href:
		return one(&md.Link{URL: n.URL, Children: c.convertInlineSeq(n.Text)})
	case *rd.Link:
		return one(c.convertLink(n))
	case *rd.LinkS4Class:
		return one(c.convertLinkS4Class(n))
	case *rd.URL:
		return one(&md.Link{URL: n.Value, Children: []md.Node{&md.Text{Value: n.Value}}})
	case *rd.Email:
		return one(&md.Link{URL: "mailto:" + n.Value, Children: []md.Node{&md.Text{Value: n.Value}}})
	case *rd.DOI:
		return one(&md.Link{
			URL:      "https://doi.org/" + n.Value,
			Children: []md.Node{&md.Text{Value: "doi:" + n.Value}},
		})
	case *rd.Eqn:
		return one(&md.InlineMath{Value: n.Latex})
	case *rd.Special:
		return one(&md.Text{Value: rd.SpecialText(n.Char)})
	case *rd.LineBreak:
		return one(&md.Break{})
	case *rd.Tab:
		return one(&md.Text{Value: " "})
	case *rd.If:
		if formatIncluded(n.Format) {
			return c.convertInlineSeq(n.Content)
		}
		return nil
	case *rd.IfElse:
		if formatIncluded(n.Format) {
			return c.convertInlineSeq(n.Then)
		}
		return c.convertInlineSeq(n.Else)
	case *rd.Out:
		return one(&md.HTML{Value: n.Value})
	case *rd.Figure:
		return one(c.convertFigure(n))
	case *rd.Method:
		return one(&md.Text{Value: n.Generic + "()"})
	case *rd.S3Method:
		return one(&md.Text{Value: n.Generic + "()"})
	case *rd.S4Method:
		return one(&md.Text{Value: n.Generic + "()"})
	case *rd.DontRun:
		return c.convertInlineSeq(n.Children)
	case *rd.DontTest:
		return c.convertInlineSeq(n.Children)
	case *rd.DontShow:
		return nil
	case *rd.DontDiff:
		return c.convertInlineSeq(n.Children)
	case *rd.Sexpr:
		return nil
	case *rd.Item:
		// A stray \item outside a list renders as its content.
		return c.convertInlineSeq(n.Content)
	case *rd.Macro:
		if v := rd.ExtractText([]rd.Node{n}); v != "" {
			return one(&md.Text{Value: v})
		}
		return nil
	default:
		if v := rd.ExtractText([]rd.Node{node}); v != "" {
			return one(&md.Text{Value: v})
		}
		return nil
	}
}

// formatIncluded reports whether an \if format list selects the output
// produced here. The format argument may be comma-separated.
func formatIncluded(format string) bool {
	for _, f := range strings.Split(format, ",") {
		switch strings.TrimSpace(f) {
		case "html", "text":
			return true
		}
	}
	return false
}

func (c *converter) convertLink(n *rd.Link) md.Node {
	display := rd.LinkDisplay(n)
	if n.Package != "" {
		if base, ok := c.opts.ExternalPackageURLs[n.Package]; ok {
			return &md.Link{
				URL:      strings.TrimRight(base, "/") + "/" + n.Topic + ".html",
				Children: []md.Node{&md.InlineCode{Value: display}},
			}
		}
		return &md.InlineCode{Value: display}
	}
	return c.internalLink(n.Topic, display)
}

func (c *converter) convertLinkS4Class(n *rd.LinkS4Class) md.Node {
	topic := n.Class + "-class"
	display := topic
	if n.Package != "" {
		display = n.Package + "::" + topic
		if base, ok := c.opts.ExternalPackageURLs[n.Package]; ok {
			return &md.Link{
				URL:      strings.TrimRight(base, "/") + "/" + topic + ".html",
				Children: []md.Node{&md.InlineCode{Value: display}},
			}
		}
		return &md.InlineCode{Value: display}
	}
	return c.internalLink(topic, display)
}

// internalLink applies the three-way fallback for same-package topics:
// resolved alias, unresolved-URL pattern, bare inline code.
func (c *converter) internalLink(topic, display string) md.Node {
	code := &md.InlineCode{Value: display}
	if c.opts.LinkExtension == "" {
		return code
	}
	if target, ok := c.opts.AliasMap[topic]; ok {
		return &md.Link{
			URL:      target + "." + c.opts.LinkExtension,
			Children: []md.Node{code},
		}
	}
	if c.opts.UnresolvedLinkURL != "" {
		return &md.Link{
			URL:      strings.ReplaceAll(c.opts.UnresolvedLinkURL, "{topic}", topic),
			Children: []md.Node{code},
		}
	}
	return code
}

var (
	altSingleRe = regexp.MustCompile(`alt='([^']*)'`)
	altDoubleRe = regexp.MustCompile(`alt="([^"]*)"`)
)

func (c *converter) convertFigure(n *rd.Figure) md.Node {
	return &md.Image{URL: n.File, Alt: figureAlt(n)}
}

func figureAlt(n *rd.Figure) string {
	if n.Option == nil {
		return n.File
	}
	if !n.Option.Expert {
		return n.Option.Value
	}
	if m := altSingleRe.FindStringSubmatch(n.Option.Value); m != nil {
		return m[1]
	}
	if m := altDoubleRe.FindStringSubmatch(n.Option.Value); m != nil {
		return m[1]
	}
	return n.File
}

// normalizeText collapses internal whitespace runs to single spaces,
// keeping a leading and trailing space when the input had one. The
// operation is idempotent; an all-whitespace input becomes " ".
func normalizeText(s string) string {
	if s == "" {
		return ""
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return " "
	}
	var b strings.Builder
	if isSpaceByte(s[0]) {
		b.WriteByte(' ')
	}
	b.WriteString(strings.Join(fields, " "))
	if isSpaceByte(s[len(s)-1]) {
		b.WriteByte(' ')
	}
	return b.String()
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
