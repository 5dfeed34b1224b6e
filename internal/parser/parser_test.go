package parser

import (
	"errors"
	"strings"
	"testing"

	"rdmd/internal/rd"
	"rdmd/internal/source"
)

func parseString(t *testing.T, input string) *rd.Document {
	t.Helper()
	doc, err := parseStringErr(input)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return doc
}

func parseStringErr(input string) (*rd.Document, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.Rd", []byte(input))
	return Parse(fs.Get(id))
}

// parseFragment parses a single-section document and returns the
// section's content.
func parseFragment(t *testing.T, body string) []rd.Node {
	t.Helper()
	doc := parseString(t, `\description{`+body+`}`)
	sec := doc.Find(rd.SecDescription)
	if sec == nil {
		t.Fatal("description section missing")
	}
	return sec.Content
}

func singleNode(t *testing.T, body string) rd.Node {
	t.Helper()
	nodes := parseFragment(t, body)
	if len(nodes) != 1 {
		t.Fatalf("want 1 node, got %d: %#v", len(nodes), nodes)
	}
	return nodes[0]
}

func TestParseSections(t *testing.T) {
	doc := parseString(t, "\\name{foo}\n\\title{The Foo}\n\\keyword{internal}\n")
	if len(doc.Sections) != 3 {
		t.Fatalf("want 3 sections, got %d", len(doc.Sections))
	}
	if got := doc.Name(); got != "foo" {
		t.Errorf("Name() = %q", got)
	}
	if got := doc.Title(); got != "The Foo" {
		t.Errorf("Title() = %q", got)
	}
	if !doc.HasKeyword("internal") {
		t.Error("HasKeyword(internal) = false")
	}
}

func TestParseCustomSection(t *testing.T) {
	doc := parseString(t, `\section{Warnings}{Mind the gap.}`)
	if len(doc.Sections) != 1 {
		t.Fatalf("want 1 section, got %d", len(doc.Sections))
	}
	sec := doc.Sections[0]
	if sec.Kind != rd.SecCustom || sec.Name != "Warnings" {
		t.Errorf("got kind=%v name=%q", sec.Kind, sec.Name)
	}
	if got := rd.ExtractText(sec.Content); got != "Mind the gap." {
		t.Errorf("content = %q", got)
	}
}

func TestParseBareKeyword(t *testing.T) {
	// Tags occasionally appear without a brace argument.
	doc := parseString(t, "\\docType{package}\n\\keyword\n")
	if len(doc.Sections) != 2 {
		t.Fatalf("want 2 sections, got %d", len(doc.Sections))
	}
	if doc.Sections[1].Kind != rd.SecKeyword || doc.Sections[1].Content != nil {
		t.Errorf("bare keyword parsed as %#v", doc.Sections[1])
	}
}

func TestTextMerging(t *testing.T) {
	nodes := parseFragment(t, "one two\nthree [four]")
	if len(nodes) != 1 {
		t.Fatalf("want single merged text node, got %d", len(nodes))
	}
	txt, ok := nodes[0].(*rd.Text)
	if !ok {
		t.Fatalf("got %T", nodes[0])
	}
	if txt.Value != "one two\nthree [four]" {
		t.Errorf("text = %q", txt.Value)
	}
}

func TestNestedBraceSplice(t *testing.T) {
	nodes := parseFragment(t, "a {b} c")
	// {b} is spliced, so three separate text nodes result.
	var parts []string
	for _, n := range nodes {
		txt, ok := n.(*rd.Text)
		if !ok {
			t.Fatalf("got %T", n)
		}
		parts = append(parts, txt.Value)
	}
	if got := strings.Join(parts, "|"); got != "a |b| c" {
		t.Errorf("parts = %q", got)
	}
}

func TestInlineMacros(t *testing.T) {
	tests := []struct {
		input string
		check func(t *testing.T, n rd.Node)
	}{
		{`\code{mean(x)}`, func(t *testing.T, n rd.Node) {
			c, ok := n.(*rd.Code)
			if !ok {
				t.Fatalf("got %T", n)
			}
			if rd.ExtractText(c.Children) != "mean(x)" {
				t.Errorf("children = %q", rd.ExtractText(c.Children))
			}
		}},
		{`\emph{word}`, func(t *testing.T, n rd.Node) {
			if _, ok := n.(*rd.Emph); !ok {
				t.Fatalf("got %T", n)
			}
		}},
		{`\bold{word}`, func(t *testing.T, n rd.Node) {
			if _, ok := n.(*rd.Strong); !ok {
				t.Fatalf("got %T", n)
			}
		}},
		{`\verb{x_y}`, func(t *testing.T, n rd.Node) {
			v, ok := n.(*rd.Verb)
			if !ok || v.Value != "x_y" {
				t.Fatalf("got %#v", n)
			}
		}},
		{`\url{https://example.org}`, func(t *testing.T, n rd.Node) {
			u, ok := n.(*rd.URL)
			if !ok || u.Value != "https://example.org" {
				t.Fatalf("got %#v", n)
			}
		}},
		{`\doi{10.1000/1}`, func(t *testing.T, n rd.Node) {
			d, ok := n.(*rd.DOI)
			if !ok || d.Value != "10.1000/1" {
				t.Fatalf("got %#v", n)
			}
		}},
		{`\R`, func(t *testing.T, n rd.Node) {
			s, ok := n.(*rd.Special)
			if !ok || s.Char != rd.SpecialR {
				t.Fatalf("got %#v", n)
			}
		}},
		{`\eqn{x^2}{x2}`, func(t *testing.T, n rd.Node) {
			e, ok := n.(*rd.Eqn)
			if !ok || e.Latex != "x^2" || e.ASCII != "x2" {
				t.Fatalf("got %#v", n)
			}
		}},
		{`\deqn{\sum_i x_i}`, func(t *testing.T, n rd.Node) {
			e, ok := n.(*rd.Deqn)
			if !ok || e.ASCII != "" {
				t.Fatalf("got %#v", n)
			}
			if !strings.Contains(e.Latex, "sum") {
				t.Errorf("latex = %q", e.Latex)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			nodes := parseFragment(t, tt.input)
			if len(nodes) == 0 {
				t.Fatal("no nodes")
			}
			tt.check(t, nodes[0])
		})
	}
}

func TestParseLinkForms(t *testing.T) {
	tests := []struct {
		input string
		want  rd.Link
	}{
		{`\link{mean}`, rd.Link{Topic: "mean"}},
		{`\link[=dest]{display}`, rd.Link{Topic: "dest"}},
		{`\link[stats:lm]{linear models}`, rd.Link{Package: "stats", Topic: "lm"}},
		{`\link[stats]{lm}`, rd.Link{Package: "stats", Topic: "lm"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n := singleNode(t, tt.input)
			link, ok := n.(*rd.Link)
			if !ok {
				t.Fatalf("got %T", n)
			}
			if link.Package != tt.want.Package || link.Topic != tt.want.Topic {
				t.Errorf("got pkg=%q topic=%q, want pkg=%q topic=%q",
					link.Package, link.Topic, tt.want.Package, tt.want.Topic)
			}
		})
	}
}

func TestParseLinkText(t *testing.T) {
	n := singleNode(t, `\link[=dest]{the display}`)
	link := n.(*rd.Link)
	if got := rd.ExtractText(link.Text); got != "the display" {
		t.Errorf("link text = %q", got)
	}
}

func TestParseHref(t *testing.T) {
	n := singleNode(t, `\href{https://r-project.org}{the R project}`)
	href, ok := n.(*rd.Href)
	if !ok {
		t.Fatalf("got %T", n)
	}
	if href.URL != "https://r-project.org" {
		t.Errorf("url = %q", href.URL)
	}
	if got := rd.ExtractText(href.Text); got != "the R project" {
		t.Errorf("text = %q", got)
	}
}

func TestParseLinkS4Class(t *testing.T) {
	n := singleNode(t, `\linkS4class{Matrix}`)
	l, ok := n.(*rd.LinkS4Class)
	if !ok || l.Class != "Matrix" || l.Package != "" {
		t.Fatalf("got %#v", n)
	}

	n = singleNode(t, `\linkS4class[Matrix]{dgCMatrix}`)
	l = n.(*rd.LinkS4Class)
	if l.Package != "Matrix" || l.Class != "dgCMatrix" {
		t.Errorf("got %#v", l)
	}
}

func TestItemizeUnbracedItems(t *testing.T) {
	n := singleNode(t, `\itemize{
  \item first point
  \item second point
}`)
	list, ok := n.(*rd.Itemize)
	if !ok {
		t.Fatalf("got %T", n)
	}
	if len(list.Items) != 2 {
		t.Fatalf("want 2 items, got %d", len(list.Items))
	}
	if got := rd.ExtractText(list.Items[0].Content); strings.TrimSpace(got) != "first point" {
		t.Errorf("item 0 = %q", got)
	}
	if list.Items[0].Label != nil {
		t.Errorf("unbraced item grew a label: %#v", list.Items[0].Label)
	}
}

func TestItemizeBracedItems(t *testing.T) {
	n := singleNode(t, `\itemize{
  \item{alpha}{the first letter}
  \item{beta}{the second letter}
}`)
	list := n.(*rd.Itemize)
	if len(list.Items) != 2 {
		t.Fatalf("want 2 items, got %d", len(list.Items))
	}
	if got := rd.ExtractText(list.Items[0].Label); got != "alpha" {
		t.Errorf("label = %q", got)
	}
	if got := rd.ExtractText(list.Items[1].Content); got != "the second letter" {
		t.Errorf("content = %q", got)
	}
}

func TestItemizeSingleBraceGroupIsContent(t *testing.T) {
	// One brace group with no second group is spliced content, not a
	// label.
	n := singleNode(t, `\itemize{
  \item {just text} and more
}`)
	list := n.(*rd.Itemize)
	if len(list.Items) != 1 {
		t.Fatalf("want 1 item, got %d", len(list.Items))
	}
	item := list.Items[0]
	if item.Label != nil {
		t.Errorf("label should be nil, got %#v", item.Label)
	}
	if got := rd.ExtractText(item.Content); !strings.Contains(got, "just text") || !strings.Contains(got, "and more") {
		t.Errorf("content = %q", got)
	}
}

func TestItemContentStopsAtNextItem(t *testing.T) {
	n := singleNode(t, `\enumerate{
  \item uses \code{f()}
  \item done
}`)
	list, ok := n.(*rd.Enumerate)
	if !ok {
		t.Fatalf("got %T", n)
	}
	if len(list.Items) != 2 {
		t.Fatalf("want 2 items, got %d", len(list.Items))
	}
	if got := rd.ExtractText(list.Items[0].Content); !strings.Contains(got, "f()") {
		t.Errorf("item 0 = %q", got)
	}
}

func TestDescribe(t *testing.T) {
	n := singleNode(t, `\describe{
  \item{x}{a numeric vector}
  \item{na.rm}{drop missing values}
}`)
	d, ok := n.(*rd.Describe)
	if !ok {
		t.Fatalf("got %T", n)
	}
	if len(d.Items) != 2 {
		t.Fatalf("want 2 items, got %d", len(d.Items))
	}
	if got := rd.ExtractText(d.Items[1].Term); got != "na.rm" {
		t.Errorf("term = %q", got)
	}
	if got := rd.ExtractText(d.Items[0].Description); got != "a numeric vector" {
		t.Errorf("description = %q", got)
	}
}

func TestTabular(t *testing.T) {
	n := singleNode(t, `\tabular{rl}{
  one \tab two \cr
  three \tab four \cr
}`)
	tab, ok := n.(*rd.Tabular)
	if !ok {
		t.Fatalf("got %T", n)
	}
	if tab.Alignment != "rl" {
		t.Errorf("alignment = %q", tab.Alignment)
	}
	if len(tab.Rows) != 2 {
		t.Fatalf("want 2 rows, got %d", len(tab.Rows))
	}
	for i, row := range tab.Rows {
		if len(row) != 2 {
			t.Fatalf("row %d: want 2 cells, got %d", i, len(row))
		}
	}
	if got := strings.TrimSpace(rd.ExtractText(tab.Rows[1][1])); got != "four" {
		t.Errorf("cell = %q", got)
	}
}

func TestTabularNoTrailingCr(t *testing.T) {
	n := singleNode(t, `\tabular{ll}{a \tab b \cr c \tab d}`)
	tab := n.(*rd.Tabular)
	if len(tab.Rows) != 2 {
		t.Fatalf("want 2 rows, got %d", len(tab.Rows))
	}
}

func TestConditionals(t *testing.T) {
	n := singleNode(t, `\if{html}{\out{<hr>}}`)
	cond, ok := n.(*rd.If)
	if !ok {
		t.Fatalf("got %T", n)
	}
	if cond.Format != "html" {
		t.Errorf("format = %q", cond.Format)
	}
	out, ok := cond.Content[0].(*rd.Out)
	if !ok || out.Value != "<hr>" {
		t.Fatalf("content[0] = %#v", cond.Content[0])
	}

	n = singleNode(t, `\ifelse{latex}{yes}{no}`)
	ie, ok := n.(*rd.IfElse)
	if !ok {
		t.Fatalf("got %T", n)
	}
	if rd.ExtractText(ie.Then) != "yes" || rd.ExtractText(ie.Else) != "no" {
		t.Errorf("branches = %q / %q", rd.ExtractText(ie.Then), rd.ExtractText(ie.Else))
	}
}

func TestMethods(t *testing.T) {
	n := singleNode(t, `\method{print}{data.frame}`)
	m, ok := n.(*rd.Method)
	if !ok || m.Generic != "print" || m.Class != "data.frame" {
		t.Fatalf("got %#v", n)
	}

	n = singleNode(t, `\S4method{show}{Matrix,ANY}`)
	s4, ok := n.(*rd.S4Method)
	if !ok || s4.Generic != "show" || s4.Signature != "Matrix,ANY" {
		t.Fatalf("got %#v", n)
	}
}

func TestExampleWrappers(t *testing.T) {
	n := singleNode(t, `\dontrun{launch_missiles()}`)
	dr, ok := n.(*rd.DontRun)
	if !ok {
		t.Fatalf("got %T", n)
	}
	if got := rd.ExtractText(dr.Children); got != "launch_missiles()" {
		t.Errorf("children = %q", got)
	}

	n = singleNode(t, `\testonly{stopifnot(TRUE)}`)
	if _, ok := n.(*rd.DontShow); !ok {
		t.Fatalf("testonly parsed as %T", n)
	}
}

func TestFigure(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		file   string
		expert bool
		value  string
		hasOpt bool
	}{
		{"bare", `\figure{plot.png}`, "plot.png", false, "", false},
		{"alt", `\figure{plot.png}{A scatter plot}`, "plot.png", false, "A scatter plot", true},
		{"expert", `\figure{plot.png}{options: width=50\%}`, "plot.png", true, `width=50%`, true},
		{"colon no space", `\figure{plot.png}{options:width}`, "plot.png", false, "options:width", true},
		{"bracket alt", `\figure{plot.png}[alt text]`, "plot.png", false, "alt text", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := singleNode(t, tt.input)
			fig, ok := n.(*rd.Figure)
			if !ok {
				t.Fatalf("got %T", n)
			}
			if fig.File != tt.file {
				t.Errorf("file = %q", fig.File)
			}
			if tt.hasOpt != (fig.Option != nil) {
				t.Fatalf("option presence = %v, want %v", fig.Option != nil, tt.hasOpt)
			}
			if fig.Option != nil {
				if fig.Option.Expert != tt.expert || fig.Option.Value != tt.value {
					t.Errorf("option = %#v", fig.Option)
				}
			}
		})
	}
}

func TestNestedSectionInContent(t *testing.T) {
	nodes := parseFragment(t, `\section{Deep}{inner text}`)
	var found *rd.SectionNode
	for _, n := range nodes {
		if s, ok := n.(*rd.SectionNode); ok {
			found = s
		}
	}
	if found == nil {
		t.Fatal("no nested section node")
	}
	if found.Title != "Deep" {
		t.Errorf("title = %q", found.Title)
	}
}

func TestUnknownMacro(t *testing.T) {
	n := singleNode(t, `\CRANpkg{dplyr}`)
	m, ok := n.(*rd.Macro)
	if !ok {
		t.Fatalf("got %T", n)
	}
	if m.Name != "CRANpkg" || len(m.Args) != 1 {
		t.Fatalf("got %#v", m)
	}
	if got := rd.ExtractText(m.Args[0]); got != "dplyr" {
		t.Errorf("arg = %q", got)
	}
}

func TestUnknownMacroNoArgs(t *testing.T) {
	nodes := parseFragment(t, `before \myThing after`)
	var m *rd.Macro
	for _, n := range nodes {
		if mm, ok := n.(*rd.Macro); ok {
			m = mm
		}
	}
	if m == nil || m.Name != "myThing" || m.Args != nil {
		t.Fatalf("got %#v", m)
	}
}

func TestUnclosedBraceError(t *testing.T) {
	_, err := parseStringErr(`\description{oops`)
	if err == nil {
		t.Fatal("want error")
	}
	var eof *UnexpectedEOFError
	if !errors.As(err, &eof) {
		t.Errorf("want UnexpectedEOFError, got %T: %v", err, err)
	}
}

func TestMissingBraceError(t *testing.T) {
	_, err := parseStringErr(`\description{\href{https://x.org} x}`)
	if err == nil {
		t.Fatal("want error")
	}
	var ute *UnexpectedTokenError
	if !errors.As(err, &ute) {
		t.Fatalf("want UnexpectedTokenError, got %T: %v", err, err)
	}
	if !strings.Contains(ute.Error(), "'{'") {
		t.Errorf("message = %q", ute.Error())
	}
}

func TestEscapedCharactersFlowThrough(t *testing.T) {
	nodes := parseFragment(t, `50\% of \{things\}`)
	if len(nodes) != 1 {
		t.Fatalf("want merged text, got %d nodes", len(nodes))
	}
	if got := nodes[0].(*rd.Text).Value; got != "50% of {things}" {
		t.Errorf("text = %q", got)
	}
}

func TestCommentsSkipped(t *testing.T) {
	doc := parseString(t, "% header comment\n\\name{x}\n% tail\n")
	if got := doc.Name(); got != "x" {
		t.Errorf("Name() = %q", got)
	}
}

func TestPreformatted(t *testing.T) {
	n := singleNode(t, "\\preformatted{x <- 1\ny <- 2}")
	pre, ok := n.(*rd.Preformatted)
	if !ok {
		t.Fatalf("got %T", n)
	}
	if pre.Value != "x <- 1\ny <- 2" {
		t.Errorf("value = %q", pre.Value)
	}
}
