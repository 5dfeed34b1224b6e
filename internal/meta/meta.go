// Package meta extracts the front-matter facts of a parsed Rd document:
// naming, aliases, keyword and concept lists, the lifecycle badge, and
// the roxygen2 source-file pointers.
package meta

import (
	"regexp"
	"strings"

	"rdmd/internal/rd"
)

// Meta is everything the front matter needs from one document.
type Meta struct {
	Name      string
	Title     string
	PageTitle string
	Lifecycle string

	Aliases     []string
	Keywords    []string
	Concepts    []string
	SourceFiles []string
}

// Extract gathers metadata from the document and, for the source-file
// pointers, from the raw file bytes (the lexer drops comments, so the
// roxygen header has to be read off the original content).
func Extract(doc *rd.Document, raw []byte) Meta {
	m := Meta{
		Name:        doc.Name(),
		Title:       doc.Title(),
		Aliases:     sectionTexts(doc, rd.SecAlias),
		Keywords:    sectionTexts(doc, rd.SecKeyword),
		Concepts:    sectionTexts(doc, rd.SecConcept),
		SourceFiles: sourceFiles(raw),
	}
	if m.Title != "" && m.Name != "" {
		m.PageTitle = m.Title + " — " + m.Name
	}
	if desc := doc.Find(rd.SecDescription); desc != nil {
		m.Lifecycle = detectLifecycle(desc.Content)
	}
	return m
}

func sectionTexts(doc *rd.Document, kind rd.SectionKind) []string {
	var out []string
	for _, sec := range doc.FindAll(kind) {
		if text := strings.TrimSpace(rd.ExtractText(sec.Content)); text != "" {
			out = append(out, text)
		}
	}
	return out
}

// sourceFilePrefix opens the roxygen2 pointer comment.
const sourceFilePrefix = "% Please edit documentation in"

func sourceFiles(raw []byte) []string {
	var out []string
	for line := range strings.Lines(string(raw)) {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), sourceFilePrefix)
		if !ok {
			continue
		}
		for _, f := range strings.Split(rest, ",") {
			if f = strings.TrimSpace(f); f != "" {
				out = append(out, f)
			}
		}
	}
	return out
}

var lifecycleRe = regexp.MustCompile(`(?:.*/)?lifecycle-([A-Za-z-]+?)(?:\.\w+)?$`)

// lifecycleStages is the closed set of badge stages; anything else is
// ignored.
var lifecycleStages = map[string]bool{
	"experimental":    true,
	"stable":          true,
	"superseded":      true,
	"deprecated":      true,
	"maturing":        true,
	"questioning":     true,
	"soft-deprecated": true,
	"defunct":         true,
	"retired":         true,
}

// detectLifecycle finds the first badge figure anywhere under the
// description and returns its stage, or "".
func detectLifecycle(nodes []rd.Node) string {
	stage := ""
	walkFigures(nodes, func(fig *rd.Figure) bool {
		m := lifecycleRe.FindStringSubmatch(fig.File)
		if m == nil {
			return true
		}
		s := strings.ToLower(m[1])
		if !lifecycleStages[s] {
			return true
		}
		stage = s
		return false
	})
	return stage
}

// walkFigures visits every figure in the subtree, descending through
// all container variants. The callback returns false to stop.
func walkFigures(nodes []rd.Node, visit func(*rd.Figure) bool) bool {
	for _, node := range nodes {
		switch n := node.(type) {
		case *rd.Figure:
			if !visit(n) {
				return false
			}
		case *rd.Paragraph:
			if !walkFigures(n.Children, visit) {
				return false
			}
		case *rd.Code:
			if !walkFigures(n.Children, visit) {
				return false
			}
		case *rd.Emph:
			if !walkFigures(n.Children, visit) {
				return false
			}
		case *rd.Strong:
			if !walkFigures(n.Children, visit) {
				return false
			}
		case *rd.Samp:
			if !walkFigures(n.Children, visit) {
				return false
			}
		case *rd.File:
			if !walkFigures(n.Children, visit) {
				return false
			}
		case *rd.Dfn:
			if !walkFigures(n.Children, visit) {
				return false
			}
		case *rd.Kbd:
			if !walkFigures(n.Children, visit) {
				return false
			}
		case *rd.SQuote:
			if !walkFigures(n.Children, visit) {
				return false
			}
		case *rd.DQuote:
			if !walkFigures(n.Children, visit) {
				return false
			}
		case *rd.Href:
			if !walkFigures(n.Text, visit) {
				return false
			}
		case *rd.Link:
			if !walkFigures(n.Text, visit) {
				return false
			}
		case *rd.If:
			if !walkFigures(n.Content, visit) {
				return false
			}
		case *rd.IfElse:
			if !walkFigures(n.Then, visit) || !walkFigures(n.Else, visit) {
				return false
			}
		case *rd.Itemize:
			if !walkItems(n.Items, visit) {
				return false
			}
		case *rd.Enumerate:
			if !walkItems(n.Items, visit) {
				return false
			}
		case *rd.Item:
			if !walkFigures(n.Label, visit) || !walkFigures(n.Content, visit) {
				return false
			}
		case *rd.Describe:
			for _, item := range n.Items {
				if !walkFigures(item.Term, visit) || !walkFigures(item.Description, visit) {
					return false
				}
			}
		case *rd.Tabular:
			for _, row := range n.Rows {
				for _, cell := range row {
					if !walkFigures(cell, visit) {
						return false
					}
				}
			}
		case *rd.SectionNode:
			if !walkFigures(n.Content, visit) {
				return false
			}
		case *rd.Subsection:
			if !walkFigures(n.Content, visit) {
				return false
			}
		case *rd.DontRun:
			if !walkFigures(n.Children, visit) {
				return false
			}
		case *rd.DontTest:
			if !walkFigures(n.Children, visit) {
				return false
			}
		case *rd.DontShow:
			if !walkFigures(n.Children, visit) {
				return false
			}
		case *rd.DontDiff:
			if !walkFigures(n.Children, visit) {
				return false
			}
		case *rd.Macro:
			for _, arg := range n.Args {
				if !walkFigures(arg, visit) {
					return false
				}
			}
		}
	}
	return true
}

func walkItems(items []*rd.Item, visit func(*rd.Figure) bool) bool {
	for _, item := range items {
		if !walkFigures(item.Label, visit) || !walkFigures(item.Content, visit) {
			return false
		}
	}
	return true
}
