package meta

import (
	"testing"

	"rdmd/internal/parser"
	"rdmd/internal/source"
)

func extract(t *testing.T, src string) Meta {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.Rd", []byte(src))
	doc, err := parser.Parse(fs.Get(id))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return Extract(doc, []byte(src))
}

func TestExtractBasics(t *testing.T) {
	m := extract(t, `\name{foo}
\title{The foo function}
\alias{foo}
\alias{foo_alias}
\keyword{datasets}
\concept{data import}
\description{Does nothing.}
`)

	if m.Name != "foo" || m.Title != "The foo function" {
		t.Errorf("name=%q title=%q", m.Name, m.Title)
	}
	if m.PageTitle != "The foo function — foo" {
		t.Errorf("pagetitle = %q", m.PageTitle)
	}
	if len(m.Aliases) != 2 || m.Aliases[1] != "foo_alias" {
		t.Errorf("aliases = %v", m.Aliases)
	}
	if len(m.Keywords) != 1 || m.Keywords[0] != "datasets" {
		t.Errorf("keywords = %v", m.Keywords)
	}
	if len(m.Concepts) != 1 || m.Concepts[0] != "data import" {
		t.Errorf("concepts = %v", m.Concepts)
	}
}

func TestPageTitleNeedsBothParts(t *testing.T) {
	if m := extract(t, "\\title{Only a title}\n"); m.PageTitle != "" {
		t.Errorf("pagetitle = %q", m.PageTitle)
	}
	if m := extract(t, "\\name{only}\n"); m.PageTitle != "" {
		t.Errorf("pagetitle = %q", m.PageTitle)
	}
}

func TestSourceFiles(t *testing.T) {
	src := "% Generated by roxygen2: do not edit by hand\n" +
		"% Please edit documentation in R/foo.R, R/bar.R\n" +
		"\\name{foo}\n\\title{T}\n"
	m := extract(t, src)

	if len(m.SourceFiles) != 2 || m.SourceFiles[0] != "R/foo.R" || m.SourceFiles[1] != "R/bar.R" {
		t.Errorf("source files = %v", m.SourceFiles)
	}
}

func TestSourceFilesAbsent(t *testing.T) {
	m := extract(t, "\\name{foo}\n\\title{T}\n")
	if len(m.SourceFiles) != 0 {
		t.Errorf("source files = %v", m.SourceFiles)
	}
}

func TestLifecycleDetection(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want string
	}{
		{
			"plain figure",
			`\figure{lifecycle-experimental.svg}{options: alt='experimental'}`,
			"experimental",
		},
		{
			"path prefix",
			`\figure{figures/lifecycle-deprecated.svg}`,
			"deprecated",
		},
		{
			"inside ifelse html branch",
			`\ifelse{html}{\figure{lifecycle-stable.svg}}{stable}`,
			"stable",
		},
		{
			"inside else branch",
			`\ifelse{latex}{nothing}{\figure{lifecycle-superseded.svg}}`,
			"superseded",
		},
		{
			"inside href",
			`\href{https://lifecycle.r-lib.org}{\figure{lifecycle-soft-deprecated.svg}}`,
			"soft-deprecated",
		},
		{
			"unknown stage ignored",
			`\figure{lifecycle-shiny.svg}`,
			"",
		},
		{
			"unrelated figure",
			`\figure{plot.png}{options: alt='a plot'}`,
			"",
		},
		{
			"no figure",
			`Just text.`,
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := extract(t, "\\name{x}\n\\title{T}\n\\description{"+tt.desc+"}\n")
			if m.Lifecycle != tt.want {
				t.Errorf("lifecycle = %q, want %q", m.Lifecycle, tt.want)
			}
		})
	}
}

func TestLifecycleOnlyFromDescription(t *testing.T) {
	m := extract(t, "\\name{x}\n\\title{T}\n\\details{\\figure{lifecycle-stable.svg}}\n")
	if m.Lifecycle != "" {
		t.Errorf("lifecycle = %q, want empty", m.Lifecycle)
	}
}

func TestLifecycleFirstBadgeWins(t *testing.T) {
	m := extract(t, "\\name{x}\n\\title{T}\n\\description{"+
		`\figure{lifecycle-maturing.svg} and \figure{lifecycle-defunct.svg}`+
		"}\n")
	if m.Lifecycle != "maturing" {
		t.Errorf("lifecycle = %q, want maturing", m.Lifecycle)
	}
}
