package topics

import (
	"strings"
	"testing"

	"rdmd/internal/parser"
	"rdmd/internal/source"
)

func parseEntry(t *testing.T, path, src string) Entry {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual(path, []byte(src))
	doc, err := parser.Parse(fs.Get(id))
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	return Entry{Path: path, Doc: doc, Raw: []byte(src)}
}

func TestBuildSortsByName(t *testing.T) {
	entries := []Entry{
		parseEntry(t, "zeta.Rd", "\\name{zeta}\n\\title{Z}\n"),
		parseEntry(t, "alpha.Rd", "\\name{alpha}\n\\alias{a1}\n\\title{A}\n\\keyword{datasets}\n"),
	}
	index := Build(entries, "qmd")

	if len(index) != 2 {
		t.Fatalf("len = %d", len(index))
	}
	if index[0].Name != "alpha" || index[1].Name != "zeta" {
		t.Errorf("order = %s, %s", index[0].Name, index[1].Name)
	}
	if index[0].File != "alpha.qmd" {
		t.Errorf("file = %q", index[0].File)
	}
	if len(index[0].Aliases) != 1 || index[0].Aliases[0] != "a1" {
		t.Errorf("aliases = %v", index[0].Aliases)
	}
	if len(index[0].Keywords) != 1 || index[0].Keywords[0] != "datasets" {
		t.Errorf("keywords = %v", index[0].Keywords)
	}
}

func TestBuildSkipsNameless(t *testing.T) {
	entries := []Entry{
		parseEntry(t, "named.Rd", "\\name{named}\n\\title{N}\n"),
		parseEntry(t, "stray.Rd", "\\title{No name}\n"),
		{Path: "broken.Rd"},
	}
	index := Build(entries, "md")

	if len(index) != 1 || index[0].File != "named.md" {
		t.Errorf("index = %v", index)
	}
}

func TestWriteJSON(t *testing.T) {
	index := Build([]Entry{
		parseEntry(t, "foo.Rd", "\\name{foo}\n\\title{The foo function}\n"),
	}, "qmd")

	var b strings.Builder
	if err := WriteJSON(&b, index); err != nil {
		t.Fatal(err)
	}
	want := `[
  {
    "name": "foo",
    "file": "foo.qmd",
    "title": "The foo function"
  }
]
`
	if b.String() != want {
		t.Errorf("json = %q, want %q", b.String(), want)
	}
}
