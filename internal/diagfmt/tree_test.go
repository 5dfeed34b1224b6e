package diagfmt

import (
	"strings"
	"testing"

	"rdmd/internal/parser"
	"rdmd/internal/source"
)

func TestFormatDocumentPrettyLists(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("doc.Rd", []byte(
		"\\name{foo}\n\\details{\n\\itemize{\n\\item one\n\\item two\n}\n\\enumerate{\n\\item first\n}\n}\n"))
	doc, err := parser.Parse(fs.Get(id))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var sb strings.Builder
	FormatDocumentPretty(&sb, doc)
	out := sb.String()

	for _, want := range []string{"itemize", "enumerate", "item"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
	if got := strings.Count(out, "item\n"); got < 3 {
		t.Errorf("item count = %d, want >= 3:\n%s", got, out)
	}
}
