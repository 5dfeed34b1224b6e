package rd

import "testing"

func TestSectionKindForCaseInsensitive(t *testing.T) {
	tests := []struct {
		name string
		want SectionKind
	}{
		{"name", SecName},
		{"Title", SecTitle},
		{"DESCRIPTION", SecDescription},
		{"seealso", SecSeeAlso},
		{"docType", SecDocType},
		{"RdVersion", SecRdVersion},
		{"rdversion", SecRdVersion},
		{"madeup", SecUnknown},
	}
	for _, tt := range tests {
		if got := SectionKindFor(tt.name); got != tt.want {
			t.Errorf("SectionKindFor(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDocumentHelpers(t *testing.T) {
	doc := &Document{Sections: []Section{
		{Kind: SecName, Content: []Node{&Text{Value: " foo \n"}}},
		{Kind: SecTitle, Content: []Node{&Text{Value: "The foo function"}}},
		{Kind: SecAlias, Content: []Node{&Text{Value: "foo"}}},
		{Kind: SecAlias, Content: []Node{&Text{Value: "foo_bar"}}},
		{Kind: SecKeyword, Content: []Node{&Text{Value: " Internal "}}},
	}}

	if got := doc.Name(); got != "foo" {
		t.Errorf("Name() = %q, want foo", got)
	}
	if got := doc.Title(); got != "The foo function" {
		t.Errorf("Title() = %q", got)
	}
	if got := len(doc.FindAll(SecAlias)); got != 2 {
		t.Errorf("FindAll(SecAlias) returned %d sections, want 2", got)
	}
	if !doc.HasKeyword("internal") {
		t.Error("HasKeyword(internal) = false, want true (case-insensitive)")
	}
	if doc.HasKeyword("datasets") {
		t.Error("HasKeyword(datasets) = true, want false")
	}
	if doc.Find(SecExamples) != nil {
		t.Error("Find(SecExamples) should be nil")
	}
}
