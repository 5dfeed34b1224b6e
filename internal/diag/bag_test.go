package diag

import (
	"testing"

	"rdmd/internal/source"
)

func span(file source.FileID, start, end uint32) source.Span {
	return source.Span{File: file, Start: start, End: end}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	if !b.Add(NewError(SynUnexpectedToken, span(0, 0, 1), "first")) {
		t.Fatal("first add rejected")
	}
	if !b.Add(NewError(SynUnexpectedToken, span(0, 1, 2), "second")) {
		t.Fatal("second add rejected")
	}
	if b.Add(NewError(SynUnexpectedToken, span(0, 2, 3), "third")) {
		t.Fatal("limit not enforced")
	}
	if b.Len() != 2 {
		t.Errorf("len = %d", b.Len())
	}
}

func TestBagSeverityQueries(t *testing.T) {
	b := NewBag(8)
	b.Add(New(SevInfo, IdxInfo, span(0, 0, 0), "info"))
	if b.HasWarnings() || b.HasErrors() {
		t.Error("info-only bag reports warnings or errors")
	}
	b.Add(NewWarning(IdxDuplicateAlias, span(0, 0, 0), "dup"))
	if !b.HasWarnings() || b.HasErrors() {
		t.Error("warning bag misreported")
	}
	b.Add(NewError(IOReadFailed, span(0, 0, 0), "io"))
	if !b.HasErrors() {
		t.Error("error not seen")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(8)
	b.Add(NewError(SynUnexpectedToken, span(1, 5, 6), "later file"))
	b.Add(NewError(SynUnexpectedToken, span(0, 9, 10), "later offset"))
	b.Add(NewError(SynUnexpectedEOF, span(0, 2, 3), "first"))
	b.Add(NewError(SynUnexpectedEOF, span(0, 2, 3), "first again"))
	b.Sort()
	b.Dedup()

	items := b.Items()
	if len(items) != 3 {
		t.Fatalf("len = %d", len(items))
	}
	if items[0].Code != SynUnexpectedEOF {
		t.Errorf("order wrong: %v", items[0].Code)
	}
	if items[2].Primary.File != 1 {
		t.Errorf("file order wrong: %v", items[2].Primary)
	}
}

func TestCodeString(t *testing.T) {
	if got := IdxDuplicateAlias.String(); got != "RD3001" {
		t.Errorf("got %q", got)
	}
}
