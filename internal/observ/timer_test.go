package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerBeginEnd(t *testing.T) {
	timer := NewTimer()
	idx := timer.Begin("parse")
	timer.End(idx, "3 files")

	report := timer.Report()
	if len(report.Phases) != 1 {
		t.Fatalf("phases = %d, want 1", len(report.Phases))
	}
	if report.Phases[0].Name != "parse" || report.Phases[0].Note != "3 files" {
		t.Fatalf("unexpected phase: %+v", report.Phases[0])
	}
}

func TestTimerRecord(t *testing.T) {
	timer := NewTimer()
	timer.Record("convert", 2*time.Millisecond, "")
	timer.Record("write", 3*time.Millisecond, "summed")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(report.Phases))
	}
	if report.TotalMS != 5 {
		t.Fatalf("total = %v ms, want 5", report.TotalMS)
	}

	out := timer.Summary()
	for _, want := range []string{"convert", "write", "// summed", "total"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestTimerEndOutOfRange(t *testing.T) {
	timer := NewTimer()
	timer.End(5, "ignored")
	if got := timer.Report(); len(got.Phases) != 0 {
		t.Fatalf("phases = %d, want 0", len(got.Phases))
	}
}
