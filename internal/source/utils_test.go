package source

import (
	"bytes"
	"testing"
)

func TestNormalizeCRLF(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		changed bool
	}{
		{name: "no carriage returns", in: "a\nb\n", want: "a\nb\n", changed: false},
		{name: "crlf pairs", in: "a\r\nb\r\n", want: "a\nb\n", changed: true},
		{name: "bare cr preserved", in: "a\rb", want: "a\rb", changed: false},
		{name: "mixed", in: "a\r\nb\rc\n", want: "a\nb\rc\n", changed: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := normalizeCRLF([]byte(tt.in))
			if string(got) != tt.want || changed != tt.changed {
				t.Errorf("normalizeCRLF(%q) = (%q, %v), want (%q, %v)", tt.in, got, changed, tt.want, tt.changed)
			}
		})
	}
}

func TestNormalizeNFC(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		changed bool
	}{
		{name: "ascii untouched", in: "plain text\n", want: "plain text\n", changed: false},
		{name: "composed untouched", in: "café", want: "café", changed: false},
		{name: "decomposed recomposed", in: "café", want: "café", changed: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := normalizeNFC([]byte(tt.in))
			if string(got) != tt.want || changed != tt.changed {
				t.Errorf("normalizeNFC(%q) = (%q, %v), want (%q, %v)", tt.in, got, changed, tt.want, tt.changed)
			}
		})
	}
}

func TestRemoveBOM(t *testing.T) {
	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, []byte("\\name{x}")...)
	got, had := removeBOM(withBOM)
	if !had || !bytes.Equal(got, []byte("\\name{x}")) {
		t.Errorf("removeBOM did not strip BOM: got %q, had=%v", got, had)
	}

	plain := []byte("\\name{x}")
	got, had = removeBOM(plain)
	if had || !bytes.Equal(got, plain) {
		t.Errorf("removeBOM touched plain content: got %q, had=%v", got, had)
	}
}

func TestToLineCol(t *testing.T) {
	content := []byte("ab\ncdéf\nx")
	idx := buildLineIndex(content)

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{1, LineCol{Line: 1, Col: 2}},
		{2, LineCol{Line: 1, Col: 3}}, // at the newline
		{3, LineCol{Line: 2, Col: 1}},
		// é occupies two bytes but one column
		{7, LineCol{Line: 2, Col: 4}},
		{9, LineCol{Line: 3, Col: 1}},
	}
	for _, tt := range tests {
		got := toLineCol(content, idx, tt.off)
		if got != tt.want {
			t.Errorf("toLineCol(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}
}

func TestToLineColSingleLine(t *testing.T) {
	content := []byte("hello")
	got := toLineCol(content, buildLineIndex(content), 3)
	if got != (LineCol{Line: 1, Col: 4}) {
		t.Errorf("toLineCol = %+v, want 1:4", got)
	}
}
