package source

import (
	"path/filepath"
	"slices"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// normalizeCRLF rewrites every \r\n to \n, leaving bare \r alone.
// Returns the (possibly new) slice and whether any replacement happened.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

// normalizeNFC renormalizes content to NFC so that alias keys and link
// topics compare consistently across differently-composed inputs.
func normalizeNFC(content []byte) ([]byte, bool) {
	if norm.NFC.IsNormal(content) {
		return content, false
	}
	return norm.NFC.Bytes(content), true
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/32)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

// toLineCol resolves a byte offset to a 1-based line and a 1-based column
// counted in Unicode scalar values from the line start.
func toLineCol(content []byte, lineIdx []uint32, off uint32) LineCol {
	// Binary search: largest lineIdx[i] <= off-1 gives the previous newline.
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	line := hi // index of the newline that precedes off (0-based)

	var startOff uint32
	if line < 0 {
		startOff = 0
	} else {
		startOff = lineIdx[line] + 1
	}

	if int(off) > len(content) {
		off = uint32(len(content))
	}
	col := uint32(utf8.RuneCount(content[startOff:off])) + 1
	return LineCol{Line: uint32(line + 2), Col: col}
}

func normalizePath(p string) string {
	// one canonical form across platforms
	return filepath.ToSlash(filepath.Clean(p))
}
