package mdwriter

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
)

// gridMaxColWidth bounds one column of a grid table; wider cells are
// word-wrapped.
const gridMaxColWidth = 58

// GridTable lays out a Pandoc grid table with a `=` rule under the
// header. Cells may hold multi-line markdown; widths are measured in
// display cells so wide runes stay aligned.
func GridTable(headers []string, rows [][]string) string {
	cols := len(headers)
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = cellWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= cols {
				break
			}
			widths[i] = max(widths[i], cellWidth(cell))
		}
	}
	for i := range widths {
		widths[i] = min(widths[i], gridMaxColWidth)
	}

	var b strings.Builder
	rule := func(fill string) {
		for _, width := range widths {
			b.WriteString("+" + strings.Repeat(fill, width+2))
		}
		b.WriteString("+\n")
	}
	body := func(cells []string) {
		lines := make([][]string, cols)
		height := 1
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			lines[i] = strings.Split(wordwrap.String(cell, widths[i]), "\n")
			height = max(height, len(lines[i]))
		}
		for ln := 0; ln < height; ln++ {
			for i := 0; i < cols; i++ {
				line := ""
				if ln < len(lines[i]) {
					line = lines[i][ln]
				}
				b.WriteString("| " + runewidth.FillRight(line, widths[i]) + " ")
			}
			b.WriteString("|\n")
		}
	}

	rule("-")
	body(headers)
	rule("=")
	for _, row := range rows {
		body(row)
		rule("-")
	}
	return b.String()
}

func cellWidth(cell string) int {
	w := 0
	for _, line := range strings.Split(cell, "\n") {
		w = max(w, runewidth.StringWidth(line))
	}
	return w
}
