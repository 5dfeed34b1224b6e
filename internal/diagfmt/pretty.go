package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"rdmd/internal/diag"
	"rdmd/internal/source"
)

// Pretty formats diagnostics for terminals. The bag should be sorted
// already. Each diagnostic prints as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with a caret run under the primary span,
// then any notes in the same shape.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	head := fmt.Sprintf("%s: %s %s: %s",
		formatPos(fs, d.Primary, opts.PathMode),
		severityLabel(d.Severity, opts.Color),
		d.Code.String(),
		d.Message)
	fmt.Fprintln(w, head)

	if opts.Context >= 0 {
		writeExcerpt(w, fs, d.Primary, opts)
	}
	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  note: %s: %s\n", formatPos(fs, n.Span, opts.PathMode), n.Msg)
		}
	}
}

func severityLabel(sev diag.Severity, colored bool) string {
	if !colored {
		return sev.String()
	}
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold).Sprint(sev.String())
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold).Sprint(sev.String())
	default:
		return color.New(color.FgCyan).Sprint(sev.String())
	}
}

func formatPos(fs *source.FileSet, sp source.Span, mode PathMode) string {
	file := lookupFile(fs, sp)
	if file == nil {
		return "<input>"
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", displayPath(file.Path, mode), start.Line, start.Col)
}

// lookupFile resolves a span's file, tolerating diagnostics that carry
// no position (IO failures, index warnings) and a nil FileSet.
func lookupFile(fs *source.FileSet, sp source.Span) *source.File {
	if fs == nil || int(sp.File) >= fs.Len() {
		return nil
	}
	if sp.Empty() && sp.Start == 0 && sp.End == 0 {
		return nil
	}
	return fs.Get(sp.File)
}

func displayPath(path string, mode PathMode) string {
	switch mode {
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	case PathModeRelative, PathModeAuto:
		if wd, err := filepath.Abs("."); err == nil {
			if rel, err := filepath.Rel(wd, path); err == nil && !strings.HasPrefix(rel, "..") {
				return rel
			}
		}
		return path
	}
	return path
}

// writeExcerpt prints the primary line with a caret run underneath.
func writeExcerpt(w io.Writer, fs *source.FileSet, sp source.Span, opts PrettyOpts) {
	file := lookupFile(fs, sp)
	if file == nil {
		return
	}
	start, end := fs.Resolve(sp)

	for ln := start.Line - uint32(min(int(opts.Context), int(start.Line-1))); ln <= start.Line; ln++ {
		line := file.GetLine(ln)
		fmt.Fprintf(w, "  %4d | %s\n", ln, strings.TrimRight(line, "\r\n"))
		if ln != start.Line {
			continue
		}

		width := 1
		if end.Line == start.Line && end.Col > start.Col {
			width = int(end.Col - start.Col)
		}
		caret := strings.Repeat(" ", int(start.Col-1)) + strings.Repeat("^", width)
		if opts.Color {
			caret = color.New(color.FgGreen, color.Bold).Sprint(caret)
		}
		fmt.Fprintf(w, "       | %s\n", caret)
	}
}
