package diagfmt

import (
	"encoding/json"
	"io"

	"rdmd/internal/diag"
	"rdmd/internal/source"
)

type jsonPosition struct {
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

type jsonNote struct {
	Path    string        `json:"path"`
	Span    source.Span   `json:"span"`
	Start   *jsonPosition `json:"start,omitempty"`
	Message string        `json:"message"`
}

type jsonDiagnostic struct {
	Severity string        `json:"severity"`
	Code     string        `json:"code"`
	Message  string        `json:"message"`
	Path     string        `json:"path"`
	Span     source.Span   `json:"span"`
	Start    *jsonPosition `json:"start,omitempty"`
	End      *jsonPosition `json:"end,omitempty"`
	Notes    []jsonNote    `json:"notes,omitempty"`
}

// JSON emits the bag as a JSON array, honoring the Max cutoff.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	items := bag.Items()
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
	}

	out := make([]jsonDiagnostic, 0, len(items))
	for _, d := range items {
		jd := jsonDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.String(),
			Message:  d.Message,
			Path:     pathOf(fs, d.Primary, opts.PathMode),
			Span:     d.Primary,
		}
		if opts.IncludePositions && lookupFile(fs, d.Primary) != nil {
			start, end := fs.Resolve(d.Primary)
			jd.Start = &jsonPosition{Line: start.Line, Col: start.Col}
			jd.End = &jsonPosition{Line: end.Line, Col: end.Col}
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				jn := jsonNote{
					Path:    pathOf(fs, n.Span, opts.PathMode),
					Span:    n.Span,
					Message: n.Msg,
				}
				if opts.IncludePositions && lookupFile(fs, n.Span) != nil {
					start, _ := fs.Resolve(n.Span)
					jn.Start = &jsonPosition{Line: start.Line, Col: start.Col}
				}
				jd.Notes = append(jd.Notes, jn)
			}
		}
		out = append(out, jd)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func pathOf(fs *source.FileSet, sp source.Span, mode PathMode) string {
	file := lookupFile(fs, sp)
	if file == nil {
		return ""
	}
	return displayPath(file.Path, mode)
}
