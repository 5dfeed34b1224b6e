// Package diagfmt renders diagnostics, token streams, and parsed Rd
// trees for the CLI. It owns all formatting; internal/diag stays pure
// data.
package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color    bool
	PathMode PathMode
	// Context is the number of source lines shown around the primary
	// span; negative disables the source excerpt.
	Context   int8
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	// IncludePositions adds resolved line/col pairs next to raw spans.
	IncludePositions bool
	PathMode         PathMode
	// Max truncates the emitted list; zero means everything.
	Max          int
	IncludeNotes bool
}
