package convert

// ArgumentsFormat selects how the Arguments section is tabulated.
type ArgumentsFormat uint8

const (
	// ArgumentsPipe restricts argument descriptions to inline content
	// joined with <br>.
	ArgumentsPipe ArgumentsFormat = iota
	// ArgumentsGrid renders a Pandoc grid table, allowing nested block
	// content inside cells.
	ArgumentsGrid
)

// Options configure a conversion run. The zero value degrades every
// internal link to inline code and keeps all example wrappers
// non-executable; DefaultOptions matches pkgdown semantics.
type Options struct {
	// LinkExtension is the file extension for internal cross-links
	// ("qmd", "md"). Empty means links degrade to inline code.
	LinkExtension string

	// AliasMap resolves \link topics to output basenames.
	AliasMap map[string]string

	// UnresolvedLinkURL is a pattern with a {topic} placeholder used
	// when a topic is missing from AliasMap.
	UnresolvedLinkURL string

	// ExternalPackageURLs maps package names to reference-doc base URLs
	// for \link[pkg]{topic}.
	ExternalPackageURLs map[string]string

	ExecDontrun  bool
	ExecDonttest bool

	// QuartoCodeBlocks emits {r} fences for executable code and enables
	// \dontshow include-false blocks.
	QuartoCodeBlocks bool

	ArgumentsFormat ArgumentsFormat
}

// DefaultOptions returns pkgdown-compatible defaults: \donttest runs,
// \dontrun does not, quarto fences on.
func DefaultOptions() Options {
	return Options{
		ExecDonttest:     true,
		QuartoCodeBlocks: true,
	}
}
