package rd

// Node is the closed sum of Rd content variants. Every variant is a
// pointer to one of the structs below; the unexported marker keeps the
// set closed.
type Node interface {
	node()
}

// SpecialChar enumerates the characters produced by special macros.
type SpecialChar uint8

const (
	// SpecialR is the `\R` logo macro.
	SpecialR SpecialChar = iota
	// SpecialDots is `\dots` / `\ldots`.
	SpecialDots
	// SpecialLeftBrace is a literal `{`.
	SpecialLeftBrace
	// SpecialRightBrace is a literal `}`.
	SpecialRightBrace
	// SpecialBackslash is a literal `\`.
	SpecialBackslash
	// SpecialPercent is a literal `%`.
	SpecialPercent
	// SpecialEnDash is U+2013.
	SpecialEnDash
	// SpecialEmDash is U+2014.
	SpecialEmDash
	// SpecialLsqb is a left single quotation mark, U+2018.
	SpecialLsqb
	// SpecialRsqb is a right single quotation mark, U+2019.
	SpecialRsqb
	// SpecialLdqb is a left double quotation mark, U+201C.
	SpecialLdqb
	// SpecialRdqb is a right double quotation mark, U+201D.
	SpecialRdqb
)

// Text and block variants.

// Text is decoded character data, including whitespace and newlines.
type Text struct{ Value string }

// Paragraph groups children; the parser does not emit it, but the
// converter may materialize paragraphs when splitting on blank lines.
type Paragraph struct{ Children []Node }

// Verbatim is raw text kept exactly as written.
type Verbatim struct{ Value string }

// Preformatted is a `\preformatted{...}` block.
type Preformatted struct{ Value string }

// Structure variants.

// SectionNode is a nested `\section{title}{body}`.
type SectionNode struct {
	Title   string
	Content []Node
}

// Subsection is `\subsection{title}{body}`.
type Subsection struct {
	Title   string
	Content []Node
}

// Item is a single `\item` of an itemize or enumerate list. Label is nil
// when the item has no bracketed first argument.
type Item struct {
	Label   []Node
	Content []Node
}

// Itemize is `\itemize{...}`.
type Itemize struct{ Items []*Item }

// Enumerate is `\enumerate{...}`.
type Enumerate struct{ Items []*Item }

// DescribeItem is one `\item{term}{description}` of a describe list.
type DescribeItem struct {
	Term        []Node
	Description []Node
}

// Describe is `\describe{...}`.
type Describe struct{ Items []*DescribeItem }

// Tabular is `\tabular{alignment}{cells}`. Rows hold cells, cells hold
// inline content.
type Tabular struct {
	Alignment string
	Rows      [][][]Node
}

// Inline formatting variants.

// Code is `\code{...}` with parsed children.
type Code struct{ Children []Node }

// Verb is `\verb{...}`, kept verbatim.
type Verb struct{ Value string }

// Emph is `\emph{...}`.
type Emph struct{ Children []Node }

// Strong is `\strong{...}` or `\bold{...}`.
type Strong struct{ Children []Node }

// Samp is `\samp{...}`.
type Samp struct{ Children []Node }

// File is `\file{...}`.
type File struct{ Children []Node }

// Dfn is `\dfn{...}`.
type Dfn struct{ Children []Node }

// Kbd is `\kbd{...}`.
type Kbd struct{ Children []Node }

// SQuote is `\sQuote{...}`.
type SQuote struct{ Children []Node }

// DQuote is `\dQuote{...}`.
type DQuote struct{ Children []Node }

// Link variants.

// Href is `\href{url}{text}`.
type Href struct {
	URL  string
	Text []Node
}

// Link is `\link[opt]{topic}`. Package is "" when no package was named;
// Text is nil when the display text is the topic itself.
type Link struct {
	Package string
	Topic   string
	Text    []Node
}

// LinkS4Class is `\linkS4class[pkg]{class}`.
type LinkS4Class struct {
	Package string
	Class   string
}

// URL is `\url{...}`.
type URL struct{ Value string }

// Email is `\email{...}`.
type Email struct{ Value string }

// DOI is `\doi{...}`.
type DOI struct{ Value string }

// Pkg is `\pkg{...}`.
type Pkg struct{ Value string }

// Math variants.

// Eqn is inline math; ASCII is the optional second argument.
type Eqn struct {
	Latex string
	ASCII string
}

// Deqn is display math; ASCII is the optional second argument.
type Deqn struct {
	Latex string
	ASCII string
}

// Conditional and escape variants.

// If is `\if{format}{content}`.
type If struct {
	Format  string
	Content []Node
}

// IfElse is `\ifelse{format}{then}{else}`.
type IfElse struct {
	Format string
	Then   []Node
	Else   []Node
}

// Out is `\out{...}`: raw output passed through for matching formats.
type Out struct{ Value string }

// Sexpr is `\Sexpr[options]{code}`. The code is never evaluated.
type Sexpr struct {
	Options string
	Code    string
}

// Usage declaration variants.

// Method is `\method{generic}{class}`.
type Method struct {
	Generic string
	Class   string
}

// S3Method is `\S3method{generic}{class}`.
type S3Method struct {
	Generic string
	Class   string
}

// S4Method is `\S4method{generic}{signature}`.
type S4Method struct {
	Generic   string
	Signature string
}

// Figures and misc variants.

// FigureOption is the structured second argument of `\figure`.
type FigureOption struct {
	// Expert marks an `options:`-prefixed argument, passed through to the
	// output unparsed; otherwise Value is plain alt text.
	Expert bool
	Value  string
}

// Figure is `\figure{file}{options}`.
type Figure struct {
	File   string
	Option *FigureOption
}

// Var is `\var{...}`.
type Var struct{ Value string }

// Env is `\env{...}`.
type Env struct{ Value string }

// Option is `\option{...}`.
type Option struct{ Value string }

// Command is `\command{...}`.
type Command struct{ Value string }

// Acronym is `\acronym{...}`.
type Acronym struct{ Value string }

// Abbr is `\abbr{...}`.
type Abbr struct{ Value string }

// Cite is `\cite{...}`.
type Cite struct{ Value string }

// Example control variants.

// DontRun is `\dontrun{...}`.
type DontRun struct{ Children []Node }

// DontTest is `\donttest{...}`.
type DontTest struct{ Children []Node }

// DontShow is `\dontshow{...}` or its alias `\testonly{...}`.
type DontShow struct{ Children []Node }

// DontDiff is `\dontdiff{...}`.
type DontDiff struct{ Children []Node }

// Special characters and whitespace.

// Special is a single special character macro.
type Special struct{ Char SpecialChar }

// LineBreak is `\cr`.
type LineBreak struct{}

// Tab is `\tab`.
type Tab struct{}

// Macro is the fallback for unrecognized macros: the name plus every
// brace group that followed it.
type Macro struct {
	Name string
	Args [][]Node
}

func (*Text) node()         {}
func (*Paragraph) node()    {}
func (*Verbatim) node()     {}
func (*Preformatted) node() {}
func (*SectionNode) node()  {}
func (*Subsection) node()   {}
func (*Item) node()         {}
func (*Itemize) node()      {}
func (*Enumerate) node()    {}
func (*DescribeItem) node() {}
func (*Describe) node()     {}
func (*Tabular) node()      {}
func (*Code) node()         {}
func (*Verb) node()         {}
func (*Emph) node()         {}
func (*Strong) node()       {}
func (*Samp) node()         {}
func (*File) node()         {}
func (*Dfn) node()          {}
func (*Kbd) node()          {}
func (*SQuote) node()       {}
func (*DQuote) node()       {}
func (*Href) node()         {}
func (*Link) node()         {}
func (*LinkS4Class) node()  {}
func (*URL) node()          {}
func (*Email) node()        {}
func (*DOI) node()          {}
func (*Pkg) node()          {}
func (*Eqn) node()          {}
func (*Deqn) node()         {}
func (*If) node()           {}
func (*IfElse) node()       {}
func (*Out) node()          {}
func (*Sexpr) node()        {}
func (*Method) node()       {}
func (*S3Method) node()     {}
func (*S4Method) node()     {}
func (*Figure) node()       {}
func (*Var) node()          {}
func (*Env) node()          {}
func (*Option) node()       {}
func (*Command) node()      {}
func (*Acronym) node()      {}
func (*Abbr) node()         {}
func (*Cite) node()         {}
func (*DontRun) node()      {}
func (*DontTest) node()     {}
func (*DontShow) node()     {}
func (*DontDiff) node()     {}
func (*Special) node()      {}
func (*LineBreak) node()    {}
func (*Tab) node()          {}
func (*Macro) node()        {}

// SpecialText returns the canonical Unicode text for a special character.
func SpecialText(ch SpecialChar) string {
	switch ch {
	case SpecialR:
		return "R"
	case SpecialDots:
		return "..."
	case SpecialLeftBrace:
		return "{"
	case SpecialRightBrace:
		return "}"
	case SpecialBackslash:
		return "\\"
	case SpecialPercent:
		return "%"
	case SpecialEnDash:
		return "–"
	case SpecialEmDash:
		return "—"
	case SpecialLsqb:
		return "‘"
	case SpecialRsqb:
		return "’"
	case SpecialLdqb:
		return "“"
	case SpecialRdqb:
		return "”"
	}
	return ""
}
