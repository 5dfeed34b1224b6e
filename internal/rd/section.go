package rd

import "strings"

// SectionKind identifies a top-level Rd section tag.
type SectionKind uint8

const (
	// SecUnknown is any unrecognized tag; Section.Name keeps the raw name.
	SecUnknown SectionKind = iota
	// SecName is `\name`.
	SecName
	// SecTitle is `\title`.
	SecTitle
	// SecDescription is `\description`.
	SecDescription
	// SecAlias is `\alias`.
	SecAlias
	// SecUsage is `\usage`.
	SecUsage
	// SecArguments is `\arguments`.
	SecArguments
	// SecValue is `\value`.
	SecValue
	// SecDetails is `\details`.
	SecDetails
	// SecNote is `\note`.
	SecNote
	// SecAuthor is `\author`.
	SecAuthor
	// SecReferences is `\references`.
	SecReferences
	// SecSeeAlso is `\seealso`.
	SecSeeAlso
	// SecExamples is `\examples`.
	SecExamples
	// SecKeyword is `\keyword`.
	SecKeyword
	// SecConcept is `\concept`.
	SecConcept
	// SecFormat is `\format`.
	SecFormat
	// SecSource is `\source`.
	SecSource
	// SecEncoding is `\encoding`.
	SecEncoding
	// SecDocType is `\docType`.
	SecDocType
	// SecRdVersion is `\RdVersion`.
	SecRdVersion
	// SecCustom is `\section{title}{body}`; Section.Name keeps the title.
	SecCustom
)

var sectionKinds = map[string]SectionKind{
	"name":        SecName,
	"title":       SecTitle,
	"description": SecDescription,
	"alias":       SecAlias,
	"usage":       SecUsage,
	"arguments":   SecArguments,
	"value":       SecValue,
	"details":     SecDetails,
	"note":        SecNote,
	"author":      SecAuthor,
	"references":  SecReferences,
	"seealso":     SecSeeAlso,
	"examples":    SecExamples,
	"keyword":     SecKeyword,
	"concept":     SecConcept,
	"format":      SecFormat,
	"source":      SecSource,
	"encoding":    SecEncoding,
	"doctype":     SecDocType,
	"rdversion":   SecRdVersion,
}

// SectionKindFor maps a macro name to its section kind. Matching is
// case-insensitive; unrecognized names map to SecUnknown.
func SectionKindFor(name string) SectionKind {
	if kind, ok := sectionKinds[strings.ToLower(name)]; ok {
		return kind
	}
	return SecUnknown
}

// Section is one top-level tagged section of an Rd document. Name is the
// custom title for SecCustom and the raw macro name for SecUnknown.
type Section struct {
	Kind    SectionKind
	Name    string
	Content []Node
}

// Document is an ordered sequence of sections, in source order.
type Document struct {
	Sections []Section
}

// Find returns the first section of the given kind, or nil.
func (d *Document) Find(kind SectionKind) *Section {
	for i := range d.Sections {
		if d.Sections[i].Kind == kind {
			return &d.Sections[i]
		}
	}
	return nil
}

// FindAll returns every section of the given kind, in source order.
func (d *Document) FindAll(kind SectionKind) []*Section {
	var out []*Section
	for i := range d.Sections {
		if d.Sections[i].Kind == kind {
			out = append(out, &d.Sections[i])
		}
	}
	return out
}

// Name returns the text of the `\name` section, trimmed.
func (d *Document) Name() string {
	if s := d.Find(SecName); s != nil {
		return strings.TrimSpace(ExtractText(s.Content))
	}
	return ""
}

// Title returns the text of the `\title` section, trimmed.
func (d *Document) Title() string {
	if s := d.Find(SecTitle); s != nil {
		return strings.TrimSpace(ExtractText(s.Content))
	}
	return ""
}

// HasKeyword reports whether any `\keyword` section matches word,
// case-insensitively and ignoring surrounding whitespace.
func (d *Document) HasKeyword(word string) bool {
	for _, s := range d.FindAll(SecKeyword) {
		if strings.EqualFold(strings.TrimSpace(ExtractText(s.Content)), word) {
			return true
		}
	}
	return false
}
