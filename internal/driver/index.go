package driver

import (
	"path/filepath"
	"strings"

	"rdmd/internal/diag"
	"rdmd/internal/rd"
	"rdmd/internal/source"
)

// BuildAliasIndex maps every `\alias` text and every `\name` of the
// parsed files to the owning file's basename without extension. When
// the same alias is declared by two files, the lexicographically
// smallest basename wins and a warning is reported for the loser.
func BuildAliasIndex(parsed []ParsedFile, reporter diag.Reporter) map[string]string {
	index := make(map[string]string)
	for i := range parsed {
		if parsed[i].Doc == nil {
			continue
		}
		base := outputBasename(parsed[i].Path)
		for _, alias := range topicNames(parsed[i].Doc) {
			prev, taken := index[alias]
			if !taken {
				index[alias] = base
				continue
			}
			if prev == base {
				continue
			}
			winner, loser := prev, base
			if base < prev {
				winner, loser = base, prev
				index[alias] = base
			}
			if reporter != nil {
				reporter.Report(diag.IdxDuplicateAlias, diag.SevWarning, source.Span{},
					"alias "+alias+" declared by both "+winner+" and "+loser+"; links resolve to "+winner,
					nil)
			}
		}
	}
	return index
}

// topicNames collects the document's alias names plus its `\name`,
// deduplicated, in declaration order.
func topicNames(doc *rd.Document) []string {
	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, sec := range doc.FindAll(rd.SecAlias) {
		add(strings.TrimSpace(rd.ExtractText(sec.Content)))
	}
	add(doc.Name())
	return names
}

// outputBasename strips the directory and the .Rd extension from a
// relative input path.
func outputBasename(rel string) string {
	base := filepath.Base(rel)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
