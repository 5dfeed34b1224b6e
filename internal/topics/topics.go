// Package topics builds the package topic index: one record per
// documented topic, sorted by name, serialized as JSON for site
// generators that need a reference listing.
package topics

import (
	"encoding/json"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"rdmd/internal/meta"
	"rdmd/internal/rd"
)

// Topic is one index record. File is the output file the topic is
// documented in, relative to the output directory.
type Topic struct {
	Name      string   `json:"name"`
	File      string   `json:"file"`
	Title     string   `json:"title"`
	Lifecycle string   `json:"lifecycle,omitempty"`
	Aliases   []string `json:"aliases,omitempty"`
	Keywords  []string `json:"keywords,omitempty"`
	Concepts  []string `json:"concepts,omitempty"`
}

// Entry is one parsed input file. Raw is the original file content,
// needed for the roxygen source-file comment scan.
type Entry struct {
	Path string // relative to the input directory
	Doc  *rd.Document
	Raw  []byte
}

// Build produces the sorted topic index. Documents without a `\name`
// are skipped; ext is the output extension without the dot.
func Build(entries []Entry, ext string) []Topic {
	out := make([]Topic, 0, len(entries))
	for _, e := range entries {
		if e.Doc == nil {
			continue
		}
		m := meta.Extract(e.Doc, e.Raw)
		if m.Name == "" {
			continue
		}
		out = append(out, Topic{
			Name:      m.Name,
			File:      outputFile(e.Path, ext),
			Title:     m.Title,
			Lifecycle: m.Lifecycle,
			Aliases:   m.Aliases,
			Keywords:  m.Keywords,
			Concepts:  m.Concepts,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// WriteJSON serializes the index with two-space indentation and a
// trailing newline.
func WriteJSON(w io.Writer, index []Topic) error {
	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n"))
	return err
}

func outputFile(rel, ext string) string {
	return strings.TrimSuffix(rel, filepath.Ext(rel)) + "." + ext
}
