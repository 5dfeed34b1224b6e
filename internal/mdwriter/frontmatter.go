package mdwriter

import "strings"

// FrontMatter is the YAML header of an output document. Zero-valued
// fields are skipped; an entirely empty header emits nothing.
type FrontMatter struct {
	Title     string
	PageTitle string
	Format    string
	Lifecycle string

	Aliases     []string
	Keywords    []string
	Concepts    []string
	SourceFiles []string
}

// IsZero reports whether no field is set.
func (fm *FrontMatter) IsZero() bool {
	return fm.Title == "" && fm.PageTitle == "" && fm.Format == "" &&
		fm.Lifecycle == "" && len(fm.Aliases) == 0 && len(fm.Keywords) == 0 &&
		len(fm.Concepts) == 0 && len(fm.SourceFiles) == 0
}

func (w *writer) frontMatter(fm *FrontMatter) {
	if fm.IsZero() {
		return
	}
	w.write("---\n")
	if fm.Title != "" {
		w.write("title: " + yamlQuote(fm.Title) + "\n")
	}
	if fm.PageTitle != "" {
		w.write("pagetitle: " + yamlQuote(fm.PageTitle) + "\n")
	}
	if fm.Format != "" {
		w.write("format: " + fm.Format + "\n")
	}
	if fm.Lifecycle != "" {
		w.write("lifecycle: " + fm.Lifecycle + "\n")
	}
	w.yamlList("aliases", fm.Aliases)
	w.yamlList("keywords", fm.Keywords)
	w.yamlList("concepts", fm.Concepts)
	w.yamlList("source-files", fm.SourceFiles)
	w.write("---\n\n")
}

func (w *writer) yamlList(key string, values []string) {
	if len(values) == 0 {
		return
	}
	w.write(key + ":\n")
	for _, v := range values {
		w.write("  - " + yamlQuote(v) + "\n")
	}
}

func yamlQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
