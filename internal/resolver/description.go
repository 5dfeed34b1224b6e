// Package resolver discovers reference-documentation base URLs for the
// external packages a documented package depends on. Dependencies come
// from the DCF DESCRIPTION file; candidate pkgdown sites are probed
// over HTTP and results are cached on disk between runs.
package resolver

import (
	"os"
	"sort"
	"strings"
)

// Description is the dependency-bearing subset of a DCF DESCRIPTION
// file.
type Description struct {
	Package  string
	Depends  []string
	Imports  []string
	Suggests []string
}

// LoadDescription reads and parses a DESCRIPTION file.
func LoadDescription(path string) (Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Description{}, err
	}
	return ParseDescription(data), nil
}

// ParseDescription parses DCF: `Field: value` records where
// continuation lines begin with whitespace. Unknown fields are
// ignored.
func ParseDescription(data []byte) Description {
	fields := make(map[string]string)
	var current string
	for line := range strings.Lines(string(data)) {
		line = strings.TrimRight(line, "\n")
		if line == "" {
			current = ""
			continue
		}
		if line[0] == ' ' || line[0] == '\t' {
			if current != "" {
				fields[current] += " " + strings.TrimSpace(line)
			}
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		current = strings.ToLower(strings.TrimSpace(name))
		fields[current] = strings.TrimSpace(value)
	}

	return Description{
		Package:  fields["package"],
		Depends:  splitPackageList(fields["depends"]),
		Imports:  splitPackageList(fields["imports"]),
		Suggests: splitPackageList(fields["suggests"]),
	}
}

// Packages returns the union of Depends, Imports, and Suggests with
// version constraints stripped, the R pseudo-dependency removed, and
// duplicates collapsed. Sorted for deterministic probing.
func (d Description) Packages() []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range [][]string{d.Depends, d.Imports, d.Suggests} {
		for _, pkg := range list {
			if pkg == "R" || seen[pkg] {
				continue
			}
			seen[pkg] = true
			out = append(out, pkg)
		}
	}
	sort.Strings(out)
	return out
}

// splitPackageList splits a comma-separated dependency list, dropping
// the parenthesized version constraint of each entry.
func splitPackageList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		name := part
		if idx := strings.IndexByte(name, '('); idx >= 0 {
			name = name[:idx]
		}
		name = strings.TrimSpace(name)
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}
