package driver

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListRdFiles returns the sorted list of *.Rd files under dir, as paths
// relative to dir. The extension match is case-insensitive (.Rd and .rd
// both occur in the wild). With recursive false only the top level of
// dir is scanned.
func ListRdFiles(dir string, recursive bool) ([]string, error) {
	var files []string

	if recursive {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isRdFile(path) {
				rel, relErr := filepath.Rel(dir, path)
				if relErr != nil {
					return relErr
				}
				files = append(files, rel)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() && isRdFile(entry.Name()) {
				files = append(files, entry.Name())
			}
		}
	}

	// Deterministic order for the alias index and the result lists.
	sort.Strings(files)
	return files, nil
}

func isRdFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".rd")
}
