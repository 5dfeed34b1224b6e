package driver

import (
	"context"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"rdmd/internal/lexer"
	"rdmd/internal/parser"
	"rdmd/internal/rd"
	"rdmd/internal/source"
	"rdmd/internal/token"
)

// ParsedFile is the parse outcome for one scanned file. Doc is nil when
// Err is set; Err covers both read and parse failures.
type ParsedFile struct {
	Path   string // relative to the scanned directory
	FileID source.FileID
	Doc    *rd.Document
	Err    error
}

// ParseDir scans dir for Rd files and parses them in parallel. The
// FileSet is fully loaded before the fan-out, so workers only read it.
func ParseDir(ctx context.Context, dir string, recursive bool, jobs int) (*source.FileSet, []ParsedFile, error) {
	files, err := ListRdFiles(dir, recursive)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	results := make([]ParsedFile, len(files))
	for i, rel := range files {
		results[i].Path = rel
		id, loadErr := fileSet.Load(filepath.Join(dir, rel))
		if loadErr != nil {
			results[i].Err = loadErr
			continue
		}
		results[i].FileID = id
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i := range results {
		if results[i].Err != nil {
			continue
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			// Slot i is owned by this goroutine, no mutex needed.
			file := fileSet.Get(results[i].FileID)
			doc, parseErr := parser.Parse(file)
			if parseErr != nil {
				results[i].Err = parseErr
				return nil
			}
			results[i].Doc = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// TokenizeFile loads one file and returns its token stream, EOF token
// included.
func TokenizeFile(path string) (*source.FileSet, source.FileID, []token.Token, error) {
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return fileSet, 0, nil, err
	}
	return fileSet, id, lexer.Scan(fileSet.Get(id)), nil
}

// ParseFile loads and parses one file.
func ParseFile(path string) (*source.FileSet, source.FileID, *rd.Document, error) {
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return fileSet, 0, nil, err
	}
	doc, err := parser.Parse(fileSet.Get(id))
	if err != nil {
		return fileSet, id, nil, err
	}
	return fileSet, id, doc, nil
}
