package driver

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"rdmd/internal/convert"
	"rdmd/internal/diag"
	"rdmd/internal/mdwriter"
	"rdmd/internal/meta"
	"rdmd/internal/pipeline"
	"rdmd/internal/source"
)

// Options configures a package conversion run.
type Options struct {
	InputDir  string
	OutputDir string

	// Extension is the output file extension without the dot.
	// Defaults to "qmd".
	Extension string

	Recursive       bool
	IncludeInternal bool

	// FrontMatter enables the YAML front-matter block; Format, when
	// set, is emitted as its `format:` field.
	FrontMatter bool
	Format      string

	// Jobs caps the parallel fan-out; <= 0 means GOMAXPROCS.
	Jobs int

	// MaxDiagnostics bounds the run's diagnostic bag.
	MaxDiagnostics int

	// Convert holds the per-file converter options. The alias index is
	// built by the driver and injected; an AliasMap set here is
	// overwritten.
	Convert convert.Options

	// Sink receives per-file progress events. Nil means no progress
	// reporting. OnEvent is called from worker goroutines.
	Sink pipeline.ProgressSink
}

// FileFailure is one failed input file with a human-readable message.
// Parse failures include the line and column.
type FileFailure struct {
	Path    string
	Message string
}

// Result is the outcome of a package conversion. Failures never abort
// sibling files; every input ends up in exactly one of the three lists.
type Result struct {
	SuccessCount    int
	FailedFiles     []FileFailure
	OutputFiles     []string
	SkippedInternal []string

	Bag     *diag.Bag
	Timings pipeline.Timings
}

type outcome struct {
	status     pipeline.Status
	outPath    string
	message    string
	convertDur time.Duration
	writeDur   time.Duration
}

// ConvertPackage converts every Rd file under opts.InputDir and writes
// the results under opts.OutputDir, mirroring relative sub-paths. The
// returned error covers run-level failures only (unreadable input dir,
// cancelled context); per-file failures land in Result.FailedFiles.
func ConvertPackage(ctx context.Context, opts Options) (*Result, error) {
	ext := opts.Extension
	if ext == "" {
		ext = "qmd"
	}
	sink := opts.Sink
	if sink == nil {
		sink = pipeline.NopSink{}
	}
	maxDiags := opts.MaxDiagnostics
	if maxDiags <= 0 {
		maxDiags = 256
	}

	res := &Result{Bag: diag.NewBag(maxDiags)}

	scanStart := time.Now()
	fileSet, parsed, err := ParseDir(ctx, opts.InputDir, opts.Recursive, opts.Jobs)
	if err != nil {
		return res, err
	}
	res.Timings.Set(pipeline.StageParse, time.Since(scanStart))

	indexStart := time.Now()
	convOpts := opts.Convert
	convOpts.AliasMap = BuildAliasIndex(parsed, diag.BagReporter{Bag: res.Bag})
	res.Timings.Set(pipeline.StageScan, time.Since(indexStart))

	if len(parsed) == 0 {
		return res, nil
	}

	// Output directories exist before the fan-out, so workers never
	// race on MkdirAll.
	if err := makeOutputDirs(opts.OutputDir, parsed); err != nil {
		res.Bag.Add(diag.NewError(diag.IOCreateDirFailed, source.Span{}, err.Error()))
		return res, err
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	outcomes := make([]outcome, len(parsed))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(parsed)))

	for i := range parsed {
		if parsed[i].Err != nil {
			outcomes[i] = outcome{status: pipeline.StatusError, message: parsed[i].Err.Error()}
			sink.OnEvent(pipeline.Event{File: parsed[i].Path, Stage: pipeline.StageParse, Status: pipeline.StatusError, Err: parsed[i].Err})
			continue
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			outcomes[i] = convertOne(fileSet, parsed[i], opts, convOpts, ext, sink)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return res, err
	}

	for i := range outcomes {
		res.Timings.Add(pipeline.StageConvert, outcomes[i].convertDur)
		res.Timings.Add(pipeline.StageWrite, outcomes[i].writeDur)
		switch outcomes[i].status {
		case pipeline.StatusDone:
			res.SuccessCount++
			res.OutputFiles = append(res.OutputFiles, outcomes[i].outPath)
		case pipeline.StatusSkipped:
			res.SkippedInternal = append(res.SkippedInternal, parsed[i].Path)
		case pipeline.StatusError:
			res.FailedFiles = append(res.FailedFiles, FileFailure{Path: parsed[i].Path, Message: outcomes[i].message})
		}
	}
	return res, nil
}

func convertOne(fileSet *source.FileSet, pf ParsedFile, opts Options, convOpts convert.Options, ext string, sink pipeline.ProgressSink) outcome {
	start := time.Now()
	sink.OnEvent(pipeline.Event{File: pf.Path, Stage: pipeline.StageConvert, Status: pipeline.StatusWorking})

	if !opts.IncludeInternal && pf.Doc.HasKeyword("internal") {
		sink.OnEvent(pipeline.Event{File: pf.Path, Stage: pipeline.StageConvert, Status: pipeline.StatusSkipped, Elapsed: time.Since(start)})
		return outcome{status: pipeline.StatusSkipped}
	}

	root := convert.Convert(pf.Doc, convOpts)

	var fm *mdwriter.FrontMatter
	if opts.FrontMatter {
		m := meta.Extract(pf.Doc, fileSet.Get(pf.FileID).Content)
		fm = &mdwriter.FrontMatter{
			Title:       m.Title,
			PageTitle:   m.PageTitle,
			Format:      opts.Format,
			Lifecycle:   m.Lifecycle,
			Aliases:     m.Aliases,
			Keywords:    m.Keywords,
			Concepts:    m.Concepts,
			SourceFiles: m.SourceFiles,
		}
	}
	text := mdwriter.Render(root, fm, mdwriter.Options{QuartoCodeBlocks: convOpts.QuartoCodeBlocks})
	convertDur := time.Since(start)

	writeStart := time.Now()
	outPath := filepath.Join(opts.OutputDir, withExtension(pf.Path, ext))
	if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
		sink.OnEvent(pipeline.Event{File: pf.Path, Stage: pipeline.StageWrite, Status: pipeline.StatusError, Err: err, Elapsed: time.Since(start)})
		return outcome{status: pipeline.StatusError, message: err.Error(), convertDur: convertDur}
	}

	sink.OnEvent(pipeline.Event{File: pf.Path, Stage: pipeline.StageWrite, Status: pipeline.StatusDone, Elapsed: time.Since(start)})
	return outcome{
		status:     pipeline.StatusDone,
		outPath:    outPath,
		convertDur: convertDur,
		writeDur:   time.Since(writeStart),
	}
}

func makeOutputDirs(outDir string, parsed []ParsedFile) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	for i := range parsed {
		rel := filepath.Dir(parsed[i].Path)
		if rel == "." {
			continue
		}
		if err := os.MkdirAll(filepath.Join(outDir, rel), 0o755); err != nil {
			return err
		}
	}
	return nil
}

// withExtension swaps the input extension for the configured one,
// keeping any relative sub-path.
func withExtension(rel, ext string) string {
	return strings.TrimSuffix(rel, filepath.Ext(rel)) + "." + ext
}
