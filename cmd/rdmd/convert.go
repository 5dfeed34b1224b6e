package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rdmd/internal/convert"
	"rdmd/internal/diagfmt"
	"rdmd/internal/driver"
	"rdmd/internal/observ"
	"rdmd/internal/pipeline"
	"rdmd/internal/project"
	"rdmd/internal/resolver"
)

var convertCmd = &cobra.Command{
	Use:   "convert [flags] [input-dir] [output-dir]",
	Short: "Convert a directory of Rd files",
	Long: `Convert reads every *.Rd file under the input directory and writes one
Markdown or Quarto file per input into the output directory, mirroring
sub-paths. Options come from rdmd.toml when present; flags override it.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("extension", "", "output extension (qmd|md)")
	convertCmd.Flags().Bool("recursive", false, "descend into subdirectories")
	convertCmd.Flags().Bool("include-internal", false, "convert \\keyword{internal} topics too")
	convertCmd.Flags().Bool("front-matter", true, "emit YAML front matter")
	convertCmd.Flags().String("format", "", "front-matter format field (e.g. html)")
	convertCmd.Flags().Bool("exec-dontrun", false, "mark \\dontrun examples executable")
	convertCmd.Flags().Bool("exec-donttest", true, "mark \\donttest examples executable")
	convertCmd.Flags().Bool("quarto-code-blocks", true, "emit {r} fences for executable code")
	convertCmd.Flags().String("arguments-format", "pipe", "arguments table style (pipe|grid)")
	convertCmd.Flags().String("unresolved-link-url", "", "URL pattern with {topic} for unknown links")
	convertCmd.Flags().String("description", "", "DESCRIPTION file for external link resolution")
	convertCmd.Flags().Bool("refresh", false, "drop cached package URL lookups before resolving")
	convertCmd.Flags().String("ui", "auto", "interactive progress (auto|on|off)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	opts := driver.Options{
		Extension:   "qmd",
		FrontMatter: true,
		Convert:     convert.DefaultOptions(),
	}
	opts.Convert.LinkExtension = "qmd"

	startDir := "."
	if len(args) > 0 {
		startDir = args[0]
	}
	manifest, found, err := project.LoadFromDir(startDir)
	if err != nil {
		return err
	}
	if found {
		manifest.Apply(&opts)
	}

	if len(args) > 0 {
		opts.InputDir = args[0]
	}
	if len(args) > 1 {
		opts.OutputDir = args[1]
	}
	if err := applyConvertFlags(cmd, &opts); err != nil {
		return err
	}
	if opts.InputDir == "" || opts.OutputDir == "" {
		return fmt.Errorf("input and output directories are required (arguments or rdmd.toml)")
	}

	opts.Jobs, _ = cmd.Root().PersistentFlags().GetInt("jobs")
	opts.MaxDiagnostics, _ = cmd.Root().PersistentFlags().GetInt("max-diagnostics")

	if descPath, _ := cmd.Flags().GetString("description"); descPath != "" {
		refresh, _ := cmd.Flags().GetBool("refresh")
		if err := resolveExternalPackages(cmd.Context(), descPath, refresh, &opts); err != nil {
			return err
		}
	}

	uiFlag, _ := cmd.Flags().GetString("ui")
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	start := time.Now()
	var res *driver.Result
	if !quiet && shouldUseTUI(mode) {
		res, err = runConvertWithUI(cmd.Context(), opts)
	} else {
		res, err = driver.ConvertPackage(cmd.Context(), opts)
	}
	if err != nil {
		return err
	}

	reportDiagnostics(cmd, res)
	if !quiet {
		printSummary(cmd, res, time.Since(start))
	}
	if timings, _ := cmd.Root().PersistentFlags().GetBool("timings"); timings {
		printStageTimings(os.Stderr, res.Timings)
	}

	if len(res.FailedFiles) > 0 {
		return fmt.Errorf("%d file(s) failed", len(res.FailedFiles))
	}
	return nil
}

func applyConvertFlags(cmd *cobra.Command, opts *driver.Options) error {
	flags := cmd.Flags()
	if flags.Changed("extension") {
		ext, _ := flags.GetString("extension")
		if ext != "qmd" && ext != "md" {
			return fmt.Errorf("invalid --extension %q (expected qmd|md)", ext)
		}
		opts.Extension = ext
		opts.Convert.LinkExtension = ext
	}
	if flags.Changed("recursive") {
		opts.Recursive, _ = flags.GetBool("recursive")
	}
	if flags.Changed("include-internal") {
		opts.IncludeInternal, _ = flags.GetBool("include-internal")
	}
	if flags.Changed("front-matter") {
		opts.FrontMatter, _ = flags.GetBool("front-matter")
	}
	if flags.Changed("format") {
		opts.Format, _ = flags.GetString("format")
	}
	if flags.Changed("exec-dontrun") {
		opts.Convert.ExecDontrun, _ = flags.GetBool("exec-dontrun")
	}
	if flags.Changed("exec-donttest") {
		opts.Convert.ExecDonttest, _ = flags.GetBool("exec-donttest")
	}
	if flags.Changed("quarto-code-blocks") {
		opts.Convert.QuartoCodeBlocks, _ = flags.GetBool("quarto-code-blocks")
	}
	if flags.Changed("arguments-format") {
		value, _ := flags.GetString("arguments-format")
		switch value {
		case "pipe":
			opts.Convert.ArgumentsFormat = convert.ArgumentsPipe
		case "grid":
			opts.Convert.ArgumentsFormat = convert.ArgumentsGrid
		default:
			return fmt.Errorf("invalid --arguments-format %q (expected pipe|grid)", value)
		}
	}
	if flags.Changed("unresolved-link-url") {
		opts.Convert.UnresolvedLinkURL, _ = flags.GetString("unresolved-link-url")
	}
	return nil
}

// resolveExternalPackages probes pkgdown sites for the DESCRIPTION's
// dependencies and merges the found URLs under any manifest-configured
// overrides.
func resolveExternalPackages(ctx context.Context, descPath string, refresh bool, opts *driver.Options) error {
	desc, err := resolver.LoadDescription(descPath)
	if err != nil {
		return fmt.Errorf("failed to read DESCRIPTION: %w", err)
	}
	cache, err := resolver.OpenDiskCache("rdmd")
	if err != nil {
		cache = nil
	}
	if refresh {
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to clear package URL cache: %w", err)
		}
	}
	found := resolver.New(cache, nil).ResolveAll(ctx, desc.Packages())
	if opts.Convert.ExternalPackageURLs == nil {
		opts.Convert.ExternalPackageURLs = found
		return nil
	}
	for pkg, url := range found {
		if _, overridden := opts.Convert.ExternalPackageURLs[pkg]; !overridden {
			opts.Convert.ExternalPackageURLs[pkg] = url
		}
	}
	return nil
}

func reportDiagnostics(cmd *cobra.Command, res *driver.Result) {
	if res.Bag == nil || res.Bag.Len() == 0 {
		return
	}
	res.Bag.Sort()
	res.Bag.Dedup()
	diagfmt.Pretty(os.Stderr, res.Bag, nil, diagfmt.PrettyOpts{
		Color:   useColor(cmd, os.Stderr),
		Context: -1,
	})
}

func printSummary(cmd *cobra.Command, res *driver.Result, elapsed time.Duration) {
	okStyle := color.New(color.FgGreen)
	failStyle := color.New(color.FgRed)
	skipStyle := color.New(color.FgYellow)
	if !useColor(cmd, os.Stdout) {
		okStyle.DisableColor()
		failStyle.DisableColor()
		skipStyle.DisableColor()
	}

	okStyle.Fprintf(os.Stdout, "converted %d file(s)", res.SuccessCount)
	fmt.Fprintf(os.Stdout, " in %.1f ms\n", float64(elapsed.Microseconds())/1000.0)

	if len(res.SkippedInternal) > 0 {
		skipStyle.Fprintf(os.Stdout, "skipped %d internal topic(s)\n", len(res.SkippedInternal))
	}
	for _, fail := range res.FailedFiles {
		failStyle.Fprintf(os.Stdout, "failed: %s: %s\n", fail.Path, fail.Message)
	}
}

func printStageTimings(out *os.File, timings pipeline.Timings) {
	stages := []struct {
		stage pipeline.Stage
		label string
		note  string
	}{
		{pipeline.StageParse, "parse", ""},
		{pipeline.StageScan, "index", ""},
		{pipeline.StageConvert, "convert", "summed across workers"},
		{pipeline.StageWrite, "write", "summed across workers"},
	}
	timer := observ.NewTimer()
	for _, s := range stages {
		if timings.Has(s.stage) {
			timer.Record(s.label, timings.Duration(s.stage), s.note)
		}
	}
	fmt.Fprint(out, timer.Summary())
}
