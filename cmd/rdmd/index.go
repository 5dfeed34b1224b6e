package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rdmd/internal/driver"
	"rdmd/internal/topics"
)

var indexCmd = &cobra.Command{
	Use:   "index [flags] input-dir",
	Short: "Emit the topic index as JSON",
	Long: `Index parses every Rd file under the input directory and prints one
record per topic (name, output file, title, metadata), sorted by name.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().String("extension", "qmd", "output extension recorded in the file field (qmd|md)")
	indexCmd.Flags().Bool("recursive", false, "descend into subdirectories")
	indexCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
}

func runIndex(cmd *cobra.Command, args []string) error {
	ext, _ := cmd.Flags().GetString("extension")
	if ext != "qmd" && ext != "md" {
		return fmt.Errorf("invalid --extension %q (expected qmd|md)", ext)
	}
	recursive, _ := cmd.Flags().GetBool("recursive")
	jobs, _ := cmd.Root().PersistentFlags().GetInt("jobs")

	fileSet, parsed, err := driver.ParseDir(cmd.Context(), args[0], recursive, jobs)
	if err != nil {
		return err
	}

	entries := make([]topics.Entry, 0, len(parsed))
	failed := 0
	for _, pf := range parsed {
		if pf.Err != nil {
			fmt.Fprintf(os.Stderr, "skipping %s: %v\n", pf.Path, pf.Err)
			failed++
			continue
		}
		entries = append(entries, topics.Entry{
			Path: pf.Path,
			Doc:  pf.Doc,
			Raw:  fileSet.Get(pf.FileID).Content,
		})
	}

	index := topics.Build(entries, ext)

	out := os.Stdout
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if err := topics.WriteJSON(out, index); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed to parse", failed)
	}
	return nil
}
