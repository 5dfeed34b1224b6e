package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rdmd/internal/diag"
	"rdmd/internal/diagfmt"
	"rdmd/internal/driver"
	"rdmd/internal/parser"
	"rdmd/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.Rd",
	Short: "Parse an Rd source file and dump its tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	fileSet, fileID, doc, err := driver.ParseFile(args[0])
	if err != nil {
		reportParseError(cmd, fileSet, fileID, err)
		return fmt.Errorf("parse failed")
	}

	switch format {
	case "pretty":
		diagfmt.FormatDocumentPretty(os.Stdout, doc)
		return nil
	case "json":
		return diagfmt.FormatDocumentJSON(os.Stdout, doc)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// reportParseError renders a parse failure with source context. The
// typed parser errors carry line/column; anything else prints as-is.
func reportParseError(cmd *cobra.Command, fileSet *source.FileSet, fileID source.FileID, err error) {
	bag := diag.NewBag(1)
	var unexpectedTok *parser.UnexpectedTokenError
	var unexpectedEOF *parser.UnexpectedEOFError
	switch {
	case errors.As(err, &unexpectedTok):
		bag.Add(diag.NewError(diag.SynUnexpectedToken, spanAt(fileSet, fileID, unexpectedTok.Line, unexpectedTok.Col), err.Error()))
	case errors.As(err, &unexpectedEOF):
		bag.Add(diag.NewError(diag.SynUnexpectedEOF, spanAt(fileSet, fileID, unexpectedEOF.Line, unexpectedEOF.Col), err.Error()))
	default:
		fmt.Fprintln(os.Stderr, err)
		return
	}
	diagfmt.Pretty(os.Stderr, bag, fileSet, diagfmt.PrettyOpts{
		Color:   useColor(cmd, os.Stderr),
		Context: 2,
	})
}

// spanAt rebuilds a byte span from a line/column pair so the pretty
// printer can show the offending line.
func spanAt(fileSet *source.FileSet, fileID source.FileID, line, col uint32) source.Span {
	file := fileSet.Get(fileID)
	if line == 0 {
		return source.Span{File: fileID}
	}
	off := uint32(0)
	for ln := uint32(1); ln < line; ln++ {
		off += uint32(len(file.GetLine(ln))) + 1
	}
	// Columns count runes; walk the line to the matching byte offset.
	text := file.GetLine(line)
	within := uint32(len(text))
	runeCol := uint32(1)
	for i := range text {
		if runeCol == col {
			within = uint32(i)
			break
		}
		runeCol++
	}
	return source.Span{File: fileID, Start: off + within, End: off + within + 1}
}
