package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rdmd/internal/diagfmt"
	"rdmd/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.Rd",
	Short: "Tokenize an Rd source file",
	Long:  `Tokenize breaks down an Rd source file into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	fileSet, _, tokens, err := driver.TokenizeFile(args[0])
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, tokens, fileSet)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
