package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rdmd/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "rdmd",
	Short: "Convert R documentation to Markdown",
	Long:  `rdmd converts a directory of Rd files into Quarto or Markdown pages`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("jobs", 0, "parallel workers (0 = all cores)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}
