package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"rdmd/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Write a starter rdmd.toml",
	Long: `Init creates an rdmd.toml manifest in the target directory (the current
directory when omitted). If a non-existing name is provided, the directory
is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else if filepath.IsAbs(args[0]) {
		target = args[0]
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = filepath.Join(wd, args[0])
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%s exists and is not a directory", target)
	}

	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("%s already exists", manifestPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	name := filepath.Base(target)
	if err := os.WriteFile(manifestPath, []byte(project.Starter(name)), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", manifestPath)
	return nil
}
