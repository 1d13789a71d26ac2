package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gram/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path]",
	Short: "Parse, bind, and semantically check grammar files",
	Long: `Check runs the full pipeline: parallel parse, cross-file binding
(@import closure, split productions), and semantic checks`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
	checkCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, manifest)
	if err != nil {
		return err
	}
	dir := resolveInput(args, manifest)

	var comp *driver.Compilation
	if format == "pretty" && !quietEnabled(cmd) && shouldUseTUI(mode) {
		comp, err = runCheckWithUI(cmd.Context(), "gram check", dir, opts)
	} else {
		comp, err = driver.CheckDir(cmd.Context(), dir, opts)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	errs, err := reportResults(cmd, comp.FileSet, comp.Files, format)
	if err != nil {
		return err
	}
	if !quietEnabled(cmd) && format == "pretty" {
		fmt.Fprintf(os.Stdout, "%d file(s), %d error(s)\n", len(comp.Files), errs)
	}
	return diagErr(cmd, errs)
}
