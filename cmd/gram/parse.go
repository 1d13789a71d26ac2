package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gram/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] [path]",
	Short: "Parse grammar files and report syntax diagnostics",
	Long:  `Parse builds syntax trees for .grammar files without semantic checking`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, manifest)
	if err != nil {
		return err
	}

	fset, results, err := driver.ParseDir(cmd.Context(), resolveInput(args, manifest), opts)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	errs, err := reportResults(cmd, fset, results, format)
	if err != nil {
		return err
	}
	if !quietEnabled(cmd) && format == "pretty" {
		fmt.Fprintf(os.Stdout, "%d file(s), %d error(s)\n", len(results), errs)
	}
	return diagErr(cmd, errs)
}
