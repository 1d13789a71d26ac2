package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gram/internal/diag"
	"gram/internal/diagfmt"
	"gram/internal/driver"
	"gram/internal/messages"
	"gram/internal/source"
)

func colorEnabled(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}

func quietEnabled(cmd *cobra.Command) bool {
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	return quiet
}

// driverOptions собирает driver.Options из флагов и манифеста.
func driverOptions(cmd *cobra.Command, manifest *projectManifest) (driver.Options, error) {
	jobs, _ := cmd.Root().PersistentFlags().GetInt("jobs")
	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if !cmd.Root().PersistentFlags().Changed("max-diagnostics") &&
		manifest != nil && manifest.Config.Diagnostics.Max > 0 {
		maxDiagnostics = manifest.Config.Diagnostics.Max
	}

	fmtr, err := makeFormatter(cmd, manifest)
	if err != nil {
		return driver.Options{}, err
	}
	return driver.Options{
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
		Formatter:      fmtr,
	}, nil
}

// makeFormatter picks the diagnostic message catalog: --locale/--messages
// first, then the manifest, then the built-in English templates.
func makeFormatter(cmd *cobra.Command, manifest *projectManifest) (diag.Formatter, error) {
	locale, _ := cmd.Root().PersistentFlags().GetString("locale")
	dir, _ := cmd.Root().PersistentFlags().GetString("messages")
	if manifest != nil {
		if locale == "" {
			locale = manifest.Config.Diagnostics.Locale
		}
		if dir == "" {
			dir = manifest.messagesDir()
		}
	}
	if locale == "" {
		return diag.DefaultFormatter{}, nil
	}

	cat, err := messages.LoadDir(dir, locale)
	if err != nil {
		return nil, err
	}
	if !quietEnabled(cmd) {
		for _, warning := range cat.Warnings() {
			fmt.Fprintf(os.Stderr, "gram: message catalog: %s\n", warning)
		}
	}
	return cat, nil
}

// reportResults prints every file's diagnostics and returns the totals.
// Pretty output goes to stderr; JSON goes to stdout as one document.
func reportResults(cmd *cobra.Command, fset *source.FileSet, results []driver.FileResult, format string) (errs int, err error) {
	merged := diag.NewBag(0)
	for i := range results {
		res := &results[i]
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "gram: %v\n", res.Err)
			errs++
			continue
		}
		res.Bag.Sort()
		errs += res.Bag.ErrorCount()
		if format == "json" {
			merged.Merge(res.Bag)
		}
	}

	switch format {
	case "json":
		err = diagfmt.JSON(os.Stdout, merged, fset, diagfmt.JSONOpts{IncludePositions: true})
	case "pretty":
		opts := diagfmt.PrettyOpts{
			Color:     colorEnabled(cmd, os.Stderr),
			ShowNotes: true,
		}
		for i := range results {
			if results[i].Bag != nil {
				diagfmt.Pretty(os.Stderr, results[i].Bag, fset, opts)
			}
		}
	default:
		err = fmt.Errorf("unknown format: %s", format)
	}
	return errs, err
}

// diagErr converts a diagnostic count into the command's exit error.
func diagErr(cmd *cobra.Command, errs int) error {
	if errs == 0 {
		return nil
	}
	cmd.SilenceUsage = true
	if errs == 1 {
		return fmt.Errorf("1 error")
	}
	return fmt.Errorf("%d errors", errs)
}

// resolveInput picks the input path: the positional argument, the manifest's
// source dir, or the current directory.
func resolveInput(args []string, manifest *projectManifest) string {
	if len(args) > 0 {
		return args[0]
	}
	return manifest.sourceDir()
}
