package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gram/internal/diagfmt"
	"gram/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] [path]",
	Short: "Tokenize grammar files",
	Long:  `Tokenize scans .grammar files (a file or a directory tree) into token streams`,
	Args:  cobra.MaximumNArgs(1),
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

	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, manifest)
	if err != nil {
		return err
	}

	fset, results, err := driver.TokenizeDir(cmd.Context(), resolveInput(args, manifest), opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	errs := 0
	pretty := diagfmt.PrettyOpts{Color: colorEnabled(cmd, os.Stderr)}
	for i := range results {
		res := &results[i]
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "gram: %v\n", res.Err)
			errs++
			continue
		}
		if res.Bag.HasWarnings() {
			res.Bag.Sort()
			diagfmt.Pretty(os.Stderr, res.Bag, fset, pretty)
		}
		errs += res.Bag.ErrorCount()

		switch format {
		case "pretty":
			if len(results) > 1 {
				fmt.Fprintf(os.Stdout, "== %s\n", res.Path)
			}
			if err := diagfmt.FormatTokensPretty(os.Stdout, fset, res.Tokens); err != nil {
				return err
			}
		case "json":
			if err := diagfmt.FormatTokensJSON(os.Stdout, res.Tokens); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
	}
	return diagErr(cmd, errs)
}
