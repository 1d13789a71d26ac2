package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"gram/internal/driver"
)

var emitCmd = &cobra.Command{
	Use:   "emit [flags] [path]",
	Short: "Render checked grammar files as Markdown",
	Long: `Emit checks the grammar and writes one Markdown document per file.
Without --out (or [emit].out in gram.toml) documents go to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEmit,
}

func init() {
	emitCmd.Flags().String("out", "", "output directory (default: [emit].out or stdout)")
	emitCmd.Flags().Bool("cache", true, "reuse the on-disk emit cache")
	emitCmd.Flags().Bool("clear-cache", false, "drop the emit cache and exit")
}

func runEmit(cmd *cobra.Command, args []string) error {
	clearCache, _ := cmd.Flags().GetBool("clear-cache")
	useCache, _ := cmd.Flags().GetBool("cache")
	outDir, _ := cmd.Flags().GetString("out")

	var cache *driver.DiskCache
	if useCache || clearCache {
		var err error
		cache, err = driver.OpenDiskCache("gram")
		if err != nil {
			// кэш — оптимизация; работаем без него
			if !quietEnabled(cmd) {
				fmt.Fprintf(os.Stderr, "gram: %v\n", err)
			}
			cache = nil
		}
	}
	if clearCache {
		if cache == nil {
			return nil
		}
		return cache.DropAll()
	}

	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return err
	}
	if outDir == "" && manifest != nil {
		outDir = strings.TrimSpace(manifest.Config.Emit.Out)
		if outDir != "" {
			outDir = filepath.Join(manifest.Root, filepath.FromSlash(outDir))
		}
	}
	opts, err := driverOptions(cmd, manifest)
	if err != nil {
		return err
	}

	comp, err := driver.CheckDir(cmd.Context(), resolveInput(args, manifest), opts)
	if err != nil {
		return fmt.Errorf("emit failed: %w", err)
	}
	if comp.HasErrors() {
		errs, err := reportResults(cmd, comp.FileSet, comp.Files, "pretty")
		if err != nil {
			return err
		}
		return diagErr(cmd, errs)
	}

	outputs := driver.EmitFiles(comp, cache, opts)
	if outDir == "" {
		for _, out := range outputs {
			fmt.Fprint(os.Stdout, out.Markdown)
		}
		return nil
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	for _, out := range outputs {
		name := strings.TrimSuffix(filepath.Base(out.Path), filepath.Ext(out.Path)) + ".md"
		target := filepath.Join(outDir, name)
		if err := os.WriteFile(target, []byte(out.Markdown), 0o644); err != nil {
			return err
		}
		if !quietEnabled(cmd) {
			fmt.Fprintf(os.Stdout, "wrote %s\n", target)
		}
	}
	return nil
}
