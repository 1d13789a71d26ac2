package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"gram/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "gram",
	Short: "Grammar-specification compiler and documentation toolchain",
	Long:  `gram parses, checks, and renders grammar-specification files (.grammar)`,
}

// main registers subcommands and persistent flags, then executes the root
// command. Only this function may exit non-zero.
func main() {
	// Версия для автоматического флага --version
	rootCmd.Version = version.Version

	// Команды
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(emitCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per file")
	rootCmd.PersistentFlags().Int("jobs", 0, "parallel workers (0 = number of CPUs)")
	rootCmd.PersistentFlags().String("locale", "", "diagnostic message locale (e.g. ru, de)")
	rootCmd.PersistentFlags().String("messages", "", "directory with messages.<locale>.json catalogs")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
