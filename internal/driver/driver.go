// Package driver glues the pipeline together for hosts: it discovers
// grammar files, loads them into a FileSet, parses them in parallel, binds
// everything into one BindingTable, runs the checker, and hands back ordered
// per-file diagnostic bags. The CLI and the UI sit on top of this package;
// nothing here prints or exits.
package driver

import (
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"gram/internal/diag"
)

const defaultMaxDiagnostics = 256

// Options configures one driver run.
type Options struct {
	// Jobs ограничивает параллелизм; 0 = GOMAXPROCS.
	Jobs int
	// MaxDiagnostics caps each file's bag; 0 picks the default.
	MaxDiagnostics int
	// Formatter renders diagnostic messages (localized catalogs plug in
	// here); nil means the built-in English templates.
	Formatter diag.Formatter
	// Observer receives progress events; nil disables them.
	Observer Observer
}

func (o Options) jobs(files int) int {
	jobs := o.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if files > 0 && jobs > files {
		jobs = files
	}
	return jobs
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return defaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

func (o Options) formatter() diag.Formatter {
	if o.Formatter == nil {
		return diag.DefaultFormatter{}
	}
	return o.Formatter
}

func (o Options) observer() Observer {
	if o.Observer == nil {
		return NopObserver{}
	}
	return o.Observer
}

// ListGrammarFiles собирает все *.grammar под root, отсортированно —
// детерминированный порядок нужен и для вывода, и для порядка связывания.
// root может быть и одиночным файлом.
func ListGrammarFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".grammar") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
