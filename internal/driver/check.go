package driver

import (
	"context"

	"gram/internal/binder"
	"gram/internal/checker"
	"gram/internal/diag"
	"gram/internal/source"
)

// Compilation is the bound and checked result of one directory.
type Compilation struct {
	FileSet *source.FileSet
	Files   []FileResult
	Table   *binder.BindingTable
}

// CheckDir parses dir (including @import closure), binds every parsed file
// into one shared BindingTable, and runs the checker. Semantic diagnostics
// land in the same per-file bags as parse diagnostics; the unused-parameter
// pass runs last, after every file has been checked, so cross-file
// references of split productions count as uses.
func CheckDir(ctx context.Context, dir string, opts Options) (*Compilation, error) {
	fset, results, err := ParseDir(ctx, dir, opts)
	if err != nil {
		return nil, err
	}
	obs := opts.observer()

	table := binder.NewBindingTable()
	b := binder.New(table)
	for i := range results {
		if results[i].File == nil {
			continue
		}
		b.BindSourceFile(results[i].File)
		obs.FileDone(PhaseBind, results[i].Path, 0)
	}
	obs.PhaseDone(PhaseBind)

	c := checker.New(table, opts.Formatter)
	for i := range results {
		if results[i].File == nil {
			continue
		}
		before := results[i].Bag.ErrorCount()
		c.CheckSourceFile(results[i].File, diag.BagReporter{Bag: results[i].Bag})
		obs.FileDone(PhaseCheck, results[i].Path, results[i].Bag.ErrorCount()-before)
	}
	for i := range results {
		if results[i].File == nil {
			continue
		}
		c.ReportUnusedParameters(results[i].File, diag.BagReporter{Bag: results[i].Bag})
	}
	obs.PhaseDone(PhaseCheck)

	for i := range results {
		if results[i].Bag != nil {
			results[i].Bag.Sort()
		}
	}
	return &Compilation{FileSet: fset, Files: results, Table: table}, nil
}

// HasErrors reports whether any file failed to load or carries an error
// diagnostic.
func (c *Compilation) HasErrors() bool {
	for i := range c.Files {
		if c.Files[i].Err != nil {
			return true
		}
		if c.Files[i].Bag != nil && c.Files[i].Bag.HasErrors() {
			return true
		}
	}
	return false
}
