package driver

import (
	"context"

	"golang.org/x/sync/errgroup"

	"gram/internal/ast"
	"gram/internal/diag"
	"gram/internal/parser"
	"gram/internal/source"
)

// FileResult is one file's outcome of the load+parse phases.
type FileResult struct {
	ID   source.FileID
	Path string
	File *ast.SourceFile // nil когда файл не удалось прочитать
	Bag  *diag.Bag       // nil только вместе с File
	Err  error           // ошибка чтения с диска
}

// ParseDir discovers every .grammar file under dir, loads it, and parses
// each file on its own parser instance in parallel. Files pulled in through
// @import but living outside dir are loaded and parsed too; they follow the
// directory's files in the result slice, in discovery order.
func ParseDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []FileResult, error) {
	paths, err := ListGrammarFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	obs := opts.observer()

	fset := source.NewFileSetWithBase(dir)
	results := make([]FileResult, len(paths))
	for i, path := range paths {
		id, err := fset.Load(path)
		if err != nil {
			results[i] = FileResult{Path: path, Err: err}
			obs.FileDone(PhaseLoad, path, 1)
			continue
		}
		results[i] = FileResult{ID: id, Path: fset.Get(id).Path}
		obs.FileDone(PhaseLoad, path, 0)
	}
	obs.PhaseDone(PhaseLoad)

	// Параллельная волна: по одному парсеру на файл, результат пишется в
	// свой индекс — слайс предразмечен, гонок нет.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs(len(results)))
	for i := range results {
		if results[i].Err != nil {
			continue
		}
		i := i
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			return parseOne(gctx, fset, &results[i], opts)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	// @import замыкание: цепочки коротки, догружаем последовательно.
	queue := make([]*ast.SourceFile, 0, len(results))
	for i := range results {
		if results[i].File != nil {
			queue = append(queue, results[i].File)
		}
	}
	for len(queue) > 0 {
		sf := queue[0]
		queue = queue[1:]
		from, ok := fset.GetByPath(sf.Path)
		if !ok {
			continue
		}
		for _, imp := range sf.Imports {
			resolved := fset.ResolveImport(from.ID, imp)
			if _, seen := fset.GetByPath(resolved); seen {
				continue
			}
			id, err := fset.Load(resolved)
			if err != nil {
				results = append(results, FileResult{Path: resolved, Err: err})
				obs.FileDone(PhaseParse, resolved, 1)
				continue
			}
			res := FileResult{ID: id, Path: fset.Get(id).Path}
			if err := parseOne(ctx, fset, &res, opts); err != nil {
				return nil, nil, err
			}
			results = append(results, res)
			queue = append(queue, res.File)
		}
	}
	obs.PhaseDone(PhaseParse)

	return fset, results, nil
}

func parseOne(ctx context.Context, fset *source.FileSet, res *FileResult, opts Options) error {
	p := parser.New(parser.Options{
		Formatter:      opts.Formatter,
		MaxDiagnostics: opts.maxDiagnostics(),
	})
	sf, err := p.ParseSourceFile(ctx, fset.Get(res.ID))
	if err != nil {
		return err
	}
	res.File = sf
	res.Bag = sf.Bag
	opts.observer().FileDone(PhaseParse, res.Path, sf.Bag.ErrorCount())
	return nil
}
