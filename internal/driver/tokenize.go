package driver

import (
	"context"

	"golang.org/x/sync/errgroup"

	"gram/internal/diag"
	"gram/internal/scanner"
	"gram/internal/source"
	"gram/internal/token"
)

// TokenizeResult is one file's token stream with its lexical diagnostics.
type TokenizeResult struct {
	ID     source.FileID
	Path   string
	Tokens []token.Token
	Bag    *diag.Bag
	Err    error
}

// TokenizeDir scans every .grammar file under dir to EOF in parallel.
// The tokenize subcommand sits on this; the pipeline proper goes through
// ParseDir, which owns its scanners.
func TokenizeDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []TokenizeResult, error) {
	paths, err := ListGrammarFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	obs := opts.observer()

	fset := source.NewFileSetWithBase(dir)
	results := make([]TokenizeResult, len(paths))
	for i, path := range paths {
		id, err := fset.Load(path)
		if err != nil {
			results[i] = TokenizeResult{Path: path, Err: err}
			obs.FileDone(PhaseLoad, path, 1)
			continue
		}
		results[i] = TokenizeResult{ID: id, Path: fset.Get(id).Path}
		obs.FileDone(PhaseLoad, path, 0)
	}
	obs.PhaseDone(PhaseLoad)

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
			res := &results[i]
			bag := diag.NewBag(opts.maxDiagnostics())
			sc := scanner.New(fset.Get(res.ID), scanner.Options{
				Reporter:  diag.BagReporter{Bag: bag},
				Formatter: opts.Formatter,
			})
			for {
				tok := sc.Scan()
				res.Tokens = append(res.Tokens, tok)
				if tok.Kind == token.EOF {
					break
				}
			}
			res.Bag = bag
			obs.FileDone(PhaseParse, res.Path, bag.ErrorCount())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	obs.PhaseDone(PhaseParse)
	return fset, results, nil
}
