package driver

import (
	"gram/internal/emit"
)

// EmitOutput is one file's rendered document.
type EmitOutput struct {
	Path      string
	Markdown  string
	FromCache bool
}

// EmitFiles renders every successfully parsed file of comp as Markdown.
// With a non-nil cache, files whose content hash already has an entry skip
// rendering; fresh renders are written back. Cache failures are swallowed —
// the cache is an optimization, never a correctness dependency.
func EmitFiles(comp *Compilation, cache *DiskCache, opts Options) []EmitOutput {
	obs := opts.observer()
	outputs := make([]EmitOutput, 0, len(comp.Files))
	for i := range comp.Files {
		res := &comp.Files[i]
		if res.File == nil {
			continue
		}
		hash := comp.FileSet.Get(res.ID).Hash

		if cache != nil {
			if payload, ok, _ := cache.Get(hash); ok {
				outputs = append(outputs, EmitOutput{Path: res.Path, Markdown: payload.Markdown, FromCache: true})
				obs.FileDone(PhaseEmit, res.Path, 0)
				continue
			}
		}
		doc := emit.Markdown(res.File)
		if cache != nil {
			_ = cache.Put(hash, DiskPayload{Path: res.Path, Markdown: doc})
		}
		outputs = append(outputs, EmitOutput{Path: res.Path, Markdown: doc})
		obs.FileDone(PhaseEmit, res.Path, 0)
	}
	obs.PhaseDone(PhaseEmit)
	return outputs
}
