package parser

import (
	"context"
	"fmt"
	"slices"

	"gram/internal/ast"
	"gram/internal/diag"
	"gram/internal/scanner"
	"gram/internal/source"
	"gram/internal/token"
)

// defaultMaxDiagnostics bounds the per-file bag when Options leaves
// MaxDiagnostics unset. Past the limit further reports are dropped; the
// parse itself always runs to completion.
const defaultMaxDiagnostics = 256

// Options configure a parse session. MaxDiagnostics bounds the per-file bag
// (zero picks a default); Formatter defaults to the built-in English
// templates.
type Options struct {
	Formatter      diag.Formatter
	MaxDiagnostics int
}

// Parser is a recursive-descent parser over the token stream of one grammar
// file. A single Parser may be reused for several files, including nested
// parses triggered while another parse is on the stack: ParseSourceFile
// snapshots and restores every mutable field.
//
// Ошибки синтаксиса никогда не прерывают разбор: парсер всегда строит
// типизированное дерево и складывает диагностики в мешок файла.
type Parser struct {
	opts Options

	file     *source.File
	sc       *scanner.Scanner
	factory  *ast.Factory
	reporter diag.Reporter
	ctx      context.Context

	tok     token.Token
	prevEnd uint32 // end offset of the previously consumed token

	// Markup trivia drained from the scanner, awaiting attachment to the
	// next node that begins.
	pendingTrivia []token.Trivia
}

// New returns a parser with the given options.
func New(opts Options) *Parser {
	if opts.Formatter == nil {
		opts.Formatter = diag.DefaultFormatter{}
	}
	return &Parser{opts: opts}
}

// ParseSourceFile is a convenience wrapper for one-shot parses.
func ParseSourceFile(ctx context.Context, file *source.File, opts Options) (*ast.SourceFile, error) {
	return New(opts).ParseSourceFile(ctx, file)
}

// bailout carries a cancellation out of the descent. It is the only panic
// the parser throws and it never escapes ParseSourceFile.
type bailout struct{ err error }

// ParseSourceFile parses file into a source tree. Syntax errors surface as
// diagnostics in the returned file's Bag, never as an error; the error result
// is reserved for cancellation. Cancellation before the first scan aborts
// without producing a partial tree.
func (p *Parser) ParseSourceFile(ctx context.Context, file *source.File) (sf *ast.SourceFile, err error) {
	prev := *p
	defer func() {
		*p = prev
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			sf, err = nil, b.err
		}
	}()

	limit := p.opts.MaxDiagnostics
	if limit <= 0 {
		limit = defaultMaxDiagnostics
	}
	bag := diag.NewBag(limit)
	p.file = file
	p.ctx = ctx
	p.factory = ast.NewFactory()
	p.reporter = diag.BagReporter{Bag: bag}
	p.sc = scanner.New(file, scanner.Options{Reporter: p.reporter, Formatter: p.opts.Formatter})
	p.tok = token.Token{}
	p.prevEnd = 0
	p.pendingTrivia = nil

	p.checkCancel()
	p.nextToken()

	elements := p.parseSourceElements()

	sf = p.factory.NewSourceFile(
		source.Span{File: file.ID, Start: 0, End: uint32(len(file.Content))},
		file.Path, file.Content, bag,
	)
	sf.Elements = elements
	for _, el := range elements {
		if imp, ok := el.(*ast.Import); ok && imp.Path != nil {
			sf.Imports = append(sf.Imports, imp.Path.Text)
		}
	}

	// Close tags after the last element have nothing following to lead;
	// they trail the final element instead.
	if rest := p.takeTrivia(); len(rest) > 0 {
		if n := len(elements); n > 0 {
			last := elements[n-1]
			ast.SetTrailingTrivia(last, append(last.TrailingTrivia(), rest...))
		} else {
			ast.SetLeadingTrivia(sf, rest)
		}
	}
	p.promoteTrivia(sf)
	return sf, nil
}

// checkCancel aborts the parse when the session context is done. Called at
// every list iteration and around speculation, so cancellation latency is
// bounded by a single element parse.
func (p *Parser) checkCancel() {
	if p.ctx == nil {
		return
	}
	if err := p.ctx.Err(); err != nil {
		panic(bailout{err: fmt.Errorf("parse %s: %w", p.file.Path, err)})
	}
}

// nextToken advances the token stream and drains any markup trivia the
// scanner collected while skipping whitespace.
func (p *Parser) nextToken() token.Token {
	p.prevEnd = p.tok.Span.End
	p.tok = p.sc.Scan()
	if tr := p.sc.HtmlTrivia(); len(tr) > 0 {
		p.pendingTrivia = append(p.pendingTrivia, tr...)
	}
	return p.tok
}

func (p *Parser) pos() uint32 { return p.tok.Span.Start }

// spanFrom builds the span from start to the end of the last consumed token.
func (p *Parser) spanFrom(start uint32) source.Span {
	return source.Span{File: p.file.ID, Start: start, End: p.prevEnd}
}

func (p *Parser) hereSpan() source.Span {
	return source.Span{File: p.file.ID, Start: p.pos(), End: p.pos()}
}

func (p *Parser) report(code diag.Code, sp source.Span, args ...any) {
	info := diag.Info(code)
	p.reporter.Report(code, info.Severity, sp, p.opts.Formatter.Format(code, args...), nil)
}

// expect consumes the current token when it has the wanted kind, otherwise
// reports what was expected and leaves the token in place.
func (p *Parser) expect(kind token.Kind) bool {
	if p.tok.Kind == kind {
		p.nextToken()
		return true
	}
	p.report(diag.SynExpected, p.tok.Span, kind.String())
	return false
}

// lookahead runs fn speculatively and always restores the token stream.
// Diagnostics raised inside are discarded.
func (p *Parser) lookahead(fn func() bool) bool {
	return p.speculate(fn, true)
}

// tryParse runs fn speculatively and keeps the stream position when fn
// succeeds. Diagnostics raised inside are discarded either way; node ids
// minted by a failed attempt are simply never referenced.
func (p *Parser) tryParse(fn func() bool) bool {
	return p.speculate(fn, false)
}

func (p *Parser) speculate(fn func() bool, isLookahead bool) bool {
	p.checkCancel()
	savedTok := p.tok
	savedPrevEnd := p.prevEnd
	savedTrivia := slices.Clone(p.pendingTrivia)

	savedReporter := p.reporter
	p.reporter = diag.NopReporter{}
	savedScanReporter := p.sc.SetReporter(diag.NopReporter{})

	ok := p.sc.Speculate(fn, isLookahead)

	p.sc.SetReporter(savedScanReporter)
	p.reporter = savedReporter

	if isLookahead || !ok {
		p.tok = savedTok
		p.prevEnd = savedPrevEnd
		p.pendingTrivia = savedTrivia
	}
	return ok
}

// skipPastLine advances to the next LineTerminator (or EOF) without
// consuming it.
func (p *Parser) skipPastLine() {
	for p.tok.Kind != token.LineTerminator && p.tok.Kind != token.EOF {
		p.nextToken()
	}
}
