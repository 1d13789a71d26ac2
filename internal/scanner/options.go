package scanner

import (
	"gram/internal/diag"
	"gram/internal/source"
)

// Options configure a Scanner. Reporter may be nil: lexical errors are then
// dropped, but scanning still recovers and continues. Formatter defaults to
// the built-in English templates.
type Options struct {
	Reporter  diag.Reporter
	Formatter diag.Formatter
}

func (s *Scanner) errLex(code diag.Code, sp source.Span, args ...any) {
	if s.opts.Reporter == nil {
		return
	}
	info := diag.Info(code)
	s.opts.Reporter.Report(code, info.Severity, sp, s.opts.Formatter.Format(code, args...), nil)
}

// SetReporter swaps the diagnostic reporter and returns the previous one.
// The parser redirects reports to a discard reporter around speculation.
func (s *Scanner) SetReporter(r diag.Reporter) diag.Reporter {
	old := s.opts.Reporter
	s.opts.Reporter = r
	return old
}
