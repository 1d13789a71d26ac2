package diag

import (
	"gram/internal/source"
)

// Note attaches secondary context to a diagnostic ("declared here", etc.).
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is a single positioned message against a source file.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// WithNote returns a copy of d with an extra note appended.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}
