package token

import "gram/internal/source"

// TriviaKind classifies markup trivia collected by the scanner.
type TriviaKind uint8

const (
	// HtmlOpenTagTrivia is an HTML-like open tag marker, e.g. <ins>.
	HtmlOpenTagTrivia TriviaKind = iota
	// HtmlCloseTagTrivia is an HTML-like close tag marker, e.g. </ins>.
	HtmlCloseTagTrivia
)

// Trivia is a markup tag marker adjacent to a token. Trivia is not part of
// the grammar's semantic content; the parser attaches it to the nearest
// enclosing node for documentation rendering.
type Trivia struct {
	Kind    TriviaKind
	Span    source.Span
	TagName string
}

// Matches reports whether t and other form an open/close pair of the same tag.
func (t Trivia) Matches(other Trivia) bool {
	return t.Kind == HtmlOpenTagTrivia && other.Kind == HtmlCloseTagTrivia &&
		t.TagName == other.TagName
}
