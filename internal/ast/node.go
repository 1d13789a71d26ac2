package ast

import (
	"gram/internal/source"
	"gram/internal/token"
)

// NodeID identifies a node inside one compilation session. IDs start at 1;
// zero is the absent node. Identity is assigned by a Factory, never by a
// process-wide counter, so independent compilations stay independent.
type NodeID uint32

const NoNodeID NodeID = 0

// Node is the interface shared by every syntactic shape. A node's span is a
// half-open byte range; children always lie within their parent's span.
// Parent links are not stored here — they live in the binder's side table.
type Node interface {
	ID() NodeID
	Kind() Kind
	Span() source.Span
	LeadingTrivia() []token.Trivia
	TrailingTrivia() []token.Trivia

	setLeadingTrivia([]token.Trivia)
	setTrailingTrivia([]token.Trivia)
}

// base carries the fields every node owns. Concrete shapes embed it.
type base struct {
	id       NodeID
	span     source.Span
	leading  []token.Trivia
	trailing []token.Trivia
}

func (b *base) ID() NodeID                    { return b.id }
func (b *base) Span() source.Span             { return b.span }
func (b *base) LeadingTrivia() []token.Trivia { return b.leading }
func (b *base) TrailingTrivia() []token.Trivia {
	return b.trailing
}
func (b *base) setLeadingTrivia(tr []token.Trivia)  { b.leading = tr }
func (b *base) setTrailingTrivia(tr []token.Trivia) { b.trailing = tr }

// SetLeadingTrivia replaces n's leading markup trivia. Exported for the
// parser's promotion pass; trivia moves between nodes but node spans never
// change.
func SetLeadingTrivia(n Node, tr []token.Trivia) { n.setLeadingTrivia(tr) }

// SetTrailingTrivia replaces n's trailing markup trivia.
func SetTrailingTrivia(n Node, tr []token.Trivia) { n.setTrailingTrivia(tr) }

// Factory mints node identities for one parse session.
type Factory struct {
	next NodeID
}

// NewFactory returns a factory whose first node gets ID 1.
func NewFactory() *Factory {
	return &Factory{next: 1}
}

func (f *Factory) newBase(span source.Span) base {
	id := f.next
	f.next++
	return base{id: id, span: span}
}

// Count returns how many nodes the factory has created.
func (f *Factory) Count() uint32 {
	return uint32(f.next - 1)
}
