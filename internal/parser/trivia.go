package parser

import (
	"slices"

	"gram/internal/ast"
	"gram/internal/token"
)

// takeTrivia hands out the markup trivia accumulated ahead of the current
// token. The node beginning at this token becomes its owner; the promotion
// pass later lifts it to the widest enclosing node it belongs to.
func (p *Parser) takeTrivia() []token.Trivia {
	tr := p.pendingTrivia
	p.pendingTrivia = nil
	return tr
}

// finishNode attaches leading trivia and runs the promotion step for a node
// whose children are complete. Children finish before their parents, so the
// promotion is bottom-up over the whole tree.
func (p *Parser) finishNode(n ast.Node, leading []token.Trivia) {
	if len(leading) > 0 {
		ast.SetLeadingTrivia(n, append(leading, n.LeadingTrivia()...))
	}
	p.promoteTrivia(n)
}

// promoteTrivia lifts edge trivia from a node's children onto the node
// itself. An only child gives up all of its trivia. With several children,
// leading trivia promotes from the first child and trailing from the last,
// except where moving a tag would strand it from its matching pair inside
// the same child.
func (p *Parser) promoteTrivia(parent ast.Node) {
	children := ast.Children(parent)
	if len(children) == 0 {
		return
	}

	if len(children) == 1 {
		only := children[0]
		if lt := only.LeadingTrivia(); len(lt) > 0 {
			ast.SetLeadingTrivia(parent, append(slices.Clone(parent.LeadingTrivia()), lt...))
			ast.SetLeadingTrivia(only, nil)
		}
		if tt := only.TrailingTrivia(); len(tt) > 0 {
			ast.SetTrailingTrivia(parent, append(slices.Clone(tt), parent.TrailingTrivia()...))
			ast.SetTrailingTrivia(only, nil)
		}
		return
	}

	first := children[0]
	lead := first.LeadingTrivia()
	if n := promotableLeading(lead, first.TrailingTrivia()); n > 0 {
		ast.SetLeadingTrivia(parent, append(slices.Clone(parent.LeadingTrivia()), lead[:n]...))
		ast.SetLeadingTrivia(first, slices.Clone(lead[n:]))
	}

	last := children[len(children)-1]
	trail := last.TrailingTrivia()
	if m := promotableTrailing(trail, last.LeadingTrivia()); m > 0 {
		cut := len(trail) - m
		ast.SetTrailingTrivia(parent, append(slices.Clone(trail[cut:]), parent.TrailingTrivia()...))
		ast.SetTrailingTrivia(last, slices.Clone(trail[:cut]))
	}
}

// promotableLeading counts the prefix of lead that can move up without
// separating an open tag from its matching close tag in trail.
func promotableLeading(lead, trail []token.Trivia) int {
	for i, tr := range lead {
		if tr.Kind == token.HtmlOpenTagTrivia && hasMatchingClose(tr, trail) {
			return i
		}
	}
	return len(lead)
}

// promotableTrailing counts the suffix of trail that can move up without
// separating a close tag from its matching open tag in lead.
func promotableTrailing(trail, lead []token.Trivia) int {
	for i := len(trail) - 1; i >= 0; i-- {
		if trail[i].Kind == token.HtmlCloseTagTrivia && hasMatchingOpen(trail[i], lead) {
			return len(trail) - 1 - i
		}
	}
	return len(trail)
}

func hasMatchingClose(open token.Trivia, trail []token.Trivia) bool {
	for _, tr := range trail {
		if open.Matches(tr) {
			return true
		}
	}
	return false
}

func hasMatchingOpen(closeTag token.Trivia, lead []token.Trivia) bool {
	for _, tr := range lead {
		if tr.Matches(closeTag) {
			return true
		}
	}
	return false
}
