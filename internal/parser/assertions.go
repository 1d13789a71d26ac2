package parser

import (
	"gram/internal/ast"
	"gram/internal/diag"
	"gram/internal/token"
)

// parseAssertion parses a bracketed assertion. The dispatch keyword right
// after '[' picks the shape; an unrecognized opening degrades to an
// InvalidAssertion covering the whole bracketed range with exactly one
// diagnostic.
func (p *Parser) parseAssertion(leading []token.Trivia) ast.Node {
	start := p.pos()
	p.nextToken() // '['

	var node ast.Node
	switch p.tok.Kind {
	case token.EmptyKeyword:
		p.nextToken()
		p.expect(token.CloseBracket)
		node = p.factory.NewEmptyAssertion(p.spanFrom(start))

	case token.LookaheadKeyword:
		node = p.parseLookaheadAssertionRest(start)

	case token.NoKeyword:
		p.nextToken()
		syms := parseList(p, pcNoSymbolHere, isStartOfPlainSymbol, p.parsePrimarySymbol)
		p.expect(token.CloseBracket)
		node = p.factory.NewNoSymbolHereAssertion(p.spanFrom(start), syms)

	case token.LexicalKeyword:
		p.nextToken()
		p.expect(token.GoalKeyword)
		var sym *ast.Nonterminal
		if p.tok.Kind == token.Identifier || p.tok.Kind.IsKeyword() {
			sym = p.parseNonterminal(nil)
		} else {
			p.report(diag.SynExpectedSymbol, p.tok.Span)
		}
		p.expect(token.CloseBracket)
		node = p.factory.NewLexicalGoalAssertion(p.spanFrom(start), sym)

	case token.Plus, token.Tilde:
		op := p.tok.Kind
		p.nextToken()
		name := p.parseIdentifier()
		p.expect(token.CloseBracket)
		node = p.factory.NewParameterValueAssertion(p.spanFrom(start), op, name)

	case token.GreaterThan:
		p.sc.EnterProse()
		p.nextToken() // '>'
		frags := p.parseProseFragments()
		p.expect(token.CloseBracket)
		node = p.factory.NewProseAssertion(p.spanFrom(start), frags)

	default:
		p.report(diag.SynInvalidAssertion, p.tok.Span)
		for p.tok.Kind != token.CloseBracket && p.tok.Kind != token.LineTerminator &&
			p.tok.Kind != token.EOF {
			p.nextToken()
		}
		if p.tok.Kind == token.CloseBracket {
			p.nextToken()
		}
		node = p.factory.NewInvalidAssertion(p.spanFrom(start))
	}

	p.finishNode(node, leading)
	return node
}

// parseLookaheadAssertionRest parses `[lookahead op …]` from the
// `lookahead` keyword; start is the offset of '['. The operand is a braced
// symbol set for the membership operators or a single symbol otherwise.
func (p *Parser) parseLookaheadAssertionRest(start uint32) ast.Node {
	p.nextToken() // 'lookahead'

	op := token.Invalid
	switch p.tok.Kind {
	case token.EqualsEquals, token.ExclamationEquals, token.ElementOf, token.NotAnElementOf:
		op = p.tok.Kind
		p.nextToken()
	default:
		p.report(diag.SynExpectedOperator, p.tok.Span)
	}

	var operand ast.Node
	switch {
	case p.tok.Kind == token.OpenBrace:
		operand = p.parseSymbolSet()
	case isStartOfPlainSymbol(p.tok.Kind):
		operand = p.parsePrimarySymbol()
	default:
		p.report(diag.SynExpectedSymbol, p.tok.Span)
	}

	p.expect(token.CloseBracket)
	return p.factory.NewLookaheadAssertion(p.spanFrom(start), op, operand)
}

// parseSymbolSet parses `{ span, span }`. Each element is a symbol span so
// multi-token sequences like `{ `a` `b` }` form one entry.
func (p *Parser) parseSymbolSet() *ast.SymbolSet {
	start := p.pos()
	p.nextToken() // '{'
	elems := parseList(p, pcSymbolSet, isStartOfPlainSymbol, p.parseSetSpan)
	node := p.factory.NewSymbolSet(p.spanFrom(start), elems)
	p.finishNode(node, nil)
	return node
}

func (p *Parser) parseSetSpan() *ast.SymbolSpan {
	start := p.pos()
	var syms []ast.Node
	for isStartOfPlainSymbol(p.tok.Kind) {
		p.checkCancel()
		syms = append(syms, p.parsePrimarySymbol())
	}
	node := p.factory.NewSymbolSpan(p.spanFrom(start), syms)
	p.finishNode(node, nil)
	return node
}
