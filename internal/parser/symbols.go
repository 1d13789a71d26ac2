package parser

import (
	"gram/internal/ast"
	"gram/internal/diag"
	"gram/internal/token"
)

// isStartOfSymbol reports whether k can begin a symbol inside a right-hand
// side. Keywords are contextual and double as nonterminal names; only `but`
// is excluded because it binds as the infix of `but not`.
func isStartOfSymbol(k token.Kind) bool {
	switch k {
	case token.Terminal, token.UnicodeCharacterLiteral, token.Identifier,
		token.At, token.GreaterThan, token.OpenBracket:
		return true
	}
	return k.IsKeyword() && k != token.ButKeyword
}

// isStartOfPlainSymbol is the narrow start set used inside symbol sets,
// `no ... here` assertions, and `one of` symbol lists, where keywords keep
// their structural meaning.
func isStartOfPlainSymbol(k token.Kind) bool {
	switch k {
	case token.Terminal, token.UnicodeCharacterLiteral, token.Identifier:
		return true
	default:
		return false
	}
}

// parseSymbolSpan collects the ordered symbols of one alternative.
func (p *Parser) parseSymbolSpan() *ast.SymbolSpan {
	start := p.pos()
	var syms []ast.Node
	for isStartOfSymbol(p.tok.Kind) {
		p.checkCancel()
		syms = append(syms, p.parseSymbol())
	}
	if len(syms) == 0 {
		p.report(diag.SynExpectedSymbol, p.tok.Span)
		p.skipPastLine()
	}
	node := p.factory.NewSymbolSpan(p.spanFrom(start), syms)
	p.finishNode(node, nil)
	return node
}

// parseSymbol parses one symbol, folding a trailing `but not` into a
// ButNotSymbol around it.
func (p *Parser) parseSymbol() ast.Node {
	left := p.parsePrimarySymbol()
	if p.tok.Kind != token.ButKeyword {
		return left
	}

	start := left.Span().Start
	p.nextToken() // 'but'
	p.expect(token.NotKeyword)

	var right ast.Node
	oneStart := p.pos()
	if p.tok.Kind == token.OneKeyword && p.tryParse(p.eatOneOf) {
		right = p.parseOneOfSymbolRest(oneStart)
	} else {
		right = p.parsePrimarySymbol()
	}

	node := p.factory.NewButNotSymbol(p.spanFrom(start), left, right)
	p.finishNode(node, nil)
	return node
}

// parseOneOfSymbolRest parses the symbols of `one of a or b` after `one of`
// is consumed; start is the offset of `one`. `or` between entries is
// optional.
func (p *Parser) parseOneOfSymbolRest(start uint32) *ast.OneOfSymbol {
	var syms []ast.Node
	if !isStartOfPlainSymbol(p.tok.Kind) {
		p.report(diag.SynExpectedSymbol, p.tok.Span)
	} else {
		for {
			p.checkCancel()
			syms = append(syms, p.parsePrimarySymbol())
			if p.tok.Kind == token.OrKeyword {
				p.nextToken()
				continue
			}
			if isStartOfPlainSymbol(p.tok.Kind) {
				continue
			}
			break
		}
	}
	node := p.factory.NewOneOfSymbol(p.spanFrom(start), syms)
	p.finishNode(node, nil)
	return node
}

// parsePrimarySymbol parses a single symbol without the `but not` suffix.
// On an unusable token it produces an InvalidSymbol; structural tokens are
// left in place so the enclosing line recovers, anything else is consumed.
func (p *Parser) parsePrimarySymbol() ast.Node {
	leading := p.takeTrivia()

	switch p.tok.Kind {
	case token.Terminal:
		tok := p.tok
		p.nextToken()
		optional := false
		if p.tok.Kind == token.Question {
			optional = true
			p.nextToken()
		}
		node := p.factory.NewTerminal(p.spanFrom(tok.Span.Start), tok.Value, optional)
		p.finishNode(node, leading)
		return node

	case token.UnicodeCharacterLiteral:
		first := p.tok
		p.nextToken()
		left := p.factory.NewUnicodeCharacterLiteral(first.Span, first.Value)
		p.finishNode(left, leading)
		if p.tok.Kind != token.ThroughKeyword {
			return left
		}
		p.nextToken()
		var right *ast.UnicodeCharacterLiteral
		if p.tok.Kind == token.UnicodeCharacterLiteral {
			right = p.factory.NewUnicodeCharacterLiteral(p.tok.Span, p.tok.Value)
			p.nextToken()
			p.finishNode(right, nil)
		} else {
			p.report(diag.SynExpected, p.tok.Span, token.UnicodeCharacterLiteral.String())
		}
		node := p.factory.NewUnicodeCharacterRange(p.spanFrom(first.Span.Start), left, right)
		p.finishNode(node, nil)
		return node

	case token.At:
		node := p.factory.NewPlaceholderSymbol(p.tok.Span)
		p.nextToken()
		p.finishNode(node, leading)
		return node

	case token.GreaterThan:
		return p.parseProse(leading)

	case token.OpenBracket:
		return p.parseAssertion(leading)

	case token.Identifier:
		return p.parseNonterminal(leading)

	case token.LineTerminator, token.Indent, token.Dedent, token.EOF,
		token.CloseBracket, token.CloseBrace, token.CloseParen, token.Comma:
		p.report(diag.SynExpectedSymbol, p.tok.Span)
		node := p.factory.NewInvalidSymbol(p.hereSpan())
		p.finishNode(node, leading)
		return node
	}

	if p.tok.Kind.IsKeyword() {
		return p.parseNonterminal(leading)
	}

	p.report(diag.SynInvalidSymbol, p.tok.Span)
	node := p.factory.NewInvalidSymbol(p.tok.Span)
	p.nextToken()
	p.finishNode(node, leading)
	return node
}

// parseNonterminal parses `Name`, `Name[+A, ~B]`, `Name?`. A bracket after
// the name is only an argument list when a pure lookahead confirms the
// argument shape; otherwise it begins the next symbol (an assertion).
func (p *Parser) parseNonterminal(leading []token.Trivia) *ast.Nonterminal {
	start := p.pos()
	name := p.parseIdentifier()

	var args *ast.ArgumentList
	if (p.tok.Kind == token.OpenBracket || p.tok.Kind == token.OpenParen) &&
		p.lookahead(p.scanArgumentListAhead) {
		args = p.parseArgumentList()
	}

	optional := false
	if p.tok.Kind == token.Question {
		optional = true
		p.nextToken()
	}

	node := p.factory.NewNonterminal(p.spanFrom(start), name, args, optional)
	p.finishNode(node, leading)
	return node
}

// scanArgumentListAhead peeks past an opening bracket to decide whether an
// argument list follows: an operator, an empty list, or a bare name
// followed by ',' or the closing token.
func (p *Parser) scanArgumentListAhead() bool {
	closeKind := token.CloseBracket
	if p.tok.Kind == token.OpenParen {
		closeKind = token.CloseParen
	}
	p.nextToken()
	switch p.tok.Kind {
	case token.Plus, token.Tilde, token.Question:
		return true
	case closeKind:
		return true
	case token.Identifier:
		p.nextToken()
		return p.tok.Kind == token.Comma || p.tok.Kind == closeKind
	default:
		return false
	}
}

// parseProse parses a `>`-introduced prose run: free text with embedded
// |Nonterminal| and `terminal` references, ending at the line terminator.
func (p *Parser) parseProse(leading []token.Trivia) *ast.Prose {
	start := p.pos()
	p.sc.EnterProse()
	p.nextToken() // '>', already in prose mode for the next scan

	frags := p.parseProseFragments()

	node := p.factory.NewProse(p.spanFrom(start), frags)
	p.finishNode(node, leading)
	return node
}

func (p *Parser) parseProseFragments() []ast.Node {
	var frags []ast.Node
	for {
		p.checkCancel()
		switch {
		case p.tok.IsProseFragment():
			if p.tok.Value != "" {
				node := p.factory.NewProseFragment(p.tok.Span, p.tok.Kind, p.tok.Value)
				p.finishNode(node, nil)
				frags = append(frags, node)
			}
			p.nextToken()

		case p.tok.Kind == token.Identifier:
			name := p.factory.NewIdentifier(p.tok.Span, p.tok.Value)
			p.finishNode(name, nil)
			node := p.factory.NewNonterminal(p.tok.Span, name, nil, false)
			p.nextToken()
			p.finishNode(node, nil)
			frags = append(frags, node)

		case p.tok.Kind == token.Terminal:
			node := p.factory.NewTerminal(p.tok.Span, p.tok.Value, false)
			p.nextToken()
			p.finishNode(node, nil)
			frags = append(frags, node)

		default:
			if p.sc.InProse() {
				p.sc.LeaveProse()
			}
			return frags
		}
	}
}
