package parser

import (
	"gram/internal/ast"
	"gram/internal/diag"
	"gram/internal/token"
)

func isStartOfSourceElement(k token.Kind) bool {
	return k == token.Identifier || k == token.At
}

func (p *Parser) parseSourceElements() []ast.Node {
	raw := parseList(p, pcSourceElements, isStartOfSourceElement, func() ast.Node {
		if p.tok.Kind == token.At {
			return p.parseMetaElement()
		}
		return ast.Node(p.parseProduction())
	})
	// Meta elements that failed to take shape come back nil.
	out := raw[:0]
	for _, el := range raw {
		if el != nil {
			out = append(out, el)
		}
	}
	return out
}

// parseMetaElement handles `@import "path"` and `@define key value`.
// Anything else after '@' is reported and skipped to the end of the line;
// the list loop drops the nil result.
func (p *Parser) parseMetaElement() ast.Node {
	leading := p.takeTrivia()
	start := p.pos()
	p.nextToken() // '@'

	switch p.tok.Kind {
	case token.ImportKeyword:
		p.nextToken()
		var path *ast.StringLiteral
		if p.tok.Kind == token.StringLiteral {
			path = p.factory.NewStringLiteral(p.tok.Span, p.tok.Value)
			p.nextToken()
		} else {
			p.report(diag.SynExpected, p.tok.Span, "import path")
		}
		node := p.factory.NewImport(p.spanFrom(start), path)
		p.finishNode(node, leading)
		return node

	case token.DefineKeyword:
		p.nextToken()
		key := p.parseIdentifier()
		value := p.parseIdentifier()
		node := p.factory.NewDefine(p.spanFrom(start), key, value)
		p.finishNode(node, leading)
		return node

	default:
		p.report(diag.SynExpectedMetaElement, p.tok.Span)
		p.skipPastLine()
		return nil
	}
}

// parseProduction parses `Name[Params] : body`. The trailing line
// terminator stays in the stream for the source-element loop.
func (p *Parser) parseProduction() *ast.Production {
	leading := p.takeTrivia()
	start := p.pos()

	name := p.parseIdentifier()

	var params *ast.ParameterList
	if p.tok.Kind == token.OpenBracket || p.tok.Kind == token.OpenParen {
		params = p.parseParameterList()
	}

	colon := token.Invalid
	switch p.tok.Kind {
	case token.Colon, token.ColonColon, token.ColonColonColon:
		colon = p.tok.Kind
		p.nextToken()
	default:
		p.report(diag.SynExpected, p.tok.Span, token.Colon.String())
	}

	body := p.parseProductionBody()

	node := p.factory.NewProduction(p.spanFrom(start), name, params, colon, body)
	p.finishNode(node, leading)
	return node
}

func (p *Parser) parseIdentifier() *ast.Identifier {
	if p.tok.Kind == token.Identifier || p.tok.Kind.IsKeyword() {
		id := p.factory.NewIdentifier(p.tok.Span, p.tok.Value)
		p.nextToken()
		p.finishNode(id, nil)
		return id
	}
	p.report(diag.SynExpected, p.tok.Span, "identifier")
	id := p.factory.NewIdentifier(p.hereSpan(), "")
	p.finishNode(id, nil)
	return id
}

func (p *Parser) parseParameterList() *ast.ParameterList {
	pc := pcParameters
	if p.tok.Kind == token.OpenParen {
		pc = pcParenParameters
	}
	start := p.pos()
	p.nextToken()
	elems := parseList(p, pc,
		func(k token.Kind) bool { return k == token.Identifier },
		p.parseParameter)
	node := p.factory.NewParameterList(p.spanFrom(start), elems)
	p.finishNode(node, nil)
	return node
}

func (p *Parser) parseParameter() *ast.Parameter {
	start := p.pos()
	name := p.parseIdentifier()
	node := p.factory.NewParameter(p.spanFrom(start), name)
	p.finishNode(node, nil)
	return node
}

func isStartOfArgument(k token.Kind) bool {
	switch k {
	case token.Plus, token.Tilde, token.Question, token.Identifier:
		return true
	default:
		return false
	}
}

func (p *Parser) parseArgumentList() *ast.ArgumentList {
	pc := pcArguments
	if p.tok.Kind == token.OpenParen {
		pc = pcParenArguments
	}
	start := p.pos()
	p.nextToken()
	elems := parseList(p, pc, isStartOfArgument, p.parseArgument)
	node := p.factory.NewArgumentList(p.spanFrom(start), elems)
	p.finishNode(node, nil)
	return node
}

func (p *Parser) parseArgument() *ast.Argument {
	start := p.pos()
	op := token.Invalid
	switch p.tok.Kind {
	case token.Plus, token.Tilde, token.Question:
		op = p.tok.Kind
		p.nextToken()
	}
	name := p.parseIdentifier()
	node := p.factory.NewArgument(p.spanFrom(start), op, name)
	p.finishNode(node, nil)
	return node
}

// parseProductionBody dispatches on what follows the colon: a `one of`
// terminal list, an indented list of alternatives, or a single inline
// right-hand side.
func (p *Parser) parseProductionBody() ast.Node {
	start := p.pos()

	if p.tok.Kind == token.OneKeyword && p.tryParse(p.eatOneOf) {
		return p.parseOneOfListRest(start)
	}

	if p.tok.Kind == token.LineTerminator {
		p.nextToken()
		if p.tok.Kind == token.Indent {
			p.nextToken()
			listStart := p.pos()
			elems := p.parseRightHandSides()
			node := p.factory.NewRightHandSideList(p.spanFrom(listStart), elems)
			p.finishNode(node, nil)
			return node
		}
		p.report(diag.SynExpectedProductionBody, p.hereSpan())
		node := p.factory.NewRightHandSideList(p.hereSpan(), nil)
		p.finishNode(node, nil)
		return node
	}

	rhs := p.parseRightHandSide()

	// An indented block after the inline alternative continues the list:
	//	A : `x`
	//	    `y`
	if p.tok.Kind == token.LineTerminator && p.lookahead(p.atIndentedLine) {
		p.nextToken() // line terminator
		p.nextToken() // indent
		elems := append([]*ast.RightHandSide{rhs}, p.parseRightHandSides()...)
		node := p.factory.NewRightHandSideList(p.spanFrom(start), elems)
		p.finishNode(node, nil)
		return node
	}
	return rhs
}

func (p *Parser) atIndentedLine() bool {
	p.nextToken()
	return p.tok.Kind == token.Indent
}

// eatOneOf commits `one of` when both words are present. `one` alone is an
// ordinary nonterminal reference.
func (p *Parser) eatOneOf() bool {
	if p.tok.Kind != token.OneKeyword {
		return false
	}
	p.nextToken()
	if p.tok.Kind != token.OfKeyword {
		return false
	}
	p.nextToken()
	return true
}

func isStartOfOneOfTerminal(k token.Kind) bool {
	return k == token.Terminal || k == token.UnicodeCharacterLiteral
}

// parseOneOfListRest parses the terminals of a `one of` body; `one of`
// itself is already consumed. The terminals follow inline or on a block of
// indented lines.
func (p *Parser) parseOneOfListRest(start uint32) *ast.OneOfList {
	indented := false
	var terminals []ast.Node

	if p.tok.Kind == token.LineTerminator {
		p.nextToken()
		if p.tok.Kind == token.Indent {
			p.nextToken()
			indented = true
			terminals = parseList(p, pcOneOfListIndented, isStartOfOneOfTerminal, p.parseOneOfTerminal)
		} else {
			p.report(diag.SynExpectedTerminal, p.hereSpan())
		}
	} else {
		terminals = parseList(p, pcOneOfList, isStartOfOneOfTerminal, p.parseOneOfTerminal)
	}

	node := p.factory.NewOneOfList(p.spanFrom(start), indented, terminals)
	p.finishNode(node, nil)
	return node
}

func (p *Parser) parseOneOfTerminal() ast.Node {
	tok := p.tok
	p.nextToken()
	var node ast.Node
	if tok.Kind == token.Terminal {
		node = p.factory.NewTerminal(tok.Span, tok.Value, false)
	} else {
		node = p.factory.NewUnicodeCharacterLiteral(tok.Span, tok.Value)
	}
	p.finishNode(node, nil)
	return node
}

// parseRightHandSides consumes the alternatives of an indented list. The
// opening Indent is already consumed; nested deeper indentation is treated
// as continuation and flattened, and the loop returns once the matching
// Dedent closes the block.
func (p *Parser) parseRightHandSides() []*ast.RightHandSide {
	var out []*ast.RightHandSide
	depth := 1
	for {
		p.checkCancel()
		switch p.tok.Kind {
		case token.EOF:
			return out
		case token.LineTerminator:
			p.nextToken()
		case token.Indent:
			depth++
			p.nextToken()
		case token.Dedent:
			depth--
			p.nextToken()
			if depth == 0 {
				return out
			}
		default:
			if isStartOfSymbol(p.tok.Kind) {
				out = append(out, p.parseRightHandSide())
			} else {
				p.report(diag.SynExpectedRightHandSide, p.tok.Span)
				p.skipPastLine()
			}
		}
	}
}

// parseRightHandSide parses one alternative: a run of symbols with an
// optional trailing #link-id. Stops at the line terminator without
// consuming it.
func (p *Parser) parseRightHandSide() *ast.RightHandSide {
	start := p.pos()

	span := p.parseSymbolSpan()

	var ref *ast.LinkReference
	if p.tok.Kind == token.LinkReference {
		ref = p.factory.NewLinkReference(p.tok.Span, p.tok.Value)
		p.nextToken()
		p.finishNode(ref, nil)
	}

	node := p.factory.NewRightHandSide(p.spanFrom(start), span, ref)
	p.finishNode(node, nil)
	return node
}
