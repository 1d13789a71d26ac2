package parser

import (
	"slices"

	"gram/internal/ast"
	"gram/internal/diag"
	"gram/internal/token"
)

// parsingContext names a list-shaped region of the grammar. Each context
// carries a policy describing how its generic list loop treats whitespace,
// separators, the closing token, and recovery.
type parsingContext uint8

// Indented right-hand-side lists and `one of a or b` symbol runs have no
// context here: the former tracks nested Indent depth and the latter treats
// `or` as optional between elements, so both keep bespoke loops
// (parseRightHandSides, parseOneOfSymbolRest).
const (
	pcSourceElements parsingContext = iota
	pcParameters
	pcParenParameters
	pcArguments
	pcParenArguments
	pcSymbolSet
	pcOneOfList
	pcOneOfListIndented
	pcNoSymbolHere

	pcCount
)

type listPolicy struct {
	// missing is reported when the loop is positioned on a token that
	// neither starts an element nor closes the list.
	missing diag.Code

	separator token.Kind // 0: elements are not separated

	close        token.Kind // 0: the list ends only at EOF or recovery
	consumeClose bool

	skipLines  bool // LineTerminator is insignificant here
	skipIndent bool // Indent/Dedent are insignificant here

	recovery []token.Kind
}

var listPolicies = [pcCount]listPolicy{
	pcSourceElements: {
		missing:   diag.SynExpectedSourceElement,
		skipLines: true, skipIndent: true,
		recovery: []token.Kind{token.LineTerminator},
	},
	pcParameters: {
		missing:   diag.SynExpectedParameter,
		separator: token.Comma,
		close:     token.CloseBracket, consumeClose: true,
		recovery: []token.Kind{token.Comma, token.CloseBracket, token.LineTerminator},
	},
	pcParenParameters: {
		missing:   diag.SynExpectedParameter,
		separator: token.Comma,
		close:     token.CloseParen, consumeClose: true,
		recovery: []token.Kind{token.Comma, token.CloseParen, token.LineTerminator},
	},
	pcArguments: {
		missing:   diag.SynExpectedArgument,
		separator: token.Comma,
		close:     token.CloseBracket, consumeClose: true,
		recovery: []token.Kind{token.Comma, token.CloseBracket, token.LineTerminator},
	},
	pcParenArguments: {
		missing:   diag.SynExpectedArgument,
		separator: token.Comma,
		close:     token.CloseParen, consumeClose: true,
		recovery: []token.Kind{token.Comma, token.CloseParen, token.LineTerminator},
	},
	pcSymbolSet: {
		missing:   diag.SynExpectedSymbol,
		separator: token.Comma,
		close:     token.CloseBrace, consumeClose: true,
		recovery: []token.Kind{token.Comma, token.CloseBrace, token.CloseBracket, token.LineTerminator},
	},
	pcOneOfList: {
		missing: diag.SynExpectedTerminal,
		close:   token.LineTerminator, consumeClose: false,
		recovery: []token.Kind{token.LineTerminator},
	},
	pcOneOfListIndented: {
		missing:   diag.SynExpectedTerminal,
		skipLines: true,
		close:     token.Dedent, consumeClose: true,
		recovery: []token.Kind{token.LineTerminator, token.Dedent},
	},
	pcNoSymbolHere: {
		missing:   diag.SynExpectedSymbol,
		separator: token.OrKeyword,
		close:     token.HereKeyword, consumeClose: true,
		recovery: []token.Kind{token.HereKeyword, token.CloseBracket, token.LineTerminator},
	},
}

// parseList is the shared list loop. start decides whether a token kind can
// begin an element; elem parses exactly one element and must consume at
// least one token. Element parsers that recover without producing a node
// may return nil; callers filter.
func parseList[T ast.Node](p *Parser, pc parsingContext, start func(token.Kind) bool, elem func() T) []T {
	policy := &listPolicies[pc]
	var out []T
	needSep := false

	for {
		p.checkCancel()
		p.skipInsignificant(policy)
		k := p.tok.Kind
		if k == token.EOF {
			break
		}
		if policy.close != 0 && k == policy.close {
			if policy.consumeClose {
				p.nextToken()
			}
			break
		}
		if start(k) {
			if needSep && policy.separator != 0 {
				p.report(diag.SynExpected, p.tok.Span, policy.separator.String())
			}
			out = append(out, elem())
			needSep = true
			if policy.separator != 0 && p.tok.Kind == policy.separator {
				p.nextToken()
				needSep = false
			}
			continue
		}

		p.report(policy.missing, p.tok.Span)
		if !p.skipToRecovery(policy) {
			break // EOF
		}
		k = p.tok.Kind
		if policy.separator != 0 && k == policy.separator {
			p.nextToken()
			needSep = false
			continue
		}
		if (policy.close != 0 && k == policy.close) || start(k) {
			continue
		}
		// Recovery landed outside the list, e.g. on the line terminator of
		// a bracketed list. The enclosing construct picks up from here.
		break
	}
	return out
}

func (p *Parser) skipInsignificant(policy *listPolicy) {
	for {
		switch p.tok.Kind {
		case token.LineTerminator:
			if !policy.skipLines {
				return
			}
		case token.Indent, token.Dedent:
			if !policy.skipIndent {
				return
			}
		default:
			return
		}
		p.nextToken()
	}
}

// skipToRecovery advances past the offending token until a recovery token,
// the context's close token, or EOF. The landing token is not consumed.
// Reports false at EOF.
func (p *Parser) skipToRecovery(policy *listPolicy) bool {
	for {
		p.nextToken()
		k := p.tok.Kind
		if k == token.EOF {
			return false
		}
		if policy.close != 0 && k == policy.close {
			return true
		}
		if slices.Contains(policy.recovery, k) {
			return true
		}
	}
}
