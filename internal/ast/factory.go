package ast

import (
	"gram/internal/diag"
	"gram/internal/source"
	"gram/internal/token"
)

// Constructors stamp identity and span onto freshly built shapes. Spans are
// final at construction: the parser computes a node's extent before minting
// it, and finished trees are immutable in shape.

func (f *Factory) NewSourceFile(span source.Span, path string, text []byte, bag *diag.Bag) *SourceFile {
	return &SourceFile{base: f.newBase(span), Path: path, Text: text, Bag: bag}
}

func (f *Factory) NewImport(span source.Span, path *StringLiteral) *Import {
	return &Import{base: f.newBase(span), Path: path}
}

func (f *Factory) NewDefine(span source.Span, key, value *Identifier) *Define {
	return &Define{base: f.newBase(span), Key: key, Value: value}
}

func (f *Factory) NewProduction(span source.Span, name *Identifier, params *ParameterList, colon token.Kind, body Node) *Production {
	return &Production{base: f.newBase(span), Name: name, Params: params, ColonToken: colon, Body: body}
}

func (f *Factory) NewParameterList(span source.Span, elements []*Parameter) *ParameterList {
	return &ParameterList{base: f.newBase(span), Elements: elements}
}

func (f *Factory) NewParameter(span source.Span, name *Identifier) *Parameter {
	return &Parameter{base: f.newBase(span), Name: name}
}

func (f *Factory) NewArgumentList(span source.Span, elements []*Argument) *ArgumentList {
	return &ArgumentList{base: f.newBase(span), Elements: elements}
}

func (f *Factory) NewArgument(span source.Span, operator token.Kind, name *Identifier) *Argument {
	return &Argument{base: f.newBase(span), Operator: operator, Name: name}
}

func (f *Factory) NewIdentifier(span source.Span, text string) *Identifier {
	return &Identifier{base: f.newBase(span), Text: text}
}

func (f *Factory) NewStringLiteral(span source.Span, text string) *StringLiteral {
	return &StringLiteral{base: f.newBase(span), Text: text}
}

func (f *Factory) NewTerminal(span source.Span, text string, optional bool) *Terminal {
	return &Terminal{base: f.newBase(span), Text: text, Optional: optional}
}

func (f *Factory) NewUnicodeCharacterLiteral(span source.Span, text string) *UnicodeCharacterLiteral {
	return &UnicodeCharacterLiteral{base: f.newBase(span), Text: text}
}

func (f *Factory) NewUnicodeCharacterRange(span source.Span, left, right *UnicodeCharacterLiteral) *UnicodeCharacterRange {
	return &UnicodeCharacterRange{base: f.newBase(span), Left: left, Right: right}
}

func (f *Factory) NewNonterminal(span source.Span, name *Identifier, args *ArgumentList, optional bool) *Nonterminal {
	return &Nonterminal{base: f.newBase(span), Name: name, Args: args, Optional: optional}
}

func (f *Factory) NewOneOfSymbol(span source.Span, symbols []Node) *OneOfSymbol {
	return &OneOfSymbol{base: f.newBase(span), Symbols: symbols}
}

func (f *Factory) NewButNotSymbol(span source.Span, left, right Node) *ButNotSymbol {
	return &ButNotSymbol{base: f.newBase(span), Left: left, Right: right}
}

func (f *Factory) NewPlaceholderSymbol(span source.Span) *PlaceholderSymbol {
	return &PlaceholderSymbol{base: f.newBase(span)}
}

func (f *Factory) NewInvalidSymbol(span source.Span) *InvalidSymbol {
	return &InvalidSymbol{base: f.newBase(span)}
}

func (f *Factory) NewSymbolSpan(span source.Span, symbols []Node) *SymbolSpan {
	return &SymbolSpan{base: f.newBase(span), Symbols: symbols}
}

func (f *Factory) NewRightHandSide(span source.Span, symbols *SymbolSpan, ref *LinkReference) *RightHandSide {
	return &RightHandSide{base: f.newBase(span), Symbols: symbols, Reference: ref}
}

func (f *Factory) NewRightHandSideList(span source.Span, elements []*RightHandSide) *RightHandSideList {
	return &RightHandSideList{base: f.newBase(span), Elements: elements}
}

func (f *Factory) NewOneOfList(span source.Span, indented bool, terminals []Node) *OneOfList {
	return &OneOfList{base: f.newBase(span), Indented: indented, Terminals: terminals}
}

func (f *Factory) NewEmptyAssertion(span source.Span) *EmptyAssertion {
	return &EmptyAssertion{base: f.newBase(span)}
}

func (f *Factory) NewLookaheadAssertion(span source.Span, operator token.Kind, lookahead Node) *LookaheadAssertion {
	return &LookaheadAssertion{base: f.newBase(span), Operator: operator, Lookahead: lookahead}
}

func (f *Factory) NewSymbolSet(span source.Span, elements []*SymbolSpan) *SymbolSet {
	return &SymbolSet{base: f.newBase(span), Elements: elements}
}

func (f *Factory) NewNoSymbolHereAssertion(span source.Span, symbols []Node) *NoSymbolHereAssertion {
	return &NoSymbolHereAssertion{base: f.newBase(span), Symbols: symbols}
}

func (f *Factory) NewLexicalGoalAssertion(span source.Span, symbol *Nonterminal) *LexicalGoalAssertion {
	return &LexicalGoalAssertion{base: f.newBase(span), Symbol: symbol}
}

func (f *Factory) NewParameterValueAssertion(span source.Span, operator token.Kind, name *Identifier) *ParameterValueAssertion {
	return &ParameterValueAssertion{base: f.newBase(span), Operator: operator, Name: name}
}

func (f *Factory) NewProseAssertion(span source.Span, fragments []Node) *ProseAssertion {
	return &ProseAssertion{base: f.newBase(span), Fragments: fragments}
}

func (f *Factory) NewInvalidAssertion(span source.Span) *InvalidAssertion {
	return &InvalidAssertion{base: f.newBase(span)}
}

func (f *Factory) NewProse(span source.Span, fragments []Node) *Prose {
	return &Prose{base: f.newBase(span), Fragments: fragments}
}

func (f *Factory) NewProseFragment(span source.Span, fragmentKind token.Kind, text string) *ProseFragment {
	return &ProseFragment{base: f.newBase(span), FragmentKind: fragmentKind, Text: text}
}

func (f *Factory) NewLinkReference(span source.Span, text string) *LinkReference {
	return &LinkReference{base: f.newBase(span), Text: text}
}
