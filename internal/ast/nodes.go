package ast

import (
	"gram/internal/diag"
	"gram/internal/token"
)

// SourceFile is the root node of one parsed grammar file. It owns the file
// path, the raw text, the ordered top-level elements, the import paths
// collected during the parse, and the parse-time diagnostic bag.
type SourceFile struct {
	base
	Path     string
	Text     []byte
	Elements []Node
	Imports  []string
	Bag      *diag.Bag
}

// Import is an `@import "path"` meta element.
type Import struct {
	base
	Path *StringLiteral
}

// Define is an `@define key value` meta element.
type Define struct {
	base
	Key   *Identifier
	Value *Identifier
}

// Production is `Name[Params] : body`. ColonToken records the separator
// arity (':', '::', or ':::'); Body is a RightHandSide, RightHandSideList,
// or OneOfList.
type Production struct {
	base
	Name       *Identifier
	Params     *ParameterList
	ColonToken token.Kind
	Body       Node
}

// ParameterList is the bracketed `[A, B]` parameter declaration list.
type ParameterList struct {
	base
	Elements []*Parameter
}

// Parameter declares one production parameter.
type Parameter struct {
	base
	Name *Identifier
}

// ArgumentList is the bracketed `[+A, ~B, ?C]` argument list of a
// nonterminal reference.
type ArgumentList struct {
	base
	Elements []*Argument
}

// Argument passes a parameter value to a referenced production.
// Operator is Plus, Tilde, Question, or Invalid when omitted.
type Argument struct {
	base
	Operator token.Kind
	Name     *Identifier
}

// Identifier is a name occurrence.
type Identifier struct {
	base
	Text string
}

// StringLiteral is a double-quoted literal with escapes decoded.
type StringLiteral struct {
	base
	Text string
}

// Terminal is a backtick-quoted terminal symbol. Optional marks a trailing '?'.
type Terminal struct {
	base
	Text     string
	Optional bool
}

// UnicodeCharacterLiteral is `<TAB>` or `U+0009`.
type UnicodeCharacterLiteral struct {
	base
	Text string
}

// UnicodeCharacterRange is `U+0000 through U+001F`.
type UnicodeCharacterRange struct {
	base
	Left  *UnicodeCharacterLiteral
	Right *UnicodeCharacterLiteral
}

// Nonterminal references a production, optionally with arguments and a
// trailing '?'.
type Nonterminal struct {
	base
	Name     *Identifier
	Args     *ArgumentList
	Optional bool
}

// OneOfSymbol is `one of a b c` used in symbol position.
type OneOfSymbol struct {
	base
	Symbols []Node
}

// ButNotSymbol is `Left but not Right`.
type ButNotSymbol struct {
	base
	Left  Node
	Right Node
}

// PlaceholderSymbol is the '@' placeholder.
type PlaceholderSymbol struct {
	base
}

// InvalidSymbol is an error production covering an unparsable symbol range.
type InvalidSymbol struct {
	base
}

// SymbolSpan is the ordered run of symbols of one right-hand side.
type SymbolSpan struct {
	base
	Symbols []Node
}

// RightHandSide is one alternative of a production, with an optional
// trailing link reference.
type RightHandSide struct {
	base
	Symbols   *SymbolSpan
	Reference *LinkReference
}

// RightHandSideList is the indented list of alternatives.
type RightHandSideList struct {
	base
	Elements []*RightHandSide
}

// OneOfList is a `one of` production body. Indented reports whether the
// terminals appeared on following indented lines.
type OneOfList struct {
	base
	Indented  bool
	Terminals []Node
}

// EmptyAssertion is `[empty]`.
type EmptyAssertion struct {
	base
}

// LookaheadAssertion is `[lookahead op symbol-or-set]`.
// Operator is EqualsEquals, ExclamationEquals, ElementOf, or NotAnElementOf.
type LookaheadAssertion struct {
	base
	Operator  token.Kind
	Lookahead Node
}

// SymbolSet is the braced `{ span, span }` operand of a lookahead assertion.
type SymbolSet struct {
	base
	Elements []*SymbolSpan
}

// NoSymbolHereAssertion is `[no Symbol here]` (several symbols separated by 'or').
type NoSymbolHereAssertion struct {
	base
	Symbols []Node
}

// LexicalGoalAssertion is `[lexical goal Nonterminal]`.
type LexicalGoalAssertion struct {
	base
	Symbol *Nonterminal
}

// ParameterValueAssertion is `[+Param]` or `[~Param]`.
type ParameterValueAssertion struct {
	base
	Operator token.Kind
	Name     *Identifier
}

// ProseAssertion is a bracketed prose constraint `[> free text]`.
type ProseAssertion struct {
	base
	Fragments []Node
}

// InvalidAssertion is an error production covering an unparsable bracketed range.
type InvalidAssertion struct {
	base
}

// Prose is a `>`-introduced prose right-hand side; fragments interleave
// free text with embedded Terminal and Nonterminal references.
type Prose struct {
	base
	Fragments []Node
}

// ProseFragment is one run of free text inside prose. FragmentKind is one of
// the token prose kinds (Full/Head/Middle/Tail).
type ProseFragment struct {
	base
	FragmentKind token.Kind
	Text         string
}

// LinkReference is a trailing `#link-id`.
type LinkReference struct {
	base
	Text string
}

func (*SourceFile) Kind() Kind              { return KindSourceFile }
func (*Import) Kind() Kind                  { return KindImport }
func (*Define) Kind() Kind                  { return KindDefine }
func (*Production) Kind() Kind              { return KindProduction }
func (*ParameterList) Kind() Kind           { return KindParameterList }
func (*Parameter) Kind() Kind               { return KindParameter }
func (*ArgumentList) Kind() Kind            { return KindArgumentList }
func (*Argument) Kind() Kind                { return KindArgument }
func (*Identifier) Kind() Kind              { return KindIdentifier }
func (*StringLiteral) Kind() Kind           { return KindStringLiteral }
func (*Terminal) Kind() Kind                { return KindTerminal }
func (*UnicodeCharacterLiteral) Kind() Kind { return KindUnicodeCharacterLiteral }
func (*UnicodeCharacterRange) Kind() Kind   { return KindUnicodeCharacterRange }
func (*Nonterminal) Kind() Kind             { return KindNonterminal }
func (*OneOfSymbol) Kind() Kind             { return KindOneOfSymbol }
func (*ButNotSymbol) Kind() Kind            { return KindButNotSymbol }
func (*PlaceholderSymbol) Kind() Kind       { return KindPlaceholderSymbol }
func (*InvalidSymbol) Kind() Kind           { return KindInvalidSymbol }
func (*SymbolSpan) Kind() Kind              { return KindSymbolSpan }
func (*RightHandSide) Kind() Kind           { return KindRightHandSide }
func (*RightHandSideList) Kind() Kind       { return KindRightHandSideList }
func (*OneOfList) Kind() Kind               { return KindOneOfList }
func (*EmptyAssertion) Kind() Kind          { return KindEmptyAssertion }
func (*LookaheadAssertion) Kind() Kind      { return KindLookaheadAssertion }
func (*SymbolSet) Kind() Kind               { return KindSymbolSet }
func (*NoSymbolHereAssertion) Kind() Kind   { return KindNoSymbolHereAssertion }
func (*LexicalGoalAssertion) Kind() Kind    { return KindLexicalGoalAssertion }
func (*ParameterValueAssertion) Kind() Kind { return KindParameterValueAssertion }
func (*ProseAssertion) Kind() Kind          { return KindProseAssertion }
func (*InvalidAssertion) Kind() Kind        { return KindInvalidAssertion }
func (*Prose) Kind() Kind                   { return KindProse }
func (*ProseFragment) Kind() Kind           { return KindProseFragment }
func (*LinkReference) Kind() Kind           { return KindLinkReference }
