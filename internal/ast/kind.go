package ast

// Kind tags the concrete shape of a node.
type Kind uint8

const (
	KindInvalid Kind = iota

	KindSourceFile
	KindImport
	KindDefine

	KindProduction
	KindParameterList
	KindParameter
	KindArgumentList
	KindArgument

	KindIdentifier
	KindStringLiteral
	KindTerminal
	KindUnicodeCharacterLiteral
	KindUnicodeCharacterRange

	KindNonterminal
	KindOneOfSymbol
	KindButNotSymbol
	KindPlaceholderSymbol
	KindInvalidSymbol

	KindSymbolSpan
	KindRightHandSide
	KindRightHandSideList
	KindOneOfList

	KindEmptyAssertion
	KindLookaheadAssertion
	KindSymbolSet
	KindNoSymbolHereAssertion
	KindLexicalGoalAssertion
	KindParameterValueAssertion
	KindProseAssertion
	KindInvalidAssertion

	KindProse
	KindProseFragment
	KindLinkReference
)

var kindNames = [...]string{
	KindInvalid:                 "Invalid",
	KindSourceFile:              "SourceFile",
	KindImport:                  "Import",
	KindDefine:                  "Define",
	KindProduction:              "Production",
	KindParameterList:           "ParameterList",
	KindParameter:               "Parameter",
	KindArgumentList:            "ArgumentList",
	KindArgument:                "Argument",
	KindIdentifier:              "Identifier",
	KindStringLiteral:           "StringLiteral",
	KindTerminal:                "Terminal",
	KindUnicodeCharacterLiteral: "UnicodeCharacterLiteral",
	KindUnicodeCharacterRange:   "UnicodeCharacterRange",
	KindNonterminal:             "Nonterminal",
	KindOneOfSymbol:             "OneOfSymbol",
	KindButNotSymbol:            "ButNotSymbol",
	KindPlaceholderSymbol:       "PlaceholderSymbol",
	KindInvalidSymbol:           "InvalidSymbol",
	KindSymbolSpan:              "SymbolSpan",
	KindRightHandSide:           "RightHandSide",
	KindRightHandSideList:       "RightHandSideList",
	KindOneOfList:               "OneOfList",
	KindEmptyAssertion:          "EmptyAssertion",
	KindLookaheadAssertion:      "LookaheadAssertion",
	KindSymbolSet:               "SymbolSet",
	KindNoSymbolHereAssertion:   "NoSymbolHereAssertion",
	KindLexicalGoalAssertion:    "LexicalGoalAssertion",
	KindParameterValueAssertion: "ParameterValueAssertion",
	KindProseAssertion:          "ProseAssertion",
	KindProse:                   "Prose",
	KindProseFragment:           "ProseFragment",
	KindLinkReference:           "LinkReference",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}
