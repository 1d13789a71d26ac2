package token

// Kind represents the category of a grammar token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// LineTerminator marks the end of a significant line.
	LineTerminator
	// Indent is synthesized when a line is indented deeper than the previous one.
	Indent
	// Dedent is synthesized when indentation returns to an enclosing level.
	Dedent

	// Identifier represents a production, parameter, or nonterminal name.
	Identifier
	// StringLiteral represents a double-quoted literal, e.g. an @import path.
	StringLiteral
	// Terminal represents a backtick-quoted terminal, e.g. `var`.
	Terminal
	// UnicodeCharacterLiteral represents <TAB> or U+0009 forms.
	UnicodeCharacterLiteral
	// ProseFull is a prose line without embedded grammar references.
	ProseFull
	// ProseHead is prose text before the first embedded reference.
	ProseHead
	// ProseMiddle is prose text between two embedded references.
	ProseMiddle
	// ProseTail is prose text after the last embedded reference.
	ProseTail
	// LinkReference represents a trailing #link-id on a right-hand side.
	LinkReference

	// At represents '@' introducing a meta element.
	At // @
	// OpenBracket represents '['.
	OpenBracket // [
	// CloseBracket represents ']'.
	CloseBracket // ]
	// OpenParen represents '('.
	OpenParen // (
	// CloseParen represents ')'.
	CloseParen // )
	// OpenBrace represents '{'.
	OpenBrace // {
	// CloseBrace represents '}'.
	CloseBrace // }
	// Comma represents ','.
	Comma // ,
	// Colon separates a syntactic production from its body.
	Colon // :
	// ColonColon separates a lexical production from its body.
	ColonColon // ::
	// ColonColonColon separates a numeric-string production from its body.
	ColonColonColon // :::
	// Question represents '?' (optional symbol, argument pass-through).
	Question // ?
	// Plus represents '+' (parameter set).
	Plus // +
	// Tilde represents '~' (parameter unset).
	Tilde // ~
	// GreaterThan represents '>' introducing prose.
	GreaterThan // >
	// EqualsEquals represents '==' in lookahead assertions.
	EqualsEquals // ==
	// ExclamationEquals represents '!=' in lookahead assertions.
	ExclamationEquals // !=
	// ElementOf represents '∈' or its ASCII spelling '<-'.
	ElementOf // ∈
	// NotAnElementOf represents '∉' or its ASCII spelling '<!'.
	NotAnElementOf // ∉

	// ButKeyword represents the 'but' keyword.
	ButKeyword // but
	// DefineKeyword represents the 'define' keyword.
	DefineKeyword // define
	// EmptyKeyword represents the 'empty' keyword.
	EmptyKeyword // empty
	// GoalKeyword represents the 'goal' keyword.
	GoalKeyword // goal
	// HereKeyword represents the 'here' keyword.
	HereKeyword // here
	// ImportKeyword represents the 'import' keyword.
	ImportKeyword // import
	// LexicalKeyword represents the 'lexical' keyword.
	LexicalKeyword // lexical
	// LookaheadKeyword represents the 'lookahead' keyword.
	LookaheadKeyword // lookahead
	// NoKeyword represents the 'no' keyword.
	NoKeyword // no
	// NotKeyword represents the 'not' keyword.
	NotKeyword // not
	// OfKeyword represents the 'of' keyword.
	OfKeyword // of
	// OneKeyword represents the 'one' keyword.
	OneKeyword // one
	// OrKeyword represents the 'or' keyword.
	OrKeyword // or
	// ThroughKeyword represents the 'through' keyword.
	ThroughKeyword // through

	kindCount
)

var kindNames = [...]string{
	Invalid:                 "invalid",
	EOF:                     "end of file",
	LineTerminator:          "line terminator",
	Indent:                  "indent",
	Dedent:                  "dedent",
	Identifier:              "identifier",
	StringLiteral:           "string literal",
	Terminal:                "terminal",
	UnicodeCharacterLiteral: "unicode character literal",
	ProseFull:               "prose",
	ProseHead:               "prose",
	ProseMiddle:             "prose",
	ProseTail:               "prose",
	LinkReference:           "link reference",
	At:                      "'@'",
	OpenBracket:             "'['",
	CloseBracket:            "']'",
	OpenParen:               "'('",
	CloseParen:              "')'",
	OpenBrace:               "'{'",
	CloseBrace:              "'}'",
	Comma:                   "','",
	Colon:                   "':'",
	ColonColon:              "'::'",
	ColonColonColon:         "':::'",
	Question:                "'?'",
	Plus:                    "'+'",
	Tilde:                   "'~'",
	GreaterThan:             "'>'",
	EqualsEquals:            "'=='",
	ExclamationEquals:       "'!='",
	ElementOf:               "'∈'",
	NotAnElementOf:          "'∉'",
	ButKeyword:              "'but'",
	DefineKeyword:           "'define'",
	EmptyKeyword:            "'empty'",
	GoalKeyword:             "'goal'",
	HereKeyword:             "'here'",
	ImportKeyword:           "'import'",
	LexicalKeyword:          "'lexical'",
	LookaheadKeyword:        "'lookahead'",
	NoKeyword:               "'no'",
	NotKeyword:              "'not'",
	OfKeyword:               "'of'",
	OneKeyword:              "'one'",
	OrKeyword:               "'or'",
	ThroughKeyword:          "'through'",
}

// IsKeyword reports whether k is a contextual keyword kind.
func (k Kind) IsKeyword() bool {
	return k >= ButKeyword && k < kindCount
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}
