package token

// keywords maps the contextual keyword spellings to their kinds.
// All keywords are contextual: the parser may still treat them as
// identifiers where the grammar expects a name.
var keywords = map[string]Kind{
	"but":       ButKeyword,
	"define":    DefineKeyword,
	"empty":     EmptyKeyword,
	"goal":      GoalKeyword,
	"here":      HereKeyword,
	"import":    ImportKeyword,
	"lexical":   LexicalKeyword,
	"lookahead": LookaheadKeyword,
	"no":        NoKeyword,
	"not":       NotKeyword,
	"of":        OfKeyword,
	"one":       OneKeyword,
	"or":        OrKeyword,
	"through":   ThroughKeyword,
}

// LookupKeyword returns the keyword kind for text, or Identifier.
func LookupKeyword(text string) Kind {
	if k, ok := keywords[text]; ok {
		return k
	}
	return Identifier
}
