package token

import (
	"gram/internal/source"
)

// Token represents a single grammar token with its location.
// Value carries the decoded text of literal kinds (escapes resolved,
// quotes stripped); Text is always the raw source slice.
type Token struct {
	Kind  Kind
	Span  source.Span
	Text  string
	Value string
}

// IsLiteral reports whether the token carries a decoded value.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case StringLiteral, Terminal, UnicodeCharacterLiteral,
		ProseFull, ProseHead, ProseMiddle, ProseTail, LinkReference:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is one of the contextual keywords.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case ButKeyword, DefineKeyword, EmptyKeyword, GoalKeyword, HereKeyword,
		ImportKeyword, LexicalKeyword, LookaheadKeyword, NoKeyword,
		NotKeyword, OfKeyword, OneKeyword, OrKeyword, ThroughKeyword:
		return true
	default:
		return false
	}
}

// IsStructural reports whether the token was synthesized from line structure
// rather than scanned from characters.
func (t Token) IsStructural() bool {
	switch t.Kind {
	case LineTerminator, Indent, Dedent:
		return true
	default:
		return false
	}
}

// IsProseFragment reports whether the token is part of an angle-bracket prose run.
func (t Token) IsProseFragment() bool {
	switch t.Kind {
	case ProseFull, ProseHead, ProseMiddle, ProseTail:
		return true
	default:
		return false
	}
}
