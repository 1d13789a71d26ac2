package scanner

import (
	"gram/internal/token"
)

// EnterProse switches the scanner into prose mode. The parser calls this
// after consuming the '>' that introduces prose (or '[>' for a prose
// assertion). In prose mode Scan returns fragment tokens until the line
// ends; embedded |Name| and `terminal` references interrupt the text runs.
func (s *Scanner) EnterProse() {
	s.proseMode = true
	s.proseFirst = true
}

// LeaveProse exits prose mode early (the parser leaves it when a prose
// assertion's closing bracket appears).
func (s *Scanner) LeaveProse() {
	s.proseMode = false
}

// InProse reports whether prose mode is active.
func (s *Scanner) InProse() bool { return s.proseMode }

// scanProseFragment produces the next token of a prose run:
//   - a text fragment classified Head/Middle/Tail/Full by its position
//     relative to embedded references,
//   - an Identifier for |Name|,
//   - a Terminal for `x`,
//   - and ends the run at the line terminator (prose never spans lines).
func (s *Scanner) scanProseFragment() token.Token {
	if s.cursor.EOF() || s.cursor.Peek() == '\n' {
		s.proseMode = false
		// Delegate the LineTerminator/EOF handling to the normal path.
		return s.Scan()
	}

	b := s.cursor.Peek()
	if b == '|' {
		s.proseFirst = false
		return s.scanProseNonterminal()
	}
	if b == '`' {
		s.proseFirst = false
		return s.scanTerminal()
	}

	start := s.cursor.Mark()
	for !s.cursor.EOF() {
		b := s.cursor.Peek()
		if b == '\n' || b == '|' || b == '`' {
			break
		}
		// ']' ends a bracketed prose assertion.
		if b == ']' {
			break
		}
		s.cursor.Bump()
	}

	first := s.proseFirst
	s.proseFirst = false
	endsRun := s.cursor.EOF() || s.cursor.Peek() == '\n' || s.cursor.Peek() == ']'

	var kind token.Kind
	switch {
	case first && endsRun:
		kind = token.ProseFull
	case first:
		kind = token.ProseHead
	case endsRun:
		kind = token.ProseTail
	default:
		kind = token.ProseMiddle
	}

	sp := s.cursor.SpanFrom(start)
	tok := s.mk(kind, sp, s.file.Text(sp))
	tok.Value = tok.Text
	if endsRun {
		s.proseMode = false
	}
	return tok
}

// scanProseNonterminal reads |Name| and yields an Identifier token whose
// value is the bare name.
func (s *Scanner) scanProseNonterminal() token.Token {
	start := s.cursor.Mark()
	s.cursor.Bump() // '|'
	for !s.cursor.EOF() && isIdentContinue(s.cursor.Peek()) {
		s.cursor.Bump()
	}
	value := s.file.Text(s.cursor.SpanFrom(start))[1:]
	s.cursor.Eat('|')
	sp := s.cursor.SpanFrom(start)
	tok := s.mk(token.Identifier, sp, s.file.Text(sp))
	tok.Value = value
	return tok
}
