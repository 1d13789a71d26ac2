package scanner

import (
	"gram/internal/diag"
	"gram/internal/token"
)

// htmlTagFollows distinguishes HTML markup from <TAB>-style unicode
// literals: a tag starts with '<' plus a lowercase letter, or '</'.
// Named character literals are written in caps.
func (s *Scanner) htmlTagFollows() bool {
	b1 := s.cursor.PeekAt(1)
	if b1 == '/' {
		return true
	}
	return b1 >= 'a' && b1 <= 'z'
}

// scanHtmlTrivia collects one <tag> or </tag> marker into the trivia buffer.
// Attribute text inside the tag is carried in the span but not interpreted.
func (s *Scanner) scanHtmlTrivia() {
	start := s.cursor.Mark()
	s.cursor.Bump() // '<'
	kind := token.HtmlOpenTagTrivia
	if s.cursor.Eat('/') {
		kind = token.HtmlCloseTagTrivia
	}

	nameStart := s.cursor.Mark()
	for !s.cursor.EOF() && isIdentContinue(s.cursor.Peek()) {
		s.cursor.Bump()
	}
	name := s.file.Text(s.cursor.SpanFrom(nameStart))

	closed := false
	for !s.cursor.EOF() {
		b := s.cursor.Bump()
		if b == '>' {
			closed = true
			break
		}
		if b == '\n' {
			s.lineStart = s.cursor.Off
			break
		}
	}

	sp := s.cursor.SpanFrom(start)
	if !closed {
		s.errLex(diag.LexUnterminatedHtmlTrivia, sp)
	}
	s.trivia = append(s.trivia, token.Trivia{Kind: kind, Span: sp, TagName: name})
}
