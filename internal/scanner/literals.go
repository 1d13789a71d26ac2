package scanner

import (
	"strings"
	"unicode/utf8"

	"gram/internal/diag"
	"gram/internal/token"
)

// scanString reads a double-quoted literal with escapes decoded into Value.
// An unterminated literal (newline or EOF) reports a diagnostic and yields a
// best-effort StringLiteral covering what was read.
func (s *Scanner) scanString() token.Token {
	return s.scanQuoted('"', token.StringLiteral, diag.LexUnterminatedString)
}

// scanTerminal reads a backtick-quoted terminal symbol.
func (s *Scanner) scanTerminal() token.Token {
	return s.scanQuoted('`', token.Terminal, diag.LexUnterminatedTerminal)
}

func (s *Scanner) scanQuoted(quote byte, kind token.Kind, untermCode diag.Code) token.Token {
	start := s.cursor.Mark()
	s.cursor.Bump() // opening quote
	var value strings.Builder
	for !s.cursor.EOF() {
		b := s.cursor.Peek()
		if b == quote {
			s.cursor.Bump()
			sp := s.cursor.SpanFrom(start)
			tok := s.mk(kind, sp, s.file.Text(sp))
			tok.Value = value.String()
			return tok
		}
		if b == '\n' {
			break
		}
		if b == '\\' {
			value.WriteString(s.scanEscape())
			continue
		}
		value.WriteByte(s.cursor.Bump())
	}
	// Unterminated: degraded-but-present token, never a failure.
	sp := s.cursor.SpanFrom(start)
	s.errLex(untermCode, sp)
	tok := s.mk(kind, sp, s.file.Text(sp))
	tok.Value = value.String()
	return tok
}

// scanEscape decodes one backslash escape and returns its expansion.
// Malformed escapes report a diagnostic and expand to the raw text.
func (s *Scanner) scanEscape() string {
	start := s.cursor.Mark()
	s.cursor.Bump() // '\\'
	if s.cursor.EOF() {
		s.errLex(diag.LexInvalidEscape, s.cursor.SpanFrom(start))
		return "\\"
	}
	b := s.cursor.Bump()
	switch b {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case '0':
		return "\x00"
	case '\\', '"', '`', '\'':
		return string(b)
	case 'x':
		if hex, ok := s.scanHexDigits(2, 2); ok {
			return string(rune(hex))
		}
	case 'u':
		if s.cursor.Peek() == '{' {
			s.cursor.Bump()
			hex, ok := s.scanHexDigits(1, 6)
			if ok && s.cursor.Eat('}') && utf8.ValidRune(rune(hex)) {
				return string(rune(hex))
			}
		} else if hex, ok := s.scanHexDigits(4, 4); ok && utf8.ValidRune(rune(hex)) {
			return string(rune(hex))
		}
	}
	sp := s.cursor.SpanFrom(start)
	s.errLex(diag.LexInvalidEscape, sp)
	return s.file.Text(sp)
}

func (s *Scanner) scanHexDigits(minDigits, maxDigits int) (uint32, bool) {
	var v uint32
	n := 0
	for n < maxDigits && !s.cursor.EOF() && isHexDigit(s.cursor.Peek()) {
		b := s.cursor.Bump()
		v = v<<4 | uint32(hexValue(b))
		n++
	}
	return v, n >= minDigits
}

func hexValue(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	default:
		return b - 'A' + 10
	}
}

// unicodeLiteralFollows reports whether the cursor sits on `U+` followed by
// at least four hex digits.
func (s *Scanner) unicodeLiteralFollows() bool {
	if s.cursor.PeekAt(1) != '+' {
		return false
	}
	for i := uint32(2); i < 6; i++ {
		if !isHexDigit(s.cursor.PeekAt(i)) {
			return false
		}
	}
	return true
}

// scanUnicodeCodePoint reads `U+0041` (4-6 hex digits).
func (s *Scanner) scanUnicodeCodePoint() token.Token {
	start := s.cursor.Mark()
	s.cursor.Bump() // 'U'
	s.cursor.Bump() // '+'
	n := 0
	for n < 6 && !s.cursor.EOF() && isHexDigit(s.cursor.Peek()) {
		s.cursor.Bump()
		n++
	}
	sp := s.cursor.SpanFrom(start)
	tok := s.mk(token.UnicodeCharacterLiteral, sp, s.file.Text(sp))
	tok.Value = tok.Text
	return tok
}

// scanBracketedUnicodeLiteral reads `<TAB>`-style named character literals.
// The caller guarantees the '<' is not an HTML tag start.
func (s *Scanner) scanBracketedUnicodeLiteral() token.Token {
	start := s.cursor.Mark()
	s.cursor.Bump() // '<'
	for !s.cursor.EOF() {
		b := s.cursor.Peek()
		if b == '>' {
			s.cursor.Bump()
			sp := s.cursor.SpanFrom(start)
			tok := s.mk(token.UnicodeCharacterLiteral, sp, s.file.Text(sp))
			tok.Value = strings.Trim(tok.Text, "<>")
			return tok
		}
		if b == '\n' || !(isIdentContinue(b) || b == ' ') {
			break
		}
		s.cursor.Bump()
	}
	sp := s.cursor.SpanFrom(start)
	s.errLex(diag.LexInvalidUnicodeLiteral, sp)
	tok := s.mk(token.UnicodeCharacterLiteral, sp, s.file.Text(sp))
	tok.Value = strings.TrimPrefix(tok.Text, "<")
	return tok
}
