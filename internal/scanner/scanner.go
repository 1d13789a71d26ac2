package scanner

import (
	"gram/internal/diag"
	"gram/internal/source"
	"gram/internal/token"
)

// Scanner converts grammar text into classified tokens. Line structure is
// significant: the scanner tracks a stack of indentation widths and
// synthesizes Indent/Dedent/LineTerminator tokens so the parser never
// interprets raw whitespace. HTML-like tag markers are collected as trivia
// on the side and drained by the parser.
type Scanner struct {
	file   *source.File
	cursor Cursor
	opts   Options

	cur       token.Token
	fullStart uint32 // end of the previous token (start of skipped whitespace)

	indents      []uint32      // stack of indentation widths; level 0 is implicit
	pending      []token.Token // synthesized structural tokens awaiting delivery
	lineHasToken bool          // current line already produced a significant token
	lineStart    uint32        // offset of the first byte of the current line
	trivia       []token.Trivia

	proseMode  bool // inside `>` prose: Scan produces fragments
	proseFirst bool // no fragment produced yet for this prose run
}

// New creates a scanner over file.
func New(file *source.File, opts Options) *Scanner {
	if opts.Formatter == nil {
		opts.Formatter = diag.DefaultFormatter{}
	}
	return &Scanner{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Token returns the current token.
func (s *Scanner) Token() token.Token { return s.cur }

// TokenValue returns the decoded text of the current token.
func (s *Scanner) TokenValue() string { return s.cur.Value }

// TokenText returns the raw source text of the current token.
func (s *Scanner) TokenText() string { return s.cur.Text }

// TokenPos returns the start offset of the current token.
func (s *Scanner) TokenPos() uint32 { return s.cur.Span.Start }

// StartPos returns the end offset of the previous token, i.e. the position
// where skipped whitespace before the current token begins.
func (s *Scanner) StartPos() uint32 { return s.fullStart }

// HtmlTrivia drains the markup trivia collected since the last drain.
func (s *Scanner) HtmlTrivia() []token.Trivia {
	tr := s.trivia
	s.trivia = nil
	return tr
}

// Scan advances to the next token and returns it. After EOF the scanner
// keeps returning EOF. Lexical errors are reported through the options
// reporter; Scan itself never fails.
func (s *Scanner) Scan() token.Token {
	s.fullStart = s.cursor.Off
	for {
		if len(s.pending) > 0 {
			s.cur = s.pending[0]
			s.pending = s.pending[1:]
			return s.cur
		}

		if s.proseMode {
			s.cur = s.scanProseFragment()
			return s.cur
		}

		if s.cursor.EOF() {
			s.flushAtEOF()
			if len(s.pending) > 0 {
				continue
			}
			s.cur = s.mk(token.EOF, s.hereSpan(), "")
			return s.cur
		}

		b := s.cursor.Peek()
		switch {
		case b == ' ' || b == '\t':
			s.cursor.Bump()

		case b == '\n':
			start := s.cursor.Mark()
			s.cursor.Bump()
			hadToken := s.lineHasToken
			s.lineHasToken = false
			s.lineStart = s.cursor.Off
			if hadToken {
				s.cur = s.mk(token.LineTerminator, s.cursor.SpanFrom(start), "\n")
				return s.cur
			}

		case b == '/' && s.isCommentStart():
			s.skipComment()

		case b == '<' && s.htmlTagFollows():
			s.scanHtmlTrivia()

		default:
			// First significant token of the line: reconcile indentation first.
			if !s.lineHasToken {
				s.lineHasToken = true
				s.reconcileIndent(s.cursor.Off - s.lineStart)
				if len(s.pending) > 0 {
					s.pending = append(s.pending, s.scanToken())
					continue
				}
			}
			s.cur = s.scanToken()
			return s.cur
		}
	}
}

// reconcileIndent compares the column of the line's first token against the
// indent stack and queues Indent/Dedent tokens. A deeper column pushes one
// Indent; a shallower column pops every deeper level, one Dedent each.
// Blank and comment-only lines never reach here, so they cannot perturb the
// stack.
func (s *Scanner) reconcileIndent(width uint32) {
	top := uint32(0)
	if len(s.indents) > 0 {
		top = s.indents[len(s.indents)-1]
	}
	switch {
	case width > top:
		s.indents = append(s.indents, width)
		s.pending = append(s.pending, s.mk(token.Indent, s.hereSpan(), ""))
	case width < top:
		for len(s.indents) > 0 && s.indents[len(s.indents)-1] > width {
			s.indents = s.indents[:len(s.indents)-1]
			s.pending = append(s.pending, s.mk(token.Dedent, s.hereSpan(), ""))
		}
	}
}

// flushAtEOF queues the final LineTerminator (when the last line carried
// tokens) and one Dedent per open indentation level.
func (s *Scanner) flushAtEOF() {
	if s.lineHasToken {
		s.lineHasToken = false
		s.pending = append(s.pending, s.mk(token.LineTerminator, s.hereSpan(), ""))
	}
	for range s.indents {
		s.pending = append(s.pending, s.mk(token.Dedent, s.hereSpan(), ""))
	}
	s.indents = s.indents[:0]
}

// scanToken reads one non-structural token at the cursor.
func (s *Scanner) scanToken() token.Token {
	start := s.cursor.Mark()
	b := s.cursor.Peek()

	switch {
	case b == 'U' && s.unicodeLiteralFollows():
		return s.scanUnicodeCodePoint()
	case b == 0xE2 && s.cursor.PeekAt(1) == 0x88 && (s.cursor.PeekAt(2) == 0x88 || s.cursor.PeekAt(2) == 0x89):
		// UTF-8 '∈' (E2 88 88) and '∉' (E2 88 89); checked before the
		// identifier case, which would otherwise swallow the bytes.
		s.cursor.Bump()
		s.cursor.Bump()
		if s.cursor.Bump() == 0x88 {
			return s.mkFrom(start, token.ElementOf)
		}
		return s.mkFrom(start, token.NotAnElementOf)
	case isIdentStart(b):
		return s.scanIdentifierOrKeyword()
	case b == '`':
		return s.scanTerminal()
	case b == '"':
		return s.scanString()
	case b == '<' && s.cursor.PeekAt(1) == '-':
		s.cursor.Bump()
		s.cursor.Bump()
		return s.mkFrom(start, token.ElementOf)
	case b == '<' && s.cursor.PeekAt(1) == '!':
		s.cursor.Bump()
		s.cursor.Bump()
		return s.mkFrom(start, token.NotAnElementOf)
	case b == '<':
		// htmlTagFollows was already rejected by Scan; this is <NAME>.
		return s.scanBracketedUnicodeLiteral()
	case b == '#':
		return s.scanLinkReference()
	}

	s.cursor.Bump()
	switch b {
	case '@':
		return s.mkFrom(start, token.At)
	case '[':
		return s.mkFrom(start, token.OpenBracket)
	case ']':
		return s.mkFrom(start, token.CloseBracket)
	case '(':
		return s.mkFrom(start, token.OpenParen)
	case ')':
		return s.mkFrom(start, token.CloseParen)
	case '{':
		return s.mkFrom(start, token.OpenBrace)
	case '}':
		return s.mkFrom(start, token.CloseBrace)
	case ',':
		return s.mkFrom(start, token.Comma)
	case '?':
		return s.mkFrom(start, token.Question)
	case '+':
		return s.mkFrom(start, token.Plus)
	case '~':
		return s.mkFrom(start, token.Tilde)
	case '>':
		return s.mkFrom(start, token.GreaterThan)
	case ':':
		kind := token.Colon
		if s.cursor.Eat(':') {
			kind = token.ColonColon
			if s.cursor.Eat(':') {
				kind = token.ColonColonColon
			}
		}
		return s.mkFrom(start, kind)
	case '=':
		if s.cursor.Eat('=') {
			return s.mkFrom(start, token.EqualsEquals)
		}
	case '!':
		if s.cursor.Eat('=') {
			return s.mkFrom(start, token.ExclamationEquals)
		}
	}

	sp := s.cursor.SpanFrom(start)
	s.errLex(diag.LexUnknownChar, sp, s.file.Text(sp))
	return s.mk(token.Invalid, sp, s.file.Text(sp))
}

func (s *Scanner) scanIdentifierOrKeyword() token.Token {
	start := s.cursor.Mark()
	for !s.cursor.EOF() && isIdentContinue(s.cursor.Peek()) {
		s.cursor.Bump()
	}
	sp := s.cursor.SpanFrom(start)
	text := s.file.Text(sp)
	tok := s.mk(token.LookupKeyword(text), sp, text)
	tok.Value = text
	return tok
}

func (s *Scanner) scanLinkReference() token.Token {
	start := s.cursor.Mark()
	s.cursor.Bump() // '#'
	for !s.cursor.EOF() {
		b := s.cursor.Peek()
		if !isIdentContinue(b) && b != '-' && b != '.' {
			break
		}
		s.cursor.Bump()
	}
	sp := s.cursor.SpanFrom(start)
	tok := s.mk(token.LinkReference, sp, s.file.Text(sp))
	tok.Value = tok.Text[1:] // strip '#'
	return tok
}

func (s *Scanner) isCommentStart() bool {
	b0, b1, ok := s.cursor.Peek2()
	return ok && b0 == '/' && (b1 == '/' || b1 == '*')
}

// skipComment consumes a // line comment or a /* */ block comment.
// Comments are insignificant: they do not count as line tokens and do not
// perturb the indent stack.
func (s *Scanner) skipComment() {
	s.cursor.Bump() // '/'
	if s.cursor.Bump() == '/' {
		for !s.cursor.EOF() && s.cursor.Peek() != '\n' {
			s.cursor.Bump()
		}
		return
	}
	// block comment; lines inside are swallowed whole
	for !s.cursor.EOF() {
		if b0, b1, ok := s.cursor.Peek2(); ok && b0 == '*' && b1 == '/' {
			s.cursor.Bump()
			s.cursor.Bump()
			return
		}
		if s.cursor.Bump() == '\n' {
			s.lineStart = s.cursor.Off
		}
	}
}

func (s *Scanner) mk(kind token.Kind, sp source.Span, text string) token.Token {
	return token.Token{Kind: kind, Span: sp, Text: text}
}

func (s *Scanner) mkFrom(start Mark, kind token.Kind) token.Token {
	sp := s.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: s.file.Text(sp)}
}

func (s *Scanner) hereSpan() source.Span {
	return source.Span{File: s.file.ID, Start: s.cursor.Off, End: s.cursor.Off}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
