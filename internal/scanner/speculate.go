package scanner

import (
	"slices"

	"gram/internal/token"
)

// state is a full snapshot of the scanner's mutable fields.
type state struct {
	off          uint32
	cur          token.Token
	fullStart    uint32
	indents      []uint32
	pending      []token.Token
	lineHasToken bool
	lineStart    uint32
	trivia       []token.Trivia
	proseMode    bool
	proseFirst   bool
}

func (s *Scanner) save() state {
	return state{
		off:          s.cursor.Off,
		cur:          s.cur,
		fullStart:    s.fullStart,
		indents:      slices.Clone(s.indents),
		pending:      slices.Clone(s.pending),
		lineHasToken: s.lineHasToken,
		lineStart:    s.lineStart,
		trivia:       slices.Clone(s.trivia),
		proseMode:    s.proseMode,
		proseFirst:   s.proseFirst,
	}
}

func (s *Scanner) restore(st state) {
	s.cursor.Off = st.off
	s.cur = st.cur
	s.fullStart = st.fullStart
	s.indents = st.indents
	s.pending = st.pending
	s.lineHasToken = st.lineHasToken
	s.lineStart = st.lineStart
	s.trivia = st.trivia
	s.proseMode = st.proseMode
	s.proseFirst = st.proseFirst
}

// Speculate runs callback against the current scanner position. The position
// is restored when isLookahead is true (pure peek) or when the callback
// reports failure; on success without lookahead the new position is kept.
func (s *Scanner) Speculate(callback func() bool, isLookahead bool) bool {
	saved := s.save()
	result := callback()
	if isLookahead || !result {
		s.restore(saved)
	}
	return result
}
