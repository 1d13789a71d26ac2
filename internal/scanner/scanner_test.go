package scanner_test

import (
	"testing"

	"gram/internal/diag"
	"gram/internal/scanner"
	"gram/internal/source"
	"gram/internal/token"
)

// testReporter собирает все диагностики, полученные от сканера.
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) errorCount() int {
	n := 0
	for _, d := range r.diagnostics {
		if d.Severity == diag.SevError {
			n++
		}
	}
	return n
}

func makeScanner(input string) (*scanner.Scanner, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.grammar", []byte(input))
	reporter := &testReporter{}
	s := scanner.New(fs.Get(fileID), scanner.Options{Reporter: reporter})
	return s, reporter
}

func collectKinds(s *scanner.Scanner) []token.Kind {
	var kinds []token.Kind
	for {
		tok := s.Scan()
		kinds = append(kinds, tok.Kind)
		if tok.Kind == token.EOF {
			return kinds
		}
	}
}

func expectKinds(t *testing.T, input string, want []token.Kind) {
	t.Helper()
	s, reporter := makeScanner(input)
	got := collectKinds(s)
	// EOF не сравниваем
	got = got[:len(got)-1]

	if len(got) != len(want) {
		t.Fatalf("input %q: got %d tokens %v, want %d %v (diagnostics: %v)",
			input, len(got), got, len(want), want, reporter.diagnostics)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("input %q: token %d = %v, want %v (all: %v)", input, i, got[i], want[i], got)
		}
	}
}

func TestScanSimpleProduction(t *testing.T) {
	expectKinds(t, "A : `x`", []token.Kind{
		token.Identifier, token.Colon, token.Terminal, token.LineTerminator,
	})
}

func TestScanIndentedContinuation(t *testing.T) {
	expectKinds(t, "A : `x`\n    `y`", []token.Kind{
		token.Identifier, token.Colon, token.Terminal, token.LineTerminator,
		token.Indent, token.Terminal, token.LineTerminator,
		token.Dedent,
	})
}

func TestScanNestedDedents(t *testing.T) {
	// Two levels opened, both closed at EOF.
	expectKinds(t, "A :\n  B\n    C", []token.Kind{
		token.Identifier, token.Colon, token.LineTerminator,
		token.Indent, token.Identifier, token.LineTerminator,
		token.Indent, token.Identifier, token.LineTerminator,
		token.Dedent, token.Dedent,
	})
}

func TestBlankAndCommentLinesDoNotPerturbIndent(t *testing.T) {
	expectKinds(t, "A :\n  `x`\n\n  // comment line\n  `y`", []token.Kind{
		token.Identifier, token.Colon, token.LineTerminator,
		token.Indent, token.Terminal, token.LineTerminator,
		token.Terminal, token.LineTerminator,
		token.Dedent,
	})
}

func TestColonArities(t *testing.T) {
	expectKinds(t, "A :: `x`\nB ::: `y`", []token.Kind{
		token.Identifier, token.ColonColon, token.Terminal, token.LineTerminator,
		token.Identifier, token.ColonColonColon, token.Terminal, token.LineTerminator,
	})
}

func TestKeywordsAreContextual(t *testing.T) {
	expectKinds(t, "A : B but not `x`", []token.Kind{
		token.Identifier, token.Colon, token.Identifier,
		token.ButKeyword, token.NotKeyword, token.Terminal, token.LineTerminator,
	})
}

func TestStringEscapeDecoding(t *testing.T) {
	s, reporter := makeScanner(`@import "a\nAb"`)
	s.Scan() // @
	s.Scan() // import
	tok := s.Scan()
	if tok.Kind != token.StringLiteral {
		t.Fatalf("kind = %v, want StringLiteral", tok.Kind)
	}
	if tok.Value != "a\nAb" {
		t.Fatalf("Value = %q, want %q", tok.Value, "a\nAb")
	}
	if reporter.errorCount() != 0 {
		t.Fatalf("unexpected diagnostics: %v", reporter.diagnostics)
	}
}

func TestUnterminatedTerminalRecovers(t *testing.T) {
	s, reporter := makeScanner("A : `x\nB : `y`")
	var kinds []token.Kind
	for {
		tok := s.Scan()
		kinds = append(kinds, tok.Kind)
		if tok.Kind == token.EOF {
			break
		}
	}
	if reporter.errorCount() != 1 {
		t.Fatalf("errors = %d, want 1 (%v)", reporter.errorCount(), reporter.diagnostics)
	}
	// Degraded token is still a Terminal; the next line scans cleanly.
	want := []token.Kind{
		token.Identifier, token.Colon, token.Terminal, token.LineTerminator,
		token.Identifier, token.Colon, token.Terminal, token.LineTerminator,
		token.EOF,
	}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", kinds, want)
		}
	}
}

func TestUnicodeCharacterLiterals(t *testing.T) {
	s, _ := makeScanner("A : <TAB> U+0041 through U+005A")
	s.Scan() // A
	s.Scan() // :

	tab := s.Scan()
	if tab.Kind != token.UnicodeCharacterLiteral || tab.Value != "TAB" {
		t.Fatalf("got %v %q", tab.Kind, tab.Value)
	}
	lo := s.Scan()
	if lo.Kind != token.UnicodeCharacterLiteral || lo.Value != "U+0041" {
		t.Fatalf("got %v %q", lo.Kind, lo.Value)
	}
	if through := s.Scan(); through.Kind != token.ThroughKeyword {
		t.Fatalf("got %v, want ThroughKeyword", through.Kind)
	}
	if hi := s.Scan(); hi.Kind != token.UnicodeCharacterLiteral {
		t.Fatalf("got %v", hi.Kind)
	}
}

func TestElementOfSpellings(t *testing.T) {
	expectKinds(t, "[lookahead <- {`a`}]", []token.Kind{
		token.OpenBracket, token.LookaheadKeyword, token.ElementOf,
		token.OpenBrace, token.Terminal, token.CloseBrace, token.CloseBracket,
		token.LineTerminator,
	})
	expectKinds(t, "[lookahead ∉ {`a`}]", []token.Kind{
		token.OpenBracket, token.LookaheadKeyword, token.NotAnElementOf,
		token.OpenBrace, token.Terminal, token.CloseBrace, token.CloseBracket,
		token.LineTerminator,
	})
}

func TestLinkReference(t *testing.T) {
	s, _ := makeScanner("A : `x` #sec-a")
	for i := 0; i < 3; i++ {
		s.Scan()
	}
	tok := s.Scan()
	if tok.Kind != token.LinkReference || tok.Value != "sec-a" {
		t.Fatalf("got %v %q", tok.Kind, tok.Value)
	}
}

func TestHtmlTriviaCollected(t *testing.T) {
	s, _ := makeScanner("<ins>\nA : `x`\n</ins>")
	first := s.Scan()
	if first.Kind != token.Identifier {
		t.Fatalf("first token = %v, want Identifier (trivia must not be a token)", first.Kind)
	}
	tr := s.HtmlTrivia()
	if len(tr) != 1 || tr[0].Kind != token.HtmlOpenTagTrivia || tr[0].TagName != "ins" {
		t.Fatalf("trivia = %+v", tr)
	}
	// Drain is destructive.
	if len(s.HtmlTrivia()) != 0 {
		t.Fatal("second drain should be empty")
	}
}

func TestProseFragments(t *testing.T) {
	s, _ := makeScanner("> any |Expression| or `this` text")
	s.Scan() // '>'
	s.EnterProse()

	head := s.Scan()
	if head.Kind != token.ProseHead {
		t.Fatalf("got %v, want ProseHead", head.Kind)
	}
	ref := s.Scan()
	if ref.Kind != token.Identifier || ref.Value != "Expression" {
		t.Fatalf("got %v %q", ref.Kind, ref.Value)
	}
	mid := s.Scan()
	if mid.Kind != token.ProseMiddle {
		t.Fatalf("got %v, want ProseMiddle", mid.Kind)
	}
	term := s.Scan()
	if term.Kind != token.Terminal || term.Value != "this" {
		t.Fatalf("got %v %q", term.Kind, term.Value)
	}
	tail := s.Scan()
	if tail.Kind != token.ProseTail {
		t.Fatalf("got %v, want ProseTail", tail.Kind)
	}
	if s.InProse() {
		t.Fatal("prose mode should end with the tail fragment")
	}
}

func TestProseFullFragment(t *testing.T) {
	s, _ := makeScanner("> plain text only")
	s.Scan()
	s.EnterProse()
	frag := s.Scan()
	if frag.Kind != token.ProseFull {
		t.Fatalf("got %v, want ProseFull", frag.Kind)
	}
}

func TestSpeculateLookaheadRestores(t *testing.T) {
	s, _ := makeScanner("A : `x`")
	s.Scan() // A

	result := s.Speculate(func() bool {
		tok := s.Scan()
		return tok.Kind == token.Colon
	}, true)
	if !result {
		t.Fatal("callback saw ':' and returned true")
	}
	// Lookahead must restore: next scan sees ':' again.
	if tok := s.Scan(); tok.Kind != token.Colon {
		t.Fatalf("position not restored, got %v", tok.Kind)
	}
}

func TestSpeculateCommitsOnSuccess(t *testing.T) {
	s, _ := makeScanner("A : `x`")
	s.Scan() // A

	s.Speculate(func() bool {
		s.Scan() // ':'
		return true
	}, false)
	// Committed: next token is the terminal.
	if tok := s.Scan(); tok.Kind != token.Terminal {
		t.Fatalf("state not committed, got %v", tok.Kind)
	}
}

func TestSpeculateFailureRestores(t *testing.T) {
	s, _ := makeScanner("A : `x`")
	s.Scan() // A

	s.Speculate(func() bool {
		s.Scan()
		s.Scan()
		return false
	}, false)
	if tok := s.Scan(); tok.Kind != token.Colon {
		t.Fatalf("failed speculation must restore, got %v", tok.Kind)
	}
}

func TestUnknownCharacterDiagnostic(t *testing.T) {
	s, reporter := makeScanner("A ; B")
	var kinds []token.Kind
	for {
		tok := s.Scan()
		kinds = append(kinds, tok.Kind)
		if tok.Kind == token.EOF {
			break
		}
	}
	if reporter.errorCount() != 1 {
		t.Fatalf("errors = %d, want 1", reporter.errorCount())
	}
	if reporter.diagnostics[0].Code != diag.LexUnknownChar {
		t.Fatalf("code = %v", reporter.diagnostics[0].Code)
	}
	// ';' became an Invalid token, scanning continued to 'B'.
	if kinds[1] != token.Invalid || kinds[2] != token.Identifier {
		t.Fatalf("kinds = %v", kinds)
	}
}
