package token

import "testing"

func TestKindNamesComplete(t *testing.T) {
	for k := Kind(0); k < kindCount; k++ {
		if k.String() == "unknown" {
			t.Errorf("kind %d has no display name", k)
		}
	}
}

func TestLookupKeyword(t *testing.T) {
	cases := []struct {
		text string
		want Kind
	}{
		{"lookahead", LookaheadKeyword},
		{"one", OneKeyword},
		{"of", OfKeyword},
		{"through", ThroughKeyword},
		{"Lookahead", Identifier}, // keywords are case-sensitive
		{"Statement", Identifier},
	}
	for _, tc := range cases {
		if got := LookupKeyword(tc.text); got != tc.want {
			t.Errorf("LookupKeyword(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestTokenClassifiers(t *testing.T) {
	if !(Token{Kind: Terminal}).IsLiteral() {
		t.Error("Terminal should be a literal")
	}
	if (Token{Kind: Colon}).IsLiteral() {
		t.Error("Colon is not a literal")
	}
	if !(Token{Kind: Indent}).IsStructural() {
		t.Error("Indent is structural")
	}
	if !(Token{Kind: OneKeyword}).IsKeyword() {
		t.Error("'one' is a keyword")
	}
	if !(Token{Kind: ProseMiddle}).IsProseFragment() {
		t.Error("ProseMiddle is a prose fragment")
	}
}

func TestTriviaMatches(t *testing.T) {
	open := Trivia{Kind: HtmlOpenTagTrivia, TagName: "ins"}
	closeT := Trivia{Kind: HtmlCloseTagTrivia, TagName: "ins"}
	other := Trivia{Kind: HtmlCloseTagTrivia, TagName: "del"}

	if !open.Matches(closeT) {
		t.Error("<ins> should match </ins>")
	}
	if open.Matches(other) {
		t.Error("<ins> must not match </del>")
	}
	if closeT.Matches(open) {
		t.Error("close/open order must not match")
	}
}
