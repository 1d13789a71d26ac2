package diag

import (
	"testing"

	"gram/internal/source"
)

func mk(code Code, sev Severity, start uint32) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  DefaultFormatter{}.Format(code),
		Primary:  source.Span{Start: start, End: start + 1},
	}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	if !b.Add(mk(SynExpected, SevError, 0)) {
		t.Fatal("first Add should succeed")
	}
	if !b.Add(mk(SynExpected, SevError, 1)) {
		t.Fatal("second Add should succeed")
	}
	if b.Add(mk(SynExpected, SevError, 2)) {
		t.Fatal("Add past the limit should report false")
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
}

func TestBagSortOrder(t *testing.T) {
	b := NewBag(10)
	b.Add(mk(SynExpected, SevError, 20))
	b.Add(mk(ChkUnusedParameter, SevWarning, 5))
	b.Add(mk(LexUnknownChar, SevError, 5))
	b.Sort()

	items := b.Items()
	if items[0].Primary.Start != 5 || items[0].Severity != SevError {
		t.Fatalf("errors must sort before warnings at the same offset: %+v", items[0])
	}
	if items[2].Primary.Start != 20 {
		t.Fatalf("later offsets must sort last: %+v", items[2])
	}
}

func TestBagDedup(t *testing.T) {
	b := NewBag(10)
	d := mk(LexUnknownChar, SevError, 3)
	b.Add(d)
	b.Add(d)
	b.Add(mk(LexUnknownChar, SevError, 4))
	b.Dedup()
	if b.Len() != 2 {
		t.Fatalf("Dedup left %d items, want 2", b.Len())
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(mk(SynExpected, SevError, 0))
	other := NewBag(2)
	other.Add(mk(SynExpected, SevError, 1))
	other.Add(mk(SynExpected, SevError, 2))

	a.Merge(other)
	if a.Len() != 3 {
		t.Fatalf("Merge lost items: %d", a.Len())
	}
	a.Merge(nil) // must be a no-op
	if a.Len() != 3 {
		t.Fatalf("Merge(nil) changed the bag")
	}
}

func TestSeverityQueries(t *testing.T) {
	b := NewBag(10)
	b.Add(mk(ChkUnusedParameter, SevWarning, 0))
	if b.HasErrors() {
		t.Fatal("warning-only bag must not report errors")
	}
	if !b.HasWarnings() {
		t.Fatal("HasWarnings should see the warning")
	}
	b.Add(mk(LexUnknownChar, SevError, 1))
	if !b.HasErrors() || b.ErrorCount() != 1 {
		t.Fatalf("ErrorCount = %d, want 1", b.ErrorCount())
	}
}

func TestDefaultFormatter(t *testing.T) {
	got := DefaultFormatter{}.Format(ChkUndefinedNonterminal, "Statement")
	want := `cannot find name "Statement"`
	if got != want {
		t.Fatalf("Format = %q, want %q", got, want)
	}
	if (DefaultFormatter{}).Format(LexUnterminatedString) != "unterminated string literal" {
		t.Fatal("zero-arg format must return the raw template")
	}
}

func TestCodeID(t *testing.T) {
	if SynExpected.ID() != "GD2001" {
		t.Fatalf("ID = %q", SynExpected.ID())
	}
}
