package source

import (
	"testing"
)

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	c := a.Cover(b)
	if c.Start != 2 || c.End != 8 {
		t.Fatalf("Cover = %v, want 1:2-8", c)
	}

	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Fatalf("Cover across files must be a no-op, got %v", got)
	}
}

func TestSpanContains(t *testing.T) {
	outer := Span{File: 0, Start: 0, End: 10}
	inner := Span{File: 0, Start: 3, End: 7}
	if !outer.Contains(inner) {
		t.Fatalf("%v should contain %v", outer, inner)
	}
	if inner.Contains(outer) {
		t.Fatalf("%v should not contain %v", inner, outer)
	}
}

func TestAddVirtualAndResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.grammar", []byte("A : `x`\nB : `y`\n"))
	f := fs.Get(id)

	if f.Flags&FileVirtual == 0 {
		t.Fatalf("virtual file should carry FileVirtual flag")
	}

	// `B` starts at offset 8 (line 2, column 1).
	start, _ := fs.Resolve(Span{File: id, Start: 8, End: 9})
	if start.Line != 2 || start.Col != 1 {
		t.Fatalf("Resolve = %+v, want line 2 col 1", start)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.grammar", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	cases := []struct {
		line uint32
		want string
	}{
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{4, ""},
		{0, ""},
	}
	for _, tc := range cases {
		if got := f.GetLine(tc.line); got != tc.want {
			t.Errorf("GetLine(%d) = %q, want %q", tc.line, got, tc.want)
		}
	}
}

func TestNormalizeCRLF(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\rc\n"))
	if !changed {
		t.Fatalf("expected CRLF normalization")
	}
	if string(out) != "a\nb\rc\n" {
		t.Fatalf("normalizeCRLF = %q", out)
	}

	out, changed = normalizeCRLF([]byte("plain\n"))
	if changed {
		t.Fatalf("no \\r input should be untouched")
	}
	if string(out) != "plain\n" {
		t.Fatalf("normalizeCRLF = %q", out)
	}
}

func TestRemoveBOM(t *testing.T) {
	out, had := removeBOM([]byte{0xEF, 0xBB, 0xBF, 'x'})
	if !had || string(out) != "x" {
		t.Fatalf("removeBOM = %q, %v", out, had)
	}
	if _, had := removeBOM([]byte("xy")); had {
		t.Fatalf("short input cannot have a BOM")
	}
}

func TestResolveImport(t *testing.T) {
	fs := NewFileSetWithBase("specs")
	id := fs.AddVirtual("specs/es/tokens.grammar", []byte(""))

	got := fs.ResolveImport(id, "common.grammar")
	if got != "specs/es/common.grammar" {
		t.Fatalf("ResolveImport = %q", got)
	}
}

func TestToLineColBinarySearch(t *testing.T) {
	content := []byte("ab\ncd\nef")
	idx := buildLineIndex(content)

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}}, // the \n itself still belongs to line 1
		{3, LineCol{2, 1}},
		{7, LineCol{3, 2}},
	}
	for _, tc := range cases {
		if got := toLineCol(idx, tc.off); got != tc.want {
			t.Errorf("toLineCol(%d) = %+v, want %+v", tc.off, got, tc.want)
		}
	}
}
