package emit_test

import (
	"context"
	"strings"
	"testing"

	"gram/internal/ast"
	"gram/internal/emit"
	"gram/internal/parser"
	"gram/internal/source"
)

func render(t *testing.T, input string) string {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("g.grammar", []byte(input))
	sf, err := parser.ParseSourceFile(context.Background(), fs.Get(id), parser.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if sf.Bag.Len() != 0 {
		t.Fatalf("parse diagnostics: %v", sf.Bag.Items())
	}
	return emit.Markdown(sf)
}

func TestInlineProduction(t *testing.T) {
	got := render(t, "A : `x` B?")
	want := "**A** **:** `x` *B*<sub>opt</sub>\n\n"
	if got != want {
		t.Fatalf("markdown = %q, want %q", got, want)
	}
}

func TestColonArityIsPreserved(t *testing.T) {
	got := render(t, "A ::: `x`")
	if !strings.Contains(got, "**A** **:::**") {
		t.Fatalf("markdown = %q", got)
	}
}

func TestIndentedAlternatives(t *testing.T) {
	got := render(t, "A[In] :\n  [+In] `x` #sec-a\n  `y`")
	want := "**A**<sub>[In]</sub> **:**\n" +
		"&emsp;*\\[+In\\]* `x` <a id=\"sec-a\"></a>\n" +
		"&emsp;`y`\n\n"
	if got != want {
		t.Fatalf("markdown = %q, want %q", got, want)
	}
}

func TestOneOfBecomesTable(t *testing.T) {
	got := render(t, "A :: one of `a` `b` `c`")
	if !strings.Contains(got, "**A** **::** **one of**") {
		t.Fatalf("missing head in %q", got)
	}
	if !strings.Contains(got, "| `a` | `b` | `c` |\n| --- | --- | --- |\n") {
		t.Fatalf("missing table in %q", got)
	}
}

func TestOneOfTableWrapsRows(t *testing.T) {
	got := render(t, "D : one of\n  `0` `1` `2` `3` `4` `5` `6` `7`\n  `8` `9`")
	if !strings.Contains(got, "| `0` | `1` | `2` | `3` | `4` | `5` | `6` | `7` |") {
		t.Fatalf("missing header row in %q", got)
	}
	// вторая строка добивается пустыми ячейками до ширины таблицы
	if !strings.Contains(got, "| `8` | `9` |  |  |  |  |  |  |") {
		t.Fatalf("missing padded row in %q", got)
	}
}

func TestLookaheadAndButNot(t *testing.T) {
	got := render(t, "A : [lookahead ∉ {`a`, `b`}] B but not one of C or D")
	if !strings.Contains(got, "*\\[lookahead ∉ { `a`, `b` }\\]*") {
		t.Fatalf("missing lookahead in %q", got)
	}
	if !strings.Contains(got, "*B* **but not** **one of** *C* **or** *D*") {
		t.Fatalf("missing but-not in %q", got)
	}
}

func TestProseKeepsTextAndReferences(t *testing.T) {
	got := render(t, "A : > any |B| reference")
	if !strings.Contains(got, "*B*") {
		t.Fatalf("missing embedded reference in %q", got)
	}
	if !strings.Contains(got, "any ") || !strings.Contains(got, " reference") {
		t.Fatalf("prose text not kept verbatim in %q", got)
	}
}

func TestHtmlTriviaPassesThrough(t *testing.T) {
	got := render(t, "<ins>\nA : `x`\n</ins>")
	if !strings.Contains(got, "<ins>") || !strings.Contains(got, "</ins>") {
		t.Fatalf("markup tags lost in %q", got)
	}
	if strings.Index(got, "<ins>") > strings.Index(got, "**A**") {
		t.Fatalf("open tag must precede the production in %q", got)
	}
}

func TestImportsAndDefines(t *testing.T) {
	got := render(t, "@import \"lexical.grammar\"\n@define noUnusedParameters true\nA : `x`")
	if !strings.Contains(got, "*imports `lexical.grammar`*") {
		t.Fatalf("missing import line in %q", got)
	}
	if strings.Contains(got, "noUnusedParameters") {
		t.Fatalf("defines must not render in %q", got)
	}
}

func TestUnicodeRange(t *testing.T) {
	got := render(t, "A : U+0000 through U+001F")
	if !strings.Contains(got, "U+0000 **through** U+001F") {
		t.Fatalf("markdown = %q", got)
	}
}

func TestDeterministic(t *testing.T) {
	const input = "A[In] :\n  [+In] `x`\n  [empty]\nB : one of `a` `b`"
	first := render(t, input)
	for i := 0; i < 3; i++ {
		if again := render(t, input); again != first {
			t.Fatal("emitter output must be deterministic")
		}
	}
}

func TestEmptyFile(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("g.grammar", nil)
	sf, err := parser.ParseSourceFile(context.Background(), fs.Get(id), parser.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := emit.Markdown(sf); got != "" {
		t.Fatalf("markdown = %q, want empty", got)
	}
}

func TestInvalidSymbolIsSkipped(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("g.grammar", []byte("A : [junk]\nB : `y`"))
	sf, err := parser.ParseSourceFile(context.Background(), fs.Get(id), parser.Options{})
	if err != nil {
		t.Fatal(err)
	}
	var _ = sf.Elements[0].(*ast.Production)
	got := emit.Markdown(sf)
	if !strings.Contains(got, "**B** **:** `y`") {
		t.Fatalf("later production lost in %q", got)
	}
	if strings.Contains(got, "junk") {
		t.Fatalf("invalid range must not render in %q", got)
	}
}
