package messages_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"gram/internal/diag"
	"gram/internal/messages"
)

func writeCatalog(t *testing.T, dir, locale, body string) {
	t.Helper()
	path := filepath.Join(dir, "messages."+locale+".json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestEnglishFallsBackToBuiltins(t *testing.T) {
	cat := messages.English()
	got := cat.Format(diag.ChkUndefinedNonterminal, "Expr")
	if got != `cannot find name "Expr"` {
		t.Fatalf("Format = %q", got)
	}
}

func TestOverrideByTemplateKey(t *testing.T) {
	cat, err := messages.Parse([]byte(`{"cannot find name %q": "имя %q не найдено"}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(cat.Warnings()) != 0 {
		t.Fatalf("warnings: %v", cat.Warnings())
	}
	if got := cat.Format(diag.ChkUndefinedNonterminal, "Expr"); got != `имя "Expr" не найдено` {
		t.Fatalf("Format = %q", got)
	}
	// Codes the catalog does not override keep their English text.
	if got := cat.Format(diag.ChkDuplicateParameter, "In"); got != `duplicate parameter "In"` {
		t.Fatalf("Format = %q", got)
	}
}

func TestObsoleteNumericKey(t *testing.T) {
	cat, err := messages.Parse([]byte(`{"3001": "numeric override %q"}`))
	if err != nil {
		t.Fatal(err)
	}
	if got := cat.Format(diag.ChkUndefinedNonterminal, "X"); got != `numeric override "X"` {
		t.Fatalf("Format = %q", got)
	}
}

func TestUnknownKeysWarnButLoad(t *testing.T) {
	cat, err := messages.Parse([]byte(`{
		"9999": "gone",
		"no such template %s": "also gone",
		"cannot find name %q": "kept %q"
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(cat.Warnings()) != 2 {
		t.Fatalf("warnings = %v, want 2", cat.Warnings())
	}
	if got := cat.Format(diag.ChkUndefinedNonterminal, "X"); got != `kept "X"` {
		t.Fatalf("Format = %q", got)
	}
}

func TestObjectEntriesValidate(t *testing.T) {
	cat, err := messages.Parse([]byte(`{
		"cannot find name %q": {"code": 3001, "kind": "error"},
		"parameter %q is never used": {"code": 3006, "kind": "error"}
	}`))
	if err != nil {
		t.Fatal(err)
	}
	// 3006 is a warning; declaring it an error is flagged, not fatal.
	if len(cat.Warnings()) != 1 || !strings.Contains(cat.Warnings()[0], "3006") {
		t.Fatalf("warnings = %v", cat.Warnings())
	}
}

func TestMalformedJSONFails(t *testing.T) {
	if _, err := messages.Parse([]byte(`{`)); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadDirNegotiatesLocale(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "ru", `{"cannot find name %q": "имя %q не найдено"}`)
	writeCatalog(t, dir, "de", `{"cannot find name %q": "Name %q nicht gefunden"}`)

	cat, err := messages.LoadDir(dir, "ru-RU")
	if err != nil {
		t.Fatal(err)
	}
	if base, _ := cat.Tag().Base(); base.String() != "ru" {
		t.Fatalf("tag = %v", cat.Tag())
	}
	if got := cat.Format(diag.ChkUndefinedNonterminal, "X"); got != `имя "X" не найдено` {
		t.Fatalf("Format = %q", got)
	}
}

func TestLoadDirFallsBackToEnglish(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "ru", `{"cannot find name %q": "имя %q не найдено"}`)

	cat, err := messages.LoadDir(dir, "ja")
	if err != nil {
		t.Fatal(err)
	}
	if cat.Tag() != language.English {
		t.Fatalf("tag = %v, want English", cat.Tag())
	}
	if got := cat.Format(diag.ChkUndefinedNonterminal, "X"); got != `cannot find name "X"` {
		t.Fatalf("Format = %q", got)
	}
}

func TestLoadDirEmptyLocale(t *testing.T) {
	cat, err := messages.LoadDir(t.TempDir(), "")
	if err != nil {
		t.Fatal(err)
	}
	if cat.Tag() != language.English {
		t.Fatalf("tag = %v", cat.Tag())
	}
}
