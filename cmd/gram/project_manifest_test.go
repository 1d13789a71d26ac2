package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "gram.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadProjectManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[package]
name = "es"

[source]
dir = "grammars"

[emit]
out = "docs"

[diagnostics]
locale = "ru"
messages = "i18n"
max = 50
`)

	manifest, ok, err := loadProjectManifest(dir)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if manifest.Config.Package.Name != "es" {
		t.Fatalf("name = %q", manifest.Config.Package.Name)
	}
	if got := manifest.sourceDir(); got != filepath.Join(dir, "grammars") {
		t.Fatalf("sourceDir = %q", got)
	}
	if got := manifest.messagesDir(); got != filepath.Join(dir, "i18n") {
		t.Fatalf("messagesDir = %q", got)
	}
	if manifest.Config.Diagnostics.Max != 50 || manifest.Config.Diagnostics.Locale != "ru" {
		t.Fatalf("diagnostics = %+v", manifest.Config.Diagnostics)
	}
}

func TestManifestDefaults(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[package]\nname = \"es\"\n")

	manifest, ok, err := loadProjectManifest(dir)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if got := manifest.sourceDir(); got != dir {
		t.Fatalf("sourceDir = %q, want manifest root", got)
	}
	if manifest.messagesDir() != "" {
		t.Fatal("messagesDir must default to empty")
	}

	// nil-манифест: текущий каталог
	var none *projectManifest
	if none.sourceDir() != "." {
		t.Fatal("nil manifest must default to .")
	}
}

func TestManifestRequiresPackageName(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[package]\n")

	if _, ok, err := loadProjectManifest(dir); !ok || err == nil {
		t.Fatalf("want name error, got ok=%v err=%v", ok, err)
	}
}

func TestFindGramTomlWalksUpward(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"es\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := findGramToml(nested)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if path != filepath.Join(root, "gram.toml") {
		t.Fatalf("path = %q", path)
	}
}

func TestMissingManifestIsNotAnError(t *testing.T) {
	// корень файловой системы гарантированно без gram.toml не найдём,
	// поэтому проверяем в пустом временном каталоге через абсолютный старт
	dir := t.TempDir()
	_, ok, err := loadProjectManifest(dir)
	if err != nil {
		t.Fatal(err)
	}
	// выше по дереву манифеста может не быть; ok=false — штатный случай
	_ = ok
}
