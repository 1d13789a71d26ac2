package driver_test

import (
	"context"
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"

	"gram/internal/driver"
)

func openCache(t *testing.T) *driver.DiskCache {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := driver.OpenDiskCache("gram-test")
	if err != nil {
		t.Fatal(err)
	}
	return cache
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache := openCache(t)
	hash := sha256.Sum256([]byte("A : `x`\n"))

	if _, ok, err := cache.Get(hash); err != nil || ok {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}

	want := driver.DiskPayload{Path: "g.grammar", Markdown: "**A** **:** `x`\n\n"}
	if err := cache.Put(hash, want); err != nil {
		t.Fatal(err)
	}
	got, ok, err := cache.Get(hash)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Path != want.Path || got.Markdown != want.Markdown {
		t.Fatalf("payload = %+v", got)
	}
}

func TestDiskCacheIgnoresCorruptEntries(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := driver.OpenDiskCache("gram-test")
	if err != nil {
		t.Fatal(err)
	}
	hash := sha256.Sum256([]byte("junk"))
	if err := cache.Put(hash, driver.DiskPayload{Markdown: "x"}); err != nil {
		t.Fatal(err)
	}

	// затираем запись мусором
	dir := filepath.Join(os.Getenv("XDG_CACHE_HOME"), "gram-test", "emit")
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("entries=%v err=%v", entries, err)
	}
	if err := os.WriteFile(filepath.Join(dir, entries[0].Name()), []byte("not msgpack"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, ok, err := cache.Get(hash); err != nil || ok {
		t.Fatalf("corrupt entry must read as a miss: ok=%v err=%v", ok, err)
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	cache := openCache(t)
	hash := sha256.Sum256([]byte("x"))
	if err := cache.Put(hash, driver.DiskPayload{Markdown: "x"}); err != nil {
		t.Fatal(err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := cache.Get(hash); ok {
		t.Fatal("entry survived DropAll")
	}
}

func TestEmitFilesUsesCache(t *testing.T) {
	cache := openCache(t)
	root := writeFiles(t, map[string]string{
		"g.grammar": "A : `x`\n",
	})
	comp, err := driver.CheckDir(context.Background(), root, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}

	first := driver.EmitFiles(comp, cache, driver.Options{})
	if len(first) != 1 || first[0].FromCache {
		t.Fatalf("first emit = %+v", first)
	}
	second := driver.EmitFiles(comp, cache, driver.Options{})
	if len(second) != 1 || !second[0].FromCache {
		t.Fatalf("second emit must hit the cache: %+v", second)
	}
	if first[0].Markdown != second[0].Markdown {
		t.Fatal("cached document differs from the rendered one")
	}
}

func TestEmitFilesWithoutCache(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"g.grammar": "A : `x`\n",
	})
	comp, err := driver.CheckDir(context.Background(), root, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	out := driver.EmitFiles(comp, nil, driver.Options{})
	if len(out) != 1 || out[0].Markdown == "" {
		t.Fatalf("emit = %+v", out)
	}
}
