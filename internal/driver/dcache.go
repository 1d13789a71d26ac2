package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// emitCacheSchemaVersion поднимается при любом несовместимом изменении
// DiskPayload; старые записи тогда просто промахиваются.
const emitCacheSchemaVersion uint16 = 1

// DiskPayload is one cached emit result, keyed by the source file's content
// hash: same bytes in, same document out, so the hash alone is the key.
type DiskPayload struct {
	Schema   uint16 `msgpack:"schema"`
	Path     string `msgpack:"path"`
	Markdown string `msgpack:"markdown"`
}

// DiskCache stores emitted documents under the user cache directory.
// Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache opens (creating if needed) the emit cache for app under
// XDG_CACHE_HOME, falling back to ~/.cache.
func OpenDiskCache(app string) (*DiskCache, error) {
	root := os.Getenv("XDG_CACHE_HOME")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("emit cache: %w", err)
		}
		root = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(root, app, "emit")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("emit cache: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(hash [sha256.Size]byte) string {
	return filepath.Join(c.dir, hex.EncodeToString(hash[:])+".mp")
}

// Get returns the cached payload for hash. A miss, a schema mismatch, or a
// corrupt entry all come back as (nil, false, nil): the cache never fails a
// run, the caller just re-emits.
func (c *DiskCache) Get(hash [sha256.Size]byte) (*DiskPayload, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	// #nosec G304 -- путь строится из hex-хэша внутри каталога кэша
	data, err := os.ReadFile(c.pathFor(hash))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var payload DiskPayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, false, nil
	}
	if payload.Schema != emitCacheSchemaVersion {
		return nil, false, nil
	}
	return &payload, true, nil
}

// Put stores payload atomically: encode to a temp file, then rename over
// the final name, so readers never see a half-written entry.
func (c *DiskCache) Put(hash [sha256.Size]byte, payload DiskPayload) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = emitCacheSchemaVersion
	tmp, err := os.CreateTemp(c.dir, "emit-*.tmp")
	if err != nil {
		return err
	}
	enc := msgpack.NewEncoder(tmp)
	if err := enc.Encode(&payload); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), c.pathFor(hash))
}

// DropAll discards every cached entry.
func (c *DiskCache) DropAll() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old"
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
