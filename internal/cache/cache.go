// Package cache persists lint results between check runs.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/diag"
)

// schemaVersion must be bumped whenever Payload or diag.Diagnostic changes shape.
const schemaVersion uint16 = 1

// Key addresses a payload: sha256 of the file content and the lint options.
type Key [32]byte

// KeyFor derives the cache key for content scanned with the given options
// fingerprint.
func KeyFor(content []byte, fingerprint string) Key {
	h := sha256.New()
	h.Write(content)
	h.Write([]byte{0})
	h.Write([]byte(fingerprint))
	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

func (k Key) String() string { return hex.EncodeToString(k[:]) }

// Payload is the unit stored per key.
type Payload struct {
	Schema      uint16
	Path        string
	Hash        [32]byte
	Diagnostics []diag.Diagnostic
}

// DiskCache хранит результаты lint по ключу на диске.
// Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// Open returns a cache rooted at $XDG_CACHE_HOME/<app>/lint, falling back to
// ~/.cache when XDG_CACHE_HOME is unset.
func Open(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cache: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDir(filepath.Join(base, app, "lint"))
}

// OpenDir returns a cache rooted at dir, creating it if needed.
func OpenDir(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir reports the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key Key) string {
	return filepath.Join(c.dir, key.String()+".mp")
}

// Put serializes payload and atomically replaces any previous entry.
func (c *DiskCache) Put(key Key, payload *Payload) (err error) {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	f, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// after a successful rename the temp name is gone
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	stored := *payload
	stored.Schema = schemaVersion
	if err := msgpack.NewEncoder(f).Encode(&stored); err != nil {
		_ = f.Close()
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get loads the payload for key. Missing entries, undecodable entries and
// entries written with another schema are all reported as a miss.
func (c *DiskCache) Get(key Key) (*Payload, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	// #nosec G304 -- the name is derived from a hex digest
	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var out Payload
	if err := msgpack.Unmarshal(data, &out); err != nil {
		return nil, false, nil
	}
	if out.Schema != schemaVersion {
		return nil, false, nil
	}
	return &out, true, nil
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.RemoveAll(c.dir); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
