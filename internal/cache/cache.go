// Package cache keeps evaluated results on disk, keyed by the normalized
// expression and everything else that can change its value.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"bigcalc/bignum"
)

// Current schema version - increment when Payload format changes.
const schemaVersion uint16 = 1

// Key identifies a cached result.
type Key [sha256.Size]byte

// String returns the key in hex.
func (k Key) String() string { return hex.EncodeToString(k[:]) }

// KeyFor hashes a normalized expression together with the variables it is
// evaluated against and the digit limit in effect.
func KeyFor(expr string, vars map[string]bignum.BigInt, maxDigits int) Key {
	h := sha256.New()
	fmt.Fprintf(h, "v%d\x00%d\x00%s\x00", schemaVersion, maxDigits, expr)
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		fmt.Fprintf(h, "%s=%s\x00", name, vars[name])
	}
	var k Key
	h.Sum(k[:0])
	return k
}

// Payload is what is stored per key.
type Payload struct {
	Schema  uint16
	Expr    string
	Result  bignum.BigInt
	Digits  int
	Created time.Time
}

// DiskCache stores payloads as msgpack files under one directory.
// Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DefaultDir returns $XDG_CACHE_HOME/app, falling back to ~/.cache/app.
func DefaultDir(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, app), nil
}

// Open returns a cache rooted at dir, creating it if needed.
// An empty dir means DefaultDir("bigcalc").
func Open(dir string) (*DiskCache, error) {
	if dir == "" {
		d, err := DefaultDir("bigcalc")
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key Key) string {
	hexKey := key.String()
	return filepath.Join(c.dir, "results", hexKey[:2], hexKey+".mp")
}

// Put writes payload under key. The file is replaced atomically.
// A nil cache ignores the call.
func (c *DiskCache) Put(key Key, payload *Payload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	stored := *payload
	stored.Schema = schemaVersion
	if stored.Created.IsZero() {
		stored.Created = time.Now()
	}
	if err = msgpack.NewEncoder(f).Encode(&stored); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads the payload stored under key. It reports false on a miss,
// including entries written with another schema version.
func (c *DiskCache) Get(key Key, out *Payload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	var p Payload
	if err := msgpack.NewDecoder(f).Decode(&p); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, fmt.Errorf("cache: decode %s: %w", key, err)
	}
	if p.Schema != schemaVersion {
		return false, nil
	}
	*out = p
	return true, nil
}

// DropAll removes every cached entry and leaves an empty directory.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405.000000000")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return os.MkdirAll(c.dir, 0o755)
		}
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
