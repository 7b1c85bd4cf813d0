package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fortio.org/safecast"
	"github.com/gofrs/flock"
	"github.com/vmihailenco/msgpack/v5"

	"builtinreg/internal/builtins"
)

// bump when cachePayload changes shape
const cacheSchemaVersion uint16 = 1

// Digest is the SHA-256 of a table file's content.
type Digest [32]byte

// DigestOf hashes table file content.
func DigestOf(data []byte) Digest { return sha256.Sum256(data) }

// Cache stores decoded tables on disk keyed by content digest. Writers take a
// file lock so concurrent processes never see a half-written entry.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Schema  uint16
	Source  string
	Count   uint32
	Records []builtins.Descriptor
}

// OpenCache opens the cache under $XDG_CACHE_HOME/<app> (or ~/.cache/<app>).
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewCache(filepath.Join(base, app))
}

// NewCache opens a cache rooted at dir, creating it if needed.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Join(dir, "tables"), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string { return c.dir }

func (c *Cache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "tables", hex.EncodeToString(key[:])+".mp")
}

func (c *Cache) lock() *flock.Flock {
	return flock.New(filepath.Join(c.dir, ".lock"))
}

// Put stores records under key.
func (c *Cache) Put(key Digest, source string, records []builtins.Descriptor) error {
	if c == nil {
		return nil
	}
	count, err := safecast.Conv[uint32](len(records))
	if err != nil {
		return fmt.Errorf("cache %s: %w", source, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	lk := c.lock()
	if err := lk.Lock(); err != nil {
		return fmt.Errorf("acquire cache lock: %w", err)
	}
	defer lk.Unlock() //nolint:errcheck

	p := c.pathFor(key)
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp) //nolint:errcheck

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(&cachePayload{
		Schema:  cacheSchemaVersion,
		Source:  source,
		Count:   count,
		Records: records,
	}); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

// Get returns the records stored under key. A missing entry, a schema
// mismatch and a truncated entry are all misses.
func (c *Cache) Get(key Digest) ([]builtins.Descriptor, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	lk := c.lock()
	if err := lk.RLock(); err != nil {
		return nil, false, fmt.Errorf("acquire cache lock: %w", err)
	}
	defer lk.Unlock() //nolint:errcheck

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, nil
	}
	if payload.Schema != cacheSchemaVersion || int(payload.Count) != len(payload.Records) {
		return nil, false, nil
	}
	return payload.Records, true, nil
}
