// Package cache persists per-file diagnostics between CLI runs.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"asmodeus/internal/diag"
	"asmodeus/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// Digest is a SHA-256 cache key.
type Digest [32]byte

// DiskCache stores diagnostics of previously analysed files keyed by content
// hash. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the msgpack record stored per file.
type DiskPayload struct {
	Schema      uint16             `msgpack:"schema"`
	Path        string             `msgpack:"path"`
	Diagnostics []CachedDiagnostic `msgpack:"diagnostics"`
}

// CachedDiagnostic is the flattened form of diag.Diagnostic.
type CachedDiagnostic struct {
	Code    uint16 `msgpack:"code"`
	Sev     uint8  `msgpack:"sev"`
	Message string `msgpack:"msg"`
	Line    int    `msgpack:"line"`
	Start   int    `msgpack:"start"`
	End     int    `msgpack:"end"`
}

// OpenDiskCache initializes a disk cache under $XDG_CACHE_HOME/<app>.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt initializes a disk cache in dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// CacheKey derives the key for a file from its content hash and a salt that
// identifies the analysis settings.
func CacheKey(content [32]byte, salt string) Digest {
	h := sha256.New()
	h.Write(content[:])
	h.Write([]byte(salt))
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "diag", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
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
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	payload.Schema = diskCacheSchemaVersion
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// atomic replace
	return os.Rename(f.Name(), p)
}

// Get reads a payload. A missing entry or a payload of another schema is a
// miss, not an error.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := msgpack.Unmarshal(data, out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "diag"))
}

func ToCached(ds []diag.Diagnostic) []CachedDiagnostic {
	out := make([]CachedDiagnostic, len(ds))
	for i, d := range ds {
		out[i] = CachedDiagnostic{
			Code:    uint16(d.Code),
			Sev:     uint8(d.Severity),
			Message: d.Message,
			Line:    d.Primary.Line,
			Start:   d.Primary.Start,
			End:     d.Primary.End,
		}
	}
	return out
}

func FromCached(cs []CachedDiagnostic) []diag.Diagnostic {
	out := make([]diag.Diagnostic, len(cs))
	for i, c := range cs {
		out[i] = diag.New(diag.Severity(c.Sev), diag.Code(c.Code),
			source.NewSpan(c.Line, c.Start, c.End), c.Message)
	}
	return out
}
