package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/100xmanas/ignix-ui/internal/storage"
)

// MaxAge is the age after which a cached registry index is refreshed
const MaxAge = time.Hour

// Entry is a cached copy of one registry's index.json
type Entry struct {
	Registry  string          `json:"registry"`
	FetchedAt time.Time       `json:"fetched_at"`
	Index     json.RawMessage `json:"index"`
}

// IsStale returns true if the entry is older than MaxAge or was never fetched
func (e *Entry) IsStale() bool {
	if e == nil || e.FetchedAt.IsZero() {
		return true
	}
	return time.Since(e.FetchedAt) > MaxAge
}

// Dir returns the cache directory, honouring IGNIX_CACHE_DIR.
func Dir() (string, error) {
	if d := os.Getenv("IGNIX_CACHE_DIR"); d != "" {
		return d, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "ignix"), nil
}

// key derives a stable file name from the registry location
func key(registry string) string {
	sum := sha256.Sum256([]byte(registry))
	return hex.EncodeToString(sum[:])[:16]
}

// EntryPath returns the cache file for a registry inside dir
func EntryPath(dir, registry string) string {
	return filepath.Join(dir, "index-"+key(registry)+".json")
}

// LockPath returns the path to the lock file for a cache directory
func LockPath(dir string) string {
	return filepath.Join(dir, ".ignix-cache.lock")
}

// Load reads the cached entry for registry from dir.
// A missing or corrupted file yields (nil, nil): the caller refetches.
func Load(dir, registry string) (*Entry, error) {
	var e Entry
	if err := storage.LoadJSON(EntryPath(dir, registry), &e); err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) && !os.IsNotExist(err) {
			return nil, err
		}
		return nil, nil
	}
	if e.Registry != registry {
		return nil, nil
	}
	return &e, nil
}

// Save writes the entry atomically into dir
func Save(dir string, e *Entry) error {
	return storage.SaveJSON(EntryPath(dir, e.Registry), e, 0o600)
}

// Store records a freshly fetched index under the cache lock.
func Store(dir, registry string, index []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	lock := NewFileLock(LockPath(dir))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	return Save(dir, &Entry{
		Registry:  registry,
		FetchedAt: time.Now(),
		Index:     json.RawMessage(index),
	})
}
