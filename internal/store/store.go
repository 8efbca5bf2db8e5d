package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"cinemuse/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketSnapshot  = []byte("snapshot")
	bucketWatchlist = []byte("watchlist")
	bucketShell     = []byte("shell")
)

// shellKeySep separates the version name from the resource URL in shell
// bucket keys. NUL cannot appear in either part.
const shellKeySep = "\x00"

// Store persists local browsing state using BoltDB: the last-known-good
// default-feed snapshot, the user's watchlist, and the versioned app-shell
// resource cache.
type Store struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewStore opens the store under dir. An empty dir yields a memory-only
// store with no persistence (used in tests).
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return &Store{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "cinemuse.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketSnapshot, bucketWatchlist, bucketShell} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, cache: make(map[string][]byte)}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *Store) getRaw(bucket []byte, key string) ([]byte, bool) {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return data, true
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil, false
	}

	// Read from BoltDB
	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return nil, false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return data, true
}

func (s *Store) get(bucket []byte, key string, dest interface{}) bool {
	data, ok := s.getRaw(bucket, key)
	if !ok {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func (s *Store) setRaw(bucket []byte, key string, data []byte) error {
	cacheKey := string(bucket) + ":" + key

	// Update memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	// Write to BoltDB
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

func (s *Store) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.setRaw(bucket, key, data)
}

func (s *Store) deletePrefix(bucket []byte, prefix string) error {
	// Clear from memory cache
	s.mu.Lock()
	cachePrefix := string(bucket) + ":" + prefix
	for k := range s.cache {
		if strings.HasPrefix(k, cachePrefix) {
			delete(s.cache, k)
		}
	}
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	// Delete from BoltDB using prefix scan
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		prefixBytes := []byte(prefix)
		for k, _ := c.Seek(prefixBytes); k != nil && strings.HasPrefix(string(k), prefix); k, _ = c.Next() {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// === Snapshot (last-known-good default feed) ===

// SaveSnapshot replaces the stored snapshot wholesale. Only called after a
// successful default-feed fetch; snapshots never expire.
func (s *Store) SaveSnapshot(movies []domain.Movie) error {
	return s.set(bucketSnapshot, "default", movies)
}

// LoadSnapshot returns the last saved default-feed result list, or false
// when no snapshot has ever been saved
func (s *Store) LoadSnapshot() ([]domain.Movie, bool) {
	var movies []domain.Movie
	ok := s.get(bucketSnapshot, "default", &movies)
	return movies, ok
}

// === Watchlist ===

// Watchlist returns the saved movies in insertion order
func (s *Store) Watchlist() []domain.Movie {
	var movies []domain.Movie
	s.get(bucketWatchlist, "list", &movies)
	return movies
}

// AddToWatchlist appends the movie and persists immediately. Returns false
// without touching the stored payload when the identity is already present.
func (s *Store) AddToWatchlist(movie domain.Movie) (bool, error) {
	list := s.Watchlist()
	for _, m := range list {
		if m.ID == movie.ID {
			return false, nil
		}
	}
	list = append(list, movie)
	if err := s.set(bucketWatchlist, "list", list); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveFromWatchlist removes the matching identity and persists. Removing
// an absent id is a no-op, not an error.
func (s *Store) RemoveFromWatchlist(id int64) (bool, error) {
	list := s.Watchlist()
	kept := make([]domain.Movie, 0, len(list))
	removed := false
	for _, m := range list {
		if m.ID == id {
			removed = true
			continue
		}
		kept = append(kept, m)
	}
	if !removed {
		return false, nil
	}
	if err := s.set(bucketWatchlist, "list", kept); err != nil {
		return false, err
	}
	return true, nil
}

// === Shell resource cache (versioned) ===

func shellKey(version, resourceURL string) string {
	return version + shellKeySep + resourceURL
}

// SaveShellVersion stores a complete version's resources in one
// transaction, so a version is either fully present or absent
func (s *Store) SaveShellVersion(version string, resources map[string][]byte) error {
	// Update memory cache
	s.mu.Lock()
	for resourceURL, body := range resources {
		s.cache[string(bucketShell)+":"+shellKey(version, resourceURL)] = body
	}
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketShell)
		for resourceURL, body := range resources {
			if err := b.Put([]byte(shellKey(version, resourceURL)), body); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetShellResource returns the captured body for a resource URL under the
// given version
func (s *Store) GetShellResource(version, resourceURL string) ([]byte, bool) {
	return s.getRaw(bucketShell, shellKey(version, resourceURL))
}

// ShellVersions enumerates all version names with stored resources
func (s *Store) ShellVersions() []string {
	seen := make(map[string]struct{})

	s.mu.RLock()
	cachePrefix := string(bucketShell) + ":"
	for k := range s.cache {
		if !strings.HasPrefix(k, cachePrefix) {
			continue
		}
		rest := k[len(cachePrefix):]
		if idx := strings.Index(rest, shellKeySep); idx >= 0 {
			seen[rest[:idx]] = struct{}{}
		}
	}
	s.mu.RUnlock()

	if s.db != nil {
		s.db.View(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucketShell)
			if b == nil {
				return nil
			}
			return b.ForEach(func(k, _ []byte) error {
				if idx := strings.Index(string(k), shellKeySep); idx >= 0 {
					seen[string(k[:idx])] = struct{}{}
				}
				return nil
			})
		})
	}

	versions := make([]string, 0, len(seen))
	for v := range seen {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions
}

// DeleteShellVersion purges every resource stored under the version
func (s *Store) DeleteShellVersion(version string) error {
	return s.deletePrefix(bucketShell, version+shellKeySep)
}
