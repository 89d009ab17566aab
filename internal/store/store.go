package store

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/anispin/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketEntries = []byte("entries")
)

// DefaultQuota mirrors the few megabytes a browser grants local storage.
const DefaultQuota = 5 << 20

// Store implements domain.KeyValueStore using BoltDB.
type Store struct {
	db *bolt.DB
	mu sync.RWMutex // Protects cache and used

	// In-memory cache for hot-path reads (promoted on access).
	// Authoritative in memory-only mode.
	cache map[string][]byte

	quota int64 // 0 disables the quota
	used  int64 // Bytes of keys+values currently stored
}

// Open opens (or creates) the store under dir. An empty dir gives a
// memory-only store with the same quota semantics.
func Open(dir string, quota int64) (*Store, error) {
	if dir == "" {
		// Memory-only mode (no persistence)
		return &Store{cache: make(map[string][]byte), quota: quota}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "anispin.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	var used int64
	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketEntries)
		if err != nil {
			return err
		}
		return b.ForEach(func(k, v []byte) error {
			used += int64(len(k) + len(v))
			return nil
		})
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, cache: make(map[string][]byte), quota: quota, used: used}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns a copy of the value stored under key.
func (s *Store) Get(key string) ([]byte, bool) {
	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return bytes.Clone(data), true
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil, false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketEntries).Get([]byte(key)); v != nil {
			data = bytes.Clone(v)
		}
		return nil
	})

	if data == nil {
		return nil, false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	return bytes.Clone(data), true
}

// Set stores value under key, failing with domain.ErrQuotaExceeded when the
// store would grow past its quota. A failed write leaves the old value intact.
func (s *Store) Set(key string, value []byte) error {
	data := bytes.Clone(value)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		old, exists := s.cache[key]
		used := s.grow(key, old, exists, data)
		if s.quota > 0 && used > s.quota {
			return domain.ErrQuotaExceeded
		}
		s.cache[key] = data
		s.used = used
		return nil
	}

	var used int64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEntries)
		old := b.Get([]byte(key))
		used = s.grow(key, old, old != nil, data)
		if s.quota > 0 && used > s.quota {
			return domain.ErrQuotaExceeded
		}
		return b.Put([]byte(key), data)
	})
	if err != nil {
		return err
	}

	s.cache[key] = data
	s.used = used
	return nil
}

// grow returns the usage after replacing old with data under key.
// Must be called with mu held.
func (s *Store) grow(key string, old []byte, exists bool, data []byte) int64 {
	used := s.used + int64(len(key)+len(data))
	if exists {
		used -= int64(len(key) + len(old))
	}
	return used
}

func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		if old, ok := s.cache[key]; ok {
			s.used -= int64(len(key) + len(old))
			delete(s.cache, key)
		}
		return
	}

	delete(s.cache, key)
	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEntries)
		if old := b.Get([]byte(key)); old != nil {
			s.used -= int64(len(key) + len(old))
			return b.Delete([]byte(key))
		}
		return nil
	})
}

// DeletePrefix removes every key starting with prefix. An empty prefix
// clears the store.
func (s *Store) DeletePrefix(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, v := range s.cache {
		if strings.HasPrefix(k, prefix) {
			if s.db == nil {
				s.used -= int64(len(k) + len(v))
			}
			delete(s.cache, k)
		}
	}

	if s.db == nil {
		return
	}

	// Collect first; deleting while iterating a cursor skips keys
	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEntries)
		c := b.Cursor()
		prefixBytes := []byte(prefix)
		var doomed [][]byte
		for k, v := c.Seek(prefixBytes); k != nil && bytes.HasPrefix(k, prefixBytes); k, v = c.Next() {
			doomed = append(doomed, bytes.Clone(k))
			s.used -= int64(len(k) + len(v))
		}
		for _, k := range doomed {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// Usage returns the bytes currently stored and the quota (0 when unlimited).
func (s *Store) Usage() (used, quota int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.used, s.quota
}
