// Package cache provides a BadgerHold-backed TTL store for retrieval results.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/marketlens/internal/common"
	"github.com/bobmcallan/marketlens/internal/interfaces"
)

// Entry is a cached value with its expiry in unix nanoseconds.
type Entry struct {
	Key       string `badgerhold:"key"`
	Value     []byte
	ExpiresAt int64 `badgerholdIndex:"ExpiresAt"`
}

// Store wraps a BadgerHold database used as a TTL cache.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
	now    func() time.Time
}

// NewStore opens a cache. An empty path keeps everything in memory.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	options := badgerhold.DefaultOptions
	if path == "" {
		options.Options = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory %s: %w", path, err)
		}
		options.Options = badger.DefaultOptions(path)
	}
	options.Logger = nil // Disable default badger logger

	db, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if path == "" {
		logger.Debug().Msg("In-memory cache opened")
	} else {
		logger.Debug().Str("path", path).Msg("Cache store opened")
	}

	return &Store{
		db:     db,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Get decodes a fresh entry into dest. Expired entries are removed lazily.
func (s *Store) Get(key string, dest interface{}) (bool, error) {
	var entry Entry
	err := s.db.Get(key, &entry)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to get key '%s': %w", key, err)
	}

	if s.now().UnixNano() >= entry.ExpiresAt {
		if err := s.db.Delete(key, Entry{}); err != nil && err != badgerhold.ErrNotFound {
			s.logger.Warn().Str("key", key).Err(err).Msg("Failed to drop expired cache entry")
		}
		return false, nil
	}

	if err := json.Unmarshal(entry.Value, dest); err != nil {
		return false, fmt.Errorf("failed to decode key '%s': %w", key, err)
	}
	return true, nil
}

// Set stores value under key for ttl. A non-positive ttl is a no-op.
func (s *Store) Set(key string, value interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode key '%s': %w", key, err)
	}
	entry := Entry{Key: key, Value: data, ExpiresAt: s.now().Add(ttl).UnixNano()}
	if err := s.db.Upsert(key, &entry); err != nil {
		return fmt.Errorf("failed to set key '%s': %w", key, err)
	}
	return nil
}

// Delete removes an entry; a missing key is not an error.
func (s *Store) Delete(key string) error {
	err := s.db.Delete(key, Entry{})
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete key '%s': %w", key, err)
	}
	return nil
}

// Purge removes every expired entry.
func (s *Store) Purge() (int, error) {
	query := badgerhold.Where("ExpiresAt").Le(s.now().UnixNano()).Index("ExpiresAt")
	n, err := s.db.Count(&Entry{}, query)
	if err != nil {
		return 0, fmt.Errorf("failed to count expired entries: %w", err)
	}
	if n == 0 {
		return 0, nil
	}
	if err := s.db.DeleteMatching(&Entry{}, query); err != nil {
		return 0, fmt.Errorf("failed to purge expired entries: %w", err)
	}
	s.logger.Debug().Int("purged", int(n)).Msg("Cache purged")
	return int(n), nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ensure Store implements CacheStore
var _ interfaces.CacheStore = (*Store)(nil)
