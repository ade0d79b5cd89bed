package interfaces

import (
	"time"
)

// CacheStore is a TTL key/value store for retrieval results.
// Values are JSON-encoded by the store.
type CacheStore interface {
	// Get decodes a fresh entry into dest. ok is false on a miss or expiry.
	Get(key string, dest interface{}) (ok bool, err error)

	// Set stores value under key for ttl
	Set(key string, value interface{}, ttl time.Duration) error

	// Delete removes an entry
	Delete(key string) error

	// Purge removes every expired entry and returns how many were removed
	Purge() (int, error)

	// Close releases the store
	Close() error
}
