package cache

import (
	"time"

	"github.com/bobmcallan/marketlens/internal/common"
	"github.com/bobmcallan/marketlens/internal/interfaces"
)

// Remember returns the cached value for key, or calls load and caches its
// result for ttl. Cache failures are logged and never fail the call; load
// errors are returned uncached. A nil store always loads.
func Remember[T any](store interfaces.CacheStore, logger *common.Logger, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	if store != nil {
		var cached T
		ok, err := store.Get(key, &cached)
		if err != nil {
			logger.Warn().Str("key", key).Err(err).Msg("Cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	if store != nil {
		if err := store.Set(key, value, ttl); err != nil {
			logger.Warn().Str("key", key).Err(err).Msg("Cache write failed")
		}
	}
	return value, nil
}

// Key joins a source name and its parts into a cache key.
func Key(source string, parts ...string) string {
	key := source
	for _, p := range parts {
		key += ":" + p
	}
	return key
}
