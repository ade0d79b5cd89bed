package common

import "time"

// Retrieval sources with their own cache TTL
const (
	SourceQuotes      = "quotes"
	SourceHistory     = "history"
	SourceStatements  = "statements"
	SourceNews        = "news"
	SourcePredictions = "predictions"
	SourceSearch      = "search"
)

// Default freshness TTLs per retrieval source
const (
	FreshnessQuotes      = 120 * time.Second
	FreshnessHistory     = 5 * time.Minute
	FreshnessStatements  = 5 * time.Minute
	FreshnessNews        = 10 * time.Minute
	FreshnessPredictions = 3 * time.Minute
	FreshnessSearch      = 60 * time.Second
)

// IsFresh returns true if the given timestamp is within the TTL
func IsFresh(updated time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return time.Since(updated) < ttl
}
