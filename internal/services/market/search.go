package market

import (
	"context"
	"strings"

	"github.com/bobmcallan/marketlens/internal/cache"
	"github.com/bobmcallan/marketlens/internal/common"
	"github.com/bobmcallan/marketlens/internal/models"
)

// Search limits
const (
	MaxSearchResults = 6
	searchFetchLimit = 15
	minSearchLength  = 3
)

// Search finds equities and ETFs by name. Queries that are too short or
// already look like a ticker return no results without calling the provider.
func (s *Service) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	q := strings.TrimSpace(query)
	if !Searchable(q) {
		return []models.SearchResult{}, nil
	}

	key := cache.Key(common.SourceSearch, strings.ToLower(q))
	return cache.Remember(s.store, s.logger, key, s.ttl.TTL(common.SourceSearch), func() ([]models.SearchResult, error) {
		results, err := s.eodhd.Search(ctx, q, searchFetchLimit)
		if err != nil {
			return nil, err
		}
		out := make([]models.SearchResult, 0, MaxSearchResults)
		for _, r := range results {
			if r.QuoteType != "EQUITY" && r.QuoteType != "ETF" {
				continue
			}
			out = append(out, r)
			if len(out) >= MaxSearchResults {
				break
			}
		}
		return out, nil
	})
}

// Searchable reports whether a query should go to the search provider.
func Searchable(q string) bool {
	if len(q) < minSearchLength {
		return false
	}
	if strings.ToUpper(q) == q && len(q) <= 5 {
		return false
	}
	return true
}
