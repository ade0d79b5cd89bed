// Package market provides the market dashboard panels
package market

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bobmcallan/marketlens/internal/cache"
	"github.com/bobmcallan/marketlens/internal/common"
	"github.com/bobmcallan/marketlens/internal/interfaces"
	"github.com/bobmcallan/marketlens/internal/models"
	"github.com/bobmcallan/marketlens/internal/narrative"
)

// maxConcurrent bounds parallel provider calls per panel
const maxConcurrent = 5

// HistoryWindow is how far back the index history chart reaches
const HistoryWindow = 3 // months

// Service implements MarketService
type Service struct {
	eodhd     interfaces.EODHDClient
	feed      interfaces.HeadlineFeed
	store     interfaces.CacheStore
	dashboard common.DashboardConfig
	ttl       common.CacheConfig
	logger    *common.Logger
	now       func() time.Time
}

// NewService creates a new market service.
// feed may be nil, in which case there is no headline fallback.
func NewService(
	eodhd interfaces.EODHDClient,
	feed interfaces.HeadlineFeed,
	store interfaces.CacheStore,
	config *common.Config,
	logger *common.Logger,
) *Service {
	return &Service{
		eodhd:     eodhd,
		feed:      feed,
		store:     store,
		dashboard: config.Dashboard,
		ttl:       config.Cache,
		logger:    logger,
		now:       time.Now,
	}
}

// GetIndices returns every configured index. An index that cannot be
// fetched keeps its name with nil price and change.
func (s *Service) GetIndices(ctx context.Context) ([]models.IndexQuote, error) {
	return cache.Remember(s.store, s.logger, cache.Key(common.SourceQuotes, "indices"), s.ttl.TTL(common.SourceQuotes), func() ([]models.IndexQuote, error) {
		out := make([]models.IndexQuote, len(s.dashboard.Indices))
		err := forEach(ctx, len(s.dashboard.Indices), func(i int) {
			idx := s.dashboard.Indices[i]
			out[i] = models.IndexQuote{Name: idx.Name, Symbol: idx.Symbol}

			quote, err := s.eodhd.GetRealTimeQuote(ctx, idx.Symbol)
			if err != nil || quote == nil || quote.Close <= 0 {
				s.logger.Warn().Str("symbol", idx.Symbol).Err(err).Msg("Index quote unavailable")
				return
			}
			out[i].Price = models.Float(quote.Close)
			out[i].ChangePct = narrative.PercentChange(models.Float(quote.Close), models.Float(quote.PreviousClose))
		})
		if err != nil {
			return nil, err
		}
		return out, nil
	})
}

// GetIndexHistory returns daily closes for the history index, oldest first.
func (s *Service) GetIndexHistory(ctx context.Context) ([]models.PricePoint, error) {
	symbol := s.dashboard.HistoryIndex
	if symbol == "" {
		return nil, fmt.Errorf("no history index configured")
	}

	return cache.Remember(s.store, s.logger, cache.Key(common.SourceHistory, symbol), s.ttl.TTL(common.SourceHistory), func() ([]models.PricePoint, error) {
		to := s.now()
		from := to.AddDate(0, -HistoryWindow, 0)
		bars, err := s.eodhd.GetEOD(ctx, symbol, interfaces.WithDateRange(from, to), interfaces.WithOrder("a"))
		if err != nil {
			return nil, fmt.Errorf("failed to get history for %s: %w", symbol, err)
		}

		points := make([]models.PricePoint, 0, len(bars))
		for _, b := range bars {
			if b.Close <= 0 {
				continue
			}
			points = append(points, models.PricePoint{Date: b.Date, Close: b.Close})
		}
		return points, nil
	})
}

// SuggestedTickers returns the configured quick-pick tickers
func (s *Service) SuggestedTickers() []string {
	return append([]string(nil), s.dashboard.Suggested...)
}

// forEach runs fn for every index in [0, n) with bounded concurrency.
// Slots not started before ctx is cancelled are skipped and ctx.Err() is
// returned, so partial results are never cached.
func forEach(ctx context.Context, n int, fn func(i int)) error {
	sem := make(chan struct{}, maxConcurrent)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			fn(i)
		}(i)
	}

	wg.Wait()
	return ctx.Err()
}

// Ensure Service implements MarketService
var _ interfaces.MarketService = (*Service)(nil)
