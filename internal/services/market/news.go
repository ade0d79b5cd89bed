package market

import (
	"context"
	"strings"

	"github.com/bobmcallan/marketlens/internal/cache"
	"github.com/bobmcallan/marketlens/internal/common"
	"github.com/bobmcallan/marketlens/internal/models"
)

// News panel sizes
const (
	NewsPerTicker = 3
	MaxHeadlines  = 14
)

// GetNews collects headlines for every news ticker in configured order,
// falling back to the RSS feed for tickers the provider has nothing for.
// Titles are de-duplicated across tickers.
func (s *Service) GetNews(ctx context.Context) ([]models.MarketHeadline, error) {
	return cache.Remember(s.store, s.logger, cache.Key(common.SourceNews, "dashboard"), s.ttl.TTL(common.SourceNews), func() ([]models.MarketHeadline, error) {
		tickers := s.dashboard.NewsTickers
		perTicker := make([][]models.MarketHeadline, len(tickers))

		if err := forEach(ctx, len(tickers), func(i int) {
			perTicker[i] = s.tickerNews(ctx, tickers[i])
		}); err != nil {
			return nil, err
		}

		seen := make(map[string]struct{})
		out := []models.MarketHeadline{}
		for _, items := range perTicker {
			for _, h := range items {
				if _, dup := seen[h.Title]; dup {
					continue
				}
				seen[h.Title] = struct{}{}
				out = append(out, h)
				if len(out) >= MaxHeadlines {
					return out, nil
				}
			}
		}
		return out, nil
	})
}

func (s *Service) tickerNews(ctx context.Context, ticker string) []models.MarketHeadline {
	display := displayTicker(ticker)

	items, err := s.eodhd.GetNews(ctx, ticker, NewsPerTicker)
	if err != nil {
		s.logger.Warn().Str("ticker", ticker).Err(err).Msg("Provider news failed")
	}

	out := make([]models.MarketHeadline, 0, NewsPerTicker)
	for _, item := range items {
		if item == nil || strings.TrimSpace(item.Title) == "" {
			continue
		}
		h := models.MarketHeadline{
			Ticker:    display,
			Title:     strings.TrimSpace(item.Title),
			Publisher: item.Source,
			Link:      item.URL,
		}
		if !item.PublishedAt.IsZero() {
			h.Date = item.PublishedAt.Format("2006-01-02")
		}
		out = append(out, h)
		if len(out) >= NewsPerTicker {
			break
		}
	}
	if len(out) > 0 || s.feed == nil {
		return out
	}

	fallback, err := s.feed.GetHeadlines(ctx, ticker, NewsPerTicker)
	if err != nil {
		s.logger.Warn().Str("ticker", ticker).Err(err).Msg("Headline feed failed")
		return out
	}
	for _, h := range fallback {
		h.Ticker = display
		out = append(out, h)
	}
	return out
}
