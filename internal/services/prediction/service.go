// Package prediction serves filtered and sorted prediction market listings
package prediction

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/bobmcallan/marketlens/internal/cache"
	"github.com/bobmcallan/marketlens/internal/common"
	"github.com/bobmcallan/marketlens/internal/interfaces"
	"github.com/bobmcallan/marketlens/internal/models"
)

// Listing parameters
const (
	CategoryAll      = "All"
	MarketsPerSeries = 50
	MaxDisplayed     = 100
	maxConcurrent    = 5
)

// Sort orders
const (
	SortVolume      = "volume"
	SortProbability = "probability"
	SortClosing     = "closing"
	SortRecent      = "recent"
)

// SeriesLabels maps series tickers to category names. Series without an
// entry are shown under their ticker.
var SeriesLabels = map[string]string{
	"KXFED":  "Fed / Rates",
	"KXBTC":  "Bitcoin",
	"KXETH":  "Ethereum",
	"KXINX":  "S&P 500",
	"KXGOLD": "Gold",
	"KXOIL":  "Oil",
	"KXNFL":  "NFL",
	"KXNBA":  "NBA",
	"KXMLB":  "MLB",
	"KXNHL":  "NHL",
	"KXMMA":  "MMA / UFC",
	"KXSOC":  "Soccer",
	"KXPOP":  "Pop Culture",
	"KXPOL":  "Politics",
	"KXWEA":  "Weather",
	"KXCPI":  "Inflation / CPI",
	"KXJOB":  "Jobs / Unemployment",
	"KXTECH": "Tech",
	"KXAI":   "AI",
}

// Service implements PredictionService
type Service struct {
	kalshi interfaces.KalshiClient
	store  interfaces.CacheStore
	series []string
	ttl    time.Duration
	logger *common.Logger
}

// NewService creates a new prediction market service
func NewService(kalshi interfaces.KalshiClient, store interfaces.CacheStore, config *common.Config, logger *common.Logger) *Service {
	return &Service{
		kalshi: kalshi,
		store:  store,
		series: config.Dashboard.KalshiSeries,
		ttl:    config.Cache.TTL(common.SourcePredictions),
		logger: logger,
	}
}

// openMarkets is the cached result of one fetch across every series.
type openMarkets struct {
	Markets   []models.PredictionMarket `json:"markets"`
	LastError string                    `json:"last_error,omitempty"`
}

// fetchAll lists open markets for every configured series. A failing
// series is skipped and recorded as the last error; the fetch only fails
// when nothing at all could be loaded or ctx is done.
func (s *Service) fetchAll(ctx context.Context) (*openMarkets, error) {
	return cache.Remember(s.store, s.logger, cache.Key(common.SourcePredictions, "open"), s.ttl, func() (*openMarkets, error) {
		perSeries := make([][]models.PredictionMarket, len(s.series))
		errs := make([]error, len(s.series))

		sem := make(chan struct{}, maxConcurrent)
		var wg sync.WaitGroup
		for i, series := range s.series {
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
			}
			if ctx.Err() != nil {
				break
			}
			wg.Add(1)
			go func(i int, series string) {
				defer wg.Done()
				defer func() { <-sem }()
				perSeries[i], errs[i] = s.kalshi.GetMarkets(ctx, series, "open", MarketsPerSeries)
			}(i, series)
		}
		wg.Wait()
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result := &openMarkets{Markets: []models.PredictionMarket{}}
		for i, markets := range perSeries {
			if errs[i] != nil {
				s.logger.Warn().Str("series", s.series[i]).Err(errs[i]).Msg("Prediction market fetch failed")
				result.LastError = errs[i].Error()
				continue
			}
			result.Markets = append(result.Markets, markets...)
		}

		if len(result.Markets) == 0 && result.LastError != "" {
			return nil, fmt.Errorf("could not load prediction markets: %s", result.LastError)
		}

		s.logger.Debug().Int("markets", len(result.Markets)).Int("series", len(s.series)).Msg("Prediction markets loaded")
		return result, nil
	})
}

// List returns markets matching the query. Stats count every match; the
// markets slice is capped at the query limit (at most 100).
func (s *Service) List(ctx context.Context, query interfaces.PredictionQuery) (*models.PredictionListing, error) {
	all, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := Filter(all.Markets, query.Category, query.Search)
	Sort(filtered, query.Sort)

	var vol24h int64
	for _, m := range filtered {
		vol24h += m.Volume24h
	}

	limit := query.Limit
	if limit <= 0 || limit > MaxDisplayed {
		limit = MaxDisplayed
	}
	shown := filtered
	if len(shown) > limit {
		shown = shown[:limit]
	}

	cards := make([]models.MarketCard, len(shown))
	for i, m := range shown {
		cards[i] = Card(m)
	}

	return &models.PredictionListing{
		Stats: models.PredictionStats{
			OpenMarkets:  len(all.Markets),
			Showing:      len(filtered),
			Volume24hSum: vol24h,
		},
		Categories: Categories(all.Markets),
		Markets:    cards,
		Truncated:  len(filtered) > len(shown),
		LastError:  all.LastError,
	}, nil
}

// Categories returns "All" followed by the labels of every series present.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	all, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return Categories(all.Markets), nil
}

// SeriesOf returns the series a market belongs to: the event ticker prefix
// before the first "-", else its first six characters.
func SeriesOf(m models.PredictionMarket) string {
	et := m.EventTicker
	if et == "" {
		et = m.Ticker
	}
	if idx := strings.Index(et, "-"); idx >= 0 {
		return et[:idx]
	}
	if len(et) > 6 {
		return et[:6]
	}
	return et
}

// CategoryLabel returns the display name of a series.
func CategoryLabel(series string) string {
	if label, ok := SeriesLabels[series]; ok {
		return label
	}
	return series
}

// Categories lists "All" then category labels in sorted series order.
func Categories(markets []models.PredictionMarket) []string {
	seen := make(map[string]struct{})
	var series []string
	for _, m := range markets {
		s := SeriesOf(m)
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		series = append(series, s)
	}
	sort.Strings(series)

	out := make([]string, 0, len(series)+1)
	out = append(out, CategoryAll)
	for _, s := range series {
		out = append(out, CategoryLabel(s))
	}
	return out
}

// Filter keeps markets in category (a label or a series ticker; empty or
// "All" keeps every series) whose title, subtitle or event ticker contains
// search, case-insensitively.
func Filter(markets []models.PredictionMarket, category, search string) []models.PredictionMarket {
	category = strings.TrimSpace(category)
	q := strings.ToLower(strings.TrimSpace(search))

	out := make([]models.PredictionMarket, 0, len(markets))
	for _, m := range markets {
		if category != "" && category != CategoryAll {
			s := SeriesOf(m)
			if CategoryLabel(s) != category && s != category {
				continue
			}
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(m.Title), q) &&
			!strings.Contains(strings.ToLower(m.Subtitle), q) &&
			!strings.Contains(strings.ToLower(m.EventTicker), q) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Sort orders markets in place; unknown orders sort by volume. Ties keep
// their fetch order.
func Sort(markets []models.PredictionMarket, order string) {
	var less func(a, b models.PredictionMarket) bool
	switch order {
	case SortProbability:
		less = func(a, b models.PredictionMarket) bool { return a.LastPrice > b.LastPrice }
	case SortClosing:
		less = func(a, b models.PredictionMarket) bool { return closeKey(a) < closeKey(b) }
	case SortRecent:
		less = func(a, b models.PredictionMarket) bool { return a.CreatedTime > b.CreatedTime }
	default:
		less = func(a, b models.PredictionMarket) bool { return displayVolume(a) > displayVolume(b) }
	}
	sort.SliceStable(markets, func(i, j int) bool { return less(markets[i], markets[j]) })
}

// closeKey sorts markets without a close time last.
func closeKey(m models.PredictionMarket) string {
	if m.CloseTime == "" {
		return "9999"
	}
	return m.CloseTime
}

// displayVolume is the 24h volume, falling back to lifetime volume.
func displayVolume(m models.PredictionMarket) int64 {
	if m.Volume24h != 0 {
		return m.Volume24h
	}
	return m.Volume
}

// Card converts a market to its display form.
func Card(m models.PredictionMarket) models.MarketCard {
	yes := m.LastPrice
	vol := displayVolume(m)

	volFmt := "—"
	if vol != 0 {
		volFmt = humanize.Comma(vol)
	}

	series := SeriesOf(m)
	return models.MarketCard{
		EventTicker: m.EventTicker,
		Series:      series,
		Category:    CategoryLabel(series),
		Title:       m.Title,
		Subtitle:    m.Subtitle,
		YesCents:    yes,
		NoCents:     100 - yes,
		Volume24h:   vol,
		VolumeFmt:   volFmt,
		Closes:      closeDate(m.CloseTime),
	}
}

// closeDate renders an RFC 3339 close time as "Jan 02, 2006", falling back
// to the first ten characters.
func closeDate(s string) string {
	if s == "" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format("Jan 02, 2006")
	}
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

// Ensure Service implements PredictionService
var _ interfaces.PredictionService = (*Service)(nil)
