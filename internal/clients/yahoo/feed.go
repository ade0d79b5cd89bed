// Package yahoo reads the Yahoo Finance headline RSS feed
package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/bobmcallan/marketlens/internal/common"
	"github.com/bobmcallan/marketlens/internal/interfaces"
	"github.com/bobmcallan/marketlens/internal/models"
)

const (
	DefaultFeedURL = "https://feeds.finance.yahoo.com/rss/2.0/headline"
	DefaultTimeout = 5 * time.Second
	Publisher      = "Yahoo Finance"
)

// Feed implements HeadlineFeed over the public RSS endpoint
type Feed struct {
	feedURL    string
	httpClient *http.Client
	logger     *common.Logger
}

// FeedOption configures the feed
type FeedOption func(*Feed)

// WithFeedURL sets the RSS endpoint
func WithFeedURL(u string) FeedOption {
	return func(f *Feed) {
		f.feedURL = u
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) FeedOption {
	return func(f *Feed) {
		f.logger = logger
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) FeedOption {
	return func(f *Feed) {
		f.httpClient.Timeout = timeout
	}
}

// NewFeed creates a headline feed reader
func NewFeed(opts ...FeedOption) *Feed {
	f := &Feed{
		feedURL:    DefaultFeedURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     common.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// GetHeadlines returns up to limit headlines for symbol. Exchange suffixes
// such as ".US" are stripped before the request.
func (f *Feed) GetHeadlines(ctx context.Context, symbol string, limit int) ([]models.MarketHeadline, error) {
	sym := symbol
	if idx := strings.Index(sym, "."); idx > 0 {
		sym = sym[:idx]
	}

	params := url.Values{}
	params.Set("s", sym)
	params.Set("region", "US")
	params.Set("lang", "en-US")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.feedURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.logger.Warn().Str("symbol", sym).Int("status", resp.StatusCode).Msg("Yahoo RSS non-OK response")
		return nil, fmt.Errorf("yahoo rss: status %d for %s", resp.StatusCode, sym)
	}

	// gofeed parsers keep per-document state
	doc, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	out := make([]models.MarketHeadline, 0, limit)
	for i, item := range doc.Items {
		if limit > 0 && i >= limit {
			break
		}
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		out = append(out, models.MarketHeadline{
			Ticker:    sym,
			Title:     title,
			Publisher: Publisher,
			Link:      strings.TrimSpace(item.Link),
			Date:      itemDate(item),
		})
	}
	return out, nil
}

// itemDate formats the published date as YYYY-MM-DD. Unparseable dates
// keep their first ten characters.
func itemDate(item *gofeed.Item) string {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.Format("2006-01-02")
	}
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed.Format("2006-01-02")
	}
	raw := strings.TrimSpace(item.Published)
	if len(raw) > 10 {
		return raw[:10]
	}
	return raw
}

// Ensure Feed implements HeadlineFeed
var _ interfaces.HeadlineFeed = (*Feed)(nil)
