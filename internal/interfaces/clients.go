// Package interfaces defines service contracts for MarketLens
package interfaces

import (
	"context"
	"time"

	"github.com/bobmcallan/marketlens/internal/models"
)

// EODHDClient provides access to EODHD API
type EODHDClient interface {
	// GetFundamentals retrieves company fundamentals and quarterly statements
	GetFundamentals(ctx context.Context, ticker string) (*models.FinancialSnapshot, error)

	// GetRealTimeQuote retrieves the latest quote for a ticker
	GetRealTimeQuote(ctx context.Context, ticker string) (*models.RealTimeQuote, error)

	// GetEOD retrieves end-of-day price data
	GetEOD(ctx context.Context, ticker string, opts ...EODOption) ([]models.EODBar, error)

	// GetNews retrieves news for a ticker
	GetNews(ctx context.Context, ticker string, limit int) ([]*models.NewsItem, error)

	// Search looks up tickers by name or code
	Search(ctx context.Context, query string, limit int) ([]models.SearchResult, error)
}

// EODOption configures EOD data requests
type EODOption func(*EODParams)

// EODParams holds EOD query parameters
type EODParams struct {
	From   time.Time
	To     time.Time
	Period string // d=daily, w=weekly, m=monthly
	Order  string // a=ascending, d=descending
	Limit  int
}

// WithDateRange sets the date range for EOD query
func WithDateRange(from, to time.Time) EODOption {
	return func(p *EODParams) {
		p.From = from
		p.To = to
	}
}

// WithPeriod sets the period for EOD query
func WithPeriod(period string) EODOption {
	return func(p *EODParams) {
		p.Period = period
	}
}

// WithOrder sets the sort order for EOD query
func WithOrder(order string) EODOption {
	return func(p *EODParams) {
		p.Order = order
	}
}

// WithLimit caps the number of bars returned
func WithLimit(limit int) EODOption {
	return func(p *EODParams) {
		p.Limit = limit
	}
}

// KalshiClient provides access to the Kalshi trade API
type KalshiClient interface {
	// GetMarkets lists markets in a series with the given status
	GetMarkets(ctx context.Context, seriesTicker, status string, limit int) ([]models.PredictionMarket, error)
}

// HeadlineFeed provides fallback headlines for a ticker
type HeadlineFeed interface {
	// GetHeadlines returns up to limit headlines for a symbol
	GetHeadlines(ctx context.Context, symbol string, limit int) ([]models.MarketHeadline, error)
}
