package interfaces

import (
	"context"

	"github.com/bobmcallan/marketlens/internal/models"
)

// AnalysisService produces single-ticker analysis reports
type AnalysisService interface {
	// GetSnapshot returns the (cached) financial snapshot for a ticker
	GetSnapshot(ctx context.Context, ticker string) (*models.FinancialSnapshot, error)

	// Analyze builds the full report for a ticker
	Analyze(ctx context.Context, ticker string) (*models.AnalysisReport, error)
}

// MarketService serves the market dashboard panels
type MarketService interface {
	// GetIndices returns the headline indices with change vs previous close
	GetIndices(ctx context.Context) ([]models.IndexQuote, error)

	// GetIndexHistory returns daily closes for the history index, oldest first
	GetIndexHistory(ctx context.Context) ([]models.PricePoint, error)

	// GetTopVolume returns the watch list ranked by last volume
	GetTopVolume(ctx context.Context) ([]models.VolumeRow, error)

	// GetNews returns de-duplicated headlines across the news tickers
	GetNews(ctx context.Context) ([]models.MarketHeadline, error)

	// Search finds equities and ETFs matching a query
	Search(ctx context.Context, query string) ([]models.SearchResult, error)

	// SuggestedTickers returns the configured quick-pick tickers
	SuggestedTickers() []string
}

// PredictionQuery filters and sorts a prediction market listing
type PredictionQuery struct {
	Category string
	Search   string
	Sort     string
	Limit    int
}

// PredictionService serves prediction market listings
type PredictionService interface {
	// List returns markets matching the query
	List(ctx context.Context, query PredictionQuery) (*models.PredictionListing, error)

	// Categories returns "All" followed by the category labels present
	Categories(ctx context.Context) ([]string, error)
}
