package mcptools

import (
	"context"

	"github.com/bobmcallan/marketlens/internal/common"
	"github.com/bobmcallan/marketlens/internal/interfaces"
	"github.com/bobmcallan/marketlens/internal/models"
)

func testLogger() *common.Logger {
	return common.NewSilentLogger()
}

// --- mockAnalysisService ---

type mockAnalysisService struct {
	analyzeFn func(ctx context.Context, ticker string) (*models.AnalysisReport, error)
}

func (m *mockAnalysisService) GetSnapshot(ctx context.Context, ticker string) (*models.FinancialSnapshot, error) {
	return nil, nil
}

func (m *mockAnalysisService) Analyze(ctx context.Context, ticker string) (*models.AnalysisReport, error) {
	if m.analyzeFn != nil {
		return m.analyzeFn(ctx, ticker)
	}
	return nil, nil
}

// --- mockMarketService ---

type mockMarketService struct {
	indicesFn func(ctx context.Context) ([]models.IndexQuote, error)
	volumeFn  func(ctx context.Context) ([]models.VolumeRow, error)
	newsFn    func(ctx context.Context) ([]models.MarketHeadline, error)
	searchFn  func(ctx context.Context, query string) ([]models.SearchResult, error)
	newsCalls int
}

func (m *mockMarketService) GetIndices(ctx context.Context) ([]models.IndexQuote, error) {
	if m.indicesFn != nil {
		return m.indicesFn(ctx)
	}
	return nil, nil
}

func (m *mockMarketService) GetIndexHistory(ctx context.Context) ([]models.PricePoint, error) {
	return nil, nil
}

func (m *mockMarketService) GetTopVolume(ctx context.Context) ([]models.VolumeRow, error) {
	if m.volumeFn != nil {
		return m.volumeFn(ctx)
	}
	return nil, nil
}

func (m *mockMarketService) GetNews(ctx context.Context) ([]models.MarketHeadline, error) {
	m.newsCalls++
	if m.newsFn != nil {
		return m.newsFn(ctx)
	}
	return nil, nil
}

func (m *mockMarketService) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query)
	}
	return nil, nil
}

func (m *mockMarketService) SuggestedTickers() []string {
	return []string{"AAPL.US"}
}

// --- mockPredictionService ---

type mockPredictionService struct {
	listFn    func(ctx context.Context, q interfaces.PredictionQuery) (*models.PredictionListing, error)
	lastQuery interfaces.PredictionQuery
}

func (m *mockPredictionService) List(ctx context.Context, q interfaces.PredictionQuery) (*models.PredictionListing, error) {
	m.lastQuery = q
	if m.listFn != nil {
		return m.listFn(ctx, q)
	}
	return &models.PredictionListing{}, nil
}

func (m *mockPredictionService) Categories(ctx context.Context) ([]string, error) {
	return []string{"All"}, nil
}
