package server

import (
	"context"
	"time"

	"github.com/bobmcallan/marketlens/internal/app"
	"github.com/bobmcallan/marketlens/internal/common"
	"github.com/bobmcallan/marketlens/internal/interfaces"
	"github.com/bobmcallan/marketlens/internal/models"
)

// --- mockAnalysisService ---

type mockAnalysisService struct {
	analyzeFn func(ctx context.Context, ticker string) (*models.AnalysisReport, error)
	calls     int
}

func (m *mockAnalysisService) GetSnapshot(ctx context.Context, ticker string) (*models.FinancialSnapshot, error) {
	return nil, nil
}

func (m *mockAnalysisService) Analyze(ctx context.Context, ticker string) (*models.AnalysisReport, error) {
	m.calls++
	if m.analyzeFn != nil {
		return m.analyzeFn(ctx, ticker)
	}
	return &models.AnalysisReport{Ticker: ticker}, nil
}

// --- mockMarketService ---

type mockMarketService struct {
	indicesFn func(ctx context.Context) ([]models.IndexQuote, error)
	historyFn func(ctx context.Context) ([]models.PricePoint, error)
	volumeFn  func(ctx context.Context) ([]models.VolumeRow, error)
	newsFn    func(ctx context.Context) ([]models.MarketHeadline, error)
	searchFn  func(ctx context.Context, query string) ([]models.SearchResult, error)
}

func (m *mockMarketService) GetIndices(ctx context.Context) ([]models.IndexQuote, error) {
	if m.indicesFn != nil {
		return m.indicesFn(ctx)
	}
	return nil, nil
}

func (m *mockMarketService) GetIndexHistory(ctx context.Context) ([]models.PricePoint, error) {
	if m.historyFn != nil {
		return m.historyFn(ctx)
	}
	return nil, nil
}

func (m *mockMarketService) GetTopVolume(ctx context.Context) ([]models.VolumeRow, error) {
	if m.volumeFn != nil {
		return m.volumeFn(ctx)
	}
	return nil, nil
}

func (m *mockMarketService) GetNews(ctx context.Context) ([]models.MarketHeadline, error) {
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
	return []string{"AAPL.US", "MSFT.US"}
}

// --- mockPredictionService ---

type mockPredictionService struct {
	listFn       func(ctx context.Context, q interfaces.PredictionQuery) (*models.PredictionListing, error)
	categoriesFn func(ctx context.Context) ([]string, error)
	lastQuery    interfaces.PredictionQuery
}

func (m *mockPredictionService) List(ctx context.Context, q interfaces.PredictionQuery) (*models.PredictionListing, error) {
	m.lastQuery = q
	if m.listFn != nil {
		return m.listFn(ctx, q)
	}
	return &models.PredictionListing{Markets: []models.MarketCard{}}, nil
}

func (m *mockPredictionService) Categories(ctx context.Context) ([]string, error) {
	if m.categoriesFn != nil {
		return m.categoriesFn(ctx)
	}
	return []string{"All"}, nil
}

// testApp builds an App around mock services without touching any provider.
func testApp(analysis interfaces.AnalysisService, market interfaces.MarketService, prediction interfaces.PredictionService) *app.App {
	if analysis == nil {
		analysis = &mockAnalysisService{}
	}
	if market == nil {
		market = &mockMarketService{}
	}
	if prediction == nil {
		prediction = &mockPredictionService{}
	}
	return &app.App{
		Config:            common.NewDefaultConfig(),
		Logger:            common.NewSilentLogger(),
		AnalysisService:   analysis,
		MarketService:     market,
		PredictionService: prediction,
		StartupTime:       time.Now(),
	}
}
