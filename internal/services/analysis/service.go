// Package analysis builds single-ticker analysis reports from provider data
package analysis

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bobmcallan/marketlens/internal/cache"
	"github.com/bobmcallan/marketlens/internal/clients/eodhd"
	"github.com/bobmcallan/marketlens/internal/common"
	"github.com/bobmcallan/marketlens/internal/interfaces"
	"github.com/bobmcallan/marketlens/internal/models"
	"github.com/bobmcallan/marketlens/internal/narrative"
)

// ErrNotFound is returned when a ticker has no usable price data.
var ErrNotFound = errors.New("no data found")

// Report section sizes
const (
	EPSPeriods    = 4
	IncomePeriods = 8
	MarginPeriods = 8
	RawPeriods    = 4
	cashFlowTTM   = 4
)

// Service implements AnalysisService on top of the EODHD client.
type Service struct {
	eodhd  interfaces.EODHDClient
	store  interfaces.CacheStore
	ttl    time.Duration
	logger *common.Logger
	now    func() time.Time
}

// NewService creates a new analysis service.
// store may be nil, in which case every call goes to the provider.
func NewService(eodhd interfaces.EODHDClient, store interfaces.CacheStore, cacheCfg common.CacheConfig, logger *common.Logger) *Service {
	return &Service{
		eodhd:  eodhd,
		store:  store,
		ttl:    cacheCfg.TTL(common.SourceStatements),
		logger: logger,
		now:    time.Now,
	}
}

// NormalizeTicker upper-cases a ticker and defaults it to the US exchange.
func NormalizeTicker(ticker string) string {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	if t == "" {
		return ""
	}
	if !strings.Contains(t, ".") {
		t += ".US"
	}
	return t
}

// GetSnapshot returns the cached financial snapshot for a ticker, fetching
// fundamentals and a live price on a miss. Tickers without a price fail
// with ErrNotFound.
func (s *Service) GetSnapshot(ctx context.Context, ticker string) (*models.FinancialSnapshot, error) {
	ticker = NormalizeTicker(ticker)
	if ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}

	return cache.Remember(s.store, s.logger, cache.Key(common.SourceStatements, ticker), s.ttl, func() (*models.FinancialSnapshot, error) {
		return s.fetchSnapshot(ctx, ticker)
	})
}

func (s *Service) fetchSnapshot(ctx context.Context, ticker string) (*models.FinancialSnapshot, error) {
	snapshot, err := s.eodhd.GetFundamentals(ctx, ticker)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%s: %w", ticker, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get fundamentals for %s: %w", ticker, err)
	}

	price := s.resolvePrice(ctx, ticker)
	if price == nil {
		s.logger.Info().Str("ticker", ticker).Msg("No price available for ticker")
		return nil, fmt.Errorf("%s: %w", ticker, ErrNotFound)
	}
	snapshot.Info.CurrentPrice = price

	if snapshot.Info.DebtToEquity == nil {
		snapshot.Info.DebtToEquity = debtToEquity(snapshot.BalanceSheet)
	}
	if snapshot.Info.OperatingCashflow == nil {
		snapshot.Info.OperatingCashflow = operatingCashflowTTM(snapshot.CashFlow)
	}

	s.logger.Debug().
		Str("ticker", ticker).
		Float64("price", *price).
		Int("income_periods", len(snapshot.IncomeStatement)).
		Msg("Snapshot assembled")

	return snapshot, nil
}

// resolvePrice uses the live quote, falling back to the latest daily close.
func (s *Service) resolvePrice(ctx context.Context, ticker string) *float64 {
	quote, err := s.eodhd.GetRealTimeQuote(ctx, ticker)
	if err == nil && quote != nil && quote.Close > 0 {
		return models.Float(quote.Close)
	}
	if err != nil {
		s.logger.Warn().Str("ticker", ticker).Err(err).Msg("Real-time quote failed, trying EOD")
	}

	bars, err := s.eodhd.GetEOD(ctx, ticker, interfaces.WithOrder("d"), interfaces.WithLimit(1))
	if err != nil {
		s.logger.Warn().Str("ticker", ticker).Err(err).Msg("EOD fallback failed")
		return nil
	}
	if len(bars) > 0 && bars[0].Close > 0 {
		return models.Float(bars[0].Close)
	}
	return nil
}

// debtToEquity derives total debt over shareholders' equity, in percent,
// from the latest balance sheet period.
func debtToEquity(balance models.Statement) *float64 {
	if len(balance) == 0 {
		return nil
	}
	debtKey, ok := narrative.FindLineItem(balance, narrative.DebtLabels)
	if !ok {
		return nil
	}
	equityKey, ok := narrative.FindLineItem(balance, narrative.EquityLabels)
	if !ok {
		return nil
	}
	debt, equity := balance.Value(0, debtKey), balance.Value(0, equityKey)
	if debt == nil || equity == nil || *equity <= 0 {
		return nil
	}
	return models.Float(*debt / *equity * 100)
}

// operatingCashflowTTM sums operating cash flow over the latest four
// quarters. Fewer than four reported quarters yields nil.
func operatingCashflowTTM(cashflow models.Statement) *float64 {
	key, ok := narrative.FindLineItem(cashflow, narrative.OperatingCFLabels)
	if !ok || len(cashflow) < cashFlowTTM {
		return nil
	}
	var sum float64
	for i := 0; i < cashFlowTTM; i++ {
		v := cashflow.Value(i, key)
		if v == nil {
			return nil
		}
		sum += *v
	}
	return &sum
}

// Analyze builds the full report for a ticker.
func (s *Service) Analyze(ctx context.Context, ticker string) (*models.AnalysisReport, error) {
	snapshot, err := s.GetSnapshot(ctx, ticker)
	if err != nil {
		return nil, err
	}
	report := BuildReport(snapshot)
	report.GeneratedAt = s.now().UTC()
	return report, nil
}

// BuildReport renders a snapshot into every report section.
func BuildReport(snapshot *models.FinancialSnapshot) *models.AnalysisReport {
	flags := narrative.Flags(snapshot)
	info := snapshot.Info

	name := info.Name
	if name == "" {
		name = snapshot.Ticker
	}

	return &models.AnalysisReport{
		Ticker:      snapshot.Ticker,
		Name:        name,
		Sector:      info.Sector,
		Industry:    info.Industry,
		Price:       info.CurrentPrice,
		Summary:     narrative.Summary(snapshot),
		Flags:       flags,
		FlagHeader:  narrative.FlagHeader(len(flags)),
		Metrics:     narrative.MetricTiles(info),
		EPS:         narrative.EPSSeries(snapshot.EarningsHistory, EPSPeriods),
		Revenue:     narrative.LineSeries(snapshot.IncomeStatement, narrative.RevenueLabels, IncomePeriods),
		NetIncome:   narrative.LineSeries(snapshot.IncomeStatement, narrative.NetIncomeLabels, IncomePeriods),
		GrossMargin: narrative.GrossMargins(snapshot.IncomeStatement, MarginPeriods),
		NetMargin:   narrative.NetMargins(snapshot.IncomeStatement, MarginPeriods),
		Balance:     narrative.BalanceSnapshot(snapshot.BalanceSheet),
		RawIncome:   narrative.RawTable(snapshot.IncomeStatement, RawPeriods),
		RawBalance:  narrative.RawTable(snapshot.BalanceSheet, RawPeriods),
		RawCashFlow: narrative.RawTable(snapshot.CashFlow, RawPeriods),
	}
}

func isNotFound(err error) bool {
	var apiErr *eodhd.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Ensure Service implements AnalysisService
var _ interfaces.AnalysisService = (*Service)(nil)
