package narrative

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/marketlens/internal/models"
)

func quarterlyIncome() models.Statement {
	return models.Statement{
		{Date: "2026-06-30", Items: models.LineItems{"Total Revenue": 200, "Gross Profit": 90, "Net Income": 40}},
		{Date: "2026-03-31", Items: models.LineItems{"Total Revenue": 0, "Gross Profit": 10, "Net Income": -5}},
		{Date: "2025-12-31", Items: models.LineItems{"Total Revenue": 150, "Net Income": 15}},
		{Date: "2025-09-30", Items: models.LineItems{"Total Revenue": math.NaN(), "Gross Profit": 60, "Net Income": 10}},
		{Date: "2025-06-30", Items: models.LineItems{"Total Revenue": 3, "Gross Profit": 1, "Net Income": 1}},
	}
}

func TestGrossMargins_OmitsMissingAndZeroRevenue(t *testing.T) {
	got := GrossMargins(quarterlyIncome(), 8)
	assert.Equal(t, []models.MarginPoint{
		{Date: "2026-06-30", Value: 45.0},
		{Date: "2025-06-30", Value: 33.3},
	}, got)
}

func TestNetMargins_RespectsLimit(t *testing.T) {
	got := NetMargins(quarterlyIncome(), 3)
	assert.Equal(t, []models.MarginPoint{
		{Date: "2026-06-30", Value: 20.0},
		{Date: "2025-12-31", Value: 10.0},
	}, got)
}

func TestMargins_NoRevenueRow(t *testing.T) {
	stmt := models.Statement{{Date: "2026-06-30", Items: models.LineItems{"Gross Profit": 10}}}
	got := GrossMargins(stmt, 0)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, NetMargins(nil, 0))
}

func TestMargins_HalvesRoundToEven(t *testing.T) {
	stmt := models.Statement{
		{Date: "2026-06-30", Items: models.LineItems{"Total Revenue": 16, "Net Income": 1}},
		{Date: "2026-03-31", Items: models.LineItems{"Total Revenue": 16, "Net Income": 5}},
	}
	assert.Equal(t, []models.MarginPoint{
		{Date: "2026-06-30", Value: 6.2},
		{Date: "2026-03-31", Value: 31.2},
	}, NetMargins(stmt, 0))
}

func TestMargins_AlwaysFinite(t *testing.T) {
	stmt := models.Statement{
		{Date: "a", Items: models.LineItems{"Total Revenue": 1e-320, "Net Income": 1e300}},
		{Date: "b", Items: models.LineItems{"Total Revenue": 100, "Net Income": math.Inf(1)}},
	}
	for _, p := range NetMargins(stmt, 0) {
		assert.False(t, math.IsInf(p.Value, 0) || math.IsNaN(p.Value), "period %s", p.Date)
	}
}

func TestMetricTiles(t *testing.T) {
	info := models.CompanyInfo{
		MarketCap:      f(3.1e12),
		TotalRevenue:   f(391e9),
		CurrentPrice:   f(227.5),
		TrailingEPS:    f(6.08),
		TrailingPE:     f(37.4),
		ForwardPE:      f(0),
		GrossMargin:    f(0.462),
		ProfitMargin:   f(0),
		RevenueGrowth:  f(0.061),
		EarningsGrowth: nil,
	}
	tiles := MetricTiles(info)
	require.Len(t, tiles, 10)

	byLabel := map[string]models.MetricTile{}
	for _, tile := range tiles {
		byLabel[tile.Label] = tile
	}
	assert.Equal(t, "$3.10T", byLabel["Market Cap"].Value)
	assert.Equal(t, "$391.00B", byLabel["Revenue (TTM)"].Value)
	assert.Equal(t, "$227.50", byLabel["Price"].Value)
	assert.Equal(t, "$6.08", byLabel["EPS (TTM)"].Value)
	assert.Equal(t, "37.4x", byLabel["P/E (Trail.)"].Value)
	assert.Equal(t, "N/A", byLabel["P/E (Fwd.)"].Value)
	assert.Equal(t, "46.2%", byLabel["Gross Margin"].Value)
	assert.Equal(t, "N/A", byLabel["Net Margin"].Value)
	assert.Equal(t, "6.1%", byLabel["Rev. Growth"].Value)
	assert.Equal(t, "6.1%", byLabel["Rev. Growth"].Delta)
	assert.Equal(t, "N/A", byLabel["EPS Growth"].Value)
	assert.Empty(t, byLabel["EPS Growth"].Delta)
}

func TestBalanceSnapshot(t *testing.T) {
	balance := models.Statement{
		{Date: "2026-06-30", Items: models.LineItems{
			"Cash And Equivalents":       29.9e9,
			"Short Long Term Debt Total": 101.3e9,
			"Total Stockholder Equity":   66.8e9,
		}},
		{Date: "2026-03-31", Items: models.LineItems{"Cash And Equivalents": 1}},
	}
	tiles := BalanceSnapshot(balance)
	assert.Equal(t, []models.MetricTile{
		{Label: "Cash & Equivalents", Value: "$29.90B"},
		{Label: "Total Debt", Value: "$101.30B"},
		{Label: "Shareholders' Equity", Value: "$66.80B"},
	}, tiles)
}

func TestBalanceSnapshot_OnlyResolvableRows(t *testing.T) {
	balance := models.Statement{{Date: "2026-06-30", Items: models.LineItems{"Total Debt": 5e6}}}
	assert.Equal(t, []models.MetricTile{{Label: "Total Debt", Value: "$5.00M"}}, BalanceSnapshot(balance))
	assert.Empty(t, BalanceSnapshot(nil))
}

func TestRawTable(t *testing.T) {
	raw := RawTable(quarterlyIncome(), 4)
	assert.Equal(t, []string{"2026-06-30", "2026-03-31", "2025-12-31", "2025-09-30"}, raw.Periods)
	require.Len(t, raw.Rows, 3)
	assert.Equal(t, "Gross Profit", raw.Rows[0].Label)
	assert.Equal(t, []string{"$90", "$10", RawPlaceholder, "$60"}, raw.Rows[0].Values)
	assert.Equal(t, "Total Revenue", raw.Rows[2].Label)
	assert.Equal(t, []string{"$200", "$0", "$150", RawPlaceholder}, raw.Rows[2].Values)
}

func TestEPSSeries_OldestFirst(t *testing.T) {
	history := []models.EarningsPeriod{
		{Date: "2026-06-30", Actual: f(1.5), Estimate: f(1.4)},
		{Date: "2026-03-31", Actual: f(1.2)},
		{Date: "2025-12-31"},
		{Date: "2025-09-30", Estimate: f(math.NaN()), Actual: f(1.0)},
		{Date: "2025-06-30", Actual: f(0.9)},
	}
	got := EPSSeries(history, 4)
	require.Len(t, got, 3)
	assert.Equal(t, "2025-09-30", got[0].Date)
	assert.Nil(t, got[0].Estimate)
	assert.Equal(t, "2026-03-31", got[1].Date)
	assert.Equal(t, "2026-06-30", got[2].Date)
	assert.InDelta(t, 1.4, *got[2].Estimate, 1e-9)
}

func TestLineSeries(t *testing.T) {
	got := LineSeries(quarterlyIncome(), RevenueLabels, 8)
	assert.Equal(t, []models.PeriodValue{
		{Date: "2026-06-30", Value: 200},
		{Date: "2026-03-31", Value: 0},
		{Date: "2025-12-31", Value: 150},
		{Date: "2025-06-30", Value: 3},
	}, got)
	assert.Empty(t, LineSeries(quarterlyIncome(), CashLabels, 8))
}
