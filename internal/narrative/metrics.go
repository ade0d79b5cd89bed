package narrative

import (
	"fmt"

	"github.com/bobmcallan/marketlens/internal/models"
)

// RawPlaceholder fills raw statement cells with no value.
const RawPlaceholder = "—"

// MetricTiles builds the key metric tiles from company attributes.
// Ratio attributes are shown in percent; zero ratios show as N/A.
func MetricTiles(info models.CompanyInfo) []models.MetricTile {
	grossPct := ratioPercent(info.GrossMargin)
	netPct := ratioPercent(info.ProfitMargin)
	revGrowth := ratioPercent(info.RevenueGrowth)
	epsGrowth := ratioPercent(info.EarningsGrowth)

	eps := NotAvailable
	if usable(info.TrailingEPS) && *info.TrailingEPS != 0 {
		eps = fmt.Sprintf("$%.2f", *info.TrailingEPS)
	}

	return []models.MetricTile{
		{Label: "Market Cap", Value: FormatMagnitude(info.MarketCap)},
		{Label: "Revenue (TTM)", Value: FormatMagnitude(info.TotalRevenue)},
		{Label: "Price", Value: FormatPrice(info.CurrentPrice)},
		{Label: "EPS (TTM)", Value: eps},
		{Label: "P/E (Trail.)", Value: FormatMultiple(info.TrailingPE)},
		{Label: "P/E (Fwd.)", Value: FormatMultiple(info.ForwardPE)},
		{Label: "Gross Margin", Value: FormatPercent(grossPct)},
		{Label: "Net Margin", Value: FormatPercent(netPct)},
		{Label: "Rev. Growth", Value: FormatPercent(revGrowth), Delta: delta(revGrowth)},
		{Label: "EPS Growth", Value: FormatPercent(epsGrowth), Delta: delta(epsGrowth)},
	}
}

func ratioPercent(ratio *float64) *float64 {
	if !usable(ratio) || *ratio == 0 {
		return nil
	}
	pct := *ratio * 100
	return &pct
}

func delta(pct *float64) string {
	if pct == nil {
		return ""
	}
	return FormatPercent(pct)
}

// BalanceSnapshot returns cash, debt and equity tiles from the latest
// balance sheet period, one tile per resolvable row.
func BalanceSnapshot(balance models.Statement) []models.MetricTile {
	tiles := []models.MetricTile{}
	if len(balance) == 0 {
		return tiles
	}
	rows := []struct {
		label      string
		candidates []string
	}{
		{"Cash & Equivalents", CashLabels},
		{"Total Debt", DebtLabels},
		{"Shareholders' Equity", EquityLabels},
	}
	for _, r := range rows {
		if key, ok := FindLineItem(balance, r.candidates); ok {
			tiles = append(tiles, models.MetricTile{Label: r.label, Value: FormatMagnitude(balance.Value(0, key))})
		}
	}
	return tiles
}

// RawTable formats the first periods of a statement for display, every row
// in label order.
func RawTable(stmt models.Statement, periods int) models.RawStatement {
	stmt = capPeriods(stmt, periods)
	raw := models.RawStatement{Periods: make([]string, len(stmt)), Rows: []models.RawRow{}}
	for i, p := range stmt {
		raw.Periods[i] = p.Date
	}
	for _, label := range stmt.Labels() {
		row := models.RawRow{Label: label, Values: make([]string, len(stmt))}
		for i := range stmt {
			if v := stmt.Value(i, label); v != nil {
				row.Values[i] = FormatMagnitude(v)
			} else {
				row.Values[i] = RawPlaceholder
			}
		}
		raw.Rows = append(raw.Rows, row)
	}
	return raw
}

// EPSSeries returns actual vs estimate for the latest n periods, oldest
// first. Periods with neither value are skipped.
func EPSSeries(history []models.EarningsPeriod, n int) []models.EPSPoint {
	if n > 0 && len(history) > n {
		history = history[:n]
	}
	points := []models.EPSPoint{}
	for i := len(history) - 1; i >= 0; i-- {
		p := history[i]
		actual, estimate := finiteOrNil(p.Actual), finiteOrNil(p.Estimate)
		if actual == nil && estimate == nil {
			continue
		}
		points = append(points, models.EPSPoint{Date: p.Date, Actual: actual, Estimate: estimate})
	}
	return points
}

// LineSeries returns the values of a located row for up to limit periods,
// in statement order, skipping periods where the row is absent.
func LineSeries(stmt models.Statement, candidates []string, limit int) []models.PeriodValue {
	values := []models.PeriodValue{}
	label, ok := FindLineItem(stmt, candidates)
	if !ok {
		return values
	}
	for i := range capPeriods(stmt, limit) {
		if v := stmt.Value(i, label); v != nil && usable(v) {
			values = append(values, models.PeriodValue{Date: stmt[i].Date, Value: *v})
		}
	}
	return values
}

func finiteOrNil(v *float64) *float64 {
	if !usable(v) {
		return nil
	}
	c := *v
	return &c
}
