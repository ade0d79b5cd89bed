// Package models defines data structures for MarketLens
package models

import (
	"math"
	"sort"
)

// FinancialSnapshot is the read-only bundle of company attributes and
// statement history handed to the narrative engine once per analysis.
type FinancialSnapshot struct {
	Ticker          string           `json:"ticker"`
	Info            CompanyInfo      `json:"info"`
	IncomeStatement Statement        `json:"income_statement"`
	BalanceSheet    Statement        `json:"balance_sheet"`
	CashFlow        Statement        `json:"cash_flow"`
	EarningsHistory []EarningsPeriod `json:"earnings_history"`
}

// CompanyInfo holds named company attributes. A nil pointer means the
// provider did not report the attribute; zero is a real value.
type CompanyInfo struct {
	Name     string `json:"name"`
	Sector   string `json:"sector"`
	Industry string `json:"industry"`
	Currency string `json:"currency"`

	CurrentPrice      *float64 `json:"current_price,omitempty"`
	MarketCap         *float64 `json:"market_cap,omitempty"`
	TotalRevenue      *float64 `json:"total_revenue,omitempty"`
	TrailingEPS       *float64 `json:"trailing_eps,omitempty"`
	TrailingPE        *float64 `json:"trailing_pe,omitempty"`
	ForwardPE         *float64 `json:"forward_pe,omitempty"`
	ProfitMargin      *float64 `json:"profit_margin,omitempty"`  // ratio, 0.25 = 25%
	GrossMargin       *float64 `json:"gross_margin,omitempty"`   // ratio
	RevenueGrowth     *float64 `json:"revenue_growth,omitempty"` // ratio
	EarningsGrowth    *float64 `json:"earnings_growth,omitempty"`
	DebtToEquity      *float64 `json:"debt_to_equity,omitempty"` // percent, 150 = 1.5x
	OperatingCashflow *float64 `json:"operating_cashflow,omitempty"`
}

// EarningsPeriod holds reported and consensus EPS for one quarter.
type EarningsPeriod struct {
	Date     string   `json:"date"`
	Actual   *float64 `json:"actual,omitempty"`
	Estimate *float64 `json:"estimate,omitempty"`
}

// LineItems maps a statement row label to its value for one period.
type LineItems map[string]float64

// StatementPeriod is one reporting period of a financial statement.
type StatementPeriod struct {
	Date  string    `json:"date"`
	Items LineItems `json:"items"`
}

// Statement is an ordered list of periods, most recent first.
type Statement []StatementPeriod

// Labels returns every line-item label present in any period, sorted.
func (s Statement) Labels() []string {
	seen := make(map[string]struct{})
	for _, p := range s {
		for k := range p.Items {
			seen[k] = struct{}{}
		}
	}
	labels := make([]string, 0, len(seen))
	for k := range seen {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	return labels
}

// Value returns the value of label in period i, or nil when the period or
// label is missing or the value is not a number.
func (s Statement) Value(i int, label string) *float64 {
	if i < 0 || i >= len(s) {
		return nil
	}
	v, ok := s[i].Items[label]
	if !ok || math.IsNaN(v) {
		return nil
	}
	return &v
}

// Float returns a pointer to v, for building optional attributes.
func Float(v float64) *float64 {
	return &v
}

// Present reports whether an optional number holds a usable value.
func Present(v *float64) bool {
	return v != nil && !math.IsNaN(*v)
}
