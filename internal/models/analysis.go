package models

import "time"

// MetricTile is a labelled display value on the analysis page.
type MetricTile struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Delta string `json:"delta,omitempty"`
}

// MarginPoint is one period of a derived margin series, in percent.
type MarginPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// PeriodValue is one period of a statement line item.
type PeriodValue struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// EPSPoint pairs reported and consensus EPS for one period.
type EPSPoint struct {
	Date     string   `json:"date"`
	Actual   *float64 `json:"actual"`
	Estimate *float64 `json:"estimate"`
}

// RawStatement is a statement formatted for tabular display.
type RawStatement struct {
	Periods []string `json:"periods"`
	Rows    []RawRow `json:"rows"`
}

// RawRow is one labelled line item; Values align with RawStatement.Periods.
type RawRow struct {
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

// AnalysisReport is the full single-ticker analysis.
type AnalysisReport struct {
	Ticker      string        `json:"ticker"`
	Name        string        `json:"name"`
	Sector      string        `json:"sector"`
	Industry    string        `json:"industry"`
	Price       *float64      `json:"price"`
	Summary     []string      `json:"summary"`
	Flags       []string      `json:"flags"`
	FlagHeader  string        `json:"flag_header,omitempty"`
	Metrics     []MetricTile  `json:"metrics"`
	EPS         []EPSPoint    `json:"eps"`
	Revenue     []PeriodValue `json:"revenue"`
	NetIncome   []PeriodValue `json:"net_income"`
	GrossMargin []MarginPoint `json:"gross_margin"`
	NetMargin   []MarginPoint `json:"net_margin"`
	Balance     []MetricTile  `json:"balance"`

	RawIncome   RawStatement `json:"raw_income"`
	RawBalance  RawStatement `json:"raw_balance"`
	RawCashFlow RawStatement `json:"raw_cash_flow"`

	GeneratedAt time.Time `json:"generated_at"`
}
