package models

import (
	"time"
)

// RealTimeQuote holds a live snapshot from a real-time price source
type RealTimeQuote struct {
	Code          string    `json:"code"`
	Open          float64   `json:"open"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Close         float64   `json:"close"`          // current/last price
	PreviousClose float64   `json:"previous_close"` // previous day's close
	Change        float64   `json:"change"`
	ChangePct     float64   `json:"change_p"`
	Volume        int64     `json:"volume"`
	Timestamp     time.Time `json:"timestamp"`
}

// EODBar represents a single day's price data
type EODBar struct {
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	AdjClose float64   `json:"adjusted_close"`
	Volume   int64     `json:"volume"`
}

// NewsItem represents a news article
type NewsItem struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
}

// IndexQuote is one headline index on the dashboard. Price and ChangePct
// are nil when the index could not be fetched.
type IndexQuote struct {
	Name      string   `json:"name"`
	Symbol    string   `json:"symbol"`
	Price     *float64 `json:"price"`
	ChangePct *float64 `json:"change_pct"`
}

// VolumeRow is one ticker in the top-volume table.
type VolumeRow struct {
	Ticker    string   `json:"ticker"`
	Price     float64  `json:"price"`
	ChangePct *float64 `json:"change_pct"`
	Volume    int64    `json:"volume"`
	VolumeFmt string   `json:"volume_fmt"`
}

// MarketHeadline is a de-duplicated dashboard news item tagged with the
// ticker it was fetched for.
type MarketHeadline struct {
	Ticker    string `json:"ticker"`
	Title     string `json:"title"`
	Publisher string `json:"publisher"`
	Link      string `json:"link"`
	Date      string `json:"date"` // YYYY-MM-DD
}

// SearchResult is a single ticker search match.
type SearchResult struct {
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	Exchange  string `json:"exchange,omitempty"`
	QuoteType string `json:"quote_type"` // EQUITY or ETF
}

// PricePoint is one close on an index history series.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}
