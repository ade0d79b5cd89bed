package models

// PredictionMarket is an open binary market as listed by the exchange.
// Prices are in cents (0-100).
type PredictionMarket struct {
	Ticker      string `json:"ticker"`
	EventTicker string `json:"event_ticker"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	LastPrice   int    `json:"last_price"`
	YesBid      int    `json:"yes_bid"`
	NoBid       int    `json:"no_bid"`
	Volume      int64  `json:"volume"`
	Volume24h   int64  `json:"volume_24h"`
	CloseTime   string `json:"close_time"`
	CreatedTime string `json:"created_time"`
	Status      string `json:"status"`
}

// MarketCard is the display form of a prediction market.
type MarketCard struct {
	EventTicker string `json:"event_ticker"`
	Series      string `json:"series"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	YesCents    int    `json:"yes_cents"`
	NoCents     int    `json:"no_cents"`
	Volume24h   int64  `json:"volume_24h"`
	VolumeFmt   string `json:"volume_fmt"`
	Closes      string `json:"closes"`
}

// PredictionStats summarises a filtered listing.
type PredictionStats struct {
	OpenMarkets  int   `json:"open_markets"`
	Showing      int   `json:"showing"`
	Volume24hSum int64 `json:"volume_24h_shown"`
}

// PredictionListing is the response for a filtered, sorted market query.
type PredictionListing struct {
	Stats      PredictionStats `json:"stats"`
	Categories []string        `json:"categories"`
	Markets    []MarketCard    `json:"markets"`
	Truncated  bool            `json:"truncated"`
	LastError  string          `json:"last_error,omitempty"`
}
