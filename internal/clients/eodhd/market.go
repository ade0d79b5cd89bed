package eodhd

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bobmcallan/marketlens/internal/interfaces"
	"github.com/bobmcallan/marketlens/internal/models"
)

// realTimeResponse represents the API response for a live quote.
// EODHD sends "NA" for fields it has no value for.
type realTimeResponse struct {
	Code          string      `json:"code"`
	Timestamp     flexFloat64 `json:"timestamp"`
	Open          flexFloat64 `json:"open"`
	High          flexFloat64 `json:"high"`
	Low           flexFloat64 `json:"low"`
	Close         flexFloat64 `json:"close"`
	Volume        flexFloat64 `json:"volume"`
	PreviousClose flexFloat64 `json:"previousClose"`
	Change        flexFloat64 `json:"change"`
	ChangeP       flexFloat64 `json:"change_p"`
}

// GetRealTimeQuote retrieves the live (delayed) quote for a ticker
func (c *Client) GetRealTimeQuote(ctx context.Context, ticker string) (*models.RealTimeQuote, error) {
	path := fmt.Sprintf("/real-time/%s", url.PathEscape(ticker))

	var resp realTimeResponse
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}

	quote := &models.RealTimeQuote{
		Code:          resp.Code,
		Open:          float64(resp.Open),
		High:          float64(resp.High),
		Low:           float64(resp.Low),
		Close:         float64(resp.Close),
		PreviousClose: float64(resp.PreviousClose),
		Change:        float64(resp.Change),
		ChangePct:     float64(resp.ChangeP),
		Volume:        int64(resp.Volume),
	}
	if resp.Timestamp > 0 {
		quote.Timestamp = time.Unix(int64(resp.Timestamp), 0)
	}
	if quote.Code == "" {
		quote.Code = ticker
	}
	return quote, nil
}

// GetEOD retrieves end-of-day price data, most recent first by default
func (c *Client) GetEOD(ctx context.Context, ticker string, opts ...interfaces.EODOption) ([]models.EODBar, error) {
	params := &interfaces.EODParams{
		Period: "d",
		Order:  "d",
	}
	for _, opt := range opts {
		opt(params)
	}

	urlParams := url.Values{}
	urlParams.Set("period", params.Period)
	urlParams.Set("order", params.Order)
	if !params.From.IsZero() {
		urlParams.Set("from", params.From.Format("2006-01-02"))
	}
	if !params.To.IsZero() {
		urlParams.Set("to", params.To.Format("2006-01-02"))
	}

	path := fmt.Sprintf("/eod/%s", url.PathEscape(ticker))

	var bars []eodBarResponse
	if err := c.get(ctx, path, urlParams, &bars); err != nil {
		return nil, err
	}

	result := make([]models.EODBar, 0, len(bars))
	for _, bar := range bars {
		date, err := time.Parse("2006-01-02", bar.Date)
		if err != nil {
			continue
		}
		result = append(result, models.EODBar{
			Date:     date,
			Open:     float64(bar.Open),
			High:     float64(bar.High),
			Low:      float64(bar.Low),
			Close:    float64(bar.Close),
			AdjClose: float64(bar.AdjustedClose),
			Volume:   int64(bar.Volume),
		})
	}
	if params.Limit > 0 && len(result) > params.Limit {
		result = result[:params.Limit]
	}
	return result, nil
}

// eodBarResponse represents the API response for EOD data
type eodBarResponse struct {
	Date          string      `json:"date"`
	Open          flexFloat64 `json:"open"`
	High          flexFloat64 `json:"high"`
	Low           flexFloat64 `json:"low"`
	Close         flexFloat64 `json:"close"`
	AdjustedClose flexFloat64 `json:"adjusted_close"`
	Volume        flexFloat64 `json:"volume"`
}

// GetNews retrieves news for a ticker
func (c *Client) GetNews(ctx context.Context, ticker string, limit int) ([]*models.NewsItem, error) {
	params := url.Values{}
	params.Set("s", ticker)
	params.Set("limit", strconv.Itoa(limit))

	var newsResp []newsResponse
	if err := c.get(ctx, "/news", params, &newsResp); err != nil {
		return nil, err
	}

	news := make([]*models.NewsItem, 0, len(newsResp))
	for _, item := range newsResp {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		publishedAt, _ := time.Parse(time.RFC3339, item.Date)
		news = append(news, &models.NewsItem{
			Title:       title,
			URL:         item.Link,
			Source:      sourceFromLink(item.Link),
			PublishedAt: publishedAt,
		})
	}
	return news, nil
}

type newsResponse struct {
	Date  string `json:"date"`
	Title string `json:"title"`
	Link  string `json:"link"`
}

// sourceFromLink derives a publisher name from the article host.
func sourceFromLink(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return "EODHD"
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

type searchResponse struct {
	Code     string `json:"Code"`
	Exchange string `json:"Exchange"`
	Name     string `json:"Name"`
	Type     string `json:"Type"`
}

// Search looks up tickers by name or code
func (c *Client) Search(ctx context.Context, query string, limit int) ([]models.SearchResult, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	path := fmt.Sprintf("/search/%s", url.PathEscape(query))

	var resp []searchResponse
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(resp))
	for _, r := range resp {
		if r.Code == "" {
			continue
		}
		symbol := r.Code
		if r.Exchange != "" {
			symbol = r.Code + "." + r.Exchange
		}
		results = append(results, models.SearchResult{
			Symbol:    symbol,
			Name:      r.Name,
			Exchange:  r.Exchange,
			QuoteType: quoteType(r.Type),
		})
	}
	return results, nil
}

// quoteType normalises EODHD instrument types onto EQUITY / ETF / other.
func quoteType(t string) string {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "common stock", "preferred stock", "stock":
		return "EQUITY"
	case "etf":
		return "ETF"
	case "fund", "mutual fund":
		return "MUTUALFUND"
	}
	return strings.ToUpper(t)
}
