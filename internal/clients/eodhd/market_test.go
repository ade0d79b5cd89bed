package eodhd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bobmcallan/marketlens/internal/interfaces"
)

func TestGetRealTimeQuote_ParsesResponse(t *testing.T) {
	ts := int64(1711670340)
	mockResp := map[string]interface{}{
		"code":          "AAPL.US",
		"timestamp":     ts,
		"open":          170.10,
		"high":          172.50,
		"low":           169.80,
		"close":         171.25,
		"volume":        float64(51000000),
		"previousClose": 169.00,
		"change":        2.25,
		"change_p":      1.3314,
	}

	var capturedPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(mockResp)
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	quote, err := client.GetRealTimeQuote(context.Background(), "AAPL.US")
	if err != nil {
		t.Fatalf("GetRealTimeQuote failed: %v", err)
	}

	if capturedPath != "/real-time/AAPL.US" {
		t.Errorf("expected path /real-time/AAPL.US, got %s", capturedPath)
	}
	if quote.Close != 171.25 {
		t.Errorf("expected close 171.25, got %.2f", quote.Close)
	}
	if quote.PreviousClose != 169.00 {
		t.Errorf("expected previous close 169.00, got %.2f", quote.PreviousClose)
	}
	if quote.Volume != 51000000 {
		t.Errorf("expected volume 51000000, got %d", quote.Volume)
	}
	if !quote.Timestamp.Equal(time.Unix(ts, 0)) {
		t.Errorf("unexpected timestamp %v", quote.Timestamp)
	}
}

func TestGetRealTimeQuote_NAFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"VIX.INDX","timestamp":"NA","close":"18.4","previousClose":"NA","volume":"NA"}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	quote, err := client.GetRealTimeQuote(context.Background(), "VIX.INDX")
	if err != nil {
		t.Fatalf("GetRealTimeQuote failed: %v", err)
	}
	if quote.Close != 18.4 {
		t.Errorf("close = %v, want 18.4", quote.Close)
	}
	if quote.PreviousClose != 0 || quote.Volume != 0 {
		t.Errorf("NA fields should decode as zero, got %+v", quote)
	}
	if !quote.Timestamp.IsZero() {
		t.Errorf("timestamp should be zero for NA, got %v", quote.Timestamp)
	}
}

func TestGetEOD_ParamsAndLimit(t *testing.T) {
	var query map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = map[string]string{
			"from":   r.URL.Query().Get("from"),
			"to":     r.URL.Query().Get("to"),
			"order":  r.URL.Query().Get("order"),
			"period": r.URL.Query().Get("period"),
		}
		w.Write([]byte(`[
			{"date":"2026-10-16","open":1,"high":2,"low":0.5,"close":1.5,"adjusted_close":1.5,"volume":1000},
			{"date":"2026-10-15","open":1,"high":2,"low":0.5,"close":1.4,"adjusted_close":1.4,"volume":900},
			{"date":"bad","close":1}
		]`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	from := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	bars, err := client.GetEOD(context.Background(), "AAPL.US",
		interfaces.WithDateRange(from, to), interfaces.WithLimit(1))
	if err != nil {
		t.Fatalf("GetEOD failed: %v", err)
	}

	if query["from"] != "2026-07-01" || query["to"] != "2026-10-17" {
		t.Errorf("date range not forwarded: %v", query)
	}
	if query["order"] != "d" || query["period"] != "d" {
		t.Errorf("default order/period not set: %v", query)
	}
	if len(bars) != 1 {
		t.Fatalf("bars = %d, want 1 after limit", len(bars))
	}
	if bars[0].Close != 1.5 || bars[0].Volume != 1000 {
		t.Errorf("unexpected bar %+v", bars[0])
	}
}

func TestGetNews_SkipsUntitled(t *testing.T) {
	var capturedS string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedS = r.URL.Query().Get("s")
		w.Write([]byte(`[
			{"date":"2026-10-17T13:30:00+00:00","title":"Apple unveils new chips","link":"https://www.reuters.com/x"},
			{"date":"2026-10-17T12:00:00+00:00","title":"  ","link":"https://example.com/y"}
		]`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	news, err := client.GetNews(context.Background(), "AAPL.US", 3)
	if err != nil {
		t.Fatalf("GetNews failed: %v", err)
	}
	if capturedS != "AAPL.US" {
		t.Errorf("s = %q, want AAPL.US", capturedS)
	}
	if len(news) != 1 {
		t.Fatalf("news = %d, want 1", len(news))
	}
	if news[0].Source != "reuters.com" {
		t.Errorf("Source = %q, want reuters.com", news[0].Source)
	}
	if news[0].PublishedAt.IsZero() {
		t.Error("PublishedAt should be parsed")
	}
}

func TestSearch_MapsTypes(t *testing.T) {
	var capturedPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		w.Write([]byte(`[
			{"Code":"AAPL","Exchange":"US","Name":"Apple Inc","Type":"Common Stock"},
			{"Code":"AAPY","Exchange":"US","Name":"Kurv Yield Premium Strategy Apple","Type":"ETF"},
			{"Code":"AAPL","Exchange":"MX","Name":"Apple Inc","Type":"FUND"}
		]`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	results, err := client.Search(context.Background(), "apple", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if capturedPath != "/search/apple" {
		t.Errorf("path = %s, want /search/apple", capturedPath)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	if results[0].Symbol != "AAPL.US" || results[0].QuoteType != "EQUITY" {
		t.Errorf("unexpected first result %+v", results[0])
	}
	if results[1].QuoteType != "ETF" {
		t.Errorf("second result type = %s, want ETF", results[1].QuoteType)
	}
	if results[2].QuoteType != "MUTUALFUND" {
		t.Errorf("third result type = %s, want MUTUALFUND", results[2].QuoteType)
	}
}

func TestClient_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	if _, err := client.GetRealTimeQuote(ctx, "AAPL.US"); err == nil {
		t.Error("expected error for cancelled context")
	}
}
