package kalshi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetMarkets_ParsesResponse(t *testing.T) {
	var capturedPath, status, limit, series string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		status = r.URL.Query().Get("status")
		limit = r.URL.Query().Get("limit")
		series = r.URL.Query().Get("series_ticker")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"cursor":"abc","markets":[
			{"ticker":"KXFED-26DEC-T4.00","event_ticker":"KXFED-26DEC","title":"Fed rate above 4.00%?",
			 "subtitle":"December meeting","last_price":62,"yes_bid":61,"no_bid":37,
			 "volume":120000,"volume_24h":3400,"close_time":"2026-12-10T19:00:00Z",
			 "created_time":"2026-09-01T12:00:00Z","status":"active"}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	markets, err := client.GetMarkets(context.Background(), "KXFED", "open", 50)
	if err != nil {
		t.Fatalf("GetMarkets failed: %v", err)
	}

	if capturedPath != "/markets" {
		t.Errorf("path = %s, want /markets", capturedPath)
	}
	if status != "open" || limit != "50" || series != "KXFED" {
		t.Errorf("query = status:%s limit:%s series:%s", status, limit, series)
	}
	if len(markets) != 1 {
		t.Fatalf("markets = %d, want 1", len(markets))
	}
	m := markets[0]
	if m.EventTicker != "KXFED-26DEC" {
		t.Errorf("EventTicker = %s", m.EventTicker)
	}
	if m.LastPrice != 62 {
		t.Errorf("LastPrice = %d, want 62", m.LastPrice)
	}
	if m.Volume24h != 3400 {
		t.Errorf("Volume24h = %d, want 3400", m.Volume24h)
	}
	if m.CloseTime != "2026-12-10T19:00:00Z" {
		t.Errorf("CloseTime = %s", m.CloseTime)
	}
}

func TestGetMarkets_NonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.GetMarkets(context.Background(), "KXBTC", "open", 50)
	if err == nil {
		t.Fatal("expected error for 429")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Error() != "HTTP 429 for KXBTC" {
		t.Errorf("Error() = %q, want %q", apiErr.Error(), "HTTP 429 for KXBTC")
	}
}

func TestGetMarkets_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"markets": [`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	if _, err := client.GetMarkets(context.Background(), "KXETH", "open", 50); err == nil {
		t.Error("expected decode error")
	}
}
