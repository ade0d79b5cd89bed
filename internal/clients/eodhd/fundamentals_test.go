package eodhd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const fundamentalsFixture = `{
  "General": {"Code": "AAPL", "Type": "Common Stock", "Name": "Apple Inc", "Exchange": "NASDAQ",
              "CurrencyCode": "USD", "Sector": "Technology", "Industry": "Consumer Electronics"},
  "Highlights": {
    "MarketCapitalization": 3100000000000,
    "PERatio": 37.4,
    "EarningsShare": "6.08",
    "ProfitMargin": 0.24,
    "RevenueTTM": 400000000000,
    "GrossProfitTTM": 184000000000,
    "QuarterlyRevenueGrowthYOY": 0.061,
    "QuarterlyEarningsGrowthYOY": null
  },
  "Valuation": {"TrailingPE": 37.1, "ForwardPE": 31.2},
  "Earnings": {
    "History": {
      "2099-09-30": {"date": "2099-09-30", "epsActual": null, "epsEstimate": 1.6},
      "2026-06-30": {"date": "2026-06-30", "epsActual": 1.57, "epsEstimate": 1.43},
      "2026-03-31": {"date": "2026-03-31", "epsActual": 1.52, "epsEstimate": null}
    }
  },
  "Financials": {
    "Income_Statement": {
      "currency_symbol": "USD",
      "quarterly": {
        "2026-03-31": {"date": "2026-03-31", "filing_date": "2026-05-02", "currency_symbol": "USD",
                       "totalRevenue": "95359000000.00", "grossProfit": "44867000000.00", "netIncome": "24780000000.00"},
        "2026-06-30": {"date": "2026-06-30", "filing_date": "2026-08-01", "currency_symbol": "USD",
                       "totalRevenue": "94036000000.00", "grossProfit": "43718000000.00", "netIncome": null}
      }
    },
    "Balance_Sheet": {
      "quarterly": {
        "2026-06-30": {"date": "2026-06-30", "cashAndEquivalents": "36269000000.00",
                       "shortLongTermDebtTotal": "101698000000.00", "totalStockholderEquity": "65830000000.00"}
      }
    },
    "Cash_Flow": []
  }
}`

func TestGetFundamentals_MapsSnapshot(t *testing.T) {
	var capturedPath, capturedToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		capturedToken = r.URL.Query().Get("api_token")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(fundamentalsFixture))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	snap, err := client.GetFundamentals(context.Background(), "AAPL.US")
	if err != nil {
		t.Fatalf("GetFundamentals failed: %v", err)
	}

	if capturedPath != "/fundamentals/AAPL.US" {
		t.Errorf("path = %s, want /fundamentals/AAPL.US", capturedPath)
	}
	if capturedToken != "test-key" {
		t.Errorf("api_token = %q, want test-key", capturedToken)
	}

	info := snap.Info
	if info.Name != "Apple Inc" || info.Sector != "Technology" || info.Currency != "USD" {
		t.Errorf("unexpected general info: %+v", info)
	}
	if info.TrailingEPS == nil || *info.TrailingEPS != 6.08 {
		t.Errorf("TrailingEPS = %v, want 6.08 from string value", info.TrailingEPS)
	}
	if info.TrailingPE == nil || *info.TrailingPE != 37.1 {
		t.Errorf("TrailingPE = %v, want Valuation.TrailingPE 37.1", info.TrailingPE)
	}
	if info.ForwardPE == nil || *info.ForwardPE != 31.2 {
		t.Errorf("ForwardPE = %v, want 31.2", info.ForwardPE)
	}
	if info.EarningsGrowth != nil {
		t.Errorf("EarningsGrowth = %v, want nil for null", *info.EarningsGrowth)
	}
	if info.GrossMargin == nil || *info.GrossMargin != 0.46 {
		t.Errorf("GrossMargin = %v, want 0.46", info.GrossMargin)
	}
	if info.CurrentPrice != nil {
		t.Error("CurrentPrice should be left unset by fundamentals")
	}

	if len(snap.IncomeStatement) != 2 {
		t.Fatalf("income periods = %d, want 2", len(snap.IncomeStatement))
	}
	if snap.IncomeStatement[0].Date != "2026-06-30" {
		t.Errorf("first period = %s, want most recent 2026-06-30", snap.IncomeStatement[0].Date)
	}
	if v := snap.IncomeStatement.Value(0, "Total Revenue"); v == nil || *v != 94036000000 {
		t.Errorf("Total Revenue = %v, want 94036000000", v)
	}
	if v := snap.IncomeStatement.Value(0, "Net Income"); v != nil {
		t.Errorf("Net Income = %v, want absent for null", *v)
	}
	if _, ok := snap.IncomeStatement[0].Items["Currency Symbol"]; ok {
		t.Error("non-numeric fields should be dropped")
	}

	if v := snap.BalanceSheet.Value(0, "Short Long Term Debt Total"); v == nil {
		t.Error("expected Short Long Term Debt Total in balance sheet")
	}
	if len(snap.CashFlow) != 0 {
		t.Errorf("cash flow periods = %d, want 0 for empty array", len(snap.CashFlow))
	}

	if len(snap.EarningsHistory) != 2 {
		t.Fatalf("earnings periods = %d, want 2 (future quarter skipped)", len(snap.EarningsHistory))
	}
	if snap.EarningsHistory[0].Date != "2026-06-30" {
		t.Errorf("earnings[0] = %s, want 2026-06-30", snap.EarningsHistory[0].Date)
	}
	if snap.EarningsHistory[1].Estimate != nil {
		t.Error("earnings[1].Estimate should be nil for null")
	}
}

func TestGetFundamentals_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Ticker Not Found.", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.GetFundamentals(context.Background(), "NOPE.US")
	if err == nil {
		t.Fatal("expected error for 404")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", apiErr.StatusCode)
	}
	if apiErr.Endpoint != "/fundamentals/NOPE.US" {
		t.Errorf("Endpoint = %s", apiErr.Endpoint)
	}
}

func TestLabelFor(t *testing.T) {
	cases := map[string]string{
		"totalRevenue":                     "Total Revenue",
		"netIncome":                        "Net Income",
		"netIncomeFromContinuingOps":       "Net Income From Continuing Ops",
		"totalCashFromOperatingActivities": "Total Cash From Operating Activities",
		"shortLongTermDebtTotal":           "Short Long Term Debt Total",
		"ebit":                             "Ebit",
		"commonStockSharesOutstanding":     "Common Stock Shares Outstanding",
	}
	for in, want := range cases {
		if got := labelFor(in); got != want {
			t.Errorf("labelFor(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEarningsHistory_KeepsPastQuartersWithoutActual(t *testing.T) {
	h := earningsHistory{
		"2026-03-31": {},
		"2026-12-31": {},
	}
	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	periods := h.periods(now)
	if len(periods) != 1 || periods[0].Date != "2026-03-31" {
		t.Errorf("periods = %+v, want only 2026-03-31", periods)
	}
}

func TestParseFlex(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{`12.5`, 12.5, true},
		{`"6.08"`, 6.08, true},
		{`null`, 0, false},
		{`"N/A"`, 0, false},
		{`"NaN"`, 0, false},
		{`"Inf"`, 0, false},
		{`"-Infinity"`, 0, false},
	}
	for _, tt := range tests {
		got, ok, err := parseFlex([]byte(tt.in))
		if err != nil {
			t.Errorf("parseFlex(%s) error: %v", tt.in, err)
			continue
		}
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("parseFlex(%s) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
