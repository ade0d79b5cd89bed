package eodhd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bobmcallan/marketlens/internal/models"
)

// maxStatementPeriods bounds how many quarters are kept per statement.
const maxStatementPeriods = 12

var titleCaser = cases.Title(language.English, cases.NoLower)

// GetFundamentals retrieves company fundamentals and quarterly statements
// and maps them onto a snapshot. Attributes the API does not report stay nil.
// CurrentPrice is not part of this endpoint and is left unset.
func (c *Client) GetFundamentals(ctx context.Context, ticker string) (*models.FinancialSnapshot, error) {
	path := fmt.Sprintf("/fundamentals/%s", url.PathEscape(ticker))

	var resp fundamentalsResponse
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}

	trailingPE := resp.Valuation.TrailingPE.Value
	if trailingPE == nil {
		trailingPE = resp.Highlights.PERatio.Value
	}

	snapshot := &models.FinancialSnapshot{
		Ticker: ticker,
		Info: models.CompanyInfo{
			Name:           resp.General.Name,
			Sector:         resp.General.Sector,
			Industry:       resp.General.Industry,
			Currency:       resp.General.CurrencyCode,
			MarketCap:      resp.Highlights.MarketCapitalization.Value,
			TotalRevenue:   resp.Highlights.RevenueTTM.Value,
			TrailingEPS:    resp.Highlights.EarningsShare.Value,
			TrailingPE:     trailingPE,
			ForwardPE:      resp.Valuation.ForwardPE.Value,
			ProfitMargin:   resp.Highlights.ProfitMargin.Value,
			RevenueGrowth:  resp.Highlights.QuarterlyRevenueGrowthYOY.Value,
			EarningsGrowth: resp.Highlights.QuarterlyEarningsGrowthYOY.Value,
		},
		IncomeStatement: resp.Financials.IncomeStatement.statement(),
		BalanceSheet:    resp.Financials.BalanceSheet.statement(),
		CashFlow:        resp.Financials.CashFlow.statement(),
		EarningsHistory: resp.Earnings.History.periods(time.Now()),
	}

	if gp, rev := resp.Highlights.GrossProfitTTM.Value, resp.Highlights.RevenueTTM.Value; gp != nil && rev != nil && *rev != 0 {
		snapshot.Info.GrossMargin = models.Float(*gp / *rev)
	}

	c.logger.Debug().
		Str("ticker", ticker).
		Int("income_periods", len(snapshot.IncomeStatement)).
		Int("balance_periods", len(snapshot.BalanceSheet)).
		Int("earnings_periods", len(snapshot.EarningsHistory)).
		Msg("EODHD fundamentals mapped")

	return snapshot, nil
}

// fundamentalsResponse represents the API response structure
type fundamentalsResponse struct {
	General struct {
		Code         string `json:"Code"`
		Type         string `json:"Type"`
		Name         string `json:"Name"`
		Exchange     string `json:"Exchange"`
		CurrencyCode string `json:"CurrencyCode"`
		Sector       string `json:"Sector"`
		Industry     string `json:"Industry"`
	} `json:"General"`
	Highlights struct {
		MarketCapitalization       optFloat64 `json:"MarketCapitalization"`
		PERatio                    optFloat64 `json:"PERatio"`
		EarningsShare              optFloat64 `json:"EarningsShare"`
		ProfitMargin               optFloat64 `json:"ProfitMargin"`
		RevenueTTM                 optFloat64 `json:"RevenueTTM"`
		GrossProfitTTM             optFloat64 `json:"GrossProfitTTM"`
		QuarterlyRevenueGrowthYOY  optFloat64 `json:"QuarterlyRevenueGrowthYOY"`
		QuarterlyEarningsGrowthYOY optFloat64 `json:"QuarterlyEarningsGrowthYOY"`
	} `json:"Highlights"`
	Valuation struct {
		TrailingPE optFloat64 `json:"TrailingPE"`
		ForwardPE  optFloat64 `json:"ForwardPE"`
	} `json:"Valuation"`
	Earnings struct {
		History earningsHistory `json:"History"`
	} `json:"Earnings"`
	Financials struct {
		BalanceSheet    statementBlock `json:"Balance_Sheet"`
		CashFlow        statementBlock `json:"Cash_Flow"`
		IncomeStatement statementBlock `json:"Income_Statement"`
	} `json:"Financials"`
}

// isEmptyArray reports whether the API sent [] where an object was expected.
func isEmptyArray(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(data), []byte("["))
}

// statementBlock holds one statement keyed by period date.
type statementBlock struct {
	Quarterly map[string]map[string]json.RawMessage `json:"quarterly"`
}

func (b *statementBlock) UnmarshalJSON(data []byte) error {
	if isEmptyArray(data) || string(bytes.TrimSpace(data)) == "null" {
		return nil
	}
	type plain statementBlock
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*b = statementBlock(p)
	return nil
}

// statement converts the raw block into periods, most recent first, with
// camelCase keys turned into display labels. Non-numeric fields are dropped.
func (b statementBlock) statement() models.Statement {
	dates := make([]string, 0, len(b.Quarterly))
	for d := range b.Quarterly {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	if len(dates) > maxStatementPeriods {
		dates = dates[:maxStatementPeriods]
	}

	stmt := make(models.Statement, 0, len(dates))
	for _, d := range dates {
		items := models.LineItems{}
		for key, raw := range b.Quarterly[d] {
			v, ok, err := parseFlex(raw)
			if err != nil || !ok {
				continue
			}
			items[labelFor(key)] = v
		}
		stmt = append(stmt, models.StatementPeriod{Date: d, Items: items})
	}
	return stmt
}

// labelFor turns "totalRevenue" into "Total Revenue".
func labelFor(key string) string {
	var b strings.Builder
	runes := []rune(key)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte(' ')
			}
		}
		b.WriteRune(r)
	}
	return titleCaser.String(b.String())
}

type earningsEntry struct {
	Date        string     `json:"date"`
	EPSActual   optFloat64 `json:"epsActual"`
	EPSEstimate optFloat64 `json:"epsEstimate"`
}

type earningsHistory map[string]earningsEntry

func (h *earningsHistory) UnmarshalJSON(data []byte) error {
	if isEmptyArray(data) || string(bytes.TrimSpace(data)) == "null" {
		return nil
	}
	m := map[string]earningsEntry{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*h = m
	return nil
}

// periods returns reported quarters, most recent first. Scheduled quarters
// after now with no actual yet are skipped.
func (h earningsHistory) periods(now time.Time) []models.EarningsPeriod {
	dates := make([]string, 0, len(h))
	for d := range h {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	out := make([]models.EarningsPeriod, 0, len(dates))
	for _, d := range dates {
		e := h[d]
		if e.EPSActual.Value == nil {
			if t, err := time.Parse("2006-01-02", d); err == nil && t.After(now) {
				continue
			}
		}
		out = append(out, models.EarningsPeriod{
			Date:     d,
			Actual:   e.EPSActual.Value,
			Estimate: e.EPSEstimate.Value,
		})
	}
	return out
}
