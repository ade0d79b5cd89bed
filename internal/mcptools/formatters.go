package mcptools

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/marketlens/internal/interfaces"
	"github.com/bobmcallan/marketlens/internal/models"
	"github.com/bobmcallan/marketlens/internal/narrative"
)

// overview collects the dashboard panels; a nil slice with an error means
// the panel failed to load.
type overview struct {
	indices     []models.IndexQuote
	indicesErr  error
	volume      []models.VolumeRow
	volumeErr   error
	news        []models.MarketHeadline
	newsErr     error
	includeNews bool
}

// FormatAnalysisReport renders an analysis report as markdown.
func FormatAnalysisReport(r *models.AnalysisReport) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s (%s)\n\n", r.Name, r.Ticker))
	if r.Sector != "" || r.Industry != "" {
		sb.WriteString(fmt.Sprintf("**Sector:** %s | **Industry:** %s\n", orNA(r.Sector), orNA(r.Industry)))
	}
	sb.WriteString(fmt.Sprintf("**Price:** %s\n\n", narrative.FormatPrice(r.Price)))

	sb.WriteString("## Summary\n\n")
	for _, s := range r.Summary {
		sb.WriteString(s + "\n\n")
	}

	sb.WriteString("## Risk Flags\n\n")
	if len(r.Flags) == 0 {
		sb.WriteString("No risk signals detected.\n\n")
	} else {
		sb.WriteString(fmt.Sprintf("**%s**\n\n", r.FlagHeader))
		for _, f := range r.Flags {
			sb.WriteString("- " + f + "\n")
		}
		sb.WriteString("\n")
	}

	if len(r.Metrics) > 0 {
		sb.WriteString("## Key Metrics\n\n")
		writeTiles(&sb, r.Metrics)
	}

	if len(r.GrossMargin) > 0 || len(r.NetMargin) > 0 {
		sb.WriteString("## Margin Trend\n\n")
		sb.WriteString("| Period | Gross Margin | Net Margin |\n")
		sb.WriteString("|--------|--------------|------------|\n")
		net := make(map[string]float64, len(r.NetMargin))
		for _, p := range r.NetMargin {
			net[p.Date] = p.Value
		}
		for _, p := range r.GrossMargin {
			netStr := "—"
			if v, ok := net[p.Date]; ok {
				netStr = fmt.Sprintf("%.1f%%", v)
			}
			sb.WriteString(fmt.Sprintf("| %s | %.1f%% | %s |\n", p.Date, p.Value, netStr))
		}
		sb.WriteString("\n")
	}

	if len(r.EPS) > 0 {
		sb.WriteString("## EPS: Actual vs Estimate\n\n")
		sb.WriteString("| Period | Actual | Estimate |\n")
		sb.WriteString("|--------|--------|----------|\n")
		for _, p := range r.EPS {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", p.Date, formatEPS(p.Actual), formatEPS(p.Estimate)))
		}
		sb.WriteString("\n")
	}

	if len(r.Balance) > 0 {
		sb.WriteString("## Balance Sheet\n\n")
		writeTiles(&sb, r.Balance)
	}

	sb.WriteString(fmt.Sprintf("*Generated %s*\n", r.GeneratedAt.Format("2006-01-02 15:04 MST")))
	return sb.String()
}

// formatMarketOverview formats the dashboard panels as markdown
func formatMarketOverview(ov overview) string {
	var sb strings.Builder

	sb.WriteString("# Market Overview\n\n")

	sb.WriteString("## Indices\n\n")
	if ov.indicesErr != nil {
		sb.WriteString("*Indices unavailable.*\n\n")
	} else {
		sb.WriteString("| Index | Price | Change |\n")
		sb.WriteString("|-------|-------|--------|\n")
		for _, q := range ov.indices {
			price := "—"
			if q.Price != nil {
				price = fmt.Sprintf("%.2f", *q.Price)
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", q.Name, price, formatChange(q.ChangePct)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Most Active\n\n")
	switch {
	case ov.volumeErr != nil:
		sb.WriteString("*Volume data unavailable.*\n\n")
	case len(ov.volume) == 0:
		sb.WriteString("*No volume data.*\n\n")
	default:
		sb.WriteString("| Ticker | Price | Change | Volume |\n")
		sb.WriteString("|--------|-------|--------|--------|\n")
		for _, row := range ov.volume {
			sb.WriteString(fmt.Sprintf("| %s | $%.2f | %s | %s |\n", row.Ticker, row.Price, formatChange(row.ChangePct), row.VolumeFmt))
		}
		sb.WriteString("\n")
	}

	if ov.includeNews {
		sb.WriteString("## Headlines\n\n")
		switch {
		case ov.newsErr != nil:
			sb.WriteString("*Headlines unavailable.*\n")
		case len(ov.news) == 0:
			sb.WriteString("*No headlines.*\n")
		default:
			for _, h := range ov.news {
				sb.WriteString(fmt.Sprintf("- **%s** [%s](%s) (%s, %s)\n", h.Ticker, h.Title, h.Link, h.Publisher, h.Date))
			}
		}
	}

	return sb.String()
}

// formatPredictionListing formats a prediction market listing as markdown
func formatPredictionListing(l *models.PredictionListing, q interfaces.PredictionQuery) string {
	var sb strings.Builder

	sb.WriteString("# Prediction Markets\n\n")
	if q.Category != "" {
		sb.WriteString(fmt.Sprintf("**Category:** %s\n", q.Category))
	}
	if q.Search != "" {
		sb.WriteString(fmt.Sprintf("**Search:** %s\n", q.Search))
	}
	sb.WriteString(fmt.Sprintf("**Open Markets:** %d | **Showing:** %d | **24h Volume (shown):** %s\n\n",
		l.Stats.OpenMarkets, l.Stats.Showing, formatCount(l.Stats.Volume24hSum)))

	if l.LastError != "" {
		sb.WriteString(fmt.Sprintf("*Some series failed to load: %s*\n\n", l.LastError))
	}

	if len(l.Markets) == 0 {
		sb.WriteString("No markets match the current filters.\n")
		return sb.String()
	}

	sb.WriteString("| Category | Market | YES | NO | 24h Vol | Closes |\n")
	sb.WriteString("|----------|--------|-----|----|---------|--------|\n")
	for _, m := range l.Markets {
		title := m.Title
		if m.Subtitle != "" {
			title += " (" + m.Subtitle + ")"
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %d¢ | %d¢ | %s | %s |\n",
			m.Category, escapePipes(title), m.YesCents, m.NoCents, m.VolumeFmt, m.Closes))
	}

	if l.Truncated {
		sb.WriteString("\n*More markets match; narrow the category or search.*\n")
	}
	return sb.String()
}

// formatSearchResults formats ticker search matches as markdown
func formatSearchResults(query string, results []models.SearchResult) string {
	if len(results) == 0 {
		return fmt.Sprintf("No stocks or ETFs found for '%s'.", query)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Search: %s\n\n", query))
	sb.WriteString("| Symbol | Name | Type | Exchange |\n")
	sb.WriteString("|--------|------|------|----------|\n")
	for _, r := range results {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", r.Symbol, escapePipes(r.Name), r.QuoteType, orNA(r.Exchange)))
	}
	return sb.String()
}

func writeTiles(sb *strings.Builder, tiles []models.MetricTile) {
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	for _, t := range tiles {
		value := t.Value
		if t.Delta != "" {
			value += " (" + t.Delta + ")"
		}
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", t.Label, value))
	}
	sb.WriteString("\n")
}

func formatChange(pct *float64) string {
	if pct == nil {
		return "—"
	}
	return fmt.Sprintf("%+.2f%%", *pct)
}

func formatEPS(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("$%.2f", *v)
}

func formatCount(n int64) string {
	f := float64(n)
	return narrative.FormatVolume(&f)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
