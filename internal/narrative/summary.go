package narrative

import (
	"fmt"
	"math"

	"github.com/bobmcallan/marketlens/internal/models"
)

// FallbackSummary is emitted when no other summary rule has data.
const FallbackSummary = "Summary data is limited for this ticker. See the charts below for trends."

// Summary produces the plain-English quarter summary. Rules run in a fixed
// order and each is skipped independently when its inputs are missing.
// Emphasis uses Markdown bold.
func Summary(s *models.FinancialSnapshot) []string {
	var lines []string
	if s != nil {
		lines = append(lines, revenueTrend(s.IncomeStatement)...)
		lines = append(lines, epsResult(s.EarningsHistory)...)
		lines = append(lines, profitability(s.Info.ProfitMargin)...)
		lines = append(lines, valuation(s.Info.ForwardPE, s.Info.TrailingPE)...)
	}
	if len(lines) == 0 {
		lines = []string{FallbackSummary}
	}
	return lines
}

func revenueTrend(income models.Statement) []string {
	if len(income) < 2 {
		return nil
	}
	label, ok := FindLineItem(income, RevenueLabels)
	if !ok {
		return nil
	}
	latest := income.Value(0, label)
	chg := PercentChange(latest, income.Value(1, label))
	if chg == nil {
		return nil
	}
	direction := "grew"
	if *chg < 0 {
		direction = "declined"
	}
	return []string{fmt.Sprintf("Revenue %s **%.1f%%** year-over-year to **%s**.",
		direction, math.Abs(*chg), FormatMagnitude(latest))}
}

func epsResult(history []models.EarningsPeriod) []string {
	if len(history) == 0 || !usable(history[0].Actual) {
		return nil
	}
	actual := *history[0].Actual
	lines := []string{fmt.Sprintf("EPS came in at **$%.2f**.", actual)}

	est := history[0].Estimate
	if usable(est) && *est != 0 {
		diff := actual - *est
		verdict := "beat"
		if diff < 0 {
			verdict = "missed"
		}
		lines = append(lines, fmt.Sprintf("This **%s** analyst estimates of $%.2f by $%.2f (%.1f%%).",
			verdict, *est, math.Abs(diff), math.Abs(diff / *est)*100))
	}
	return lines
}

// MarginLabel classifies a net margin in percent.
func MarginLabel(pct float64) string {
	switch {
	case pct > 20:
		return "strong"
	case pct > 10:
		return "healthy"
	case pct > 0:
		return "thin"
	}
	return "negative"
}

func profitability(margin *float64) []string {
	if !usable(margin) {
		return nil
	}
	pct := *margin * 100
	return []string{fmt.Sprintf("Net profit margin is **%.1f%%** — considered **%s**.", pct, MarginLabel(pct))}
}

func valuation(forward, trailing *float64) []string {
	if !usable(forward) || !usable(trailing) || *forward == 0 || *trailing == 0 {
		return nil
	}
	if *forward < *trailing {
		return []string{fmt.Sprintf("Forward P/E (%.1fx) is below trailing P/E (%.1fx) — market expects **earnings growth** ahead.",
			*forward, *trailing)}
	}
	return []string{fmt.Sprintf("Forward P/E (%.1fx) is above trailing P/E (%.1fx) — market expects **earnings to moderate**.",
		*forward, *trailing)}
}
