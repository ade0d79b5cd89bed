package narrative

import (
	"fmt"

	"github.com/bobmcallan/marketlens/internal/models"
)

// Risk flag texts with no interpolated values.
const (
	FlagUnprofitable = "Negative profit margin — company is currently unprofitable."
	FlagDecelerating = "Revenue growth is decelerating over recent quarters."
	FlagCashBurn     = "Negative operating cash flow — the business is burning cash."
)

// LeverageThreshold is the debt-to-equity percentage above which leverage is flagged.
const LeverageThreshold = 200.0

// Flags runs every risk check independently and returns the ones that fire,
// in a fixed order.
func Flags(s *models.FinancialSnapshot) []string {
	flags := []string{}
	if s == nil {
		return flags
	}

	if de := s.Info.DebtToEquity; usable(de) && *de > LeverageThreshold {
		flags = append(flags, fmt.Sprintf("High debt-to-equity ratio (%.0f%%) — elevated financial leverage.", *de))
	}

	if pm := s.Info.ProfitMargin; usable(pm) && *pm < 0 {
		flags = append(flags, FlagUnprofitable)
	}

	if decelerating(s.IncomeStatement) {
		flags = append(flags, FlagDecelerating)
	}

	if ocf := s.Info.OperatingCashflow; usable(ocf) && *ocf < 0 {
		flags = append(flags, FlagCashBurn)
	}

	return flags
}

// decelerating compares the most recent quarter-over-quarter revenue change
// with the oldest retained one across the latest four periods. Only the
// endpoints are compared.
func decelerating(income models.Statement) bool {
	if len(income) < 4 {
		return false
	}
	label, ok := FindLineItem(income, RevenueLabels)
	if !ok {
		return false
	}

	var chgs []float64
	for i := 0; i < 3; i++ {
		if c := PercentChange(income.Value(i, label), income.Value(i+1, label)); c != nil {
			chgs = append(chgs, *c)
		}
	}
	return len(chgs) >= 2 && chgs[0] < chgs[len(chgs)-1]
}

// FlagHeader is the caption for a non-empty flag list.
func FlagHeader(n int) string {
	if n <= 0 {
		return ""
	}
	if n == 1 {
		return "⚠ 1 Risk Signal Detected"
	}
	return fmt.Sprintf("⚠ %d Risk Signals Detected", n)
}
