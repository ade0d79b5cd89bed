package narrative

import (
	"sort"
	"strings"

	"github.com/bobmcallan/marketlens/internal/models"
)

// Ranked substring candidates for locating statement rows. Earlier
// entries win over later ones.
var (
	RevenueLabels     = []string{"Total Revenue", "Revenue"}
	NetIncomeLabels   = []string{"Net Income"}
	GrossProfitLabels = []string{"Gross Profit"}
	CashLabels        = []string{"Cash And Cash Equivalents", "Cash And Equivalents", "Cash Equivalents"}
	DebtLabels        = []string{"Total Debt", "Short Long Term Debt Total", "Long Term Debt"}
	EquityLabels      = []string{"Stockholders Equity", "Stockholder Equity", "Total Equity"}
	OperatingCFLabels = []string{"Operating Cash Flow", "Total Cash From Operating Activities"}
)

// FindLabel returns the first label (in sorted order) containing the
// highest-ranked candidate substring. Matching is case-sensitive.
func FindLabel(labels []string, candidates []string) (string, bool) {
	sorted := labels
	if !sort.StringsAreSorted(labels) {
		sorted = append([]string(nil), labels...)
		sort.Strings(sorted)
	}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		for _, l := range sorted {
			if strings.Contains(l, c) {
				return l, true
			}
		}
	}
	return "", false
}

// FindLineItem resolves a candidate list against every label in stmt.
func FindLineItem(stmt models.Statement, candidates []string) (string, bool) {
	return FindLabel(stmt.Labels(), candidates)
}
