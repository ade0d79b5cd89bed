package narrative

import (
	"math"

	"github.com/bobmcallan/marketlens/internal/models"
)

// GrossMargins returns gross profit / revenue in percent per period, up to
// limit periods (all when limit <= 0).
func GrossMargins(income models.Statement, limit int) []models.MarginPoint {
	return marginSeries(income, GrossProfitLabels, limit)
}

// NetMargins returns net income / revenue in percent per period.
func NetMargins(income models.Statement, limit int) []models.MarginPoint {
	return marginSeries(income, NetIncomeLabels, limit)
}

// marginSeries omits periods where either row is missing or revenue is
// zero; values are rounded to one decimal and are always finite.
func marginSeries(income models.Statement, numerator []string, limit int) []models.MarginPoint {
	points := []models.MarginPoint{}

	revLabel, ok := FindLineItem(income, RevenueLabels)
	if !ok {
		return points
	}
	numLabel, ok := FindLineItem(income, numerator)
	if !ok {
		return points
	}

	for i := range capPeriods(income, limit) {
		rev := income.Value(i, revLabel)
		num := income.Value(i, numLabel)
		if rev == nil || num == nil || *rev == 0 {
			continue
		}
		m := math.RoundToEven(*num / *rev * 1000) / 10
		if math.IsNaN(m) || math.IsInf(m, 0) {
			continue
		}
		points = append(points, models.MarginPoint{Date: income[i].Date, Value: m})
	}
	return points
}

func capPeriods(stmt models.Statement, limit int) models.Statement {
	if limit > 0 && len(stmt) > limit {
		return stmt[:limit]
	}
	return stmt
}
