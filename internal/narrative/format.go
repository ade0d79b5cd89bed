// Package narrative turns a financial snapshot into plain-English summary
// lines, risk flags, derived margin series and display strings.
//
// Every function in this package is pure: no I/O, no logging, no shared
// state. Optional numbers are *float64 where nil and NaN both mean absent.
package narrative

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// NotAvailable is shown wherever a value is absent.
const NotAvailable = "N/A"

// usable reports whether v holds a finite number.
func usable(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// FormatMagnitude renders a currency amount scaled to T/B/M, or grouped
// whole dollars below one million ("$-1,234").
func FormatMagnitude(n *float64) string {
	if !usable(n) {
		return NotAvailable
	}
	v := *n
	abs := math.Abs(v)
	switch {
	case abs >= 1e12:
		return fmt.Sprintf("$%.2fT", v/1e12)
	case abs >= 1e9:
		return fmt.Sprintf("$%.2fB", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("$%.2fM", v/1e6)
	}
	return "$" + humanize.Comma(int64(math.RoundToEven(v)))
}

// FormatVolume renders a share or contract count scaled to B/M/K.
func FormatVolume(n *float64) string {
	if !usable(n) {
		return NotAvailable
	}
	v := *n
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.1fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.1fK", v/1e3)
	}
	return fmt.Sprintf("%.0f", v)
}

// FormatPercent renders a value that is already in percent, one decimal.
func FormatPercent(n *float64) string {
	if !usable(n) {
		return NotAvailable
	}
	return fmt.Sprintf("%.1f%%", *n)
}

// FormatPrice renders a share price as "$1,234.56". Zero is treated as
// not reported.
func FormatPrice(n *float64) string {
	if !usable(n) || *n == 0 {
		return NotAvailable
	}
	return "$" + humanize.FormatFloat("#,###.##", *n)
}

// FormatMultiple renders a valuation multiple as "24.3x". Zero is treated
// as not reported.
func FormatMultiple(n *float64) string {
	if !usable(n) || *n == 0 {
		return NotAvailable
	}
	return fmt.Sprintf("%.1fx", *n)
}

// PercentChange returns (new-old)/|old|*100, or nil when either side is
// absent or old is zero.
func PercentChange(newVal, oldVal *float64) *float64 {
	if !usable(newVal) || !usable(oldVal) || *oldVal == 0 {
		return nil
	}
	chg := (*newVal - *oldVal) / math.Abs(*oldVal) * 100
	return &chg
}
