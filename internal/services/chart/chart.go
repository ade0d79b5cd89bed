// Package chart renders analysis and dashboard series as PNG line charts
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/marketlens/internal/models"
	"github.com/bobmcallan/marketlens/internal/narrative"
)

// Chart kinds served per ticker
const (
	KindMargins = "margins"
	KindIncome  = "income"
	KindEPS     = "eps"
)

// ErrNotEnoughData is returned when a series has fewer than two points.
var ErrNotEnoughData = errors.New("not enough data to chart")

const (
	width  = 900
	height = 400
)

var (
	colorBlue  = drawing.ColorFromHex("2563eb") // blue-600
	colorGreen = drawing.ColorFromHex("16a34a") // green-600
	colorGray  = drawing.ColorFromHex("9ca3af") // gray-400
)

// point is one dated value on a line
type point struct {
	date  time.Time
	value float64
}

// line is a named series with its style
type line struct {
	name   string
	points []point
	style  gochart.Style
}

// Render draws the named chart kind from a report.
func Render(kind string, report *models.AnalysisReport) ([]byte, error) {
	switch kind {
	case KindMargins:
		return RenderMargins(report.GrossMargin, report.NetMargin)
	case KindIncome:
		return RenderIncome(report.Revenue, report.NetIncome)
	case KindEPS:
		return RenderEPS(report.EPS)
	}
	return nil, fmt.Errorf("unknown chart kind %q", kind)
}

// RenderMargins plots gross and net margin in percent.
func RenderMargins(gross, net []models.MarginPoint) ([]byte, error) {
	return render("Margin Trend", percentFormatter, []line{
		{name: "Gross Margin", points: marginPoints(gross), style: solid(colorBlue)},
		{name: "Net Margin", points: marginPoints(net), style: solid(colorGreen)},
	})
}

// RenderIncome plots quarterly revenue against net income.
func RenderIncome(revenue, netIncome []models.PeriodValue) ([]byte, error) {
	return render("Revenue vs Net Income", magnitudeFormatter, []line{
		{name: "Revenue", points: periodPoints(revenue), style: solid(colorBlue)},
		{name: "Net Income", points: periodPoints(netIncome), style: solid(colorGreen)},
	})
}

// RenderEPS plots reported EPS against the consensus estimate.
func RenderEPS(eps []models.EPSPoint) ([]byte, error) {
	var actual, estimate []point
	for _, p := range eps {
		d, ok := parseDate(p.Date)
		if !ok {
			continue
		}
		if p.Actual != nil {
			actual = append(actual, point{d, *p.Actual})
		}
		if p.Estimate != nil {
			estimate = append(estimate, point{d, *p.Estimate})
		}
	}
	return render("EPS: Actual vs Estimate", epsFormatter, []line{
		{name: "Actual", points: actual, style: solid(colorBlue)},
		{name: "Estimate", points: estimate, style: dashed(colorGray)},
	})
}

// RenderIndexHistory plots daily closes for an index.
func RenderIndexHistory(name string, history []models.PricePoint) ([]byte, error) {
	points := make([]point, 0, len(history))
	for _, p := range history {
		points = append(points, point{p.Date, p.Close})
	}
	return render(name+" (3 Months)", priceFormatter, []line{
		{name: name, points: points, style: solid(colorBlue)},
	})
}

// render draws every line with at least two points; at least one such line
// is required.
func render(title string, yFormat gochart.ValueFormatter, lines []line) ([]byte, error) {
	var series []gochart.Series
	for _, l := range lines {
		if len(l.points) < 2 {
			continue
		}
		sort.SliceStable(l.points, func(i, j int) bool { return l.points[i].date.Before(l.points[j].date) })

		xs := make([]time.Time, len(l.points))
		ys := make([]float64, len(l.points))
		for i, p := range l.points {
			xs[i] = p.date
			ys[i] = p.value
		}
		series = append(series, gochart.TimeSeries{
			Name:    l.name,
			Style:   l.style,
			XValues: xs,
			YValues: ys,
		})
	}
	if len(series) == 0 {
		return nil, ErrNotEnoughData
	}

	graph := gochart.Chart{
		Title:  title,
		Width:  width,
		Height: height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: gochart.XAxis{
			TickPosition: gochart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return gochart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: gochart.YAxis{
			ValueFormatter: yFormat,
		},
		Series: series,
	}
	if len(series) > 1 {
		graph.Elements = []gochart.Renderable{
			gochart.LegendLeft(&graph),
		}
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

func solid(c drawing.Color) gochart.Style {
	return gochart.Style{StrokeColor: c, StrokeWidth: 2.5, DotColor: c, DotWidth: 3}
}

func dashed(c drawing.Color) gochart.Style {
	return gochart.Style{StrokeColor: c, StrokeWidth: 1.5, StrokeDashArray: []float64{5.0, 3.0}, DotColor: c, DotWidth: 3}
}

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", s)
	return t, err == nil
}

func marginPoints(in []models.MarginPoint) []point {
	out := make([]point, 0, len(in))
	for _, p := range in {
		if d, ok := parseDate(p.Date); ok {
			out = append(out, point{d, p.Value})
		}
	}
	return out
}

func periodPoints(in []models.PeriodValue) []point {
	out := make([]point, 0, len(in))
	for _, p := range in {
		if d, ok := parseDate(p.Date); ok {
			out = append(out, point{d, p.Value})
		}
	}
	return out
}

func percentFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f%%", f)
	}
	return ""
}

func magnitudeFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return narrative.FormatMagnitude(&f)
	}
	return ""
}

func epsFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("$%.2f", f)
	}
	return ""
}

func priceFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return ""
}
