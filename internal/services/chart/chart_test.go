package chart

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/bobmcallan/marketlens/internal/models"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func f(v float64) *float64 { return &v }

func TestRenderMargins(t *testing.T) {
	gross := []models.MarginPoint{{Date: "2026-06-30", Value: 46.2}, {Date: "2026-03-31", Value: 45.9}, {Date: "2025-12-31", Value: 46.5}}
	net := []models.MarginPoint{{Date: "2026-06-30", Value: 25.1}, {Date: "2026-03-31", Value: 24.4}}

	png, err := RenderMargins(gross, net)
	if err != nil {
		t.Fatalf("RenderMargins failed: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("expected PNG output")
	}
}

func TestRenderIncome_OneUsableLine(t *testing.T) {
	revenue := []models.PeriodValue{{Date: "2026-06-30", Value: 94e9}, {Date: "2026-03-31", Value: 95e9}}
	net := []models.PeriodValue{{Date: "2026-06-30", Value: 23e9}}

	png, err := RenderIncome(revenue, net)
	if err != nil {
		t.Fatalf("RenderIncome failed: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("expected PNG output")
	}
}

func TestRenderEPS(t *testing.T) {
	eps := []models.EPSPoint{
		{Date: "2026-03-31", Actual: f(1.65), Estimate: f(1.62)},
		{Date: "2026-06-30", Actual: f(1.57), Estimate: f(1.43)},
		{Date: "bad-date", Actual: f(9)},
	}
	if _, err := RenderEPS(eps); err != nil {
		t.Fatalf("RenderEPS failed: %v", err)
	}
}

func TestRender_NotEnoughData(t *testing.T) {
	_, err := RenderMargins([]models.MarginPoint{{Date: "2026-06-30", Value: 1}}, nil)
	if !errors.Is(err, ErrNotEnoughData) {
		t.Errorf("err = %v, want ErrNotEnoughData", err)
	}
	_, err = RenderEPS(nil)
	if !errors.Is(err, ErrNotEnoughData) {
		t.Errorf("err = %v, want ErrNotEnoughData", err)
	}
}

func TestRender_UnknownKind(t *testing.T) {
	if _, err := Render("candles", &models.AnalysisReport{}); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestRenderIndexHistory(t *testing.T) {
	start := time.Date(2026, 7, 20, 0, 0, 0, 0, time.UTC)
	var history []models.PricePoint
	for i := 0; i < 60; i++ {
		history = append(history, models.PricePoint{Date: start.AddDate(0, 0, i), Close: 5000 + float64(i)})
	}
	png, err := RenderIndexHistory("S&P 500", history)
	if err != nil {
		t.Fatalf("RenderIndexHistory failed: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("expected PNG output")
	}
}
