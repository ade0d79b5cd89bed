package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/marketlens/internal/models"
	"github.com/bobmcallan/marketlens/internal/services/analysis"
)

type stubAnalysis struct {
	report *models.AnalysisReport
	err    error
}

func (s *stubAnalysis) GetSnapshot(context.Context, string) (*models.FinancialSnapshot, error) {
	return nil, nil
}

func (s *stubAnalysis) Analyze(context.Context, string) (*models.AnalysisReport, error) {
	return s.report, s.err
}

func TestWriteAnalysis_Markdown(t *testing.T) {
	var buf bytes.Buffer
	svc := &stubAnalysis{report: &models.AnalysisReport{Ticker: "AAPL.US", Name: "Apple Inc", Summary: []string{"Revenue grew."}}}

	require.NoError(t, writeAnalysis(context.Background(), &buf, svc, "AAPL", false))
	assert.Contains(t, buf.String(), "# Apple Inc (AAPL.US)")
	assert.Contains(t, buf.String(), "Revenue grew.")
}

func TestWriteAnalysis_JSON(t *testing.T) {
	var buf bytes.Buffer
	svc := &stubAnalysis{report: &models.AnalysisReport{Ticker: "AAPL.US", Name: "Apple Inc"}}

	require.NoError(t, writeAnalysis(context.Background(), &buf, svc, "AAPL", true))
	assert.True(t, strings.HasPrefix(buf.String(), "{\n"))
	assert.Contains(t, buf.String(), `"ticker": "AAPL.US"`)
}

func TestWriteAnalysis_Errors(t *testing.T) {
	var buf bytes.Buffer

	err := writeAnalysis(context.Background(), &buf, &stubAnalysis{err: fmt.Errorf("ZZZZ.US: %w", analysis.ErrNotFound)}, "ZZZZ", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data found for ZZZZ")

	err = writeAnalysis(context.Background(), &buf, &stubAnalysis{err: errors.New("status 500")}, "AAPL", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analysis failed")
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, rootCmd.Execute())
	assert.True(t, strings.HasPrefix(buf.String(), "marketlens "))
}

func TestAnalyzeCommand_RequiresTicker(t *testing.T) {
	rootCmd.SetArgs([]string{"analyze"})
	rootCmd.SetErr(&bytes.Buffer{})
	assert.Error(t, rootCmd.Execute())
}
