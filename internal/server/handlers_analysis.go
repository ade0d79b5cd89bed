package server

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/yuin/goldmark"

	"github.com/bobmcallan/marketlens/internal/models"
	"github.com/bobmcallan/marketlens/internal/services/chart"
)

// summaryResponse is the narrative part of a report, as text and HTML.
type summaryResponse struct {
	Ticker     string   `json:"ticker"`
	Name       string   `json:"name"`
	Paragraphs []string `json:"paragraphs"`
	Markdown   string   `json:"markdown"`
	HTML       string   `json:"html"`
}

// flagsResponse lists the risk flags for a ticker.
type flagsResponse struct {
	Ticker string   `json:"ticker"`
	Count  int      `json:"count"`
	Header string   `json:"header,omitempty"`
	Flags  []string `json:"flags"`
}

// analyze validates the ticker and runs the analysis, writing any error.
func (s *Server) analyze(w http.ResponseWriter, r *http.Request) (*models.AnalysisReport, bool) {
	params := tickerParams{Ticker: strings.TrimSpace(mux.Vars(r)["ticker"])}
	if !s.validateParams(w, params) {
		return nil, false
	}

	report, err := s.app.AnalysisService.Analyze(r.Context(), params.Ticker)
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", params.Ticker).Msg("Analysis request failed")
		WriteServiceError(w, err)
		return nil, false
	}
	return report, true
}

// handleAnalysis handles GET /api/analysis/{ticker}
func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	report, ok := s.analyze(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

// handleAnalysisSummary handles GET /api/analysis/{ticker}/summary
func (s *Server) handleAnalysisSummary(w http.ResponseWriter, r *http.Request) {
	report, ok := s.analyze(w, r)
	if !ok {
		return
	}

	md := summaryMarkdown(report)
	var html bytes.Buffer
	if err := goldmark.Convert([]byte(md), &html); err != nil {
		s.logger.Warn().Err(err).Str("ticker", report.Ticker).Msg("Summary markdown conversion failed")
	}

	WriteJSON(w, http.StatusOK, summaryResponse{
		Ticker:     report.Ticker,
		Name:       report.Name,
		Paragraphs: report.Summary,
		Markdown:   md,
		HTML:       html.String(),
	})
}

// handleAnalysisFlags handles GET /api/analysis/{ticker}/flags
func (s *Server) handleAnalysisFlags(w http.ResponseWriter, r *http.Request) {
	report, ok := s.analyze(w, r)
	if !ok {
		return
	}

	flags := report.Flags
	if flags == nil {
		flags = []string{}
	}
	WriteJSON(w, http.StatusOK, flagsResponse{
		Ticker: report.Ticker,
		Count:  len(flags),
		Header: report.FlagHeader,
		Flags:  flags,
	})
}

// handleAnalysisChart handles GET /api/analysis/{ticker}/charts/{kind}.png
func (s *Server) handleAnalysisChart(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	params := chartParams{Ticker: strings.TrimSpace(vars["ticker"]), Kind: vars["kind"]}
	if !s.validateParams(w, params) {
		return
	}

	report, err := s.app.AnalysisService.Analyze(r.Context(), params.Ticker)
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", params.Ticker).Msg("Chart request failed")
		WriteServiceError(w, err)
		return
	}

	png, err := chart.Render(params.Kind, report)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WritePNG(w, png)
}

// summaryMarkdown renders the summary paragraphs and flags as markdown.
func summaryMarkdown(report *models.AnalysisReport) string {
	var sb strings.Builder
	sb.WriteString("## " + report.Name + "\n\n")
	for _, p := range report.Summary {
		sb.WriteString(p + "\n\n")
	}
	if len(report.Flags) > 0 {
		sb.WriteString("### " + report.FlagHeader + "\n\n")
		for _, f := range report.Flags {
			sb.WriteString("- " + f + "\n")
		}
	}
	return sb.String()
}
