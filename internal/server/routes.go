package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/marketlens/internal/common"
)

// registerRoutes sets up all REST API routes and the MCP endpoint.
func (s *Server) registerRoutes(r *mux.Router) {
	if s.app.MCPServer != nil {
		r.Handle("/mcp", mcpserver.NewStreamableHTTPServer(s.app.MCPServer,
			mcpserver.WithStateLess(true),
		))
	}

	api := r.PathPrefix("/api").Subrouter()

	// System
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet, http.MethodHead)
	api.HandleFunc("/version", s.handleVersion).Methods(http.MethodGet, http.MethodHead)

	// Analysis
	api.HandleFunc("/analysis/{ticker}", s.handleAnalysis).Methods(http.MethodGet)
	api.HandleFunc("/analysis/{ticker}/summary", s.handleAnalysisSummary).Methods(http.MethodGet)
	api.HandleFunc("/analysis/{ticker}/flags", s.handleAnalysisFlags).Methods(http.MethodGet)
	api.HandleFunc("/analysis/{ticker}/charts/{kind}.png", s.handleAnalysisChart).Methods(http.MethodGet)

	// Market dashboard
	api.HandleFunc("/market/indices", s.handleMarketIndices).Methods(http.MethodGet)
	api.HandleFunc("/market/history.png", s.handleMarketHistoryChart).Methods(http.MethodGet)
	api.HandleFunc("/market/volume", s.handleMarketVolume).Methods(http.MethodGet)
	api.HandleFunc("/market/news", s.handleMarketNews).Methods(http.MethodGet)
	api.HandleFunc("/market/suggested", s.handleSuggestedTickers).Methods(http.MethodGet)
	api.HandleFunc("/search", s.handleSearch).Methods(http.MethodGet)

	// Prediction markets
	api.HandleFunc("/predictions", s.handlePredictions).Methods(http.MethodGet)
	api.HandleFunc("/predictions/categories", s.handlePredictionCategories).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
		"uptime":  time.Since(s.app.StartupTime).Round(time.Second).String(),
	})
}
