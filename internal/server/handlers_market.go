package server

import (
	"net/http"
	"strings"

	"github.com/bobmcallan/marketlens/internal/models"
	"github.com/bobmcallan/marketlens/internal/services/chart"
)

// handleMarketIndices handles GET /api/market/indices
func (s *Server) handleMarketIndices(w http.ResponseWriter, r *http.Request) {
	indices, err := s.app.MarketService.GetIndices(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"indices": indices,
	})
}

// handleMarketHistoryChart handles GET /api/market/history.png
func (s *Server) handleMarketHistoryChart(w http.ResponseWriter, r *http.Request) {
	history, err := s.app.MarketService.GetIndexHistory(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	png, err := chart.RenderIndexHistory(s.historyIndexName(), history)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WritePNG(w, png)
}

// historyIndexName resolves the display name of the configured history index.
func (s *Server) historyIndexName() string {
	d := s.app.Config.Dashboard
	for _, idx := range d.Indices {
		if idx.Symbol == d.HistoryIndex {
			return idx.Name
		}
	}
	return d.HistoryIndex
}

// handleMarketVolume handles GET /api/market/volume
func (s *Server) handleMarketVolume(w http.ResponseWriter, r *http.Request) {
	rows, err := s.app.MarketService.GetTopVolume(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if rows == nil {
		rows = []models.VolumeRow{}
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"rows": rows,
	})
}

// handleMarketNews handles GET /api/market/news
func (s *Server) handleMarketNews(w http.ResponseWriter, r *http.Request) {
	news, err := s.app.MarketService.GetNews(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if news == nil {
		news = []models.MarketHeadline{}
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"headlines": news,
	})
}

// handleSuggestedTickers handles GET /api/market/suggested
func (s *Server) handleSuggestedTickers(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"tickers": s.app.MarketService.SuggestedTickers(),
	})
}

// handleSearch handles GET /api/search?q=
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	params := searchParams{Query: strings.TrimSpace(r.URL.Query().Get("q"))}
	if !s.validateParams(w, params) {
		return
	}

	results, err := s.app.MarketService.Search(r.Context(), params.Query)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if results == nil {
		results = []models.SearchResult{}
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"query":   params.Query,
		"results": results,
	})
}
