package server

import (
	"net/http"

	"github.com/bobmcallan/marketlens/internal/interfaces"
)

// handlePredictions handles GET /api/predictions?category=&q=&sort=&limit=
func (s *Server) handlePredictions(w http.ResponseWriter, r *http.Request) {
	params, err := parsePredictionParams(r)
	if err != nil {
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), CodeBadRequest)
		return
	}
	if !s.validateParams(w, params) {
		return
	}

	listing, err := s.app.PredictionService.List(r.Context(), interfaces.PredictionQuery{
		Category: params.Category,
		Search:   params.Search,
		Sort:     params.Sort,
		Limit:    params.Limit,
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("Prediction listing failed")
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, listing)
}

// handlePredictionCategories handles GET /api/predictions/categories
func (s *Server) handlePredictionCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.app.PredictionService.Categories(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
	})
}
