package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bobmcallan/marketlens/internal/services/analysis"
	"github.com/bobmcallan/marketlens/internal/services/chart"
)

// ErrorResponse is the standard error format for REST API responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Error codes returned alongside the message
const (
	CodeBadRequest = "bad_request"
	CodeNotFound   = "not_found"
	CodeUpstream   = "upstream_error"
)

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message})
}

// WriteErrorWithCode writes a JSON error response with an error code.
func WriteErrorWithCode(w http.ResponseWriter, statusCode int, message, code string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message, Code: code})
}

// WritePNG writes an image response.
func WritePNG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=60")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// WriteServiceError maps a service error to an HTTP status: missing data is
// 404, anything else is an upstream failure (502).
func WriteServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, analysis.ErrNotFound):
		WriteErrorWithCode(w, http.StatusNotFound, "No data found. Check the symbol.", CodeNotFound)
	case errors.Is(err, chart.ErrNotEnoughData):
		WriteErrorWithCode(w, http.StatusNotFound, err.Error(), CodeNotFound)
	default:
		WriteErrorWithCode(w, http.StatusBadGateway, "Upstream data provider failed: "+err.Error(), CodeUpstream)
	}
}
