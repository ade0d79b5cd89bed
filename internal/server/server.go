// Package server provides the MarketLens REST API and MCP endpoint.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/bobmcallan/marketlens/internal/app"
	"github.com/bobmcallan/marketlens/internal/common"
)

// Server wraps the HTTP server and application reference.
type Server struct {
	app      *app.App
	server   *http.Server
	logger   *common.Logger
	validate *validator.Validate
}

// NewServer creates a new HTTP REST API server.
func NewServer(a *app.App) *Server {
	s := &Server{
		app:      a,
		logger:   a.Logger,
		validate: validator.New(),
	}

	r := mux.NewRouter()
	s.registerRoutes(r)

	host := a.Config.Server.Host
	port := a.Config.Server.Port

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      applyMiddleware(r, a.Logger),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start starts the HTTP server (blocking).
func (s *Server) Start() error {
	s.logger.Info().
		Str("addr", s.server.Addr).
		Msg("Starting REST API server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
