package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/marketlens/internal/app"
	"github.com/bobmcallan/marketlens/internal/common"
	"github.com/bobmcallan/marketlens/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API and MCP server",
	Long: `Start the HTTP server with the REST API under /api and the MCP
endpoint at /mcp. The cache warmer runs in the background unless
scheduler.enabled is false or MARKETLENS_WARM_CACHE=off.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := app.NewApp(configFile)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer a.Close()

	if servePort > 0 {
		a.Config.Server.Port = servePort
	}

	common.PrintBanner(a.Config, a.Logger)

	// Start background services
	a.StartWarmCache()
	if err := a.StartScheduler(); err != nil {
		a.Logger.Warn().Err(err).Msg("Cache warmer not started")
	}

	srv := server.NewServer(a)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	a.Logger.Info().
		Str("url", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)).
		Str("mcp", fmt.Sprintf("http://localhost:%d/mcp", a.Config.Server.Port)).
		Msg("Server ready")

	// Wait for interrupt signal or server failure
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		a.Logger.Info().Msg("Shutdown signal received")
	case err := <-errChan:
		a.Logger.Error().Err(err).Msg("HTTP server failed")
		return err
	}

	common.PrintShutdownBanner(a.Logger)

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		a.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	a.Logger.Info().Msg("Server stopped")
	return nil
}
