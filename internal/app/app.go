// Package app wires configuration, clients, cache and services together.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/marketlens/internal/cache"
	"github.com/bobmcallan/marketlens/internal/clients/eodhd"
	"github.com/bobmcallan/marketlens/internal/clients/kalshi"
	"github.com/bobmcallan/marketlens/internal/clients/yahoo"
	"github.com/bobmcallan/marketlens/internal/common"
	"github.com/bobmcallan/marketlens/internal/interfaces"
	"github.com/bobmcallan/marketlens/internal/mcptools"
	"github.com/bobmcallan/marketlens/internal/services/analysis"
	"github.com/bobmcallan/marketlens/internal/services/market"
	"github.com/bobmcallan/marketlens/internal/services/prediction"
)

// App holds all initialized services, clients, and the MCP server.
// It is the shared core used by the serve and analyze commands.
type App struct {
	Config            *common.Config
	Logger            *common.Logger
	Cache             interfaces.CacheStore
	EODHDClient       interfaces.EODHDClient
	KalshiClient      interfaces.KalshiClient
	HeadlineFeed      interfaces.HeadlineFeed
	AnalysisService   interfaces.AnalysisService
	MarketService     interfaces.MarketService
	PredictionService interfaces.PredictionService
	MCPServer         *server.MCPServer
	StartupTime       time.Time

	scheduler       *Scheduler
	warmCacheCancel context.CancelFunc
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// ResolveConfigPath picks the config file: the given path, MARKETLENS_CONFIG,
// marketlens.toml beside the binary, then config/marketlens.toml.
func ResolveConfigPath(configPath string) string {
	if configPath == "" {
		configPath = os.Getenv("MARKETLENS_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(getBinaryDir(), "marketlens.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/marketlens.toml" // fallback for development
		}
	}
	return configPath
}

// NewApp loads configuration and initializes every client and service.
// configPath may be empty, in which case ResolveConfigPath decides.
func NewApp(configPath string) (*App, error) {
	common.LoadVersionFromFile()

	config, err := common.LoadConfig(ResolveConfigPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if config.Logging.FilePath != "" && !filepath.IsAbs(config.Logging.FilePath) {
		config.Logging.FilePath = filepath.Join(getBinaryDir(), config.Logging.FilePath)
	}

	logger := common.NewLoggerFromConfig(config.Logging)
	return NewAppWithConfig(config, logger)
}

// NewAppWithConfig builds the App from an already loaded config.
func NewAppWithConfig(config *common.Config, logger *common.Logger) (*App, error) {
	startupStart := time.Now()

	for _, missing := range config.ValidateRequired() {
		logger.Warn().Str("setting", missing).Msg("Required setting not configured - some features may be limited")
	}

	store, err := cache.NewStore(logger, config.Cache.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	eodhdClient := eodhd.NewClient(config.Clients.EODHD.APIKey,
		eodhd.WithBaseURL(config.Clients.EODHD.BaseURL),
		eodhd.WithLogger(logger),
		eodhd.WithRateLimit(config.Clients.EODHD.RateLimit),
		eodhd.WithTimeout(config.Clients.EODHD.GetTimeout()),
	)

	kalshiClient := kalshi.NewClient(
		kalshi.WithBaseURL(config.Clients.Kalshi.BaseURL),
		kalshi.WithLogger(logger),
		kalshi.WithRateLimit(config.Clients.Kalshi.RateLimit),
		kalshi.WithTimeout(config.Clients.Kalshi.GetTimeout()),
	)

	feedOpts := []yahoo.FeedOption{
		yahoo.WithLogger(logger),
		yahoo.WithTimeout(config.Clients.Yahoo.GetTimeout()),
	}
	if config.Clients.Yahoo.FeedURL != "" {
		feedOpts = append(feedOpts, yahoo.WithFeedURL(config.Clients.Yahoo.FeedURL))
	}
	feed := yahoo.NewFeed(feedOpts...)

	analysisService := analysis.NewService(eodhdClient, store, config.Cache, logger)
	marketService := market.NewService(eodhdClient, feed, store, config, logger)
	predictionService := prediction.NewService(kalshiClient, store, config, logger)

	mcpServer := server.NewMCPServer(
		"marketlens",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	a := &App{
		Config:            config,
		Logger:            logger,
		Cache:             store,
		EODHDClient:       eodhdClient,
		KalshiClient:      kalshiClient,
		HeadlineFeed:      feed,
		AnalysisService:   analysisService,
		MarketService:     marketService,
		PredictionService: predictionService,
		MCPServer:         mcpServer,
		StartupTime:       startupStart,
	}

	mcptools.Register(mcpServer, mcptools.Services{
		Analysis:   analysisService,
		Market:     marketService,
		Prediction: predictionService,
	}, logger)

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App.
// Shutdown order: stop scheduler, cancel warm cache, close cache.
func (a *App) Close() {
	if a.scheduler != nil {
		a.scheduler.Stop()
		a.scheduler = nil
	}
	if a.warmCacheCancel != nil {
		a.warmCacheCancel()
		a.warmCacheCancel = nil
	}
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close cache")
		}
		a.Cache = nil
	}
}

// StartWarmCache launches a one-off background warm of the dashboard panels.
func (a *App) StartWarmCache() {
	if !a.Config.Scheduler.Enabled {
		a.Logger.Info().Msg("Warm cache: disabled")
		return
	}
	warmCtx, warmCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	a.warmCacheCancel = warmCancel
	go func() {
		defer warmCancel()
		warmCache(warmCtx, a.MarketService, a.PredictionService, a.Logger)
	}()
}

// StartScheduler starts the cron job that keeps the dashboard cache warm.
func (a *App) StartScheduler() error {
	if !a.Config.Scheduler.Enabled {
		return nil
	}
	s := NewScheduler(a.MarketService, a.PredictionService, a.Cache, a.Logger)
	if err := s.Start(a.Config.Scheduler.Schedule); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	a.scheduler = s
	return nil
}
