// Package common provides shared utilities for MarketLens
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for MarketLens
type Config struct {
	Environment string          `toml:"environment"`
	Server      ServerConfig    `toml:"server"`
	Clients     ClientsConfig   `toml:"clients"`
	Cache       CacheConfig     `toml:"cache"`
	Dashboard   DashboardConfig `toml:"dashboard"`
	Scheduler   SchedulerConfig `toml:"scheduler"`
	Logging     LoggingConfig   `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	EODHD  EODHDConfig  `toml:"eodhd"`
	Kalshi KalshiConfig `toml:"kalshi"`
	Yahoo  YahooConfig  `toml:"yahoo"`
}

// EODHDConfig holds EODHD API configuration
type EODHDConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *EODHDConfig) GetTimeout() time.Duration {
	return parseDuration(c.Timeout, 30*time.Second)
}

// KalshiConfig holds Kalshi trade API configuration
type KalshiConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *KalshiConfig) GetTimeout() time.Duration {
	return parseDuration(c.Timeout, 10*time.Second)
}

// YahooConfig holds the Yahoo Finance RSS feed configuration
type YahooConfig struct {
	FeedURL string `toml:"feed_url"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *YahooConfig) GetTimeout() time.Duration {
	return parseDuration(c.Timeout, 5*time.Second)
}

// CacheConfig holds per-source time-to-live values for retrieval caching.
type CacheConfig struct {
	Dir         string `toml:"dir"` // empty keeps the cache in memory
	Quotes      string `toml:"quotes"`
	History     string `toml:"history"`
	Statements  string `toml:"statements"`
	News        string `toml:"news"`
	Predictions string `toml:"predictions"`
	Search      string `toml:"search"`
}

// TTL returns the configured TTL for a data source, falling back to the
// built-in freshness defaults when unset or unparseable.
func (c *CacheConfig) TTL(source string) time.Duration {
	switch source {
	case SourceQuotes:
		return parseDuration(c.Quotes, FreshnessQuotes)
	case SourceHistory:
		return parseDuration(c.History, FreshnessHistory)
	case SourceStatements:
		return parseDuration(c.Statements, FreshnessStatements)
	case SourceNews:
		return parseDuration(c.News, FreshnessNews)
	case SourcePredictions:
		return parseDuration(c.Predictions, FreshnessPredictions)
	case SourceSearch:
		return parseDuration(c.Search, FreshnessSearch)
	}
	return FreshnessQuotes
}

// DashboardConfig holds the symbol lists shown on the market dashboard.
type DashboardConfig struct {
	Indices      []IndexSymbol `toml:"indices"`
	HistoryIndex string        `toml:"history_index"`
	VolumeWatch  []string      `toml:"volume_watch"`
	NewsTickers  []string      `toml:"news_tickers"`
	Suggested    []string      `toml:"suggested"`
	KalshiSeries []string      `toml:"kalshi_series"`
}

// IndexSymbol maps a display name to a provider symbol.
type IndexSymbol struct {
	Name   string `toml:"name"`
	Symbol string `toml:"symbol"`
}

// SchedulerConfig holds the cache warmer schedule.
type SchedulerConfig struct {
	Enabled  bool   `toml:"enabled"`
	Schedule string `toml:"schedule"` // cron expression with seconds field
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8501,
		},
		Clients: ClientsConfig{
			EODHD: EODHDConfig{
				BaseURL:   "https://eodhd.com/api",
				RateLimit: 10,
				Timeout:   "30s",
			},
			Kalshi: KalshiConfig{
				BaseURL:   "https://api.elections.kalshi.com/trade-api/v2",
				RateLimit: 10,
				Timeout:   "10s",
			},
			Yahoo: YahooConfig{
				FeedURL: "https://feeds.finance.yahoo.com/rss/2.0/headline",
				Timeout: "5s",
			},
		},
		Cache: CacheConfig{
			Quotes:      "120s",
			History:     "5m",
			Statements:  "5m",
			News:        "10m",
			Predictions: "3m",
			Search:      "60s",
		},
		Dashboard: DashboardConfig{
			Indices: []IndexSymbol{
				{Name: "S&P 500", Symbol: "GSPC.INDX"},
				{Name: "NASDAQ", Symbol: "IXIC.INDX"},
				{Name: "DOW", Symbol: "DJI.INDX"},
				{Name: "VIX", Symbol: "VIX.INDX"},
			},
			HistoryIndex: "GSPC.INDX",
			VolumeWatch: []string{
				"AAPL.US", "MSFT.US", "NVDA.US", "TSLA.US", "AMZN.US", "META.US",
				"GOOGL.US", "AMD.US", "INTC.US", "PLTR.US", "SOFI.US", "F.US",
				"BAC.US", "NIO.US", "RIVN.US",
			},
			NewsTickers: []string{"AAPL.US", "MSFT.US", "NVDA.US", "TSLA.US", "AMZN.US", "META.US", "GOOGL.US"},
			Suggested:   []string{"AAPL.US", "MSFT.US", "NVDA.US", "TSLA.US", "AMZN.US", "META.US", "GOOGL.US"},
			KalshiSeries: []string{
				"KXBTC", "KXETH", "KXFED", "KXINX", "KXGOLD", "KXOIL",
				"KXNFL", "KXNBA", "KXNHL", "KXMLB", "KXMMA",
				"KXCPI", "KXJOB", "KXGDP", "KXWEA", "KXPOL",
				"KXAI", "KXTECH", "KXELEC",
			},
		},
		Scheduler: SchedulerConfig{
			Enabled:  true,
			Schedule: "0 */2 * * * *",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Outputs:    []string{"console"},
			FilePath:   "./logs/marketlens.log",
			MaxSizeMB:  10,
			MaxBackups: 5,
		},
	}
}

// LoadConfig loads configuration from files with .env and environment overrides.
// Later files override earlier ones; missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// .env never overrides variables already set in the process environment
	_ = godotenv.Load()

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("MARKETLENS_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("MARKETLENS_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("MARKETLENS_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("MARKETLENS_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	for _, name := range []string{"EODHD_API_KEY", "MARKETLENS_EODHD_API_KEY"} {
		if key := os.Getenv(name); key != "" {
			config.Clients.EODHD.APIKey = key
			break
		}
	}

	if url := os.Getenv("MARKETLENS_KALSHI_BASE_URL"); url != "" {
		config.Clients.Kalshi.BaseURL = url
	}

	if v := os.Getenv("MARKETLENS_WARM_CACHE"); strings.EqualFold(v, "off") {
		config.Scheduler.Enabled = false
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// ValidateRequired returns the names of settings that must be provided
// before analysis requests can be served.
func (c *Config) ValidateRequired() []string {
	var missing []string
	if strings.TrimSpace(c.Clients.EODHD.APIKey) == "" {
		missing = append(missing, "clients.eodhd.api_key (EODHD_API_KEY)")
	}
	if len(c.Dashboard.Indices) == 0 {
		missing = append(missing, "dashboard.indices")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		missing = append(missing, "server.port")
	}
	return missing
}
