// Package kalshi provides a client for the Kalshi public trade API
package kalshi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/marketlens/internal/common"
	"github.com/bobmcallan/marketlens/internal/interfaces"
	"github.com/bobmcallan/marketlens/internal/models"
)

const (
	DefaultBaseURL   = "https://api.elections.kalshi.com/trade-api/v2"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 10 // requests per second
)

// Client implements the KalshiClient interface
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Kalshi client.
// Market listings are public; no API key is required.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a non-OK response from the trade API
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.Endpoint)
}

type marketsResponse struct {
	Markets []models.PredictionMarket `json:"markets"`
	Cursor  string                    `json:"cursor"`
}

// GetMarkets lists markets for a series. Only the first page is fetched.
func (c *Client) GetMarkets(ctx context.Context, seriesTicker, status string, limit int) ([]models.PredictionMarket, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	if status != "" {
		params.Set("status", status)
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if seriesTicker != "" {
		params.Set("series_ticker", seriesTicker)
	}

	reqURL := fmt.Sprintf("%s/markets?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.logger.Error().Err(err).Str("series", seriesTicker).Dur("elapsed", elapsed).Msg("Kalshi API request failed")
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.logger.Warn().Str("series", seriesTicker).Int("status", resp.StatusCode).Dur("elapsed", elapsed).Msg("Kalshi API non-OK response")
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			Endpoint:   seriesTicker,
		}
	}

	var apiResp marketsResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug().Str("series", seriesTicker).Int("markets", len(apiResp.Markets)).Dur("elapsed", elapsed).Msg("Kalshi API call")

	return apiResp.Markets, nil
}

// Ensure Client implements KalshiClient
var _ interfaces.KalshiClient = (*Client)(nil)
