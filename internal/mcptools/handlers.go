package mcptools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/marketlens/internal/common"
	"github.com/bobmcallan/marketlens/internal/interfaces"
	"github.com/bobmcallan/marketlens/internal/services/analysis"
	"github.com/bobmcallan/marketlens/internal/services/market"
)

// DefaultPredictionLimit is used when prediction_markets is called without a limit
const DefaultPredictionLimit = 20

// handleGetVersion implements the get_version tool
func handleGetVersion() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := fmt.Sprintf("MarketLens MCP Server\nVersion: %s\nBuild: %s\nCommit: %s\nStatus: OK",
			common.GetVersion(), common.GetBuild(), common.GetGitCommit())
		return textResult(result), nil
	}
}

// handleAnalyzeTicker implements the analyze_ticker tool
func handleAnalyzeTicker(svc interfaces.AnalysisService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, err := request.RequireString("ticker")
		if err != nil || strings.TrimSpace(ticker) == "" {
			return errorResult("Error: ticker parameter is required"), nil
		}

		report, err := svc.Analyze(ctx, ticker)
		if err != nil {
			if errors.Is(err, analysis.ErrNotFound) {
				return errorResult(fmt.Sprintf("No data found for '%s'. Check the symbol.", ticker)), nil
			}
			logger.Error().Err(err).Str("ticker", ticker).Msg("Ticker analysis failed")
			return errorResult(fmt.Sprintf("Analysis error: %v", err)), nil
		}

		return textResult(FormatAnalysisReport(report)), nil
	}
}

// handleMarketOverview implements the market_overview tool.
// Panels that fail are reported inline; the tool only errors when all fail.
func handleMarketOverview(svc interfaces.MarketService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		includeNews := request.GetBool("include_news", true)

		var ov overview
		var failed int

		if ov.indices, ov.indicesErr = svc.GetIndices(ctx); ov.indicesErr != nil {
			logger.Warn().Err(ov.indicesErr).Msg("Market overview: indices failed")
			failed++
		}
		if ov.volume, ov.volumeErr = svc.GetTopVolume(ctx); ov.volumeErr != nil {
			logger.Warn().Err(ov.volumeErr).Msg("Market overview: top volume failed")
			failed++
		}
		panels := 2
		if includeNews {
			panels++
			if ov.news, ov.newsErr = svc.GetNews(ctx); ov.newsErr != nil {
				logger.Warn().Err(ov.newsErr).Msg("Market overview: news failed")
				failed++
			}
		}

		if failed == panels {
			return errorResult("Market data is unavailable right now. Try again shortly."), nil
		}

		ov.includeNews = includeNews
		return textResult(formatMarketOverview(ov)), nil
	}
}

// handlePredictionMarkets implements the prediction_markets tool
func handlePredictionMarkets(svc interfaces.PredictionService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := request.GetInt("limit", DefaultPredictionLimit)
		if limit <= 0 {
			limit = DefaultPredictionLimit
		}

		query := interfaces.PredictionQuery{
			Category: request.GetString("category", ""),
			Search:   request.GetString("search", ""),
			Sort:     request.GetString("sort", ""),
			Limit:    limit,
		}

		listing, err := svc.List(ctx, query)
		if err != nil {
			logger.Error().Err(err).Msg("Prediction market listing failed")
			return errorResult(fmt.Sprintf("Prediction markets unavailable: %v", err)), nil
		}

		return textResult(formatPredictionListing(listing, query)), nil
	}
}

// handleSearchTickers implements the search_tickers tool
func handleSearchTickers(svc interfaces.MarketService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		query = strings.TrimSpace(query)
		if err != nil || query == "" {
			return errorResult("Error: query parameter is required"), nil
		}
		if len(query) < 3 {
			return errorResult("Error: query must be at least 3 characters"), nil
		}
		if !market.Searchable(query) {
			return textResult(fmt.Sprintf("'%s' looks like a ticker already. Try analyze_ticker with it, or search by company name.", query)), nil
		}

		results, err := svc.Search(ctx, query)
		if err != nil {
			logger.Error().Err(err).Str("query", query).Msg("Ticker search failed")
			return errorResult(fmt.Sprintf("Search error: %v", err)), nil
		}

		return textResult(formatSearchResults(query, results)), nil
	}
}

// Helper functions

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}
