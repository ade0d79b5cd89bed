// Package mcptools exposes MarketLens services as MCP tools.
package mcptools

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/marketlens/internal/common"
	"github.com/bobmcallan/marketlens/internal/interfaces"
)

// Services are the backends the tools call into
type Services struct {
	Analysis   interfaces.AnalysisService
	Market     interfaces.MarketService
	Prediction interfaces.PredictionService
}

// Register adds every MarketLens tool to the MCP server.
func Register(s *server.MCPServer, svc Services, logger *common.Logger) {
	s.AddTool(createGetVersionTool(), handleGetVersion())
	s.AddTool(createAnalyzeTickerTool(), handleAnalyzeTicker(svc.Analysis, logger))
	s.AddTool(createMarketOverviewTool(), handleMarketOverview(svc.Market, logger))
	s.AddTool(createPredictionMarketsTool(), handlePredictionMarkets(svc.Prediction, logger))
	s.AddTool(createSearchTickersTool(), handleSearchTickers(svc.Market, logger))
}

// createGetVersionTool returns the get_version tool definition
func createGetVersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the MarketLens server version and status. Use this to verify connectivity."),
	)
}

// createAnalyzeTickerTool returns the analyze_ticker tool definition
func createAnalyzeTickerTool() mcp.Tool {
	return mcp.NewTool("analyze_ticker",
		mcp.WithDescription("Analyze a stock from its quarterly financial statements. Returns a plain-English summary, risk flags, key metrics, margin trend and balance sheet snapshot."),
		mcp.WithString("ticker",
			mcp.Required(),
			mcp.Description("Stock ticker, optionally with exchange suffix (e.g., 'AAPL', 'MSFT.US')"),
		),
	)
}

// createMarketOverviewTool returns the market_overview tool definition
func createMarketOverviewTool() mcp.Tool {
	return mcp.NewTool("market_overview",
		mcp.WithDescription("Get the market dashboard: headline indices, most active tickers by volume, and recent headlines."),
		mcp.WithBoolean("include_news",
			mcp.Description("Include market headlines (default: true)"),
		),
	)
}

// createPredictionMarketsTool returns the prediction_markets tool definition
func createPredictionMarketsTool() mcp.Tool {
	return mcp.NewTool("prediction_markets",
		mcp.WithDescription("List open prediction markets with YES/NO prices, 24h volume and close dates."),
		mcp.WithString("category",
			mcp.Description("Category label (e.g., 'Fed / Rates', 'Bitcoin') or series ticker (default: All)"),
		),
		mcp.WithString("search",
			mcp.Description("Case-insensitive text to match against title, subtitle or event ticker"),
		),
		mcp.WithString("sort",
			mcp.Description("Sort order: volume, probability, closing, recent (default: volume)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum markets to return (default: 20, max: 100)"),
		),
	)
}

// createSearchTickersTool returns the search_tickers tool definition
func createSearchTickersTool() mcp.Tool {
	return mcp.NewTool("search_tickers",
		mcp.WithDescription("Search for stock and ETF tickers by company name."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Company name or partial name (at least 3 characters)"),
		),
	)
}
