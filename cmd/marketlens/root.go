package main

import (
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "marketlens",
	Short: "MarketLens - market dashboard and plain-English financial analysis",
	Long: `MarketLens serves a market dashboard (indices, most active tickers,
headlines, prediction markets) and turns quarterly statements into a
plain-English analysis with risk flags.

Examples:
  marketlens serve
  marketlens analyze AAPL
  marketlens analyze MSFT.US --json
  marketlens version`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: $MARKETLENS_CONFIG, then marketlens.toml beside the binary, then config/marketlens.toml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(versionCmd)
}
