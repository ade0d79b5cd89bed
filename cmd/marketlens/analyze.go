package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/marketlens/internal/app"
	"github.com/bobmcallan/marketlens/internal/interfaces"
	"github.com/bobmcallan/marketlens/internal/mcptools"
	"github.com/bobmcallan/marketlens/internal/services/analysis"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze TICKER",
	Short: "Print the financial analysis for a ticker",
	Long: `Fetch quarterly statements for TICKER and print the plain-English
summary, risk flags, key metrics and balance sheet snapshot.
Tickers without an exchange suffix default to .US.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the full report as JSON")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	a, err := app.NewApp(configFile)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	return writeAnalysis(ctx, cmd.OutOrStdout(), a.AnalysisService, args[0], analyzeJSON)
}

// writeAnalysis runs the analysis and writes it as markdown or JSON.
func writeAnalysis(ctx context.Context, w io.Writer, svc interfaces.AnalysisService, ticker string, asJSON bool) error {
	report, err := svc.Analyze(ctx, ticker)
	if err != nil {
		if errors.Is(err, analysis.ErrNotFound) {
			return fmt.Errorf("no data found for %s, check the symbol", ticker)
		}
		return fmt.Errorf("analysis failed: %w", err)
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	_, err = io.WriteString(w, mcptools.FormatAnalysisReport(report))
	return err
}
