package app

import (
	"context"
	"time"

	"github.com/bobmcallan/marketlens/internal/common"
	"github.com/bobmcallan/marketlens/internal/interfaces"
)

// warmCache pre-fetches the dashboard panels so the first page load is fast.
// Each panel is independent; a failure is logged and the rest still run.
// Returns the number of panels that loaded.
func warmCache(ctx context.Context, market interfaces.MarketService, prediction interfaces.PredictionService, logger *common.Logger) int {
	start := time.Now()

	panels := []struct {
		name string
		load func(context.Context) error
	}{
		{"indices", func(ctx context.Context) error { _, err := market.GetIndices(ctx); return err }},
		{"history", func(ctx context.Context) error { _, err := market.GetIndexHistory(ctx); return err }},
		{"volume", func(ctx context.Context) error { _, err := market.GetTopVolume(ctx); return err }},
		{"news", func(ctx context.Context) error { _, err := market.GetNews(ctx); return err }},
		{"predictions", func(ctx context.Context) error {
			_, err := prediction.List(ctx, interfaces.PredictionQuery{})
			return err
		}},
	}

	loaded := 0
	for _, p := range panels {
		if ctx.Err() != nil {
			logger.Warn().Err(ctx.Err()).Msg("Warm cache: interrupted")
			break
		}
		if err := p.load(ctx); err != nil {
			logger.Warn().Str("panel", p.name).Err(err).Msg("Warm cache: panel failed")
			continue
		}
		loaded++
	}

	logger.Info().
		Int("panels", loaded).
		Dur("elapsed", time.Since(start)).
		Msg("Warm cache: complete")
	return loaded
}
