package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/bobmcallan/marketlens/internal/common"
	"github.com/bobmcallan/marketlens/internal/interfaces"
)

// DefaultSchedule refreshes the dashboard every two minutes
const DefaultSchedule = "0 */2 * * * *"

// Scheduler periodically warms the dashboard panels and purges expired
// cache entries.
type Scheduler struct {
	market     interfaces.MarketService
	prediction interfaces.PredictionService
	store      interfaces.CacheStore
	cron       *cron.Cron
	logger     *common.Logger
}

// NewScheduler creates a cache warmer. store may be nil.
func NewScheduler(market interfaces.MarketService, prediction interfaces.PredictionService, store interfaces.CacheStore, logger *common.Logger) *Scheduler {
	return &Scheduler{
		market:     market,
		prediction: prediction,
		store:      store,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger,
	}
}

// Start registers the refresh job and starts the cron runner.
func (s *Scheduler) Start(schedule string) error {
	if schedule == "" {
		schedule = DefaultSchedule
	}

	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info().Str("schedule", schedule).Msg("Cache warmer started")
	return nil
}

// Stop stops the cron runner and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("Cache warmer stopped")
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if s.store != nil {
		if n, err := s.store.Purge(); err != nil {
			s.logger.Warn().Err(err).Msg("Cache purge failed")
		} else if n > 0 {
			s.logger.Debug().Int("purged", n).Msg("Expired cache entries removed")
		}
	}

	warmCache(ctx, s.market, s.prediction, s.logger)
}
