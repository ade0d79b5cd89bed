package market

import (
	"context"
	"sort"
	"strings"

	"github.com/bobmcallan/marketlens/internal/cache"
	"github.com/bobmcallan/marketlens/internal/common"
	"github.com/bobmcallan/marketlens/internal/interfaces"
	"github.com/bobmcallan/marketlens/internal/models"
	"github.com/bobmcallan/marketlens/internal/narrative"
)

// TopVolumeRows is how many rows the volume table shows
const TopVolumeRows = 10

// GetTopVolume ranks the watch list by the latest session volume.
// Tickers with fewer than two closes are skipped.
func (s *Service) GetTopVolume(ctx context.Context) ([]models.VolumeRow, error) {
	return cache.Remember(s.store, s.logger, cache.Key(common.SourceHistory, "volume"), s.ttl.TTL(common.SourceHistory), func() ([]models.VolumeRow, error) {
		watch := s.dashboard.VolumeWatch
		slots := make([]*models.VolumeRow, len(watch))

		err := forEach(ctx, len(watch), func(i int) {
			ticker := watch[i]
			bars, err := s.eodhd.GetEOD(ctx, ticker, interfaces.WithOrder("d"), interfaces.WithLimit(2))
			if err != nil {
				s.logger.Warn().Str("ticker", ticker).Err(err).Msg("Volume fetch failed")
				return
			}
			slots[i] = volumeRow(ticker, bars)
		})
		if err != nil {
			return nil, err
		}

		rows := make([]models.VolumeRow, 0, len(slots))
		for _, r := range slots {
			if r != nil {
				rows = append(rows, *r)
			}
		}
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Volume > rows[j].Volume
		})
		if len(rows) > TopVolumeRows {
			rows = rows[:TopVolumeRows]
		}
		return rows, nil
	})
}

// volumeRow builds a row from bars ordered most recent first.
func volumeRow(ticker string, bars []models.EODBar) *models.VolumeRow {
	if len(bars) < 2 {
		return nil
	}
	last, prev := bars[0], bars[1]
	vol := float64(last.Volume)
	return &models.VolumeRow{
		Ticker:    displayTicker(ticker),
		Price:     last.Close,
		ChangePct: narrative.PercentChange(models.Float(last.Close), models.Float(prev.Close)),
		Volume:    last.Volume,
		VolumeFmt: narrative.FormatVolume(&vol),
	}
}

// displayTicker drops the US exchange suffix.
func displayTicker(ticker string) string {
	return strings.TrimSuffix(ticker, ".US")
}
