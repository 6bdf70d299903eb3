package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/apartmentiq/leverage/internal/modules/market"
)

// MarketRefreshJob pulls fresh feed data for every tracked location so
// snapshots stay warm between requests.
type MarketRefreshJob struct {
	service   *market.Service
	locations []string
	timeout   time.Duration
	log       zerolog.Logger
}

// NewMarketRefreshJob creates a market refresh job.
func NewMarketRefreshJob(service *market.Service, locations []string, timeout time.Duration, log zerolog.Logger) *MarketRefreshJob {
	return &MarketRefreshJob{
		service:   service,
		locations: locations,
		timeout:   timeout,
		log:       log.With().Str("job", "market_refresh").Logger(),
	}
}

// Name returns the job name
func (j *MarketRefreshJob) Name() string {
	return "market_refresh"
}

// Run refreshes every tracked location. A failed location is logged and
// skipped; the rest still refresh.
func (j *MarketRefreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	refreshed := 0
	for _, location := range j.locations {
		if err := j.service.Refresh(ctx, location); err != nil {
			j.log.Warn().Err(err).Str("location", location).Msg("Failed to refresh location")
			continue
		}
		refreshed++
	}

	j.log.Info().
		Int("refreshed", refreshed).
		Int("total", len(j.locations)).
		Msg("Market refresh cycle complete")
	return nil
}
