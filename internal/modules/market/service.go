package market

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Service provides the main API for the market module. It retrieves a
// location's metric history with a 3-tier fallback:
// 1. Live feed (normalized, persisted as the location's snapshot)
// 2. Last persisted snapshot
// 3. Deterministic synthetic series (provenance=estimated)
// A feed failure is never surfaced to the caller.
type Service struct {
	feed       Feed
	normalizer *Normalizer
	snapshots  *SnapshotRepository
	log        zerolog.Logger
}

// NewService creates a new market service. feed and snapshots are optional:
// a nil feed skips tier 1 (synthetic-only deployments), a nil snapshot
// repository skips tier 2.
func NewService(feed Feed, snapshots *SnapshotRepository, log zerolog.Logger) *Service {
	return &Service{
		feed:       feed,
		normalizer: NewNormalizer(log),
		snapshots:  snapshots,
		log:        log.With().Str("module", "market").Logger(),
	}
}

// History returns the metric history for a location, most-recent first.
// Never returns an empty slice: the synthetic tier always produces data.
func (s *Service) History(ctx context.Context, location string) []MarketMetric {
	now := time.Now()

	// Tier 1: live feed
	if s.feed != nil {
		rows, err := s.feed.Fetch(ctx, location)
		if err == nil && len(rows) > 0 {
			metrics := s.normalizer.Normalize(rows, now)
			if len(metrics) > 0 {
				s.persistSnapshot(location, metrics, now)
				return metrics
			}
		}
		if err != nil {
			s.log.Warn().Err(err).Str("location", location).Msg("Feed fetch failed, trying snapshot")
		}
	}

	// Tier 2: last persisted snapshot
	if s.snapshots != nil {
		metrics, err := s.snapshots.Latest(location)
		if err != nil {
			s.log.Warn().Err(err).Str("location", location).Msg("Snapshot read failed, using synthetic series")
		} else if len(metrics) > 0 {
			s.log.Debug().Str("location", location).Msg("Using persisted market snapshot")
			return metrics
		}
	}

	// Tier 3: synthetic fallback
	s.log.Warn().Str("location", location).Msg("No market data available, using synthetic series")
	return SyntheticSeries(location, now)
}

// Refresh fetches and persists a location's history, priming the snapshot
// tier. Unlike History it surfaces feed failures, so the background
// refresh job can report them.
func (s *Service) Refresh(ctx context.Context, location string) error {
	if s.feed == nil {
		return nil
	}

	rows, err := s.feed.Fetch(ctx, location)
	if err != nil {
		return err
	}

	metrics := s.normalizer.Normalize(rows, time.Now())
	if len(metrics) == 0 {
		s.log.Warn().Str("location", location).Msg("Feed returned no usable observations")
		return nil
	}

	s.persistSnapshot(location, metrics, time.Now())
	return nil
}

func (s *Service) persistSnapshot(location string, metrics []MarketMetric, now time.Time) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.Save(location, metrics, now); err != nil {
		s.log.Warn().Err(err).Str("location", location).Msg("Failed to persist market snapshot")
	}
}
