package scheduler

import (
	"github.com/rs/zerolog"

	"github.com/apartmentiq/leverage/internal/modules/intelligence"
)

// CacheSweepJob reclaims expired entries from the intelligence cache.
type CacheSweepJob struct {
	cache *intelligence.Cache
	log   zerolog.Logger
}

// NewCacheSweepJob creates a cache sweep job.
func NewCacheSweepJob(cache *intelligence.Cache, log zerolog.Logger) *CacheSweepJob {
	return &CacheSweepJob{
		cache: cache,
		log:   log.With().Str("job", "cache_sweep").Logger(),
	}
}

// Name returns the job name
func (j *CacheSweepJob) Name() string {
	return "cache_sweep"
}

// Run sweeps expired cache entries.
func (j *CacheSweepJob) Run() error {
	removed := j.cache.Sweep()
	if removed > 0 {
		j.log.Info().Int("removed", removed).Int("remaining", j.cache.Len()).Msg("Swept intelligence cache")
	}
	return nil
}
