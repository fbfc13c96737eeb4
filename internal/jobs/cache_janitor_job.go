package jobs

import (
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Purger drops expired cache entries and reports how many were removed.
type Purger interface {
	PurgeExpired() int
}

// CacheJanitorJob reclaims expired entries of the in-memory lookup cache.
type CacheJanitorJob struct {
	purger   Purger
	schedule string
	cron     *cron.Cron
	logger   zerolog.Logger
}

// NewCacheJanitorJob creates a janitor running on schedule, a six-field cron
// expression with seconds.
func NewCacheJanitorJob(purger Purger, schedule string, logger zerolog.Logger) *CacheJanitorJob {
	return &CacheJanitorJob{
		purger:   purger,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With().Str("component", "cache_janitor_job").Logger(),
	}
}

func (j *CacheJanitorJob) Name() string {
	return "cache janitor"
}

func (j *CacheJanitorJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info().Str("schedule", j.schedule).Msg("cache janitor job started")
	return nil
}

// Run performs one purge.
func (j *CacheJanitorJob) Run() {
	if n := j.purger.PurgeExpired(); n > 0 {
		j.logger.Debug().Int("purged", n).Msg("expired cache entries purged")
	}
}

func (j *CacheJanitorJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info().Msg("cache janitor job stopped")
}
