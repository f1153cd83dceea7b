package jobs

import (
	"context"
	"time"

	"flight-footprint/atlas/internal/services"
)

// InitializeJobs starts the background jobs. A zero interval disables
// scheduled regeneration and returns nil.
func InitializeJobs(
	ctx context.Context,
	regen Regenerator,
	opts services.RegenerationOptions,
	interval time.Duration,
) *RegenerationJob {
	if interval <= 0 {
		return nil
	}

	job := NewRegenerationJob(regen, opts)
	go job.RunScheduled(ctx, interval)
	return job
}
