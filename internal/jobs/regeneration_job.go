package jobs

import (
	"context"
	"errors"
	"os"
	"time"

	"flight-footprint/atlas/internal/logging"
	"flight-footprint/atlas/internal/services"
)

// Regenerator is the part of the regeneration service the job drives.
type Regenerator interface {
	Trigger(ctx context.Context, opts services.RegenerationOptions) (*services.RegenerationResult, bool, error)
}

// RegenerationJob rebuilds the served dataset on a fixed interval.
type RegenerationJob struct {
	regen Regenerator
	opts  services.RegenerationOptions
}

func NewRegenerationJob(regen Regenerator, opts services.RegenerationOptions) *RegenerationJob {
	return &RegenerationJob{regen: regen, opts: opts}
}

// Run performs one regeneration.
func (j *RegenerationJob) Run(ctx context.Context) error {
	start := time.Now()
	logging.Info("Scheduled regeneration starting", "output", j.opts.OutputPath)

	result, shared, err := j.regen.Trigger(ctx, j.opts)
	if err != nil {
		return err
	}

	logging.Info("Scheduled regeneration finished",
		"run_id", result.RunID,
		"records", len(result.Records),
		"shared", shared,
		"duration", time.Since(start).Truncate(time.Millisecond).String(),
	)
	return nil
}

// shouldRunInitial reports whether the dataset is missing or older than maxAge.
func (j *RegenerationJob) shouldRunInitial(maxAge time.Duration) bool {
	info, err := os.Stat(j.opts.OutputPath)
	if errors.Is(err, os.ErrNotExist) {
		logging.Info("No dataset found. Running initial regeneration.", "output", j.opts.OutputPath)
		return true
	}
	if err != nil {
		logging.Warn("Could not stat dataset. Running regeneration anyway.", "error", err)
		return true
	}

	age := time.Since(info.ModTime())
	if age > maxAge {
		logging.Info("Dataset is stale. Running regeneration.", "age", age.Truncate(time.Minute).String())
		return true
	}

	logging.Info("Dataset is fresh. Skipping initial regeneration.", "age", age.Truncate(time.Minute).String())
	return false
}

// RunScheduled regenerates every interval until ctx is done. On start it
// only runs when the dataset is missing or older than one interval.
func (j *RegenerationJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if j.shouldRunInitial(interval) {
		if err := j.Run(ctx); err != nil {
			logging.Error("Initial regeneration failed", "error", err)
		}
	}

	for {
		select {
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				logging.Error("Scheduled regeneration failed", "error", err)
			}
		case <-ctx.Done():
			logging.Info("Shutting down scheduled regeneration")
			return
		}
	}
}
