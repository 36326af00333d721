package cleanup

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Job purges review queue items that moderators already resolved.
// Pending items stay in the queue regardless of age.
type Job struct {
	purger    resolvedPurger
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

type resolvedPurger interface {
	DeleteResolvedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

func NewReviewCleanupJob(purger resolvedPurger, retention time.Duration, logger *zap.Logger) *Job {
	if retention <= 0 {
		retention = 90 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Job{
		purger:    purger,
		retention: retention,
		interval:  6 * time.Hour,
		now:       time.Now,
		logger:    logger,
	}
}

func (j *Job) Run(ctx context.Context) error {
	if j.purger == nil {
		return nil
	}

	cutoff := j.now().Add(-j.retention)
	rows, err := j.purger.DeleteResolvedBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("purge resolved review items: %w", err)
	}
	if rows > 0 {
		j.logger.Info("purged resolved review items", zap.Int64("deleted", rows))
	}

	return nil
}

// Start runs the job on a fixed interval until the context is cancelled.
func (j *Job) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				j.logger.Error("review queue cleanup failed", zap.Error(err))
			}
		}
	}
}
