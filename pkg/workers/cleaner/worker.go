package cleaner

import (
	"context"
	"log/slog"
	"time"
)

type repository interface {
	DeleteDownloadsBefore(ctx context.Context, before time.Time) (int64, error)
}

type cleanerWorker struct {
	repo      repository
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

type Worker interface {
	CleanupOldDownloads(ctx context.Context) (interval time.Duration, err error)
}

const failureInterval = 5 * time.Second

func (w *cleanerWorker) CleanupOldDownloads(ctx context.Context) (interval time.Duration, err error) {
	log := w.logger.With("worker", "CleanupOldDownloads")
	log.Debug("cleaning up old downloads")

	before := w.now().Add(-w.retention)
	removed, err := w.repo.DeleteDownloadsBefore(ctx, before)
	if err != nil {
		log.Error("failed to clean old downloads", slog.Time("before", before), slog.String("err", err.Error()))
		return failureInterval, err
	}

	if removed > 0 {
		log.Info("cleaned old downloads", slog.Int64("removed", removed))
	}

	return w.interval, nil
}

// NewWorker removes download records older than retention every interval.
func NewWorker(repo repository, retention, interval time.Duration, logger *slog.Logger) Worker {
	return &cleanerWorker{
		repo:      repo,
		retention: retention,
		interval:  interval,
		now:       time.Now,
		logger:    logger,
	}
}
