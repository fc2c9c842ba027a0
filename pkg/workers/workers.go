package workers

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"raindrop/pkg/workers/cleaner"
)

// Job runs once and returns the delay before its next run.
type Job = func(ctx context.Context) (interval time.Duration, err error)

const minInterval = time.Second

var ErrAlreadyStarted = errors.New("workers already started")

type Workers interface {
	// Start launches every job in its own loop. Loops stop when ctx is done.
	Start(ctx context.Context) error
	// Done is closed once all loops have returned.
	Done() <-chan struct{}
}

type job struct {
	name string
	run  Job
}

type workers struct {
	jobs   []job
	logger *slog.Logger

	once sync.Once
	wg   sync.WaitGroup
	done chan struct{}
}

func (w *workers) Start(ctx context.Context) error {
	started := false
	w.once.Do(func() {
		started = true
		for _, j := range w.jobs {
			w.wg.Add(1)
			go w.loop(ctx, j)
		}
		go func() {
			w.wg.Wait()
			close(w.done)
		}()
	})
	if !started {
		return ErrAlreadyStarted
	}

	w.logger.Info("workers started", slog.Int("jobs", len(w.jobs)))
	return nil
}

func (w *workers) Done() <-chan struct{} {
	return w.done
}

func (w *workers) loop(ctx context.Context, j job) {
	defer w.wg.Done()
	logger := w.logger.With(slog.String("job", j.name))

	for ctx.Err() == nil {
		started := time.Now()
		interval, err := j.run(ctx)
		if err != nil && ctx.Err() == nil {
			logger.Error("job failed", slog.String("error", err.Error()), slog.Duration("retry_in", interval))
		}
		interval = max(interval, minInterval)
		logger.Debug("job finished", slog.Duration("took", time.Since(started)), slog.Duration("next_in", interval))

		t := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			t.Stop()
		case <-t.C:
		}
	}
}

func newWorkers(logger *slog.Logger, jobs ...job) *workers {
	return &workers{
		jobs:   jobs,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// NewWorkers schedules the download retention cleanup.
func NewWorkers(cleaner cleaner.Worker, logger *slog.Logger) Workers {
	return newWorkers(logger, job{name: "CleanupOldDownloads", run: cleaner.CleanupOldDownloads})
}
