package workers

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCleaner struct {
	calls atomic.Int32
}

func (c *countingCleaner) CleanupOldDownloads(ctx context.Context) (time.Duration, error) {
	c.calls.Add(1)
	return 10 * time.Millisecond, nil
}

func TestStart_RunsUntilCancelled(t *testing.T) {
	c := &countingCleaner{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := newWorkers(slog.New(slog.DiscardHandler), job{name: "count", run: func(ctx context.Context) (time.Duration, error) {
		c.calls.Add(1)
		return 0, nil
	}})
	require.NoError(t, w.Start(ctx))

	assert.Eventually(t, func() bool { return c.calls.Load() >= 1 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-w.Done():
	case <-time.After(time.Second):
		t.Fatal("workers did not stop after cancel")
	}
	stopped := c.calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, c.calls.Load())
}

func TestStart_Twice(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := NewWorkers(&countingCleaner{}, slog.New(slog.DiscardHandler))
	require.NoError(t, w.Start(ctx))
	assert.ErrorIs(t, w.Start(ctx), ErrAlreadyStarted)
}

func TestStart_FailingJobKeepsRunning(t *testing.T) {
	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := newWorkers(slog.New(slog.DiscardHandler), job{name: "flaky", run: func(ctx context.Context) (time.Duration, error) {
		if calls.Add(1) == 1 {
			return 0, errors.New("db down")
		}
		return time.Hour, nil
	}})
	require.NoError(t, w.Start(ctx))

	// the failed run is retried after the minimum interval
	assert.Eventually(t, func() bool { return calls.Load() == 2 }, 3*time.Second, 10*time.Millisecond)
}

func TestStart_EachJobHasOwnLoop(t *testing.T) {
	var fast, slow atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())

	w := newWorkers(slog.New(slog.DiscardHandler),
		job{name: "fast", run: func(ctx context.Context) (time.Duration, error) {
			fast.Add(1)
			return 0, nil
		}},
		job{name: "slow", run: func(ctx context.Context) (time.Duration, error) {
			slow.Add(1)
			<-ctx.Done()
			return 0, ctx.Err()
		}},
	)
	require.NoError(t, w.Start(ctx))

	assert.Eventually(t, func() bool { return fast.Load() >= 1 && slow.Load() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-w.Done():
	case <-time.After(time.Second):
		t.Fatal("workers did not stop after cancel")
	}
}

func TestDone_NoJobs(t *testing.T) {
	w := newWorkers(slog.New(slog.DiscardHandler))
	require.NoError(t, w.Start(context.Background()))

	select {
	case <-w.Done():
	case <-time.After(time.Second):
		t.Fatal("Done not closed without jobs")
	}
}
