package cleaner

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metricsWorker counts cleanup runs and their duration, labelled by method and outcome.
type metricsWorker struct {
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	next     Worker
}

func (m *metricsWorker) observe(method string, started time.Time, err error) {
	failed := strconv.FormatBool(err != nil)
	m.runs.WithLabelValues(method, failed).Inc()
	m.duration.WithLabelValues(method, failed).Observe(time.Since(started).Seconds())
}

func (m *metricsWorker) CleanupOldDownloads(ctx context.Context) (time.Duration, error) {
	started := time.Now()
	interval, err := m.next.CleanupOldDownloads(ctx)
	m.observe("CleanupOldDownloads", started, err)
	return interval, err
}

func NewMetrics(runs *prometheus.CounterVec, duration *prometheus.HistogramVec, worker Worker) Worker {
	return &metricsWorker{
		runs:     runs,
		duration: duration,
		next:     worker,
	}
}
