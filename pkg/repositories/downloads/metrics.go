package downloads

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"raindrop/pkg/models/db"
)

type metricsMiddleware struct {
	reqCount    *prometheus.CounterVec
	reqDuration *prometheus.HistogramVec
	repo        Repository
}

func (m *metricsMiddleware) AddDownload(ctx context.Context, d db.Download) (err error) {
	defer func(s time.Time) {
		labels := []string{
			"AddDownload", strconv.FormatBool(err != nil),
		}
		m.reqCount.WithLabelValues(labels...).Add(1)
		m.reqDuration.WithLabelValues(labels...).Observe(time.Since(s).Seconds())
	}(time.Now())
	return m.repo.AddDownload(ctx, d)
}

func (m *metricsMiddleware) GetDownloads(ctx context.Context, limit int, offset int) (downloads []db.Download, err error) {
	defer func(s time.Time) {
		labels := []string{
			"GetDownloads", strconv.FormatBool(err != nil),
		}
		m.reqCount.WithLabelValues(labels...).Add(1)
		m.reqDuration.WithLabelValues(labels...).Observe(time.Since(s).Seconds())
	}(time.Now())
	return m.repo.GetDownloads(ctx, limit, offset)
}

func (m *metricsMiddleware) DeleteDownloadsBefore(ctx context.Context, before time.Time) (removed int64, err error) {
	defer func(s time.Time) {
		labels := []string{
			"DeleteDownloadsBefore", strconv.FormatBool(err != nil),
		}
		m.reqCount.WithLabelValues(labels...).Add(1)
		m.reqDuration.WithLabelValues(labels...).Observe(time.Since(s).Seconds())
	}(time.Now())
	return m.repo.DeleteDownloadsBefore(ctx, before)
}

func NewMetrics(reqCount *prometheus.CounterVec, reqDuration *prometheus.HistogramVec, repo Repository) Repository {
	return &metricsMiddleware{
		reqCount:    reqCount,
		reqDuration: reqDuration,
		repo:        repo,
	}
}
