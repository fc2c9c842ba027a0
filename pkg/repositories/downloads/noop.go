package downloads

import (
	"context"
	"time"

	"raindrop/pkg/models"
	"raindrop/pkg/models/db"
)

type noop struct{}

// NewNoop is used when no database is configured: downloads are not recorded.
func NewNoop() Repository {
	return noop{}
}

func (noop) AddDownload(ctx context.Context, d db.Download) error {
	return nil
}

func (noop) GetDownloads(ctx context.Context, limit int, offset int) ([]db.Download, error) {
	return nil, models.NewAppError(models.UnavailableErrorCode, "download audit is disabled")
}

func (noop) DeleteDownloadsBefore(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}
