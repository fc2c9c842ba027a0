package downloads

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raindrop/pkg/models"
	v1 "raindrop/pkg/models/api/v1"
	"raindrop/pkg/models/db"
	downloadsRepository "raindrop/pkg/repositories/downloads"
)

type memoryDb struct {
	rows   []db.Download
	addErr error
	getErr error
}

func (m *memoryDb) AddDownload(ctx context.Context, d db.Download) error {
	if m.addErr != nil {
		return m.addErr
	}
	now := time.Unix(1700000000, 0)
	d.CreatedAt = &now
	m.rows = append(m.rows, d)
	return nil
}

func (m *memoryDb) GetDownloads(ctx context.Context, limit int, offset int) ([]db.Download, error) {
	return m.rows, m.getErr
}

func newTestService(m *memoryDb) Downloads {
	return NewService(m, slog.New(slog.DiscardHandler))
}

func TestRecordAndList(t *testing.T) {
	m := &memoryDb{}
	svc := newTestService(m)

	require.NoError(t, svc.RecordDownload(context.Background(), v1.Download{FileName: "a.txt", ClientIP: "10.0.0.5"}))

	got, err := svc.GetDownloads(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Equal(t, []v1.Download{{FileName: "a.txt", ClientIP: "10.0.0.5", CreatedAt: 1700000000}}, got)
}

func TestRecordDownload_Error(t *testing.T) {
	svc := newTestService(&memoryDb{addErr: errors.New("conn refused")})

	err := svc.RecordDownload(context.Background(), v1.Download{FileName: "a.txt"})

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.InternalServerErrorCode, appErr.Code)
	assert.Equal(t, "internal server error", appErr.Message)
}

func TestGetDownloads_BadPaging(t *testing.T) {
	svc := newTestService(&memoryDb{})

	for _, tc := range []struct{ limit, offset int }{{0, 0}, {1001, 0}, {10, -1}} {
		_, err := svc.GetDownloads(context.Background(), tc.limit, tc.offset)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.BadRequestErrorCode, appErr.Code)
	}
}

func TestGetDownloads_DisabledAudit(t *testing.T) {
	svc := NewService(downloadsRepository.NewNoop(), slog.New(slog.DiscardHandler))

	_, err := svc.GetDownloads(context.Background(), 10, 0)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.UnavailableErrorCode, appErr.Code)
}

func TestGetDownloads_DbError(t *testing.T) {
	svc := newTestService(&memoryDb{getErr: errors.New("timeout")})

	_, err := svc.GetDownloads(context.Background(), 10, 0)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.InternalServerErrorCode, appErr.Code)
}
