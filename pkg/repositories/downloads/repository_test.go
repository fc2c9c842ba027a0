package downloads

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raindrop/pkg/models"
	"raindrop/pkg/models/db"
)

type execCall struct {
	sql  string
	args []any
}

type fakePool struct {
	execs    []execCall
	tag      pgconn.CommandTag
	execErr  error
	queryErr error
}

func (f *fakePool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, execCall{sql: sql, args: args})
	return f.tag, f.execErr
}

func (f *fakePool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, f.queryErr
}

func TestAddDownload(t *testing.T) {
	p := &fakePool{}
	repo := NewRepository(p)

	err := repo.AddDownload(context.Background(), db.Download{FileName: "a.txt", ClientIP: "10.0.0.2", Ranged: true})
	require.NoError(t, err)

	require.Len(t, p.execs, 1)
	assert.Contains(t, p.execs[0].sql, "INSERT INTO downloads")
	assert.Equal(t, []any{"a.txt", "10.0.0.2", true}, p.execs[0].args)
}

func TestDeleteDownloadsBefore(t *testing.T) {
	p := &fakePool{tag: pgconn.NewCommandTag("DELETE 3")}
	before := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	removed, err := NewRepository(p).DeleteDownloadsBefore(context.Background(), before)
	require.NoError(t, err)

	assert.Equal(t, int64(3), removed)
	assert.Equal(t, []any{before}, p.execs[0].args)
}

func TestGetDownloads_QueryError(t *testing.T) {
	p := &fakePool{queryErr: errors.New("conn closed")}

	_, err := NewRepository(p).GetDownloads(context.Background(), 10, 0)
	assert.EqualError(t, err, "conn closed")
}

func TestCreateSchema(t *testing.T) {
	p := &fakePool{}
	require.NoError(t, CreateSchema(context.Background(), p))
	assert.Contains(t, p.execs[0].sql, "CREATE TABLE IF NOT EXISTS downloads")

	p.execErr = errors.New("permission denied")
	err := CreateSchema(context.Background(), p)
	assert.ErrorContains(t, err, "permission denied")
}

func TestNoop(t *testing.T) {
	repo := NewNoop()

	assert.NoError(t, repo.AddDownload(context.Background(), db.Download{FileName: "a"}))

	_, err := repo.GetDownloads(context.Background(), 10, 0)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.UnavailableErrorCode, appErr.Code)

	removed, err := repo.DeleteDownloadsBefore(context.Background(), time.Now())
	assert.NoError(t, err)
	assert.Zero(t, removed)
}

func TestMetrics(t *testing.T) {
	count := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "db_requests_count"}, []string{"method", "error"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: "db_requests_duration"}, []string{"method", "error"})

	repo := NewMetrics(count, duration, NewNoop())
	_ = repo.AddDownload(context.Background(), db.Download{})
	_, _ = repo.GetDownloads(context.Background(), 1, 0)
	_, _ = repo.DeleteDownloadsBefore(context.Background(), time.Now())

	assert.Equal(t, 1.0, testutil.ToFloat64(count.WithLabelValues("AddDownload", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(count.WithLabelValues("GetDownloads", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(count.WithLabelValues("DeleteDownloadsBefore", "false")))
}
