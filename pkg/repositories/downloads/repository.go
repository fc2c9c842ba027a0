package downloads

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"raindrop/pkg/models/db"
)

type pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type repository struct {
	db pool
}

type Repository interface {
	AddDownload(ctx context.Context, d db.Download) error
	GetDownloads(ctx context.Context, limit int, offset int) ([]db.Download, error)
	DeleteDownloadsBefore(ctx context.Context, before time.Time) (int64, error)
}

const schema = `
CREATE TABLE IF NOT EXISTS downloads (
	id         BIGSERIAL PRIMARY KEY,
	file_name  TEXT        NOT NULL,
	client_ip  TEXT        NOT NULL,
	ranged     BOOLEAN     NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS downloads_created_at_idx ON downloads (created_at);`

// CreateSchema creates the downloads table if it does not exist.
func CreateSchema(ctx context.Context, conn pool) error {
	if _, err := conn.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create downloads schema: %w", err)
	}
	return nil
}

func (r *repository) AddDownload(ctx context.Context, d db.Download) error {
	query := `
		INSERT INTO downloads (file_name, client_ip, ranged)
		VALUES ($1, $2, $3)`

	_, err := r.db.Exec(ctx, query, d.FileName, d.ClientIP, d.Ranged)
	return err
}

func (r *repository) GetDownloads(ctx context.Context, limit int, offset int) ([]db.Download, error) {
	query := `
		SELECT id, file_name, client_ip, ranged, created_at
		FROM downloads
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []db.Download
	for rows.Next() {
		var (
			d         db.Download
			createdAt time.Time
		)
		if err := rows.Scan(&d.ID, &d.FileName, &d.ClientIP, &d.Ranged, &createdAt); err != nil {
			return nil, err
		}
		d.CreatedAt = &createdAt
		result = append(result, d)
	}

	return result, rows.Err()
}

func (r *repository) DeleteDownloadsBefore(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM downloads WHERE created_at < $1`, before)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

// NewRepository accepts a *pgxpool.Pool.
func NewRepository(db pool) Repository {
	return &repository{
		db: db,
	}
}
