package downloads

import (
	"context"
	"errors"
	"log/slog"

	"raindrop/pkg/models"
	v1 "raindrop/pkg/models/api/v1"
	"raindrop/pkg/models/db"
)

type downloadsDb interface {
	AddDownload(ctx context.Context, d db.Download) error
	GetDownloads(ctx context.Context, limit int, offset int) ([]db.Download, error)
}

type service struct {
	downloads downloadsDb
	logger    *slog.Logger
}

type Downloads interface {
	RecordDownload(ctx context.Context, d v1.Download) error
	GetDownloads(ctx context.Context, limit int, offset int) ([]v1.Download, error)
}

func (s *service) RecordDownload(ctx context.Context, d v1.Download) error {
	log := s.logger.With(
		slog.String("method", "RecordDownload"),
		slog.String("fileName", d.FileName),
	)

	err := s.downloads.AddDownload(ctx, db.Download{
		FileName: d.FileName,
		ClientIP: d.ClientIP,
		Ranged:   d.Ranged,
	})
	if err != nil {
		log.Error("failed to record download", slog.String("error", err.Error()))
		return models.NewAppError(models.InternalServerErrorCode, "")
	}

	return nil
}

func (s *service) GetDownloads(ctx context.Context, limit int, offset int) ([]v1.Download, error) {
	log := s.logger.With(slog.String("method", "GetDownloads"))

	if limit <= 0 || limit > 1000 {
		return nil, models.NewAppError(models.BadRequestErrorCode, "limit must be between 1 and 1000")
	}
	if offset < 0 {
		return nil, models.NewAppError(models.BadRequestErrorCode, "offset must not be negative")
	}

	rows, err := s.downloads.GetDownloads(ctx, limit, offset)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		log.Error("failed to get downloads", slog.String("error", err.Error()))
		return nil, models.NewAppError(models.InternalServerErrorCode, "")
	}

	downloads := make([]v1.Download, 0, len(rows))
	for _, r := range rows {
		var createdAt uint64
		if r.CreatedAt != nil {
			createdAt = uint64(r.CreatedAt.Unix())
		}

		downloads = append(downloads, v1.Download{
			FileName:  r.FileName,
			ClientIP:  r.ClientIP,
			Ranged:    r.Ranged,
			CreatedAt: createdAt,
		})
	}

	return downloads, nil
}

func NewService(downloads downloadsDb, logger *slog.Logger) Downloads {
	return &service{
		downloads: downloads,
		logger:    logger,
	}
}
