package share

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"raindrop/pkg/constants"
	"raindrop/pkg/models"
	"raindrop/pkg/models/private"
)

type Config struct {
	// Paths are files or directories; directories share their regular files, one level deep.
	Paths       []string
	Message     string
	ContentPath string
}

type Content interface {
	GetContent(ctx context.Context) (*private.SharedContent, error)
}

type service struct {
	cfg    Config
	logger *slog.Logger
}

// GetContent reads the configured paths on every call. Unreadable paths are logged and skipped.
func (s *service) GetContent(ctx context.Context) (*private.SharedContent, error) {
	if err := ctx.Err(); err != nil {
		return nil, models.NewAppError(models.UnavailableErrorCode, "request cancelled")
	}

	log := s.logger.With(slog.String("method", "GetContent"))
	content := private.NewSharedContent(s.cfg.Message)

	for _, path := range s.cfg.Paths {
		info, err := os.Stat(path)
		if err != nil {
			log.Error("failed to stat shared path", slog.String("path", path), slog.String("error", err.Error()))
			continue
		}

		if !info.IsDir() {
			s.addFile(content, path, info, log)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			log.Error("failed to read shared directory", slog.String("path", path), slog.String("error", err.Error()))
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}

			fullPath := filepath.Join(path, entry.Name())
			fileInfo, err := entry.Info()
			if err != nil {
				log.Error("failed to stat file", slog.String("path", fullPath), slog.String("error", err.Error()))
				continue
			}
			s.addFile(content, fullPath, fileInfo, log)
		}
	}

	if s.cfg.ContentPath != "" {
		snippet, err := readSnippet(s.cfg.ContentPath)
		if err != nil {
			log.Error("failed to read content file", slog.String("path", s.cfg.ContentPath), slog.String("error", err.Error()))
		} else {
			content.Snippet = snippet
		}
	}

	return content, nil
}

func (s *service) addFile(content *private.SharedContent, path string, info fs.FileInfo, log *slog.Logger) {
	if !info.Mode().IsRegular() {
		log.Debug("skipping non-regular file", slog.String("path", path))
		return
	}

	added := content.AddFile(private.SharedFile{
		Name: info.Name(),
		Size: uint64(info.Size()),
		Path: path,
	})
	if !added {
		log.Warn("file name conflict, skipped", slog.String("fileName", info.Name()), slog.String("path", path))
	}
}

var errSnippetTooLarge = errors.New("content file is larger than 1 MiB")

func readSnippet(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, constants.MaxSnippetSize+1))
	if err != nil {
		return "", err
	}
	if len(raw) > constants.MaxSnippetSize {
		return "", errSnippetTooLarge
	}

	return string(raw), nil
}

func NewService(cfg Config, logger *slog.Logger) Content {
	return &service{
		cfg:    cfg,
		logger: logger,
	}
}
