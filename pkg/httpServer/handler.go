package httpServer

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	v1 "raindrop/pkg/models/api/v1"
	"raindrop/pkg/models/private"
)

type TokenPermissions struct {
	Downloads bool
	Metrics   bool
}

type share interface {
	GetContent(ctx context.Context) (*private.SharedContent, error)
}

type downloads interface {
	RecordDownload(ctx context.Context, d v1.Download) error
	GetDownloads(ctx context.Context, limit int, offset int) ([]v1.Download, error)
}

type templatesSvc interface {
	ErrorTemplate(err error) (string, error)
	Page() (string, error)
}

// Registry is where the HTTP metrics are registered and what /metrics exposes.
type Registry interface {
	prometheus.Registerer
	prometheus.Gatherer
}

type errorResponse struct {
	Error string `json:"error"`
}

type handler struct {
	server       *fiber.App
	logger       *slog.Logger
	share        share
	downloads    downloads
	templates    templatesSvc
	static       fs.FS
	registry     Registry
	namespace    string
	subsystem    string
	accessTokens map[string]TokenPermissions
	// renderToken marks the in-process /api/info requests made while rendering "/".
	renderToken string
}

func New(
	server *fiber.App,
	share share,
	downloads downloads,
	templates templatesSvc,
	static fs.FS,
	registry Registry,
	accessTokens []string,
	namespace string,
	subsystem string,
	logger *slog.Logger,
) *handler {
	accessTokensMap := make(map[string]TokenPermissions)

	for _, token := range accessTokens {
		parts := strings.Split(token, ":")
		tokenHash := strings.ToLower(strings.TrimSpace(parts[0]))

		if tokenHash == "" {
			continue
		}

		// default
		permissions := TokenPermissions{
			Downloads: true,
			Metrics:   true,
		}

		if len(parts) > 1 {
			permissionsList := strings.Split(parts[1], ",")
			permissions = TokenPermissions{}

			for _, perm := range permissionsList {
				switch strings.TrimSpace(strings.ToLower(perm)) {
				case "downloads":
					permissions.Downloads = true
				case "metrics":
					permissions.Metrics = true
				case "all":
					permissions.Downloads = true
					permissions.Metrics = true
				}
			}
		}

		accessTokensMap[tokenHash] = permissions
	}

	h := &handler{
		server:       server,
		share:        share,
		downloads:    downloads,
		templates:    templates,
		static:       static,
		registry:     registry,
		namespace:    namespace,
		subsystem:    subsystem,
		accessTokens: accessTokensMap,
		renderToken:  newRenderToken(),
		logger:       logger,
	}

	return h
}

func newRenderToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
