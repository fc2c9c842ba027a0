package httpServer

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

const (
	MaxRequests     = 100
	RateLimitWindow = 60 * time.Second
)

func (h *handler) registerShareRoutes() {
	m := newMetrics(h.registry, h.namespace, h.subsystem, h.isRender)

	h.server.Use(m.metricsMiddleware)
	h.server.Use(h.securityHeadersMiddleware)

	h.server.Use(limiter.New(limiter.Config{
		Next:              h.isRender,
		Max:               MaxRequests,
		Expiration:        RateLimitWindow,
		LimitReached:      h.limitReached,
		LimiterMiddleware: limiter.SlidingWindow{},
	}))

	h.server.Use("/static", filesystem.New(filesystem.Config{
		Root:   http.FS(h.static),
		MaxAge: 3600,
	}))

	h.server.Get("/", h.sessionMiddleware, h.getPage)
	h.server.Get("/health", h.health)
	h.server.Get("/metrics", h.requireMetrics(), h.metrics)

	api := h.server.Group("/api", h.noCacheMiddleware, h.loggerMiddleware)
	{
		api.Get("/info", h.sessionMiddleware, h.getInfo)
		api.Get("/download", h.getDownload)
	}

	{
		apiv1 := api.Group("/v1")

		apiv1.Get("/downloads", h.requireDownloads(), h.getDownloads)
	}
}
