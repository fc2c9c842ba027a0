package httpServer

import (
	"crypto/md5"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// requirePermission checks that the bearer token's md5 hash grants permission.
func (h *handler) requirePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := c.Get("Authorization")
		if accessToken == "" {
			return errorHandler(c, fiber.NewError(fiber.StatusUnauthorized, "unauthorized"))
		}

		if strings.HasPrefix(strings.ToLower(accessToken), "bearer ") {
			accessToken = accessToken[7:]
		}

		hash := md5.Sum([]byte(accessToken))
		tokenHash := fmt.Sprintf("%x", hash[:])

		tokenPermissions, exists := h.accessTokens[tokenHash]
		if !exists {
			return errorHandler(c, fiber.NewError(fiber.StatusForbidden, "forbidden"))
		}

		hasPermission := false
		switch permission {
		case "downloads":
			hasPermission = tokenPermissions.Downloads
		case "metrics":
			hasPermission = tokenPermissions.Metrics
		}

		if !hasPermission {
			return errorHandler(c, fiber.NewError(fiber.StatusForbidden, "forbidden"))
		}

		return c.Next()
	}
}

func (h *handler) requireDownloads() fiber.Handler {
	return h.requirePermission("downloads")
}

func (h *handler) requireMetrics() fiber.Handler {
	return h.requirePermission("metrics")
}

func (h *handler) loggerMiddleware(c *fiber.Ctx) error {
	headers := c.GetReqHeaders()
	delete(headers, "Authorization")
	delete(headers, "Cookie")
	delete(headers, renderTokenHeader)

	res := c.Next()

	h.logger.Debug(
		"request",
		"status_code", c.Response().StatusCode(),
		"method", c.Method(),
		"url", c.OriginalURL(),
		"headers", headers,
		"body_length", len(c.Body()),
	)

	return res
}

// sessionMiddleware logs visitors of the page and of /api/info. The page's own
// render request is not a new visitor.
func (h *handler) sessionMiddleware(c *fiber.Ctx) error {
	if !h.isRender(c) {
		h.logger.Info("session established",
			slog.String("clientIP", c.IP()),
			slog.String("path", c.Path()),
			slog.String("userAgent", c.Get(fiber.HeaderUserAgent)),
		)
	}

	return c.Next()
}

func (h *handler) noCacheMiddleware(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate")
	c.Set(fiber.HeaderPragma, "no-cache")
	c.Set(fiber.HeaderExpires, "0")

	return c.Next()
}

func (h *handler) securityHeadersMiddleware(c *fiber.Ctx) error {
	// The page is rendered on the server and ships no scripts.
	c.Set("Content-Security-Policy", "default-src 'self'; script-src 'none'; frame-ancestors 'none'")

	c.Set("X-Frame-Options", "DENY")
	c.Set("X-Content-Type-Options", "nosniff")
	c.Set("Referrer-Policy", "no-referrer")

	return c.Next()
}
