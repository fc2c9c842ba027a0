// !ONLY FOR DEBUG PURPOSES
//
//go:build debug
// +build debug

package httpServer

import (
	"github.com/gofiber/fiber/v2"
)

func (h *handler) RegisterRoutes() {
	h.logger.Info("Registering debug routes")

	// The view and snapshot commands may be pointed at a dev server from another origin.
	h.server.Use(func(c *fiber.Ctx) error {
		c.Set("Access-Control-Allow-Origin", "*")
		c.Set("Access-Control-Allow-Methods", "GET,OPTIONS")
		c.Set("Access-Control-Allow-Headers", "*")

		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusOK)
		}
		return c.Next()
	})

	h.registerShareRoutes()
}
