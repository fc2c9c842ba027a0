//go:build !debug
// +build !debug

package httpServer

func (h *handler) RegisterRoutes() {
	h.logger.Info("Registering routes")

	h.registerShareRoutes()
}
