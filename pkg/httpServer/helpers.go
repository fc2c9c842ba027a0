package httpServer

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"

	"raindrop/pkg/models"
	v1 "raindrop/pkg/models/api/v1"
	"raindrop/pkg/models/private"
	"raindrop/pkg/utils"
)

const (
	renderTokenHeader = "X-Raindrop-Render"
	// loopbackBase only has to parse as a URL; loopback requests never leave the process.
	loopbackBase = "http://raindrop.internal"
)

func okHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

func errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(errorResponse{
			Error: fiberErr.Message,
		})
	}

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return c.Status(appErr.Code).JSON(errorResponse{
			Error: appErr.Message,
		})
	}

	errorResponse := errorResponse{
		Error: err.Error(),
	}

	return c.Status(fiber.StatusInternalServerError).JSON(errorResponse)
}

// ErrorHandler is the fiber.Config ErrorHandler for the share server.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return errorHandler(c, err)
}

func (h *handler) htmlErrorPage(c *fiber.Ctx, status int, err error, log *slog.Logger) error {
	page, tmplErr := h.templates.ErrorTemplate(err)
	if tmplErr != nil {
		log.Error("failed to render error template", slog.String("error", tmplErr.Error()))
		return errorHandler(c, models.NewAppError(models.InternalServerErrorCode, ""))
	}

	return c.Status(status).Type("html").SendString(page)
}

func toPageInfo(content *private.SharedContent) v1.PageInfo {
	info := v1.PageInfo{
		IsEmpty:     content.IsEmpty(),
		Description: content.Message,
		Snippet:     content.Snippet,
	}

	for _, f := range content.Files {
		info.Files = append(info.Files, v1.FileDescriptor{
			FileName: f.Name,
			FileSize: utils.FormatSize(f.Size),
		})
	}

	return info
}

// loopback sends page info requests straight into the fiber app, marked with the render token.
type loopback struct {
	app   http.Handler
	token string
}

func (l *loopback) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set(renderTokenHeader, l.token)
	req.RequestURI = req.URL.RequestURI()
	req.RemoteAddr = "127.0.0.1:0"

	rec := httptest.NewRecorder()
	l.app.ServeHTTP(rec, req)

	return rec.Result(), nil
}

func (h *handler) loopback() *loopback {
	return &loopback{
		app:   adaptor.FiberApp(h.server),
		token: h.renderToken,
	}
}

func (h *handler) isRender(c *fiber.Ctx) bool {
	return c.Get(renderTokenHeader) == h.renderToken
}
