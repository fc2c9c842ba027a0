package httpServer

import (
	"log/slog"
	"strings"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"raindrop/pkg/constants"
	"raindrop/pkg/models"
	v1 "raindrop/pkg/models/api/v1"
	"raindrop/pkg/sharepage"
	"raindrop/pkg/sharepage/htmldom"
)

func (h *handler) limitReached(c *fiber.Ctx) error {
	log := h.logger.With(
		slog.String("func", "limitReached"),
		slog.String("method", c.Method()),
		slog.String("url", c.OriginalURL()),
		slog.String("ip", c.IP()),
	)

	log.Warn("rate limit reached for request")
	return fiber.NewError(fiber.StatusTooManyRequests, "too many requests, please try again later")
}

// getPage renders the share page on the server: the page shell is filled by the same
// fetch-then-render pipeline a browser would run, against this server's own /api/info.
func (h *handler) getPage(c *fiber.Ctx) error {
	log := h.logger.With(
		slog.String("func", "getPage"),
		slog.String("method", c.Method()),
		slog.String("url", c.OriginalURL()),
	)

	shell, err := h.templates.Page()
	if err != nil {
		log.Error("failed to render page template", slog.String("error", err.Error()))
		return h.htmlErrorPage(c, fiber.StatusInternalServerError, err, log)
	}

	doc, err := htmldom.ParseString(shell)
	if err != nil {
		log.Error("failed to parse page", slog.String("error", err.Error()))
		return h.htmlErrorPage(c, fiber.StatusInternalServerError, err, log)
	}

	slots, err := doc.Slots()
	if err != nil {
		log.Error("page is missing slots", slog.String("error", err.Error()))
		return h.htmlErrorPage(c, fiber.StatusInternalServerError, err, log)
	}

	renderer, err := sharepage.NewRenderer(slots)
	if err != nil {
		log.Error("failed to create renderer", slog.String("error", err.Error()))
		return h.htmlErrorPage(c, fiber.StatusInternalServerError, err, log)
	}

	fetcher := sharepage.NewFetcher(loopbackBase, h.loopback(), h.logger)
	res := sharepage.NewPage(fetcher, renderer, h.logger).Run(c.Context())
	if res.Failed {
		log.Warn("page rendered with error", slog.String("reason", res.Reason))
	}

	return c.Type("html").SendString(doc.String())
}

func (h *handler) getInfo(c *fiber.Ctx) error {
	log := h.logger.With(
		slog.String("func", "getInfo"),
		slog.String("method", c.Method()),
		slog.String("url", c.OriginalURL()),
	)

	content, err := h.share.GetContent(c.Context())
	if err != nil {
		log.Error("failed to get shared content", slog.String("error", err.Error()))
		return errorHandler(c, err)
	}

	info := toPageInfo(content)
	if info.IsEmpty {
		log.Warn("nothing is shared")
	}

	return c.JSON(info)
}

func (h *handler) getDownload(c *fiber.Ctx) error {
	fileName := c.Query(constants.DownloadFileParam)
	log := h.logger.With(
		slog.String("func", "getDownload"),
		slog.String("fileName", fileName),
		slog.String("clientIP", c.IP()),
	)

	if strings.TrimSpace(fileName) == "" {
		return errorHandler(c, models.NewAppError(models.BadRequestErrorCode, "missing file parameter"))
	}

	content, err := h.share.GetContent(c.Context())
	if err != nil {
		log.Error("failed to get shared content", slog.String("error", err.Error()))
		return errorHandler(c, err)
	}

	path, ok := content.Lookup(fileName)
	if !ok {
		log.Warn("download of unknown file requested")
		return errorHandler(c, models.NewAppError(models.NotFoundErrorCode, "file not found"))
	}

	ranged := c.Get(fiber.HeaderRange) != ""
	if !ranged {
		log.Info("download started")
	}

	err = h.downloads.RecordDownload(c.Context(), v1.Download{
		FileName: fileName,
		ClientIP: c.IP(),
		Ranged:   ranged,
	})
	if err != nil {
		log.Warn("download not recorded", slog.String("error", err.Error()))
	}

	return c.Download(path, fileName)
}

func (h *handler) getDownloads(c *fiber.Ctx) error {
	log := h.logger.With(
		slog.String("func", "getDownloads"),
		slog.String("method", c.Method()),
		slog.String("url", c.OriginalURL()),
	)

	limit := c.QueryInt("limit", constants.DefaultDownloadsTop)
	offset := c.QueryInt("offset", 0)

	downloads, err := h.downloads.GetDownloads(c.Context(), limit, offset)
	if err != nil {
		log.Error("failed to get downloads", slog.String("error", err.Error()))
		return errorHandler(c, err)
	}

	return c.JSON(fiber.Map{
		"downloads": downloads,
	})
}

func (h *handler) health(c *fiber.Ctx) error {
	return okHandler(c)
}

func (h *handler) metrics(c *fiber.Ctx) error {
	m := promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{})

	return adaptor.HTTPHandler(m)(c)
}
