// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

// Package server exposes widget rendering over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/davetashner/csvwidgets/internal/page"
	"github.com/davetashner/csvwidgets/internal/param"
	"github.com/davetashner/csvwidgets/internal/widget"
)

// DefaultRenderTimeout bounds a single page or widget render.
const DefaultRenderTimeout = 30 * time.Second

// Options configures the HTTP handlers.
type Options struct {
	Catalog       *page.Catalog
	RenderTimeout time.Duration
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
}

// ErrorResponse is the JSON body of failed requests.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// WidgetInfo describes a widget type.
type WidgetInfo struct {
	Type       string            `json:"type"`
	Label      string            `json:"label"`
	Details    string            `json:"details"`
	Tags       []string          `json:"tags"`
	Parameters *param.Definition `json:"parameters"`
}

// Handler serves pages from a catalog.
type Handler struct {
	catalog *page.Catalog
	timeout time.Duration
}

// NewHandler returns a Handler for opts.
func NewHandler(opts Options) *Handler {
	timeout := opts.RenderTimeout
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	return &Handler{catalog: opts.Catalog, timeout: timeout}
}

// New builds the fiber app with all routes registered.
func New(opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "csvwidgets",
		DisableStartupMessage: true,
		ReadTimeout:           opts.ReadTimeout,
		WriteTimeout:          opts.WriteTimeout,
	})
	h := NewHandler(opts)
	app.Get("/healthz", h.Health)
	app.Get("/widgets", h.ListWidgets)
	app.Get("/widgets/:type/icon", h.WidgetIcon)
	app.Get("/pages", h.ListPages)
	app.Get("/pages/:page", h.RenderPage)
	app.Get("/pages/:page/widgets/:id", h.RenderWidget)
	return app
}

// Health reports liveness.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "ok"})
}

// ListWidgets returns the registered widget types.
func (h *Handler) ListWidgets(c *fiber.Ctx) error {
	widgets := widget.List()
	out := make([]WidgetInfo, 0, len(widgets))
	for _, w := range widgets {
		out = append(out, WidgetInfo{
			Type:       w.Type(),
			Label:      w.Label(),
			Details:    w.Details(),
			Tags:       w.Tags(),
			Parameters: w.Parameters(),
		})
	}
	return c.Status(http.StatusOK).JSON(out)
}

// WidgetIcon serves the icon of a widget type.
func (h *Handler) WidgetIcon(c *fiber.Ctx) error {
	w, err := widget.Get(c.Params("type"))
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{Error: "not_found", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.Send(w.Icon())
}

// ListPages returns the page names in the catalog.
func (h *Handler) ListPages(c *fiber.Ctx) error {
	names, err := h.catalog.Names()
	if err != nil {
		slog.Error("list pages", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{Error: "internal_server_error"})
	}
	if names == nil {
		names = []string{}
	}
	return c.Status(http.StatusOK).JSON(names)
}

// RenderPage renders a whole page as an HTML document.
func (h *Handler) RenderPage(c *fiber.Ctx) error {
	r, err := h.catalog.Open(c.Params("page"))
	if err != nil {
		return pageError(c, err)
	}
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	doc, err := r.Render(ctx)
	if err != nil {
		return renderError(c, err)
	}
	var buf bytes.Buffer
	if err := doc.WriteHTML(&buf); err != nil {
		return renderError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(http.StatusOK).Send(buf.Bytes())
}

// RenderWidget renders one widget of a page as an HTML fragment. Widget
// warnings and errors are part of the fragment, so the status is 200.
func (h *Handler) RenderWidget(c *fiber.Ctx) error {
	r, err := h.catalog.Open(c.Params("page"))
	if err != nil {
		return pageError(c, err)
	}
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	res, err := r.RenderWidget(ctx, c.Params("id"))
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{Error: "not_found", Message: err.Error()})
	}
	c.Set("X-Widget-State", res.State.String())
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(http.StatusOK).SendString(res.HTML)
}

func pageError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, page.ErrInvalidName):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: "invalid_page", Message: err.Error()})
	case errors.Is(err, page.ErrPageNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{Error: "not_found", Message: err.Error()})
	default:
		slog.Warn("open page", "page", c.Params("page"), "error", err)
		return c.Status(http.StatusUnprocessableEntity).JSON(ErrorResponse{Error: "invalid_page_config", Message: err.Error()})
	}
}

func renderError(c *fiber.Ctx, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return c.Status(http.StatusGatewayTimeout).JSON(ErrorResponse{Error: "render_timeout"})
	}
	slog.Error("render page", "page", c.Params("page"), "error", err)
	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{Error: "internal_server_error"})
}

// ListenAndServe runs app on addr until ctx is cancelled, then shuts it
// down within the grace period.
func ListenAndServe(ctx context.Context, app *fiber.App, addr string, grace time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(addr)
	}()
	slog.Info("server started", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}
