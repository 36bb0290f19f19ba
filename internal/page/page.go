// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

// Package page renders all widgets of a page definition and assembles
// them into a standalone HTML document.
package page

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/davetashner/csvwidgets/internal/calendar"
	"github.com/davetashner/csvwidgets/internal/chart"
	"github.com/davetashner/csvwidgets/internal/config"
	"github.com/davetashner/csvwidgets/internal/content"
	"github.com/davetashner/csvwidgets/internal/widget"
)

// DefaultConcurrency is the number of widgets rendered in parallel when
// Options leaves it unset.
const DefaultConcurrency = 4

// Options tunes a Renderer.
type Options struct {
	// Engine overrides the page's chart engine.
	Engine string
	// Concurrency bounds parallel widget renders.
	Concurrency int
	// Credentials hold content source secrets.
	Credentials config.Credentials
}

// Renderer renders the widgets of one page. It is safe for concurrent
// use; every widget render builds its own state.
type Renderer struct {
	page        *config.Page
	loader      content.Loader
	calendar    calendar.WorkingCalendar
	engine      chart.Engine
	concurrency int
}

// New builds a Renderer for page. baseDir is the directory of the page
// file and anchors relative repository paths.
func New(page *config.Page, baseDir string, opts Options) (*Renderer, error) {
	loader, err := content.New(page.Repository.ContentOptions(baseDir, opts.Credentials))
	if err != nil {
		return nil, fmt.Errorf("repository: %w", err)
	}
	cal, err := page.Calendar.Calendar()
	if err != nil {
		return nil, fmt.Errorf("calendar: %w", err)
	}
	return NewWithCollaborators(page, loader, cal, opts)
}

// NewWithCollaborators builds a Renderer with explicitly provided
// collaborators, bypassing the page's repository and calendar settings.
// This is primarily useful for testing.
func NewWithCollaborators(page *config.Page, loader content.Loader, cal calendar.WorkingCalendar, opts Options) (*Renderer, error) {
	name := page.ChartEngine
	if opts.Engine != "" {
		name = opts.Engine
	}
	engine, err := chart.Get(name)
	if err != nil {
		return nil, err
	}
	n := opts.Concurrency
	if n < 1 {
		n = DefaultConcurrency
	}
	return &Renderer{page: page, loader: loader, calendar: cal, engine: engine, concurrency: n}, nil
}

// Load reads the page file at path, applies defaults and builds its
// Renderer.
func Load(path string, defaults *config.Page, opts Options) (*Renderer, error) {
	p, err := config.LoadPage(path)
	if err != nil {
		return nil, err
	}
	if defaults != nil {
		p = config.Merge(defaults, p)
	}
	return New(p, filepath.Dir(path), opts)
}

// Page returns the page definition.
func (r *Renderer) Page() *config.Page { return r.page }

// Engine returns the chart engine in use.
func (r *Renderer) Engine() chart.Engine { return r.engine }

// Rendered is the outcome of one widget on the page.
type Rendered struct {
	ID    string `json:"id"`
	Width int    `json:"width,omitempty"`
	widget.Result
	Duration time.Duration `json:"duration"`
}

// RenderWidget renders the widget with the given id.
func (r *Renderer) RenderWidget(ctx context.Context, id string) (Rendered, error) {
	wc, ok := r.page.Widget(id)
	if !ok {
		return Rendered{}, fmt.Errorf("page has no widget %q", id)
	}
	return r.runWidget(ctx, *wc), nil
}

// Render renders every widget of the page, up to the configured number
// at a time. Widget failures are reported in the results, not as an
// error; only cancellation of ctx aborts the render.
func (r *Renderer) Render(ctx context.Context) (*Document, error) {
	start := time.Now()
	results := make([]Rendered, len(r.page.Widgets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, wc := range r.page.Widgets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.runWidget(gctx, wc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	doc := &Document{Title: r.page.Title, Widgets: results, GeneratedAt: time.Now()}
	ok, warnings, errs := doc.Counts()
	slog.Info("page rendered", "title", r.page.Title, "widgets", len(results),
		"ok", ok, "warnings", warnings, "errors", errs, "duration", time.Since(start))
	return doc, nil
}

// runWidget renders a single widget and captures its result and timing.
func (r *Renderer) runWidget(ctx context.Context, wc config.WidgetConfig) Rendered {
	start := time.Now()
	out := Rendered{ID: wc.ID, Width: wc.Width}

	w, err := widget.Get(wc.Type)
	if err != nil {
		out.Result = widget.Failure(wc.Type, err)
		out.Duration = time.Since(start)
		return out
	}
	width := r.page.ColumnWidth
	if wc.Width > 0 {
		width = wc.Width
	}
	rc := &widget.RenderContext{
		Loader:      r.loader,
		Calendar:    r.calendar,
		Engine:      r.engine,
		ColumnWidth: width,
		RenderID:    uuid.New(),
	}
	out.Result = widget.Render(ctx, w, rc, wc.Parameters)
	out.Duration = time.Since(start)
	slog.Debug("widget done", "widget", wc.ID, "type", wc.Type, "state", out.State,
		"render_id", rc.RenderID, "duration", out.Duration)
	return out
}
