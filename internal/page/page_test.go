// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package page

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/csvwidgets/internal/calendar"
	"github.com/davetashner/csvwidgets/internal/chart"
	"github.com/davetashner/csvwidgets/internal/config"
	"github.com/davetashner/csvwidgets/internal/content"
	"github.com/davetashner/csvwidgets/internal/widget"
)

const bugsCSV = "date,open\n2024-01-05,5\n2024-01-20,7\n2024-02-03,3\n"

func testPage() *config.Page {
	return &config.Page{
		Title:       "Quality <2024>",
		ChartEngine: "svg",
		ColumnWidth: 600,
		Widgets: []config.WidgetConfig{
			{ID: "table", Type: widget.TypeTable, Parameters: map[string]any{
				"dataSource": map[string]any{"dataLocation": "bugs.csv"},
			}},
			{ID: "trend", Type: widget.TypeTrendChart, Width: 450, Parameters: map[string]any{
				"dataSource": map[string]any{"dataLocation": "bugs.csv"},
				"series":     []any{map[string]any{"name": "Open", "dataKey": "open"}},
				"dates":      map[string]any{"year": 2024},
				"textBelow":  "Total ${open}",
			}},
			{ID: "unconfigured", Type: widget.TypeTable},
			{ID: "broken", Type: widget.TypeTable, Parameters: map[string]any{
				"dataSource": map[string]any{"dataLocation": "missing.csv"},
			}},
			{ID: "unknown", Type: "pie"},
		},
	}
}

func testRenderer(t *testing.T, p *config.Page, opts Options) (*Renderer, *content.Memory) {
	t.Helper()
	loader := content.NewMemory()
	loader.Put("bugs.csv", bugsCSV, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	cal, err := calendar.New(calendar.Options{TimeZone: "UTC"})
	require.NoError(t, err)
	r, err := NewWithCollaborators(p, loader, cal, opts)
	require.NoError(t, err)
	return r, loader
}

func TestRender(t *testing.T) {
	r, loader := testRenderer(t, testPage(), Options{Concurrency: 2})
	assert.Equal(t, "svg", r.Engine().Name())

	doc, err := r.Render(context.Background())
	require.NoError(t, err)
	require.Len(t, doc.Widgets, 5)

	ids := make([]string, len(doc.Widgets))
	for i, w := range doc.Widgets {
		ids[i] = w.ID
	}
	assert.Equal(t, []string{"table", "trend", "unconfigured", "broken", "unknown"}, ids, "results keep page order")

	assert.Equal(t, widget.StateOK, doc.Widgets[0].State)
	assert.Contains(t, doc.Widgets[0].HTML, "<td>2024-01-05</td>")
	assert.Equal(t, widget.StateOK, doc.Widgets[1].State, doc.Widgets[1].Message)
	assert.Contains(t, doc.Widgets[1].HTML, "<svg")
	assert.Contains(t, doc.Widgets[1].HTML, "<p>Total 15</p>")
	assert.Equal(t, 450, doc.Widgets[1].Width)
	assert.Equal(t, widget.StateWarning, doc.Widgets[2].State)
	assert.Equal(t, widget.StateError, doc.Widgets[3].State)
	assert.Equal(t, widget.StateError, doc.Widgets[4].State)
	assert.ErrorIs(t, doc.Widgets[4].Err, widget.ErrUnknownType)

	ok, warnings, errs := doc.Counts()
	assert.Equal(t, []int{2, 1, 2}, []int{ok, warnings, errs})
	assert.Equal(t, 2, loader.Loads)
}

func TestRender_Canceled(t *testing.T) {
	r, _ := testRenderer(t, testPage(), Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Render(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderWidget(t *testing.T) {
	r, _ := testRenderer(t, testPage(), Options{})

	res, err := r.RenderWidget(context.Background(), "table")
	require.NoError(t, err)
	assert.Equal(t, "table", res.ID)
	assert.Equal(t, widget.StateOK, res.State)

	_, err = r.RenderWidget(context.Background(), "nope")
	assert.ErrorContains(t, err, `page has no widget "nope"`)
}

func TestNewWithCollaborators_Engine(t *testing.T) {
	r, _ := testRenderer(t, testPage(), Options{Engine: "echarts"})
	assert.Equal(t, "echarts", r.Engine().Name())

	_, err := NewWithCollaborators(testPage(), content.NewMemory(), nil, Options{Engine: "gnuplot"})
	assert.Error(t, err)
}

func TestWriteHTML(t *testing.T) {
	p := testPage()
	p.ChartEngine = ""
	r, _ := testRenderer(t, p, Options{})
	doc, err := r.Render(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, doc.WriteHTML(&buf))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>Quality &lt;2024&gt;</title>")
	assert.Equal(t, 1, strings.Count(out, `<script src="`+chart.EChartsScript+`"></script>`))
	assert.Contains(t, out, `<section class="widget widget-ok" id="widget-table">`)
	assert.Contains(t, out, `<section class="widget widget-ok" id="widget-trend" style="max-width:450px">`)
	assert.Contains(t, out, `<section class="widget widget-warning" id="widget-unconfigured">`)
	assert.Contains(t, out, `<div class="rpw-warning">`)
	assert.Contains(t, out, `<table class="rpw-table-content">`)
}

func TestDocument_Scripts(t *testing.T) {
	doc := &Document{Widgets: []Rendered{
		{Result: widget.Result{Scripts: []string{"a.js", "b.js"}}},
		{Result: widget.Result{Scripts: []string{"b.js", "c.js"}}},
		{},
	}}
	assert.Equal(t, []string{"a.js", "b.js", "c.js"}, doc.Scripts())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data", "bugs.csv"), []byte(bugsCSV), 0o600))
	pagePath := filepath.Join(dir, "quality.yaml")
	require.NoError(t, os.WriteFile(pagePath, []byte(`
title: Quality
widgets:
  - id: table
    type: csv-table
    parameters:
      dataSource:
        dataLocation: bugs.csv
`), 0o600))

	defaults := &config.Page{Repository: config.Repository{Kind: "dir", Path: "data"}, ChartEngine: "svg"}
	r, err := Load(pagePath, defaults, Options{})
	require.NoError(t, err)
	assert.Equal(t, "svg", r.Engine().Name())

	res, err := r.RenderWidget(context.Background(), "table")
	require.NoError(t, err)
	require.Equal(t, widget.StateOK, res.State, res.Message)
	assert.Contains(t, res.HTML, "<th>open</th>")

	_, err = Load(filepath.Join(dir, "missing.yaml"), nil, Options{})
	assert.Error(t, err)
}

func TestNew_Errors(t *testing.T) {
	_, err := New(&config.Page{Repository: config.Repository{Kind: "ftp"}}, "", Options{})
	assert.ErrorContains(t, err, "repository")

	_, err = New(&config.Page{Calendar: config.CalendarConfig{TimeZone: "Nowhere/Place"}}, "", Options{})
	assert.ErrorContains(t, err, "calendar")
}
