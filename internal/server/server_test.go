// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/csvwidgets/internal/page"
)

const qualityPage = `
title: Quality
chart_engine: svg
repository:
  kind: dir
  path: data
widgets:
  - id: table
    type: csv-table
    parameters:
      dataSource:
        dataLocation: bugs.csv
  - id: empty
    type: csv-table
`

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "data"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data", "bugs.csv"),
		[]byte("date,open\n2024-01-05,5\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quality.yaml"), []byte(qualityPage), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("title: [\n"), 0o600))
	return New(Options{Catalog: &page.Catalog{Dir: dir}})
}

func get(t *testing.T, app *fiber.App, target string) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestHealth(t *testing.T) {
	resp, body := get(t, setupApp(t), "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestListWidgets(t *testing.T) {
	resp, body := get(t, setupApp(t), "/widgets")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var infos []WidgetInfo
	require.NoError(t, json.Unmarshal([]byte(body), &infos))
	require.Len(t, infos, 2)
	assert.Equal(t, "csv-table", infos[0].Type)
	assert.Equal(t, "CSV-based Table", infos[0].Label)
	assert.Equal(t, []string{"CSV", "generic"}, infos[0].Tags)
	assert.Equal(t, "csv-trend-chart", infos[1].Type)
	assert.NotNil(t, infos[1].Parameters.Child("series"))
}

func TestWidgetIcon(t *testing.T) {
	app := setupApp(t)

	resp, body := get(t, app, "/widgets/csv-table/icon")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(body, "<svg"))

	resp, _ = get(t, app, "/widgets/pie/icon")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListPages(t *testing.T) {
	resp, body := get(t, setupApp(t), "/pages")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `["broken","quality"]`, body)
}

func TestRenderPage(t *testing.T) {
	resp, body := get(t, setupApp(t), "/pages/quality")
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, "<title>Quality</title>")
	assert.Contains(t, body, "<td>2024-01-05</td>")
	assert.Contains(t, body, `<div class="rpw-warning">`)
}

func TestRenderWidget(t *testing.T) {
	app := setupApp(t)

	resp, body := get(t, app, "/pages/quality/widgets/table")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", resp.Header.Get("X-Widget-State"))
	assert.True(t, strings.HasPrefix(body, `<table class="rpw-table-content">`))

	resp, _ = get(t, app, "/pages/quality/widgets/empty")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "warning", resp.Header.Get("X-Widget-State"))

	resp, _ = get(t, app, "/pages/quality/widgets/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRenderPage_Errors(t *testing.T) {
	app := setupApp(t)
	tests := []struct {
		target string
		status int
		code   string
	}{
		{"/pages/missing", http.StatusNotFound, "not_found"},
		{"/pages/.hidden", http.StatusBadRequest, "invalid_page"},
		{"/pages/broken", http.StatusUnprocessableEntity, "invalid_page_config"},
		{"/pages/.hidden/widgets/table", http.StatusBadRequest, "invalid_page"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			resp, body := get(t, app, tt.target)
			assert.Equal(t, tt.status, resp.StatusCode)
			var er ErrorResponse
			require.NoError(t, json.Unmarshal([]byte(body), &er))
			assert.Equal(t, tt.code, er.Error)
		})
	}
}

func TestNewHandler_DefaultTimeout(t *testing.T) {
	h := NewHandler(Options{})
	assert.Equal(t, DefaultRenderTimeout, h.timeout)
}
