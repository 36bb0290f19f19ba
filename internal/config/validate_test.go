// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPage() *Page {
	return &Page{
		Title:       "Quality",
		ChartEngine: "echarts",
		Repository:  Repository{Kind: "dir", Path: "data"},
		Calendar:    CalendarConfig{TimeZone: "UTC", WeekStart: "monday"},
		Widgets: []WidgetConfig{
			{ID: "t", Type: "csv-table", Parameters: map[string]any{
				"dataSource": map[string]any{"dataLocation": "a.csv"},
			}},
			{ID: "c", Type: "csv-trend-chart", Parameters: map[string]any{
				"series": []any{map[string]any{"dataKey": "open"}},
				"dates":  map[string]any{"year": 2024},
			}},
		},
	}
}

func TestValidate_ValidPage(t *testing.T) {
	require.NoError(t, Validate(validPage()))
}

func TestValidate_MissingParametersAreNotErrors(t *testing.T) {
	page := validPage()
	page.Widgets[0].Parameters = nil
	require.NoError(t, Validate(page))
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Page)
		want   []string
	}{
		{name: "engine", mutate: func(p *Page) { p.ChartEngine = "gnuplot" }, want: []string{"chart_engine", "gnuplot"}},
		{name: "column width", mutate: func(p *Page) { p.ColumnWidth = -1 }, want: []string{"column_width"}},
		{name: "repository kind", mutate: func(p *Page) { p.Repository.Kind = "ftp" }, want: []string{"repository.kind", "ftp"}},
		{name: "github", mutate: func(p *Page) { p.Repository = Repository{Kind: "github"} }, want: []string{"repository.owner", "repository.repo"}},
		{name: "s3", mutate: func(p *Page) { p.Repository = Repository{Kind: "s3"} }, want: []string{"repository.endpoint", "repository.bucket"}},
		{name: "time zone", mutate: func(p *Page) { p.Calendar.TimeZone = "Mars/Base" }, want: []string{"calendar", "Mars/Base"}},
		{name: "holiday", mutate: func(p *Page) { p.Calendar.Holidays = []HolidayConfig{{Name: "x", Date: "soon"}} }, want: []string{"calendar", "soon"}},
		{name: "no widgets", mutate: func(p *Page) { p.Widgets = nil }, want: []string{"at least one widget"}},
		{name: "missing id", mutate: func(p *Page) { p.Widgets[0].ID = "" }, want: []string{"widgets[0].id: required"}},
		{name: "duplicate id", mutate: func(p *Page) { p.Widgets[1].ID = "t" }, want: []string{"widgets.t: duplicate widget id"}},
		{name: "width", mutate: func(p *Page) { p.Widgets[0].Width = -5 }, want: []string{"widgets.t.width"}},
		{name: "type", mutate: func(p *Page) { p.Widgets[0].Type = "pie" }, want: []string{"widgets.t.type", "csv-table, csv-trend-chart"}},
		{
			name: "unknown parameter",
			mutate: func(p *Page) {
				p.Widgets[1].Parameters["series"] = []any{map[string]any{"datakey": "open"}}
			},
			want: []string{"widgets.c.parameters.series.0.datakey: unknown parameter"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := validPage()
			tt.mutate(page)
			err := Validate(page)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "page validation failed")
			for _, w := range tt.want {
				assert.Contains(t, err.Error(), w)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	page := validPage()
	page.ChartEngine = "gnuplot"
	page.ColumnWidth = -1
	page.Widgets[0].Type = "pie"

	err := Validate(page)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chart_engine")
	assert.Contains(t, err.Error(), "column_width")
	assert.Contains(t, err.Error(), "widgets.t.type")
}
