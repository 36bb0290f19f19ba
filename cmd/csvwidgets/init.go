// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/davetashner/csvwidgets/internal/config"
	"github.com/davetashner/csvwidgets/internal/widget"
)

// Init-specific flag values.
var initForce bool

const (
	samplePageFile = "quality.yaml"
	sampleDataDir  = "data"
	sampleCSVFile  = "bugs.csv"
)

const sampleCSV = `date,opened,closed
2026-01-07,4,1
2026-01-21,6,3
2026-02-04,3,5
2026-02-18,2,4
2026-03-04,5,2
2026-03-18,1,6
2026-04-01,3,3
`

// initCmd writes a sample page and data file.
var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a sample page and CSV file",
	Long: `Write a sample page definition (quality.yaml) and the CSV file it reads
(data/bugs.csv) into dir, the current directory by default. The page holds
one table and one trend chart and renders as is:
  csvwidgets init
  csvwidgets render quality.yaml -o quality.html

Existing files are left alone unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing files")
}

func samplePage() *config.Page {
	return &config.Page{
		Title:       "Quality",
		ChartEngine: "echarts",
		Repository:  config.Repository{Kind: "dir", Path: sampleDataDir},
		Calendar:    config.CalendarConfig{TimeZone: "UTC", WeekStart: "monday"},
		Widgets: []config.WidgetConfig{
			{
				ID:   "bugs-table",
				Type: widget.TypeTable,
				Parameters: map[string]any{
					"dataSource": map[string]any{"dataLocation": sampleCSVFile},
				},
			},
			{
				ID:   "bugs-trend",
				Type: widget.TypeTrendChart,
				Parameters: map[string]any{
					"title":      "Bugs per month",
					"dataSource": map[string]any{"dataLocation": sampleCSVFile},
					"series": []any{
						map[string]any{"name": "Opened", "color": "#dc3545", "dataKey": "opened"},
						map[string]any{"name": "Closed", "color": "#198754", "dataKey": "closed", "type": "column"},
					},
					"dates": map[string]any{
						"from":  "2026-01-01",
						"to":    "2026-04-30",
						"scale": "month",
					},
					"textAbove": "Opened ${opened} bugs (${openedPerDay} per working day), closed ${closed}.",
					"textBelow": "Data as of ${_timestamp}.",
				},
			},
		},
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	if info, err := cmdFS.Stat(dir); err != nil || !info.IsDir() {
		return exitError(ExitInvalidArgs, "csvwidgets: %q is not a directory", dir)
	}

	var page bytes.Buffer
	if err := config.Write(&page, samplePage()); err != nil {
		return fmt.Errorf("csvwidgets: init failed (%v)", err)
	}

	files := []struct {
		path string
		data []byte
	}{
		{filepath.Join(dir, samplePageFile), page.Bytes()},
		{filepath.Join(dir, sampleDataDir, sampleCSVFile), []byte(sampleCSV)},
	}

	w := cmd.OutOrStdout()
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	for _, f := range files {
		if _, err := cmdFS.Stat(f.path); err == nil && !initForce {
			_, _ = yellow.Fprintf(w, "  skipped  %s (exists, use --force)\n", f.path)
			continue
		}
		if err := cmdFS.MkdirAll(filepath.Dir(f.path), 0o750); err != nil {
			return fmt.Errorf("csvwidgets: init failed (%v)", err)
		}
		if err := cmdFS.WriteFile(f.path, f.data, 0o600); err != nil {
			return fmt.Errorf("csvwidgets: init failed (%v)", err)
		}
		slog.Debug("wrote sample file", "path", f.path)
		_, _ = green.Fprintf(w, "  created  %s\n", f.path)
	}
	return nil
}
