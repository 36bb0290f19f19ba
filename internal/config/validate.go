// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"strings"

	"github.com/davetashner/csvwidgets/internal/calendar"
	"github.com/davetashner/csvwidgets/internal/chart"
	"github.com/davetashner/csvwidgets/internal/content"
	"github.com/davetashner/csvwidgets/internal/param"
	"github.com/davetashner/csvwidgets/internal/widget"
)

// Validate checks all fields of the page and returns all errors at once.
// Missing widget parameters are not errors here; they render as
// warnings.
func Validate(page *Page) error {
	var errs []string

	if page.ChartEngine != "" {
		if _, err := chart.Get(page.ChartEngine); err != nil {
			errs = append(errs, fmt.Sprintf("chart_engine: %v", err))
		}
	}
	if page.ColumnWidth < 0 {
		errs = append(errs, fmt.Sprintf("column_width: must be non-negative, got %d", page.ColumnWidth))
	}

	errs = append(errs, validateRepository(page.Repository)...)

	if opts, err := page.Calendar.CalendarOptions(); err != nil {
		errs = append(errs, fmt.Sprintf("calendar: %v", err))
	} else if _, err := calendar.New(opts); err != nil {
		errs = append(errs, fmt.Sprintf("calendar: %v", err))
	}

	if len(page.Widgets) == 0 {
		errs = append(errs, "widgets: at least one widget is required")
	}
	seen := make(map[string]bool, len(page.Widgets))
	for i, wc := range page.Widgets {
		prefix := fmt.Sprintf("widgets[%d]", i)
		if wc.ID == "" {
			errs = append(errs, prefix+".id: required")
		} else {
			prefix = fmt.Sprintf("widgets.%s", wc.ID)
			if seen[wc.ID] {
				errs = append(errs, prefix+": duplicate widget id")
			}
			seen[wc.ID] = true
		}
		if wc.Width < 0 {
			errs = append(errs, fmt.Sprintf("%s.width: must be non-negative, got %d", prefix, wc.Width))
		}
		w, err := widget.Get(wc.Type)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s.type: %v (available: %s)", prefix, err, strings.Join(widget.Types(), ", ")))
			continue
		}
		for _, key := range param.Unknown(w.Parameters(), wc.Parameters) {
			errs = append(errs, fmt.Sprintf("%s.parameters.%s: unknown parameter", prefix, key))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("page validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func validateRepository(r Repository) []string {
	var errs []string
	switch strings.ToLower(r.Kind) {
	case "", content.KindDir:
	case content.KindGit:
	case content.KindGitHub:
		if r.Owner == "" {
			errs = append(errs, "repository.owner: required for github repositories")
		}
		if r.Repo == "" {
			errs = append(errs, "repository.repo: required for github repositories")
		}
	case content.KindS3:
		if r.Endpoint == "" {
			errs = append(errs, "repository.endpoint: required for s3 repositories")
		}
		if r.Bucket == "" {
			errs = append(errs, "repository.bucket: required for s3 repositories")
		}
	default:
		errs = append(errs, fmt.Sprintf("repository.kind: invalid value %q (must be dir, git, github, or s3)", r.Kind))
	}
	return errs
}
