// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package config

// Merge fills the settings page leaves unset from defaults. Page values
// take precedence. The repository and calendar blocks are taken as a
// whole, since mixing fields of two repositories makes no sense.
func Merge(defaults, page *Page) *Page {
	result := *page

	if result.ChartEngine == "" {
		result.ChartEngine = defaults.ChartEngine
	}
	if result.ColumnWidth == 0 {
		result.ColumnWidth = defaults.ColumnWidth
	}
	if result.Repository.Kind == "" && result.Repository.Path == "" && result.Repository.Owner == "" && result.Repository.Bucket == "" {
		result.Repository = defaults.Repository
	}
	if isZeroCalendar(result.Calendar) {
		result.Calendar = defaults.Calendar
	}
	return &result
}

func isZeroCalendar(c CalendarConfig) bool {
	return c.TimeZone == "" && c.WeekStart == "" && len(c.Workdays) == 0 && len(c.Regions) == 0 && len(c.Holidays) == 0
}
