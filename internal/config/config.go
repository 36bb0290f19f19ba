// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

// Package config handles page definition files and process settings.
//
// A page file declares where CSV data lives, which calendar applies and
// which widgets to render. It may be written in YAML (.yaml, .yml) or
// TOML (.toml).
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/davetashner/csvwidgets/internal/calendar"
	"github.com/davetashner/csvwidgets/internal/content"
)

// Page is the contents of a page definition file.
type Page struct {
	Title       string         `yaml:"title,omitempty" toml:"title,omitempty" json:"title,omitempty"`
	ChartEngine string         `yaml:"chart_engine,omitempty" toml:"chart_engine,omitempty" json:"chart_engine,omitempty"`
	ColumnWidth int            `yaml:"column_width,omitempty" toml:"column_width,omitempty" json:"column_width,omitempty"`
	Repository  Repository     `yaml:"repository,omitempty" toml:"repository,omitempty" json:"repository,omitempty"`
	Calendar    CalendarConfig `yaml:"calendar,omitempty" toml:"calendar,omitempty" json:"calendar,omitempty"`
	Widgets     []WidgetConfig `yaml:"widgets,omitempty" toml:"widgets,omitempty" json:"widgets,omitempty"`
}

// Repository selects the content source widgets read from.
type Repository struct {
	Kind string `yaml:"kind,omitempty" toml:"kind,omitempty" json:"kind,omitempty"`

	// dir and git
	Path     string `yaml:"path,omitempty" toml:"path,omitempty" json:"path,omitempty"`
	Revision string `yaml:"revision,omitempty" toml:"revision,omitempty" json:"revision,omitempty"`

	// github
	Owner string `yaml:"owner,omitempty" toml:"owner,omitempty" json:"owner,omitempty"`
	Repo  string `yaml:"repo,omitempty" toml:"repo,omitempty" json:"repo,omitempty"`
	Ref   string `yaml:"ref,omitempty" toml:"ref,omitempty" json:"ref,omitempty"`

	// s3
	Endpoint string `yaml:"endpoint,omitempty" toml:"endpoint,omitempty" json:"endpoint,omitempty"`
	Bucket   string `yaml:"bucket,omitempty" toml:"bucket,omitempty" json:"bucket,omitempty"`
	Prefix   string `yaml:"prefix,omitempty" toml:"prefix,omitempty" json:"prefix,omitempty"`
	Secure   *bool  `yaml:"secure,omitempty" toml:"secure,omitempty" json:"secure,omitempty"`
}

// CalendarConfig configures working days and week start.
type CalendarConfig struct {
	TimeZone  string          `yaml:"time_zone,omitempty" toml:"time_zone,omitempty" json:"time_zone,omitempty"`
	WeekStart string          `yaml:"week_start,omitempty" toml:"week_start,omitempty" json:"week_start,omitempty"`
	Workdays  []string        `yaml:"workdays,omitempty" toml:"workdays,omitempty" json:"workdays,omitempty"`
	Regions   []string        `yaml:"regions,omitempty" toml:"regions,omitempty" json:"regions,omitempty"`
	Holidays  []HolidayConfig `yaml:"holidays,omitempty" toml:"holidays,omitempty" json:"holidays,omitempty"`
}

// HolidayConfig is a non-working day. Date is MM-DD for a yearly holiday
// or YYYY-MM-DD for a single day.
type HolidayConfig struct {
	Name string `yaml:"name,omitempty" toml:"name,omitempty" json:"name,omitempty"`
	Date string `yaml:"date" toml:"date" json:"date"`
}

// WidgetConfig is one widget on the page.
type WidgetConfig struct {
	ID   string `yaml:"id" toml:"id" json:"id"`
	Type string `yaml:"type" toml:"type" json:"type"`
	// Width overrides the page column width for this widget.
	Width      int            `yaml:"width,omitempty" toml:"width,omitempty" json:"width,omitempty"`
	Parameters map[string]any `yaml:"parameters,omitempty" toml:"parameters,omitempty" json:"parameters,omitempty"`
}

// Credentials are the secrets content sources need. They come from the
// environment, never from page files.
type Credentials struct {
	GitHubToken string
	S3AccessKey string
	S3SecretKey string
}

// Widget returns the widget with the given id.
func (p *Page) Widget(id string) (*WidgetConfig, bool) {
	for i := range p.Widgets {
		if p.Widgets[i].ID == id {
			return &p.Widgets[i], true
		}
	}
	return nil, false
}

// ContentOptions converts the repository settings. Relative dir and git
// paths are resolved against baseDir, the directory of the page file.
func (r Repository) ContentOptions(baseDir string, creds Credentials) content.Options {
	opts := content.Options{
		Kind:      strings.ToLower(r.Kind),
		Path:      r.Path,
		Revision:  r.Revision,
		Owner:     r.Owner,
		Repo:      r.Repo,
		Ref:       r.Ref,
		Token:     creds.GitHubToken,
		Endpoint:  r.Endpoint,
		Bucket:    r.Bucket,
		Prefix:    r.Prefix,
		AccessKey: creds.S3AccessKey,
		SecretKey: creds.S3SecretKey,
		Secure:    r.Secure == nil || *r.Secure,
	}
	if opts.Kind == "" {
		opts.Kind = content.KindDir
	}
	if opts.Kind == content.KindDir || opts.Kind == content.KindGit {
		if opts.Path == "" {
			opts.Path = "."
		}
		if !filepath.IsAbs(opts.Path) && baseDir != "" {
			opts.Path = filepath.Join(baseDir, opts.Path)
		}
	}
	return opts
}

// CalendarOptions converts the calendar settings.
func (c CalendarConfig) CalendarOptions() (calendar.Options, error) {
	opts := calendar.Options{
		TimeZone:  c.TimeZone,
		WeekStart: c.WeekStart,
		Workdays:  c.Workdays,
		Regions:   c.Regions,
	}
	for _, h := range c.Holidays {
		hol, err := parseHoliday(h)
		if err != nil {
			return calendar.Options{}, err
		}
		opts.Holidays = append(opts.Holidays, hol)
	}
	return opts, nil
}

func parseHoliday(h HolidayConfig) (calendar.Holiday, error) {
	date := strings.TrimSpace(h.Date)
	if t, err := time.Parse("2006-01-02", date); err == nil {
		return calendar.Holiday{Name: h.Name, Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
	}
	// Parse in a leap year so 02-29 is accepted.
	if t, err := time.Parse("2006-01-02", "2000-"+date); err == nil {
		return calendar.Holiday{Name: h.Name, Month: t.Month(), Day: t.Day()}, nil
	}
	return calendar.Holiday{}, fmt.Errorf("holiday %q: invalid date %q (want MM-DD or YYYY-MM-DD)", h.Name, h.Date)
}

// Calendar builds the working calendar of the page.
func (c CalendarConfig) Calendar() (*calendar.Business, error) {
	opts, err := c.CalendarOptions()
	if err != nil {
		return nil, err
	}
	return calendar.New(opts)
}
