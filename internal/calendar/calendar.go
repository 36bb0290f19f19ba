// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

// Package calendar answers working-day questions for a date window.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/gb"
	"github.com/rickar/cal/v2/us"
)

// WorkingCalendar is what widgets need to know about the calendar.
type WorkingCalendar interface {
	// WorkingDays counts workdays from from to to, both inclusive.
	WorkingDays(from, to time.Time) int
	// WeekStart is the first day of the week for weekly buckets.
	WeekStart() time.Weekday
	// Location is the zone dates are interpreted in.
	Location() *time.Location
}

// Holiday is a fixed-date non-working day. A zero Year repeats yearly.
type Holiday struct {
	Name  string
	Year  int
	Month time.Month
	Day   int
}

// Options configures a Business calendar.
type Options struct {
	TimeZone  string
	WeekStart string
	Workdays  []string
	Regions   []string
	Holidays  []Holiday
}

var regions = map[string][]*cal.Holiday{
	"us": us.Holidays,
	"gb": gb.Holidays,
}

// Business is a WorkingCalendar backed by a cal.BusinessCalendar.
type Business struct {
	cal       *cal.BusinessCalendar
	weekStart time.Weekday
	loc       *time.Location
}

// New builds a calendar. Defaults are Monday to Friday workdays, weeks
// starting on Monday and the local time zone.
func New(opts Options) (*Business, error) {
	b := &Business{cal: cal.NewBusinessCalendar(), weekStart: time.Monday, loc: time.Local}

	if opts.TimeZone != "" {
		loc, err := time.LoadLocation(opts.TimeZone)
		if err != nil {
			return nil, fmt.Errorf("time zone %q: %w", opts.TimeZone, err)
		}
		b.loc = loc
	}
	if opts.WeekStart != "" {
		wd, err := ParseWeekday(opts.WeekStart)
		if err != nil {
			return nil, fmt.Errorf("week start: %w", err)
		}
		b.weekStart = wd
	}
	if len(opts.Workdays) > 0 {
		days := make([]time.Weekday, 0, len(opts.Workdays))
		for _, s := range opts.Workdays {
			wd, err := ParseWeekday(s)
			if err != nil {
				return nil, fmt.Errorf("workdays: %w", err)
			}
			days = append(days, wd)
		}
		b.cal.SetWorkdays(days...)
	}
	for _, r := range opts.Regions {
		hs, ok := regions[strings.ToLower(r)]
		if !ok {
			return nil, fmt.Errorf("unknown holiday region %q", r)
		}
		b.cal.AddHoliday(hs...)
	}
	for _, h := range opts.Holidays {
		if h.Month < time.January || h.Month > time.December || h.Day < 1 || h.Day > 31 {
			return nil, fmt.Errorf("holiday %q: invalid date %d-%d", h.Name, h.Month, h.Day)
		}
		b.cal.AddHoliday(&cal.Holiday{
			Name:      h.Name,
			Month:     h.Month,
			Day:       h.Day,
			StartYear: h.Year,
			EndYear:   h.Year,
			Func:      cal.CalcDayOfMonth,
		})
	}
	return b, nil
}

// WorkingDays counts workdays between the calendar dates of from and to.
func (b *Business) WorkingDays(from, to time.Time) int {
	fy, fm, fd := from.In(b.loc).Date()
	ty, tm, td := to.In(b.loc).Date()
	start := time.Date(fy, fm, fd, 12, 0, 0, 0, b.loc)
	end := time.Date(ty, tm, td, 12, 0, 0, 0, b.loc)

	n := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if b.cal.IsWorkday(d) {
			n++
		}
	}
	return n
}

// WeekStart returns the configured first day of the week.
func (b *Business) WeekStart() time.Weekday { return b.weekStart }

// Location returns the calendar's time zone.
func (b *Business) Location() *time.Location { return b.loc }

// ParseWeekday accepts full or three-letter English day names.
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if name == full || name == full[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

var _ WorkingCalendar = (*Business)(nil)
