// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package trend

import (
	"fmt"
	"time"
)

// Window is an inclusive date range.
type Window struct {
	From time.Time
	To   time.Time
}

// YearWindow covers the whole calendar year in loc, from Jan 1 00:00 to
// the last millisecond of Dec 31.
func YearWindow(year int, loc *time.Location) (Window, error) {
	if year < 1 || year > 9999 {
		return Window{}, fmt.Errorf("invalid year %d", year)
	}
	if loc == nil {
		loc = time.Local
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	to := time.Date(year+1, time.January, 1, 0, 0, 0, 0, loc).Add(-time.Millisecond)
	return Window{From: from, To: to}, nil
}

// Contains reports whether t falls inside the window, compared at
// millisecond precision.
func (w Window) Contains(t time.Time) bool {
	ms := t.UnixMilli()
	return ms >= w.From.UnixMilli() && ms <= w.To.UnixMilli()
}

// Location returns the zone dates in this window are interpreted in.
func (w Window) Location() *time.Location {
	if w.From.IsZero() {
		return time.Local
	}
	return w.From.Location()
}

func (w Window) String() string {
	return w.From.Format(time.DateOnly) + ".." + w.To.Format(time.DateOnly)
}
