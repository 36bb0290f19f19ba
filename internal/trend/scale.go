// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package trend

import (
	"fmt"
	"strings"
	"time"
)

// Scale is the bucket size a series is re-sampled to.
type Scale int

const (
	Day Scale = iota
	Week
	Month
	Year
)

var scaleNames = [...]string{Day: "day", Week: "week", Month: "month", Year: "year"}

// ScaleNames lists the accepted scale names in order.
func ScaleNames() []string { return append([]string(nil), scaleNames[:]...) }

// String returns the scale's configuration name.
func (s Scale) String() string {
	if s < Day || s > Year {
		return fmt.Sprintf("scale(%d)", int(s))
	}
	return scaleNames[s]
}

// ParseScale parses a scale name, ignoring case.
func ParseScale(name string) (Scale, error) {
	for i, n := range scaleNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return Scale(i), nil
		}
	}
	return 0, fmt.Errorf("unknown scale %q (want one of %s)", name, strings.Join(scaleNames[:], ", "))
}

// Truncate returns the start of the bucket containing t: midnight first,
// then back to weekStart, the first of the month or the first of the
// year. The result is in t's location, so equal buckets compare equal.
func (s Scale) Truncate(t time.Time, weekStart time.Weekday) time.Time {
	y, m, d := t.Date()
	loc := t.Location()
	switch s {
	case Week:
		back := (int(t.Weekday()) - int(weekStart) + 7) % 7
		return time.Date(y, m, d-back, 0, 0, 0, 0, loc)
	case Month:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	case Year:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	}
}

// Next returns the start of the bucket after the one starting at bucket.
func (s Scale) Next(bucket time.Time) time.Time {
	switch s {
	case Week:
		return bucket.AddDate(0, 0, 7)
	case Month:
		return bucket.AddDate(0, 1, 0)
	case Year:
		return bucket.AddDate(1, 0, 0)
	default:
		return bucket.AddDate(0, 0, 1)
	}
}
