// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package trend

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Placeholder names understood by ProcessText.
const (
	WorkingDaysPlaceholder = "${_workingDays}"
	timestampPrefix        = "${_timestamp"
	perDaySuffix           = "PerDay"
)

var leftoverPlaceholder = regexp.MustCompile(`\$\{.*?\}`)

// SourceTime is the last-modified time of one loaded source. Name is
// empty for the primary source.
type SourceTime struct {
	Name string
	Time time.Time
}

// TextContext carries the values substituted into widget text.
type TextContext struct {
	Statistics  Statistics
	WorkingDays int
	Sources     []SourceTime
	// FormatTime renders source timestamps. Nil means yyyy-MM-dd.
	FormatTime func(time.Time) string
}

// ProcessText fills the placeholders in text. Substitution runs in a
// fixed order: working days, per-key totals and per-day averages, source
// timestamps, and finally every remaining ${...} span becomes 0.
func ProcessText(text string, tc TextContext) string {
	if !strings.Contains(text, "${") {
		return text
	}
	text = strings.ReplaceAll(text, WorkingDaysPlaceholder, strconv.Itoa(tc.WorkingDays))

	for _, key := range tc.Statistics.Keys() {
		total := tc.Statistics[key]
		name := stripSpace(key)
		text = strings.ReplaceAll(text, "${"+name+"}", strconv.Itoa(total))
		text = strings.ReplaceAll(text, "${"+name+perDaySuffix+"}", PerDay(total, tc.WorkingDays))
	}

	format := tc.FormatTime
	if format == nil {
		format = func(t time.Time) string { return t.Format(DateLayout) }
	}
	for _, src := range tc.Sources {
		text = strings.ReplaceAll(text, timestampPrefix+src.Name+"}", format(src.Time))
	}

	return leftoverPlaceholder.ReplaceAllLiteralString(text, "0")
}

// PerDay formats total/workingDays with one decimal, rounding halves up.
// Zero working days yields "0.0".
func PerDay(total, workingDays int) string {
	if workingDays == 0 {
		return "0.0"
	}
	v := float64(total) / float64(workingDays)
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', 1, 64)
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
