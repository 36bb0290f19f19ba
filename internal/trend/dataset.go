// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

// Package trend turns dated CSV rows into chart series and summary
// statistics.
//
// The pipeline is: parse each source's rows, keep rows inside the date
// window, flatten cells into (date, key) entries, then per requested
// series truncate dates to the chosen Scale and fold values with the
// chosen Aggregation. Statistics are plain per-key sums over the window.
package trend

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/davetashner/csvwidgets/internal/csvdata"
)

// DateLayout is the layout of the first column of every data row.
const DateLayout = time.DateOnly

// Point is one dated value.
type Point struct {
	Date  time.Time
	Value int
}

// Dataset holds the window-filtered entries of all sources, keyed by
// date and column key.
type Dataset struct {
	window  Window
	dates   map[int64]time.Time
	entries map[int64]map[string]int
}

// NewDataset flattens sources into a Dataset. Rows are read in source
// order; when two sources produce the same date and key the later one
// wins. Columns of named sources are keyed "<name>.<header>".
func NewDataset(sources csvdata.Sources, w Window) (*Dataset, error) {
	ds := &Dataset{
		window:  w,
		dates:   make(map[int64]time.Time),
		entries: make(map[int64]map[string]int),
	}
	loc := w.Location()
	for _, src := range sources {
		if err := ds.add(src, loc); err != nil {
			return nil, err
		}
	}
	slog.Debug("built trend dataset", "sources", len(sources), "dates", len(ds.dates), "window", w.String())
	return ds, nil
}

func (ds *Dataset) add(src *csvdata.Source, loc *time.Location) error {
	header := src.Table.Header()
	prefix := ""
	if src.Name != "" {
		prefix = src.Name + "."
	}
	where := src.Location
	if where == "" {
		where = "source " + strconv.Quote(src.Name)
	}

	for i, row := range src.Table.Rows() {
		line := i + 2
		if len(row) == 0 {
			continue
		}
		date, err := time.ParseInLocation(DateLayout, row[0], loc)
		if err != nil {
			return fmt.Errorf("%s line %d: invalid date %q (want yyyy-MM-dd)", where, line, row[0])
		}
		if !ds.window.Contains(date) {
			continue
		}
		ms := date.UnixMilli()
		for col := 1; col < len(row); col++ {
			if col >= len(header) {
				return fmt.Errorf("%s line %d: column %d has no header", where, line, col+1)
			}
			v, err := strconv.Atoi(row[col])
			if err != nil {
				return fmt.Errorf("%s line %d: column %q: invalid integer %q", where, line, header[col], row[col])
			}
			bucket, ok := ds.entries[ms]
			if !ok {
				bucket = make(map[string]int)
				ds.entries[ms] = bucket
				ds.dates[ms] = date
			}
			bucket[prefix+header[col]] = v
		}
	}
	return nil
}

// Window returns the date window the dataset was filtered with.
func (ds *Dataset) Window() Window { return ds.window }

// Keys returns every column key in the dataset, sorted.
func (ds *Dataset) Keys() []string {
	seen := make(map[string]struct{})
	for _, bucket := range ds.entries {
		for k := range bucket {
			seen[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Series returns the entries for key ordered by date.
func (ds *Dataset) Series(key string) []Point {
	var points []Point
	for ms, bucket := range ds.entries {
		if v, ok := bucket[key]; ok {
			points = append(points, Point{Date: ds.dates[ms], Value: v})
		}
	}
	slices.SortFunc(points, func(a, b Point) int { return a.Date.Compare(b.Date) })
	return points
}

// Statistics sums every entry per key over the whole window, independent
// of any series scale or aggregation.
func (ds *Dataset) Statistics() Statistics {
	stats := make(Statistics)
	for _, bucket := range ds.entries {
		for k, v := range bucket {
			stats[k] += v
		}
	}
	return stats
}

// Bucket truncates each point's date to scale and folds points sharing a
// bucket with agg. points must be in arrival order; the result is ordered
// by bucket date.
func Bucket(points []Point, scale Scale, weekStart time.Weekday, agg Aggregation) []Point {
	type slot struct {
		date  time.Time
		value int
	}
	slots := make(map[int64]*slot)
	var order []int64
	for _, p := range points {
		b := scale.Truncate(p.Date, weekStart)
		key := b.UnixMilli()
		s, ok := slots[key]
		if !ok {
			slots[key] = &slot{date: b, value: agg.Combine(0, false, p.Value)}
			order = append(order, key)
			continue
		}
		s.value = agg.Combine(s.value, true, p.Value)
	}
	slices.Sort(order)
	out := make([]Point, 0, len(order))
	for _, key := range order {
		out = append(out, Point{Date: slots[key].date, Value: slots[key].value})
	}
	return out
}

// Statistics maps column keys to their window totals.
type Statistics map[string]int

// Keys returns the statistic keys sorted.
func (s Statistics) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
