// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package trend

import "time"

// SeriesSpec configures one plotted series.
type SeriesSpec struct {
	Name        string
	Color       string
	Type        string
	Key         string
	Aggregation Aggregation
}

// Series is a configured series with its bucketed points.
type Series struct {
	SeriesSpec
	Points []Point
}

// Plot is everything a chart needs from the pipeline.
type Plot struct {
	Series []Series
	// YMin is the lowest plotted value, never above zero.
	YMin int
	// Scale is the bucket size of every point.
	Scale Scale
	// Window is the date range the points were taken from.
	Window Window
}

// BuildPlot buckets each configured series of ds.
func BuildPlot(ds *Dataset, specs []SeriesSpec, scale Scale, weekStart time.Weekday) Plot {
	plot := Plot{Series: make([]Series, 0, len(specs)), Scale: scale, Window: ds.Window()}
	for _, spec := range specs {
		points := Bucket(ds.Series(spec.Key), scale, weekStart, spec.Aggregation)
		for _, p := range points {
			plot.YMin = min(plot.YMin, p.Value)
		}
		plot.Series = append(plot.Series, Series{SeriesSpec: spec, Points: points})
	}
	return plot
}
