// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package chart

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/davetashner/csvwidgets/internal/trend"
)

func init() {
	Register(SVG{})
}

var hexColor = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// SVG draws the chart on the server with go-chart. It needs no script on
// the page but cannot zoom. Bar series are drawn as filled areas.
type SVG struct{}

// Name implements Engine.
func (SVG) Name() string { return "svg" }

// Scripts implements Engine.
func (SVG) Scripts() []string { return nil }

// Render implements Engine.
func (SVG) Render(w io.Writer, spec Spec) error {
	graph, err := svgChart(spec)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := graph.Render(gochart.SVG, &buf); err != nil {
		return fmt.Errorf("drawing chart %q: %w", spec.Title, err)
	}
	if _, err := fmt.Fprintf(w, "<div class=\"rpw-chart\" id=\"%s\">", html.EscapeString(spec.ID)); err != nil {
		return err
	}
	if _, err := buf.WriteTo(w); err != nil {
		return err
	}
	_, err = io.WriteString(w, "</div>\n")
	return err
}

func svgChart(spec Spec) (*gochart.Chart, error) {
	var (
		series      []gochart.Series
		first, last time.Time
		havePoints  bool
	)
	maxValue := spec.Plot.YMin
	for _, s := range spec.Plot.Series {
		sk, err := resolveType(spec.Type, s.Type)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", s.Name, err)
		}
		if len(s.Points) == 0 {
			continue
		}
		xs := make([]time.Time, len(s.Points))
		ys := make([]float64, len(s.Points))
		for i, p := range s.Points {
			xs[i] = p.Date
			ys[i] = float64(p.Value)
			if !havePoints || p.Date.Before(first) {
				first = p.Date
			}
			if !havePoints || p.Date.After(last) {
				last = p.Date
			}
			havePoints = true
			maxValue = max(maxValue, p.Value)
		}
		series = append(series, gochart.TimeSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   seriesStyle(sk, s.Color),
		})
	}
	xMin, xMax, ok := xRange(spec.Plot, first, last, havePoints)
	if !ok {
		return nil, ErrNoData
	}
	if maxValue <= spec.Plot.YMin {
		maxValue = spec.Plot.YMin + 1
	}
	named := len(series)
	if named == 0 {
		// go-chart only draws axes for a visible series.
		yMin := float64(spec.Plot.YMin)
		series = append(series, gochart.TimeSeries{
			XValues: []time.Time{xMin, xMax},
			YValues: []float64{yMin, yMin},
			Style:   gochart.Style{StrokeWidth: gochart.Disabled},
		})
	}

	graph := &gochart.Chart{
		Title:  spec.Title,
		Width:  spec.Width,
		Height: spec.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: gochart.XAxis{
			ValueFormatter: gochart.TimeValueFormatterWithFormat(time.DateOnly),
			Range: &gochart.ContinuousRange{
				Min: gochart.TimeToFloat64(xMin),
				Max: gochart.TimeToFloat64(xMax),
			},
		},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: float64(spec.Plot.YMin), Max: float64(maxValue)},
		},
		Series: series,
	}
	if named > 0 {
		graph.Elements = []gochart.Renderable{gochart.Legend(graph)}
	}
	return graph, nil
}

// xRange returns the span of the x axis. A single bucket is centred in
// its own width and a plot without points spans its window.
func xRange(plot trend.Plot, first, last time.Time, havePoints bool) (from, to time.Time, ok bool) {
	switch {
	case !havePoints:
		w := plot.Window
		if w.From.IsZero() || !w.From.Before(w.To) {
			return time.Time{}, time.Time{}, false
		}
		return w.From, w.To, true
	case first.Equal(last):
		half := plot.Scale.Next(first).Sub(first) / 2
		return first.Add(-half), first.Add(half), true
	default:
		return first, last, true
	}
}

func seriesStyle(sk seriesKind, color string) gochart.Style {
	var style gochart.Style
	c, ok := parseColor(color)
	switch sk.kind {
	case TypeScatter:
		style.StrokeWidth = gochart.Disabled
		style.DotWidth = 3
		if ok {
			style.DotColor = c
		}
	case TypeBar:
		if ok {
			style.StrokeColor = c
			style.FillColor = c.WithAlpha(96)
		}
	default:
		if ok {
			style.StrokeColor = c
		}
	}
	return style
}

// parseColor accepts #rgb and #rrggbb colours. Named CSS colours fall
// back to the default palette.
func parseColor(s string) (drawing.Color, bool) {
	m := hexColor.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return drawing.Color{}, false
	}
	hex := m[1]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	return drawing.ColorFromHex(hex), true
}
