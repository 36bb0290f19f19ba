// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

// Package chart draws trend plots. Engines are registered by name; the
// default "echarts" engine emits an interactive ECharts fragment and the
// "svg" engine draws a static image on the server.
package chart

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/davetashner/csvwidgets/internal/trend"
)

// DefaultEngine is used when a page does not choose one.
const DefaultEngine = "echarts"

// ErrNoData is returned by engines that cannot draw the given plot.
var ErrNoData = errors.New("not enough data to draw a chart")

// Chart types accepted for the whole chart or a single series.
const (
	TypeLine    = "line"
	TypeSpline  = "spline"
	TypeBar     = "bar"
	TypeColumn  = "column"
	TypeScatter = "scatter"
)

// Types lists the accepted chart types.
func Types() []string {
	return []string{TypeBar, TypeColumn, TypeLine, TypeSpline, TypeScatter}
}

// Spec is one chart to draw.
type Spec struct {
	// ID is the DOM id of the chart element.
	ID     string
	Title  string
	Type   string
	Width  int
	Height int
	Plot   trend.Plot
}

// Engine renders a Spec as an HTML fragment.
type Engine interface {
	Name() string
	// Scripts lists the script URLs a page must load for the fragment.
	Scripts() []string
	Render(w io.Writer, spec Spec) error
}

var (
	mu       sync.RWMutex
	registry = make(map[string]Engine)
)

// Register adds an engine to the registry.
// It panics if an engine with the same name is already registered.
func Register(e Engine) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[e.Name()]; exists {
		panic(fmt.Sprintf("chart engine already registered: %s", e.Name()))
	}
	registry[e.Name()] = e
}

// Get returns the named engine; an empty name selects DefaultEngine.
func Get(name string) (Engine, error) {
	if name == "" {
		name = DefaultEngine
	}
	mu.RLock()
	defer mu.RUnlock()
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown chart engine: %q (available: %s)", name, strings.Join(namesLocked(), ", "))
	}
	return e, nil
}

// Names returns the registered engine names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	return namesLocked()
}

func namesLocked() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// seriesKind is how a series is drawn after resolving chart and series
// types.
type seriesKind struct {
	kind   string // line, bar or scatter
	smooth bool
}

// resolveType picks the drawing for one series. The series type wins over
// the chart type when set.
func resolveType(chartType, seriesType string) (seriesKind, error) {
	t := strings.ToLower(strings.TrimSpace(seriesType))
	if t == "" {
		t = strings.ToLower(strings.TrimSpace(chartType))
	}
	switch t {
	case "", TypeLine:
		return seriesKind{kind: TypeLine}, nil
	case TypeSpline:
		return seriesKind{kind: TypeLine, smooth: true}, nil
	case TypeBar, TypeColumn:
		return seriesKind{kind: TypeBar}, nil
	case TypeScatter:
		return seriesKind{kind: TypeScatter}, nil
	}
	return seriesKind{}, fmt.Errorf("unknown chart type %q (want one of %s)", t, strings.Join(Types(), ", "))
}

// Validate checks every type in spec without drawing anything.
func Validate(spec Spec) error {
	if _, err := resolveType(spec.Type, ""); err != nil {
		return err
	}
	for _, s := range spec.Plot.Series {
		if _, err := resolveType(spec.Type, s.Type); err != nil {
			return fmt.Errorf("series %q: %w", s.Name, err)
		}
	}
	return nil
}

// resetForTesting clears the registry. Only for use in tests.
func resetForTesting() {
	mu.Lock()
	defer mu.Unlock()
	registry = make(map[string]Engine)
}
