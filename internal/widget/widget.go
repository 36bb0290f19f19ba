// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

// Package widget provides the registry of page widgets and the shared
// render entry point. Each widget declares its parameters, binds the raw
// page configuration to them and renders one HTML fragment.
package widget

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/davetashner/csvwidgets/internal/calendar"
	"github.com/davetashner/csvwidgets/internal/chart"
	"github.com/davetashner/csvwidgets/internal/content"
	"github.com/davetashner/csvwidgets/internal/htmlfrag"
	"github.com/davetashner/csvwidgets/internal/param"
)

// DefaultColumnWidth is the chart width in pixels when the page does not
// set one.
const DefaultColumnWidth = 900

// ErrUnknownType is returned for widget types that are not registered.
var ErrUnknownType = errors.New("unknown widget type")

//go:embed icons/*.svg
var icons embed.FS

// Widget is a registered widget type.
type Widget interface {
	// Type is the identifier pages use to select the widget.
	Type() string
	Label() string
	Details() string
	Tags() []string
	// Icon returns the SVG icon.
	Icon() []byte
	// Parameters returns the root of the widget's parameter tree.
	Parameters() *param.Definition
	// Render writes the widget body. A *param.RequiredError becomes a
	// warning; any other error becomes an error fragment.
	Render(ctx context.Context, rc *RenderContext, params param.Value, out *Output) error
}

// Output collects what a widget produces.
type Output struct {
	bytes.Buffer
	// Scripts lists script URLs the fragment needs on the page.
	Scripts []string
}

// RenderContext carries the collaborators of one widget render.
type RenderContext struct {
	Loader   content.Loader
	Calendar calendar.WorkingCalendar
	Engine   chart.Engine
	// ColumnWidth is the width of the page column in pixels.
	ColumnWidth int
	// RenderID identifies this render in logs and element ids.
	RenderID uuid.UUID
}

func (rc *RenderContext) columnWidth() int {
	if rc.ColumnWidth > 0 {
		return rc.ColumnWidth
	}
	return DefaultColumnWidth
}

func (rc *RenderContext) calendar() (calendar.WorkingCalendar, error) {
	if rc.Calendar != nil {
		return rc.Calendar, nil
	}
	return calendar.New(calendar.Options{})
}

func (rc *RenderContext) engine() (chart.Engine, error) {
	if rc.Engine != nil {
		return rc.Engine, nil
	}
	return chart.Get(chart.DefaultEngine)
}

// State is the outcome of a render.
type State int

const (
	// StateOK means the widget rendered normally.
	StateOK State = iota
	// StateWarning means required configuration is missing.
	StateWarning
	// StateError means loading or parsing failed.
	StateError
)

func (s State) String() string {
	switch s {
	case StateOK:
		return "ok"
	case StateWarning:
		return "warning"
	case StateError:
		return "error"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Result is a rendered widget. HTML holds either the widget body or the
// warning/error fragment, never a mix.
type Result struct {
	Type    string   `json:"type"`
	State   State    `json:"state"`
	HTML    string   `json:"html"`
	Message string   `json:"message,omitempty"`
	Scripts []string `json:"scripts,omitempty"`
	Err     error    `json:"-"`
}

// Render binds raw to w's parameters and renders it. Failures are
// classified and rendered as warning or error fragments.
func Render(ctx context.Context, w Widget, rc *RenderContext, raw map[string]any) Result {
	if rc.RenderID == uuid.Nil {
		rc.RenderID = uuid.New()
	}
	start := time.Now()
	params := param.Bind(w.Parameters(), raw)

	var out Output
	err := w.Render(ctx, rc, params, &out)
	res := Result{Type: w.Type()}
	if err == nil {
		res.HTML = out.String()
		res.Scripts = out.Scripts
		slog.Debug("widget rendered", "type", w.Type(), "render_id", rc.RenderID, "duration", time.Since(start))
		return res
	}
	return failure(w.Type(), rc.RenderID, err)
}

func failure(widgetType string, id uuid.UUID, err error) Result {
	res := Result{Type: widgetType, Message: err.Error(), Err: err}
	var buf bytes.Buffer
	if param.IsRequired(err) {
		res.State = StateWarning
		_ = htmlfrag.Warning(&buf, res.Message)
		slog.Info("widget configuration incomplete", "type", widgetType, "render_id", id, "error", err)
	} else {
		res.State = StateError
		_ = htmlfrag.Error(&buf, res.Message)
		slog.Warn("widget render failed", "type", widgetType, "render_id", id, "error", err)
	}
	res.HTML = buf.String()
	return res
}

// Failure builds the error result for a widget that could not be
// rendered at all, e.g. because its type is unknown.
func Failure(widgetType string, err error) Result {
	return failure(widgetType, uuid.Nil, err)
}

func icon(name string) []byte {
	b, err := icons.ReadFile("icons/" + name)
	if err != nil {
		panic(fmt.Sprintf("missing widget icon %s: %v", name, err))
	}
	return b
}
