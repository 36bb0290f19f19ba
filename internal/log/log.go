// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

// Package log configures structured logging for csvwidgets using log/slog.
package log

import (
	"io"
	"log/slog"
	"os"
)

// Options selects the level and format of the default logger.
type Options struct {
	Verbose bool
	Quiet   bool
	// JSON switches to slog.JSONHandler, used by the long-running servers.
	JSON bool
	// Writer defaults to stderr.
	Writer io.Writer
}

// Level maps the verbosity flags to a slog level. Quiet wins over verbose.
//
//   - quiet mode:   only WARN and ERROR messages
//   - normal mode:  INFO and above
//   - verbose mode: DEBUG and above
func (o Options) Level() slog.Level {
	switch {
	case o.Quiet:
		return slog.LevelWarn
	case o.Verbose:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// Configure installs the default slog logger for opts.
func Configure(opts Options) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	ho := &slog.HandlerOptions{Level: opts.Level()}
	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(w, ho)
	} else {
		handler = slog.NewTextHandler(w, ho)
	}
	slog.SetDefault(slog.New(handler).With("app", "csvwidgets"))
}

// Setup configures a text logger on stderr from the verbosity flags.
func Setup(verbose, quiet bool) {
	Configure(Options{Verbose: verbose, Quiet: quiet})
}
