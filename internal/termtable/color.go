// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package termtable

import "github.com/fatih/color"

var (
	colorRed    = color.New(color.FgRed)
	colorYellow = color.New(color.FgYellow)
	colorGreen  = color.New(color.FgGreen)
	colorFaint  = color.New(color.Faint)
)

// ColorState colors widget render states.
func ColorState(val string) string {
	switch val {
	case "error":
		return colorRed.Sprint(val)
	case "warning":
		return colorYellow.Sprint(val)
	case "ok":
		return colorGreen.Sprint(val)
	default:
		return val
	}
}

// ColorMuted dims secondary values such as defaults.
func ColorMuted(val string) string {
	if val == "" {
		return val
	}
	return colorFaint.Sprint(val)
}

// DisableColor turns off ANSI colors for all output, as --no-color does.
func DisableColor() { color.NoColor = true }
