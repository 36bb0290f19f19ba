// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package main

import "fmt"

// Exit codes for the csvwidgets CLI.
const (
	ExitOK             = 0 // Every widget rendered.
	ExitInvalidArgs    = 1 // Invalid arguments, page file or config.
	ExitPartialFailure = 2 // Some widgets rendered a warning or error.
	ExitTotalFailure   = 3 // Every widget failed.
)

// exitCodeError carries a process exit code through cobra's error return.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. If format is empty, the message is a
// generic description of the exit code.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		switch code {
		case ExitPartialFailure:
			msg = "csvwidgets: some widgets did not render"
		case ExitTotalFailure:
			msg = "csvwidgets: all widgets failed"
		default:
			msg = "csvwidgets: error"
		}
	}
	return &exitCodeError{code: code, msg: msg}
}

// exitCodeFor maps widget outcome counts to an exit code.
func exitCodeFor(total, warnings, errs int) int {
	switch {
	case total > 0 && errs == total:
		return ExitTotalFailure
	case warnings+errs > 0:
		return ExitPartialFailure
	default:
		return ExitOK
	}
}
