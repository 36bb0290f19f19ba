// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package param

import (
	"errors"
	"fmt"
)

// RequiredError reports that a required parameter has no value.
type RequiredError struct {
	Label string
}

func (e *RequiredError) Error() string {
	return fmt.Sprintf("Parameter '%s' is required", e.Label)
}

// IsRequired reports whether err is, or wraps, a *RequiredError.
func IsRequired(err error) bool {
	var re *RequiredError
	return errors.As(err, &re)
}

// Optional is the result of a parameter lookup.
type Optional[T any] struct {
	value T
	ok    bool
	label string
}

// Some returns a present Optional.
func Some[T any](v T, label string) Optional[T] {
	return Optional[T]{value: v, ok: true, label: label}
}

// None returns an absent Optional for the labelled parameter.
func None[T any](label string) Optional[T] {
	return Optional[T]{label: label}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.value, o.ok }

// Present reports whether a value is set.
func (o Optional[T]) Present() bool { return o.ok }

// OrElse returns the value, or d when absent.
func (o Optional[T]) OrElse(d T) T {
	if o.ok {
		return o.value
	}
	return d
}

// Required returns the value, or a *RequiredError naming the parameter.
func (o Optional[T]) Required() (T, error) {
	if !o.ok {
		var zero T
		return zero, &RequiredError{Label: o.label}
	}
	return o.value, nil
}
