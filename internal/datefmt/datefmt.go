// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

// Package datefmt formats times with yyyy-MM-dd style patterns, the
// pattern language page authors use for timestamp placeholders.
//
// Letters are pattern fields, text in single quotes is literal and ''
// is a quote. Supported fields: y M d D E u a H k h K m s S z Z X.
package datefmt

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Default is the pattern used when a widget does not configure one.
const Default = "yyyy-MM-dd"

// Formatter is a compiled pattern. It is immutable and safe for
// concurrent use.
type Formatter struct {
	pattern  string
	segments []segment
}

type segment func(b *strings.Builder, t time.Time)

// Compile parses pattern.
func Compile(pattern string) (*Formatter, error) {
	f := &Formatter{pattern: pattern}
	runes := []rune(pattern)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case r == '\'':
			lit, next, err := quoted(runes, i)
			if err != nil {
				return nil, fmt.Errorf("pattern %q: %w", pattern, err)
			}
			f.segments = append(f.segments, literal(lit))
			i = next
		case isLetter(r):
			n := 1
			for i+n < len(runes) && runes[i+n] == r {
				n++
			}
			seg, err := field(r, n)
			if err != nil {
				return nil, fmt.Errorf("pattern %q: %w", pattern, err)
			}
			f.segments = append(f.segments, seg)
			i += n
		default:
			start := i
			for i < len(runes) && runes[i] != '\'' && !isLetter(runes[i]) {
				i++
			}
			f.segments = append(f.segments, literal(string(runes[start:i])))
		}
	}
	return f, nil
}

// MustCompile is like Compile but panics on an invalid pattern.
func MustCompile(pattern string) *Formatter {
	f, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return f
}

// Pattern returns the source pattern.
func (f *Formatter) Pattern() string { return f.pattern }

// Format renders t.
func (f *Formatter) Format(t time.Time) string {
	var b strings.Builder
	for _, seg := range f.segments {
		seg(&b, t)
	}
	return b.String()
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// quoted reads a quoted section starting at runes[i] == '\''.
func quoted(runes []rune, i int) (string, int, error) {
	if i+1 < len(runes) && runes[i+1] == '\'' {
		return "'", i + 2, nil
	}
	var b strings.Builder
	for j := i + 1; j < len(runes); j++ {
		if runes[j] != '\'' {
			b.WriteRune(runes[j])
			continue
		}
		if j+1 < len(runes) && runes[j+1] == '\'' {
			b.WriteRune('\'')
			j++
			continue
		}
		return b.String(), j + 1, nil
	}
	return "", 0, fmt.Errorf("unterminated quote at position %d", i)
}

func literal(s string) segment {
	return func(b *strings.Builder, _ time.Time) { b.WriteString(s) }
}

func layout(l string) segment {
	return func(b *strings.Builder, t time.Time) { b.WriteString(t.Format(l)) }
}

func number(width int, get func(time.Time) int) segment {
	return func(b *strings.Builder, t time.Time) {
		s := strconv.Itoa(get(t))
		for i := len(s); i < width; i++ {
			b.WriteByte('0')
		}
		b.WriteString(s)
	}
}

func field(r rune, n int) (segment, error) {
	switch r {
	case 'y':
		if n == 2 {
			return layout("06"), nil
		}
		return number(n, func(t time.Time) int { return t.Year() }), nil
	case 'M':
		switch {
		case n >= 4:
			return layout("January"), nil
		case n == 3:
			return layout("Jan"), nil
		}
		return number(n, func(t time.Time) int { return int(t.Month()) }), nil
	case 'd':
		return number(n, func(t time.Time) int { return t.Day() }), nil
	case 'D':
		return number(n, func(t time.Time) int { return t.YearDay() }), nil
	case 'E':
		if n >= 4 {
			return layout("Monday"), nil
		}
		return layout("Mon"), nil
	case 'u':
		return number(n, func(t time.Time) int {
			if t.Weekday() == time.Sunday {
				return 7
			}
			return int(t.Weekday())
		}), nil
	case 'a':
		return layout("PM"), nil
	case 'H':
		return number(n, func(t time.Time) int { return t.Hour() }), nil
	case 'k':
		return number(n, func(t time.Time) int {
			if t.Hour() == 0 {
				return 24
			}
			return t.Hour()
		}), nil
	case 'h':
		return number(n, func(t time.Time) int {
			if h := t.Hour() % 12; h != 0 {
				return h
			}
			return 12
		}), nil
	case 'K':
		return number(n, func(t time.Time) int { return t.Hour() % 12 }), nil
	case 'm':
		return number(n, func(t time.Time) int { return t.Minute() }), nil
	case 's':
		return number(n, func(t time.Time) int { return t.Second() }), nil
	case 'S':
		return number(n, func(t time.Time) int { return t.Nanosecond() / int(time.Millisecond) }), nil
	case 'z':
		return layout("MST"), nil
	case 'Z':
		return layout("-0700"), nil
	case 'X':
		switch n {
		case 1:
			return layout("Z07"), nil
		case 2:
			return layout("Z0700"), nil
		default:
			return layout("Z07:00"), nil
		}
	}
	return nil, fmt.Errorf("unsupported pattern letter %q", r)
}
