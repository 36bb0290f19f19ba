// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

// Package param declares widget parameter trees and binds raw page
// configuration to them.
//
// A Definition describes one parameter: its id, label, kind and default.
// Bind pairs a definition with the raw value decoded from a page file
// (YAML or TOML) and yields a Value whose lookups return Optional results.
// Blank strings count as absent, and absent values fall back to the
// definition's default.
package param

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the shape of a parameter.
type Kind int

const (
	// KindString is a single text value.
	KindString Kind = iota
	// KindDate is a calendar date written as yyyy-MM-dd.
	KindDate
	// KindInt is an integer value.
	KindInt
	// KindEnum is a text value restricted to Definition.Allowed.
	KindEnum
	// KindComposite groups named child parameters.
	KindComposite
	// KindMulti is an ordered list of composite items.
	KindMulti
)

var kindNames = map[Kind]string{
	KindString:    "string",
	KindDate:      "date",
	KindInt:       "int",
	KindEnum:      "enum",
	KindComposite: "composite",
	KindMulti:     "multi",
}

// String returns the lowercase kind name.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Definition describes one widget parameter.
type Definition struct {
	ID       string        `json:"id" yaml:"id"`
	Label    string        `json:"label" yaml:"label"`
	Kind     Kind          `json:"kind" yaml:"kind"`
	Default  string        `json:"default,omitempty" yaml:"default,omitempty"`
	Allowed  []string      `json:"allowed,omitempty" yaml:"allowed,omitempty"`
	Children []*Definition `json:"children,omitempty" yaml:"children,omitempty"`

	// Verbatim keeps whitespace-only values, e.g. a tab field separator.
	Verbatim bool `json:"-" yaml:"-"`
}

// String declares a text parameter.
func String(id, label string) *Definition {
	return &Definition{ID: id, Label: label, Kind: KindString}
}

// Date declares a date parameter.
func Date(id, label string) *Definition {
	return &Definition{ID: id, Label: label, Kind: KindDate}
}

// Int declares an integer parameter.
func Int(id, label string) *Definition {
	return &Definition{ID: id, Label: label, Kind: KindInt}
}

// Enum declares a text parameter limited to the allowed values.
func Enum(id, label string, allowed ...string) *Definition {
	return &Definition{ID: id, Label: label, Kind: KindEnum, Allowed: allowed}
}

// Composite declares a group of child parameters.
func Composite(id, label string, children ...*Definition) *Definition {
	return &Definition{ID: id, Label: label, Kind: KindComposite, Children: children}
}

// Multi declares a list whose items each hold the given children.
func Multi(id, label string, children ...*Definition) *Definition {
	return &Definition{ID: id, Label: label, Kind: KindMulti, Children: children}
}

// WithDefault sets the default used when the raw value is missing.
func (d *Definition) WithDefault(v string) *Definition {
	d.Default = v
	return d
}

// KeepWhitespace marks the parameter as verbatim.
func (d *Definition) KeepWhitespace() *Definition {
	d.Verbatim = true
	return d
}

// Child returns the child definition with the given id, or nil.
func (d *Definition) Child(id string) *Definition {
	if d == nil {
		return nil
	}
	for _, c := range d.Children {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Value is a raw configuration value bound to its definition.
type Value struct {
	def *Definition
	raw any
}

// Bind pairs a definition with raw decoded configuration.
func Bind(def *Definition, raw any) Value {
	return Value{def: def, raw: normalize(raw)}
}

// Definition returns the bound definition, which may be nil for lookups
// of undeclared ids.
func (v Value) Definition() *Definition { return v.def }

// Label returns the bound definition's label, falling back to its id.
func (v Value) Label() string {
	if v.def == nil {
		return ""
	}
	if v.def.Label != "" {
		return v.def.Label
	}
	return v.def.ID
}

// Get looks up a child parameter of a composite or multi item.
func (v Value) Get(id string) Value {
	child := v.def.Child(id)
	m, _ := v.raw.(map[string]any)
	var raw any
	if m != nil {
		raw = m[id]
	}
	if child == nil {
		child = &Definition{ID: id, Label: id, Kind: KindString}
	}
	return Value{def: child, raw: raw}
}

// Items returns the entries of a multi parameter in configuration order.
// A single map is treated as a list of one.
func (v Value) Items() []Value {
	switch raw := v.raw.(type) {
	case []any:
		out := make([]Value, 0, len(raw))
		for _, item := range raw {
			out = append(out, Value{def: v.def, raw: item})
		}
		return out
	case map[string]any:
		return []Value{{def: v.def, raw: raw}}
	}
	return nil
}

// Present reports whether the value or its default is set.
func (v Value) Present() bool {
	switch raw := v.raw.(type) {
	case nil:
		return v.def != nil && v.def.Default != ""
	case string:
		return !v.blank(raw) || (v.def != nil && v.def.Default != "")
	case map[string]any:
		return len(raw) > 0
	case []any:
		return len(raw) > 0
	}
	return true
}

// Str looks up the value as text.
func (v Value) Str() Optional[string] {
	label := v.Label()
	switch raw := v.raw.(type) {
	case nil:
		return v.fallback()
	case string:
		if v.blank(raw) {
			return v.fallback()
		}
		return Some(raw, label)
	case time.Time:
		return Some(raw.Format(time.DateOnly), label)
	case map[string]any, []any:
		return None[string](label)
	default:
		return Some(fmt.Sprint(raw), label)
	}
}

// Enum looks up a text value and checks it against the allowed list.
// Matching is case-insensitive and the canonical spelling is returned.
func (v Value) Enum() (Optional[string], error) {
	s := v.Str()
	val, ok := s.Get()
	if !ok || v.def == nil || len(v.def.Allowed) == 0 {
		return s, nil
	}
	for _, a := range v.def.Allowed {
		if strings.EqualFold(strings.TrimSpace(val), a) {
			return Some(a, v.Label()), nil
		}
	}
	return s, fmt.Errorf("parameter %q: unsupported value %q (allowed: %s)",
		v.Label(), val, strings.Join(v.def.Allowed, ", "))
}

// Int looks up the value as an integer.
func (v Value) Int() (Optional[int], error) {
	label := v.Label()
	switch raw := v.raw.(type) {
	case int:
		return Some(raw, label), nil
	case int64:
		return Some(int(raw), label), nil
	case float64:
		if raw != float64(int(raw)) {
			return None[int](label), fmt.Errorf("parameter %q: %v is not an integer", label, raw)
		}
		return Some(int(raw), label), nil
	}
	s, ok := v.Str().Get()
	if !ok {
		return None[int](label), nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return None[int](label), fmt.Errorf("parameter %q: %q is not an integer", label, s)
	}
	return Some(n, label), nil
}

// Date looks up the value as a calendar date at midnight in loc.
func (v Value) Date(loc *time.Location) (Optional[time.Time], error) {
	label := v.Label()
	if loc == nil {
		loc = time.Local
	}
	if t, ok := v.raw.(time.Time); ok {
		y, m, d := t.Date()
		return Some(time.Date(y, m, d, 0, 0, 0, 0, loc), label), nil
	}
	s, ok := v.Str().Get()
	if !ok {
		return None[time.Time](label), nil
	}
	t, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(s), loc)
	if err != nil {
		return None[time.Time](label), fmt.Errorf("parameter %q: invalid date %q: %w", label, s, err)
	}
	return Some(t, label), nil
}

func (v Value) blank(s string) bool {
	if v.def != nil && v.def.Verbatim {
		return s == ""
	}
	return strings.TrimSpace(s) == ""
}

func (v Value) fallback() Optional[string] {
	if v.def != nil && v.def.Default != "" {
		return Some(v.def.Default, v.Label())
	}
	return None[string](v.Label())
}

// normalize converts decoder-specific containers into map[string]any and
// []any so lookups do not care whether a page came from YAML or TOML.
func normalize(raw any) any {
	switch r := raw.(type) {
	case map[string]any:
		out := make(map[string]any, len(r))
		for k, val := range r {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(r))
		for k, val := range r {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []map[string]any:
		out := make([]any, len(r))
		for i, val := range r {
			out[i] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(r))
		for i, val := range r {
			out[i] = normalize(val)
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(r))
		for k, val := range r {
			out[k] = val
		}
		return out
	}
	return raw
}

// Unknown returns the ids present in raw that the definition does not
// declare, sorted. Multi items are checked against the item children.
func Unknown(def *Definition, raw any) []string {
	var out []string
	collectUnknown(def, normalize(raw), "", &out)
	sort.Strings(out)
	return out
}

func collectUnknown(def *Definition, raw any, prefix string, out *[]string) {
	switch r := raw.(type) {
	case map[string]any:
		for k, val := range r {
			child := def.Child(k)
			if child == nil {
				*out = append(*out, prefix+k)
				continue
			}
			if child.Kind == KindComposite || child.Kind == KindMulti {
				collectUnknown(child, val, prefix+k+".", out)
			}
		}
	case []any:
		for i, item := range r {
			collectUnknown(def, item, fmt.Sprintf("%s%d.", prefix, i), out)
		}
	}
}
