// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package widget

import (
	"fmt"
	"sync"
)

var (
	mu       sync.RWMutex
	registry = make(map[string]Widget)
	order    []string // insertion order for deterministic listing
)

// Register adds a widget type to the global registry.
// It panics if a widget with the same type is already registered.
func Register(w Widget) {
	mu.Lock()
	defer mu.Unlock()
	t := w.Type()
	if _, exists := registry[t]; exists {
		panic(fmt.Sprintf("widget type already registered: %s", t))
	}
	registry[t] = w
	order = append(order, t)
}

// Get returns the widget registered under t.
func Get(t string) (Widget, error) {
	mu.RLock()
	defer mu.RUnlock()
	w, ok := registry[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	return w, nil
}

// List returns all registered widgets in registration order.
func List() []Widget {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Widget, 0, len(order))
	for _, t := range order {
		out = append(out, registry[t])
	}
	return out
}

// Types returns the registered type names in registration order.
func Types() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// resetForTesting clears the registry. Only for use in tests.
func resetForTesting() {
	mu.Lock()
	defer mu.Unlock()
	registry = make(map[string]Widget)
	order = nil
}
