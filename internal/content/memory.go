// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package content

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Memory is an in-process Loader, mostly useful in tests.
type Memory struct {
	mu    sync.RWMutex
	files map[string]memoryFile

	// Loads counts successful Load calls.
	Loads int
}

type memoryFile struct {
	data     string
	modified time.Time
}

// NewMemory returns an empty Memory loader.
func NewMemory() *Memory {
	return &Memory{files: make(map[string]memoryFile)}
}

// Put stores data at location.
func (m *Memory) Put(location, data string, modified time.Time) {
	loc, err := cleanLocation(location)
	if err != nil {
		loc = location
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[loc] = memoryFile{data: data, modified: modified}
}

// Load returns the data stored at location.
func (m *Memory) Load(ctx context.Context, location string) (*Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loc, err := cleanLocation(location)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[loc]
	if !ok {
		return nil, fmt.Errorf("%s: %w", location, ErrNotFound)
	}
	m.Loads++
	return &Content{
		Body:     io.NopCloser(strings.NewReader(f.data)),
		Modified: f.modified,
	}, nil
}
