// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package page

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/davetashner/csvwidgets/internal/config"
)

var (
	// ErrInvalidName is returned for page names that are empty or escape
	// the pages directory.
	ErrInvalidName = errors.New("invalid page name")
	// ErrPageNotFound is returned when no page file matches a name.
	ErrPageNotFound = errors.New("page not found")
)

// Catalog finds page files by name in one directory. A page named
// "quality" is read from quality.yaml, quality.yml or quality.toml.
type Catalog struct {
	Dir      string
	Defaults *config.Page
	Options  Options
}

// Path returns the page file for name.
func (c *Catalog) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") ||
		strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	for _, ext := range config.Extensions {
		path := filepath.Join(c.Dir, name+ext)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrPageNotFound, name)
}

// Open loads the named page and builds its Renderer.
func (c *Catalog) Open(name string) (*Renderer, error) {
	path, err := c.Path(name)
	if err != nil {
		return nil, err
	}
	return Load(path, c.Defaults, c.Options)
}

// Names lists the pages in the directory, sorted.
func (c *Catalog) Names() ([]string, error) {
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		return nil, fmt.Errorf("read pages dir: %w", err)
	}
	seen := make(map[string]bool)
	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if _, err := config.FormatFor(e.Name()); err != nil {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
