// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DirLoader reads resources from a local directory tree.
type DirLoader struct {
	root string
}

// NewDirLoader returns a loader rooted at dir.
func NewDirLoader(dir string) *DirLoader {
	if dir == "" {
		dir = "."
	}
	return &DirLoader{root: dir}
}

// Load opens location beneath the root directory. Symlinks may not
// escape the root.
func (d *DirLoader) Load(ctx context.Context, location string) (*Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loc, err := cleanLocation(location)
	if err != nil {
		return nil, err
	}

	root, err := os.OpenRoot(d.root)
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", d.root, err)
	}
	defer root.Close() //nolint:errcheck // read-only handle

	f, err := root.Open(filepath.FromSlash(loc))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", location, ErrNotFound)
		}
		return nil, fmt.Errorf("open %s: %w", location, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat %s: %w", location, err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%s is a directory", location)
	}
	return &Content{Body: f, Modified: info.ModTime()}, nil
}
