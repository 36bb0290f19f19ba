// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// GlobalConfigDir returns the directory for global csvwidgets configuration.
// It uses $XDG_CONFIG_HOME/csvwidgets if set, otherwise ~/.config/csvwidgets.
func GlobalConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "csvwidgets")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "csvwidgets")
}

// DefaultsPath returns the path to the page defaults file.
func DefaultsPath() string {
	return filepath.Join(GlobalConfigDir(), "defaults.yaml")
}

// LoadDefaults loads the page defaults file. Its settings apply to every
// page that leaves them unset; widgets in it are ignored.
// If the file does not exist, it returns a zero-value Page and nil error.
func LoadDefaults() (*Page, error) {
	page, err := LoadPage(DefaultsPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Page{}, nil
		}
		return nil, err
	}
	page.Widgets = nil
	return page, nil
}
