// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Page file formats.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Extensions lists the page file extensions in lookup order.
var Extensions = []string{".yaml", ".yml", ".toml"}

// FormatFor returns the page format for path, judged by its extension.
func FormatFor(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%s: unsupported page file extension (want .yaml, .yml or .toml)", path)
}

// LoadPage reads and decodes the page file at path.
func LoadPage(path string) (*Page, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) //nolint:gosec // user-provided page path
	if err != nil {
		return nil, err
	}
	page, err := DecodePage(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return page, nil
}

// DecodePage decodes page data in the given format. Unknown keys are
// rejected so typos do not silently drop settings.
func DecodePage(data []byte, format string) (*Page, error) {
	var page Page
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&page); err != nil && err != io.EOF {
			return nil, err
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &page)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
	default:
		return nil, fmt.Errorf("unknown page format %q", format)
	}
	return &page, nil
}

// Write marshals the page to YAML and writes it to w.
func Write(w io.Writer, page *Page) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close() //nolint:errcheck // best-effort close
	enc.SetIndent(2)
	return enc.Encode(page)
}
