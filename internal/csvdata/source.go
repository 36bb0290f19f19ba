// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package csvdata

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/davetashner/csvwidgets/internal/content"
	"github.com/davetashner/csvwidgets/internal/param"
)

// Parameter ids shared by the widgets that read CSV sources.
const (
	ParamDataSource            = "dataSource"
	ParamDataLocation          = "dataLocation"
	ParamFieldSeparator        = "fieldSeparator"
	ParamAdditionalDataSources = "additionalDataSources"
	ParamName                  = "name"

	DefaultSeparator = ","
)

// SourceParameter declares the primary data source group.
func SourceParameter() *param.Definition {
	return param.Composite(ParamDataSource, "Data Source",
		param.String(ParamDataLocation, "Data Location"),
		param.String(ParamFieldSeparator, "Field Separator").WithDefault(DefaultSeparator).KeepWhitespace(),
	)
}

// AdditionalSourcesParameter declares the list of named extra sources.
func AdditionalSourcesParameter() *param.Definition {
	return param.Multi(ParamAdditionalDataSources, "Additional Data Sources",
		param.String(ParamName, "Name"),
		param.String(ParamDataLocation, "Data Location"),
		param.String(ParamFieldSeparator, "Field Separator").WithDefault(DefaultSeparator).KeepWhitespace(),
	)
}

// Source is a parsed resource. Name is empty for the primary source.
type Source struct {
	Name      string
	Location  string
	Table     *Table
	Timestamp time.Time
}

// Sources is an ordered set of sources: the primary source first, then
// additional sources in configuration order.
type Sources []*Source

// Primary returns the unnamed source, or nil.
func (s Sources) Primary() *Source {
	for _, src := range s {
		if src.Name == "" {
			return src
		}
	}
	return nil
}

// Lookup returns the source with the given name.
func (s Sources) Lookup(name string) (*Source, bool) {
	if i, ok := s.index(name); ok {
		return s[i], true
	}
	return nil, false
}

func (s Sources) index(name string) (int, bool) {
	for i, src := range s {
		if src.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Load fetches location and parses it. The content stream is closed on
// every path.
func Load(ctx context.Context, loader content.Loader, location, sep string) (*Source, error) {
	c, err := loader.Load(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", location, err)
	}
	defer c.Body.Close() //nolint:errcheck // read-only stream

	table, err := Parse(c.Body, sep)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", location, err)
	}
	return &Source{Location: location, Table: table, Timestamp: c.Modified}, nil
}

// LoadPrimary loads the source configured by the dataSource group of
// params.
func LoadPrimary(ctx context.Context, loader content.Loader, params param.Value) (*Source, error) {
	group := params.Get(ParamDataSource)
	location, err := group.Get(ParamDataLocation).Str().Required()
	if err != nil {
		return nil, err
	}
	sep, err := group.Get(ParamFieldSeparator).Str().Required()
	if err != nil {
		return nil, err
	}
	return Load(ctx, loader, location, sep)
}

// LoadAll loads the primary source and every configured additional
// source. Additional entries with neither a name nor a location are
// skipped; partially configured entries fail with a required-parameter
// error.
func LoadAll(ctx context.Context, loader content.Loader, params param.Value) (Sources, error) {
	primary, err := LoadPrimary(ctx, loader, params)
	if err != nil {
		return nil, err
	}
	sources := Sources{primary}

	for i, item := range params.Get(ParamAdditionalDataSources).Items() {
		nameOpt := item.Get(ParamName).Str()
		locOpt := item.Get(ParamDataLocation).Str()
		if !nameOpt.Present() && !locOpt.Present() {
			slog.Debug("skipping unconfigured data source", "index", i)
			continue
		}
		name, err := nameOpt.Required()
		if err != nil {
			return nil, err
		}
		location, err := locOpt.Required()
		if err != nil {
			return nil, err
		}
		sep, err := item.Get(ParamFieldSeparator).Str().Required()
		if err != nil {
			return nil, err
		}
		src, err := Load(ctx, loader, location, sep)
		if err != nil {
			return nil, err
		}
		src.Name = name
		if prev, ok := sources.index(name); ok {
			// A repeated name replaces the earlier source.
			sources[prev] = src
			continue
		}
		sources = append(sources, src)
	}
	return sources, nil
}
