// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package widget

import (
	"context"

	"github.com/davetashner/csvwidgets/internal/csvdata"
	"github.com/davetashner/csvwidgets/internal/htmlfrag"
	"github.com/davetashner/csvwidgets/internal/param"
)

// TypeTable is the type name of the CSV table widget.
const TypeTable = "csv-table"

func init() {
	Register(&tableWidget{})
}

// tableWidget renders the primary data source as one HTML table.
type tableWidget struct{}

// Compile-time interface check.
var _ Widget = (*tableWidget)(nil)

func (t *tableWidget) Type() string  { return TypeTable }
func (t *tableWidget) Label() string { return "CSV-based Table" }

func (t *tableWidget) Details() string {
	return "Table visualizing data from CSV file stored in repository."
}

func (t *tableWidget) Tags() []string { return []string{"CSV", "generic"} }
func (t *tableWidget) Icon() []byte   { return icon("table.svg") }

func (t *tableWidget) Parameters() *param.Definition {
	return param.Composite("", t.Label(), csvdata.SourceParameter())
}

func (t *tableWidget) Render(ctx context.Context, rc *RenderContext, params param.Value, out *Output) error {
	src, err := csvdata.LoadPrimary(ctx, rc.Loader, params)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, src.Table.Len())
	src.Table.Visit(func(_ int, row []string) {
		rows = append(rows, row)
	})
	return htmlfrag.Table(out, rows)
}
