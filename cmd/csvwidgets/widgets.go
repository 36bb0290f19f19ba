// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/davetashner/csvwidgets/internal/param"
	"github.com/davetashner/csvwidgets/internal/termtable"
	"github.com/davetashner/csvwidgets/internal/widget"
)

// widgetsCmd lists widget types or describes one.
var widgetsCmd = &cobra.Command{
	Use:   "widgets [type]",
	Short: "List widget types and their parameters",
	Long: `Without arguments, list the available widget types. With a type, print
its description and the parameters a page file may set for it, using the
dotted paths config validation reports.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWidgets,
}

func runWidgets(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	if len(args) == 0 {
		tbl := termtable.New(
			termtable.Column{Header: "TYPE"},
			termtable.Column{Header: "LABEL"},
			termtable.Column{Header: "TAGS"},
		)
		for _, wd := range widget.List() {
			tbl.AddRow(wd.Type(), wd.Label(), strings.Join(wd.Tags(), ", "))
		}
		return tbl.Render(w)
	}

	wd, err := widget.Get(args[0])
	if err != nil {
		return exitError(ExitInvalidArgs, "csvwidgets: %v (available: %s)", err, strings.Join(widget.Types(), ", "))
	}
	_, _ = color.New(color.Bold).Fprintln(w, wd.Label())
	_, _ = fmt.Fprintf(w, "%s\n\n", wd.Details())

	tbl := termtable.New(
		termtable.Column{Header: "PARAMETER"},
		termtable.Column{Header: "KIND"},
		termtable.Column{Header: "DEFAULT", Color: termtable.ColorMuted},
		termtable.Column{Header: "LABEL"},
	)
	addParams(tbl, wd.Parameters().Children, "")
	return tbl.Render(w)
}

// addParams lists defs depth-first with dotted paths; list items are
// marked with [].
func addParams(tbl *termtable.Table, defs []*param.Definition, prefix string) {
	for _, d := range defs {
		path := prefix + d.ID
		tbl.AddRow(path, d.Kind.String(), d.Default, d.Label)
		next := path + "."
		if d.Kind == param.KindMulti {
			next = path + "[]."
		}
		addParams(tbl, d.Children, next)
	}
}
