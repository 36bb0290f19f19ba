// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/davetashner/csvwidgets/internal/config"
)

// validateCmd checks a page file without rendering it.
var validateCmd = &cobra.Command{
	Use:   "validate <page>",
	Short: "Validate a page file",
	Long: `Validate a page file without loading any data.

Checks the chart engine, repository and calendar settings, that widget ids
are present and unique, that every widget type exists, and that widget
parameters are known to the widget. All problems are reported at once:
  csvwidgets validate pages/quality.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	p, err := config.LoadPage(args[0])
	if err != nil {
		return exitError(ExitInvalidArgs, "csvwidgets: cannot load page %q (%v)", args[0], err)
	}
	if err := config.Validate(p); err != nil {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), err)
		return exitError(ExitInvalidArgs, "")
	}
	green := color.New(color.FgGreen)
	_, _ = green.Fprintf(cmd.OutOrStdout(), "valid: %d widgets\n", len(p.Widgets))
	return nil
}
