// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	cwlog "github.com/davetashner/csvwidgets/internal/log"
	"github.com/davetashner/csvwidgets/internal/termtable"
)

// Global flag values.
var (
	verbose bool
	quiet   bool
	noColor bool
)

// rootCmd is the base command for csvwidgets.
var rootCmd = &cobra.Command{
	Use:   "csvwidgets",
	Short: "Render tables and trend charts from CSV files in a repository",
	Long: `csvwidgets renders dashboard widgets from CSV files kept in a repository.
A page file lists widgets: tables that show a CSV file as is, and trend
charts that bucket dated rows by day, week, month or year and plot one or
more aggregated series. Pages render to standalone HTML, over HTTP, or
through MCP tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		cwlog.Setup(verbose, quiet)
		if noColor {
			termtable.DisableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(widgetsCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}
