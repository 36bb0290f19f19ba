// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/davetashner/csvwidgets/internal/config"
	"github.com/davetashner/csvwidgets/internal/page"
	"github.com/davetashner/csvwidgets/internal/termtable"
	"github.com/davetashner/csvwidgets/internal/widget"
)

// Render-specific flag values.
var (
	renderOutput      string
	renderEngine      string
	renderWidget      string
	renderConcurrency int
	renderNoDefaults  bool
)

// renderCmd renders a page file to HTML.
var renderCmd = &cobra.Command{
	Use:   "render <page>",
	Short: "Render a page file to HTML",
	Long: `Render every widget of a page file into a standalone HTML document.

With --widget only that widget's HTML fragment is written. Widgets whose
configuration is incomplete render a warning; widgets that fail to load or
process their data render an error. Either way the rest of the page still
renders.

Exit codes: 0 all widgets rendered, 1 invalid arguments or page file,
2 some widgets rendered a warning or error, 3 every widget failed.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "write HTML to this file instead of stdout")
	renderCmd.Flags().StringVar(&renderEngine, "engine", "", "chart engine (echarts, svg); overrides the page setting")
	renderCmd.Flags().StringVar(&renderWidget, "widget", "", "render only the widget with this id")
	renderCmd.Flags().IntVar(&renderConcurrency, "concurrency", page.DefaultConcurrency, "widgets rendered in parallel")
	renderCmd.Flags().BoolVar(&renderNoDefaults, "no-defaults", false, "ignore the global page defaults file")
}

func runRender(cmd *cobra.Command, args []string) error {
	srv, err := config.LoadServer("")
	if err != nil {
		return exitError(ExitInvalidArgs, "csvwidgets: %v", err)
	}
	var defaults *config.Page
	if !renderNoDefaults {
		defaults, err = config.LoadDefaults()
		if err != nil {
			return exitError(ExitInvalidArgs, "csvwidgets: %v", err)
		}
	}

	r, err := page.Load(args[0], defaults, page.Options{
		Engine:      renderEngine,
		Concurrency: renderConcurrency,
		Credentials: srv.Credentials(),
	})
	if err != nil {
		return exitError(ExitInvalidArgs, "csvwidgets: cannot load page %q (%v)", args[0], err)
	}

	var (
		results []page.Rendered
		write   func(io.Writer) error
	)
	if renderWidget != "" {
		res, err := r.RenderWidget(cmd.Context(), renderWidget)
		if err != nil {
			return exitError(ExitInvalidArgs, "csvwidgets: %v", err)
		}
		results = []page.Rendered{res}
		write = func(w io.Writer) error {
			_, err := io.WriteString(w, res.HTML)
			return err
		}
	} else {
		doc, err := r.Render(cmd.Context())
		if err != nil {
			return exitError(ExitTotalFailure, "csvwidgets: render failed (%v)", err)
		}
		results = doc.Widgets
		write = doc.WriteHTML
	}

	if err := writeOutput(cmd, write); err != nil {
		return err
	}
	if !quiet {
		if err := printSummary(cmd.ErrOrStderr(), results); err != nil {
			return err
		}
	}

	_, warnings, errs := counts(results)
	if code := exitCodeFor(len(results), warnings, errs); code != ExitOK {
		return exitError(code, "")
	}
	return nil
}

func writeOutput(cmd *cobra.Command, write func(io.Writer) error) error {
	if renderOutput == "" {
		if err := write(cmd.OutOrStdout()); err != nil {
			return exitError(ExitTotalFailure, "csvwidgets: write output (%v)", err)
		}
		return nil
	}
	f, err := cmdFS.Create(renderOutput)
	if err != nil {
		return exitError(ExitInvalidArgs, "csvwidgets: cannot create %q (%v)", renderOutput, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return exitError(ExitTotalFailure, "csvwidgets: write %q (%v)", renderOutput, err)
	}
	if err := f.Close(); err != nil {
		return exitError(ExitTotalFailure, "csvwidgets: close %q (%v)", renderOutput, err)
	}
	slog.Info("page written", "path", renderOutput)
	return nil
}

func counts(results []page.Rendered) (ok, warnings, errs int) {
	doc := page.Document{Widgets: results}
	return doc.Counts()
}

func printSummary(w io.Writer, results []page.Rendered) error {
	tbl := termtable.New(
		termtable.Column{Header: "WIDGET"},
		termtable.Column{Header: "TYPE"},
		termtable.Column{Header: "STATE", Color: termtable.ColorState},
		termtable.Column{Header: "MS", Align: termtable.AlignRight},
		termtable.Column{Header: "MESSAGE", Color: termtable.ColorMuted},
	)
	for _, r := range results {
		msg := ""
		if r.State != widget.StateOK {
			msg = r.Message
		}
		tbl.AddRow(r.ID, r.Type, r.State.String(), strconv.FormatInt(r.Duration.Milliseconds(), 10), msg)
	}
	return tbl.Render(w)
}
