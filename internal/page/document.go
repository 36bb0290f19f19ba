// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package page

import (
	"fmt"
	"html/template"
	"io"
	"sync"
	"time"

	"github.com/davetashner/csvwidgets/internal/widget"
)

// Document is a rendered page.
type Document struct {
	Title       string     `json:"title"`
	Widgets     []Rendered `json:"widgets"`
	GeneratedAt time.Time  `json:"generated_at"`
}

// Counts returns how many widgets ended in each state.
func (d *Document) Counts() (ok, warnings, errs int) {
	for _, w := range d.Widgets {
		switch w.State {
		case widget.StateOK:
			ok++
		case widget.StateWarning:
			warnings++
		case widget.StateError:
			errs++
		}
	}
	return ok, warnings, errs
}

// Scripts returns the script URLs needed by all widgets, in first-use
// order without duplicates.
func (d *Document) Scripts() []string {
	seen := make(map[string]bool)
	var out []string
	for _, w := range d.Widgets {
		for _, s := range w.Scripts {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

const documentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
{{- range .Scripts}}
<script src="{{.}}"></script>
{{- end}}
<style>
:root {
  --bg: #fff; --fg: #1a1a2e; --card-bg: #f8f9fa; --border: #dee2e6;
  --table-alt: #f1f3f5; --muted: #6c757d; --warn: #fd7e14; --error: #dc3545;
}
@media (prefers-color-scheme: dark) {
  :root {
    --bg: #1a1a2e; --fg: #e9ecef; --card-bg: #16213e; --border: #495057;
    --table-alt: #0f3460; --muted: #adb5bd; --warn: #fd7e14; --error: #f55;
  }
}
* { box-sizing: border-box; }
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: var(--bg); color: var(--fg); line-height: 1.5; padding: 1rem; max-width: 1400px; margin: 0 auto; }
header { margin-bottom: 1.5rem; }
header h1 { font-size: 1.5rem; margin: 0 0 .25rem; }
header p { color: var(--muted); font-size: .875rem; margin: 0; }
.widget { background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; padding: 1rem; margin-bottom: 1rem; overflow-x: auto; }
.rpw-table-content { width: 100%; border-collapse: collapse; font-size: .8125rem; }
.rpw-table-content th, .rpw-table-content td { padding: .5rem .625rem; text-align: left; border-bottom: 1px solid var(--border); }
.rpw-table-header-row { background: var(--card-bg); }
.rpw-table-content-row:nth-child(even) { background: var(--table-alt); }
.rpw-warning { color: var(--warn); font-weight: 600; }
.rpw-error { color: var(--error); font-weight: 600; }
.rpw-chart svg { max-width: 100%; height: auto; }
</style>
</head>
<body>
<header>
  <h1>{{.Title}}</h1>
  <p>Generated {{.GeneratedAt}} &middot; {{len .Widgets}} widget(s)</p>
</header>
{{- range .Widgets}}
<section class="widget widget-{{.State}}" id="widget-{{.ID}}"{{if .Width}} style="max-width:{{.Width}}px"{{end}}>
{{.HTML}}</section>
{{- end}}
</body>
</html>
`

var (
	docTmplOnce sync.Once
	docTmpl     *template.Template
)

type documentData struct {
	Title       string
	GeneratedAt string
	Scripts     []string
	Widgets     []documentWidget
}

type documentWidget struct {
	ID    string
	State string
	Width int
	HTML  template.HTML
}

// WriteHTML writes the page as a standalone HTML document.
func (d *Document) WriteHTML(w io.Writer) error {
	docTmplOnce.Do(func() {
		docTmpl = template.Must(template.New("document").Parse(documentTemplate))
	})

	data := documentData{
		Title:       d.Title,
		GeneratedAt: d.GeneratedAt.UTC().Format("2006-01-02 15:04 UTC"),
		Scripts:     d.Scripts(),
	}
	if data.Title == "" {
		data.Title = "csvwidgets"
	}
	for _, rw := range d.Widgets {
		data.Widgets = append(data.Widgets, documentWidget{
			ID:    rw.ID,
			State: rw.State.String(),
			Width: rw.Width,
			// Widget fragments are produced by html/template or escape
			// their own text.
			HTML: template.HTML(rw.HTML), //nolint:gosec // fragments are escaped by their producers
		})
	}
	if err := docTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("execute page template: %w", err)
	}
	return nil
}
