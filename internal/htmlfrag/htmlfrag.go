// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

// Package htmlfrag writes the HTML fragments widgets are made of. All
// text is escaped by html/template.
package htmlfrag

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"sync"
)

const fragments = `
{{define "table"}}<table class="rpw-table-content">
{{- range $i, $row := .}}
{{- if eq $i 0}}
<tr class="rpw-table-header-row">{{range $row}}<th>{{.}}</th>{{end}}</tr>
{{- else}}
<tr class="rpw-table-content-row">{{range $row}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
{{- end}}
</table>
{{end}}
{{define "warning"}}<div class="rpw-warning">{{.}}</div>
{{end}}
{{define "error"}}<div class="rpw-error">{{.}}</div>
{{end}}
{{define "text"}}<div class="rpw-text">{{range .}}<p>{{.}}</p>{{end}}</div>
{{end}}
`

var (
	fragTmplOnce sync.Once
	fragTmpl     *template.Template
)

func templates() *template.Template {
	fragTmplOnce.Do(func() {
		fragTmpl = template.Must(template.New("fragments").Parse(fragments))
	})
	return fragTmpl
}

func execute(w io.Writer, name string, data any) error {
	if err := templates().ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("execute %s fragment: %w", name, err)
	}
	return nil
}

// Table writes rows as one table. Row 0 becomes the header row; rows may
// have different lengths.
func Table(w io.Writer, rows [][]string) error {
	return execute(w, "table", rows)
}

// Warning writes a notice about missing configuration.
func Warning(w io.Writer, msg string) error {
	return execute(w, "warning", msg)
}

// Error writes a render failure.
func Error(w io.Writer, msg string) error {
	return execute(w, "error", msg)
}

// Text writes text as paragraphs, one per blank-line separated block.
// Empty text writes nothing.
func Text(w io.Writer, text string) error {
	paras := Paragraphs(text)
	if len(paras) == 0 {
		return nil
	}
	return execute(w, "text", paras)
}

// Paragraphs splits text on blank lines and drops empty blocks.
func Paragraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, block := range strings.Split(text, "\n\n") {
		if block = strings.TrimSpace(block); block != "" {
			out = append(out, block)
		}
	}
	return out
}
