// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/csvwidgets/internal/testable"
)

const renderPage = `
title: Render test
repository:
  kind: dir
  path: data
widgets:
  - id: table
    type: csv-table
    parameters:
      dataSource:
        dataLocation: bugs.csv
  - id: unconfigured
    type: csv-table
`

const failingPage = `
title: Broken
repository:
  kind: dir
  path: data
widgets:
  - id: a
    type: csv-table
    parameters:
      dataSource:
        dataLocation: missing.csv
  - id: b
    type: csv-table
    parameters:
      dataSource:
        dataLocation: ../outside.csv
`

func renderFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeTestFile(t, dir, "data/bugs.csv", "date,open\n2024-01-05,5\n")
	writeTestFile(t, dir, "partial.yaml", renderPage)
	writeTestFile(t, dir, "broken.yaml", failingPage)
	writeTestFile(t, dir, "ok.yaml", strings.Replace(renderPage,
		"  - id: unconfigured\n    type: csv-table\n", "", 1))
	return dir
}

func TestRender_AllOK(t *testing.T) {
	dir := renderFixture(t)
	cmd, stdout, stderr := newTestCmd(t)
	cmd.SetArgs([]string{"render", filepath.Join(dir, "ok.yaml")})

	require.NoError(t, cmd.Execute())
	assert.True(t, strings.HasPrefix(stdout.String(), "<!DOCTYPE html>"))
	assert.Contains(t, stdout.String(), "<td>2024-01-05</td>")
	assert.Contains(t, stderr.String(), "WIDGET")
	assert.Contains(t, stderr.String(), "table")
}

func TestRender_PartialFailure(t *testing.T) {
	dir := renderFixture(t)
	cmd, stdout, stderr := newTestCmd(t)
	cmd.SetArgs([]string{"render", filepath.Join(dir, "partial.yaml")})

	requireExitCode(t, cmd.Execute(), ExitPartialFailure)
	assert.Contains(t, stdout.String(), `<div class="rpw-warning">`)
	assert.Contains(t, stderr.String(), "warning")
	assert.Contains(t, stderr.String(), "Data Location")
}

func TestRender_TotalFailure(t *testing.T) {
	dir := renderFixture(t)
	cmd, stdout, _ := newTestCmd(t)
	cmd.SetArgs([]string{"render", "--quiet", filepath.Join(dir, "broken.yaml")})

	requireExitCode(t, cmd.Execute(), ExitTotalFailure)
	assert.Equal(t, 2, strings.Count(stdout.String(), `<div class="rpw-error">`))
}

func TestRender_Widget(t *testing.T) {
	dir := renderFixture(t)
	cmd, stdout, _ := newTestCmd(t)
	cmd.SetArgs([]string{"render", "-q", "--widget", "table", filepath.Join(dir, "partial.yaml")})

	require.NoError(t, cmd.Execute())
	assert.True(t, strings.HasPrefix(stdout.String(), `<table class="rpw-table-content">`))

	cmd, _, _ = newTestCmd(t)
	cmd.SetArgs([]string{"render", "--widget", "nope", filepath.Join(dir, "partial.yaml")})
	ece := requireExitCode(t, cmd.Execute(), ExitInvalidArgs)
	assert.Contains(t, ece.Error(), `no widget "nope"`)
}

func TestRender_OutputFile(t *testing.T) {
	dir := renderFixture(t)
	out := filepath.Join(dir, "out.html")
	cmd, stdout, _ := newTestCmd(t)
	cmd.SetArgs([]string{"render", "-q", "--engine", "svg", "-o", out, filepath.Join(dir, "ok.yaml")})

	require.NoError(t, cmd.Execute())
	assert.Empty(t, stdout.String())
	data, err := os.ReadFile(out) //nolint:gosec // test path
	require.NoError(t, err)
	assert.Contains(t, string(data), "<title>Render test</title>")
}

func TestRender_OutputCreateFails(t *testing.T) {
	dir := renderFixture(t)
	withFS(t, &testable.MockFileSystem{
		CreateFn: func(string) (io.WriteCloser, error) { return nil, errors.New("read-only file system") },
	})
	cmd, _, _ := newTestCmd(t)
	cmd.SetArgs([]string{"render", "-o", "/x/out.html", filepath.Join(dir, "ok.yaml")})

	ece := requireExitCode(t, cmd.Execute(), ExitInvalidArgs)
	assert.Contains(t, ece.Error(), "read-only file system")
}

func TestRender_InvalidInput(t *testing.T) {
	dir := renderFixture(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing page", []string{"render", filepath.Join(dir, "nope.yaml")}, "cannot load page"},
		{"bad extension", []string{"render", filepath.Join(dir, "data", "bugs.csv")}, "unsupported page file extension"},
		{"bad engine", []string{"render", "--engine", "gnuplot", filepath.Join(dir, "ok.yaml")}, "unknown chart engine"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _, _ := newTestCmd(t)
			cmd.SetArgs(tt.args)
			ece := requireExitCode(t, cmd.Execute(), ExitInvalidArgs)
			assert.Contains(t, ece.Error(), tt.want)
		})
	}
}

func TestRender_RequiresPageArg(t *testing.T) {
	cmd, _, _ := newTestCmd(t)
	cmd.SetArgs([]string{"render"})
	assert.Error(t, cmd.Execute())
}
