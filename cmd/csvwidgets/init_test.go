// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/csvwidgets/internal/testable"
)

func TestInit_WritesSampleThatRenders(t *testing.T) {
	dir := t.TempDir()
	cmd, stdout, _ := newTestCmd(t)
	cmd.SetArgs([]string{"init", dir})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, stdout.String(), "created  "+filepath.Join(dir, "quality.yaml"))
	assert.Contains(t, stdout.String(), "created  "+filepath.Join(dir, "data", "bugs.csv"))

	cmd, _, _ = newTestCmd(t)
	cmd.SetArgs([]string{"validate", filepath.Join(dir, "quality.yaml")})
	require.NoError(t, cmd.Execute())

	cmd, out, _ := newTestCmd(t)
	cmd.SetArgs([]string{"render", "-q", filepath.Join(dir, "quality.yaml")})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Opened 24 bugs")
	assert.Contains(t, out.String(), "closed 24.")
}

func TestInit_SkipsExisting(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "quality.yaml", "title: mine\n")

	cmd, stdout, _ := newTestCmd(t)
	cmd.SetArgs([]string{"init", dir})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "skipped")
	data, err := os.ReadFile(filepath.Join(dir, "quality.yaml")) //nolint:gosec // test path
	require.NoError(t, err)
	assert.Equal(t, "title: mine\n", string(data))

	cmd, stdout, _ = newTestCmd(t)
	cmd.SetArgs([]string{"init", "--force", dir})
	require.NoError(t, cmd.Execute())
	assert.False(t, strings.Contains(stdout.String(), "skipped"))
	data, err = os.ReadFile(filepath.Join(dir, "quality.yaml")) //nolint:gosec // test path
	require.NoError(t, err)
	assert.Contains(t, string(data), "bugs-trend")
}

func TestInit_NotADirectory(t *testing.T) {
	file := writeTestFile(t, t.TempDir(), "f.txt", "x")
	cmd, _, _ := newTestCmd(t)
	cmd.SetArgs([]string{"init", file})
	requireExitCode(t, cmd.Execute(), ExitInvalidArgs)
}

func TestInit_WriteFails(t *testing.T) {
	withFS(t, &testable.MockFileSystem{
		WriteFileFn: func(string, []byte, os.FileMode) error { return errors.New("disk full") },
	})
	cmd, _, _ := newTestCmd(t)
	cmd.SetArgs([]string{"init", t.TempDir()})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
