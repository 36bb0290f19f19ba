// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootHelp(t *testing.T) {
	cmd, stdout, _ := newTestCmd(t)
	cmd.SetArgs([]string{"--help"})
	require.NoError(t, cmd.Execute())

	out := stdout.String()
	assert.Contains(t, out, "renders dashboard widgets from CSV files")
	for _, sub := range []string{"render", "validate", "widgets", "init", "serve", "mcp", "version"} {
		assert.Contains(t, out, sub)
	}
}

func TestGlobalFlags(t *testing.T) {
	for _, name := range []string{"verbose", "quiet", "no-color"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
	v := rootCmd.PersistentFlags().ShorthandLookup("v")
	require.NotNil(t, v)
	assert.Equal(t, "verbose", v.Name)
	q := rootCmd.PersistentFlags().ShorthandLookup("q")
	require.NotNil(t, q)
	assert.Equal(t, "quiet", q.Name)
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "dev", Version)

	cmd, stdout, _ := newTestCmd(t)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "csvwidgets dev\n", stdout.String())
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		total, warnings, errs int
		want                  int
	}{
		{3, 0, 0, ExitOK},
		{0, 0, 0, ExitOK},
		{3, 1, 0, ExitPartialFailure},
		{3, 0, 2, ExitPartialFailure},
		{3, 0, 3, ExitTotalFailure},
		{2, 1, 1, ExitPartialFailure},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, exitCodeFor(tt.total, tt.warnings, tt.errs), "%+v", tt)
	}
}

func TestExitError_DefaultMessages(t *testing.T) {
	assert.Equal(t, "csvwidgets: some widgets did not render", exitError(ExitPartialFailure, "").Error())
	assert.Equal(t, "csvwidgets: all widgets failed", exitError(ExitTotalFailure, "").Error())
	assert.Equal(t, "csvwidgets: error", exitError(ExitInvalidArgs, "").Error())
	assert.Equal(t, "csvwidgets: bad x", exitError(ExitInvalidArgs, "csvwidgets: bad %s", "x").Error())
}

func TestServeHelp_ListsEnvironment(t *testing.T) {
	cmd, stdout, _ := newTestCmd(t)
	cmd.SetArgs([]string{"serve", "--help"})
	require.NoError(t, cmd.Execute())
	assert.True(t, strings.Contains(stdout.String(), "CSVWIDGETS_PAGES_DIR"))
	assert.Contains(t, stdout.String(), "/pages/:page/widgets/:id")
}
