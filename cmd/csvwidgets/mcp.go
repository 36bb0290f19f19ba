// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/davetashner/csvwidgets/internal/mcpserver"
)

// mcpCmd is the parent command for MCP-related subcommands.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server commands",
	Long:  "Commands for running csvwidgets as an MCP server, exposing widget rendering tools to AI agents.",
}

// mcpServeCmd runs the MCP server over stdio.
var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `Start an MCP server on stdin/stdout, exposing the widget tools:
  - list_widgets:  List widget types and their parameters
  - render_widget: Render one widget of a page to HTML
  - render_page:   Render a whole page to an HTML document

Pages are looked up by name in --pages-dir (or CSVWIDGETS_PAGES_DIR).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, catalog, err := loadServerSettings()
		if err != nil {
			return err
		}
		dir, err := mcpserver.ResolvePagesDir(catalog.Dir)
		if err != nil {
			return exitError(ExitInvalidArgs, "csvwidgets: %v", err)
		}
		catalog.Dir = dir
		return mcpserver.Run(contextOrBackground(cmd), Version, catalog, &mcp.StdioTransport{})
	},
}

func init() {
	mcpServeCmd.Flags().StringVar(&serveConfig, "config", "", "server config file (YAML)")
	mcpServeCmd.Flags().StringVar(&servePagesDir, "pages-dir", "", "directory holding page files")
	mcpCmd.AddCommand(mcpServeCmd)
}
