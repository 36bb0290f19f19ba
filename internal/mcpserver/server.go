// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davetashner/csvwidgets/internal/page"
)

// New creates a new MCP server with the widget tools registered. Pages are
// looked up in catalog.
func New(version string, catalog *page.Catalog) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "csvwidgets",
		Title:   "csvwidgets: CSV tables and trend charts",
		Version: version,
	}, nil)

	registerTools(server, &tools{catalog: catalog})
	return server
}

// Run creates an MCP server and runs it on the given transport.
// It blocks until the client disconnects or the context is cancelled.
func Run(ctx context.Context, version string, catalog *page.Catalog, transport mcp.Transport) error {
	server := New(version, catalog)
	return server.Run(ctx, transport)
}
