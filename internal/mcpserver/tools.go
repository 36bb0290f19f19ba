// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davetashner/csvwidgets/internal/page"
	"github.com/davetashner/csvwidgets/internal/param"
	"github.com/davetashner/csvwidgets/internal/widget"
)

// ListWidgetsInput is the input schema for the list_widgets tool.
type ListWidgetsInput struct{}

// RenderWidgetInput is the input schema for the render_widget tool.
type RenderWidgetInput struct {
	Page   string `json:"page" jsonschema:"Page name (file name without extension) in the pages directory"`
	Widget string `json:"widget" jsonschema:"Widget id within the page"`
}

// RenderPageInput is the input schema for the render_page tool.
type RenderPageInput struct {
	Page string `json:"page" jsonschema:"Page name (file name without extension) in the pages directory"`
}

// boolPtr returns a pointer to a bool.
func boolPtr(b bool) *bool { return &b }

type tools struct {
	catalog *page.Catalog
}

func readOnly() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:    true,
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all widget tools to the MCP server.
func registerTools(server *mcp.Server, t *tools) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_widgets",
		Description: "List the available widget types with their labels, tags and parameters.",
		Annotations: readOnly(),
	}, t.handleListWidgets)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "render_widget",
		Description: "Render one widget of a page definition to an HTML fragment. Configuration problems come back as a warning or error fragment.",
		Annotations: readOnly(),
	}, t.handleRenderWidget)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "render_page",
		Description: "Render every widget of a page definition into a standalone HTML document.",
		Annotations: readOnly(),
	}, t.handleRenderPage)
}

func (t *tools) handleListWidgets(_ context.Context, _ *mcp.CallToolRequest, _ ListWidgetsInput) (*mcp.CallToolResult, any, error) {
	var b strings.Builder
	for _, w := range widget.List() {
		fmt.Fprintf(&b, "%s: %s [%s]\n", w.Type(), w.Label(), strings.Join(w.Tags(), ", "))
		fmt.Fprintf(&b, "  %s\n", w.Details())
		writeParams(&b, w.Parameters().Children, "  ")
	}
	return textResult(b.String()), nil, nil
}

func (t *tools) handleRenderWidget(ctx context.Context, _ *mcp.CallToolRequest, input RenderWidgetInput) (*mcp.CallToolResult, any, error) {
	if input.Widget == "" {
		return nil, nil, fmt.Errorf("widget is required")
	}
	r, err := t.catalog.Open(input.Page)
	if err != nil {
		return nil, nil, err
	}
	res, err := r.RenderWidget(ctx, input.Widget)
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: res.HTML},
			&mcp.TextContent{Text: "state: " + res.State.String()},
		},
	}, nil, nil
}

func (t *tools) handleRenderPage(ctx context.Context, _ *mcp.CallToolRequest, input RenderPageInput) (*mcp.CallToolResult, any, error) {
	r, err := t.catalog.Open(input.Page)
	if err != nil {
		return nil, nil, err
	}
	doc, err := r.Render(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("render failed: %w", err)
	}
	var buf bytes.Buffer
	if err := doc.WriteHTML(&buf); err != nil {
		return nil, nil, err
	}
	ok, warnings, errs := doc.Counts()
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: buf.String()},
			&mcp.TextContent{Text: fmt.Sprintf("widgets: %d ok, %d warnings, %d errors", ok, warnings, errs)},
		},
	}, nil, nil
}

func writeParams(b *strings.Builder, defs []*param.Definition, indent string) {
	for _, d := range defs {
		fmt.Fprintf(b, "%s- %s (%s): %s", indent, d.ID, d.Kind, d.Label)
		if d.Default != "" {
			fmt.Fprintf(b, " [default %s]", d.Default)
		}
		b.WriteByte('\n')
		writeParams(b, d.Children, indent+"  ")
	}
}

func textResult(s string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: s}}}
}
