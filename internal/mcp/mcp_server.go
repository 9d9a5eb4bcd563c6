// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/cfudash/fundboard/internal/contract"
	"github.com/cfudash/fundboard/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// datasetNames lists every registry name for enum arguments.
func datasetNames() []string {
	list := schema.ListDatasets()
	names := make([]string, len(list))
	for i, info := range list {
		names[i] = string(info.Name)
	}
	return names
}

// NewMCPServer initializes and configures the fundboard MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, fetcher contract.Fetcher, oil contract.OilSource) *server.MCPServer {
	s := server.NewMCPServer(
		"Fundboard Dashboard Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		fetcher: fetcher,
		oil:     oil,
	}
	names := datasetNames()

	// --- 1. Tool: list_datasets ---
	s.AddTool(mcp.NewTool("list_datasets",
		mcp.WithDescription("List every dataset the dashboard backend serves, with its API path."),
	), h.handleListDatasets)

	// --- 2. Tool: get_dataset ---
	s.AddTool(mcp.NewTool("get_dataset",
		mcp.WithDescription("Fetch one dataset as a JSON array of records."),
		mcp.WithString("name", mcp.Description("Dataset name."), mcp.Required(), mcp.Enum(names...)),
	), h.handleGetDataset)

	// --- 3. Tool: get_histogram ---
	s.AddTool(mcp.NewTool("get_histogram",
		mcp.WithDescription("Bin a numeric column of a dataset into an equal-width histogram."),
		mcp.WithString("dataset", mcp.Description("Dataset name. Defaults to 'deposited_column'."), mcp.Enum(names...)),
		mcp.WithString("column", mcp.Description("Numeric column to bin. Defaults to the deposited amount.")),
		mcp.WithNumber("bins", mcp.Description("Number of bins. Defaults to 20.")),
	), h.handleGetHistogram)

	// --- 4. Tool: get_aligned_series ---
	s.AddTool(mcp.NewTool("get_aligned_series",
		mcp.WithDescription("Look up values from one dataset in the key order of another. Missing keys get 0. Defaults to SDG counts in contributor order."),
		mcp.WithString("keys_dataset", mcp.Description("Dataset providing the key order."), mcp.Enum(names...)),
		mcp.WithString("key_column", mcp.Description("Column of keys_dataset holding the keys.")),
		mcp.WithString("values_dataset", mcp.Description("Dataset providing the values."), mcp.Enum(names...)),
		mcp.WithString("match_column", mcp.Description("Column of values_dataset matched against the keys.")),
		mcp.WithString("value_column", mcp.Description("Column of values_dataset holding the values.")),
	), h.handleGetAlignedSeries)

	// --- 5. Tool: get_ndc_points ---
	s.AddTool(mcp.NewTool("get_ndc_points",
		mcp.WithDescription("NDC status points per country, sorted ascending, with color buckets."),
		mcp.WithBoolean("with_oil", mcp.Description("Also return oil production aligned to the same country order.")),
	), h.handleGetNDCPoints)

	return s
}

// StartMCPServer starts the fundboard MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, fetcher contract.Fetcher, oil contract.OilSource) error {
	s := NewMCPServer(baseCfg, fetcher, oil)
	return server.ServeStdio(s)
}
