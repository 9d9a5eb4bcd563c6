package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cfudash/fundboard/core"
	"github.com/cfudash/fundboard/internal/contract"
	"github.com/cfudash/fundboard/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	fetcher contract.Fetcher
	oil     contract.OilSource
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListDatasets(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(schema.ListDatasets())
}

func (h *toolHandler) handleGetDataset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	name := schema.DatasetName(request.GetString("name", ""))
	if err := contract.ValidateDatasetName(name); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid dataset: %v", err)), nil
	}

	ds, _, err := core.GetDatasetResult(core.WithSuppressHeader(ctx), cfg, h.fetcher, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}
	if ds == nil {
		ds = schema.Dataset{}
	}
	return jsonResult(ds)
}

func (h *toolHandler) handleGetHistogram(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Dataset = schema.DepositedColumn
	cfg.Column = schema.ColDeposited
	cfg.Bins = schema.DefaultBinCount
	if d := request.GetString("dataset", ""); d != "" {
		cfg.Dataset = schema.DatasetName(d)
	}
	if c := request.GetString("column", ""); c != "" {
		cfg.Column = c
	}
	if b := request.GetInt("bins", 0); b != 0 {
		cfg.Bins = b
	}

	if err := contract.ValidateDatasetName(cfg.Dataset); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid dataset: %v", err)), nil
	}
	if cfg.Bins < 1 || cfg.Bins > contract.MaxBinCount {
		return mcp.NewToolResultError(fmt.Sprintf("invalid bins: must be between 1 and %d", contract.MaxBinCount)), nil
	}

	hist, _, err := core.GetHistogramResult(core.WithSuppressHeader(ctx), cfg, h.fetcher)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("histogram failed: %v", err)), nil
	}
	if hist == nil {
		return mcp.NewToolResultError(fmt.Sprintf("histogram failed: column %q has no values", cfg.Column)), nil
	}
	return jsonResult(hist)
}

func (h *toolHandler) handleGetAlignedSeries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	req := core.SDGAlignment
	if v := request.GetString("keys_dataset", ""); v != "" {
		req.KeysDataset = schema.DatasetName(v)
	}
	if v := request.GetString("key_column", ""); v != "" {
		req.KeyColumn = v
	}
	if v := request.GetString("values_dataset", ""); v != "" {
		req.ValuesDataset = schema.DatasetName(v)
	}
	if v := request.GetString("match_column", ""); v != "" {
		req.MatchColumn = v
	}
	if v := request.GetString("value_column", ""); v != "" {
		req.ValueColumn = v
	}

	aligned, _, err := core.GetAlignedResult(core.WithSuppressHeader(ctx), cfg, h.fetcher, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("alignment failed: %v", err)), nil
	}
	return jsonResult(aligned)
}

func (h *toolHandler) handleGetNDCPoints(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.WithOil = request.GetBool("with_oil", false)

	views, _, err := core.GetNDCResult(core.WithSuppressHeader(ctx), cfg, h.fetcher, h.oil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}
	return jsonResult(views)
}
