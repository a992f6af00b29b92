package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bikecast/bikecast/core"
	"github.com/bikecast/bikecast/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	svc     *core.Service
	mgr     contract.HistoryManager
}

func (h *toolHandler) handlePredictRentals(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	attrs := request.GetArguments()
	if attrs == nil {
		attrs = map[string]any{}
	}

	out, enc := h.svc.PredictExplained(attrs)
	if !out.OK() {
		return mcp.NewToolResultError(out.Error), nil
	}

	enriched := core.Enrich(out.Result, enc, nil)
	jsonData, _ := json.MarshalIndent(enriched, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleDescribeModel(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	desc := h.svc.Predictor().Table().Describe(h.baseCfg.Scaling)
	jsonData, _ := json.MarshalIndent(desc, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleHistoryStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.mgr == nil {
		return mcp.NewToolResultError("prediction history is not configured"), nil
	}
	store := h.mgr.GetHistoryStore()
	if store == nil {
		return mcp.NewToolResultError("prediction history is not configured"), nil
	}

	status, err := store.GetStatus()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history status failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(status, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
