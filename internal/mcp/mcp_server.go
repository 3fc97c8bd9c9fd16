// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/willshacklett/godscore/internal/contract"
)

// NewMCPServer initializes and configures the GodScore MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, led contract.Ledger) *server.MCPServer {
	s := server.NewMCPServer(
		"GodScore Gate Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		led:     led,
	}

	// --- 1. Tool: evaluate_change ---
	s.AddTool(mcp.NewTool("evaluate_change",
		mcp.WithDescription("Score a described change and run it through the survivability gate."),
		mcp.WithNumber("added_lines", mcp.Description("Lines added by the change.")),
		mcp.WithNumber("removed_lines", mcp.Description("Lines removed by the change.")),
		mcp.WithString("files", mcp.Description("Comma-separated list of touched paths.")),
		mcp.WithString("message", mcp.Description("Commit message of the change.")),
		mcp.WithBoolean("tests_detected", mcp.Description("Whether the changed set carries test signals.")),
		mcp.WithString("score", mcp.Description("Manual score override ('auto' or a number on either scale).")),
		mcp.WithString("threshold", mcp.Description("Minimum passing score on either scale. Defaults to 0.80.")),
		mcp.WithString("mode", mcp.Description("Policy mode (inform, enforce). Defaults to 'inform'."), mcp.Enum("inform", "enforce")),
		mcp.WithString("lineage", mcp.Description("History axis for regression comparison.")),
		mcp.WithString("identity", mcp.Description("Run identity recorded in the ledger.")),
	), h.handleEvaluateChange)

	// --- 2. Tool: get_history ---
	s.AddTool(mcp.NewTool("get_history",
		mcp.WithDescription("Fetch recent ledger records for a lineage, oldest first."),
		mcp.WithString("lineage", mcp.Description("Lineage to read. Defaults to the configured lineage.")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of records to return.")),
	), h.handleGetHistory)

	// --- 3. Tool: get_feature_info ---
	s.AddTool(mcp.NewTool("get_feature_info",
		mcp.WithDescription("Describe the change-signal features and how each one affects GV."),
	), h.handleGetFeatureInfo)

	return s
}

// StartMCPServer starts the GodScore MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, led contract.Ledger) error {
	s := NewMCPServer(baseCfg, led)
	return server.ServeStdio(s)
}
