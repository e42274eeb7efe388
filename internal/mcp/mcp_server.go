// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/roneystein/structured-content-tools/internal/contract"
)

// NewMCPServer initializes and configures the sct MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Structured Content Tools Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: compute_working_time ---
	s.AddTool(mcp.NewTool("compute_working_time",
		mcp.WithDescription("Compute the business-hours duration between two timestamps."),
		mcp.WithString("start", mcp.Description("Start timestamp, in the configured date format."), mcp.Required()),
		mcp.WithString("end", mcp.Description("End timestamp, in the configured date format."), mcp.Required()),
		mcp.WithNumber("start_hour", mcp.Description("Opening hour of the working day (0-23).")),
		mcp.WithNumber("end_hour", mcp.Description("Closing hour of the working day (0-23).")),
		mcp.WithNumber("hours_per_day", mcp.Description("Working hours credited per full day.")),
	), h.handleComputeWorkingTime)

	// --- 2. Tool: enrich_document ---
	s.AddTool(mcp.NewTool("enrich_document",
		mcp.WithDescription("Walk a JIRA export document's change history and write time-in-status durations into its status items."),
		mcp.WithString("document", mcp.Description("The document as a JSON object string."), mcp.Required()),
		mcp.WithString("target_field", mcp.Description("Dotted path written into each status item. Defaults to the configured target field.")),
		mcp.WithBoolean("remove_non_status_items", mcp.Description("Prune non-status items from each history entry.")),
	), h.handleEnrichDocument)

	// --- 3. Tool: get_run_status ---
	s.AddTool(mcp.NewTool("get_run_status",
		mcp.WithDescription("Report the state of the enrichment run tracking store."),
	), h.handleGetRunStatus)

	return s
}

// StartMCPServer starts the sct MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
