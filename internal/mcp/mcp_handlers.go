package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/roneystein/structured-content-tools/core/transitions"
	"github.com/roneystein/structured-content-tools/core/worktime"
	"github.com/roneystein/structured-content-tools/internal/contract"
	"github.com/roneystein/structured-content-tools/internal/javatime"
	"github.com/roneystein/structured-content-tools/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) handleComputeWorkingTime(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if v := request.GetInt("start_hour", 0); v > 0 {
		cfg.Profile.StartHour = v
	}
	if v := request.GetInt("end_hour", 0); v > 0 {
		cfg.Profile.EndHour = v
	}
	if v := request.GetInt("hours_per_day", 0); v > 0 {
		cfg.Profile.HoursPerDay = v
	}
	if err := cfg.Profile.Validate(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid working-hours profile: %v", err)), nil
	}

	start, err := javatime.Parse(request.GetString("start", ""), cfg.DateFormat)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid start: %v", err)), nil
	}
	end, err := javatime.Parse(request.GetString("end", ""), cfg.DateFormat)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid end: %v", err)), nil
	}

	result, err := worktime.Compute(start, end, cfg.Profile)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("computation failed: %v", err)), nil
	}

	payload := map[string]any{
		"total_minutes":   result.TotalMinutes,
		"working_minutes": result.WorkingMinutes,
		"working_hours":   result.WorkingHoursRoundUp(cfg.Profile.RoundThreshold),
	}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleEnrichDocument(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if tf := request.GetString("target_field", ""); tf != "" {
		cfg.TargetField = tf
	}
	prune := request.GetBool("remove_non_status_items", cfg.RemoveNonStatus)

	docJSON := request.GetString("document", "")
	if docJSON == "" {
		return mcp.NewToolResultError("document is required"), nil
	}
	var doc schema.Document
	if err := json.Unmarshal([]byte(docJSON), &doc); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid document JSON: %v", err)), nil
	}

	walker, err := transitions.New("mcp", transitions.Config{
		TargetField:      cfg.TargetField,
		CreatedField:     cfg.CreatedField,
		ChangelogField:   cfg.ChangelogField,
		IssueKeyField:    cfg.IssueKeyField,
		IssueTypeField:   cfg.IssueTypeField,
		ProjectNameField: cfg.ProjectNameField,
		DateFormat:       cfg.DateFormat,
		RemoveNonStatus:  prune,
		Profile:          cfg.Profile,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid enrichment settings: %v", err)), nil
	}

	rep := &contract.CollectingReporter{}
	enriched, stats := walker.Apply(doc, rep)

	payload := map[string]any{
		"document":    enriched,
		"transitions": len(stats.Transitions),
		"warnings":    rep.Warnings(),
	}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRunStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.mgr == nil {
		return mcp.NewToolResultError("run tracking is not initialized"), nil
	}
	store := h.mgr.GetRunStore()
	if store == nil {
		return mcp.NewToolResultError("run tracking is not initialized"), nil
	}

	status, err := store.GetStatus()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get store status: %v", err)), nil
	}

	payload := map[string]any{
		"backend":           status.Backend,
		"connected":         status.Connected,
		"total_runs":        status.TotalRuns,
		"last_run_id":       status.LastRunID,
		"total_transitions": status.TotalTransitions,
		"table_sizes":       status.TableSizes,
	}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}
