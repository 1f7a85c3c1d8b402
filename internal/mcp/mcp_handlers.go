package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Mida-Energy/report-generator/internal/contract"
	"github.com/Mida-Energy/report-generator/internal/scheduler"
	"github.com/Mida-Energy/report-generator/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	sched   *scheduler.Scheduler
	catalog contract.Catalog
}

func (h *toolHandler) handleGenerateReport(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	record, err := h.sched.TriggerNow(ctx)
	if err != nil {
		if errors.Is(err, scheduler.ErrAlreadyInProgress) {
			return mcp.NewToolResultError("a generation cycle is already in progress"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("generation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(record, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListReports(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records, err := h.catalog.List()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("catalog listing failed: %v", err)), nil
	}

	if s := request.GetString("status", ""); s != "" {
		filtered := records[:0]
		for _, r := range records {
			if r.Status == schema.ReportStatus(s) {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}

	limit := request.GetInt("limit", 0)
	if limit <= 0 {
		limit = h.baseCfg.ResultLimit
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	jsonData, _ := json.MarshalIndent(records, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleReportStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := h.catalog.GetStatus()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("catalog status failed: %v", err)), nil
	}

	type probe struct {
		Backend       string              `json:"backend"`
		Connected     bool                `json:"connected"`
		TotalReports  int64               `json:"total_reports"`
		LastReportAt  time.Time           `json:"last_report_at,omitzero"`
		ArtifactsDir  string              `json:"artifacts_dir"`
		State         scheduler.State     `json:"state"`
		LastRecordID  string              `json:"last_record_id,omitempty"`
		LastStatus    schema.ReportStatus `json:"last_status,omitempty"`
		LastError     string              `json:"last_error,omitempty"`
		LastCompleted time.Time           `json:"last_completed,omitzero"`
		NextFire      time.Time           `json:"next_fire,omitzero"`
	}

	health := h.sched.Health()
	jsonData, _ := json.MarshalIndent(probe{
		Backend:       status.Backend,
		Connected:     status.Connected,
		TotalReports:  status.TotalReports,
		LastReportAt:  status.LastReportAt,
		ArtifactsDir:  status.ArtifactsDir,
		State:         health.State,
		LastRecordID:  health.LastRecordID,
		LastStatus:    health.LastStatus,
		LastError:     health.LastError,
		LastCompleted: health.LastCompleted,
		NextFire:      health.NextFire,
	}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
