// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Mida-Energy/report-generator/internal/contract"
	"github.com/Mida-Energy/report-generator/internal/scheduler"
)

// NewMCPServer initializes and configures the report generator MCP server
// without starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, sched *scheduler.Scheduler, cat contract.Catalog) *server.MCPServer {
	s := server.NewMCPServer(
		"Mida Report Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		sched:   sched,
		catalog: cat,
	}

	// --- 1. Tool: generate_report ---
	s.AddTool(mcp.NewTool("generate_report",
		mcp.WithDescription("Run one report generation cycle: collect telemetry, analyze, render the PDF and catalog it. Fails when a cycle is already in progress."),
	), h.handleGenerateReport)

	// --- 2. Tool: list_reports ---
	s.AddTool(mcp.NewTool("list_reports",
		mcp.WithDescription("List cataloged reports, most recent first."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of records returned.")),
		mcp.WithString("status", mcp.Description("Only return records with this status."), mcp.Enum("pending", "completed", "failed")),
	), h.handleListReports)

	// --- 3. Tool: report_status ---
	s.AddTool(mcp.NewTool("report_status",
		mcp.WithDescription("Probe the history catalog and the scheduler state."),
	), h.handleReportStatus)

	return s
}

// StartMCPServer starts the report generator MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, sched *scheduler.Scheduler, cat contract.Catalog) error {
	s := NewMCPServer(baseCfg, sched, cat)
	return server.ServeStdio(s)
}
