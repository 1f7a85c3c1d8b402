package mcp_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mida-Energy/report-generator/internal/contract"
	mcp_internal "github.com/Mida-Energy/report-generator/internal/mcp"
	"github.com/Mida-Energy/report-generator/internal/scheduler"
	"github.com/Mida-Energy/report-generator/schema"
)

// stubSource serves a fixed window, or nothing at all.
type stubSource struct {
	window []schema.DeviceSeries
}

func (s *stubSource) Fetch(_ context.Context, _ []string, _ schema.Period) ([]schema.DeviceSeries, error) {
	return s.window, nil
}

// stubRenderer emits a fixed artifact.
type stubRenderer struct{}

func (r *stubRenderer) Render(_ *schema.AnalysisResult, _ []schema.Recommendation, _ schema.ReportMetadata) ([]byte, []string, error) {
	return []byte("%PDF"), nil, nil
}

// stubCatalog keeps records in memory.
type stubCatalog struct {
	records []schema.ReportRecord
}

func (c *stubCatalog) Register(record *schema.ReportRecord, _ []byte) error {
	c.records = append([]schema.ReportRecord{*record}, c.records...)
	return nil
}

func (c *stubCatalog) Finalize(id string, status schema.ReportStatus, sizeBytes int64, warning string) error {
	for i := range c.records {
		if c.records[i].ID == id {
			c.records[i].Status = status
			c.records[i].SizeBytes = sizeBytes
			c.records[i].Warning = warning
		}
	}
	return nil
}

func (c *stubCatalog) List() ([]schema.ReportRecord, error) {
	return c.records, nil
}

func (c *stubCatalog) Get(id string) (schema.ReportRecord, error) {
	for _, r := range c.records {
		if r.ID == id {
			return r, nil
		}
	}
	return schema.ReportRecord{}, nil
}

func (c *stubCatalog) ReadArtifact(string) ([]byte, error) { return nil, nil }
func (c *stubCatalog) Delete(string) error                 { return nil }

func (c *stubCatalog) GetStatus() (schema.CatalogStatus, error) {
	return schema.CatalogStatus{Backend: "sqlite", Connected: true, TotalReports: int64(len(c.records))}, nil
}

func (c *stubCatalog) Close() error { return nil }

func stubWindow() []schema.DeviceSeries {
	base := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	points := make([]schema.TimeSeriesPoint, 6)
	for i := range points {
		points[i] = schema.TimeSeriesPoint{
			Timestamp:    base.Add(time.Duration(i) * time.Hour),
			ActiveEnergy: float64(i) * 0.5,
			ActivePower:  float64(100 + 50*i),
		}
	}
	return []schema.DeviceSeries{{DeviceID: "meter-1", Points: points}}
}

func baseConfig() *contract.Config {
	return &contract.Config{
		DeviceIDs:   []string{"meter-1"},
		StartTime:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC),
		ReportTitle: "Test Report",
		Interval:    time.Hour,
		ResultLimit: 25,
	}
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func TestMCPGenerateReport(t *testing.T) {
	cfg := baseConfig()
	cat := &stubCatalog{}
	sched := scheduler.New(cfg, &stubSource{window: stubWindow()}, &stubRenderer{}, cat)
	s := mcp_internal.NewMCPServer(cfg, sched, cat)

	res := callTool(t, s, "generate_report", nil)
	require.False(t, res.IsError)

	var record schema.ReportRecord
	text := res.Content[0].(mcp.TextContent).Text
	require.NoError(t, json.Unmarshal([]byte(text), &record))
	assert.Equal(t, schema.StatusCompleted, record.Status)
	assert.NotEmpty(t, record.ID)
}

func TestMCPGenerateReportNoData(t *testing.T) {
	cfg := baseConfig()
	cat := &stubCatalog{}
	sched := scheduler.New(cfg, &stubSource{}, &stubRenderer{}, cat)
	s := mcp_internal.NewMCPServer(cfg, sched, cat)

	res := callTool(t, s, "generate_report", nil)
	assert.True(t, res.IsError, "The response should indicate an error state")
	assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "generation failed")
}

func TestMCPListReports(t *testing.T) {
	cfg := baseConfig()
	base := time.Date(2025, 6, 9, 8, 0, 0, 0, time.UTC)
	cat := &stubCatalog{records: []schema.ReportRecord{
		{ID: "run-3", GeneratedAt: base.Add(2 * time.Hour), Status: schema.StatusCompleted},
		{ID: "run-2", GeneratedAt: base.Add(time.Hour), Status: schema.StatusFailed},
		{ID: "run-1", GeneratedAt: base, Status: schema.StatusCompleted},
	}}
	sched := scheduler.New(cfg, &stubSource{}, &stubRenderer{}, cat)
	s := mcp_internal.NewMCPServer(cfg, sched, cat)

	t.Run("limit", func(t *testing.T) {
		res := callTool(t, s, "list_reports", map[string]any{"limit": 2.0})
		require.False(t, res.IsError)

		var records []schema.ReportRecord
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &records))
		require.Len(t, records, 2)
		assert.Equal(t, "run-3", records[0].ID)
	})

	t.Run("status filter", func(t *testing.T) {
		res := callTool(t, s, "list_reports", map[string]any{"status": "failed"})
		require.False(t, res.IsError)

		var records []schema.ReportRecord
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &records))
		require.Len(t, records, 1)
		assert.Equal(t, "run-2", records[0].ID)
	})
}

func TestMCPReportStatus(t *testing.T) {
	cfg := baseConfig()
	cat := &stubCatalog{records: []schema.ReportRecord{{ID: "run-1"}}}
	sched := scheduler.New(cfg, &stubSource{}, &stubRenderer{}, cat)
	s := mcp_internal.NewMCPServer(cfg, sched, cat)

	res := callTool(t, s, "report_status", nil)
	require.False(t, res.IsError)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &parsed))
	assert.Equal(t, "sqlite", parsed["backend"])
	assert.Equal(t, float64(1), parsed["total_reports"])
	assert.Equal(t, "idle", parsed["state"])
}
