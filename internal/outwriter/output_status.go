package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/Mida-Energy/report-generator/internal/contract"
	"github.com/Mida-Energy/report-generator/internal/scheduler"
	"github.com/Mida-Energy/report-generator/schema"
)

// PrintStatus outputs the catalog status and, when available, the scheduler
// health probe. The health pointer is nil for one-shot invocations that have
// no scheduler running.
func PrintStatus(status schema.CatalogStatus, health *scheduler.Health, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForStatus(w, status, health)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeCSVResultsForStatus(csvWriter, status, health)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatusTable(status, health, cfg, w)
		}, "Wrote table")
	}
}

// statusRows flattens the probe into ordered key/value pairs shared by the
// table and CSV writers.
func statusRows(status schema.CatalogStatus, health *scheduler.Health) [][2]string {
	rows := [][2]string{
		{"Backend", status.Backend},
		{"Connected", strconv.FormatBool(status.Connected)},
		{"Total reports", strconv.FormatInt(status.TotalReports, 10)},
		{"Artifacts dir", status.ArtifactsDir},
	}
	if !status.LastReportAt.IsZero() {
		rows = append(rows, [2]string{"Last report", status.LastReportAt.Format(dateTimeFormat)})
	}
	if health != nil {
		rows = append(rows,
			[2]string{"Scheduler state", string(health.State)},
			[2]string{"Last record", health.LastRecordID},
			[2]string{"Last status", string(health.LastStatus)},
		)
		if health.LastError != "" {
			rows = append(rows, [2]string{"Last error", health.LastError})
		}
		if !health.NextFire.IsZero() {
			rows = append(rows, [2]string{"Next fire", health.NextFire.Format(dateTimeFormat)})
		}
	}
	return rows
}

// writeStatusTable generates and writes the human-readable probe table.
func writeStatusTable(status schema.CatalogStatus, health *scheduler.Health, cfg *contract.Config, writer io.Writer) error {
	if _, err := fmt.Fprintln(writer, headerText("🩺", "Catalog Status", cfg)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Field", "Value"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, row := range statusRows(status, health) {
		data = append(data, []string{row[0], row[1]})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeCSVResultsForStatus writes the probe in CSV format.
func writeCSVResultsForStatus(w *csv.Writer, status schema.CatalogStatus, health *scheduler.Health) error {
	if err := w.Write([]string{"field", "value"}); err != nil {
		return err
	}
	for _, row := range statusRows(status, health) {
		if err := w.Write([]string{row[0], row[1]}); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForStatus writes the probe in JSON format.
func writeJSONResultsForStatus(w io.Writer, status schema.CatalogStatus, health *scheduler.Health) error {
	type JSONHealth struct {
		State         string    `json:"state"`
		LastRecordID  string    `json:"last_record_id,omitempty"`
		LastStatus    string    `json:"last_status,omitempty"`
		LastError     string    `json:"last_error,omitempty"`
		LastCompleted time.Time `json:"last_completed,omitzero"`
		NextFire      time.Time `json:"next_fire,omitzero"`
	}
	type JSONStatus struct {
		Backend      string      `json:"backend"`
		Connected    bool        `json:"connected"`
		TotalReports int64       `json:"total_reports"`
		LastReportAt time.Time   `json:"last_report_at,omitzero"`
		ArtifactsDir string      `json:"artifacts_dir"`
		Scheduler    *JSONHealth `json:"scheduler,omitempty"`
	}

	output := JSONStatus{
		Backend:      status.Backend,
		Connected:    status.Connected,
		TotalReports: status.TotalReports,
		LastReportAt: status.LastReportAt,
		ArtifactsDir: status.ArtifactsDir,
	}
	if health != nil {
		output.Scheduler = &JSONHealth{
			State:         string(health.State),
			LastRecordID:  health.LastRecordID,
			LastStatus:    string(health.LastStatus),
			LastError:     health.LastError,
			LastCompleted: health.LastCompleted,
			NextFire:      health.NextFire,
		}
	}
	return writeJSON(w, output)
}
