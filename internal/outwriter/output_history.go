package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/Mida-Energy/report-generator/internal/contract"
	"github.com/Mida-Energy/report-generator/schema"
)

const dateTimeFormat = "2006-01-02 15:04:05"

// PrintHistory outputs catalog records, dispatching based on the output
// format configured. Records are expected most recent first; only the first
// ResultLimit entries are shown.
func PrintHistory(records []schema.ReportRecord, cfg *contract.Config) error {
	if cfg.ResultLimit > 0 && len(records) > cfg.ResultLimit {
		records = records[:cfg.ResultLimit]
	}

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeHistoryJSONResults(records, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeHistoryCSVResults(records, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryTable(records, cfg, w)
		}, "Wrote table")
	}
	return nil
}

// writeHistoryJSONResults handles opening the file and calling the JSON writer.
func writeHistoryJSONResults(records []schema.ReportRecord, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForHistory(w, records)
	}, "Wrote JSON")
}

// writeHistoryCSVResults handles opening the file and calling the CSV writer.
func writeHistoryCSVResults(records []schema.ReportRecord, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForHistory(csvWriter, records)
	}, "Wrote CSV")
}

// writeHistoryTable generates and writes the human-readable table.
func writeHistoryTable(records []schema.ReportRecord, cfg *contract.Config, writer io.Writer) error {
	if _, err := fmt.Fprintln(writer, headerText("📋", "Report History", cfg)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	table.Header([]string{"Rank", "ID", "Generated", "Devices", "Status", "Size", "Warning"})

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	deviceWidth := GetMaxTableDeviceWidth(cfg)
	var data [][]string
	for i, r := range records {
		row := []string{
			strconv.Itoa(i + 1),
			r.ID,
			r.GeneratedAt.Format(dateTimeFormat),
			joinDevices(r.DeviceIDs, deviceWidth),
			statusLabel(r.Status, cfg),
			formatBytes(r.SizeBytes),
			contract.TruncateText(r.Warning, 40),
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Showing %d reports\n", len(records)); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForHistory writes catalog records in CSV format.
func writeCSVResultsForHistory(w *csv.Writer, records []schema.ReportRecord) error {
	header := []string{
		"rank",
		"id",
		"generated_at",
		"devices",
		"status",
		"size_bytes",
		"warning",
		"artifact_path",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, r := range records {
		rec := []string{
			strconv.Itoa(i + 1),
			r.ID,
			r.GeneratedAt.Format(time.RFC3339),
			strings.Join(r.DeviceIDs, "|"),
			string(r.Status),
			strconv.FormatInt(r.SizeBytes, 10),
			r.Warning,
			r.ArtifactPath,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForHistory writes catalog records in JSON format.
func writeJSONResultsForHistory(w io.Writer, records []schema.ReportRecord) error {
	// 1. Prepare the data structure for JSON with rank added
	type JSONReportRecord struct {
		Rank         int       `json:"rank"`
		ID           string    `json:"id"`
		DeviceIDs    []string  `json:"device_ids"`
		GeneratedAt  time.Time `json:"generated_at"`
		Status       string    `json:"status"`
		SizeBytes    int64     `json:"size_bytes"`
		Warning      string    `json:"warning,omitempty"`
		ArtifactPath string    `json:"artifact_path,omitempty"`
	}

	output := make([]JSONReportRecord, len(records))
	for i, r := range records {
		output[i] = JSONReportRecord{
			Rank:         i + 1,
			ID:           r.ID,
			DeviceIDs:    r.DeviceIDs,
			GeneratedAt:  r.GeneratedAt,
			Status:       string(r.Status),
			SizeBytes:    r.SizeBytes,
			Warning:      r.Warning,
			ArtifactPath: r.ArtifactPath,
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}

// PrintRecordDetail outputs one catalog record as a key/value view. JSON
// output reuses the history encoder with a single entry.
func PrintRecordDetail(record schema.ReportRecord, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeHistoryJSONResults([]schema.ReportRecord{record}, cfg)
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		rows := [][2]string{
			{"ID", record.ID},
			{"Generated", record.GeneratedAt.Format(dateTimeFormat)},
			{"Devices", strings.Join(record.DeviceIDs, ", ")},
			{"Status", statusLabel(record.Status, cfg)},
			{"Size", formatBytes(record.SizeBytes)},
			{"Artifact", record.ArtifactPath},
		}
		if record.Warning != "" {
			rows = append(rows, [2]string{"Warning", record.Warning})
		}
		for _, row := range rows {
			if _, err := fmt.Fprintf(w, "%-10s %s\n", row[0]+":", row[1]); err != nil {
				return err
			}
		}
		return nil
	}, "Wrote record")
}
