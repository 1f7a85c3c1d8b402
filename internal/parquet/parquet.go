// Package parquet exports catalog history and telemetry windows to Parquet
// files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/Mida-Energy/report-generator/schema"
)

// ReportRow is the flat Parquet projection of a catalog record.
type ReportRow struct {
	// ReportID is the unique identifier of the generation run
	ReportID string `parquet:"report_id,snappy"`

	// DeviceIDs is the comma-joined list of devices covered by the report
	DeviceIDs string `parquet:"device_ids,snappy"`

	// GeneratedAt is when the report was produced (nanosecond TIMESTAMP)
	GeneratedAt time.Time `parquet:"generated_at,snappy"`

	// Status is the terminal state of the run (pending, completed, failed)
	Status string `parquet:"status,snappy"`

	// SizeBytes is the size of the PDF artifact, zero for failed runs
	SizeBytes int64 `parquet:"size_bytes,snappy"`

	// Warning carries the degradation notes attached at finalization (nullable)
	Warning *string `parquet:"warning,optional,snappy"`
}

// SampleRow is the flat Parquet projection of one telemetry sample.
type SampleRow struct {
	// DeviceID identifies the reporting meter
	DeviceID string `parquet:"device_id,snappy"`

	// Timestamp is when the sample was taken (nanosecond TIMESTAMP)
	Timestamp time.Time `parquet:"timestamp,snappy"`

	// ActiveEnergy is the cumulative energy register in kWh
	ActiveEnergy float64 `parquet:"active_energy_kwh,snappy"`

	// ActivePower is the instantaneous power draw in watts
	ActivePower float64 `parquet:"active_power_w,snappy"`

	// Voltage is the measured RMS voltage, zero when the meter omits it
	Voltage float64 `parquet:"voltage_v,snappy"`

	// Current is the measured RMS current, zero when the meter omits it
	Current float64 `parquet:"current_a,snappy"`
}

// WriteReportRowsParquet writes catalog rows to a Parquet file. The schema
// is inferred from the ReportRow struct tags.
func WriteReportRowsParquet(data []ReportRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[ReportRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// WriteSampleRowsParquet writes telemetry rows to a Parquet file. The schema
// is inferred from the SampleRow struct tags.
func WriteSampleRowsParquet(data []SampleRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[SampleRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// ConvertReportRecords flattens catalog records into Parquet rows.
func ConvertReportRecords(records []schema.ReportRecord) []ReportRow {
	result := make([]ReportRow, len(records))
	for i, record := range records {
		row := ReportRow{
			ReportID:    record.ID,
			DeviceIDs:   strings.Join(record.DeviceIDs, ","),
			GeneratedAt: record.GeneratedAt,
			Status:      string(record.Status),
			SizeBytes:   record.SizeBytes,
		}
		if record.Warning != "" {
			warning := record.Warning
			row.Warning = &warning
		}
		result[i] = row
	}
	return result
}

// ConvertDeviceSeries flattens a fetched telemetry window into Parquet rows,
// one row per sample, in window order.
func ConvertDeviceSeries(window []schema.DeviceSeries) []SampleRow {
	var result []SampleRow
	for _, series := range window {
		for _, point := range series.Points {
			result = append(result, SampleRow{
				DeviceID:     series.DeviceID,
				Timestamp:    point.Timestamp,
				ActiveEnergy: point.ActiveEnergy,
				ActivePower:  point.ActivePower,
				Voltage:      point.Voltage,
				Current:      point.Current,
			})
		}
	}
	return result
}
