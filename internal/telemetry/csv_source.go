// Package telemetry reads meter exports from disk and serves them as
// normalized device series.
package telemetry

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Mida-Energy/report-generator/internal/contract"
	"github.com/Mida-Energy/report-generator/schema"
)

// Recognized CSV column headers. Meter exports carry interval energy in Wh
// and average power in W per sampling interval.
const (
	colTimestamp = "timestamp"
	colEnergy    = "total_act_energy"
	colPower     = "avg_act_power"
	colVoltage   = "avg_voltage"
	colCurrent   = "avg_current"
)

// CSVSource reads emdata_*.csv meter exports from a directory. Each file
// holds one device's samples; the device ID is derived from the file name.
type CSVSource struct {
	dir string
}

// NewCSVSource returns a source reading from the given directory.
func NewCSVSource(dir string) *CSVSource {
	return &CSVSource{dir: dir}
}

// Fetch implements contract.TelemetrySource. Files that cannot be parsed are
// skipped with a warning; an unreadable directory or a directory without any
// usable file fails with ErrSourceUnavailable.
func (s *CSVSource) Fetch(ctx context.Context, deviceIDs []string, period schema.Period) ([]schema.DeviceSeries, error) {
	files, err := s.findDataFiles()
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]struct{}, len(deviceIDs))
	for _, id := range deviceIDs {
		wanted[id] = struct{}{}
	}

	var out []schema.DeviceSeries
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		deviceID := deviceIDFromFile(path)
		if len(wanted) > 0 {
			if _, ok := wanted[deviceID]; !ok {
				continue
			}
		}
		series, err := s.loadFile(path, deviceID, period)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping %s", filepath.Base(path)), err)
			continue
		}
		if len(series.Points) > 0 {
			out = append(out, series)
		}
	}

	sort.Slice(out, func(a, b int) bool { return out[a].DeviceID < out[b].DeviceID })
	return out, nil
}

// findDataFiles lists the CSV exports in the data directory, sorted by name.
func (s *CSVSource) findDataFiles() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", contract.ErrSourceUnavailable, s.dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		files = append(files, filepath.Join(s.dir, e.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no CSV files in %s", contract.ErrSourceUnavailable, s.dir)
	}
	sort.Strings(files)
	return files, nil
}

// loadFile parses one export into a device series limited to the period.
func (s *CSVSource) loadFile(path, deviceID string, period schema.Period) (schema.DeviceSeries, error) {
	series := schema.DeviceSeries{DeviceID: deviceID}

	f, err := os.Open(path)
	if err != nil {
		return series, err
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return series, fmt.Errorf("missing header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	tsIdx, ok := cols[colTimestamp]
	if !ok {
		return series, fmt.Errorf("no %q column", colTimestamp)
	}

	type rawRow struct {
		ts       time.Time
		energyWh float64
		powerW   float64
		hasPower bool
		voltage  float64
		current  float64
	}
	var rows []rawRow

	for {
		record, err := reader.Read()
		if err != nil {
			break
		}
		unix, err := strconv.ParseInt(strings.TrimSpace(record[tsIdx]), 10, 64)
		if err != nil {
			continue
		}
		row := rawRow{ts: time.Unix(unix, 0).UTC()}
		if idx, ok := cols[colEnergy]; ok && idx < len(record) {
			row.energyWh, _ = strconv.ParseFloat(strings.TrimSpace(record[idx]), 64)
		}
		if idx, ok := cols[colPower]; ok && idx < len(record) {
			if v, err := strconv.ParseFloat(strings.TrimSpace(record[idx]), 64); err == nil {
				row.powerW = v
				row.hasPower = true
			}
		}
		if idx, ok := cols[colVoltage]; ok && idx < len(record) {
			row.voltage, _ = strconv.ParseFloat(strings.TrimSpace(record[idx]), 64)
		}
		if idx, ok := cols[colCurrent]; ok && idx < len(record) {
			row.current, _ = strconv.ParseFloat(strings.TrimSpace(record[idx]), 64)
		}
		rows = append(rows, row)
	}

	// Order and dedupe by timestamp before building the cumulative register.
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].ts.Before(rows[b].ts) })
	deduped := rows[:0]
	for i, r := range rows {
		if i > 0 && r.ts.Equal(rows[i-1].ts) {
			continue
		}
		deduped = append(deduped, r)
	}

	// Interval energy accumulates into a monotonic register in kWh. Power
	// falls back to a derivation from interval energy when the column is
	// absent.
	var register float64
	var prevTS time.Time
	for i, r := range deduped {
		register += r.energyWh / 1000
		if !r.ts.Before(period.Start) && !r.ts.After(period.End) {
			power := r.powerW
			if !r.hasPower && i > 0 {
				if dt := r.ts.Sub(prevTS).Hours(); dt > 0 {
					power = r.energyWh / 1000 / dt * 1000
				}
			}
			series.Points = append(series.Points, schema.TimeSeriesPoint{
				Timestamp:    r.ts,
				ActiveEnergy: register,
				ActivePower:  power,
				Voltage:      r.voltage,
				Current:      r.current,
			})
		}
		prevTS = r.ts
	}
	return series, nil
}

// deviceIDFromFile derives the device ID from an export file name,
// e.g. "emdata_shelly-em-kitchen.csv" yields "shelly-em-kitchen".
func deviceIDFromFile(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.TrimPrefix(name, "emdata_")
}
