// Package schema has configs, models and global variables for all parts of the
// report generator.
package schema

import "time"

// TimeSeriesPoint is a single normalized telemetry sample for one device.
// ActiveEnergy is the meter's cumulative register in kWh; it only decreases
// when the meter resets, which starts a new segment rather than being an error.
type TimeSeriesPoint struct {
	Timestamp    time.Time // UTC sample instant
	ActiveEnergy float64   // Cumulative active energy (kWh)
	ActivePower  float64   // Instantaneous active power (W)
	Voltage      float64   // RMS voltage (V), 0 when the meter does not report it
	Current      float64   // RMS current (A), 0 when the meter does not report it
}

// DeviceSeries is the ordered sample history for one device within a window.
// Points are strictly increasing by timestamp.
type DeviceSeries struct {
	DeviceID string
	Points   []TimeSeriesPoint
}

// SamplingInterval derives the median gap between consecutive samples.
// The interval is derived rather than assumed constant because acquisition
// gaps and device restarts are common in practice.
func (s *DeviceSeries) SamplingInterval() time.Duration {
	if len(s.Points) < 2 {
		return 0
	}
	gaps := make([]time.Duration, 0, len(s.Points)-1)
	for i := 1; i < len(s.Points); i++ {
		gaps = append(gaps, s.Points[i].Timestamp.Sub(s.Points[i-1].Timestamp))
	}
	// Median without sorting the whole slice is not worth it at this size.
	for i := 1; i < len(gaps); i++ {
		for j := i; j > 0 && gaps[j] < gaps[j-1]; j-- {
			gaps[j], gaps[j-1] = gaps[j-1], gaps[j]
		}
	}
	return gaps[len(gaps)/2]
}

// Segments splits the series wherever the cumulative energy register drops,
// i.e. at meter resets. Within each returned slice ActiveEnergy is
// non-decreasing.
func (s *DeviceSeries) Segments() [][]TimeSeriesPoint {
	if len(s.Points) == 0 {
		return nil
	}
	var segments [][]TimeSeriesPoint
	start := 0
	for i := 1; i < len(s.Points); i++ {
		if s.Points[i].ActiveEnergy < s.Points[i-1].ActiveEnergy {
			segments = append(segments, s.Points[start:i])
			start = i
		}
	}
	return append(segments, s.Points[start:])
}

// Period is the time range an analysis window covers.
type Period struct {
	Start time.Time
	End   time.Time
}

// Days returns the number of calendar days the period spans, minimum 1.
func (p Period) Days() int {
	d := int(p.End.Sub(p.Start).Hours()/24) + 1
	if d < 1 {
		return 1
	}
	return d
}
