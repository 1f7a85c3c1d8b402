// Package core has pure analysis logic for telemetry windows: statistics,
// breakdowns, anomaly detection, trend estimation and recommendations.
package core

import (
	"errors"
	"sort"

	"github.com/Mida-Energy/report-generator/schema"
)

// ErrInsufficientData is returned when a window has no usable samples.
var ErrInsufficientData = errors.New("insufficient data for analysis")

// Analyze runs the full analysis pass over a window of device series.
// It is deterministic: the same input always produces the same result.
// The input series are never mutated.
func Analyze(window []schema.DeviceSeries, period schema.Period, opts schema.AnalysisOptions) (*schema.AnalysisResult, error) {
	opts = opts.Normalized()

	samples := flattenWindow(window)
	if len(samples) == 0 {
		return nil, ErrInsufficientData
	}

	// --- 1. Headline statistics ---
	summary := computeSummary(window, samples)

	// --- 2. Temporal breakdowns ---
	hourly := computeHourly(samples)
	bands := computeBands(samples)
	weekday := computeWeekdaySplit(samples)
	topPeaks := computeTopPeaks(samples)
	daily := computeDailyEnergy(window)
	best := bestDays(daily)

	// --- 3. Anomalies and alerts ---
	anomalies := detectAnomalies(samples, hourly, opts.AnomalySigma)
	night := detectNightAlert(bands, summary.PeakPowerW, opts.NightAlertRatio)

	// --- 4. Optional sections ---
	grid := computeGridQuality(samples)
	trend := estimateTrend(daily)

	// --- 5. Environmental conversions ---
	impact := computeImpact(summary.TotalEnergyKWh, opts.EmissionFactor)

	return &schema.AnalysisResult{
		Period:      period,
		DeviceIDs:   deviceIDs(window),
		Summary:     summary,
		Hourly:      hourly,
		Bands:       bands,
		Weekday:     weekday,
		TopPeaks:    topPeaks,
		BestDays:    best,
		DailyEnergy: daily,
		Anomalies:   anomalies,
		NightAlert:  night,
		Grid:        grid,
		Trend:       trend,
		Impact:      impact,
	}, nil
}

// flatSample pairs a point with its owning device for cross-device passes.
type flatSample struct {
	point    schema.TimeSeriesPoint
	deviceID string
}

// flattenWindow merges all device points into one timestamp-ordered slice.
func flattenWindow(window []schema.DeviceSeries) []flatSample {
	var total int
	for i := range window {
		total += len(window[i].Points)
	}
	samples := make([]flatSample, 0, total)
	for i := range window {
		for _, p := range window[i].Points {
			samples = append(samples, flatSample{point: p, deviceID: window[i].DeviceID})
		}
	}
	sort.SliceStable(samples, func(a, b int) bool {
		return samples[a].point.Timestamp.Before(samples[b].point.Timestamp)
	})
	return samples
}

// deviceIDs returns the window's device IDs in sorted order.
func deviceIDs(window []schema.DeviceSeries) []string {
	ids := make([]string, 0, len(window))
	for i := range window {
		ids = append(ids, window[i].DeviceID)
	}
	sort.Strings(ids)
	return ids
}
