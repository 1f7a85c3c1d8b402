package core

import (
	"testing"
	"time"

	"github.com/Mida-Energy/report-generator/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectAnomalies(t *testing.T) {
	// Nine quiet samples and one outlier, all within the same clock hour so
	// they share a baseline. Mean 190, stddev 270, outlier z-score 3.
	powers := []float64{100, 100, 100, 100, 100, 100, 100, 100, 100, 1000}
	points := make([]schema.TimeSeriesPoint, len(powers))
	for i, p := range powers {
		points[i] = schema.TimeSeriesPoint{
			Timestamp:   baseTime.Add(time.Duration(i) * time.Minute),
			ActivePower: p,
		}
	}
	window := []schema.DeviceSeries{{DeviceID: "meter-1", Points: points}}
	samples := flattenWindow(window)
	hourly := computeHourly(samples)

	events := detectAnomalies(samples, hourly, 2)
	require.Len(t, events, 1)
	assert.InDelta(t, 1000.0, events[0].ObservedPowerW, 0.001)
	assert.InDelta(t, 190.0, events[0].ExpectedBaseline, 0.001)
	assert.InDelta(t, 3.0, events[0].Severity, 0.001)
	assert.Equal(t, "meter-1", events[0].DeviceID)
}

func TestDetectAnomaliesConstantSeries(t *testing.T) {
	window := []schema.DeviceSeries{seriesFromPowers("meter-1", []float64{100, 100, 100})}
	samples := flattenWindow(window)
	hourly := computeHourly(samples)

	events := detectAnomalies(samples, hourly, 2)
	assert.Empty(t, events)
}

func TestDetectNightAlert(t *testing.T) {
	tests := []struct {
		name      string
		nightMean float64
		peak      float64
		raised    bool
	}{
		{name: "above threshold", nightMean: 120, peak: 1000, raised: true},
		{name: "below threshold", nightMean: 80, peak: 1000, raised: false},
		{name: "zero peak", nightMean: 50, peak: 0, raised: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bands := []schema.TimeBandStats{
				{Band: schema.BandNight, MeanPower: tt.nightMean},
				{Band: schema.BandMorning, MeanPower: 500},
			}
			alert := detectNightAlert(bands, tt.peak, schema.DefaultNightAlertRatio)
			assert.Equal(t, tt.raised, alert.Raised)
			assert.InDelta(t, tt.nightMean, alert.NightMeanW, 0.001)
			if tt.peak > 0 {
				assert.InDelta(t, tt.nightMean/tt.peak, alert.Ratio, 0.0001)
			}
		})
	}
}
