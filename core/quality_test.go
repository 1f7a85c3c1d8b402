package core

import (
	"testing"
	"time"

	"github.com/Mida-Energy/report-generator/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func electricalSeries(voltage, current, power float64, n int) []flatSample {
	points := make([]schema.TimeSeriesPoint, n)
	for i := range points {
		points[i] = schema.TimeSeriesPoint{
			Timestamp:   baseTime.Add(time.Duration(i) * time.Hour),
			ActivePower: power,
			Voltage:     voltage,
			Current:     current,
		}
	}
	return flattenWindow([]schema.DeviceSeries{{DeviceID: "meter-1", Points: points}})
}

func TestComputeGridQuality(t *testing.T) {
	gq := computeGridQuality(electricalSeries(230, 10, 2070, 4))
	require.NotNil(t, gq)

	assert.InDelta(t, 1.0, gq.VoltageStability, 0.001)
	assert.InDelta(t, 230.0, gq.VoltageMean, 0.001)
	require.NotNil(t, gq.PowerFactor)
	assert.InDelta(t, 0.9, *gq.PowerFactor, 0.001)
}

func TestComputeGridQualityNoVoltage(t *testing.T) {
	assert.Nil(t, computeGridQuality(electricalSeries(0, 0, 500, 4)))
}

func TestComputeGridQualityNoCurrent(t *testing.T) {
	gq := computeGridQuality(electricalSeries(230, 0, 500, 4))
	require.NotNil(t, gq)
	assert.Nil(t, gq.PowerFactor)
}

func TestComputeGridQualityClampsPowerFactor(t *testing.T) {
	// Reported power above apparent power clamps the proxy at 1.
	gq := computeGridQuality(electricalSeries(230, 1, 500, 4))
	require.NotNil(t, gq)
	require.NotNil(t, gq.PowerFactor)
	assert.InDelta(t, 1.0, *gq.PowerFactor, 0.001)
}

func TestComputeImpact(t *testing.T) {
	impact := computeImpact(100, 0.4)

	assert.InDelta(t, 40.0, impact.CO2Kg, 0.001)
	assert.InDelta(t, 40.0/schema.CO2PerTreeYearKg, impact.TreeEquivalent, 0.001)
	assert.InDelta(t, 40.0/schema.CO2PerCarKmKg, impact.CarKmEqual, 0.001)
}

func TestComputeImpactScalesLinearly(t *testing.T) {
	small := computeImpact(50, 0.4)
	large := computeImpact(100, 0.4)

	assert.InDelta(t, small.CO2Kg*2, large.CO2Kg, 0.001)
	assert.InDelta(t, small.TreeEquivalent*2, large.TreeEquivalent, 0.001)
	assert.InDelta(t, small.CarKmEqual*2, large.CarKmEqual, 0.001)
}
