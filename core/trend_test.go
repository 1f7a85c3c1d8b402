package core

import (
	"testing"
	"time"

	"github.com/Mida-Energy/report-generator/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dailyTotals(values []float64) []schema.DayEnergy {
	out := make([]schema.DayEnergy, len(values))
	for i, v := range values {
		out[i] = schema.DayEnergy{
			Day:       baseTime.Add(time.Duration(i) * 24 * time.Hour),
			EnergyKWh: v,
		}
	}
	return out
}

func TestEstimateTrendLinear(t *testing.T) {
	trend := estimateTrend(dailyTotals([]float64{1, 2, 3, 4, 5}))
	require.NotNil(t, trend)

	assert.InDelta(t, 1.0, trend.SlopeKWhPerDay, 0.001)
	assert.InDelta(t, 1.0, trend.Confidence, 0.001)
	assert.False(t, trend.LowConfidence)
	// Projected days 6 through 10 sum to 40.
	assert.InDelta(t, 40.0, trend.NextPeriodKWh, 0.001)
}

func TestEstimateTrendFlat(t *testing.T) {
	trend := estimateTrend(dailyTotals([]float64{2, 2, 2}))
	require.NotNil(t, trend)

	assert.InDelta(t, 0.0, trend.SlopeKWhPerDay, 0.001)
	assert.InDelta(t, 1.0, trend.Confidence, 0.001)
	assert.InDelta(t, 6.0, trend.NextPeriodKWh, 0.001)
}

func TestEstimateTrendDegenerate(t *testing.T) {
	trend := estimateTrend(dailyTotals([]float64{3.5}))
	require.NotNil(t, trend)

	assert.True(t, trend.LowConfidence)
	assert.InDelta(t, 3.5, trend.NextPeriodKWh, 0.001)
	assert.InDelta(t, 0.0, trend.Confidence, 0.001)
}

func TestEstimateTrendNoDays(t *testing.T) {
	assert.Nil(t, estimateTrend(nil))
}

func TestEstimateTrendClampsNegativeProjection(t *testing.T) {
	// Steep downward trend would project below zero; projections clamp at 0.
	trend := estimateTrend(dailyTotals([]float64{10, 5, 0}))
	require.NotNil(t, trend)
	assert.GreaterOrEqual(t, trend.NextPeriodKWh, 0.0)
}
