package core

import (
	"testing"

	"github.com/Mida-Energy/report-generator/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendNightAlert(t *testing.T) {
	result := &schema.AnalysisResult{
		Summary:    schema.SummaryStats{TotalEnergyKWh: 100},
		NightAlert: schema.NightAlert{Raised: true, NightMeanW: 120, Ratio: 0.12},
	}

	recs := Recommend(result)
	require.NotEmpty(t, recs)
	assert.Equal(t, schema.PriorityHigh, recs[0].Priority)
	assert.Equal(t, "Audit standby loads", recs[0].Title)
	assert.InDelta(t, 10.0, recs[0].EstimatedSaving, 0.001)
}

func TestRecommendPriorityOrdering(t *testing.T) {
	// Fires a Medium rule (high peak power) and a High rule (night alert);
	// the High entry must come first regardless of table position.
	result := &schema.AnalysisResult{
		Summary:    schema.SummaryStats{TotalEnergyKWh: 40, PeakPowerW: 3500},
		NightAlert: schema.NightAlert{Raised: true, NightMeanW: 150, Ratio: 0.15},
	}

	recs := Recommend(result)
	require.GreaterOrEqual(t, len(recs), 2)
	assert.Equal(t, schema.PriorityHigh, recs[0].Priority)
	for i := 1; i < len(recs); i++ {
		assert.LessOrEqual(t, recs[i-1].Priority.Rank(), recs[i].Priority.Rank())
	}
}

func TestRecommendFallback(t *testing.T) {
	recs := Recommend(&schema.AnalysisResult{})
	require.Len(t, recs, 1)
	assert.Equal(t, schema.PriorityLow, recs[0].Priority)
	assert.Equal(t, "Consumption is optimal", recs[0].Title)
	assert.InDelta(t, 0.0, recs[0].EstimatedSaving, 0.001)
}

func TestRecommendTrendRule(t *testing.T) {
	result := &schema.AnalysisResult{
		Summary: schema.SummaryStats{TotalEnergyKWh: 30},
		Trend:   &schema.TrendEstimate{SlopeKWhPerDay: 1.2, Confidence: 0.9},
	}

	recs := Recommend(result)
	require.Len(t, recs, 1)
	assert.Equal(t, "Schedule an efficiency review", recs[0].Title)
}

func TestRecommendIgnoresLowConfidenceTrend(t *testing.T) {
	result := &schema.AnalysisResult{
		Trend: &schema.TrendEstimate{SlopeKWhPerDay: 5, LowConfidence: true},
	}

	recs := Recommend(result)
	require.Len(t, recs, 1)
	assert.Equal(t, "Consumption is optimal", recs[0].Title)
}

func TestPotentialSavings(t *testing.T) {
	recs := []schema.Recommendation{
		{EstimatedSaving: 10},
		{EstimatedSaving: 4.5},
	}
	assert.InDelta(t, 14.5, PotentialSavings(recs), 0.001)
	assert.InDelta(t, 0.0, PotentialSavings(nil), 0.001)
}
