package report

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/Mida-Energy/report-generator/core"
	"github.com/Mida-Energy/report-generator/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *schema.AnalysisResult {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	pf := 0.92
	result := &schema.AnalysisResult{
		Period:    schema.Period{Start: start, End: start.Add(7 * 24 * time.Hour)},
		DeviceIDs: []string{"meter-1"},
		Summary: schema.SummaryStats{
			TotalEnergyKWh: 102.5,
			AvgPowerW:      610,
			PeakPowerW:     3200,
			MinPowerW:      45,
			AvgVoltage:     230.2,
			AvgCurrent:     2.7,
			PeakCount:      12,
			SampleCount:    10080,
			DaysAnalyzed:   7,
		},
		Bands: []schema.TimeBandStats{
			{Band: schema.BandNight, MeanPower: 130, MaxPower: 400, Samples: 2520},
			{Band: schema.BandMorning, MeanPower: 700, MaxPower: 2900, Samples: 2520},
			{Band: schema.BandAfternoon, MeanPower: 850, MaxPower: 3200, Samples: 2520},
			{Band: schema.BandEvening, MeanPower: 760, MaxPower: 2500, Samples: 2520},
		},
		Weekday: schema.WeekdaySplit{WeekdayMeanPower: 680, WeekendMeanPower: 420, WeekdaySamples: 7200, WeekendSamples: 2880},
		TopPeaks: []schema.PowerPeak{
			{Timestamp: start.Add(30 * time.Hour), PowerW: 3200, DeviceID: "meter-1"},
			{Timestamp: start.Add(54 * time.Hour), PowerW: 3100, DeviceID: "meter-1"},
		},
		BestDays: []schema.DayEnergy{
			{Day: start.Add(5 * 24 * time.Hour), EnergyKWh: 9.1},
			{Day: start.Add(6 * 24 * time.Hour), EnergyKWh: 10.4},
		},
		Anomalies: []schema.AnomalyEvent{
			{Timestamp: start.Add(31 * time.Hour), DeviceID: "meter-1", ObservedPowerW: 3200, ExpectedBaseline: 700, Severity: 3.4},
		},
		NightAlert: schema.NightAlert{Raised: true, NightMeanW: 130, PeriodPeakW: 3200, Ratio: 0.125, ThresholdRatio: 0.10},
		Grid:       &schema.GridQuality{VoltageStability: 0.98, VoltageMean: 230.2, VoltageStdDev: 3.9, PowerFactor: &pf},
		Trend:      &schema.TrendEstimate{SlopeKWhPerDay: 0.8, NextPeriodKWh: 110.2, Confidence: 0.87},
		Impact:     schema.EnvironmentalImpact{CO2Kg: 41, TreeEquivalent: 1.95, CarKmEqual: 341},
	}
	for h := range result.Hourly {
		result.Hourly[h] = schema.HourlyStats{Hour: h, MeanPower: 500, MaxPower: 900, MinPower: 100, Samples: 420}
	}
	return result
}

func sampleMeta() schema.ReportMetadata {
	return schema.ReportMetadata{
		Title:       "Energy Consumption Report",
		DeviceIDs:   []string{"meter-1"},
		GeneratedAt: time.Date(2025, 6, 9, 8, 0, 0, 0, time.UTC),
		Period: schema.Period{
			Start: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestRenderProducesPDF(t *testing.T) {
	result := sampleResult()
	recs := core.Recommend(result)

	artifact, warnings, err := NewPDFRenderer().Render(result, recs, sampleMeta())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.NotEmpty(t, artifact)
	assert.True(t, bytes.HasPrefix(artifact, []byte("%PDF")))
}

func TestRenderIdempotent(t *testing.T) {
	result := sampleResult()
	recs := core.Recommend(result)
	meta := sampleMeta()
	renderer := NewPDFRenderer()

	first, _, err := renderer.Render(result, recs, meta)
	require.NoError(t, err)
	second, _, err := renderer.Render(result, recs, meta)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderTruncatesOversizedBlock(t *testing.T) {
	result := sampleResult()
	// More action plan rows than fit on a single page.
	recs := make([]schema.Recommendation, 60)
	for i := range recs {
		recs[i] = schema.Recommendation{
			Priority:    schema.PriorityLow,
			Title:       fmt.Sprintf("Measure %d", i),
			Description: "Generic efficiency measure.",
			Timeline:    "1 month",
			Responsible: "Energy team",
		}
	}

	artifact, warnings, err := NewPDFRenderer().Render(result, recs, sampleMeta())
	require.NoError(t, err)
	require.NotEmpty(t, artifact)
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0], "action plan")
	assert.Contains(t, warnings[0], "truncated")
}

func TestRenderEmptySections(t *testing.T) {
	// Minimal result: no anomalies, no optional sections.
	result := &schema.AnalysisResult{
		Period:  sampleMeta().Period,
		Summary: schema.SummaryStats{TotalEnergyKWh: 1, AvgPowerW: 10, PeakPowerW: 20, MinPowerW: 5, SampleCount: 4, DaysAnalyzed: 1},
		Bands: []schema.TimeBandStats{
			{Band: schema.BandNight}, {Band: schema.BandMorning},
			{Band: schema.BandAfternoon}, {Band: schema.BandEvening},
		},
	}
	recs := core.Recommend(result)

	artifact, warnings, err := NewPDFRenderer().Render(result, recs, sampleMeta())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.NotEmpty(t, artifact)
}
