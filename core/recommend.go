package core

import (
	"fmt"
	"sort"

	"github.com/Mida-Energy/report-generator/schema"
)

// Rule trigger thresholds.
const (
	peakCountThreshold  = 10     // Samples above the peak percentile
	highPowerThreshold  = 3000.0 // W
	anomalyThreshold    = 5      // Anomaly events per window
	trendSlopeThreshold = 0.5    // kWh per day of upward drift
	highEnergyThreshold = 50.0   // kWh over the window
	stabilityThreshold  = 0.95   // Voltage stability floor
)

// rule is one independent predicate over the analysis result. Rules are
// evaluated in declaration order and each emits at most one recommendation.
type rule struct {
	applies func(*schema.AnalysisResult) bool
	build   func(*schema.AnalysisResult) schema.Recommendation
}

// ruleTable is evaluated uniformly. Output ordering is priority first, then
// declaration order, so the table order matters within a priority.
var ruleTable = []rule{
	{
		applies: func(r *schema.AnalysisResult) bool { return r.NightAlert.Raised },
		build: func(r *schema.AnalysisResult) schema.Recommendation {
			return schema.Recommendation{
				Priority: schema.PriorityHigh,
				Title:    "Audit standby loads",
				Description: fmt.Sprintf(
					"Night consumption averages %.0f W, %.0f%% of the period peak. Identify and switch off equipment left running outside operating hours.",
					r.NightAlert.NightMeanW, r.NightAlert.Ratio*100),
				Timeline:         "2 weeks",
				Responsible:      "Facility manager",
				SavingPercentage: 0.10,
			}
		},
	},
	{
		applies: func(r *schema.AnalysisResult) bool { return r.Summary.PeakCount > peakCountThreshold },
		build: func(r *schema.AnalysisResult) schema.Recommendation {
			return schema.Recommendation{
				Priority: schema.PriorityHigh,
				Title:    "Redistribute peak loads",
				Description: fmt.Sprintf(
					"%d samples exceeded the 95th power percentile. Stagger high-draw equipment to flatten the demand profile and avoid peak tariffs.",
					r.Summary.PeakCount),
				Timeline:         "1 month",
				Responsible:      "Energy team",
				SavingPercentage: 0.08,
			}
		},
	},
	{
		applies: func(r *schema.AnalysisResult) bool { return r.Summary.PeakPowerW > highPowerThreshold },
		build: func(r *schema.AnalysisResult) schema.Recommendation {
			return schema.Recommendation{
				Priority: schema.PriorityMedium,
				Title:    "Review simultaneous high loads",
				Description: fmt.Sprintf(
					"Peak power reached %.0f W. Check whether concurrent operation of major loads can be interlocked or scheduled apart.",
					r.Summary.PeakPowerW),
				Timeline:         "1 month",
				Responsible:      "Maintenance team",
				SavingPercentage: 0.05,
			}
		},
	},
	{
		applies: func(r *schema.AnalysisResult) bool { return len(r.Anomalies) > anomalyThreshold },
		build: func(r *schema.AnalysisResult) schema.Recommendation {
			return schema.Recommendation{
				Priority: schema.PriorityMedium,
				Title:    "Investigate consumption anomalies",
				Description: fmt.Sprintf(
					"%d samples deviated from their hourly baseline. Inspect the flagged intervals for faulty or misconfigured equipment.",
					len(r.Anomalies)),
				Timeline:         "2 weeks",
				Responsible:      "Maintenance team",
				SavingPercentage: 0.04,
			}
		},
	},
	{
		applies: func(r *schema.AnalysisResult) bool {
			return r.Trend != nil && !r.Trend.LowConfidence && r.Trend.SlopeKWhPerDay > trendSlopeThreshold
		},
		build: func(r *schema.AnalysisResult) schema.Recommendation {
			return schema.Recommendation{
				Priority: schema.PriorityMedium,
				Title:    "Schedule an efficiency review",
				Description: fmt.Sprintf(
					"Daily consumption is trending up by %.2f kWh/day. Review recent operational changes before the drift compounds.",
					r.Trend.SlopeKWhPerDay),
				Timeline:         "1 month",
				Responsible:      "Energy team",
				SavingPercentage: 0.06,
			}
		},
	},
	{
		applies: func(r *schema.AnalysisResult) bool { return r.Summary.TotalEnergyKWh > highEnergyThreshold },
		build: func(r *schema.AnalysisResult) schema.Recommendation {
			return schema.Recommendation{
				Priority: schema.PriorityMedium,
				Title:    "Adopt general efficiency measures",
				Description: fmt.Sprintf(
					"Total consumption of %.1f kWh over the window leaves room for efficiency upgrades such as LED lighting and scheduled shutdowns.",
					r.Summary.TotalEnergyKWh),
				Timeline:         "3 months",
				Responsible:      "Energy team",
				SavingPercentage: 0.05,
			}
		},
	},
	{
		applies: func(r *schema.AnalysisResult) bool {
			return r.Grid != nil && r.Grid.VoltageStability < stabilityThreshold
		},
		build: func(r *schema.AnalysisResult) schema.Recommendation {
			return schema.Recommendation{
				Priority: schema.PriorityLow,
				Title:    "Check supply quality",
				Description: fmt.Sprintf(
					"Voltage stability is %.2f, below the expected floor. Ask the utility or an electrician to verify the supply.",
					r.Grid.VoltageStability),
				Timeline:         "2 months",
				Responsible:      "Facility manager",
				SavingPercentage: 0.01,
			}
		},
	},
}

// Recommend evaluates every rule against the result and returns the
// recommendations ordered by priority, then declaration order. When no rule
// fires, a single keep-monitoring entry is returned so the action plan is
// never empty.
func Recommend(result *schema.AnalysisResult) []schema.Recommendation {
	var recs []schema.Recommendation
	for _, r := range ruleTable {
		if r.applies(result) {
			rec := r.build(result)
			rec.EstimatedSaving = rec.SavingPercentage * result.Summary.TotalEnergyKWh
			recs = append(recs, rec)
		}
	}
	if len(recs) == 0 {
		recs = append(recs, schema.Recommendation{
			Priority:    schema.PriorityLow,
			Title:       "Consumption is optimal",
			Description: "No issues detected in this window. Keep the current operating profile and continue monitoring.",
			Timeline:    "Ongoing",
			Responsible: "Energy team",
		})
	}
	sort.SliceStable(recs, func(a, b int) bool {
		return recs[a].Priority.Rank() < recs[b].Priority.Rank()
	})
	return recs
}

// PotentialSavings sums the estimated savings of all recommendations into a
// single figure in kWh for the next period.
func PotentialSavings(recs []schema.Recommendation) float64 {
	var total float64
	for _, r := range recs {
		total += r.EstimatedSaving
	}
	return total
}
