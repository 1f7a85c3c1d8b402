package core

import (
	"github.com/Mida-Energy/report-generator/schema"
)

// estimateTrend fits an ordinary least squares line over the daily energy
// totals and projects consumption one period ahead. With fewer than two
// distinct days the estimate degrades to the last observed total and is
// marked low confidence.
func estimateTrend(daily []schema.DayEnergy) *schema.TrendEstimate {
	if len(daily) == 0 {
		return nil
	}
	if len(daily) < 2 {
		return &schema.TrendEstimate{
			NextPeriodKWh: daily[len(daily)-1].EnergyKWh * float64(len(daily)),
			LowConfidence: true,
		}
	}

	xs := make([]float64, len(daily))
	ys := make([]float64, len(daily))
	for i, d := range daily {
		xs[i] = float64(i)
		ys[i] = d.EnergyKWh
	}
	slope, intercept, r2 := linearRegression(xs, ys)

	// Project each day of the next period of equal length and sum.
	n := len(daily)
	var next float64
	for i := n; i < 2*n; i++ {
		v := intercept + slope*float64(i)
		if v < 0 {
			v = 0
		}
		next += v
	}

	return &schema.TrendEstimate{
		SlopeKWhPerDay: slope,
		NextPeriodKWh:  next,
		Confidence:     r2,
	}
}

// linearRegression returns the least squares slope, intercept and R-squared
// for the given points. The caller guarantees at least two points.
func linearRegression(xs, ys []float64) (slope, intercept, r2 float64) {
	n := float64(len(xs))
	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n, 0
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n

	// R-squared against the mean predictor.
	meanY := sumY / n
	var ssTot, ssRes float64
	for i := range xs {
		pred := intercept + slope*xs[i]
		ssRes += (ys[i] - pred) * (ys[i] - pred)
		ssTot += (ys[i] - meanY) * (ys[i] - meanY)
	}
	if ssTot == 0 {
		// A flat series is perfectly predicted by its mean.
		return slope, intercept, 1
	}
	r2 = 1 - ssRes/ssTot
	if r2 < 0 {
		r2 = 0
	}
	return slope, intercept, r2
}
