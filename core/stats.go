package core

import (
	"math"
	"sort"
	"time"

	"github.com/Mida-Energy/report-generator/schema"
)

// computeSummary derives the headline figures for the window.
// Total energy is segment-aware: meter resets open a new segment instead
// of producing a negative delta.
func computeSummary(window []schema.DeviceSeries, samples []flatSample) schema.SummaryStats {
	var s schema.SummaryStats
	s.SampleCount = len(samples)
	s.MinPowerW = math.MaxFloat64

	var powerSum, voltSum, currSum float64
	var voltN, currN int
	days := make(map[string]struct{})
	powers := make([]float64, 0, len(samples))

	for _, fs := range samples {
		p := fs.point
		powerSum += p.ActivePower
		powers = append(powers, p.ActivePower)
		if p.ActivePower > s.PeakPowerW {
			s.PeakPowerW = p.ActivePower
		}
		if p.ActivePower < s.MinPowerW {
			s.MinPowerW = p.ActivePower
		}
		if p.Voltage > 0 {
			voltSum += p.Voltage
			voltN++
		}
		if p.Current > 0 {
			currSum += p.Current
			currN++
		}
		days[p.Timestamp.UTC().Format(time.DateOnly)] = struct{}{}
	}

	s.AvgPowerW = powerSum / float64(len(samples))
	if voltN > 0 {
		s.AvgVoltage = voltSum / float64(voltN)
	}
	if currN > 0 {
		s.AvgCurrent = currSum / float64(currN)
	}
	s.DaysAnalyzed = len(days)

	for i := range window {
		s.TotalEnergyKWh += segmentEnergy(&window[i])
	}

	s.PeakCount = countAbovePercentile(powers, schema.PeakPercentile)
	return s
}

// segmentEnergy sums last-minus-first cumulative energy across reset segments.
func segmentEnergy(series *schema.DeviceSeries) float64 {
	var total float64
	for _, seg := range series.Segments() {
		if len(seg) < 2 {
			continue
		}
		total += seg[len(seg)-1].ActiveEnergy - seg[0].ActiveEnergy
	}
	return total
}

// countAbovePercentile counts values strictly above the pth percentile.
func countAbovePercentile(values []float64, p float64) int {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	threshold := percentile(sorted, p)
	count := 0
	for _, v := range values {
		if v > threshold {
			count++
		}
	}
	return count
}

// percentile interpolates the pth percentile of a sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// mean returns the arithmetic mean, 0 for an empty slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev returns the population standard deviation around the given mean.
func stdDev(values []float64, m float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sq float64
	for _, v := range values {
		d := v - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}
