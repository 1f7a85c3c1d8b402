package core

import (
	"sort"
	"time"

	"github.com/Mida-Energy/report-generator/schema"
)

// computeHourly builds the 24-slot hourly power profile. Hours without
// samples keep zero stats and a zero sample count.
func computeHourly(samples []flatSample) [24]schema.HourlyStats {
	var hourly [24]schema.HourlyStats
	var sums [24]float64
	for h := range hourly {
		hourly[h].Hour = h
	}
	for _, fs := range samples {
		h := fs.point.Timestamp.UTC().Hour()
		st := &hourly[h]
		if st.Samples == 0 || fs.point.ActivePower > st.MaxPower {
			st.MaxPower = fs.point.ActivePower
		}
		if st.Samples == 0 || fs.point.ActivePower < st.MinPower {
			st.MinPower = fs.point.ActivePower
		}
		sums[h] += fs.point.ActivePower
		st.Samples++
	}
	for h := range hourly {
		if hourly[h].Samples > 0 {
			hourly[h].MeanPower = sums[h] / float64(hourly[h].Samples)
		}
	}
	return hourly
}

// computeBands aggregates samples into the four fixed clock bands, returned
// in clock order. Empty bands are included with zero stats.
func computeBands(samples []flatSample) []schema.TimeBandStats {
	sums := make(map[schema.TimeBand]float64, 4)
	stats := make(map[schema.TimeBand]*schema.TimeBandStats, 4)
	for _, band := range schema.AllBands {
		stats[band] = &schema.TimeBandStats{Band: band}
	}
	for _, fs := range samples {
		band := schema.BandFor(fs.point.Timestamp.UTC().Hour())
		st := stats[band]
		if st.Samples == 0 || fs.point.ActivePower > st.MaxPower {
			st.MaxPower = fs.point.ActivePower
		}
		sums[band] += fs.point.ActivePower
		st.Samples++
	}
	out := make([]schema.TimeBandStats, 0, len(schema.AllBands))
	for _, band := range schema.AllBands {
		st := stats[band]
		if st.Samples > 0 {
			st.MeanPower = sums[band] / float64(st.Samples)
		}
		out = append(out, *st)
	}
	return out
}

// computeWeekdaySplit compares weekday against weekend mean power.
func computeWeekdaySplit(samples []flatSample) schema.WeekdaySplit {
	var split schema.WeekdaySplit
	var weekdaySum, weekendSum float64
	for _, fs := range samples {
		switch fs.point.Timestamp.UTC().Weekday() {
		case time.Saturday, time.Sunday:
			weekendSum += fs.point.ActivePower
			split.WeekendSamples++
		default:
			weekdaySum += fs.point.ActivePower
			split.WeekdaySamples++
		}
	}
	if split.WeekdaySamples > 0 {
		split.WeekdayMeanPower = weekdaySum / float64(split.WeekdaySamples)
	}
	if split.WeekendSamples > 0 {
		split.WeekendMeanPower = weekendSum / float64(split.WeekendSamples)
	}
	return split
}

// computeTopPeaks ranks the highest power samples, descending by power with
// the earlier timestamp winning ties, capped at the configured limit.
func computeTopPeaks(samples []flatSample) []schema.PowerPeak {
	peaks := make([]schema.PowerPeak, 0, len(samples))
	for _, fs := range samples {
		peaks = append(peaks, schema.PowerPeak{
			Timestamp: fs.point.Timestamp,
			PowerW:    fs.point.ActivePower,
			DeviceID:  fs.deviceID,
		})
	}
	sort.SliceStable(peaks, func(a, b int) bool {
		if peaks[a].PowerW != peaks[b].PowerW {
			return peaks[a].PowerW > peaks[b].PowerW
		}
		return peaks[a].Timestamp.Before(peaks[b].Timestamp)
	})
	if len(peaks) > schema.TopPeaksLimit {
		peaks = peaks[:schema.TopPeaksLimit]
	}
	return peaks
}

// computeDailyEnergy sums segment-aware energy per calendar day across all
// devices, returned chronologically.
func computeDailyEnergy(window []schema.DeviceSeries) []schema.DayEnergy {
	totals := make(map[time.Time]float64)
	for i := range window {
		for _, seg := range window[i].Segments() {
			for j := 1; j < len(seg); j++ {
				delta := seg[j].ActiveEnergy - seg[j-1].ActiveEnergy
				day := seg[j].Timestamp.UTC().Truncate(24 * time.Hour)
				totals[day] += delta
			}
		}
	}
	out := make([]schema.DayEnergy, 0, len(totals))
	for day, kwh := range totals {
		out = append(out, schema.DayEnergy{Day: day, EnergyKWh: kwh})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Day.Before(out[b].Day) })
	return out
}

// bestDays returns the lowest-consumption days, ascending by energy, at most
// the configured limit.
func bestDays(daily []schema.DayEnergy) []schema.DayEnergy {
	best := make([]schema.DayEnergy, len(daily))
	copy(best, daily)
	sort.SliceStable(best, func(a, b int) bool {
		if best[a].EnergyKWh != best[b].EnergyKWh {
			return best[a].EnergyKWh < best[b].EnergyKWh
		}
		return best[a].Day.Before(best[b].Day)
	})
	if len(best) > schema.BestDaysLimit {
		best = best[:schema.BestDaysLimit]
	}
	return best
}
