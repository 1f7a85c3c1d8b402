package core

import (
	"github.com/Mida-Energy/report-generator/schema"
)

// detectAnomalies flags samples whose power exceeds the per-hour baseline of
// mean plus sigma times the standard deviation. Anomalies are reported in
// timestamp order and are never excluded from the window statistics.
func detectAnomalies(samples []flatSample, hourly [24]schema.HourlyStats, sigma float64) []schema.AnomalyEvent {
	// Per-hour standard deviations need a second pass over the samples.
	var hourValues [24][]float64
	for _, fs := range samples {
		h := fs.point.Timestamp.UTC().Hour()
		hourValues[h] = append(hourValues[h], fs.point.ActivePower)
	}
	var hourStdDev [24]float64
	for h := range hourValues {
		hourStdDev[h] = stdDev(hourValues[h], hourly[h].MeanPower)
	}

	var events []schema.AnomalyEvent
	for _, fs := range samples {
		h := fs.point.Timestamp.UTC().Hour()
		sd := hourStdDev[h]
		if sd == 0 {
			// A constant hour has no spread to exceed.
			continue
		}
		baseline := hourly[h].MeanPower + sigma*sd
		if fs.point.ActivePower > baseline {
			events = append(events, schema.AnomalyEvent{
				Timestamp:        fs.point.Timestamp,
				DeviceID:         fs.deviceID,
				ObservedPowerW:   fs.point.ActivePower,
				ExpectedBaseline: hourly[h].MeanPower,
				Severity:         (fs.point.ActivePower - hourly[h].MeanPower) / sd,
			})
		}
	}
	return events
}

// detectNightAlert raises the standby-load signal when the night band's mean
// power exceeds the configured fraction of the period peak.
func detectNightAlert(bands []schema.TimeBandStats, periodPeakW, threshold float64) schema.NightAlert {
	alert := schema.NightAlert{
		PeriodPeakW:    periodPeakW,
		ThresholdRatio: threshold,
	}
	for _, b := range bands {
		if b.Band == schema.BandNight {
			alert.NightMeanW = b.MeanPower
			break
		}
	}
	if periodPeakW > 0 {
		alert.Ratio = alert.NightMeanW / periodPeakW
		alert.Raised = alert.Ratio > threshold
	}
	return alert
}
