package schema

import "time"

// SummaryStats holds the headline figures for an analysis window.
type SummaryStats struct {
	TotalEnergyKWh float64 // Sum of per-segment cumulative deltas
	AvgPowerW      float64 // Mean of power samples
	PeakPowerW     float64 // Maximum power sample
	MinPowerW      float64 // Minimum power sample
	AvgVoltage     float64 // Mean voltage, 0 when not reported
	AvgCurrent     float64 // Mean current, 0 when not reported
	PeakCount      int     // Samples above the 95th power percentile
	SampleCount    int     // Total samples across all devices
	DaysAnalyzed   int     // Distinct calendar days with samples
}

// HourlyStats is the power profile for one clock hour of the day.
type HourlyStats struct {
	Hour      int // 0-23
	MeanPower float64
	MaxPower  float64
	MinPower  float64
	Samples   int
}

// TimeBand is a fixed clock-hour range used for bucketing samples.
type TimeBand string

// Time band names. A sample exactly on a boundary belongs to the band
// starting at that hour.
const (
	BandNight     TimeBand = "night"     // 00-06
	BandMorning   TimeBand = "morning"   // 06-12
	BandAfternoon TimeBand = "afternoon" // 12-18
	BandEvening   TimeBand = "evening"   // 18-24
)

// TimeBandStats is the aggregate power profile for one time band.
type TimeBandStats struct {
	Band      TimeBand
	MeanPower float64
	MaxPower  float64
	Samples   int
}

// WeekdaySplit compares weekday against weekend consumption.
// Weekend is Saturday plus Sunday.
type WeekdaySplit struct {
	WeekdayMeanPower float64
	WeekendMeanPower float64
	WeekdaySamples   int
	WeekendSamples   int
}

// PowerPeak is one of the highest power samples in the window.
type PowerPeak struct {
	Timestamp time.Time
	PowerW    float64
	DeviceID  string
}

// DayEnergy is the total consumed energy for one calendar day.
type DayEnergy struct {
	Day       time.Time // Midnight UTC of the day
	EnergyKWh float64
}

// AnomalyEvent is a sample whose power exceeded the per-hour baseline.
// Anomalies are reported only; they are never removed from the statistics.
type AnomalyEvent struct {
	Timestamp        time.Time
	DeviceID         string
	ObservedPowerW   float64
	ExpectedBaseline float64 // Hourly mean over the window
	Severity         float64 // Z-score against the hourly distribution
}

// NightAlert flags sustained night-band consumption, the standby-load signal.
type NightAlert struct {
	Raised         bool
	NightMeanW     float64
	PeriodPeakW    float64
	Ratio          float64 // NightMeanW / PeriodPeakW
	ThresholdRatio float64
}

// GridQuality carries supply quality metrics derived from voltage and current.
// PowerFactor is nil when voltage or current samples are absent; it is an
// estimate of P/(V*I), not a measured value.
type GridQuality struct {
	VoltageStability float64 // 1 - stddev/mean of voltage, clamped to [0,1]
	VoltageMean      float64
	VoltageStdDev    float64
	PowerFactor      *float64
}

// TrendEstimate is the linear trend over daily energy totals.
type TrendEstimate struct {
	SlopeKWhPerDay float64
	NextPeriodKWh  float64 // Projection one period ahead
	Confidence     float64 // R-squared of the fit, 0 when degenerate
	LowConfidence  bool    // Fewer than 2 distinct days in the window
}

// EnvironmentalImpact expresses total energy as fixed linear conversions.
type EnvironmentalImpact struct {
	CO2Kg          float64
	TreeEquivalent float64 // Trees absorbing the CO2 over a year
	CarKmEqual     float64 // Passenger-car km emitting the same CO2
}

// AnalysisResult is the full output of one analysis pass over a window.
// It is immutable once produced; the recommendation engine and the report
// renderer only read it. Optional sections are nil when their preconditions
// were not met.
type AnalysisResult struct {
	Period      Period
	DeviceIDs   []string
	Summary     SummaryStats
	Hourly      [24]HourlyStats
	Bands       []TimeBandStats
	Weekday     WeekdaySplit
	TopPeaks    []PowerPeak  // Descending power, earlier timestamp wins ties, at most 5
	BestDays    []DayEnergy  // Ascending total energy, at most 5
	DailyEnergy []DayEnergy  // Chronological, every day with samples
	Anomalies   []AnomalyEvent
	NightAlert  NightAlert
	Grid        *GridQuality
	Trend       *TrendEstimate
	Impact      EnvironmentalImpact
}
