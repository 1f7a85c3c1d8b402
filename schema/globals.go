package schema

// Analysis tuning defaults. The night threshold and sigma are deliberately
// fixed constants, overridable via config, not learned per device.
const (
	DefaultAnomalySigma    = 2.0
	DefaultNightAlertRatio = 0.10
	DefaultEmissionFactor  = 0.4 // kg CO2 per kWh

	// PeakPercentile defines what counts as a peak sample for PeakCount.
	PeakPercentile = 0.95

	// TopPeaksLimit and BestDaysLimit cap the ranked lists in a result.
	TopPeaksLimit = 5
	BestDaysLimit = 5
)

// Environmental conversion constants. Deterministic linear factors, not
// calibrated estimates.
const (
	CO2PerTreeYearKg = 21.0 // kg of CO2 one tree absorbs per year
	CO2PerCarKmKg    = 0.12 // kg of CO2 per passenger-car km
)

// Time band boundaries in clock hours. BandFor maps an hour to its band.
const (
	NightStartHour     = 0
	MorningStartHour   = 6
	AfternoonStartHour = 12
	EveningStartHour   = 18
)

// BandFor returns the time band an hour-of-day belongs to. An hour exactly
// on a boundary belongs to the band starting there.
func BandFor(hour int) TimeBand {
	switch {
	case hour >= EveningStartHour:
		return BandEvening
	case hour >= AfternoonStartHour:
		return BandAfternoon
	case hour >= MorningStartHour:
		return BandMorning
	default:
		return BandNight
	}
}

// AllBands lists the bands in clock order for stable iteration.
var AllBands = []TimeBand{BandNight, BandMorning, BandAfternoon, BandEvening}
