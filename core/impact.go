package core

import (
	"github.com/Mida-Energy/report-generator/schema"
)

// computeImpact converts total energy into fixed-factor environmental
// equivalents. Purely linear, no rounding.
func computeImpact(totalKWh, emissionFactor float64) schema.EnvironmentalImpact {
	co2 := totalKWh * emissionFactor
	return schema.EnvironmentalImpact{
		CO2Kg:          co2,
		TreeEquivalent: co2 / schema.CO2PerTreeYearKg,
		CarKmEqual:     co2 / schema.CO2PerCarKmKg,
	}
}
