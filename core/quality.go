package core

import (
	"github.com/Mida-Energy/report-generator/schema"
)

// computeGridQuality derives supply quality metrics from voltage and current
// samples. Returns nil when no voltage samples are present. The power factor
// is a proxy from mean values, included only when both voltage and current
// are reported, and clamped to [0, 1].
func computeGridQuality(samples []flatSample) *schema.GridQuality {
	var volts, currs, powers []float64
	for _, fs := range samples {
		if fs.point.Voltage > 0 {
			volts = append(volts, fs.point.Voltage)
		}
		if fs.point.Current > 0 {
			currs = append(currs, fs.point.Current)
			powers = append(powers, fs.point.ActivePower)
		}
	}
	if len(volts) == 0 {
		return nil
	}

	vMean := mean(volts)
	vStd := stdDev(volts, vMean)
	stability := 1.0
	if vMean > 0 {
		stability = 1 - vStd/vMean
	}
	if stability < 0 {
		stability = 0
	}
	if stability > 1 {
		stability = 1
	}

	gq := &schema.GridQuality{
		VoltageStability: stability,
		VoltageMean:      vMean,
		VoltageStdDev:    vStd,
	}

	if len(currs) > 0 {
		apparent := vMean * mean(currs)
		if apparent > 0 {
			pf := mean(powers) / apparent
			if pf > 1 {
				pf = 1
			}
			if pf < 0 {
				pf = 0
			}
			gq.PowerFactor = &pf
		}
	}
	return gq
}
