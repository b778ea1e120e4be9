package domain

import (
	"math"

	"github.com/delhibreath/backend/pkg/utils"
)

// Breakpoint maps one PM2.5 concentration range to an AQI range,
// per the US EPA table (https://www.airnow.gov/aqi/aqi-calculator/).
type Breakpoint struct {
	ConcLow  float64
	ConcHigh float64
	AQILow   int
	AQIHigh  int
}

// PM25Breakpoints is the US EPA PM2.5 breakpoint table. Ranges are
// contiguous and non-overlapping over [0.0, 500.4] µg/m³.
var PM25Breakpoints = []Breakpoint{
	{0.0, 12.0, 0, 50},
	{12.1, 35.4, 51, 100},
	{35.5, 55.4, 101, 150},
	{55.5, 150.4, 151, 200},
	{150.5, 250.4, 201, 300},
	{250.5, 350.4, 301, 400},
	{350.5, 500.4, 401, 500},
}

// MaxAQI is the ceiling returned for concentrations above the table domain.
const MaxAQI = 500

// PM25ToAQI converts a PM2.5 concentration in µg/m³ to an AQI integer
// in [0, 500]. The concentration is rounded to one decimal place (half
// away from zero, the EPA convention) before the table lookup, and
// negative inputs are clamped to zero. Concentrations above 500.4
// saturate to 500.
func PM25ToAQI(conc float64) int {
	if conc < 0 || math.IsNaN(conc) {
		conc = 0
	}
	c := utils.RoundTo(conc, 1)

	for _, bp := range PM25Breakpoints {
		if bp.ConcLow <= c && c <= bp.ConcHigh {
			t := (c - bp.ConcLow) / (bp.ConcHigh - bp.ConcLow)
			return int(math.Round(utils.Lerp(float64(bp.AQILow), float64(bp.AQIHigh), t)))
		}
	}
	return MaxAQI
}

// ReducedConcentration models the concentration after filtration at the
// given efficiency percent. Efficiency is clamped to [0, 95].
func ReducedConcentration(conc float64, efficiency int) float64 {
	eff := utils.Clamp(float64(efficiency), 0, 95)
	return conc * (1 - eff/100)
}

// ClampEfficiency limits a filtration efficiency percent to [0, 95].
func ClampEfficiency(efficiency int) int {
	return int(utils.Clamp(float64(efficiency), 0, 95))
}

// ImprovementPercent returns how much lower the inside AQI is relative
// to the outside AQI, as a whole percentage, never negative.
func ImprovementPercent(outside, inside int) int {
	denom := outside
	if denom < 1 {
		denom = 1
	}
	improvement := int(math.Round(float64(outside-inside) / float64(denom) * 100))
	if improvement < 0 {
		return 0
	}
	return improvement
}

// AQICategory returns the EPA descriptor for an AQI value.
func AQICategory(aqi int) string {
	switch {
	case aqi <= 50:
		return "Good"
	case aqi <= 100:
		return "Moderate"
	case aqi <= 150:
		return "Unhealthy for Sensitive Groups"
	case aqi <= 200:
		return "Unhealthy"
	case aqi <= 300:
		return "Very Unhealthy"
	default:
		return "Hazardous"
	}
}
