// Package compound provides growth projections and the day-by-day history
// that tracks how realized returns compound against the configured daily
// target. Everything here is reporting: none of it feeds back into sizing
// or guardrails.
package compound

import "math"

// Project returns the equity multiplier after days of compounding at
// dailyRate, i.e. (1+dailyRate)^days. Computed as exp(days*log1p(rate))
// so long horizons stay numerically stable. A rate at or below -100%
// wipes the account regardless of horizon.
func Project(dailyRate float64, days int) float64 {
	if days <= 0 {
		return 1
	}
	if dailyRate == 0 {
		return 1
	}
	if dailyRate <= -1 {
		return 0
	}
	return math.Exp(float64(days) * math.Log1p(dailyRate))
}

// Horizons are the projection windows shown in reports.
var Horizons = []int{7, 14, 30, 60, 90, 365}

type Projection struct {
	Days       int
	Multiplier float64
}

// Table projects dailyRate across the standard horizons.
func Table(dailyRate float64) []Projection {
	out := make([]Projection, 0, len(Horizons))
	for _, d := range Horizons {
		out = append(out, Projection{Days: d, Multiplier: Project(dailyRate, d)})
	}
	return out
}
