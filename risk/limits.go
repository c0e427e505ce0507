package risk

import "fmt"

// LeverageCurve biases leverage and sizing by progress toward the daily
// target: behind target (progress <= 0) gets MaxMult, target met or
// exceeded (progress >= 1) gets MinMult, linear in between. Monotonically
// non-increasing and bounded by construction.
type LeverageCurve struct {
	MinMult float64
	MaxMult float64
}

// Mult evaluates the curve at a progress ratio. Progress may be any finite
// value, including large negatives after a bad run.
func (c LeverageCurve) Mult(progress float64) float64 {
	switch {
	case progress <= 0:
		return c.MaxMult
	case progress >= 1:
		return c.MinMult
	default:
		return c.MaxMult + progress*(c.MinMult-c.MaxMult)
	}
}

// Limits is the immutable risk configuration, loaded once at startup and
// never reloaded mid-day.
type Limits struct {
	DailyTargetPct       float64
	DailyLossLimitPct    float64
	MaxConsecutiveLosses int

	BaseLeverage float64
	MaxLeverage  float64
	Curve        LeverageCurve

	StopLossPct   float64
	TakeProfitPct float64

	// RiskFraction is the base position size as a fraction of equity, so
	// absolute risk compounds and contracts with the account.
	RiskFraction float64

	// HaltOnTarget stops trading once the daily target is met instead of
	// merely de-risking.
	HaltOnTarget bool
}

func (l Limits) Validate() error {
	if l.DailyTargetPct <= 0 {
		return fmt.Errorf("risk: daily target pct must be positive")
	}
	if l.DailyLossLimitPct <= 0 {
		return fmt.Errorf("risk: daily loss limit pct must be positive")
	}
	if l.MaxConsecutiveLosses < 1 {
		return fmt.Errorf("risk: max consecutive losses must be at least 1")
	}
	if l.BaseLeverage < 1 {
		return fmt.Errorf("risk: base leverage must be at least 1")
	}
	if l.MaxLeverage < 1 {
		return fmt.Errorf("risk: max leverage must be at least 1")
	}
	if l.StopLossPct <= 0 || l.TakeProfitPct <= 0 {
		return fmt.Errorf("risk: stop loss and take profit pcts must be positive")
	}
	if l.RiskFraction <= 0 || l.RiskFraction > 1 {
		return fmt.Errorf("risk: risk fraction must be in (0, 1]")
	}
	if l.Curve.MinMult <= 0 || l.Curve.MaxMult < l.Curve.MinMult {
		return fmt.Errorf("risk: leverage curve requires 0 < min_mult <= max_mult")
	}
	return nil
}

// DefaultLimits mirrors the stock aggressive-compounding posture: 10% daily
// target, 5% daily loss kill switch, pause after 3 straight losses.
func DefaultLimits() Limits {
	return Limits{
		DailyTargetPct:       0.10,
		DailyLossLimitPct:    0.05,
		MaxConsecutiveLosses: 3,
		BaseLeverage:         10,
		MaxLeverage:          50,
		Curve:                LeverageCurve{MinMult: 0.5, MaxMult: 1.5},
		StopLossPct:          0.05,
		TakeProfitPct:        0.10,
		RiskFraction:         0.10,
	}
}
