package risk

import (
	"errors"
	"fmt"

	"github.com/MeltedMindz/avantis-trading-bot/ledger"
	"github.com/MeltedMindz/avantis-trading-bot/market"
	"github.com/MeltedMindz/avantis-trading-bot/phase"
)

// ErrInsufficientEquity means the computed size fell below the execution
// venue's minimum (or was non-positive). The cycle is skipped; nothing is
// wrong with the account.
var ErrInsufficientEquity = errors.New("risk: computed size below tradable minimum")

// DeniedError carries a guardrail denial out of SizeTrade. It is a control
// signal: the caller must skip the cycle and surface the reason, nothing
// more.
type DeniedError struct {
	Verdict Verdict
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("risk: trading denied: %s", e.Verdict)
}

// TradeParams is the sizing decision for one trade. Immutable once
// produced; consumed exactly once by the engine loop.
type TradeParams struct {
	Pair       string
	Direction  market.Direction
	Size       float64 // margin committed, in account currency
	Leverage   float64
	EntryPrice float64
	StopLoss   float64
	TakeProfit float64
}

// Notional is the leveraged exposure the trade opens.
func (p TradeParams) Notional() float64 {
	return p.Size * p.Leverage
}

// SizeInputs is everything SizeTrade reads. All fields are snapshots; the
// sizer holds no state and mutates nothing.
type SizeInputs struct {
	Pair      string
	Direction market.Direction
	Equity    float64
	Entry     float64
	Profile   phase.Profile
	Ledger    ledger.Snapshot

	// MinSize is the venue-imposed minimum, supplied by the execution
	// client.
	MinSize float64
}

// SizeTrade computes the (size, leverage, stop, target) tuple for the next
// trade, or refuses with a *DeniedError / ErrInsufficientEquity.
//
// Leverage is the base biased by progress toward the daily target (behind
// target leans in, ahead of target protects gains), scaled by the phase
// posture, and finally clamped to [1, MaxLeverage]. Size is a fraction of
// current equity under the same bias, so risk compounds with the account.
func SizeTrade(in SizeInputs, lim Limits) (TradeParams, error) {
	if v := Evaluate(in.Ledger, lim); !v.Allowed() {
		return TradeParams{}, &DeniedError{Verdict: v}
	}
	if in.Entry <= 0 {
		return TradeParams{}, fmt.Errorf("risk: entry price must be positive, got %v", in.Entry)
	}

	progress := 0.0
	if lim.DailyTargetPct > 0 {
		progress = in.Ledger.RealizedPnLPct / lim.DailyTargetPct
	}
	bias := lim.Curve.Mult(progress)

	leverage := clamp(lim.BaseLeverage*bias*in.Profile.LeverageMult, 1, lim.MaxLeverage)

	size := in.Equity * lim.RiskFraction * bias * in.Profile.SizeMult
	if size <= 0 || size < in.MinSize {
		return TradeParams{}, ErrInsufficientEquity
	}

	stop, target := exitPrices(in.Entry, in.Direction, lim)

	return TradeParams{
		Pair:       in.Pair,
		Direction:  in.Direction,
		Size:       size,
		Leverage:   leverage,
		EntryPrice: in.Entry,
		StopLoss:   stop,
		TakeProfit: target,
	}, nil
}

func exitPrices(entry float64, d market.Direction, lim Limits) (stop, target float64) {
	if d == market.Short {
		return entry * (1 + lim.StopLossPct), entry * (1 - lim.TakeProfitPct)
	}
	return entry * (1 - lim.StopLossPct), entry * (1 + lim.TakeProfitPct)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
