package risk

import (
	"fmt"

	"github.com/MeltedMindz/avantis-trading-bot/ledger"
)

// Verdict is the guardrail monitor's answer for a single decision cycle.
// Denials are routine control signals, not errors.
type Verdict int

const (
	Permitted Verdict = iota
	DeniedDailyLossLimit
	DeniedConsecutiveLosses
	DeniedTargetAlreadyMet
)

func (v Verdict) String() string {
	switch v {
	case Permitted:
		return "permitted"
	case DeniedDailyLossLimit:
		return "denied_daily_loss_limit"
	case DeniedConsecutiveLosses:
		return "denied_consecutive_losses"
	case DeniedTargetAlreadyMet:
		return "denied_target_already_met"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

func (v Verdict) Allowed() bool { return v == Permitted }

// Evaluate decides whether trading is currently permitted at all.
//
// First match wins, and the order is load-bearing: the daily loss limit is
// an unconditional kill switch that outranks every other condition. The
// verdict is computed fresh every cycle; a single settlement can flip it,
// so callers must never cache it.
func Evaluate(snap ledger.Snapshot, lim Limits) Verdict {
	if snap.RealizedPnLPct <= -lim.DailyLossLimitPct {
		return DeniedDailyLossLimit
	}
	if snap.ConsecutiveLosses >= lim.MaxConsecutiveLosses {
		return DeniedConsecutiveLosses
	}
	if lim.HaltOnTarget && snap.RealizedPnLPct >= lim.DailyTargetPct {
		return DeniedTargetAlreadyMet
	}
	return Permitted
}
