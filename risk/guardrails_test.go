package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MeltedMindz/avantis-trading-bot/ledger"
)

func snapWith(pnlPct float64, losses int) ledger.Snapshot {
	start := 1000.0
	return ledger.Snapshot{
		StartEquity:       start,
		CurrentEquity:     start * (1 + pnlPct),
		RealizedPnLPct:    pnlPct,
		ConsecutiveLosses: losses,
	}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	lim := DefaultLimits() // 5% daily loss limit, 3 consecutive losses

	tests := []struct {
		name string
		snap ledger.Snapshot
		want Verdict
	}{
		{"fresh day", snapWith(0, 0), Permitted},
		{"small loss", snapWith(-0.04, 2), Permitted},
		{"loss at limit", snapWith(-0.05, 0), DeniedDailyLossLimit},
		{"loss beyond limit", snapWith(-0.12, 0), DeniedDailyLossLimit},
		{"streak at limit", snapWith(-0.01, 3), DeniedConsecutiveLosses},
		{"streak beyond limit", snapWith(0.02, 7), DeniedConsecutiveLosses},
		{"target met keeps trading", snapWith(0.12, 0), Permitted},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Evaluate(tt.snap, lim))
		})
	}
}

func TestEvaluateLossLimitOutranksStreak(t *testing.T) {
	t.Parallel()

	lim := DefaultLimits()

	// Both conditions hold; the loss limit must win regardless of how deep
	// the streak is.
	for _, losses := range []int{0, 3, 50} {
		v := Evaluate(snapWith(-0.08, losses), lim)
		assert.Equal(t, DeniedDailyLossLimit, v, "losses=%d", losses)
	}
}

func TestEvaluateHaltOnTarget(t *testing.T) {
	t.Parallel()

	lim := DefaultLimits()
	lim.HaltOnTarget = true

	assert.Equal(t, DeniedTargetAlreadyMet, Evaluate(snapWith(0.10, 0), lim))
	assert.Equal(t, DeniedTargetAlreadyMet, Evaluate(snapWith(0.25, 0), lim))
	assert.Equal(t, Permitted, Evaluate(snapWith(0.09, 0), lim))

	// Still outranked by the kill switches.
	assert.Equal(t, DeniedConsecutiveLosses, Evaluate(snapWith(0.10, 3), lim))
}

func TestVerdictStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "permitted", Permitted.String())
	assert.Equal(t, "denied_daily_loss_limit", DeniedDailyLossLimit.String())
	assert.True(t, Permitted.Allowed())
	assert.False(t, DeniedConsecutiveLosses.Allowed())
}
