package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dayOpen = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func TestNewRejectsNonPositiveEquity(t *testing.T) {
	t.Parallel()

	_, err := New(0, dayOpen)
	assert.ErrorIs(t, err, ErrInvalidEquity)

	_, err = New(-100, dayOpen)
	assert.ErrorIs(t, err, ErrInvalidEquity)
}

func TestRecordOutcomeStreak(t *testing.T) {
	t.Parallel()

	l, err := New(1000, dayOpen)
	require.NoError(t, err)

	// Any non-positive delta extends the streak by exactly one; any
	// positive delta resets it.
	l.RecordOutcome(-20)
	l.RecordOutcome(-20)
	assert.Equal(t, 2, l.Snapshot().ConsecutiveLosses)

	l.RecordOutcome(0) // break-even counts as a loss
	assert.Equal(t, 3, l.Snapshot().ConsecutiveLosses)

	l.RecordOutcome(5)
	assert.Equal(t, 0, l.Snapshot().ConsecutiveLosses)

	snap := l.Snapshot()
	assert.Equal(t, 4, snap.TradeCount)
	assert.Equal(t, 1, snap.Wins)
	assert.InDelta(t, 965.0, snap.CurrentEquity, 1e-9)
}

func TestRealizedPnLPct(t *testing.T) {
	t.Parallel()

	l, err := New(1000, dayOpen)
	require.NoError(t, err)

	l.RecordOutcome(-60)
	assert.InDelta(t, -0.06, l.RealizedPnLPct(), 1e-12)

	l.RecordOutcome(160)
	assert.InDelta(t, 0.10, l.RealizedPnLPct(), 1e-12)
}

func TestRollOver(t *testing.T) {
	t.Parallel()

	l, err := New(1000, dayOpen)
	require.NoError(t, err)
	l.RecordOutcome(-50)
	l.RecordOutcome(-50)

	next := dayOpen.Add(24 * time.Hour)
	require.NoError(t, l.RollOver(900, next))

	snap := l.Snapshot()
	assert.InDelta(t, 900.0, snap.StartEquity, 1e-9)
	assert.InDelta(t, 900.0, snap.CurrentEquity, 1e-9)
	assert.Zero(t, snap.TradeCount)
	assert.Zero(t, snap.ConsecutiveLosses)
	assert.Equal(t, next, snap.DayOpen)
}

func TestRollOverRejectsInvalidEquityAndKeepsDay(t *testing.T) {
	t.Parallel()

	l, err := New(1000, dayOpen)
	require.NoError(t, err)
	l.RecordOutcome(-100)

	assert.ErrorIs(t, l.RollOver(0, dayOpen.Add(24*time.Hour)), ErrInvalidEquity)

	// Previous day's ledger retained untouched.
	snap := l.Snapshot()
	assert.Equal(t, 1, snap.TradeCount)
	assert.InDelta(t, 900.0, snap.CurrentEquity, 1e-9)
	assert.Equal(t, dayOpen, snap.DayOpen)
}

func TestWinRate(t *testing.T) {
	t.Parallel()

	l, err := New(1000, dayOpen)
	require.NoError(t, err)

	assert.Zero(t, l.Snapshot().WinRate())

	l.RecordOutcome(10)
	l.RecordOutcome(10)
	l.RecordOutcome(-10)
	l.RecordOutcome(10)
	assert.InDelta(t, 0.75, l.Snapshot().WinRate(), 1e-12)
}
