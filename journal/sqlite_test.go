package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrade(id string, closed time.Time) TradeRecord {
	return TradeRecord{
		TradeID:    id,
		Pair:       "ETH-USD",
		Direction:  "long",
		Size:       100,
		Leverage:   15,
		EntryPrice: 2000,
		ExitPrice:  2200,
		RealizedPL: 147.5,
		Fees:       2.5,
		OpenTime:   closed.Add(-20 * time.Minute),
		CloseTime:  closed,
		Reason:     "take_profit",
	}
}

func TestSQLiteTradeRoundTrip(t *testing.T) {
	t.Parallel()

	j, err := NewSQLite(filepath.Join(t.TempDir(), "journal.sqlite"))
	require.NoError(t, err)
	defer j.Close()

	closed := time.Date(2026, 3, 2, 11, 30, 0, 0, time.UTC)
	require.NoError(t, j.RecordTrade(sampleTrade("t-1", closed)))

	rec, err := j.GetTrade("t-1")
	require.NoError(t, err)
	assert.Equal(t, "ETH-USD", rec.Pair)
	assert.Equal(t, "long", rec.Direction)
	assert.InDelta(t, 15.0, rec.Leverage, 1e-9)
	assert.InDelta(t, 147.5, rec.RealizedPL, 1e-9)
	assert.True(t, rec.CloseTime.Equal(closed))

	_, err = j.GetTrade("nope")
	assert.Error(t, err)
}

func TestSQLiteListTradesClosedBetween(t *testing.T) {
	t.Parallel()

	j, err := NewSQLite(filepath.Join(t.TempDir(), "journal.sqlite"))
	require.NoError(t, err)
	defer j.Close()

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordTrade(sampleTrade("t-1", day.Add(9*time.Hour))))
	require.NoError(t, j.RecordTrade(sampleTrade("t-2", day.Add(15*time.Hour))))
	require.NoError(t, j.RecordTrade(sampleTrade("t-3", day.Add(26*time.Hour)))) // next day

	recs, err := j.ListTradesClosedBetween(day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "t-1", recs[0].TradeID)
	assert.Equal(t, "t-2", recs[1].TradeID)
}

func TestSQLiteDays(t *testing.T) {
	t.Parallel()

	j, err := NewSQLite(filepath.Join(t.TempDir(), "journal.sqlite"))
	require.NoError(t, err)
	defer j.Close()

	require.NoError(t, j.RecordDay(DayRecord{
		Date: "2026-03-01", StartEquity: 1000, EndEquity: 1120,
		TargetPct: 0.10, RealizedPct: 0.12, Trades: 8, Achieved: true,
	}))
	require.NoError(t, j.RecordDay(DayRecord{
		Date: "2026-03-02", StartEquity: 1120, EndEquity: 1064,
		TargetPct: 0.10, RealizedPct: -0.05, Trades: 4, Achieved: false,
	}))

	days, err := j.ListDays(10)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, "2026-03-02", days[0].Date) // newest first
	assert.False(t, days[0].Achieved)
	assert.True(t, days[1].Achieved)

	// Re-recording the same date replaces it.
	require.NoError(t, j.RecordDay(DayRecord{Date: "2026-03-02", StartEquity: 1120, EndEquity: 1200, TargetPct: 0.10, RealizedPct: 0.071, Trades: 6, Achieved: false}))
	days, err = j.ListDays(10)
	require.NoError(t, err)
	assert.Len(t, days, 2)
	assert.InDelta(t, 1200.0, days[0].EndEquity, 1e-9)
}
