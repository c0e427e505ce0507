package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVJournal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	daysPath := filepath.Join(dir, "days.csv")

	j, err := NewCSV(tradesPath, daysPath)
	require.NoError(t, err)

	closed := time.Date(2026, 3, 2, 11, 30, 0, 0, time.UTC)
	require.NoError(t, j.RecordTrade(sampleTrade("t-1", closed)))
	require.NoError(t, j.RecordDay(DayRecord{
		Date: "2026-03-02", StartEquity: 1000, EndEquity: 1100,
		TargetPct: 0.10, RealizedPct: 0.10, Trades: 3, Achieved: true,
	}))
	require.NoError(t, j.Close())

	rows := readCSV(t, tradesPath)
	require.Len(t, rows, 2) // header + one trade
	assert.Equal(t, "trade_id", rows[0][0])
	assert.Equal(t, "t-1", rows[1][0])
	assert.Equal(t, "take_profit", rows[1][11])

	rows = readCSV(t, daysPath)
	require.Len(t, rows, 2)
	assert.Equal(t, "2026-03-02", rows[1][0])
	assert.Equal(t, "true", rows[1][6])
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	fh, err := os.Open(path)
	require.NoError(t, err)
	defer fh.Close()
	rows, err := csv.NewReader(fh).ReadAll()
	require.NoError(t, err)
	return rows
}
