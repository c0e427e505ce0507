package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayRangeUsesGivenZone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	start, end, err := dayRange("2026-03-02", ny)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, ny), start)
	assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, ny), end)

	// A late-evening New York close sits inside the NY day but would fall
	// outside a UTC-bracketed window for the same date.
	lateClose := time.Date(2026, 3, 2, 23, 30, 0, 0, ny)
	assert.True(t, !lateClose.Before(start) && lateClose.Before(end))
	utcEnd := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	assert.False(t, lateClose.Before(utcEnd))
}

func TestDayRangeSpansDSTTransition(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2026-03-08 is the spring-forward date: the calendar day is 23 hours.
	start, end, err := dayRange("2026-03-08", ny)
	require.NoError(t, err)
	assert.Equal(t, 23*time.Hour, end.Sub(start))
}

func TestDayRangeRejectsBadDate(t *testing.T) {
	_, _, err := dayRange("03/02/2026", time.UTC)
	assert.Error(t, err)
}
