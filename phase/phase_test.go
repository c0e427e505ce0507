package phase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUTC(t *testing.T) *Schedule {
	t.Helper()
	s, err := NewSchedule(time.UTC, nil)
	require.NoError(t, err)
	return s
}

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

func TestPhaseForBoundaries(t *testing.T) {
	t.Parallel()
	s := newUTC(t)

	tests := []struct {
		name string
		at   time.Time
		want Phase
	}{
		{"just before morning", at(5, 59), NightDefensive},
		{"morning open", at(6, 0), MorningAggressive},
		{"morning end", at(9, 59), MorningAggressive},
		{"midday open", at(10, 0), MiddayBalanced},
		{"afternoon open", at(14, 0), AfternoonMomentum},
		{"evening open", at(18, 0), EveningConsolidation},
		{"night open", at(22, 0), NightDefensive},
		{"before midnight", at(23, 30), NightDefensive},
		{"after midnight", at(0, 30), NightDefensive},
		{"deep night", at(3, 0), NightDefensive},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, s.PhaseFor(tt.at))
		})
	}
}

func TestPhaseForUsesConfiguredZone(t *testing.T) {
	t.Parallel()

	// 07:00 UTC is 09:00 in UTC+2: still morning there, but one zone over
	// in UTC+4 it is already 11:00 and midday.
	ts := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)

	s2, err := NewSchedule(time.FixedZone("UTC+2", 2*3600), nil)
	require.NoError(t, err)
	assert.Equal(t, MorningAggressive, s2.PhaseFor(ts))

	s4, err := NewSchedule(time.FixedZone("UTC+4", 4*3600), nil)
	require.NoError(t, err)
	assert.Equal(t, MiddayBalanced, s4.PhaseFor(ts))
}

func TestNewScheduleValidation(t *testing.T) {
	t.Parallel()

	_, err := NewSchedule(nil, nil)
	assert.Error(t, err)

	partial := DefaultProfiles()
	delete(partial, NightDefensive)
	_, err = NewSchedule(time.UTC, partial)
	assert.Error(t, err)

	bad := DefaultProfiles()
	bad[MiddayBalanced] = Profile{LeverageMult: 0, SizeMult: 1, TradesPerHour: 1}
	_, err = NewSchedule(time.UTC, bad)
	assert.Error(t, err)
}

func TestSameDayAndDayOpen(t *testing.T) {
	t.Parallel()
	s := newUTC(t)

	a := at(23, 59)
	b := a.Add(2 * time.Minute)
	assert.False(t, s.SameDay(a, b))
	assert.True(t, s.SameDay(a, at(0, 1)))

	open := s.DayOpen(at(15, 42))
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), open)
}

func TestDefaultProfilesCoverAllPhases(t *testing.T) {
	t.Parallel()

	profs := DefaultProfiles()
	for _, p := range All {
		_, ok := profs[p]
		assert.True(t, ok, "profile for %s", p)
	}
}
