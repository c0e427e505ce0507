// Package phase maps wall-clock time onto the five intraday trading phases
// and the risk posture each one carries.
package phase

import (
	"fmt"
	"time"
)

// Phase is one of the five fixed intraday windows. The set is closed; no
// phases are added at runtime.
type Phase int

const (
	MorningAggressive Phase = iota // 06:00-10:00
	MiddayBalanced                 // 10:00-14:00
	AfternoonMomentum              // 14:00-18:00
	EveningConsolidation           // 18:00-22:00
	NightDefensive                 // 22:00-06:00, wraps midnight
)

func (p Phase) String() string {
	switch p {
	case MorningAggressive:
		return "morning_aggressive"
	case MiddayBalanced:
		return "midday_balanced"
	case AfternoonMomentum:
		return "afternoon_momentum"
	case EveningConsolidation:
		return "evening_consolidation"
	case NightDefensive:
		return "night_defensive"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// All lists the phases in day order starting at the morning window.
var All = []Phase{
	MorningAggressive,
	MiddayBalanced,
	AfternoonMomentum,
	EveningConsolidation,
	NightDefensive,
}

// Profile is the risk posture a phase applies on top of the base limits.
// TradesPerHour is a cadence hint for the engine loop, not a hard cap.
type Profile struct {
	LeverageMult  float64
	SizeMult      float64
	TradesPerHour float64
}

// DefaultProfiles is the stock multiplier table: lean in during the morning
// session, wind down after the evening consolidation.
func DefaultProfiles() map[Phase]Profile {
	return map[Phase]Profile{
		MorningAggressive:    {LeverageMult: 1.3, SizeMult: 1.2, TradesPerHour: 6},
		MiddayBalanced:       {LeverageMult: 1.0, SizeMult: 1.0, TradesPerHour: 4},
		AfternoonMomentum:    {LeverageMult: 1.1, SizeMult: 1.1, TradesPerHour: 5},
		EveningConsolidation: {LeverageMult: 0.9, SizeMult: 0.8, TradesPerHour: 3},
		NightDefensive:       {LeverageMult: 0.7, SizeMult: 0.5, TradesPerHour: 1},
	}
}

// Schedule resolves timestamps to phases in a fixed time zone. The zone is
// injected so phase boundaries are deterministic under test and independent
// of the host's local zone.
type Schedule struct {
	loc      *time.Location
	profiles map[Phase]Profile
}

func NewSchedule(loc *time.Location, profiles map[Phase]Profile) (*Schedule, error) {
	if loc == nil {
		return nil, fmt.Errorf("phase: schedule requires a time zone")
	}
	if profiles == nil {
		profiles = DefaultProfiles()
	}
	for _, p := range All {
		prof, ok := profiles[p]
		if !ok {
			return nil, fmt.Errorf("phase: missing profile for %s", p)
		}
		if prof.LeverageMult <= 0 || prof.SizeMult <= 0 || prof.TradesPerHour <= 0 {
			return nil, fmt.Errorf("phase: profile for %s must have positive multipliers", p)
		}
	}
	return &Schedule{loc: loc, profiles: profiles}, nil
}

// PhaseFor maps a timestamp to its phase. Windows are inclusive-start,
// exclusive-end on the hour.
func (s *Schedule) PhaseFor(t time.Time) Phase {
	switch h := t.In(s.loc).Hour(); {
	case h >= 6 && h < 10:
		return MorningAggressive
	case h >= 10 && h < 14:
		return MiddayBalanced
	case h >= 14 && h < 18:
		return AfternoonMomentum
	case h >= 18 && h < 22:
		return EveningConsolidation
	default:
		return NightDefensive
	}
}

func (s *Schedule) Profile(p Phase) Profile {
	return s.profiles[p]
}

func (s *Schedule) Location() *time.Location { return s.loc }

// DayOpen returns midnight of t's calendar day in the schedule's zone.
func (s *Schedule) DayOpen(t time.Time) time.Time {
	lt := t.In(s.loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, s.loc)
}

// SameDay reports whether two timestamps fall on the same calendar day in
// the schedule's zone.
func (s *Schedule) SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(s.loc).Date()
	by, bm, bd := b.In(s.loc).Date()
	return ay == by && am == bm && ad == bd
}
