package compound

import (
	"math"
	"sync"
)

// DayResult is one completed trading day.
type DayResult struct {
	Date        string // YYYY-MM-DD in the configured zone
	StartEquity float64
	EndEquity   float64
	TargetPct   float64
	Trades      int
	Achieved    bool
}

// ReturnPct is the day's realized return relative to its start equity.
func (d DayResult) ReturnPct() float64 {
	if d.StartEquity <= 0 {
		return 0
	}
	return (d.EndEquity - d.StartEquity) / d.StartEquity
}

// History accumulates completed days for streak and dispersion reporting.
// The engine appends from its loop; reporting callers may read concurrently.
type History struct {
	mu   sync.Mutex
	days []DayResult
}

func (h *History) Add(d DayResult) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.days = append(h.days, d)
}

func (h *History) Days() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.days)
}

// Stats summarizes the recorded history.
type Stats struct {
	Days          int
	AchievedDays  int
	CurrentStreak int // consecutive achieved days ending at the latest day
	LongestStreak int
	BestDayPct    float64
	WorstDayPct   float64
	AvgDayPct     float64
}

func (h *History) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := Stats{Days: len(h.days)}
	if s.Days == 0 {
		return s
	}

	var sum float64
	s.BestDayPct = math.Inf(-1)
	s.WorstDayPct = math.Inf(1)

	streak := 0
	for _, d := range h.days {
		r := d.ReturnPct()
		sum += r
		if r > s.BestDayPct {
			s.BestDayPct = r
		}
		if r < s.WorstDayPct {
			s.WorstDayPct = r
		}
		if d.Achieved {
			s.AchievedDays++
			streak++
			if streak > s.LongestStreak {
				s.LongestStreak = streak
			}
		} else {
			streak = 0
		}
	}
	s.CurrentStreak = streak
	s.AvgDayPct = sum / float64(s.Days)
	return s
}
