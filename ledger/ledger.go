package ledger

import (
	"errors"
	"sync"
	"time"
)

// ErrInvalidEquity is returned when a ledger would be created or rolled
// over with a non-positive start equity.
var ErrInvalidEquity = errors.New("ledger: start equity must be positive")

// Ledger tracks a single trading day: start-of-day equity, running equity,
// settled trade counts and the consecutive-loss streak.
//
// The ledger is mutated only by the engine's settlement step and by day
// rollover. Everything else (guardrails, sizing, status reporting) works
// from a Snapshot, which may be taken from any goroutine.
type Ledger struct {
	mu sync.Mutex

	startEquity       float64
	currentEquity     float64
	tradeCount        int
	wins              int
	consecutiveLosses int
	dayOpen           time.Time
}

// Snapshot is a read-only copy of the ledger state. Consumers never hold a
// reference into the live ledger.
type Snapshot struct {
	StartEquity       float64
	CurrentEquity     float64
	RealizedPnLPct    float64
	TradeCount        int
	Wins              int
	ConsecutiveLosses int
	DayOpen           time.Time
}

func New(startEquity float64, dayOpen time.Time) (*Ledger, error) {
	if startEquity <= 0 {
		return nil, ErrInvalidEquity
	}
	return &Ledger{
		startEquity:   startEquity,
		currentEquity: startEquity,
		dayOpen:       dayOpen,
	}, nil
}

// RecordOutcome applies a settled trade's P&L delta. A positive delta resets
// the consecutive-loss streak; zero or negative extends it.
func (l *Ledger) RecordOutcome(pnlDelta float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.currentEquity += pnlDelta
	l.tradeCount++
	if pnlDelta > 0 {
		l.wins++
		l.consecutiveLosses = 0
	} else {
		l.consecutiveLosses++
	}
}

// RollOver resets the ledger for a new trading day. The previous day's state
// is discarded; callers wanting a day summary must snapshot first. A
// non-positive equity is rejected and the current day's ledger is retained.
func (l *Ledger) RollOver(newStartEquity float64, dayOpen time.Time) error {
	if newStartEquity <= 0 {
		return ErrInvalidEquity
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.startEquity = newStartEquity
	l.currentEquity = newStartEquity
	l.tradeCount = 0
	l.wins = 0
	l.consecutiveLosses = 0
	l.dayOpen = dayOpen
	return nil
}

// RealizedPnLPct is the day's realized return relative to start equity.
func (l *Ledger) RealizedPnLPct() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.realizedPct()
}

func (l *Ledger) realizedPct() float64 {
	return (l.currentEquity - l.startEquity) / l.startEquity
}

func (l *Ledger) DayOpen() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dayOpen
}

func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Snapshot{
		StartEquity:       l.startEquity,
		CurrentEquity:     l.currentEquity,
		RealizedPnLPct:    l.realizedPct(),
		TradeCount:        l.tradeCount,
		Wins:              l.wins,
		ConsecutiveLosses: l.consecutiveLosses,
		DayOpen:           l.dayOpen,
	}
}

// WinRate returns the fraction of settled trades that were profitable.
func (s Snapshot) WinRate() float64 {
	if s.TradeCount == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.TradeCount)
}
