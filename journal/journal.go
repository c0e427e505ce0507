// Package journal persists settled trades and completed trading days.
package journal

import "time"

// TradeRecord is one settled trade as fed back into the ledger.
type TradeRecord struct {
	TradeID    string
	Pair       string
	Direction  string
	Size       float64
	Leverage   float64
	EntryPrice float64
	ExitPrice  float64
	RealizedPL float64
	Fees       float64
	OpenTime   time.Time
	CloseTime  time.Time
	Reason     string
}

// DayRecord is a completed trading day, written at rollover.
type DayRecord struct {
	Date        string // YYYY-MM-DD in the engine's zone
	StartEquity float64
	EndEquity   float64
	TargetPct   float64
	RealizedPct float64
	Trades      int
	Achieved    bool
}

type Journal interface {
	RecordTrade(TradeRecord) error
	RecordDay(DayRecord) error
	Close() error
}

// Nop discards everything. Used when journaling is disabled.
type Nop struct{}

func (Nop) RecordTrade(TradeRecord) error { return nil }
func (Nop) RecordDay(DayRecord) error     { return nil }
func (Nop) Close() error                  { return nil }
