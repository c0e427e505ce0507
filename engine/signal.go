package engine

import (
	"github.com/MeltedMindz/avantis-trading-bot/market"
)

// SignalSource produces candidate trade directions. Strategy math lives
// outside this engine; the sizer and guardrails treat whatever comes out of
// here as an intent, nothing more.
type SignalSource interface {
	// Next returns the direction for this cycle, or ok=false to sit the
	// cycle out.
	Next(p market.Price) (dir market.Direction, ok bool)
}

// momentum follows the last price move: up means long, down means short,
// flat means stand aside. A placeholder source for sim runs.
type momentum struct {
	lastMid float64
}

func Momentum() SignalSource { return &momentum{} }

func (m *momentum) Next(p market.Price) (market.Direction, bool) {
	mid := p.Mid()
	prev := m.lastMid
	m.lastMid = mid
	switch {
	case prev == 0 || mid == prev:
		return 0, false
	case mid > prev:
		return market.Long, true
	default:
		return market.Short, true
	}
}

// Static always proposes the same direction. Useful in tests.
type Static struct {
	Direction market.Direction
}

func (s Static) Next(market.Price) (market.Direction, bool) {
	return s.Direction, true
}
