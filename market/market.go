package market

import "time"

// Direction is the side of a perpetual position.
type Direction int

const (
	Long Direction = iota + 1
	Short
)

func (d Direction) String() string {
	switch d {
	case Long:
		return "long"
	case Short:
		return "short"
	default:
		return "unknown"
	}
}

// Sign returns +1 for Long, -1 for Short. Used when applying a price move
// to P&L.
func (d Direction) Sign() float64 {
	if d == Short {
		return -1
	}
	return 1
}

// Price is a point-in-time quote for a pair.
type Price struct {
	Pair string
	Bid  float64
	Ask  float64
	Time time.Time
}

func (p Price) Mid() float64 {
	return (p.Bid + p.Ask) / 2
}

// Entry returns the side-correct entry price: longs buy the ask, shorts
// sell the bid.
func (p Price) Entry(d Direction) float64 {
	if d == Short {
		return p.Bid
	}
	return p.Ask
}

// Exit returns the side-correct close price.
func (p Price) Exit(d Direction) float64 {
	if d == Short {
		return p.Ask
	}
	return p.Bid
}
