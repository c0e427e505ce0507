// Package broker defines the engine's view of the execution venue and the
// price feed. Implementations live elsewhere (broker/sim here, real
// exchange clients out of tree); the engine only ever sees these
// interfaces.
package broker

import (
	"context"
	"errors"
	"time"

	"github.com/MeltedMindz/avantis-trading-bot/market"
	"github.com/MeltedMindz/avantis-trading-bot/risk"
)

var (
	// ErrExecutionTimeout means the venue did not settle within the cycle's
	// deadline. The ledger must not be touched; the next cycle re-sizes
	// from scratch.
	ErrExecutionTimeout = errors.New("broker: execution timed out")

	// ErrExecutionRejected means the venue refused the order outright.
	ErrExecutionRejected = errors.New("broker: order rejected")
)

// TradeOutcome is a settled trade as reported by the venue. RealizedPL is
// net of fees; the engine never recomputes fees itself.
type TradeOutcome struct {
	TradeID    string
	Pair       string
	Direction  market.Direction
	Size       float64
	Leverage   float64
	EntryPrice float64
	ExitPrice  float64
	RealizedPL float64
	Fees       float64
	Reason     string // "take_profit", "stop_loss", ...
	OpenTime   time.Time
	CloseTime  time.Time
}

// ExecutionClient submits trades and reports account equity.
//
// SubmitTrade blocks until the trade settles (stop or target hit) or ctx
// expires; callers bound it with a deadline so a stalled venue never
// blocks future decision cycles.
type ExecutionClient interface {
	SubmitTrade(ctx context.Context, params risk.TradeParams) (TradeOutcome, error)
	GetEquity(ctx context.Context) (float64, error)
	MinTradeSize() float64
}

// PriceFeed supplies the current market price for a pair. The engine treats
// it as input and does not manage the subscription.
type PriceFeed interface {
	GetPrice(ctx context.Context, pair string) (market.Price, error)
}
