// Package sim is an in-process perpetual execution venue. It fills at its
// own quoted prices, settles positions when their stop or target trades
// through, and charges a taker fee per side. It exists so the engine loop
// and the CLI can run end to end without exchange credentials.
package sim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MeltedMindz/avantis-trading-bot/broker"
	"github.com/MeltedMindz/avantis-trading-bot/internal/id"
	"github.com/MeltedMindz/avantis-trading-bot/journal"
	"github.com/MeltedMindz/avantis-trading-bot/market"
	"github.com/MeltedMindz/avantis-trading-bot/risk"
)

type Engine struct {
	mu      sync.Mutex
	equity  float64
	feeRate float64 // per side, on notional
	minSize float64
	prices  map[string]market.Price
	open    *position
	journal journal.Journal
}

type position struct {
	id       string
	params   risk.TradeParams
	entry    float64
	openTime time.Time
	settled  chan broker.TradeOutcome
}

func NewEngine(startEquity, feeRate, minSize float64, j journal.Journal) *Engine {
	if j == nil {
		j = journal.Nop{}
	}
	return &Engine{
		equity:  startEquity,
		feeRate: feeRate,
		minSize: minSize,
		prices:  make(map[string]market.Price),
		journal: j,
	}
}

func (e *Engine) MinTradeSize() float64 { return e.minSize }

// GetPrice implements broker.PriceFeed.
func (e *Engine) GetPrice(ctx context.Context, pair string) (market.Price, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, ok := e.prices[pair]
	if !ok {
		return market.Price{}, fmt.Errorf("sim: no price for %q", pair)
	}
	return p, nil
}

// GetEquity reports balance plus unrealized P&L on the open position.
func (e *Engine) GetEquity(ctx context.Context) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	eq := e.equity
	if e.open != nil {
		if p, ok := e.prices[e.open.params.Pair]; ok {
			eq += e.unrealizedLocked(p)
		}
	}
	return eq, nil
}

// SubmitTrade opens a position at the current side-correct price and blocks
// until the stop or target settles it, or ctx expires. On expiry the
// position is force-closed at the current mark and ErrExecutionTimeout is
// returned; the caller must not apply any outcome.
func (e *Engine) SubmitTrade(ctx context.Context, params risk.TradeParams) (broker.TradeOutcome, error) {
	e.mu.Lock()
	if params.Size < e.minSize {
		e.mu.Unlock()
		return broker.TradeOutcome{}, fmt.Errorf("%w: size %.4f below minimum %.4f",
			broker.ErrExecutionRejected, params.Size, e.minSize)
	}
	if e.open != nil {
		e.mu.Unlock()
		return broker.TradeOutcome{}, fmt.Errorf("%w: position already open", broker.ErrExecutionRejected)
	}
	p, ok := e.prices[params.Pair]
	if !ok {
		e.mu.Unlock()
		return broker.TradeOutcome{}, fmt.Errorf("%w: no price for %q", broker.ErrExecutionRejected, params.Pair)
	}

	pos := &position{
		id:       id.Trade(),
		params:   params,
		entry:    p.Entry(params.Direction),
		openTime: p.Time,
		settled:  make(chan broker.TradeOutcome, 1),
	}
	e.open = pos
	e.mu.Unlock()

	select {
	case out := <-pos.settled:
		return out, nil
	case <-ctx.Done():
		e.forceClose(pos, "timed_out")
		return broker.TradeOutcome{}, broker.ErrExecutionTimeout
	}
}

// UpdatePrice publishes a new quote and settles the open position if its
// stop or target traded through.
func (e *Engine) UpdatePrice(p market.Price) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.prices[p.Pair] = p

	pos := e.open
	if pos == nil || pos.params.Pair != p.Pair {
		return
	}

	exit := p.Exit(pos.params.Direction)
	var reason string
	if pos.params.Direction == market.Long {
		switch {
		case exit <= pos.params.StopLoss:
			reason = "stop_loss"
		case exit >= pos.params.TakeProfit:
			reason = "take_profit"
		}
	} else {
		switch {
		case exit >= pos.params.StopLoss:
			reason = "stop_loss"
		case exit <= pos.params.TakeProfit:
			reason = "take_profit"
		}
	}
	if reason == "" {
		return
	}

	out := e.settleLocked(pos, exit, p.Time, reason)
	pos.settled <- out
}

func (e *Engine) forceClose(pos *position, reason string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.open != pos {
		return // already settled by a price update
	}
	p, ok := e.prices[pos.params.Pair]
	if !ok {
		e.open = nil
		return
	}
	e.settleLocked(pos, p.Exit(pos.params.Direction), p.Time, reason)
}

func (e *Engine) settleLocked(pos *position, exit float64, at time.Time, reason string) broker.TradeOutcome {
	notional := pos.params.Notional()
	gross := notional * (exit - pos.entry) / pos.entry * pos.params.Direction.Sign()
	fees := notional * e.feeRate * 2 // open + close
	net := gross - fees

	e.equity += net
	e.open = nil

	out := broker.TradeOutcome{
		TradeID:    pos.id,
		Pair:       pos.params.Pair,
		Direction:  pos.params.Direction,
		Size:       pos.params.Size,
		Leverage:   pos.params.Leverage,
		EntryPrice: pos.entry,
		ExitPrice:  exit,
		RealizedPL: net,
		Fees:       fees,
		Reason:     reason,
		OpenTime:   pos.openTime,
		CloseTime:  at,
	}

	// Best effort; the venue's own books are not the engine's journal.
	_ = e.journal.RecordTrade(journal.TradeRecord{
		TradeID:    out.TradeID,
		Pair:       out.Pair,
		Direction:  out.Direction.String(),
		Size:       out.Size,
		Leverage:   out.Leverage,
		EntryPrice: out.EntryPrice,
		ExitPrice:  out.ExitPrice,
		RealizedPL: out.RealizedPL,
		Fees:       out.Fees,
		OpenTime:   out.OpenTime,
		CloseTime:  out.CloseTime,
		Reason:     out.Reason,
	})

	return out
}

func (e *Engine) unrealizedLocked(p market.Price) float64 {
	pos := e.open
	exit := p.Exit(pos.params.Direction)
	notional := pos.params.Notional()
	return notional * (exit - pos.entry) / pos.entry * pos.params.Direction.Sign()
}
