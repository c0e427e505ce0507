// Package engine runs the per-account decision loop: phase-aware cadence,
// guardrail-gated sizing, execution hand-off, and P&L feedback into the
// daily ledger.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/MeltedMindz/avantis-trading-bot/broker"
	"github.com/MeltedMindz/avantis-trading-bot/compound"
	"github.com/MeltedMindz/avantis-trading-bot/journal"
	"github.com/MeltedMindz/avantis-trading-bot/ledger"
	"github.com/MeltedMindz/avantis-trading-bot/phase"
	"github.com/MeltedMindz/avantis-trading-bot/risk"
)

// State is the loop's position in a decision cycle.
type State int

const (
	Idle State = iota
	AwaitingPhaseWindow
	Sizing
	AwaitingExecution
	Settling
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingPhaseWindow:
		return "awaiting_phase_window"
	case Sizing:
		return "sizing"
	case AwaitingExecution:
		return "awaiting_execution"
	case Settling:
		return "settling"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Config wires an Engine. Limits and the schedule are immutable after New;
// the engine never reloads them mid-day.
type Config struct {
	Pair        string
	Limits      risk.Limits
	Schedule    *phase.Schedule
	ExecTimeout time.Duration

	// Now is the clock, injectable for tests. Defaults to time.Now.
	Now func() time.Time
}

// Engine owns the daily ledger exclusively: only its settlement step and
// day rollover mutate it. All collaborators read snapshots.
type Engine struct {
	cfg     Config
	exec    broker.ExecutionClient
	feed    broker.PriceFeed
	signals SignalSource
	journal journal.Journal
	ledger  *ledger.Ledger
	history *compound.History
	metrics *Metrics
	log     zerolog.Logger

	limiter     *rate.Limiter
	activePhase phase.Phase

	mu    sync.Mutex // guards state; the ledger carries its own lock
	state State
}

func New(cfg Config, exec broker.ExecutionClient, feed broker.PriceFeed, signals SignalSource, j journal.Journal, m *Metrics, log zerolog.Logger) (*Engine, error) {
	if err := cfg.Limits.Validate(); err != nil {
		return nil, err
	}
	if cfg.Schedule == nil {
		return nil, fmt.Errorf("engine: schedule is required")
	}
	if cfg.Pair == "" {
		return nil, fmt.Errorf("engine: pair is required")
	}
	if cfg.ExecTimeout <= 0 {
		cfg.ExecTimeout = 30 * time.Second
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if signals == nil {
		signals = Momentum()
	}
	if j == nil {
		j = journal.Nop{}
	}

	now := cfg.Now()
	equity, err := exec.GetEquity(context.Background())
	if err != nil {
		return nil, fmt.Errorf("engine: initial equity: %w", err)
	}
	led, err := ledger.New(equity, cfg.Schedule.DayOpen(now))
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:     cfg,
		exec:    exec,
		feed:    feed,
		signals: signals,
		journal: j,
		ledger:  led,
		history: &compound.History{},
		metrics: m,
		log:     log,
	}
	e.activePhase = cfg.Schedule.PhaseFor(now)
	e.limiter = rate.NewLimiter(cadence(cfg.Schedule.Profile(e.activePhase)), 1)
	return e, nil
}

// cadence converts a phase's per-hour hint to a limiter rate.
func cadence(p phase.Profile) rate.Limit {
	return rate.Limit(p.TradesPerHour / 3600)
}

// Run drives decision cycles until ctx is canceled. The loop is strictly
// sequential: concurrent sizing against the same ledger would race on the
// streak and P&L fields, so there is exactly one cycle in flight.
func (e *Engine) Run(ctx context.Context) error {
	e.log.Info().
		Str("pair", e.cfg.Pair).
		Str("phase", e.activePhase.String()).
		Float64("start_equity", e.ledger.Snapshot().StartEquity).
		Msg("engine started")

	for {
		e.setState(AwaitingPhaseWindow)
		if err := e.limiter.Wait(ctx); err != nil {
			e.setState(Idle)
			return ctx.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		e.Tick(ctx)
	}
}

// Tick runs one decision cycle: rollover check, guardrail-gated sizing,
// execution, settlement. Denials and execution failures are routine; Tick
// never returns an error for them, it logs and moves on.
func (e *Engine) Tick(ctx context.Context) {
	defer e.setState(Idle)

	now := e.cfg.Now()
	e.rolloverIfNeeded(ctx, now)
	e.retuneCadence(now)

	e.setState(Sizing)

	equity, err := e.exec.GetEquity(ctx)
	if err != nil {
		e.log.Warn().Err(err).Msg("equity unavailable, skipping cycle")
		return
	}
	price, err := e.feed.GetPrice(ctx, e.cfg.Pair)
	if err != nil {
		e.log.Warn().Err(err).Msg("price unavailable, skipping cycle")
		return
	}

	dir, ok := e.signals.Next(price)
	if !ok {
		return // no candidate intent this cycle
	}

	prof := e.cfg.Schedule.Profile(e.cfg.Schedule.PhaseFor(now))
	snap := e.ledger.Snapshot()

	params, err := risk.SizeTrade(risk.SizeInputs{
		Pair:      e.cfg.Pair,
		Direction: dir,
		Equity:    equity,
		Entry:     price.Entry(dir),
		Profile:   prof,
		Ledger:    snap,
		MinSize:   e.exec.MinTradeSize(),
	}, e.cfg.Limits)
	if err != nil {
		var denied *risk.DeniedError
		switch {
		case errors.As(err, &denied):
			if e.metrics != nil {
				e.metrics.Denials.WithLabelValues(denied.Verdict.String()).Inc()
			}
			e.log.Info().Str("reason", denied.Verdict.String()).Msg("cycle denied by guardrails")
		case errors.Is(err, risk.ErrInsufficientEquity):
			e.log.Info().Float64("equity", equity).Msg("size below tradable minimum, skipping cycle")
		default:
			e.log.Warn().Err(err).Msg("sizing failed, skipping cycle")
		}
		return
	}

	e.setState(AwaitingExecution)
	tctx, cancel := context.WithTimeout(ctx, e.cfg.ExecTimeout)
	outcome, err := e.exec.SubmitTrade(tctx, params)
	cancel()
	if err != nil {
		// Timeouts and rejections leave the ledger untouched: no outcome is
		// assumed, and the next cycle re-evaluates guardrails fresh rather
		// than retrying stale parameters.
		e.log.Warn().Err(err).
			Float64("size", params.Size).
			Float64("leverage", params.Leverage).
			Msg("execution failed, no outcome applied")
		return
	}

	e.setState(Settling)
	e.settle(outcome)
}

func (e *Engine) settle(out broker.TradeOutcome) {
	e.ledger.RecordOutcome(out.RealizedPL)

	if err := e.journal.RecordTrade(journal.TradeRecord{
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
	}); err != nil {
		e.log.Warn().Err(err).Str("trade_id", out.TradeID).Msg("journal write failed")
	}

	snap := e.ledger.Snapshot()
	if e.metrics != nil {
		e.metrics.TradesSettled.Inc()
		e.metrics.Equity.Set(snap.CurrentEquity)
		e.metrics.Progress.Set(e.progress(snap))
	}

	e.log.Info().
		Str("trade_id", out.TradeID).
		Str("reason", out.Reason).
		Float64("pnl", out.RealizedPL).
		Float64("day_pnl_pct", snap.RealizedPnLPct).
		Int("consecutive_losses", snap.ConsecutiveLosses).
		Msg("trade settled")
}

// rolloverIfNeeded starts a new ledger day when the calendar day changes in
// the configured zone. It runs only between cycles, never while a trade is
// in flight, so no settlement is attributed to the wrong day.
func (e *Engine) rolloverIfNeeded(ctx context.Context, now time.Time) {
	if e.cfg.Schedule.SameDay(e.ledger.DayOpen(), now) {
		return
	}

	prev := e.ledger.Snapshot()

	equity, err := e.exec.GetEquity(ctx)
	if err != nil || equity <= 0 {
		// Fall back to the ledger's own view rather than refusing to roll.
		equity = prev.CurrentEquity
	}
	if err := e.ledger.RollOver(equity, e.cfg.Schedule.DayOpen(now)); err != nil {
		// Non-positive equity: previous day's ledger is retained and the
		// daily loss limit keeps trading shut. Nothing is recorded yet; the
		// finished day is written exactly once, when a rollover succeeds.
		e.log.Error().Err(err).Float64("equity", equity).Msg("day rollover rejected")
		return
	}

	day := compound.DayResult{
		Date:        prev.DayOpen.In(e.cfg.Schedule.Location()).Format("2006-01-02"),
		StartEquity: prev.StartEquity,
		EndEquity:   prev.CurrentEquity,
		TargetPct:   e.cfg.Limits.DailyTargetPct,
		Trades:      prev.TradeCount,
		Achieved:    prev.RealizedPnLPct >= e.cfg.Limits.DailyTargetPct,
	}
	e.history.Add(day)
	if err := e.journal.RecordDay(journal.DayRecord{
		Date:        day.Date,
		StartEquity: day.StartEquity,
		EndEquity:   day.EndEquity,
		TargetPct:   day.TargetPct,
		RealizedPct: prev.RealizedPnLPct,
		Trades:      day.Trades,
		Achieved:    day.Achieved,
	}); err != nil {
		e.log.Warn().Err(err).Str("date", day.Date).Msg("day journal write failed")
	}

	e.log.Info().
		Str("date", now.In(e.cfg.Schedule.Location()).Format("2006-01-02")).
		Float64("start_equity", equity).
		Bool("prev_achieved", day.Achieved).
		Msg("new trading day")
}

func (e *Engine) setState(s State) {
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
}

func (e *Engine) currentState() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) retuneCadence(now time.Time) {
	p := e.cfg.Schedule.PhaseFor(now)
	if p == e.activePhase {
		return
	}
	e.activePhase = p
	e.limiter.SetLimit(cadence(e.cfg.Schedule.Profile(p)))
	e.log.Info().Str("phase", p.String()).Msg("phase changed")
}

func (e *Engine) progress(snap ledger.Snapshot) float64 {
	if e.cfg.Limits.DailyTargetPct <= 0 {
		return 0
	}
	return snap.RealizedPnLPct / e.cfg.Limits.DailyTargetPct
}

// ProjectedGrowth reports the compounding multiplier the configured daily
// target would produce over the horizon.
func (e *Engine) ProjectedGrowth(days int) float64 {
	return compound.Project(e.cfg.Limits.DailyTargetPct, days)
}

// History exposes the completed-day history for reporting.
func (e *Engine) History() *compound.History { return e.history }

// Status is the read-only view exposed to CLIs and dashboards.
type Status struct {
	State    State
	Phase    phase.Phase
	Verdict  risk.Verdict
	Ledger   ledger.Snapshot
	Progress float64
}

// Status reports the current cycle state. Side-effect free and safe to call
// from any goroutine while Run is looping; the verdict is recomputed from
// the live snapshot, not cached.
func (e *Engine) Status() Status {
	snap := e.ledger.Snapshot()
	return Status{
		State:    e.currentState(),
		Phase:    e.cfg.Schedule.PhaseFor(e.cfg.Now()),
		Verdict:  risk.Evaluate(snap, e.cfg.Limits),
		Ledger:   snap,
		Progress: e.progress(snap),
	}
}
