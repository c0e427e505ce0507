package broker

import (
	"context"
	"time"

	"github.com/sony/gobreaker"

	"github.com/MeltedMindz/avantis-trading-bot/risk"
)

// GuardedClient wraps an ExecutionClient with a circuit breaker so a
// flapping venue trips open instead of eating every decision cycle. This is
// transport protection only; trading guardrails live in the risk package.
type GuardedClient struct {
	inner ExecutionClient
	cb    *gobreaker.CircuitBreaker
}

func NewGuardedClient(inner ExecutionClient) *GuardedClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "execution",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &GuardedClient{inner: inner, cb: cb}
}

func (g *GuardedClient) SubmitTrade(ctx context.Context, params risk.TradeParams) (TradeOutcome, error) {
	out, err := g.cb.Execute(func() (interface{}, error) {
		return g.inner.SubmitTrade(ctx, params)
	})
	if err != nil {
		return TradeOutcome{}, err
	}
	return out.(TradeOutcome), nil
}

func (g *GuardedClient) GetEquity(ctx context.Context) (float64, error) {
	out, err := g.cb.Execute(func() (interface{}, error) {
		return g.inner.GetEquity(ctx)
	})
	if err != nil {
		return 0, err
	}
	return out.(float64), nil
}

func (g *GuardedClient) MinTradeSize() float64 {
	return g.inner.MinTradeSize()
}

// State exposes the breaker state for status reporting.
func (g *GuardedClient) State() gobreaker.State {
	return g.cb.State()
}
