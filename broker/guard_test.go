package broker

import (
	"context"
	"errors"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeltedMindz/avantis-trading-bot/risk"
)

type flakyClient struct {
	fail  bool
	calls int
}

func (f *flakyClient) SubmitTrade(ctx context.Context, params risk.TradeParams) (TradeOutcome, error) {
	f.calls++
	if f.fail {
		return TradeOutcome{}, ErrExecutionTimeout
	}
	return TradeOutcome{TradeID: "t-1", RealizedPL: 5}, nil
}

func (f *flakyClient) GetEquity(ctx context.Context) (float64, error) {
	f.calls++
	if f.fail {
		return 0, ErrExecutionRejected
	}
	return 1000, nil
}

func (f *flakyClient) MinTradeSize() float64 { return 1 }

func TestGuardedClientPassesThrough(t *testing.T) {
	t.Parallel()

	g := NewGuardedClient(&flakyClient{})

	eq, err := g.GetEquity(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, eq, 1e-9)

	out, err := g.SubmitTrade(context.Background(), risk.TradeParams{})
	require.NoError(t, err)
	assert.Equal(t, "t-1", out.TradeID)
	assert.Equal(t, 1.0, g.MinTradeSize())
}

func TestGuardedClientTripsOpen(t *testing.T) {
	t.Parallel()

	inner := &flakyClient{fail: true}
	g := NewGuardedClient(inner)

	for i := 0; i < 5; i++ {
		_, err := g.GetEquity(context.Background())
		assert.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, g.State())

	// Open breaker short-circuits without touching the venue.
	before := inner.calls
	_, err := g.SubmitTrade(context.Background(), risk.TradeParams{})
	assert.True(t, errors.Is(err, gobreaker.ErrOpenState))
	assert.Equal(t, before, inner.calls)
}
