package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the engine's observable counters and gauges. Denials are
// expected, routine outcomes; they get a counter, never an error path.
type Metrics struct {
	TradesSettled prometheus.Counter
	Denials       *prometheus.CounterVec
	Equity        prometheus.Gauge
	Progress      prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		TradesSettled: factory.NewCounter(prometheus.CounterOpts{
			Name: "engine_trades_settled_total",
			Help: "Settled trades fed back into the daily ledger.",
		}),
		Denials: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "engine_cycle_denials_total",
			Help: "Decision cycles denied by guardrails, by reason.",
		}, []string{"reason"}),
		Equity: factory.NewGauge(prometheus.GaugeOpts{
			Name: "engine_equity",
			Help: "Ledger equity after the last settlement.",
		}),
		Progress: factory.NewGauge(prometheus.GaugeOpts{
			Name: "engine_daily_target_progress",
			Help: "Realized daily P&L as a fraction of the daily target.",
		}),
	}
}
