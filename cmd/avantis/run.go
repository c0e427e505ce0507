package main

import (
	"context"
	"math/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/MeltedMindz/avantis-trading-bot/broker"
	brokersim "github.com/MeltedMindz/avantis-trading-bot/broker/sim"
	"github.com/MeltedMindz/avantis-trading-bot/config"
	"github.com/MeltedMindz/avantis-trading-bot/engine"
	"github.com/MeltedMindz/avantis-trading-bot/journal"
	"github.com/MeltedMindz/avantis-trading-bot/market"
)

func newRunCmd() *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the engine loop against the simulated venue",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			envFile, _ := cmd.Flags().GetString("env-file")

			config.LoadEnvFile(envFile)
			cfg, err := config.LoadFromFile(cfgPath)
			if err != nil {
				return err
			}
			return runEngine(cmd.Context(), cfg, metricsAddr)
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "address for Prometheus metrics (e.g. :9100); empty disables")
	return cmd
}

func runEngine(parent context.Context, cfg *config.Config, metricsAddr string) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	j, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	sched, err := cfg.Schedule()
	if err != nil {
		return err
	}
	execTimeout, err := cfg.ExecTimeout()
	if err != nil {
		return err
	}
	tick, err := cfg.TickInterval()
	if err != nil {
		return err
	}

	venue := brokersim.NewEngine(cfg.Sim.StartEquity, cfg.Sim.FeeRate, cfg.Sim.MinTradeSize, j)
	venue.UpdatePrice(quote(cfg.Pair, cfg.Sim.StartPrice, time.Now()))
	go drivePrices(ctx, venue, cfg.Pair, cfg.Sim.StartPrice, tick)

	reg := prometheus.NewRegistry()
	metrics := engine.NewMetrics(reg)
	if metricsAddr != "" {
		go serveMetrics(metricsAddr, reg)
	}

	exec := broker.NewGuardedClient(venue)
	eng, err := engine.New(engine.Config{
		Pair:        cfg.Pair,
		Limits:      cfg.Limits(),
		Schedule:    sched,
		ExecTimeout: execTimeout,
	}, exec, venue, nil, j, metrics, log.Logger)
	if err != nil {
		return err
	}

	if err := eng.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}

	st := eng.Status()
	log.Info().
		Float64("equity", st.Ledger.CurrentEquity).
		Int("trades", st.Ledger.TradeCount).
		Float64("day_pnl_pct", st.Ledger.RealizedPnLPct).
		Msg("engine stopped")
	return nil
}

func openJournal(cfg *config.Config) (journal.Journal, error) {
	switch cfg.Journal.Type {
	case "sqlite":
		return journal.NewSQLite(cfg.Journal.DBPath)
	case "csv":
		return journal.NewCSV(cfg.Journal.TradesFile, cfg.Journal.DaysFile)
	default:
		return journal.Nop{}, nil
	}
}

func quote(pair string, mid float64, tm time.Time) market.Price {
	spread := mid * 0.0005
	return market.Price{Pair: pair, Bid: mid - spread/2, Ask: mid + spread/2, Time: tm}
}

// drivePrices feeds the sim venue a random walk so stops and targets can
// actually trade through.
func drivePrices(ctx context.Context, venue *brokersim.Engine, pair string, mid float64, interval time.Duration) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case tm := <-t.C:
			mid *= 1 + rng.NormFloat64()*0.002
			venue.UpdatePrice(quote(pair, mid, tm))
		}
	}
}

func serveMetrics(addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Warn().Err(err).Str("addr", addr).Msg("metrics server stopped")
	}
}
