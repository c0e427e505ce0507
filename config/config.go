// Package config loads the engine's immutable startup configuration from a
// YAML or JSON file, with environment-variable overrides on top. Nothing
// here is reloaded mid-day.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/MeltedMindz/avantis-trading-bot/phase"
	"github.com/MeltedMindz/avantis-trading-bot/risk"
)

type Config struct {
	Pair     string                 `json:"pair" yaml:"pair"`
	Timezone string                 `json:"timezone" yaml:"timezone"`
	Risk     RiskConfig             `json:"risk" yaml:"risk"`
	Phases   map[string]PhaseConfig `json:"phases,omitempty" yaml:"phases,omitempty"`
	Engine   EngineConfig           `json:"engine" yaml:"engine"`
	Sim      SimConfig              `json:"sim" yaml:"sim"`
	Journal  JournalConfig          `json:"journal" yaml:"journal"`
}

// RiskConfig carries all percentages as fractions (0.05 = 5%).
type RiskConfig struct {
	DailyTargetPct       float64 `json:"daily_target_pct" yaml:"daily_target_pct"`
	DailyLossLimitPct    float64 `json:"daily_loss_limit_pct" yaml:"daily_loss_limit_pct"`
	MaxConsecutiveLosses int     `json:"max_consecutive_losses" yaml:"max_consecutive_losses"`
	BaseLeverage         float64 `json:"base_leverage" yaml:"base_leverage"`
	MaxLeverage          float64 `json:"max_leverage" yaml:"max_leverage"`
	StopLossPct          float64 `json:"stop_loss_pct" yaml:"stop_loss_pct"`
	TakeProfitPct        float64 `json:"take_profit_pct" yaml:"take_profit_pct"`
	RiskFraction         float64 `json:"risk_fraction" yaml:"risk_fraction"`
	CurveMinMult         float64 `json:"curve_min_mult" yaml:"curve_min_mult"`
	CurveMaxMult         float64 `json:"curve_max_mult" yaml:"curve_max_mult"`
	HaltOnTarget         bool    `json:"halt_on_target" yaml:"halt_on_target"`
}

type PhaseConfig struct {
	LeverageMult  float64 `json:"leverage_mult" yaml:"leverage_mult"`
	SizeMult      float64 `json:"size_mult" yaml:"size_mult"`
	TradesPerHour float64 `json:"trades_per_hour" yaml:"trades_per_hour"`
}

type EngineConfig struct {
	ExecTimeout string `json:"exec_timeout" yaml:"exec_timeout"` // e.g. "30s"
}

// SimConfig parameterizes the in-process venue used by `run`.
type SimConfig struct {
	StartEquity  float64 `json:"start_equity" yaml:"start_equity"`
	FeeRate      float64 `json:"fee_rate" yaml:"fee_rate"`
	MinTradeSize float64 `json:"min_trade_size" yaml:"min_trade_size"`
	StartPrice   float64 `json:"start_price" yaml:"start_price"`
	TickInterval string  `json:"tick_interval" yaml:"tick_interval"`
}

type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "csv" or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	DaysFile   string `json:"days_file,omitempty" yaml:"days_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON), then applies
// environment overrides. A missing path returns defaults plus environment.
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// Try YAML first, fall back to JSON.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			if jerr := json.Unmarshal(data, cfg); jerr != nil {
				return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadEnvFile loads a .env file if present. Missing files are not an error.
func LoadEnvFile(path string) {
	_ = godotenv.Load(path)
}

// applyEnv overlays the environment. Variable names follow the bot's
// existing deployment convention; all percentages are fractions.
func (c *Config) applyEnv() {
	setStr(&c.Pair, "TRADING_PAIR")
	setStr(&c.Timezone, "TIMEZONE")
	setFloat(&c.Risk.DailyTargetPct, "DAILY_TARGET_PERCENTAGE")
	setFloat(&c.Risk.DailyLossLimitPct, "MAX_DAILY_LOSS")
	setInt(&c.Risk.MaxConsecutiveLosses, "MAX_CONSECUTIVE_LOSSES")
	setFloat(&c.Risk.BaseLeverage, "DEFAULT_LEVERAGE")
	setFloat(&c.Risk.MaxLeverage, "MAX_LEVERAGE")
	setFloat(&c.Risk.StopLossPct, "STOP_LOSS_PERCENTAGE")
	setFloat(&c.Risk.TakeProfitPct, "TAKE_PROFIT_PERCENTAGE")
	setFloat(&c.Risk.RiskFraction, "RISK_FRACTION")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func (c *Config) Validate() error {
	if c.Pair == "" {
		return fmt.Errorf("pair is required")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	if err := c.Limits().Validate(); err != nil {
		return err
	}
	if _, err := c.ExecTimeout(); err != nil {
		return err
	}
	if c.Journal.Type != "csv" && c.Journal.Type != "sqlite" && c.Journal.Type != "none" {
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'none'")
	}
	if c.Journal.Type == "csv" && (c.Journal.TradesFile == "" || c.Journal.DaysFile == "") {
		return fmt.Errorf("journal trades_file and days_file required for CSV type")
	}
	if c.Journal.Type == "sqlite" && c.Journal.DBPath == "" {
		return fmt.Errorf("journal db_path required for SQLite type")
	}
	if c.Sim.StartEquity <= 0 || c.Sim.StartPrice <= 0 {
		return fmt.Errorf("sim start_equity and start_price must be positive")
	}
	return nil
}

// Limits assembles the immutable risk limits.
func (c *Config) Limits() risk.Limits {
	return risk.Limits{
		DailyTargetPct:       c.Risk.DailyTargetPct,
		DailyLossLimitPct:    c.Risk.DailyLossLimitPct,
		MaxConsecutiveLosses: c.Risk.MaxConsecutiveLosses,
		BaseLeverage:         c.Risk.BaseLeverage,
		MaxLeverage:          c.Risk.MaxLeverage,
		Curve:                risk.LeverageCurve{MinMult: c.Risk.CurveMinMult, MaxMult: c.Risk.CurveMaxMult},
		StopLossPct:          c.Risk.StopLossPct,
		TakeProfitPct:        c.Risk.TakeProfitPct,
		RiskFraction:         c.Risk.RiskFraction,
		HaltOnTarget:         c.Risk.HaltOnTarget,
	}
}

// Schedule builds the phase schedule in the configured zone, with any
// per-phase multiplier overrides applied on top of the defaults.
func (c *Config) Schedule() (*phase.Schedule, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, err
	}

	profiles := phase.DefaultProfiles()
	for name, pc := range c.Phases {
		found := false
		for _, p := range phase.All {
			if p.String() == name {
				profiles[p] = phase.Profile(pc)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown phase %q", name)
		}
	}

	return phase.NewSchedule(loc, profiles)
}

func (c *Config) ExecTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Engine.ExecTimeout)
	if err != nil {
		return 0, fmt.Errorf("engine.exec_timeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("engine.exec_timeout must be positive")
	}
	return d, nil
}

func (c *Config) TickInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Sim.TickInterval)
	if err != nil {
		return 0, fmt.Errorf("sim.tick_interval: %w", err)
	}
	return d, nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Pair:     "ETH-USD",
		Timezone: "UTC",
		Risk: RiskConfig{
			DailyTargetPct:       0.10,
			DailyLossLimitPct:    0.05,
			MaxConsecutiveLosses: 3,
			BaseLeverage:         10,
			MaxLeverage:          50,
			StopLossPct:          0.05,
			TakeProfitPct:        0.10,
			RiskFraction:         0.10,
			CurveMinMult:         0.5,
			CurveMaxMult:         1.5,
		},
		Engine: EngineConfig{
			ExecTimeout: "30s",
		},
		Sim: SimConfig{
			StartEquity:  1000,
			FeeRate:      0.001,
			MinTradeSize: 1,
			StartPrice:   2000,
			TickInterval: "250ms",
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./avantis.sqlite",
		},
	}
}
