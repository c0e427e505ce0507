package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/MeltedMindz/avantis-trading-bot/compound"
	"github.com/MeltedMindz/avantis-trading-bot/config"
)

func newProjectCmd() *cobra.Command {
	var rate float64

	cmd := &cobra.Command{
		Use:   "project [days]",
		Short: "Show compound growth projections for the configured daily target",
		Long: `Prints the equity multiplier the configured daily target would produce.
With no argument the standard horizons (7/14/30/60/90/365 days) are shown.
Projections are illustrative, not a promise.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if rate == 0 {
				cfgPath, _ := cmd.Flags().GetString("config")
				envFile, _ := cmd.Flags().GetString("env-file")
				config.LoadEnvFile(envFile)
				cfg, err := config.LoadFromFile(cfgPath)
				if err != nil {
					return err
				}
				rate = cfg.Risk.DailyTargetPct
			}

			if len(args) == 1 {
				days, err := strconv.Atoi(args[0])
				if err != nil || days < 0 {
					return fmt.Errorf("days must be a non-negative integer, got %q", args[0])
				}
				fmt.Printf("%d days at %.2f%%/day: %.2fx\n", days, rate*100, compound.Project(rate, days))
				return nil
			}

			fmt.Printf("daily rate %.2f%%\n", rate*100)
			for _, p := range compound.Table(rate) {
				fmt.Printf("  %4d days: %12.2fx\n", p.Days, p.Multiplier)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&rate, "rate", 0, "daily rate as a fraction (overrides config)")
	return cmd
}
