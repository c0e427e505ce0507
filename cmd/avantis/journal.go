package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MeltedMindz/avantis-trading-bot/journal"
)

func newJournalCmd() *cobra.Command {
	var (
		dbPath string
		tz     string
	)

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Inspect the SQLite trade journal",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "./avantis.sqlite", "path to SQLite journal DB")
	cmd.PersistentFlags().StringVar(&tz, "timezone", "UTC", "zone day ranges are bracketed in; must match the engine's configured zone")

	today := &cobra.Command{
		Use:   "today",
		Short: "List trades settled today",
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := time.LoadLocation(tz)
			if err != nil {
				return fmt.Errorf("timezone: %w", err)
			}
			return listDay(dbPath, time.Now().In(loc).Format("2006-01-02"), loc)
		},
	}

	day := &cobra.Command{
		Use:   "day YYYY-MM-DD",
		Short: "List trades settled on a given day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := time.LoadLocation(tz)
			if err != nil {
				return fmt.Errorf("timezone: %w", err)
			}
			return listDay(dbPath, args[0], loc)
		},
	}

	trade := &cobra.Command{
		Use:   "trade <trade_id>",
		Short: "Show a single trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := journal.NewSQLite(dbPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer j.Close()

			rec, err := j.GetTrade(args[0])
			if err != nil {
				return err
			}
			printTrade(rec)
			return nil
		},
	}

	days := &cobra.Command{
		Use:   "days",
		Short: "List recent completed trading days",
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := journal.NewSQLite(dbPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer j.Close()

			recs, err := j.ListDays(30)
			if err != nil {
				return err
			}
			for _, d := range recs {
				mark := " "
				if d.Achieved {
					mark = "*"
				}
				fmt.Printf("%s %s  %10.2f -> %10.2f  (%+.2f%% vs %.2f%% target, %d trades)\n",
					mark, d.Date, d.StartEquity, d.EndEquity, d.RealizedPct*100, d.TargetPct*100, d.Trades)
			}
			return nil
		},
	}

	cmd.AddCommand(today, day, trade, days)
	return cmd
}

// dayRange brackets one calendar day [start, end) in loc. The zone must be
// the one the engine ran with or the window lands on the wrong trades.
func dayRange(day string, loc *time.Location) (start, end time.Time, err error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("date: %w", err)
	}
	start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1), nil
}

func listDay(dbPath, day string, loc *time.Location) error {
	start, end, err := dayRange(day, loc)
	if err != nil {
		return err
	}

	j, err := journal.NewSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	recs, err := j.ListTradesClosedBetween(start, end)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}
	for _, rec := range recs {
		printTrade(rec)
	}
	fmt.Printf("%d trades\n", len(recs))
	return nil
}

func printTrade(t journal.TradeRecord) {
	fmt.Printf("%s  %s %-5s  size %.2f @ %.1fx  %.2f -> %.2f  pl %+.2f (fees %.2f)  %s\n",
		t.CloseTime.Format(time.RFC3339), t.Pair, t.Direction,
		t.Size, t.Leverage, t.EntryPrice, t.ExitPrice, t.RealizedPL, t.Fees, t.Reason)
}
