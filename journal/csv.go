package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSVJournal struct {
	trades *csv.Writer
	days   *csv.Writer
	tf, df *os.File
}

func NewCSV(tradesPath, daysPath string) (*CSVJournal, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	df, err := os.Create(daysPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	dw := csv.NewWriter(df)

	if err := tw.Write([]string{"trade_id", "pair", "direction", "size", "leverage", "entry_price", "exit_price", "realized_pl", "fees", "open_time", "close_time", "reason"}); err != nil {
		return nil, err
	}
	if err := dw.Write([]string{"date", "start_equity", "end_equity", "target_pct", "realized_pct", "trades", "achieved"}); err != nil {
		return nil, err
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	dw.Flush()
	if err := dw.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{trades: tw, days: dw, tf: tf, df: df}, nil
}

func (j *CSVJournal) RecordTrade(t TradeRecord) error {
	err := j.trades.Write([]string{
		t.TradeID,
		t.Pair,
		t.Direction,
		f(t.Size),
		f(t.Leverage),
		f(t.EntryPrice),
		f(t.ExitPrice),
		f(t.RealizedPL),
		f(t.Fees),
		t.OpenTime.Format(time.RFC3339),
		t.CloseTime.Format(time.RFC3339),
		t.Reason,
	})
	if err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSVJournal) RecordDay(d DayRecord) error {
	err := j.days.Write([]string{
		d.Date,
		f(d.StartEquity),
		f(d.EndEquity),
		f(d.TargetPct),
		f(d.RealizedPct),
		strconv.Itoa(d.Trades),
		strconv.FormatBool(d.Achieved),
	})
	if err != nil {
		return err
	}
	j.days.Flush()
	return j.days.Error()
}

func (j *CSVJournal) Close() error {
	j.trades.Flush()
	if err := j.trades.Error(); err != nil {
		return err
	}
	j.days.Flush()
	if err := j.days.Error(); err != nil {
		return err
	}
	if err := j.tf.Close(); err != nil {
		return err
	}
	return j.df.Close()
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
