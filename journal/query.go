package journal

import (
	"database/sql"
	"fmt"
	"time"
)

// GetTrade returns a single trade record by ID.
func (j *SQLite) GetTrade(tradeID string) (TradeRecord, error) {
	var rec TradeRecord

	row := j.db.QueryRow(`
		SELECT trade_id, pair, direction, size, leverage, entry_price, exit_price, realized_pl, fees, open_time, close_time, reason
		FROM trades
		WHERE trade_id = ?`, tradeID)

	err := scanTrade(row, &rec)
	if err != nil {
		if err == sql.ErrNoRows {
			return TradeRecord{}, fmt.Errorf("trade %q not found", tradeID)
		}
		return TradeRecord{}, err
	}
	return rec, nil
}

// ListTradesClosedBetween returns trades whose close_time is within [start, end).
func (j *SQLite) ListTradesClosedBetween(start, end time.Time) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, pair, direction, size, leverage, entry_price, exit_price, realized_pl, fees, open_time, close_time, reason
		FROM trades
		WHERE close_time >= ? AND close_time < ?
		ORDER BY close_time ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		if err := scanTrade(rows, &rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListDays returns the most recent completed days, newest first.
func (j *SQLite) ListDays(limit int) ([]DayRecord, error) {
	rows, err := j.db.Query(`
		SELECT date, start_equity, end_equity, target_pct, realized_pct, trades, achieved
		FROM days
		ORDER BY date DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DayRecord
	for rows.Next() {
		var d DayRecord
		if err := rows.Scan(
			&d.Date,
			&d.StartEquity,
			&d.EndEquity,
			&d.TargetPct,
			&d.RealizedPct,
			&d.Trades,
			&d.Achieved,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(s scanner, rec *TradeRecord) error {
	return s.Scan(
		&rec.TradeID,
		&rec.Pair,
		&rec.Direction,
		&rec.Size,
		&rec.Leverage,
		&rec.EntryPrice,
		&rec.ExitPrice,
		&rec.RealizedPL,
		&rec.Fees,
		&rec.OpenTime,
		&rec.CloseTime,
		&rec.Reason,
	)
}
