package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, pair, direction, size, leverage, entry_price, exit_price, realized_pl, fees, open_time, close_time, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.Pair, t.Direction, t.Size, t.Leverage,
		t.EntryPrice, t.ExitPrice, t.RealizedPL, t.Fees,
		t.OpenTime, t.CloseTime, t.Reason,
	)
	return err
}

func (j *SQLite) RecordDay(d DayRecord) error {
	_, err := j.db.Exec(`
		INSERT OR REPLACE INTO days
		(date, start_equity, end_equity, target_pct, realized_pct, trades, achieved)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.Date, d.StartEquity, d.EndEquity, d.TargetPct,
		d.RealizedPct, d.Trades, d.Achieved,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
