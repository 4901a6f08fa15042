package journal

import (
	"database/sql"
	"math"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordRun(r Run) error {
	_, err := j.db.Exec(`
		INSERT INTO runs (run_id, time, strategy)
		VALUES (?, ?, ?)`,
		r.RunID, r.Time, r.Strategy,
	)
	return err
}

func (j *SQLiteJournal) RecordRecommendation(r RecommendationRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO recommendations
		(run_id, rank, currency, score, signal, priority, percentage_change)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Rank, r.Currency, r.Score, r.Signal, r.Priority,
		nullableFloat(r.PercentageChange),
	)
	return err
}

func (j *SQLiteJournal) RecordPlanEntry(e PlanEntryRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO plan_entries (run_id, seq, action, currency, amount, value)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Seq, e.Action, e.Currency, e.Amount, e.Value,
	)
	return err
}

func (j *SQLiteJournal) RecordPnL(r PnLRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO realized_pnl
		(run_id, symbol, realized_pnl_quote, matched_sell_qty, avg_buy_price, avg_sell_price, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Symbol, r.RealizedPnL, r.MatchedSellQty, r.AvgBuyPrice, r.AvgSellPrice, r.Notes,
	)
	return err
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

// nullableFloat stores NaN as NULL; SQLite has no NaN.
func nullableFloat(v float64) any {
	if math.IsNaN(v) {
		return nil
	}
	return v
}
