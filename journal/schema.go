package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	time DATETIME NOT NULL,
	strategy TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS recommendations (
	run_id TEXT NOT NULL,
	rank INTEGER NOT NULL,
	currency TEXT NOT NULL,
	score INTEGER NOT NULL,
	signal TEXT NOT NULL,
	priority INTEGER NOT NULL,
	percentage_change REAL
);

CREATE TABLE IF NOT EXISTS plan_entries (
	run_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	action TEXT NOT NULL,
	currency TEXT NOT NULL,
	amount TEXT NOT NULL,
	value REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS realized_pnl (
	run_id TEXT NOT NULL,
	symbol TEXT NOT NULL,
	realized_pnl_quote TEXT NOT NULL,
	matched_sell_qty TEXT NOT NULL,
	avg_buy_price TEXT NOT NULL,
	avg_sell_price TEXT NOT NULL,
	notes TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_recommendations_run ON recommendations(run_id);
CREATE INDEX IF NOT EXISTS idx_plan_entries_run ON plan_entries(run_id);
CREATE INDEX IF NOT EXISTS idx_realized_pnl_run ON realized_pnl(run_id);
`
