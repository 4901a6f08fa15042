// Package journal records what each decision run produced: the ranked
// recommendations, the trade plan, and realized-PnL rows, all keyed by a
// ULID run id.
package journal

import "time"

// Run identifies one decision cycle.
type Run struct {
	RunID    string
	Time     time.Time
	Strategy string
}

// RecommendationRecord is one journaled recommendation row.
type RecommendationRecord struct {
	RunID            string
	Rank             int
	Currency         string
	Score            int
	Signal           string
	Priority         int
	PercentageChange float64
}

// PlanEntryRecord is one journaled trade-plan step.
type PlanEntryRecord struct {
	RunID    string
	Seq      int
	Action   string
	Currency string
	Amount   string
	Value    float64
}

// PnLRecord is one journaled realized-PnL row. Decimal amounts are stored
// as strings to keep their exact representation.
type PnLRecord struct {
	RunID          string
	Symbol         string
	RealizedPnL    string
	MatchedSellQty string
	AvgBuyPrice    string
	AvgSellPrice   string
	Notes          string
}

type Journal interface {
	RecordRun(Run) error
	RecordRecommendation(RecommendationRecord) error
	RecordPlanEntry(PlanEntryRecord) error
	RecordPnL(PnLRecord) error
	Close() error
}
