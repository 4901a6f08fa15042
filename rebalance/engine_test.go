package rebalance

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/persegersten/cryptohunk/indicators"
	"github.com/persegersten/cryptohunk/market"
	"github.com/persegersten/cryptohunk/strategies"
)

var testRules = Rules{TradeThreshold: 10, TakeProfitPct: 10, StopLossPct: 10}

// fixedStrategy returns a canned score per currency, keyed by the close
// price of the first row.
type fixedStrategy struct {
	scores map[float64]int
}

func (fixedStrategy) Name() string { return "fixed" }

func (s fixedStrategy) Evaluate(rows []indicators.Row) (int, strategies.Signal) {
	score := s.scores[rows[0].Close]
	return score, strategies.FromScore(score)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDecideTakeProfitOverride(t *testing.T) {
	e := NewEngine(testRules, strategies.ScoreStrategy{}, discard())

	// Small holding with a gain above take-profit sells at top priority,
	// whatever the raw signal says.
	signal, priority := e.Decide("ADA", 3, strategies.Buy, 5, 12)
	assert.Equal(t, strategies.Sell, signal)
	assert.Equal(t, 1, priority)
}

func TestDecideSmallHoldingGuard(t *testing.T) {
	e := NewEngine(testRules, strategies.ScoreStrategy{}, discard())

	signal, priority := e.Decide("ADA", -2, strategies.Sell, 5, 3)
	assert.Equal(t, strategies.Hold, signal)
	assert.Equal(t, 3, priority)
}

func TestDecideStopLossOverride(t *testing.T) {
	e := NewEngine(testRules, strategies.ScoreStrategy{}, discard())

	signal, priority := e.Decide("BTC", 2, strategies.Buy, 50, -15)
	assert.Equal(t, strategies.Sell, signal)
	assert.Equal(t, 2, priority)
}

func TestDecidePassThrough(t *testing.T) {
	e := NewEngine(testRules, strategies.ScoreStrategy{}, discard())

	signal, priority := e.Decide("BTC", 2, strategies.Buy, 50, -5)
	assert.Equal(t, strategies.Buy, signal)
	assert.Equal(t, 3, priority)

	signal, priority = e.Decide("ETH", -3, strategies.Sell, 50, 5)
	assert.Equal(t, strategies.Sell, signal)
	assert.Equal(t, 3, priority)
}

func TestDecideUndefinedChangeNeverTriggersOverrides(t *testing.T) {
	e := NewEngine(testRules, strategies.ScoreStrategy{}, discard())
	nan := math.NaN()

	// Small holding without a cost basis: no take-profit, but the guard
	// still suppresses the sell.
	signal, priority := e.Decide("ADA", -2, strategies.Sell, 5, nan)
	assert.Equal(t, strategies.Hold, signal)
	assert.Equal(t, 3, priority)

	// Tradable holding without a cost basis: no stop-loss, raw passes.
	signal, priority = e.Decide("BTC", -2, strategies.Sell, 50, nan)
	assert.Equal(t, strategies.Sell, signal)
	assert.Equal(t, 3, priority)
}

func TestEvaluateRanksAndDropsHolds(t *testing.T) {
	strategy := fixedStrategy{scores: map[float64]int{
		1: 2,  // BTC: buy
		2: -3, // ETH: sell
		3: 0,  // ADA: hold, dropped
		4: 4,  // SOL: buy, outranks BTC on |score|
	}}
	e := NewEngine(testRules, strategy, discard())

	series := Series{
		"BTC": {{Close: 1}},
		"ETH": {{Close: 2}},
		"ADA": {{Close: 3}},
		"SOL": {{Close: 4}},
	}
	portfolio := market.Portfolio{Positions: []market.Position{
		{Currency: "BTC", CurrentValue: 100, PercentageChange: 5},
		{Currency: "ETH", CurrentValue: 100, PercentageChange: -5},
		{Currency: "ADA", CurrentValue: 100, PercentageChange: 0},
		{Currency: "SOL", CurrentValue: 100, PercentageChange: 1},
	}}

	recs, err := e.Evaluate(context.Background(), []string{"BTC", "ETH", "ADA", "SOL"}, series, portfolio)
	assert.NoError(t, err)
	assert.Len(t, recs, 3)

	// All priority 3: |score| descending, configured order on ties.
	assert.Equal(t, "SOL", recs[0].Currency)
	assert.Equal(t, "ETH", recs[1].Currency)
	assert.Equal(t, "BTC", recs[2].Currency)
}

func TestEvaluateOverridesOutrankSignals(t *testing.T) {
	strategy := fixedStrategy{scores: map[float64]int{
		1: 4,  // BTC: strong buy, priority 3
		2: 0,  // ETH: hold, but stop-loss fires
		3: -1, // ADA: small holding in profit, take-profit fires
	}}
	e := NewEngine(testRules, strategy, discard())

	series := Series{
		"BTC": {{Close: 1}},
		"ETH": {{Close: 2}},
		"ADA": {{Close: 3}},
	}
	portfolio := market.Portfolio{Positions: []market.Position{
		{Currency: "BTC", CurrentValue: 100, PercentageChange: 2},
		{Currency: "ETH", CurrentValue: 100, PercentageChange: -20},
		{Currency: "ADA", CurrentValue: 5, PercentageChange: 15},
	}}

	recs, err := e.Evaluate(context.Background(), []string{"BTC", "ETH", "ADA"}, series, portfolio)
	assert.NoError(t, err)
	assert.Len(t, recs, 3)

	assert.Equal(t, "ADA", recs[0].Currency)
	assert.Equal(t, 1, recs[0].Priority)
	assert.Equal(t, "ETH", recs[1].Currency)
	assert.Equal(t, 2, recs[1].Priority)
	assert.Equal(t, "BTC", recs[2].Currency)
	assert.Equal(t, 3, recs[2].Priority)
}

func TestEvaluateSkipsIncompleteCurrencies(t *testing.T) {
	strategy := fixedStrategy{scores: map[float64]int{1: 2}}
	e := NewEngine(testRules, strategy, discard())

	series := Series{
		"BTC": {{Close: 1}},
		"XRP": {{Close: 1}}, // no portfolio row
	}
	portfolio := market.Portfolio{Positions: []market.Position{
		{Currency: "BTC", CurrentValue: 100},
		{Currency: "ETH", CurrentValue: 100}, // no indicator history
	}}

	recs, err := e.Evaluate(context.Background(), []string{"BTC", "ETH", "XRP"}, series, portfolio)
	assert.NoError(t, err)
	assert.Len(t, recs, 1)
	assert.Equal(t, "BTC", recs[0].Currency)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	strategy := fixedStrategy{scores: map[float64]int{1: 2, 2: 2, 3: 2}}
	e := NewEngine(testRules, strategy, discard())

	series := Series{"BTC": {{Close: 1}}, "ETH": {{Close: 2}}, "ADA": {{Close: 3}}}
	portfolio := market.Portfolio{Positions: []market.Position{
		{Currency: "BTC", CurrentValue: 100},
		{Currency: "ETH", CurrentValue: 100},
		{Currency: "ADA", CurrentValue: 100},
	}}
	currencies := []string{"BTC", "ETH", "ADA"}

	first, err := e.Evaluate(context.Background(), currencies, series, portfolio)
	assert.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := e.Evaluate(context.Background(), currencies, series, portfolio)
		assert.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRankIsStable(t *testing.T) {
	recs := []Recommendation{
		{Currency: "A", Priority: 3, AbsScore: 2},
		{Currency: "B", Priority: 1, AbsScore: 1},
		{Currency: "C", Priority: 3, AbsScore: 2},
		{Currency: "D", Priority: 2, AbsScore: 4},
	}
	Rank(recs)

	order := []string{recs[0].Currency, recs[1].Currency, recs[2].Currency, recs[3].Currency}
	assert.Equal(t, []string{"B", "D", "A", "C"}, order)
}
