package plan

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/persegersten/cryptohunk/market"
	"github.com/persegersten/cryptohunk/rebalance"
	"github.com/persegersten/cryptohunk/strategies"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPortfolio() market.Portfolio {
	return market.Portfolio{Positions: []market.Position{
		{Currency: "USDC", Balance: 20, CurrentValue: 20},
		{Currency: "BTC", Balance: 0.5, CurrentValue: 30000},
		{Currency: "ETH", Balance: 2, CurrentValue: 5000},
		{Currency: "ADA", Balance: 10, CurrentValue: 4},
	}}
}

func TestBuildSellsPrecedeSingleBuy(t *testing.T) {
	s := NewSequencer(10, "USDC", discard())
	recs := []rebalance.Recommendation{
		{Currency: "BTC", Signal: strategies.Sell},
		{Currency: "SOL", Signal: strategies.Buy},
		{Currency: "ETH", Signal: strategies.Sell},
		{Currency: "XRP", Signal: strategies.Buy},
	}

	entries := s.Build(recs, testPortfolio())
	assert.Len(t, entries, 3)

	assert.Equal(t, Sell, entries[0].Action)
	assert.Equal(t, "BTC", entries[0].Currency)
	assert.Equal(t, "0.50000000", entries[0].Amount)
	assert.Equal(t, 30000.0, entries[0].Value)

	assert.Equal(t, Sell, entries[1].Action)
	assert.Equal(t, "ETH", entries[1].Currency)

	// Only the highest-ranked BUY survives, funded with everything.
	assert.Equal(t, Buy, entries[2].Action)
	assert.Equal(t, "SOL", entries[2].Currency)
	assert.Equal(t, AmountAll, entries[2].Amount)
	assert.Equal(t, 20.0+30000+5000, entries[2].Value)
}

func TestBuildSkipsSellBelowThreshold(t *testing.T) {
	s := NewSequencer(10, "USDC", discard())
	recs := []rebalance.Recommendation{
		{Currency: "ADA", Signal: strategies.Sell}, // value 4, below threshold
		{Currency: "SOL", Signal: strategies.Buy},
	}

	entries := s.Build(recs, testPortfolio())
	assert.Len(t, entries, 1)
	assert.Equal(t, Buy, entries[0].Action)
	assert.Equal(t, 20.0, entries[0].Value) // untouched liquid funds only
}

func TestBuildSellAtExactThreshold(t *testing.T) {
	portfolio := market.Portfolio{Positions: []market.Position{
		{Currency: "USDC", CurrentValue: 0},
		{Currency: "ADA", Balance: 10, CurrentValue: 10},
	}}
	s := NewSequencer(10, "USDC", discard())
	recs := []rebalance.Recommendation{{Currency: "ADA", Signal: strategies.Sell}}

	entries := s.Build(recs, portfolio)
	assert.Len(t, entries, 1)
	assert.Equal(t, Sell, entries[0].Action)
}

func TestBuildNoBuyWhenLiquidAtOrBelowThreshold(t *testing.T) {
	portfolio := market.Portfolio{Positions: []market.Position{
		{Currency: "USDC", CurrentValue: 10},
	}}
	s := NewSequencer(10, "USDC", discard())
	recs := []rebalance.Recommendation{{Currency: "SOL", Signal: strategies.Buy}}

	entries := s.Build(recs, portfolio)
	assert.Empty(t, entries)
}

func TestBuildBuyFundedBySells(t *testing.T) {
	// Liquid funds start below the threshold; the sell proceeds unlock
	// the buy.
	portfolio := market.Portfolio{Positions: []market.Position{
		{Currency: "USDC", CurrentValue: 5},
		{Currency: "ETH", Balance: 2, CurrentValue: 5000},
	}}
	s := NewSequencer(10, "USDC", discard())
	recs := []rebalance.Recommendation{
		{Currency: "ETH", Signal: strategies.Sell},
		{Currency: "SOL", Signal: strategies.Buy},
	}

	entries := s.Build(recs, portfolio)
	assert.Len(t, entries, 2)
	assert.Equal(t, Sell, entries[0].Action)
	assert.Equal(t, Buy, entries[1].Action)
	assert.Equal(t, 5005.0, entries[1].Value)
}

func TestBuildSellWithoutPortfolioRowSkipped(t *testing.T) {
	s := NewSequencer(10, "USDC", discard())
	recs := []rebalance.Recommendation{{Currency: "XRP", Signal: strategies.Sell}}

	entries := s.Build(recs, testPortfolio())
	assert.Empty(t, entries)
}

func TestBuildDeterministic(t *testing.T) {
	s := NewSequencer(10, "USDC", discard())
	recs := []rebalance.Recommendation{
		{Currency: "BTC", Signal: strategies.Sell},
		{Currency: "SOL", Signal: strategies.Buy},
	}

	first := s.Build(recs, testPortfolio())
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, s.Build(recs, testPortfolio()))
	}
}
