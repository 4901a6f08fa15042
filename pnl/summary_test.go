package pnl

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/persegersten/cryptohunk/market"
)

func TestSummarize(t *testing.T) {
	buy := trade("BTCUSDC", true, "1", "50000", 1000)
	buy.Commission = decimal.RequireFromString("0.001")
	buy.CommissionAsset = "BNB"
	sell := trade("BTCUSDC", false, "0.5", "55000", 2000)
	sell.Commission = decimal.NewFromInt(5)
	sell.CommissionAsset = "USDC"

	summaries := Summarize([]market.Trade{
		buy,
		sell,
		trade("ETHUSDC", true, "10", "3000", 1500),
	})
	assert.Len(t, summaries, 2)

	btc := summaries[0]
	assert.Equal(t, "BTCUSDC", btc.Symbol)
	assert.Equal(t, 2, btc.TradeCount)
	assert.True(t, btc.BuyQty.Equal(decimal.NewFromInt(1)))
	assert.True(t, btc.SellQty.Equal(decimal.RequireFromString("0.5")))
	assert.True(t, btc.BuyQuoteSpent.Equal(decimal.NewFromInt(50000)))
	assert.True(t, btc.SellQuoteReceived.Equal(decimal.NewFromInt(27500)))
	assert.True(t, btc.NetQuoteFlow().Equal(decimal.NewFromInt(-22500)))
	assert.Equal(t, []string{"BNB", "USDC"}, btc.CommissionAssets())

	eth := summaries[1]
	assert.Equal(t, "ETHUSDC", eth.Symbol)
	assert.Equal(t, 1, eth.TradeCount)
	assert.True(t, eth.SellQty.IsZero())
}

func TestSummarizeIgnoresBlankSymbols(t *testing.T) {
	assert.Empty(t, Summarize([]market.Trade{{IsBuyer: true}}))
}

func TestCommissionTotals(t *testing.T) {
	t1 := trade("BTCUSDC", true, "1", "50000", 1000)
	t1.Commission = decimal.RequireFromString("0.001")
	t1.CommissionAsset = "BNB"
	t2 := trade("ETHUSDC", false, "1", "3000", 2000)
	t2.Commission = decimal.RequireFromString("0.002")
	t2.CommissionAsset = "BNB"
	t3 := trade("BTCUSDC", false, "1", "55000", 3000)
	t3.Commission = decimal.NewFromInt(5)
	t3.CommissionAsset = "USDC"

	totals := CommissionTotals([]market.Trade{t1, t2, t3, trade("ADAUSDC", true, "1", "1", 4000)})
	assert.Len(t, totals, 2)

	assert.Equal(t, "BNB", totals[0].Asset)
	assert.True(t, totals[0].Total.Equal(decimal.RequireFromString("0.003")))
	assert.Equal(t, 2, totals[0].TradeCount)

	assert.Equal(t, "USDC", totals[1].Asset)
	assert.True(t, totals[1].Total.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, 1, totals[1].TradeCount)
}
