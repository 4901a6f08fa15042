package market

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Trade is one ledger record as returned by the exchange myTrades endpoint.
// Monetary fields are decimals; binary floating point accumulates rounding
// error across many small fills.
type Trade struct {
	Symbol          string
	IsBuyer         bool
	Qty             decimal.Decimal
	Price           decimal.Decimal
	QuoteQty        decimal.Decimal
	Commission      decimal.Decimal
	CommissionAsset string
	Time            time.Time
}

// quoteAssets are the quote currencies recognized in pair symbols. Longer
// symbols first so e.g. USDC wins over BTC-suffixed lookalikes.
var quoteAssets = []string{"USDT", "USDC", "BUSD", "BTC", "ETH", "BNB", "EUR", "GBP"}

// QuoteAsset extracts the quote asset from a trading pair symbol
// (BTCUSDC -> USDC). Returns "" when the suffix is not a known quote.
func QuoteAsset(symbol string) string {
	for _, quote := range quoteAssets {
		if strings.HasSuffix(symbol, quote) && len(symbol) > len(quote) {
			return quote
		}
	}
	return ""
}

// LastBuyPrice returns the price of the most recent buy for the pair of
// the given currency against the quote asset, or 0 when the ledger holds
// no such buy. Used as the cost basis for take-profit comparisons.
func LastBuyPrice(trades []Trade, currency, quoteAsset string) float64 {
	symbol := currency + quoteAsset
	var last time.Time
	price := 0.0
	for _, t := range trades {
		if t.Symbol != symbol || !t.IsBuyer {
			continue
		}
		if t.Time.After(last) || last.IsZero() {
			last = t.Time
			price, _ = t.Price.Float64()
		}
	}
	return price
}
