// Package market holds the value records exchanged between pipeline stages:
// candles, portfolio positions, and ledger trades.
package market

import "time"

// Candle is one closed kline bar from the exchange history feed.
type Candle struct {
	OpenTime            time.Time
	CloseTime           time.Time
	Open                float64
	High                float64
	Low                 float64
	Close               float64
	Volume              float64
	QuoteVolume         float64
	TradeCount          int64
	TakerBuyBaseVolume  float64
	TakerBuyQuoteVolume float64
}

// Closes extracts the close-price series from a candle history.
func Closes(candles []Candle) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}
