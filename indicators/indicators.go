// Package indicators computes technical indicator series from candle history.
//
// Output rows use NaN for values that cannot be computed yet; callers must
// treat NaN as "undefined", never as zero.
package indicators

import (
	"math"

	"github.com/persegersten/cryptohunk/market"
)

const (
	RSIPeriod        = 14
	MACDFastPeriod   = 12
	MACDSlowPeriod   = 26
	MACDSignalPeriod = 9
)

// Row holds the indicator values derived from one candle.
type Row struct {
	OpenTime  int64 // epoch ms, 0 when the source carried no timestamps
	CloseTime int64

	Close  float64
	RSI14  float64
	EMA12  float64
	EMA21  float64
	EMA26  float64
	EMA50  float64
	EMA200 float64

	MACD          float64
	MACDSignal    float64
	MACDHistogram float64
}

// Defined reports whether an indicator value is usable.
func Defined(v float64) bool {
	return !math.IsNaN(v)
}

// Compute derives the full indicator series from a candle history. The
// result has the same length and order as the input; an empty input yields
// an empty output.
func Compute(candles []market.Candle) []Row {
	closes := market.Closes(candles)
	rows := make([]Row, len(closes))
	if len(closes) == 0 {
		return rows
	}

	rsi := RSI(closes, RSIPeriod)
	ema12 := EMA(closes, MACDFastPeriod)
	ema21 := EMA(closes, 21)
	ema26 := EMA(closes, MACDSlowPeriod)
	ema50 := EMA(closes, 50)
	ema200 := EMA(closes, 200)
	macd, signal, histogram := MACDFrom(ema12, ema26)

	for i := range rows {
		rows[i] = Row{
			OpenTime:      candles[i].OpenTime.UnixMilli(),
			CloseTime:     candles[i].CloseTime.UnixMilli(),
			Close:         closes[i],
			RSI14:         rsi[i],
			EMA12:         ema12[i],
			EMA21:         ema21[i],
			EMA26:         ema26[i],
			EMA50:         ema50[i],
			EMA200:        ema200[i],
			MACD:          macd[i],
			MACDSignal:    signal[i],
			MACDHistogram: histogram[i],
		}
		if candles[i].OpenTime.IsZero() {
			rows[i].OpenTime = 0
		}
		if candles[i].CloseTime.IsZero() {
			rows[i].CloseTime = 0
		}
	}
	return rows
}
