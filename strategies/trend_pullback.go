package strategies

import (
	"math"

	"github.com/persegersten/cryptohunk/indicators"
)

// pullbackLookback is the number of rows before the entry candle scanned
// for the RSI reset; the entry candle itself is excluded.
const pullbackLookback = 8

// TrendPullback is a long-only trend-following strategy that waits for an
// RSI pullback before entering.
//
// Exit (checked first): MACD below its signal line sells regardless of the
// entry conditions. Entry requires, on the latest row t:
//
//	Close(t) > EMA_200(t)
//	MACD(t)  > MACD_Signal(t)
//	Close(t) > EMA_21(t)
//	RSI_14(t-1) <= 50 and RSI_14(t) > 50
//	min RSI_14 over t-8..t-1 < 45
//	EMA_50(t) > EMA_200(t) when EMA50Filter is set
//
// Any undefined value among the checked fields holds (fail closed).
type TrendPullback struct {
	EMA50Filter bool
}

func (s *TrendPullback) Name() string { return "ta2" }

func (s *TrendPullback) Evaluate(rows []indicators.Row) (int, Signal) {
	if len(rows) < pullbackLookback+1 {
		return 0, Hold
	}
	t := rows[len(rows)-1]
	prev := rows[len(rows)-2]

	if !indicators.Defined(t.MACD) || !indicators.Defined(t.MACDSignal) {
		return 0, Hold
	}
	if t.MACD < t.MACDSignal {
		return -1, Sell
	}

	for _, v := range []float64{t.Close, t.EMA200, t.EMA21, t.RSI14, prev.RSI14} {
		if !indicators.Defined(v) {
			return 0, Hold
		}
	}

	if t.Close <= t.EMA200 {
		return 0, Hold
	}
	// Equality with the signal line is not momentum.
	if t.MACD <= t.MACDSignal {
		return 0, Hold
	}
	if t.Close <= t.EMA21 {
		return 0, Hold
	}
	if prev.RSI14 > 50 || t.RSI14 <= 50 {
		return 0, Hold
	}

	low := math.Inf(1)
	for _, r := range rows[len(rows)-1-pullbackLookback : len(rows)-1] {
		if !indicators.Defined(r.RSI14) {
			return 0, Hold
		}
		low = math.Min(low, r.RSI14)
	}
	if low >= 45 {
		return 0, Hold
	}

	if s.EMA50Filter {
		if !indicators.Defined(t.EMA50) || t.EMA50 <= t.EMA200 {
			return 0, Hold
		}
	}

	return 1, Buy
}
