package indicators

import "math"

// RSI returns the relative strength index over a simple rolling window of
// price deltas. The first `period` elements are NaN (not enough deltas).
// When the average loss over the window is zero the index saturates at 100
// rather than dividing by zero; a flat window therefore reads as maximally
// strong, not as a bearish signal.
func RSI(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
	}
	if period <= 0 || len(values) <= period {
		return out
	}

	for t := period; t < len(values); t++ {
		var gain, loss float64
		for i := t - period + 1; i <= t; i++ {
			delta := values[i] - values[i-1]
			if delta > 0 {
				gain += delta
			} else {
				loss -= delta
			}
		}
		avgGain := gain / float64(period)
		avgLoss := loss / float64(period)

		if avgLoss == 0 {
			out[t] = 100
			continue
		}
		rs := avgGain / avgLoss
		out[t] = 100 - 100/(1+rs)
	}
	return out
}
