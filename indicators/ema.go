package indicators

// EMA returns the exponential moving average series for the given period.
// The recursion is seeded from the first value with multiplier 2/(period+1),
// so every element of the result is defined.
func EMA(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	k := 2.0 / float64(period+1)
	ema := values[0]
	out[0] = ema
	for i := 1; i < len(values); i++ {
		ema += (values[i] - ema) * k
		out[i] = ema
	}
	return out
}
