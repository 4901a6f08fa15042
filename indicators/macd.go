package indicators

// MACD returns the MACD line, signal line and histogram for a close-price
// series using the standard 12/26/9 periods.
func MACD(values []float64) (line, signal, histogram []float64) {
	return MACDFrom(EMA(values, MACDFastPeriod), EMA(values, MACDSlowPeriod))
}

// MACDFrom builds the MACD series from precomputed fast and slow EMAs so
// Compute can share the EMA passes. Invariant: histogram = line - signal.
func MACDFrom(fast, slow []float64) (line, signal, histogram []float64) {
	line = make([]float64, len(fast))
	for i := range line {
		line[i] = fast[i] - slow[i]
	}
	signal = EMA(line, MACDSignalPeriod)
	histogram = make([]float64, len(line))
	for i := range histogram {
		histogram[i] = line[i] - signal[i]
	}
	return line, signal, histogram
}
