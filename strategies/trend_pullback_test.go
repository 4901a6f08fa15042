package strategies

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/persegersten/cryptohunk/indicators"
)

// pullbackSeries builds the minimal nine-row history that satisfies every
// entry condition: uptrend, MACD above signal, an RSI dip below 45 inside
// the lookback window, and an RSI cross above 50 on the latest row.
func pullbackSeries() []indicators.Row {
	rows := make([]indicators.Row, 9)
	for i := range rows {
		rows[i] = indicators.Row{
			Close:      105,
			EMA21:      100,
			EMA50:      98,
			EMA200:     90,
			MACD:       1,
			MACDSignal: 0.5,
			RSI14:      48,
		}
	}
	rows[3].RSI14 = 40
	rows[7].RSI14 = 49
	rows[8].RSI14 = 55
	return rows
}

func TestTrendPullbackEntry(t *testing.T) {
	score, signal := (&TrendPullback{}).Evaluate(pullbackSeries())
	assert.Equal(t, 1, score)
	assert.Equal(t, Buy, signal)
}

func TestTrendPullbackExitWinsOverEverything(t *testing.T) {
	rows := pullbackSeries()
	rows[8].MACD = 0.1
	rows[8].MACDSignal = 0.5
	// Even an undefined close cannot hold back the exit.
	rows[8].Close = math.NaN()

	score, signal := (&TrendPullback{}).Evaluate(rows)
	assert.Equal(t, -1, score)
	assert.Equal(t, Sell, signal)
}

func TestTrendPullbackMACDEqualSignalHolds(t *testing.T) {
	rows := pullbackSeries()
	rows[8].MACD = 0.5
	rows[8].MACDSignal = 0.5

	score, signal := (&TrendPullback{}).Evaluate(rows)
	assert.Equal(t, 0, score)
	assert.Equal(t, Hold, signal)
}

func TestTrendPullbackTooFewRows(t *testing.T) {
	score, signal := (&TrendPullback{}).Evaluate(pullbackSeries()[:8])
	assert.Equal(t, 0, score)
	assert.Equal(t, Hold, signal)
}

func TestTrendPullbackRequiresRSIReset(t *testing.T) {
	rows := pullbackSeries()
	rows[3].RSI14 = 46 // no dip below 45 anywhere in the window

	_, signal := (&TrendPullback{}).Evaluate(rows)
	assert.Equal(t, Hold, signal)
}

func TestTrendPullbackLookbackWindowBoundary(t *testing.T) {
	// Ten rows: index 0 sits outside the eight-row window, so a dip only
	// there must not count.
	rows := append([]indicators.Row{pullbackSeries()[0]}, pullbackSeries()...)
	rows[0].RSI14 = 30
	rows[4].RSI14 = 48 // clear the in-window dip from the base series

	_, signal := (&TrendPullback{}).Evaluate(rows)
	assert.Equal(t, Hold, signal)
}

func TestTrendPullbackRequiresRSICross(t *testing.T) {
	rows := pullbackSeries()
	rows[7].RSI14 = 51 // already above 50 before the latest row
	_, signal := (&TrendPullback{}).Evaluate(rows)
	assert.Equal(t, Hold, signal)

	rows = pullbackSeries()
	rows[8].RSI14 = 50 // not strictly above
	_, signal = (&TrendPullback{}).Evaluate(rows)
	assert.Equal(t, Hold, signal)
}

func TestTrendPullbackHoldsBelowTrendFilters(t *testing.T) {
	rows := pullbackSeries()
	rows[8].Close = 85 // below EMA_200
	_, signal := (&TrendPullback{}).Evaluate(rows)
	assert.Equal(t, Hold, signal)

	rows = pullbackSeries()
	rows[8].Close = 95 // above EMA_200 but below EMA_21
	_, signal = (&TrendPullback{}).Evaluate(rows)
	assert.Equal(t, Hold, signal)
}

func TestTrendPullbackFailsClosedOnUndefined(t *testing.T) {
	rows := pullbackSeries()
	rows[8].EMA200 = math.NaN()
	_, signal := (&TrendPullback{}).Evaluate(rows)
	assert.Equal(t, Hold, signal)

	rows = pullbackSeries()
	rows[8].MACD = math.NaN()
	_, signal = (&TrendPullback{}).Evaluate(rows)
	assert.Equal(t, Hold, signal)

	rows = pullbackSeries()
	rows[5].RSI14 = math.NaN() // undefined inside the lookback window
	_, signal = (&TrendPullback{}).Evaluate(rows)
	assert.Equal(t, Hold, signal)
}

func TestTrendPullbackEMA50Filter(t *testing.T) {
	rows := pullbackSeries()
	s := &TrendPullback{EMA50Filter: true}

	_, signal := s.Evaluate(rows)
	assert.Equal(t, Buy, signal)

	rows[8].EMA50 = 85 // below EMA_200
	_, signal = s.Evaluate(rows)
	assert.Equal(t, Hold, signal)

	rows[8].EMA50 = math.NaN()
	_, signal = s.Evaluate(rows)
	assert.Equal(t, Hold, signal)
}
