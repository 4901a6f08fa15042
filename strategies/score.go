package strategies

import "github.com/persegersten/cryptohunk/indicators"

// ScoreStrategy sums four independent indicator votes on the latest row:
//
//	RSI_14 < 30 -> +1, RSI_14 > 70 -> -1
//	EMA_12 vs EMA_26
//	MACD vs MACD signal
//	Close vs EMA_200
//
// Each comparison contributes ±1; equality or an undefined operand
// contributes 0, so the score stays in [-4, 4].
type ScoreStrategy struct{}

func (ScoreStrategy) Name() string { return "ta" }

func (ScoreStrategy) Evaluate(rows []indicators.Row) (int, Signal) {
	if len(rows) == 0 {
		return 0, Hold
	}
	last := rows[len(rows)-1]

	score := 0
	if indicators.Defined(last.RSI14) {
		switch {
		case last.RSI14 < 30:
			score++
		case last.RSI14 > 70:
			score--
		}
	}
	score += vote(last.EMA12, last.EMA26)
	score += vote(last.MACD, last.MACDSignal)
	score += vote(last.Close, last.EMA200)

	return score, FromScore(score)
}

// FromScore maps an additive score onto a signal: >= 1 buys, <= -1 sells.
func FromScore(score int) Signal {
	switch {
	case score >= 1:
		return Buy
	case score <= -1:
		return Sell
	default:
		return Hold
	}
}

func vote(a, b float64) int {
	if !indicators.Defined(a) || !indicators.Defined(b) {
		return 0
	}
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}
