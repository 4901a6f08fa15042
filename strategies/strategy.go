// Package strategies turns indicator rows into raw directional signals.
package strategies

import (
	"fmt"
	"strings"

	"github.com/persegersten/cryptohunk/indicators"
)

// Signal is a directional trading recommendation.
type Signal string

const (
	Buy  Signal = "BUY"
	Sell Signal = "SELL"
	Hold Signal = "HOLD"
)

// SignalStrategy reduces an indicator series to an integer score and the
// signal derived from it, evaluated at the latest row. Implementations are
// stateless between runs; the same rows always produce the same result.
type SignalStrategy interface {
	Name() string
	Evaluate(rows []indicators.Row) (score int, signal Signal)
}

// ByName selects a strategy once per run. The ema50Filter flag only affects
// the trend-pullback strategy.
func ByName(name string, ema50Filter bool) (SignalStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "ta", "score":
		return ScoreStrategy{}, nil

	case "ta2", "trend-pullback":
		return &TrendPullback{EMA50Filter: ema50Filter}, nil

	default:
		return nil, fmt.Errorf("unknown strategy %q (supported: ta, ta2)", name)
	}
}
