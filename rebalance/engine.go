// Package rebalance combines raw strategy signals with portfolio state into
// a ranked recommendation list.
package rebalance

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/persegersten/cryptohunk/indicators"
	"github.com/persegersten/cryptohunk/market"
	"github.com/persegersten/cryptohunk/strategies"
)

// Rules holds the override thresholds applied on top of raw strategy
// signals. All values are in the quote currency / percent.
type Rules struct {
	TradeThreshold float64
	TakeProfitPct  float64
	StopLossPct    float64
}

// Recommendation is one per-currency decision for a rebalancing cycle.
// Lower priority values outrank higher ones.
type Recommendation struct {
	Currency         string
	PercentageChange float64
	Score            int
	Signal           strategies.Signal
	Priority         int
	AbsScore         int
}

// Series maps a currency to its indicator history.
type Series map[string][]indicators.Row

// Engine evaluates one rebalancing cycle. It holds no state between runs;
// identical inputs always yield identical output.
type Engine struct {
	rules    Rules
	strategy strategies.SignalStrategy
	log      *slog.Logger
}

func NewEngine(rules Rules, strategy strategies.SignalStrategy, log *slog.Logger) *Engine {
	return &Engine{rules: rules, strategy: strategy, log: log}
}

// Decide applies the override rules to a raw signal for one currency and
// returns the final signal with its priority. First match wins:
//
//  1. take-profit: small holding whose gain exceeds the take-profit
//     percentage sells at priority 1
//  2. stop-loss: tradable holding whose loss exceeds the stop-loss
//     percentage sells at priority 2
//  3. small-holding guard: a raw SELL on a holding below the trade
//     threshold is suppressed to HOLD
//  4. otherwise the raw signal passes through at priority 3
//
// An undefined percentage change (no cost basis) never triggers rule 1 or 2.
func (e *Engine) Decide(currency string, score int, raw strategies.Signal, currentValue, pctChange float64) (strategies.Signal, int) {
	if currentValue < e.rules.TradeThreshold {
		if !math.IsNaN(pctChange) && pctChange > e.rules.TakeProfitPct {
			e.log.Info("take-profit override",
				"currency", currency, "change_pct", pctChange, "value", currentValue)
			return strategies.Sell, 1
		}
		if raw == strategies.Sell {
			e.log.Info("sell suppressed below trade threshold",
				"currency", currency, "score", score, "value", currentValue)
			return strategies.Hold, 3
		}
	} else if !math.IsNaN(pctChange) && pctChange < -e.rules.StopLossPct {
		e.log.Info("stop-loss override",
			"currency", currency, "change_pct", pctChange, "value", currentValue)
		return strategies.Sell, 2
	}

	return raw, 3
}

// Evaluate produces the ranked recommendation list for one cycle. Each
// currency is scored independently (fanned out across goroutines); a
// currency missing its portfolio row or indicator history is skipped, never
// failing the batch. The join point is a single stable sort.
func (e *Engine) Evaluate(ctx context.Context, currencies []string, series Series, portfolio market.Portfolio) ([]Recommendation, error) {
	slots := make([]*Recommendation, len(currencies))

	g, ctx := errgroup.WithContext(ctx)
	for i, currency := range currencies {
		i, currency := i, currency
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			pos, ok := portfolio.Find(currency)
			if !ok {
				e.log.Warn("currency missing from portfolio summary", "currency", currency)
				return nil
			}
			rows, ok := series[currency]
			if !ok || len(rows) == 0 {
				e.log.Warn("no indicator history", "currency", currency)
				return nil
			}

			score, raw := e.strategy.Evaluate(rows)
			signal, priority := e.Decide(currency, score, raw, pos.CurrentValue, pos.PercentageChange)

			slots[i] = &Recommendation{
				Currency:         currency,
				PercentageChange: pos.PercentageChange,
				Score:            score,
				Signal:           signal,
				Priority:         priority,
				AbsScore:         abs(score),
			}
			e.log.Info("evaluated",
				"currency", currency, "strategy", e.strategy.Name(),
				"score", score, "signal", signal, "priority", priority)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Drop HOLDs and rank what remains; the slot order keeps ties stable
	// in the configured currency order.
	recs := make([]Recommendation, 0, len(slots))
	for _, r := range slots {
		if r != nil && r.Signal != strategies.Hold {
			recs = append(recs, *r)
		}
	}
	Rank(recs)
	return recs, nil
}

// Rank stable-sorts recommendations by priority ascending, then absolute
// score descending. Multiple BUYs and SELLs are allowed in the result.
func Rank(recs []Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Priority != recs[j].Priority {
			return recs[i].Priority < recs[j].Priority
		}
		return recs[i].AbsScore > recs[j].AbsScore
	})
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
