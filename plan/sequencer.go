// Package plan converts ranked recommendations into an executable trade
// plan that respects available liquid funds.
package plan

import (
	"log/slog"
	"strconv"

	"github.com/persegersten/cryptohunk/market"
	"github.com/persegersten/cryptohunk/rebalance"
	"github.com/persegersten/cryptohunk/strategies"
)

// AmountAll marks a BUY that spends all accumulated liquid funds.
const AmountAll = "ALL"

// Action is the side of a planned trade.
type Action string

const (
	Buy  Action = "BUY"
	Sell Action = "SELL"
)

// Entry is one executable step of a trade plan. Amount is a base-asset
// quantity string with 8 decimals, or AmountAll for the full-liquidity BUY.
// Value is in the quote currency.
type Entry struct {
	Action   Action
	Currency string
	Amount   string
	Value    float64
}

// Sequencer builds trade plans. It holds no state between runs.
type Sequencer struct {
	threshold  float64
	quoteAsset string
	log        *slog.Logger
}

func NewSequencer(tradeThreshold float64, quoteAsset string, log *slog.Logger) *Sequencer {
	return &Sequencer{threshold: tradeThreshold, quoteAsset: quoteAsset, log: log}
}

// Build walks recommendations in rank order. Every SELL whose position value
// reaches the trade threshold liquidates the full holding and adds its value
// to the liquid funds; afterwards, when liquid funds exceed the threshold,
// the highest-ranked BUY receives everything. SELL entries always precede
// the BUY, and at most one BUY is emitted.
func (s *Sequencer) Build(recs []rebalance.Recommendation, portfolio market.Portfolio) []Entry {
	liquid := portfolio.LiquidFunds(s.quoteAsset)
	s.log.Info("building trade plan", "liquid_funds", liquid, "recommendations", len(recs))

	var entries []Entry
	for _, rec := range recs {
		if rec.Signal != strategies.Sell {
			continue
		}
		pos, ok := portfolio.Find(rec.Currency)
		if !ok {
			s.log.Warn("sell recommendation without portfolio row", "currency", rec.Currency)
			continue
		}
		if pos.CurrentValue < s.threshold {
			s.log.Info("sell skipped below trade threshold",
				"currency", rec.Currency, "value", pos.CurrentValue, "threshold", s.threshold)
			continue
		}

		entries = append(entries, Entry{
			Action:   Sell,
			Currency: rec.Currency,
			Amount:   strconv.FormatFloat(pos.Balance, 'f', 8, 64),
			Value:    pos.CurrentValue,
		})
		liquid += pos.CurrentValue
		s.log.Info("planned sell", "currency", rec.Currency, "value", pos.CurrentValue)
	}

	if liquid > s.threshold {
		for _, rec := range recs {
			if rec.Signal != strategies.Buy {
				continue
			}
			entries = append(entries, Entry{
				Action:   Buy,
				Currency: rec.Currency,
				Amount:   AmountAll,
				Value:    liquid,
			})
			s.log.Info("planned buy with all liquid funds",
				"currency", rec.Currency, "value", liquid)
			break
		}
	} else {
		s.log.Info("buy skipped, liquid funds at or below threshold",
			"liquid_funds", liquid, "threshold", s.threshold)
	}

	return entries
}
