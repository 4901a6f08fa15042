// Package pnl reconstructs realized profit and loss from a trade ledger
// using FIFO lot matching. All arithmetic is decimal.
package pnl

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/persegersten/cryptohunk/market"
)

// ErrUnorderedLedger reports a ledger whose trades are not chronological
// within a symbol. FIFO matching against a misordered ledger would corrupt
// cost-basis history, so callers must treat this as fatal.
var ErrUnorderedLedger = errors.New("trade ledger not in chronological order")

// lot is one open buy awaiting FIFO matching, consumed oldest-first.
type lot struct {
	remaining decimal.Decimal
	unitPrice decimal.Decimal
}

// Result is the realized-PnL report row for one symbol. RealizedPnL is net
// of commissions charged in the symbol's quote asset; fees in other assets
// are never converted, only listed in Notes.
type Result struct {
	Symbol         string
	RealizedPnL    decimal.Decimal
	MatchedSellQty decimal.Decimal
	AvgBuyPrice    decimal.Decimal
	AvgSellPrice   decimal.Decimal
	Notes          string
}

// Engine computes realized PnL. Stateless between runs; the lot queues are
// rebuilt from the ledger every time.
type Engine struct {
	log *slog.Logger
}

func NewEngine(log *slog.Logger) *Engine {
	return &Engine{log: log}
}

// Compute reconstructs per-symbol realized PnL from a chronological trade
// ledger. Symbols are independent; a ledger that is out of order within any
// symbol fails the whole run with ErrUnorderedLedger.
func (e *Engine) Compute(trades []market.Trade) (map[string]Result, error) {
	bySymbol := make(map[string][]market.Trade)
	var symbols []string
	for _, t := range trades {
		if t.Symbol == "" {
			continue
		}
		if _, ok := bySymbol[t.Symbol]; !ok {
			symbols = append(symbols, t.Symbol)
		}
		bySymbol[t.Symbol] = append(bySymbol[t.Symbol], t)
	}

	results := make(map[string]Result, len(symbols))
	for _, symbol := range symbols {
		res, err := e.computeSymbol(symbol, bySymbol[symbol])
		if err != nil {
			return nil, err
		}
		results[symbol] = res
		e.log.Info("fifo pnl",
			"symbol", symbol,
			"realized", res.RealizedPnL.String(),
			"matched_qty", res.MatchedSellQty.String())
	}
	return results, nil
}

func (e *Engine) computeSymbol(symbol string, trades []market.Trade) (Result, error) {
	for i := 1; i < len(trades); i++ {
		if trades[i].Time.Before(trades[i-1].Time) {
			return Result{}, fmt.Errorf("%s: %w", symbol, ErrUnorderedLedger)
		}
	}

	var (
		queue            []lot
		realized         decimal.Decimal
		matchedSellQty   decimal.Decimal
		totalBuyCost     decimal.Decimal
		totalSellRevenue decimal.Decimal
		notes            []string
	)
	commissions := make(map[string]decimal.Decimal)

	for _, t := range trades {
		if t.Commission.IsPositive() {
			commissions[t.CommissionAsset] = commissions[t.CommissionAsset].Add(t.Commission)
		}

		if t.IsBuyer {
			queue = append(queue, lot{remaining: t.Qty, unitPrice: t.Price})
			continue
		}

		remaining := t.Qty
		for remaining.IsPositive() && len(queue) > 0 {
			head := &queue[0]
			matched := decimal.Min(head.remaining, remaining)

			buyCost := matched.Mul(head.unitPrice)
			sellValue := matched.Mul(t.Price)

			realized = realized.Add(sellValue.Sub(buyCost))
			matchedSellQty = matchedSellQty.Add(matched)
			totalBuyCost = totalBuyCost.Add(buyCost)
			totalSellRevenue = totalSellRevenue.Add(sellValue)

			head.remaining = head.remaining.Sub(matched)
			remaining = remaining.Sub(matched)
			if head.remaining.IsZero() {
				queue = queue[1:]
			}
		}

		// Oversold relative to tracked lots: report, never fabricate a
		// cost basis.
		if remaining.IsPositive() {
			notes = append(notes, "Unmatched sell: "+remaining.String())
		}
	}

	if len(queue) > 0 {
		open := decimal.Zero
		for _, l := range queue {
			open = open.Add(l.remaining)
		}
		notes = append(notes, "Unmatched buy: "+open.String())
	}

	avgBuy, avgSell := decimal.Zero, decimal.Zero
	if matchedSellQty.IsPositive() {
		avgBuy = totalBuyCost.Div(matchedSellQty)
		avgSell = totalSellRevenue.Div(matchedSellQty)
	}

	net := realized
	if quote := market.QuoteAsset(symbol); quote != "" {
		if fee, ok := commissions[quote]; ok {
			net = net.Sub(fee)
			notes = append(notes, "Commission in "+quote+" subtracted from PnL")
			delete(commissions, quote)
		}
	}
	if len(commissions) > 0 {
		assets := make([]string, 0, len(commissions))
		for asset := range commissions {
			assets = append(assets, asset)
		}
		sort.Strings(assets)
		notes = append(notes, "Fees in "+strings.Join(assets, ", ")+" not converted")
	}

	return Result{
		Symbol:         symbol,
		RealizedPnL:    net,
		MatchedSellQty: matchedSellQty,
		AvgBuyPrice:    avgBuy,
		AvgSellPrice:   avgSell,
		Notes:          strings.Join(notes, "; "),
	}, nil
}

// Sorted returns the results as a slice ordered by symbol for deterministic
// reporting.
func Sorted(results map[string]Result) []Result {
	out := make([]Result, 0, len(results))
	for _, r := range results {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}
