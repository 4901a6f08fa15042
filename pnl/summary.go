package pnl

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/persegersten/cryptohunk/market"
)

// SymbolSummary aggregates raw buy and sell flows for one symbol, before
// any lot matching.
type SymbolSummary struct {
	Symbol            string
	TradeCount        int
	BuyQty            decimal.Decimal
	SellQty           decimal.Decimal
	BuyQuoteSpent     decimal.Decimal
	SellQuoteReceived decimal.Decimal
	Commissions       map[string]decimal.Decimal
}

// NetQuoteFlow is quote received minus quote spent, before fees.
func (s SymbolSummary) NetQuoteFlow() decimal.Decimal {
	return s.SellQuoteReceived.Sub(s.BuyQuoteSpent)
}

// CommissionAssets lists the fee assets charged for this symbol, sorted.
func (s SymbolSummary) CommissionAssets() []string {
	assets := make([]string, 0, len(s.Commissions))
	for asset := range s.Commissions {
		assets = append(assets, asset)
	}
	sort.Strings(assets)
	return assets
}

// Summarize aggregates the ledger per symbol, sorted by symbol.
func Summarize(trades []market.Trade) []SymbolSummary {
	bySymbol := make(map[string]*SymbolSummary)
	for _, t := range trades {
		if t.Symbol == "" {
			continue
		}
		s, ok := bySymbol[t.Symbol]
		if !ok {
			s = &SymbolSummary{Symbol: t.Symbol, Commissions: make(map[string]decimal.Decimal)}
			bySymbol[t.Symbol] = s
		}

		s.TradeCount++
		if t.IsBuyer {
			s.BuyQty = s.BuyQty.Add(t.Qty)
			s.BuyQuoteSpent = s.BuyQuoteSpent.Add(t.QuoteQty)
		} else {
			s.SellQty = s.SellQty.Add(t.Qty)
			s.SellQuoteReceived = s.SellQuoteReceived.Add(t.QuoteQty)
		}
		if t.Commission.IsPositive() {
			s.Commissions[t.CommissionAsset] = s.Commissions[t.CommissionAsset].Add(t.Commission)
		}
	}

	out := make([]SymbolSummary, 0, len(bySymbol))
	for _, s := range bySymbol {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// CommissionTotal is the total fee charged in one asset across the ledger.
type CommissionTotal struct {
	Asset      string
	Total      decimal.Decimal
	TradeCount int
}

// CommissionTotals sums commissions per fee asset, sorted by asset.
func CommissionTotals(trades []market.Trade) []CommissionTotal {
	byAsset := make(map[string]*CommissionTotal)
	for _, t := range trades {
		if !t.Commission.IsPositive() {
			continue
		}
		c, ok := byAsset[t.CommissionAsset]
		if !ok {
			c = &CommissionTotal{Asset: t.CommissionAsset}
			byAsset[t.CommissionAsset] = c
		}
		c.Total = c.Total.Add(t.Commission)
		c.TradeCount++
	}

	out := make([]CommissionTotal, 0, len(byAsset))
	for _, c := range byAsset {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Asset < out[j].Asset })
	return out
}
