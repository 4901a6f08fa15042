package market

import "math"

// Position is one row of the portfolio summary. PreviousRate is the cost
// basis (price at the last buy); PercentageChange is NaN when no cost basis
// exists.
type Position struct {
	Currency         string
	Balance          float64
	CurrentRate      float64
	CurrentValue     float64
	PreviousRate     float64
	PercentageChange float64
	ValueChange      float64
}

// Portfolio is one snapshot of all held or tracked assets.
type Portfolio struct {
	Positions []Position
}

// Find returns the position for a currency, if present.
func (p Portfolio) Find(currency string) (Position, bool) {
	for _, pos := range p.Positions {
		if pos.Currency == currency {
			return pos, true
		}
	}
	return Position{}, false
}

// LiquidFunds returns the current value held in the quote currency,
// or 0 when the portfolio has no quote position.
func (p Portfolio) LiquidFunds(quoteAsset string) float64 {
	pos, ok := p.Find(quoteAsset)
	if !ok {
		return 0
	}
	return pos.CurrentValue
}

// PercentChange returns the relative change since the cost basis in percent,
// or NaN when there is no usable cost basis.
func PercentChange(current, previous float64) float64 {
	if previous <= 0 {
		return math.NaN()
	}
	return (current - previous) / previous * 100
}

// NewPosition derives the value fields of a position from its balance,
// current rate and cost basis.
func NewPosition(currency string, balance, currentRate, previousRate float64) Position {
	value := balance * currentRate
	pos := Position{
		Currency:         currency,
		Balance:          balance,
		CurrentRate:      currentRate,
		CurrentValue:     value,
		PreviousRate:     previousRate,
		PercentageChange: PercentChange(currentRate, previousRate),
		ValueChange:      math.NaN(),
	}
	if previousRate > 0 {
		pos.ValueChange = value - previousRate*balance
	}
	return pos
}

// BuildSummary assembles a portfolio snapshot from account balances, current
// quote rates, and per-currency cost bases. Currencies missing a balance or
// rate are included with zero values so they can still receive BUY signals.
func BuildSummary(currencies []string, quoteAsset string, balances, rates, costBasis map[string]float64) Portfolio {
	seen := make(map[string]bool, len(currencies)+1)
	all := make([]string, 0, len(currencies)+1)
	for _, c := range append(append([]string{}, currencies...), quoteAsset) {
		if !seen[c] {
			seen[c] = true
			all = append(all, c)
		}
	}

	positions := make([]Position, 0, len(all))
	for _, currency := range all {
		rate := rates[currency]
		prev := costBasis[currency]
		if currency == quoteAsset {
			rate, prev = 1, 1
		}
		positions = append(positions, NewPosition(currency, balances[currency], rate, prev))
	}
	return Portfolio{Positions: positions}
}
