package store

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/persegersten/cryptohunk/market"
)

// ledgerRecord mirrors one entry of the exchange myTrades JSON dump.
// Numeric fields arrive as strings; decimal handles both forms.
type ledgerRecord struct {
	Symbol          string          `json:"symbol"`
	IsBuyer         bool            `json:"isBuyer"`
	Qty             decimal.Decimal `json:"qty"`
	Price           decimal.Decimal `json:"price"`
	QuoteQty        decimal.Decimal `json:"quoteQty"`
	Commission      decimal.Decimal `json:"commission"`
	CommissionAsset string          `json:"commissionAsset"`
	Time            int64           `json:"time"`
}

// ReadTrades loads the trade ledger from trades/trades.json. The records
// are returned in file order; chronological validation is the PnL engine's
// responsibility.
func (s *Store) ReadTrades() ([]market.Trade, error) {
	data, err := os.ReadFile(s.tradesFile())
	if err != nil {
		return nil, fmt.Errorf("trade ledger: %w", err)
	}

	var records []ledgerRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse trade ledger: %w", err)
	}

	trades := make([]market.Trade, 0, len(records))
	for _, r := range records {
		trades = append(trades, market.Trade{
			Symbol:          r.Symbol,
			IsBuyer:         r.IsBuyer,
			Qty:             r.Qty,
			Price:           r.Price,
			QuoteQty:        r.QuoteQty,
			Commission:      r.Commission,
			CommissionAsset: r.CommissionAsset,
			Time:            time.UnixMilli(r.Time).UTC(),
		})
	}
	s.log.Info("loaded trade ledger", "trades", len(trades))
	return trades, nil
}
