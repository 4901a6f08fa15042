package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/persegersten/cryptohunk/plan"
	"github.com/persegersten/cryptohunk/pnl"
	"github.com/persegersten/cryptohunk/rebalance"
	"github.com/persegersten/cryptohunk/strategies"
)

var (
	recommendationHeader = []string{"currency", "percentage_change", "ta_score", "signal"}
	tradePlanHeader      = []string{"action", "currency", "amount", "value_usdc"}
)

// WriteRecommendations persists the ranked recommendation list. The file
// order is the rank order; an empty batch still produces a header-only file.
func (s *Store) WriteRecommendations(recs []rebalance.Recommendation) error {
	path := filepath.Join(s.rebalanceDir(), "recommendations.csv")
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []string{
			r.Currency,
			formatFloat(r.PercentageChange, 2),
			strconv.Itoa(r.Score),
			string(r.Signal),
		})
	}
	return s.writeCSV(path, recommendationHeader, rows)
}

// ReadRecommendations loads a recommendation list in rank order.
func (s *Store) ReadRecommendations() ([]rebalance.Recommendation, error) {
	path := filepath.Join(s.rebalanceDir(), "recommendations.csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("recommendations: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse recommendations: %w", err)
	}

	var recs []rebalance.Recommendation
	for i, rec := range records {
		if i == 0 && rec[0] == recommendationHeader[0] {
			continue
		}
		if len(rec) < len(recommendationHeader) {
			s.log.Warn("short recommendation row skipped", "row", i)
			continue
		}
		score, _ := strconv.Atoi(rec[2])
		r := rebalance.Recommendation{
			Currency:         rec[0],
			PercentageChange: parseFloat(rec[1]),
			Score:            score,
			Signal:           strategies.Signal(rec[3]),
		}
		if r.Score < 0 {
			r.AbsScore = -r.Score
		} else {
			r.AbsScore = r.Score
		}
		recs = append(recs, r)
	}
	return recs, nil
}

// WriteTradePlan persists the trade plan in execution order.
func (s *Store) WriteTradePlan(entries []plan.Entry) error {
	path := filepath.Join(s.rebalanceDir(), "trade_plan.csv")
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			string(e.Action),
			e.Currency,
			e.Amount,
			formatFloat(e.Value, 2),
		})
	}
	return s.writeCSV(path, tradePlanHeader, rows)
}

// ReadTradePlan loads a trade plan in execution order.
func (s *Store) ReadTradePlan() ([]plan.Entry, error) {
	path := filepath.Join(s.rebalanceDir(), "trade_plan.csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("trade plan: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse trade plan: %w", err)
	}

	var entries []plan.Entry
	for i, rec := range records {
		if i == 0 && rec[0] == tradePlanHeader[0] {
			continue
		}
		if len(rec) < len(tradePlanHeader) {
			s.log.Warn("short trade plan row skipped", "row", i)
			continue
		}
		entries = append(entries, plan.Entry{
			Action:   plan.Action(rec[0]),
			Currency: rec[1],
			Amount:   rec[2],
			Value:    parseFloat(rec[3]),
		})
	}
	return entries, nil
}

// WritePnLReport persists the realized-PnL rows sorted by symbol.
func (s *Store) WritePnLReport(results map[string]pnl.Result) error {
	path := filepath.Join(s.analysisDir(), "realized_pnl_fifo_by_symbol.csv")
	header := []string{
		"symbol", "realized_pnl_quote", "matched_sell_qty",
		"avg_buy_price", "avg_sell_price", "notes",
	}
	var rows [][]string
	for _, r := range pnl.Sorted(results) {
		rows = append(rows, []string{
			r.Symbol,
			r.RealizedPnL.String(),
			r.MatchedSellQty.String(),
			r.AvgBuyPrice.String(),
			r.AvgSellPrice.String(),
			r.Notes,
		})
	}
	return s.writeCSV(path, header, rows)
}

// WriteSymbolSummaries persists the per-symbol flow aggregation.
func (s *Store) WriteSymbolSummaries(summaries []pnl.SymbolSummary) error {
	path := filepath.Join(s.analysisDir(), "trades_summary_by_symbol.csv")
	header := []string{
		"symbol", "trades_count", "buy_qty_total", "sell_qty_total",
		"buy_quote_spent_total", "sell_quote_received_total",
		"net_quote_flow_before_fee", "commission_assets", "commission_total_original",
	}
	var rows [][]string
	for _, sum := range summaries {
		assets := sum.CommissionAssets()
		totals := make([]string, 0, len(assets))
		for _, asset := range assets {
			totals = append(totals, asset+":"+sum.Commissions[asset].String())
		}
		rows = append(rows, []string{
			sum.Symbol,
			strconv.Itoa(sum.TradeCount),
			sum.BuyQty.String(),
			sum.SellQty.String(),
			sum.BuyQuoteSpent.String(),
			sum.SellQuoteReceived.String(),
			sum.NetQuoteFlow().String(),
			strings.Join(assets, ", "),
			strings.Join(totals, ", "),
		})
	}
	return s.writeCSV(path, header, rows)
}

// WriteCommissionTotals persists the per-asset commission aggregation.
func (s *Store) WriteCommissionTotals(totals []pnl.CommissionTotal) error {
	path := filepath.Join(s.analysisDir(), "commission_summary.csv")
	header := []string{"commission_asset", "commission_total", "trades_count"}
	var rows [][]string
	for _, c := range totals {
		rows = append(rows, []string{c.Asset, c.Total.String(), strconv.Itoa(c.TradeCount)})
	}
	return s.writeCSV(path, header, rows)
}

func (s *Store) writeCSV(path string, header []string, rows [][]string) error {
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	s.log.Info("wrote output", "file", path, "rows", len(rows))
	return nil
}
