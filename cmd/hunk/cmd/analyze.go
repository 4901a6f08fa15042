package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/persegersten/cryptohunk/journal"
	"github.com/persegersten/cryptohunk/pkg/id"
	"github.com/persegersten/cryptohunk/pnl"
	"github.com/persegersten/cryptohunk/store"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Reconstruct realized PnL from the trade ledger",
	Long: `Read the trade ledger and produce the trades-analysis reports:
per-symbol flow summary, per-asset commission summary, and realized PnL
via FIFO lot matching.`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger()
	st := store.New(cfg.DataAreaRootDir, log)

	trades, err := st.ReadTrades()
	if err != nil {
		return err
	}

	engine := pnl.NewEngine(log)
	results, err := engine.Compute(trades)
	if err != nil {
		return err
	}

	if err := st.WriteSymbolSummaries(pnl.Summarize(trades)); err != nil {
		return err
	}
	if err := st.WriteCommissionTotals(pnl.CommissionTotals(trades)); err != nil {
		return err
	}
	if err := st.WritePnLReport(results); err != nil {
		return err
	}

	j, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	runID := id.New()
	if err := j.RecordRun(journal.Run{RunID: runID, Time: time.Now().UTC(), Strategy: "fifo"}); err != nil {
		return err
	}
	for _, r := range pnl.Sorted(results) {
		rec := journal.PnLRecord{
			RunID:          runID,
			Symbol:         r.Symbol,
			RealizedPnL:    r.RealizedPnL.String(),
			MatchedSellQty: r.MatchedSellQty.String(),
			AvgBuyPrice:    r.AvgBuyPrice.String(),
			AvgSellPrice:   r.AvgSellPrice.String(),
			Notes:          r.Notes,
		}
		if err := j.RecordPnL(rec); err != nil {
			return err
		}
	}

	log.Info("trade analysis done", "run_id", runID, "symbols", len(results))
	return nil
}
