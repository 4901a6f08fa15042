package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/persegersten/cryptohunk/journal"
	"github.com/persegersten/cryptohunk/pkg/id"
	"github.com/persegersten/cryptohunk/rebalance"
	"github.com/persegersten/cryptohunk/store"
	"github.com/persegersten/cryptohunk/strategies"
)

var rebalanceCmd = &cobra.Command{
	Use:   "rebalance",
	Short: "Generate ranked BUY/SELL recommendations",
	Long: `Combine the latest indicator rows with the portfolio snapshot into a
ranked recommendation list under the take-profit, stop-loss and
minimum-holding override rules, and write it to the data area.`,
	RunE: runRebalance,
}

func init() {
	rootCmd.AddCommand(rebalanceCmd)
}

func runRebalance(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger()
	st := store.New(cfg.DataAreaRootDir, log)

	strategy, err := strategies.ByName(cfg.Strategy.Name, cfg.Strategy.TA2EMA50Filter)
	if err != nil {
		return err
	}

	portfolio, err := st.ReadPortfolio()
	if err != nil {
		return err
	}

	series := make(rebalance.Series, len(cfg.Currencies))
	for _, currency := range cfg.Currencies {
		rows, err := st.ReadIndicators(currency)
		if err != nil {
			log.Warn("no indicator data", "currency", currency, "err", err)
			continue
		}
		series[currency] = rows
	}

	engine := rebalance.NewEngine(rebalance.Rules{
		TradeThreshold: cfg.Trading.TradeThreshold,
		TakeProfitPct:  cfg.Trading.TakeProfitPercentage,
		StopLossPct:    cfg.Trading.StopLossPercentage,
	}, strategy, log)

	recs, err := engine.Evaluate(cmd.Context(), cfg.Currencies, series, portfolio)
	if err != nil {
		return err
	}
	if err := st.WriteRecommendations(recs); err != nil {
		return err
	}

	j, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	runID := id.New()
	if err := j.RecordRun(journal.Run{RunID: runID, Time: time.Now().UTC(), Strategy: strategy.Name()}); err != nil {
		return err
	}
	for rank, r := range recs {
		rec := journal.RecommendationRecord{
			RunID:            runID,
			Rank:             rank + 1,
			Currency:         r.Currency,
			Score:            r.Score,
			Signal:           string(r.Signal),
			Priority:         r.Priority,
			PercentageChange: r.PercentageChange,
		}
		if err := j.RecordRecommendation(rec); err != nil {
			return err
		}
	}

	log.Info("rebalance done", "run_id", runID, "recommendations", len(recs))
	return nil
}
