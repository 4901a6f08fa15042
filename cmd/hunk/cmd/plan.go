package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/persegersten/cryptohunk/journal"
	"github.com/persegersten/cryptohunk/pkg/id"
	"github.com/persegersten/cryptohunk/plan"
	"github.com/persegersten/cryptohunk/store"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build an executable trade plan from the recommendations",
	Long: `Walk the ranked recommendations against the portfolio snapshot:
sell holdings above the trade threshold first, then spend all liquid
funds on the highest-ranked BUY. The plan is written to the data area.`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger()
	st := store.New(cfg.DataAreaRootDir, log)

	portfolio, err := st.ReadPortfolio()
	if err != nil {
		return err
	}
	recs, err := st.ReadRecommendations()
	if err != nil {
		return err
	}

	seq := plan.NewSequencer(cfg.Trading.TradeThreshold, cfg.QuoteAsset, log)
	entries := seq.Build(recs, portfolio)

	if err := st.WriteTradePlan(entries); err != nil {
		return err
	}

	j, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	runID := id.New()
	if err := j.RecordRun(journal.Run{RunID: runID, Time: time.Now().UTC(), Strategy: cfg.Strategy.Name}); err != nil {
		return err
	}
	for i, e := range entries {
		rec := journal.PlanEntryRecord{
			RunID:    runID,
			Seq:      i + 1,
			Action:   string(e.Action),
			Currency: e.Currency,
			Amount:   e.Amount,
			Value:    e.Value,
		}
		if err := j.RecordPlanEntry(rec); err != nil {
			return err
		}
	}

	log.Info("trade plan done", "run_id", runID, "entries", len(entries))
	return nil
}
