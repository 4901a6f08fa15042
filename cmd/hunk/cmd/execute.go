package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/persegersten/cryptohunk/broker"
	"github.com/persegersten/cryptohunk/store"
)

var executeCmd = &cobra.Command{
	Use:   "execute",
	Short: "Execute the trade plan (dry run only)",
	Long: `Run the trade plan in order through the execution boundary. This
binary only ships the dry-run broker; live execution requires an
external broker implementation and trading.dry_run=false is rejected.`,
	RunE: runExecute,
}

func init() {
	rootCmd.AddCommand(executeCmd)
}

func runExecute(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Trading.DryRun {
		return fmt.Errorf("live execution is not supported by this binary; set trading.dry_run=true")
	}
	log := newLogger()
	st := store.New(cfg.DataAreaRootDir, log)

	entries, err := st.ReadTradePlan()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		log.Info("trade plan is empty, nothing to execute")
		return nil
	}

	b := broker.NewDryRun(cfg.QuoteAsset, log)
	if err := broker.ExecutePlan(cmd.Context(), b, entries); err != nil {
		return err
	}
	log.Info("plan executed", "entries", len(entries), "mode", "dry-run")
	return nil
}
