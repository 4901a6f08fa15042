package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/persegersten/cryptohunk/indicators"
	"github.com/persegersten/cryptohunk/store"
)

var taCmd = &cobra.Command{
	Use:   "ta",
	Short: "Compute technical indicators from price history",
	Long: `Read candle history for every configured currency and write the
RSI/EMA/MACD indicator series to the data area. Currencies with missing
history are skipped; the run fails only when nothing could be processed.`,
	RunE: runTA,
}

func init() {
	rootCmd.AddCommand(taCmd)
}

func runTA(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger()
	st := store.New(cfg.DataAreaRootDir, log)

	processed := 0
	for _, currency := range cfg.Currencies {
		candles, err := st.ReadHistory(currency)
		if err != nil {
			log.Warn("skipping currency without history", "currency", currency, "err", err)
			continue
		}
		rows := indicators.Compute(candles)
		if err := st.WriteIndicators(currency, rows); err != nil {
			return fmt.Errorf("write indicators for %s: %w", currency, err)
		}
		processed++
	}

	if processed == 0 {
		return fmt.Errorf("no currency had usable price history")
	}
	log.Info("technical analysis done", "processed", processed, "configured", len(cfg.Currencies))
	return nil
}
