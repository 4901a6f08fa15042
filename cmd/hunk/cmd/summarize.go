package cmd

import (
	"github.com/spf13/cobra"

	"github.com/persegersten/cryptohunk/market"
	"github.com/persegersten/cryptohunk/store"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Build the portfolio summary from balances, history and ledger",
	Long: `Assemble the portfolio snapshot the rebalance stage decides on:
account balances from the data area, current rates from the latest
close of each currency's history, and the cost basis from the last buy
in the trade ledger. Everything is read offline; no exchange is
contacted.`,
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger()
	st := store.New(cfg.DataAreaRootDir, log)

	balances, err := st.ReadBalances()
	if err != nil {
		return err
	}

	rates := make(map[string]float64, len(cfg.Currencies))
	for _, currency := range cfg.Currencies {
		candles, err := st.ReadHistory(currency)
		if err != nil || len(candles) == 0 {
			log.Warn("no rate source for currency", "currency", currency, "err", err)
			continue
		}
		rates[currency] = candles[len(candles)-1].Close
	}

	// A missing ledger only costs the take-profit cost basis.
	costBasis := make(map[string]float64, len(cfg.Currencies))
	trades, err := st.ReadTrades()
	if err != nil {
		log.Warn("trade ledger unavailable, cost basis left undefined", "err", err)
	} else {
		for _, currency := range cfg.Currencies {
			if p := market.LastBuyPrice(trades, currency, cfg.QuoteAsset); p > 0 {
				costBasis[currency] = p
			}
		}
	}

	portfolio := market.BuildSummary(cfg.Currencies, cfg.QuoteAsset, balances, rates, costBasis)
	if err := st.WritePortfolio(portfolio); err != nil {
		return err
	}

	log.Info("portfolio summary done", "positions", len(portfolio.Positions))
	return nil
}
