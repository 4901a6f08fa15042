package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/persegersten/cryptohunk/config"
	"github.com/persegersten/cryptohunk/journal"
)

var rootCmd = &cobra.Command{
	Use:   "hunk",
	Short: "Portfolio-rebalancing decision engine for a crypto basket",
	Long: `Hunk derives technical indicators from price history, turns them into
BUY/SELL/HOLD recommendations under take-profit and stop-loss override
rules, converts the recommendations into a liquidity-aware trade plan,
and reconstructs realized PnL from the trade ledger with FIFO matching.

All stages read and write a shared data area; no stage talks to an
exchange.`,
}

var (
	cfgPath  string
	logLevel string
)

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "f", "hunk.yaml", "path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug|info|warn|error")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func openJournal(cfg *config.Config) (journal.Journal, error) {
	if cfg.Journal.Type == "sqlite" {
		return journal.NewSQLite(cfg.Journal.DBPath)
	}
	return journal.NewCSV(cfg.Journal.Dir)
}
