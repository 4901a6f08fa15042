// Package store materializes the pipeline's record shapes as CSV and JSON
// files under a data-area root. The engines never touch the filesystem
// themselves; this package is their only file boundary.
//
// Layout under the root:
//
//	history/<CUR>/<CUR>_history.csv[.xz]   candle history (input)
//	ta/<CUR>/<CUR>_ta.csv                  indicator rows
//	summarised/portfolio.csv               portfolio snapshot
//	trades/trades.json                     trade ledger (input)
//	output/rebalance/recommendations.csv
//	output/rebalance/trade_plan.csv
//	output/trades_analysis/*.csv
package store

import (
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
)

type Store struct {
	root string
	log  *slog.Logger
}

func New(root string, log *slog.Logger) *Store {
	return &Store{root: root, log: log}
}

func (s *Store) historyFile(currency string) string {
	return filepath.Join(s.root, "history", currency, currency+"_history.csv")
}

func (s *Store) taFile(currency string) string {
	return filepath.Join(s.root, "ta", currency, currency+"_ta.csv")
}

func (s *Store) portfolioFile() string {
	return filepath.Join(s.root, "summarised", "portfolio.csv")
}

func (s *Store) tradesFile() string {
	return filepath.Join(s.root, "trades", "trades.json")
}

func (s *Store) rebalanceDir() string {
	return filepath.Join(s.root, "output", "rebalance")
}

func (s *Store) analysisDir() string {
	return filepath.Join(s.root, "output", "trades_analysis")
}

func ensureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// parseFloat maps a missing or malformed numeric field to NaN, never to
// zero, so downstream scoring skips the term instead of reading fabricated
// signal strength.
func parseFloat(field string) float64 {
	if field == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// formatFloat serializes NaN as an empty field.
func formatFloat(v float64, decimals int) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
