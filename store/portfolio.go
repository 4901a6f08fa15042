package store

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/persegersten/cryptohunk/market"
)

var portfolioHeader = []string{
	"currency", "balance", "current_rate_usdc", "current_value_usdc",
	"previous_rate_usdc", "percentage_change", "value_change_usdc",
}

// WritePortfolio persists the portfolio snapshot. Quantities carry 8
// decimals, percentages 2.
func (s *Store) WritePortfolio(p market.Portfolio) error {
	path := s.portfolioFile()
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create portfolio summary: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(portfolioHeader); err != nil {
		return err
	}
	for _, pos := range p.Positions {
		if err := w.Write([]string{
			pos.Currency,
			formatFloat(zeroNaN(pos.Balance), 8),
			formatFloat(zeroNaN(pos.CurrentRate), 8),
			formatFloat(zeroNaN(pos.CurrentValue), 8),
			formatFloat(zeroNaN(pos.PreviousRate), 8),
			formatFloat(zeroNaN(pos.PercentageChange), 2),
			formatFloat(zeroNaN(pos.ValueChange), 8),
		}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	s.log.Info("wrote portfolio summary", "positions", len(p.Positions), "file", path)
	return nil
}

// ReadPortfolio loads the portfolio snapshot. A zero previous rate means
// there is no cost basis, so the percentage change comes back undefined
// regardless of what the file says.
func (s *Store) ReadPortfolio() (market.Portfolio, error) {
	f, err := os.Open(s.portfolioFile())
	if err != nil {
		return market.Portfolio{}, fmt.Errorf("portfolio summary: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return market.Portfolio{}, fmt.Errorf("parse portfolio summary: %w", err)
	}

	var p market.Portfolio
	for i, rec := range records {
		if i == 0 && rec[0] == portfolioHeader[0] {
			continue
		}
		if len(rec) < len(portfolioHeader) {
			s.log.Warn("short portfolio row skipped", "row", i)
			continue
		}
		pos := market.Position{
			Currency:         rec[0],
			Balance:          parseFloat(rec[1]),
			CurrentRate:      parseFloat(rec[2]),
			CurrentValue:     parseFloat(rec[3]),
			PreviousRate:     parseFloat(rec[4]),
			PercentageChange: parseFloat(rec[5]),
			ValueChange:      parseFloat(rec[6]),
		}
		if !(pos.PreviousRate > 0) {
			pos.PercentageChange = math.NaN()
		}
		p.Positions = append(p.Positions, pos)
	}
	return p, nil
}

// zeroNaN maps NaN to 0 for the portfolio file, matching the summary
// format where absent holdings are written as zero rows.
func zeroNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
