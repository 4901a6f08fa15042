package store

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

var balancesHeader = []string{"currency", "balance"}

func (s *Store) balancesFile() string {
	return filepath.Join(s.root, "account", "balances.csv")
}

// ReadBalances loads the account balances used to build the portfolio
// summary. Rows with a missing or malformed balance are skipped.
func (s *Store) ReadBalances() (map[string]float64, error) {
	f, err := os.Open(s.balancesFile())
	if err != nil {
		return nil, fmt.Errorf("account balances: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse account balances: %w", err)
	}

	balances := make(map[string]float64, len(records))
	for i, rec := range records {
		if i == 0 && rec[0] == balancesHeader[0] {
			continue
		}
		if len(rec) < len(balancesHeader) {
			s.log.Warn("short balance row skipped", "row", i)
			continue
		}
		v := parseFloat(rec[1])
		if math.IsNaN(v) {
			s.log.Warn("balance row without amount skipped", "currency", rec[0], "row", i)
			continue
		}
		balances[rec[0]] = v
	}
	return balances, nil
}
