package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/persegersten/cryptohunk/market"
)

var historyHeader = []string{
	"Open_Time_ms", "Open", "High", "Low", "Close", "Volume",
	"Close_Time_ms", "Quote_Asset_Volume", "Number_of_Trades",
	"Taker_Buy_Base_Asset_Volume", "Taker_Buy_Quote_Asset_Volume",
}

// ReadHistory loads the candle history for a currency. Archived histories
// compressed with xz (<CUR>_history.csv.xz) are read transparently; the
// plain file wins when both exist.
func (s *Store) ReadHistory(currency string) ([]market.Candle, error) {
	path := s.historyFile(currency)
	var r io.Reader

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		r = f
	case os.IsNotExist(err):
		xf, xerr := os.Open(path + ".xz")
		if xerr != nil {
			return nil, fmt.Errorf("history for %s: %w", currency, err)
		}
		defer xf.Close()
		xr, xerr := xz.NewReader(xf)
		if xerr != nil {
			return nil, fmt.Errorf("open xz history for %s: %w", currency, xerr)
		}
		r = xr
	default:
		return nil, fmt.Errorf("history for %s: %w", currency, err)
	}

	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse history for %s: %w", currency, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	candles := make([]market.Candle, 0, len(records)-1)
	for i, rec := range records {
		if i == 0 && rec[0] == historyHeader[0] {
			continue
		}
		if len(rec) < 7 {
			s.log.Warn("short history row skipped", "currency", currency, "row", i)
			continue
		}

		c := market.Candle{
			OpenTime:  msToTime(rec[0]),
			Open:      parseFloat(rec[1]),
			High:      parseFloat(rec[2]),
			Low:       parseFloat(rec[3]),
			Close:     parseFloat(rec[4]),
			Volume:    parseFloat(rec[5]),
			CloseTime: msToTime(rec[6]),
		}
		if len(rec) > 7 {
			c.QuoteVolume = parseFloat(rec[7])
		}
		if len(rec) > 8 {
			c.TradeCount, _ = strconv.ParseInt(rec[8], 10, 64)
		}
		if len(rec) > 9 {
			c.TakerBuyBaseVolume = parseFloat(rec[9])
		}
		if len(rec) > 10 {
			c.TakerBuyQuoteVolume = parseFloat(rec[10])
		}
		if math.IsNaN(c.Close) {
			s.log.Warn("history row without close price skipped", "currency", currency, "row", i)
			continue
		}
		candles = append(candles, c)
	}
	return candles, nil
}

func msToTime(field string) time.Time {
	ms, err := strconv.ParseInt(field, 10, 64)
	if err != nil || ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
