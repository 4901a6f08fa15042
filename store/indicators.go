package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/persegersten/cryptohunk/indicators"
)

var taHeader = []string{
	"Open_Time_ms", "Close_Time_ms", "Close", "RSI_14",
	"EMA_12", "EMA_21", "EMA_26", "EMA_50", "EMA_200",
	"MACD", "MACD_Signal", "MACD_Histogram",
}

// WriteIndicators persists the indicator series for a currency. Undefined
// values serialize as empty fields, never as zero.
func (s *Store) WriteIndicators(currency string, rows []indicators.Row) error {
	path := s.taFile(currency)
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create ta file for %s: %w", currency, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(taHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			strconv.FormatInt(r.OpenTime, 10),
			strconv.FormatInt(r.CloseTime, 10),
			formatFloat(r.Close, -1),
			formatFloat(r.RSI14, -1),
			formatFloat(r.EMA12, -1),
			formatFloat(r.EMA21, -1),
			formatFloat(r.EMA26, -1),
			formatFloat(r.EMA50, -1),
			formatFloat(r.EMA200, -1),
			formatFloat(r.MACD, -1),
			formatFloat(r.MACDSignal, -1),
			formatFloat(r.MACDHistogram, -1),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	s.log.Info("wrote indicator rows", "currency", currency, "rows", len(rows), "file", path)
	return nil
}

// ReadIndicators loads a previously written indicator series. Empty or
// malformed fields come back as NaN.
func (s *Store) ReadIndicators(currency string) ([]indicators.Row, error) {
	f, err := os.Open(s.taFile(currency))
	if err != nil {
		return nil, fmt.Errorf("ta file for %s: %w", currency, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse ta file for %s: %w", currency, err)
	}

	rows := make([]indicators.Row, 0, len(records))
	for i, rec := range records {
		if i == 0 && rec[0] == taHeader[0] {
			continue
		}
		if len(rec) < len(taHeader) {
			s.log.Warn("short ta row skipped", "currency", currency, "row", i)
			continue
		}
		openMs, _ := strconv.ParseInt(rec[0], 10, 64)
		closeMs, _ := strconv.ParseInt(rec[1], 10, 64)
		rows = append(rows, indicators.Row{
			OpenTime:      openMs,
			CloseTime:     closeMs,
			Close:         parseFloat(rec[2]),
			RSI14:         parseFloat(rec[3]),
			EMA12:         parseFloat(rec[4]),
			EMA21:         parseFloat(rec[5]),
			EMA26:         parseFloat(rec[6]),
			EMA50:         parseFloat(rec[7]),
			EMA200:        parseFloat(rec[8]),
			MACD:          parseFloat(rec[9]),
			MACDSignal:    parseFloat(rec[10]),
			MACDHistogram: parseFloat(rec[11]),
		})
	}
	return rows, nil
}
