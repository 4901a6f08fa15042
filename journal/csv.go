package journal

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// CSVJournal writes one CSV file per record kind under a directory.
type CSVJournal struct {
	runs, recs, entries, pnl *csv.Writer
	files                    []*os.File
}

func NewCSV(dir string) (*CSVJournal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	j := &CSVJournal{}
	open := func(name string, header []string) (*csv.Writer, error) {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		j.files = append(j.files, f)
		w := csv.NewWriter(f)
		if err := w.Write(header); err != nil {
			return nil, err
		}
		w.Flush()
		return w, w.Error()
	}

	var err error
	if j.runs, err = open("runs.csv", []string{"run_id", "time", "strategy"}); err != nil {
		return nil, err
	}
	if j.recs, err = open("recommendations.csv", []string{
		"run_id", "rank", "currency", "score", "signal", "priority", "percentage_change"}); err != nil {
		return nil, err
	}
	if j.entries, err = open("plan_entries.csv", []string{
		"run_id", "seq", "action", "currency", "amount", "value"}); err != nil {
		return nil, err
	}
	if j.pnl, err = open("realized_pnl.csv", []string{
		"run_id", "symbol", "realized_pnl_quote", "matched_sell_qty",
		"avg_buy_price", "avg_sell_price", "notes"}); err != nil {
		return nil, err
	}

	return j, nil
}

func (j *CSVJournal) RecordRun(r Run) error {
	return write(j.runs, []string{r.RunID, r.Time.Format(time.RFC3339), r.Strategy})
}

func (j *CSVJournal) RecordRecommendation(r RecommendationRecord) error {
	return write(j.recs, []string{
		r.RunID,
		strconv.Itoa(r.Rank),
		r.Currency,
		strconv.Itoa(r.Score),
		r.Signal,
		strconv.Itoa(r.Priority),
		f(r.PercentageChange),
	})
}

func (j *CSVJournal) RecordPlanEntry(e PlanEntryRecord) error {
	return write(j.entries, []string{
		e.RunID,
		strconv.Itoa(e.Seq),
		e.Action,
		e.Currency,
		e.Amount,
		f(e.Value),
	})
}

func (j *CSVJournal) RecordPnL(r PnLRecord) error {
	return write(j.pnl, []string{
		r.RunID, r.Symbol, r.RealizedPnL, r.MatchedSellQty,
		r.AvgBuyPrice, r.AvgSellPrice, r.Notes,
	})
}

func (j *CSVJournal) Close() error {
	for _, w := range []*csv.Writer{j.runs, j.recs, j.entries, j.pnl} {
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
	}
	for _, file := range j.files {
		if err := file.Close(); err != nil {
			return err
		}
	}
	return nil
}

func write(w *csv.Writer, row []string) error {
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func f(x float64) string {
	if math.IsNaN(x) {
		return ""
	}
	return strconv.FormatFloat(x, 'f', 6, 64)
}
