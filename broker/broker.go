// Package broker is the execution boundary for trade plans. The only
// implementation in this repository is a dry run; anything that talks to an
// exchange lives outside.
package broker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/persegersten/cryptohunk/plan"
)

// Broker executes a single trade-plan entry.
type Broker interface {
	Execute(ctx context.Context, entry plan.Entry) error
}

// DryRun logs each entry it would execute and fills nothing.
type DryRun struct {
	quoteAsset string
	log        *slog.Logger
}

func NewDryRun(quoteAsset string, log *slog.Logger) *DryRun {
	return &DryRun{quoteAsset: quoteAsset, log: log}
}

func (d *DryRun) Execute(ctx context.Context, entry plan.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch entry.Action {
	case plan.Buy, plan.Sell:
	default:
		return fmt.Errorf("unknown action %q for %s", entry.Action, entry.Currency)
	}

	d.log.Info("DRY RUN",
		"action", entry.Action,
		"symbol", entry.Currency+d.quoteAsset,
		"amount", entry.Amount,
		"value", entry.Value)
	return nil
}

// ExecutePlan runs the entries in plan order, stopping at the first error.
// Plan order already guarantees all SELLs precede the BUY, so liquid funds
// exist before they are spent.
func ExecutePlan(ctx context.Context, b Broker, entries []plan.Entry) error {
	for i, entry := range entries {
		if err := b.Execute(ctx, entry); err != nil {
			return fmt.Errorf("entry %d (%s %s): %w", i, entry.Action, entry.Currency, err)
		}
	}
	return nil
}
