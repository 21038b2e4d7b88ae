package app

import (
	"context"
	"errors"

	"btviz/internal/ledger"
)

// Import bulk-loads a trade ledger CSV into Postgres.
func (a *App) Import(ctx context.Context, opts ImportOptions) error {
	path := opts.CSVPath
	if path == "" {
		path = a.Config.Inputs.Trades
	}

	trades, err := ledger.Load(path)
	if err != nil {
		return err
	}
	if len(trades) == 0 {
		a.Logger.Warn().Str("ledger", path).Msg("no valid trades to import")
		return nil
	}

	if opts.DryRun {
		a.Logger.Info().Int("trades", len(trades)).Msg("dry-run: skipping database write")
		return nil
	}

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("database not configured; cannot import")
	}
	if closeStore != nil {
		defer closeStore()
	}

	written, err := store.UpsertTrades(ctx, trades)
	if err != nil {
		return err
	}

	total, err := store.CountTrades(ctx)
	if err != nil {
		return err
	}

	a.Logger.Info().
		Int("imported", written).
		Int64("total", total).
		Msg("trade ledger imported")
	return nil
}
