package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Show prints recent imported trades.
func (a *App) Show(ctx context.Context, opts ShowOptions) error {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("database not configured; cannot show trades")
	}
	if closeStore != nil {
		defer closeStore()
	}

	trades, err := store.ListRecentTrades(ctx, opts.Limit)
	if err != nil {
		return err
	}
	if len(trades) == 0 {
		fmt.Fprintln(os.Stdout, "no trades found")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Time (UTC)\tSymbol\tSide\tQty\tPnL\tPnL%\tEquity\tReason")

	for _, t := range trades {
		fmt.Fprintf(
			writer,
			"%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.Timestamp.UTC().Format(time.RFC3339),
			t.Symbol,
			t.Side,
			t.Quantity.StringFixed(2),
			t.PNL.StringFixed(2),
			t.PNLPct.Mul(hundred).StringFixed(2),
			t.Equity.StringFixed(2),
			sanitizeInline(t.Reason),
		)
	}

	return writer.Flush()
}

func sanitizeInline(v string) string {
	cleaned := strings.ReplaceAll(v, "\n", " ")
	cleaned = strings.ReplaceAll(cleaned, "\r", " ")
	return cleaned
}
