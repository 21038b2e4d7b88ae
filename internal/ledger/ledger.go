// Package ledger loads and cleans the trade ledger CSV that feeds the
// equity replay. Rows that cannot be parsed into a complete valid trade are
// dropped here so downstream consumers only ever see finite values in
// ascending timestamp order.
package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Trade is one executed trade from the backtest report.
type Trade struct {
	Timestamp time.Time
	Symbol    string
	Side      string
	Quantity  decimal.Decimal
	PNL       decimal.Decimal
	PNLPct    decimal.Decimal
	Equity    decimal.Decimal
	Reason    string
}

var requiredColumns = []string{
	"timestamp", "symbol", "side", "quantity", "pnl", "pnl_pct", "equity_after_trade", "reason",
}

// timestampLayouts are tried in order; all parses are normalised to UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Load reads and cleans a trade ledger from disk. A missing file is fatal.
func Load(path string) ([]Trade, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trade ledger: %w", err)
	}
	defer file.Close()

	trades, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("read trade ledger %s: %w", path, err)
	}
	return trades, nil
}

// Read parses a trade ledger CSV. Rows with unparseable timestamps or
// numeric fields are dropped; the remainder is returned sorted ascending by
// timestamp.
func Read(r io.Reader) ([]Trade, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}

	var trades []Trade
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		trade, ok := parseRow(row, idx)
		if !ok {
			continue
		}
		trades = append(trades, trade)
	}

	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].Timestamp.Before(trades[j].Timestamp)
	})
	return trades, nil
}

func parseRow(row []string, idx map[string]int) (Trade, bool) {
	field := func(name string) string {
		i := idx[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	ts, ok := parseTimestamp(field("timestamp"))
	if !ok {
		return Trade{}, false
	}

	quantity, err := decimal.NewFromString(field("quantity"))
	if err != nil {
		return Trade{}, false
	}
	pnl, err := decimal.NewFromString(field("pnl"))
	if err != nil {
		return Trade{}, false
	}
	pnlPct, err := decimal.NewFromString(field("pnl_pct"))
	if err != nil {
		return Trade{}, false
	}
	equity, err := decimal.NewFromString(field("equity_after_trade"))
	if err != nil {
		return Trade{}, false
	}

	return Trade{
		Timestamp: ts,
		Symbol:    field("symbol"),
		Side:      field("side"),
		Quantity:  quantity,
		PNL:       pnl,
		PNLPct:    pnlPct,
		Equity:    equity,
		Reason:    field("reason"),
	}, true
}

func parseTimestamp(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}
