// Package feed renders the per-trade console stream that accompanies the
// equity replay.
package feed

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"btviz/internal/ledger"
)

// Feed receives one event per replayed trade.
type Feed interface {
	Header()
	Trade(t ledger.Trade)
}

// Nop discards all events.
type Nop struct{}

func (Nop) Header()              {}
func (Nop) Trade(t ledger.Trade) {}

const (
	reset  = "\x1b[0m"
	bold   = "\x1b[1m"
	yellow = "\x1b[33m"
	green  = "\x1b[32m"
	red    = "\x1b[31m"
)

// Console writes an aligned, ANSI-colored trade feed. PnL columns are green
// for non-negative pnl and red for negative.
type Console struct {
	out   io.Writer
	color bool
}

// NewConsole builds a feed over stdout. Color is disabled when NO_COLOR is
// set or stdout is not a terminal.
func NewConsole() *Console {
	color := os.Getenv("NO_COLOR") == ""
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		color = false
	}
	return &Console{out: os.Stdout, color: color}
}

// NewConsoleWriter builds a feed over an arbitrary writer, mainly for tests.
func NewConsoleWriter(w io.Writer, color bool) *Console {
	return &Console{out: w, color: color}
}

// Header prints the column header and rule.
func (c *Console) Header() {
	fmt.Fprintln(c.out, c.style(bold, strings.Repeat("-", 96)))
	fmt.Fprintln(c.out, c.style(bold, fmt.Sprintf(
		"%-21s %-10s %-4s %9s %12s %8s %13s  %s",
		"TIMESTAMP", "SYMBOL", "SIDE", "QTY", "PNL", "PNL%", "EQUITY", "REASON",
	)))
}

// Trade prints one formatted trade line.
func (c *Console) Trade(t ledger.Trade) {
	pnlStyle := green
	if t.PNL.IsNegative() {
		pnlStyle = red
	}

	fmt.Fprintf(c.out, "%s %s %-4s %9.2f %s %s %13s  %s\n",
		c.style(bold, fmt.Sprintf("%-21s", t.Timestamp.UTC().Format("2006-01-02 15:04:05"))),
		c.style(yellow, fmt.Sprintf("%-10s", t.Symbol)),
		t.Side,
		t.Quantity.InexactFloat64(),
		c.style(pnlStyle, fmt.Sprintf("%12s", "$"+t.PNL.StringFixed(2))),
		c.style(pnlStyle, fmt.Sprintf("%7.2f%%", t.PNLPct.InexactFloat64()*100)),
		"$"+t.Equity.StringFixed(2),
		t.Reason,
	)
}

func (c *Console) style(code, s string) string {
	if !c.color {
		return s
	}
	return code + s + reset
}

var _ Feed = (*Console)(nil)
var _ Feed = Nop{}
