package feed

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"btviz/internal/ledger"
)

func sampleTrade(pnl float64) ledger.Trade {
	return ledger.Trade{
		Timestamp: time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
		Symbol:    "BTCUSDT",
		Side:      "BUY",
		Quantity:  decimal.NewFromFloat(0.5),
		PNL:       decimal.NewFromFloat(pnl),
		PNLPct:    decimal.NewFromFloat(pnl / 10000),
		Equity:    decimal.NewFromFloat(10000 + pnl),
		Reason:    "signal",
	}
}

func TestConsolePlainOutput(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf, false)

	c.Header()
	c.Trade(sampleTrade(100))

	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("color disabled but output has escape codes:\n%q", out)
	}
	for _, want := range []string{"TIMESTAMP", "BTCUSDT", "BUY", "2024-03-01 10:30:00", "$100.00", "signal"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConsoleStylesBySign(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf, true)
	c.Trade(sampleTrade(100))
	positive := buf.String()

	buf.Reset()
	c.Trade(sampleTrade(-50))
	negative := buf.String()

	if !strings.Contains(positive, green) {
		t.Fatalf("non-negative pnl should use the positive style:\n%q", positive)
	}
	if strings.Contains(positive, red) {
		t.Fatalf("non-negative pnl must not use the negative style:\n%q", positive)
	}
	if !strings.Contains(negative, red) {
		t.Fatalf("negative pnl should use the negative style:\n%q", negative)
	}
}

func TestConsoleZeroPNLIsPositiveStyle(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf, true)
	c.Trade(sampleTrade(0))
	if strings.Contains(buf.String(), red) {
		t.Fatal("zero pnl counts as non-negative and must not style red")
	}
}
