package ledger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const ledgerHeader = "timestamp,symbol,side,quantity,pnl,pnl_pct,equity_after_trade,reason\n"

func TestReadParsesAndSorts(t *testing.T) {
	csvData := ledgerHeader +
		"2024-03-02T10:00:00Z,BTCUSDT,SELL,0.5,-25.00,-0.0125,9975.00,stop\n" +
		"2024-03-01T10:00:00Z,BTCUSDT,BUY,0.5,100.00,0.05,10100.00,signal\n"

	trades, err := Read(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(trades) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(trades))
	}
	if !trades[0].Timestamp.Before(trades[1].Timestamp) {
		t.Fatal("trades must be sorted ascending by timestamp")
	}
	if trades[0].Side != "BUY" || trades[0].Reason != "signal" {
		t.Fatalf("unexpected first trade: %#v", trades[0])
	}
	if trades[0].Equity.String() != "10100" {
		t.Fatalf("equity = %s, want 10100", trades[0].Equity)
	}
	if trades[0].Timestamp.Location() != time.UTC {
		t.Fatal("timestamps must be normalised to UTC")
	}
}

func TestReadDropsBadTimestamps(t *testing.T) {
	csvData := ledgerHeader +
		"not-a-time,BTCUSDT,BUY,1,1,0.01,10001,x\n" +
		"2024-03-01 10:00:00,BTCUSDT,BUY,1,1,0.01,10001,x\n"

	trades, err := Read(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(trades) != 1 {
		t.Fatalf("expected the bad-timestamp row to be dropped, got %d trades", len(trades))
	}
}

func TestReadDropsBadNumerics(t *testing.T) {
	csvData := ledgerHeader +
		"2024-03-01T10:00:00Z,BTCUSDT,BUY,oops,1,0.01,10001,x\n" +
		"2024-03-02T10:00:00Z,BTCUSDT,BUY,1,1,0.01,n/a,x\n" +
		"2024-03-03T10:00:00Z,BTCUSDT,BUY,1,1,0.01,10001,x\n"

	trades, err := Read(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(trades) != 1 {
		t.Fatalf("rows with unparseable numerics must be excluded, got %d trades", len(trades))
	}
}

func TestReadAllRowsInvalid(t *testing.T) {
	csvData := ledgerHeader + "garbage,,,,,,,\n"
	trades, err := Read(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(trades) != 0 {
		t.Fatalf("expected empty result, got %d trades", len(trades))
	}
}

func TestReadMissingColumn(t *testing.T) {
	csvData := "timestamp,symbol,side\n2024-03-01T10:00:00Z,BTCUSDT,BUY\n"
	if _, err := Read(strings.NewReader(csvData)); err == nil {
		t.Fatal("expected error for missing required columns")
	}
}

func TestReadEmptyInput(t *testing.T) {
	trades, err := Read(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(trades) != 0 {
		t.Fatalf("expected no trades, got %d", len(trades))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("expected error for missing ledger file")
	}
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.csv")
	csvData := ledgerHeader + "2024-03-01T10:00:00Z,ETHUSDT,BUY,2,10,0.001,10010,entry\n"
	if err := os.WriteFile(path, []byte(csvData), 0o644); err != nil {
		t.Fatal(err)
	}

	trades, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(trades) != 1 || trades[0].Symbol != "ETHUSDT" {
		t.Fatalf("unexpected trades: %#v", trades)
	}
}
