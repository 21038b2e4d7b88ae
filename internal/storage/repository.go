package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"btviz/internal/ledger"
)

var (
	// ErrNotConfigured indicates the storage pool was not initialised.
	ErrNotConfigured = errors.New("storage: pool not configured")
)

const (
	upsertTradeSQL = `INSERT INTO trades (
        ts,
        symbol,
        side,
        quantity,
        pnl,
        pnl_pct,
        equity_after_trade,
        reason
    ) VALUES (
        $1,$2,$3,$4,$5,$6,$7,$8
    )
    ON CONFLICT (ts, symbol) DO UPDATE
    SET
        side               = EXCLUDED.side,
        quantity           = EXCLUDED.quantity,
        pnl                = EXCLUDED.pnl,
        pnl_pct            = EXCLUDED.pnl_pct,
        equity_after_trade = EXCLUDED.equity_after_trade,
        reason             = EXCLUDED.reason;`

	listTradesBetweenSQL = `SELECT
        ts,
        symbol,
        side,
        quantity::text,
        pnl::text,
        pnl_pct::text,
        equity_after_trade::text,
        reason
    FROM trades
    WHERE ts >= $1
      AND ts < $2
    ORDER BY ts;`

	listRecentTradesSQL = `SELECT
        ts,
        symbol,
        side,
        quantity::text,
        pnl::text,
        pnl_pct::text,
        equity_after_trade::text,
        reason
    FROM trades
    ORDER BY ts DESC
    LIMIT $1;`

	countTradesSQL = `SELECT COUNT(*) FROM trades;`
)

// TradeStore defines operations for trade persistence.
type TradeStore interface {
	UpsertTrades(ctx context.Context, trades []ledger.Trade) (int, error)
	ListTradesBetween(ctx context.Context, from, to time.Time) ([]ledger.Trade, error)
	ListRecentTrades(ctx context.Context, limit int) ([]ledger.Trade, error)
	CountTrades(ctx context.Context) (int64, error)
}

// Store aggregates access to imported trades.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wires a pgx pool into a Store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close releases the underlying pool resources.
func (s *Store) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

func (s *Store) getPool() (*pgxpool.Pool, error) {
	if s == nil || s.pool == nil {
		return nil, ErrNotConfigured
	}
	return s.pool, nil
}

// UpsertTrades persists a batch of trades, returning the number written.
func (s *Store) UpsertTrades(ctx context.Context, trades []ledger.Trade) (int, error) {
	pool, err := s.getPool()
	if err != nil {
		return 0, err
	}

	batch := &pgx.Batch{}
	for _, t := range trades {
		batch.Queue(upsertTradeSQL,
			t.Timestamp,
			t.Symbol,
			t.Side,
			t.Quantity.String(),
			t.PNL.String(),
			t.PNLPct.String(),
			t.Equity.String(),
			t.Reason,
		)
	}

	results := pool.SendBatch(ctx, batch)
	defer results.Close()

	written := 0
	for range trades {
		if _, err := results.Exec(); err != nil {
			return written, fmt.Errorf("upsert trade: %w", err)
		}
		written++
	}
	return written, nil
}

// ListTradesBetween returns trades in [from, to) ordered by timestamp.
func (s *Store) ListTradesBetween(ctx context.Context, from, to time.Time) ([]ledger.Trade, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, listTradesBetweenSQL, from, to)
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	defer rows.Close()

	return scanTrades(rows)
}

// ListRecentTrades returns the newest trades first.
func (s *Store) ListRecentTrades(ctx context.Context, limit int) ([]ledger.Trade, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, listRecentTradesSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent trades: %w", err)
	}
	defer rows.Close()

	return scanTrades(rows)
}

// CountTrades returns the number of persisted trades.
func (s *Store) CountTrades(ctx context.Context) (int64, error) {
	pool, err := s.getPool()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := pool.QueryRow(ctx, countTradesSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("count trades: %w", err)
	}
	return count, nil
}

func scanTrades(rows pgx.Rows) ([]ledger.Trade, error) {
	var trades []ledger.Trade
	for rows.Next() {
		var t ledger.Trade
		var quantity, pnl, pnlPct, equity string
		if err := rows.Scan(&t.Timestamp, &t.Symbol, &t.Side, &quantity, &pnl, &pnlPct, &equity, &t.Reason); err != nil {
			return nil, fmt.Errorf("scan trade: %w", err)
		}

		var err error
		if t.Quantity, err = decimal.NewFromString(quantity); err != nil {
			return nil, fmt.Errorf("parse quantity: %w", err)
		}
		if t.PNL, err = decimal.NewFromString(pnl); err != nil {
			return nil, fmt.Errorf("parse pnl: %w", err)
		}
		if t.PNLPct, err = decimal.NewFromString(pnlPct); err != nil {
			return nil, fmt.Errorf("parse pnl_pct: %w", err)
		}
		if t.Equity, err = decimal.NewFromString(equity); err != nil {
			return nil, fmt.Errorf("parse equity: %w", err)
		}

		t.Timestamp = t.Timestamp.UTC()
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

var _ TradeStore = (*Store)(nil)
