package storage

// sqlite.go — cache local de velas horarias descargadas del subgraph.
//
// Estrategia:
//   - `candles`: UNA fila por (pool, hora). Upsert: una re-descarga pisa la fila.
//   - `windows`: ventanas [from, to) ya descargadas completas. Una ventana solo
//     cubre una consulta si contiene su rango y estaba cerrada al descargarse
//     (la última vela ya no podía cambiar).
//   - Índice en memoria de ventanas por pool: LoadWindow no toca disco si no
//     hay cobertura.
//   - Prune automático al arrancar: ventanas y velas descargadas hace > 30d.
//
// Los acumuladores fee growth se guardan como TEXT: son enteros de 256 bits
// y no caben en INTEGER ni sobreviven a REAL.

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/alejandrodnm/lpbacktest/internal/domain"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS candles (
    pool_id        TEXT    NOT NULL,
    period_start   INTEGER NOT NULL,
    low            REAL    NOT NULL DEFAULT 0,
    high           REAL    NOT NULL DEFAULT 0,
    close          REAL    NOT NULL DEFAULT 0,
    liquidity      REAL    NOT NULL DEFAULT 0,
    fee_growth0    TEXT    NOT NULL DEFAULT '0',
    fee_growth1    TEXT    NOT NULL DEFAULT '0',
    tvl_usd        REAL    NOT NULL DEFAULT 0,
    tvl_token0     REAL    NOT NULL DEFAULT 0,
    tvl_token1     REAL    NOT NULL DEFAULT 0,
    decimals0      INTEGER NOT NULL DEFAULT 0,
    decimals1      INTEGER NOT NULL DEFAULT 0,
    fetched_at     INTEGER NOT NULL,
    PRIMARY KEY (pool_id, period_start)
);

CREATE TABLE IF NOT EXISTS windows (
    pool_id    TEXT    NOT NULL,
    from_unix  INTEGER NOT NULL,
    to_unix    INTEGER NOT NULL,
    fetched_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_windows_pool ON windows(pool_id);
CREATE INDEX IF NOT EXISTS idx_candles_at   ON candles(fetched_at);
`

const (
	retention = 30 * 24 * time.Hour
	hour      = int64(3600)
)

// window es una descarga completa ya persistida.
type window struct {
	from, to  int64
	fetchedAt int64
}

// covers indica si la ventana contiene [from, to) y su última vela ya estaba cerrada.
func (w window) covers(from, to int64) bool {
	return w.from <= from && w.to >= to && w.fetchedAt >= to+hour
}

// SQLiteCache implementa ports.CandleCache usando SQLite (pure Go, sin CGo).
type SQLiteCache struct {
	db      *sql.DB
	windows map[string][]window // poolID → ventanas guardadas
	mu      sync.Mutex
}

// NewSQLiteCache abre (o crea) la base de datos en la ruta dada.
// Aplica el schema, limpia datos antiguos y precarga el índice de ventanas.
func NewSQLiteCache(path string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteCache: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteCache: apply schema: %w", err)
	}

	s := &SQLiteCache{
		db:      db,
		windows: make(map[string][]window),
	}
	s.pruneOld(context.Background())
	s.warmIndex(context.Background())
	return s, nil
}

// LoadWindow devuelve las velas con from < period_start < to, newest-first,
// si alguna ventana guardada cubre el rango.
func (s *SQLiteCache) LoadWindow(ctx context.Context, poolID string, from, to int64) ([]domain.Candle, bool, error) {
	poolID = strings.ToLower(poolID)
	if !s.covered(poolID, from, to) {
		return nil, false, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT period_start, low, high, close, liquidity, fee_growth0, fee_growth1,
		       tvl_usd, tvl_token0, tvl_token1, decimals0, decimals1
		FROM candles
		WHERE pool_id = ? AND period_start > ? AND period_start < ?
		ORDER BY period_start DESC
	`, poolID, from, to)
	if err != nil {
		return nil, false, fmt.Errorf("storage.LoadWindow: query: %w", err)
	}
	defer rows.Close()

	var candles []domain.Candle
	for rows.Next() {
		c := domain.Candle{Pool: domain.Pool{ID: poolID}}
		var fg0, fg1 string

		if err := rows.Scan(
			&c.PeriodStartUnix,
			&c.Low,
			&c.High,
			&c.Close,
			&c.Liquidity,
			&fg0,
			&fg1,
			&c.Pool.TotalValueLockedUSD,
			&c.Pool.TotalValueLockedToken0,
			&c.Pool.TotalValueLockedToken1,
			&c.Pool.Token0.Decimals,
			&c.Pool.Token1.Decimals,
		); err != nil {
			return nil, false, fmt.Errorf("storage.LoadWindow: scan row: %w", err)
		}

		if c.FeeGrowthGlobal0X128, err = decimal.NewFromString(fg0); err != nil {
			return nil, false, fmt.Errorf("storage.LoadWindow: fee_growth0 at %d: %w", c.PeriodStartUnix, err)
		}
		if c.FeeGrowthGlobal1X128, err = decimal.NewFromString(fg1); err != nil {
			return nil, false, fmt.Errorf("storage.LoadWindow: fee_growth1 at %d: %w", c.PeriodStartUnix, err)
		}
		candles = append(candles, c)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("storage.LoadWindow: rows: %w", err)
	}
	return candles, true, nil
}

// SaveWindow hace upsert de las velas y registra la ventana como descargada.
func (s *SQLiteCache) SaveWindow(ctx context.Context, poolID string, from, to int64, candles []domain.Candle) error {
	poolID = strings.ToLower(poolID)
	now := time.Now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SaveWindow: begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO candles
			(pool_id, period_start, low, high, close, liquidity, fee_growth0, fee_growth1,
			 tvl_usd, tvl_token0, tvl_token1, decimals0, decimals1, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(pool_id, period_start) DO UPDATE SET
			low         = excluded.low,
			high        = excluded.high,
			close       = excluded.close,
			liquidity   = excluded.liquidity,
			fee_growth0 = excluded.fee_growth0,
			fee_growth1 = excluded.fee_growth1,
			tvl_usd     = excluded.tvl_usd,
			tvl_token0  = excluded.tvl_token0,
			tvl_token1  = excluded.tvl_token1,
			decimals0   = excluded.decimals0,
			decimals1   = excluded.decimals1,
			fetched_at  = excluded.fetched_at
	`)
	if err != nil {
		return fmt.Errorf("storage.SaveWindow: prepare: %w", err)
	}
	defer stmt.Close()

	for _, c := range candles {
		if _, err := stmt.ExecContext(ctx,
			poolID,
			c.PeriodStartUnix,
			c.Low,
			c.High,
			c.Close,
			c.Liquidity,
			c.FeeGrowthGlobal0X128.String(),
			c.FeeGrowthGlobal1X128.String(),
			c.Pool.TotalValueLockedUSD,
			c.Pool.TotalValueLockedToken0,
			c.Pool.TotalValueLockedToken1,
			c.Pool.Token0.Decimals,
			c.Pool.Token1.Decimals,
			now,
		); err != nil {
			return fmt.Errorf("storage.SaveWindow: upsert %d: %w", c.PeriodStartUnix, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO windows (pool_id, from_unix, to_unix, fetched_at) VALUES (?, ?, ?, ?)`,
		poolID, from, to, now,
	); err != nil {
		return fmt.Errorf("storage.SaveWindow: insert window: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.SaveWindow: commit: %w", err)
	}

	s.mu.Lock()
	s.windows[poolID] = append(s.windows[poolID], window{from: from, to: to, fetchedAt: now})
	s.mu.Unlock()
	return nil
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteCache) Close() error {
	return s.db.Close()
}

// --- helpers internos ---

func (s *SQLiteCache) covered(poolID string, from, to int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.windows[poolID] {
		if w.covers(from, to) {
			return true
		}
	}
	return false
}

// pruneOld elimina descargas antiguas para mantener la DB ligera.
func (s *SQLiteCache) pruneOld(ctx context.Context) {
	cutoff := time.Now().Add(-retention).Unix()
	if _, err := s.db.ExecContext(ctx, `DELETE FROM windows WHERE fetched_at < ?`, cutoff); err != nil {
		slog.Warn("prune windows failed", "err", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM candles WHERE fetched_at < ?`, cutoff); err != nil {
		slog.Warn("prune candles failed", "err", err)
	}
}

// warmIndex precarga el índice de ventanas desde la DB al arrancar.
func (s *SQLiteCache) warmIndex(ctx context.Context) {
	rows, err := s.db.QueryContext(ctx, `SELECT pool_id, from_unix, to_unix, fetched_at FROM windows`)
	if err != nil {
		return
	}
	defer rows.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	for rows.Next() {
		var (
			pool string
			w    window
		)
		if rows.Scan(&pool, &w.from, &w.to, &w.fetchedAt) == nil {
			s.windows[pool] = append(s.windows[pool], w)
		}
	}
}
