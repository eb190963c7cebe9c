package ports

import (
	"context"

	"github.com/alejandrodnm/lpbacktest/internal/domain"
)

// CandleProvider obtiene velas horarias históricas de un pool.
type CandleProvider interface {
	// FetchHourlyCandles devuelve las velas con from < periodStartUnix < to,
	// ordenadas newest-first. Pagina internamente si la ventana supera una página.
	FetchHourlyCandles(ctx context.Context, poolID string, from, to int64) ([]domain.Candle, error)
}
