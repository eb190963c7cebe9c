package storage

import (
	"context"
	"log/slog"

	"github.com/alejandrodnm/lpbacktest/internal/domain"
	"github.com/alejandrodnm/lpbacktest/internal/ports"
)

// CachingCandleProvider decora un ports.CandleProvider con una ports.CandleCache.
// Con cache nil delega siempre en inner.
type CachingCandleProvider struct {
	inner ports.CandleProvider
	cache ports.CandleCache
}

// NewCachingCandleProvider crea el decorador.
func NewCachingCandleProvider(inner ports.CandleProvider, cache ports.CandleCache) *CachingCandleProvider {
	return &CachingCandleProvider{inner: inner, cache: cache}
}

// FetchHourlyCandles sirve la ventana desde la cache si está cubierta; si no,
// descarga y guarda. Los fallos de la cache no fallan la descarga.
func (c *CachingCandleProvider) FetchHourlyCandles(ctx context.Context, poolID string, from, to int64) ([]domain.Candle, error) {
	if c.cache == nil {
		return c.inner.FetchHourlyCandles(ctx, poolID, from, to)
	}

	candles, ok, err := c.cache.LoadWindow(ctx, poolID, from, to)
	switch {
	case err != nil:
		slog.Warn("candle cache read failed", "pool", poolID, "err", err)
	case ok:
		slog.Debug("candle cache hit", "pool", poolID, "candles", len(candles))
		return candles, nil
	}

	candles, err = c.inner.FetchHourlyCandles(ctx, poolID, from, to)
	if err != nil {
		return nil, err
	}

	if err := c.cache.SaveWindow(ctx, poolID, from, to, candles); err != nil {
		slog.Warn("candle cache write failed", "pool", poolID, "err", err)
	}
	return candles, nil
}
