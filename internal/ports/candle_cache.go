package ports

import (
	"context"

	"github.com/alejandrodnm/lpbacktest/internal/domain"
)

// CandleCache guarda ventanas de velas ya descargadas.
type CandleCache interface {
	// LoadWindow devuelve las velas de la ventana si una descarga previa la cubre.
	// ok=false si no hay cobertura completa.
	LoadWindow(ctx context.Context, poolID string, from, to int64) (candles []domain.Candle, ok bool, err error)

	// SaveWindow guarda las velas y marca la ventana como cubierta.
	SaveWindow(ctx context.Context, poolID string, from, to int64, candles []domain.Candle) error

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
