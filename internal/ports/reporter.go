package ports

import (
	"context"

	"github.com/alejandrodnm/lpbacktest/internal/domain"
)

// Reporter presenta los resultados de uno o varios backtests.
type Reporter interface {
	// Report imprime los resultados en el orden recibido.
	Report(ctx context.Context, results []domain.Result) error
}
