package ports

import (
	"context"

	"github.com/alejandrodnm/lpbacktest/internal/domain"
)

// PoolProvider obtiene la metadata de un pool.
type PoolProvider interface {
	// FetchPool devuelve el snapshot actual del pool.
	// Devuelve domain.ErrPoolNotFound si el pool no existe en el protocolo.
	FetchPool(ctx context.Context, poolID string) (domain.Pool, error)
}
