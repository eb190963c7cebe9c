package subgraph

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alejandrodnm/lpbacktest/internal/domain"
)

const poolQuery = `query Pools($id: ID!) {
  pools(where: { id: $id }) {
    id
    feeTier
    totalValueLockedUSD
    totalValueLockedToken0
    totalValueLockedToken1
    token0 { id symbol name decimals }
    token1 { id symbol name decimals }
  }
}`

// FetchPool obtiene la metadata actual del pool.
func (c *Client) FetchPool(ctx context.Context, poolID string) (domain.Pool, error) {
	var resp poolsResponse
	vars := map[string]any{"id": strings.ToLower(poolID)}
	if err := c.query(ctx, poolQuery, vars, &resp); err != nil {
		return domain.Pool{}, fmt.Errorf("subgraph.FetchPool: %w", err)
	}

	if len(resp.Pools) == 0 {
		return domain.Pool{}, fmt.Errorf("subgraph.FetchPool %s: %w", poolID, domain.ErrPoolNotFound)
	}

	pool, err := mapPool(resp.Pools[0])
	if err != nil {
		return domain.Pool{}, fmt.Errorf("subgraph.FetchPool %s: %w", poolID, err)
	}

	slog.Debug("fetched pool",
		"pool", pool.ID,
		"pair", pool.Pair(),
		"fee_tier", pool.FeeTier,
	)
	return pool, nil
}
