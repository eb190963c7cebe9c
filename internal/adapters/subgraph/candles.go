package subgraph

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alejandrodnm/lpbacktest/internal/domain"
)

const (
	// candlesPerPage es el máximo de `first` que acepta el subgraph.
	candlesPerPage  = 1000
	candlesMaxPages = 20
)

const poolHourDatasQuery = `query PoolHourDatas($pool: ID!, $fromdate: Int!, $todate: Int!, $first: Int!) {
  poolHourDatas(
    where: { pool: $pool, periodStartUnix_gt: $fromdate, periodStartUnix_lt: $todate, close_gt: 0 }
    orderBy: periodStartUnix
    orderDirection: desc
    first: $first
  ) {
    periodStartUnix
    liquidity
    high
    low
    close
    feeGrowthGlobal0X128
    feeGrowthGlobal1X128
    pool {
      id
      totalValueLockedUSD
      totalValueLockedToken0
      totalValueLockedToken1
      token0 { decimals }
      token1 { decimals }
    }
  }
}`

// FetchHourlyCandles devuelve las velas horarias con from < periodStartUnix < to,
// newest-first. Cada página trae hasta 1000; la siguiente baja el bound `to` hasta
// la vela más vieja recibida.
func (c *Client) FetchHourlyCandles(ctx context.Context, poolID string, from, to int64) ([]domain.Candle, error) {
	var all []domain.Candle
	upper := to

	for page := 0; page < candlesMaxPages; page++ {
		vars := map[string]any{
			"pool":     strings.ToLower(poolID),
			"fromdate": from,
			"todate":   upper,
			"first":    candlesPerPage,
		}

		var resp poolHourDatasResponse
		if err := c.query(ctx, poolHourDatasQuery, vars, &resp); err != nil {
			return nil, fmt.Errorf("subgraph.FetchHourlyCandles: %w", err)
		}

		for _, raw := range resp.PoolHourDatas {
			candle, err := mapHourData(raw)
			if err != nil {
				return nil, fmt.Errorf("subgraph.FetchHourlyCandles: period %d: %w", raw.PeriodStartUnix, err)
			}
			all = append(all, candle)
		}

		slog.Debug("fetched candles page",
			"pool", poolID,
			"page", page,
			"count", len(resp.PoolHourDatas),
			"total", len(all),
		)

		if len(resp.PoolHourDatas) < candlesPerPage {
			break
		}
		oldest := resp.PoolHourDatas[len(resp.PoolHourDatas)-1].PeriodStartUnix
		if oldest <= from || oldest >= upper {
			break
		}
		upper = oldest
	}

	return all, nil
}
