package backtest

import (
	"math/big"

	"github.com/alejandrodnm/lpbacktest/internal/domain"
	"github.com/shopspring/decimal"
)

// 2024-01-01T00:00:00Z
const day0 = int64(1704067200)

func testPool() domain.Pool {
	return domain.Pool{
		ID:      "0xpool",
		FeeTier: 3000,
		Token0:  domain.Token{Symbol: "WETH", Decimals: 18},
		Token1:  domain.Token{Symbol: "DAI", Decimals: 18},

		TotalValueLockedUSD:    3_000_000,
		TotalValueLockedToken0: 1_000_000,
		TotalValueLockedToken1: 1_000,
	}
}

// q128 devuelve k × 2^128 como decimal exacto.
func q128(k int64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).Lsh(big.NewInt(k), 128), 0)
}

// hourlyCandles genera n velas horarias oldest-first con el close dado y rangos
// de ±1%. Los acumuladores crecen feeStep×2^128 por hora.
func hourlyCandles(start int64, closes []float64, feeStep int64) []domain.Candle {
	pool := testPool()
	out := make([]domain.Candle, len(closes))
	for i, c := range closes {
		out[i] = domain.Candle{
			PeriodStartUnix:      start + int64(i)*3600,
			Low:                  c * 0.99,
			High:                 c * 1.01,
			Close:                c,
			Liquidity:            1e20,
			FeeGrowthGlobal0X128: q128(int64(i) * feeStep),
			FeeGrowthGlobal1X128: q128(int64(i) * feeStep * 2),
			Pool:                 pool,
		}
	}
	return out
}

func flat(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
