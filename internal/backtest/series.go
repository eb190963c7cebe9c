package backtest

import (
	"github.com/alejandrodnm/lpbacktest/internal/domain"
	"github.com/alejandrodnm/lpbacktest/internal/liquidity"
)

// Run dimensiona la posición con la primera vela y recorre la serie.
// candles debe venir ordenado oldest-first. Sin velas devuelve nil.
func Run(pool domain.Pool, candles []domain.Candle, pos domain.Position) []domain.PeriodRecord {
	if len(candles) == 0 {
		return nil
	}
	return Series(pool, candles, pos, Enter(pool, candles[0], pos))
}

// Series calcula un PeriodRecord por vela, en el mismo orden.
//
// La vela 0 es la de entrada y no gana fees. El fee de la vela i sale de la
// diferencia de los acumuladores globales contra la vela i-1, prorrateado por el
// % de liquidez activa. El valor en USD usa el ratio TVL/precio de la última vela
// para toda la serie.
func Series(pool domain.Pool, candles []domain.Candle, pos domain.Position, entry domain.Entry) []domain.PeriodRecord {
	if len(candles) == 0 {
		return nil
	}

	d0, d1 := pool.Decimals()
	pt := pos.PriceToken

	minTick := float64(liquidity.PriceToTick(pos.MinPrice, d0, d1, pt))
	maxTick := float64(liquidity.PriceToTick(pos.MaxPrice, d0, d1, pt))

	usdRate := usdConversion(candles[len(candles)-1], pt)

	// Reparto de tokens a precio de entrada, revalorizado en cada vela para aislar
	// el efecto de fees e impermanent loss del movimiento de precio.
	first0, first1 := liquidity.TokensFromLiquidity(basePrice(candles[0].Close, pt),
		pos.MinPrice, pos.MaxPrice, entry.Liquidity, d0, d1)

	records := make([]domain.PeriodRecord, 0, len(candles))
	for i, c := range candles {
		var fg0, fg1 float64
		if i > 0 {
			fg0, fg1 = liquidity.UnboundedFees(c, candles[i-1], pool)
		}

		low, high := c.Low, c.High
		if pt == domain.PriceToken1 {
			low, high = inverse(c.Low), inverse(c.High)
		}
		lowTick := float64(liquidity.PriceToTick(low, d0, d1, pt))
		highTick := float64(liquidity.PriceToTick(high, d0, d1, pt))
		active := liquidity.ActiveLiquidityPct(minTick, maxTick, lowTick, highTick)

		amount0, amount1 := liquidity.TokensFromLiquidity(basePrice(c.Close, pt),
			pos.MinPrice, pos.MaxPrice, entry.Liquidity, d0, d1)

		var fee0, fee1, unb0, unb1 float64
		if i > 0 {
			fee0 = fg0 * entry.Liquidity * active / 100
			fee1 = fg1 * entry.Liquidity * active / 100
			unb0 = fg0 * entry.UnboundedLiquidity
			unb1 = fg1 * entry.UnboundedLiquidity
		}

		holdings := holdingsValue(amount0, amount1, c.Close, pt)
		fees := feeValue(fee0, fee1, c.Close, pt)

		records = append(records, domain.PeriodRecord{
			Candle:             c,
			FeeGrowthDelta0:    fg0,
			FeeGrowthDelta1:    fg1,
			FeeGrowthValue:     feeValue(fg0, fg1, c.Close, pt),
			ActiveLiquidityPct: active,
			FeeToken0:          fee0,
			FeeToken1:          fee1,
			Amount0:            amount0,
			Amount1:            amount1,
			FeeValue:           fees,
			UnboundedFeeValue:  feeValue(unb0, unb1, c.Close, pt),
			HoldingsValue:      holdings,
			TokenRatioReturn:   pos.Investment + (holdings - holdingsValue(first0, first1, c.Close, pt)),
			FeeUSD:             fees * usdRate,
			BaseClose:          basePrice(c.Close, pt),
		})
	}
	return records
}

// feeValue expresa un fee en token0 y otro en token1 como un único valor en el
// price token, usando close (o su inversa con price token 1) como tipo de cambio.
func feeValue(v0, v1, close float64, pt domain.PriceToken) float64 {
	if pt == domain.PriceToken1 {
		return v0/close + v1
	}
	return v0 + v1*close
}

// holdingsValue hace lo mismo para las cantidades de TokensFromLiquidity, que ya
// vienen calculadas sobre el precio en el price token: la pata que se convierte es
// siempre amount1.
func holdingsValue(a0, a1, close float64, pt domain.PriceToken) float64 {
	if pt == domain.PriceToken1 {
		return a0 + a1/close
	}
	return a0 + a1*close
}

// usdConversion devuelve el factor price-token → USD a partir del TVL de la última vela.
func usdConversion(last domain.Candle, pt domain.PriceToken) float64 {
	p := last.Pool
	var tvl float64
	if pt == domain.PriceToken1 {
		tvl = p.TotalValueLockedToken1 + p.TotalValueLockedToken0/last.Close
	} else {
		tvl = p.TotalValueLockedToken1*last.Close + p.TotalValueLockedToken0
	}
	if tvl == 0 {
		return 0
	}
	return p.TotalValueLockedUSD / tvl
}
