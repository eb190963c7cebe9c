// Package backtest recorre las velas históricas de un pool y estima fees y valor
// de una posición de liquidez concentrada, por hora y agregado por día.
package backtest

import (
	"github.com/alejandrodnm/lpbacktest/internal/domain"
	"github.com/alejandrodnm/lpbacktest/internal/liquidity"
)

// Enter dimensiona la posición en la vela de entrada.
//
// TokensForStrategy reparte la inversión; su amount1 es la pata sqrt(p)-sqrt(low) y
// su amount0 la pata 1/sqrt(p)-1/sqrt(high), justo al revés que el par que espera
// LiquidityForStrategy, por eso se pasan cruzados.
func Enter(pool domain.Pool, first domain.Candle, pos domain.Position) domain.Entry {
	d0, d1 := pool.Decimals()
	price := basePrice(first.Close, pos.PriceToken)

	amount0, amount1 := liquidity.TokensForStrategy(pos.MinPrice, pos.MaxPrice, pos.Investment, price, d1-d0)
	liq := liquidity.LiquidityForStrategy(price, pos.MinPrice, pos.MaxPrice, amount1, amount0, d0, d1)

	lo, hi := liquidity.UnboundedRange()
	unbounded := liquidity.LiquidityForStrategy(price, lo, hi, amount1, amount0, d0, d1)

	return domain.Entry{
		EntryPrice:         price,
		Amount0:            amount0,
		Amount1:            amount1,
		Liquidity:          liq,
		UnboundedLiquidity: unbounded,
	}
}

// basePrice expresa el close en el price token elegido.
func basePrice(close float64, pt domain.PriceToken) float64 {
	if pt == domain.PriceToken1 {
		return 1 / close
	}
	return close
}

// inverse devuelve 1/v tratando 0 como 1.
func inverse(v float64) float64 {
	if v == 0 {
		return 1
	}
	return 1 / v
}
