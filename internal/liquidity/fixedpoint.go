// Package liquidity contiene la matemática de liquidez concentrada: ticks, conversión
// tokens↔liquidez, fee growth y ratio de liquidez activa. Todo es puro y sin estado.
package liquidity

import (
	"math"

	"github.com/alejandrodnm/lpbacktest/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	q96  = math.Ldexp(1, 96)
	q128 = math.Ldexp(1, 128)
)

// FeeGrowthDelta convierte dos lecturas Q128 de un acumulador global en el fee ganado
// en el periodo por 1 unidad de liquidez sin rango:
//
//	(current / 2^128 / 10^d) - (previous / 2^128 / 10^d)
//
// La resta se hace exacta antes de escalar, así que current == previous da 0 exacto.
// Un resultado negativo (acumulador que baja) se devuelve tal cual: es señal de datos
// corruptos y no se recorta.
func FeeGrowthDelta(current, previous decimal.Decimal, tokenDecimals int) float64 {
	diff := current.Sub(previous)
	if diff.IsZero() {
		return 0
	}
	return diff.Shift(-int32(tokenDecimals)).InexactFloat64() / q128
}

// UnboundedFees devuelve el fee por unidad de liquidez sin rango de token0 y token1
// entre la vela previa y la actual.
func UnboundedFees(current, previous domain.Candle, pool domain.Pool) (float64, float64) {
	d0, d1 := pool.Decimals()
	fg0 := FeeGrowthDelta(current.FeeGrowthGlobal0X128, previous.FeeGrowthGlobal0X128, d0)
	fg1 := FeeGrowthDelta(current.FeeGrowthGlobal1X128, previous.FeeGrowthGlobal1X128, d1)
	return fg0, fg1
}
