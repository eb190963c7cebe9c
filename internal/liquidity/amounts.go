package liquidity

import "math"

// sqrtScaled lleva un precio al espacio sqrt·2^96 normalizado por la diferencia
// de decimales (d1 - d0).
func sqrtScaled(price float64, decimal0, decimal1 int) float64 {
	return math.Sqrt(price*math.Pow(10, float64(decimal1-decimal0))) * q96
}

// scaledBounds devuelve sqrtScaled de los bounds ordenados y del precio.
func scaledBounds(price, low, high float64, decimal0, decimal1 int) (sLow, sHigh, sPrice float64) {
	a := sqrtScaled(low, decimal0, decimal1)
	b := sqrtScaled(high, decimal0, decimal1)
	return math.Min(a, b), math.Max(a, b), sqrtScaled(price, decimal0, decimal1)
}

// TokensFromLiquidity calcula cuántos tokens tiene una posición de `liquidity`
// en [min, max] al precio dado.
//
//   - precio bajo el rango: todo el valor en amount1
//   - precio dentro: mezcla de los dos
//   - precio sobre el rango: todo el valor en amount0
//
// Un rango de ancho cero no se protege: el resultado es NaN/Inf.
func TokensFromLiquidity(price, min, max, liquidity float64, decimal0, decimal1 int) (amount0, amount1 float64) {
	sLow, sHigh, sPrice := scaledBounds(price, min, max, decimal0, decimal1)
	pow0 := math.Pow(10, float64(decimal0))
	pow1 := math.Pow(10, float64(decimal1))

	switch {
	case sPrice <= sLow:
		amount1 = liquidity * q96 * (sHigh - sLow) / sHigh / sLow / pow0
		return 0, amount1
	case sPrice < sHigh:
		amount0 = liquidity * (sPrice - sLow) / q96 / pow1
		amount1 = liquidity * q96 * (sHigh - sPrice) / sHigh / sPrice / pow0
		return amount0, amount1
	default:
		amount0 = liquidity * (sHigh - sLow) / q96 / pow1
		return amount0, 0
	}
}

// LiquidityForStrategy es la inversa de TokensFromLiquidity en cada régimen.
// Dentro del rango calcula la liquidez que permite cada token por separado y
// devuelve la menor: el token que se acaba primero limita la posición.
func LiquidityForStrategy(price, low, high, tokens0, tokens1 float64, decimal0, decimal1 int) float64 {
	sLow, sHigh, sPrice := scaledBounds(price, low, high, decimal0, decimal1)
	pow0 := math.Pow(10, float64(decimal0))
	pow1 := math.Pow(10, float64(decimal1))

	switch {
	case sPrice <= sLow:
		return tokens1 / (q96 * (sHigh - sLow) / sHigh / sLow / pow0)
	case sPrice < sHigh:
		liq0 := tokens0 / ((sPrice - sLow) / q96 / pow1)
		liq1 := tokens1 / (q96 * (sHigh - sPrice) / sHigh / sPrice / pow0)
		return math.Min(liq0, liq1)
	default:
		return tokens0 / ((sHigh - sLow) / q96 / pow1)
	}
}

// TokensForStrategy reparte un presupuesto `investment` (en unidades de token0) entre
// los dos tokens al precio de entrada.
//
// Usa raíces sin el factor 2^96 (sqrt(p·10^decimal)); es otra convención de unidades
// que TokensFromLiquidity/LiquidityForStrategy y no deben mezclarse.
// decimal es token1.Decimals - token0.Decimals.
func TokensForStrategy(minRange, maxRange, investment, price float64, decimal int) (amount0, amount1 float64) {
	scale := math.Pow(10, float64(decimal))
	sqrtPrice := math.Sqrt(price * scale)
	sqrtLow := math.Sqrt(minRange * scale)
	sqrtHigh := math.Sqrt(maxRange * scale)

	switch {
	case sqrtPrice > sqrtLow && sqrtPrice < sqrtHigh:
		delta := investment / ((sqrtPrice - sqrtLow) + (1/sqrtPrice-1/sqrtHigh)*(price*scale))
		amount1 = delta * (sqrtPrice - sqrtLow)
		amount0 = delta * (1/sqrtPrice - 1/sqrtHigh) * scale
	case sqrtPrice < sqrtLow:
		delta := investment / ((1/sqrtLow - 1/sqrtHigh) * price)
		amount0 = delta * (1/sqrtLow - 1/sqrtHigh)
		amount1 = 0
	default:
		delta := investment / (sqrtHigh - sqrtLow)
		amount1 = delta * (sqrtHigh - sqrtLow)
		amount0 = 0
	}
	return amount0, amount1
}
