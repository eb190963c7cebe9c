package liquidity

import "math"

// ActiveLiquidityPct estima qué porcentaje (0–100) del rango [low, high] de la vela
// solapa con el rango [min, max] de la posición. Todos los valores en ticks.
//
// Vela plana (high == low): el divisor pasa a 1 y el ratio se fuerza a 1 si el punto
// cae dentro del rango. Sin solape, o si el cálculo da NaN, devuelve 0.
func ActiveLiquidityPct(min, max, low, high float64) float64 {
	width := high - low
	divider := width
	if width == 0 {
		divider = 1
	}

	ratio := 1.0
	if width != 0 {
		ratio = (math.Min(max, high) - math.Max(min, low)) / divider
	}

	if !(high > min && low < max) {
		return 0
	}

	pct := ratio * 100
	if math.IsNaN(pct) || pct <= 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
