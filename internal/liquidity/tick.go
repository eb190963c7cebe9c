package liquidity

import (
	"math"

	"github.com/alejandrodnm/lpbacktest/internal/domain"
)

const (
	MinTick = -887272
	MaxTick = 887272

	// UnboundedTick es el tick usado para simular una posición de rango completo.
	UnboundedTick = 887220

	tickBase = 1.0001
)

// PriceToTick convierte un precio legible en el índice de tick del protocolo.
// base indica qué token actúa como base del precio: con base 1 los decimales
// intercambian su papel antes de normalizar.
func PriceToTick(price float64, decimal0, decimal1 int, base domain.PriceToken) int {
	if base == domain.PriceToken1 {
		decimal0, decimal1 = decimal1, decimal0
	}
	normalized := price * math.Pow(10, float64(decimal0-decimal1))
	return int(math.Round(logBase(normalized, tickBase)))
}

// TickToPrice es la inversa sin redondeo de PriceToTick.
func TickToPrice(tick int, decimal0, decimal1 int, base domain.PriceToken) float64 {
	if base == domain.PriceToken1 {
		decimal0, decimal1 = decimal1, decimal0
	}
	return math.Pow(tickBase, float64(tick)) / math.Pow(10, float64(decimal0-decimal1))
}

// UnboundedRange devuelve los precios extremos de un rango completo.
func UnboundedRange() (float64, float64) {
	return math.Pow(tickBase, -UnboundedTick), math.Pow(tickBase, UnboundedTick)
}

func logBase(y, b float64) float64 {
	return math.Log(y) / math.Log(b)
}
