package domain

import "fmt"

// PriceToken indica en qué token se denomina el "precio" de los resultados.
type PriceToken int

const (
	PriceToken0 PriceToken = 0
	PriceToken1 PriceToken = 1
)

// Valid devuelve true si el valor es 0 o 1.
func (t PriceToken) Valid() bool {
	return t == PriceToken0 || t == PriceToken1
}

// Position es la estrategia a backtestear: un rango [MinPrice, MaxPrice] y una
// inversión en unidades de token0. No hay rebalanceo: la liquidez derivada en la
// vela de entrada se mantiene constante durante todo el run.
type Position struct {
	MinPrice   float64
	MaxPrice   float64
	Investment float64
	PriceToken PriceToken
}

// Validate comprueba los bounds y la inversión.
// Un rango de ancho cero devuelve ErrInvalidRange: las funciones de liquidez no lo
// protegen y producirían NaN/Inf.
func (p Position) Validate() error {
	if !p.PriceToken.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPriceToken, p.PriceToken)
	}
	if p.Investment <= 0 {
		return fmt.Errorf("%w: investment must be > 0, got %g", ErrInvalidPosition, p.Investment)
	}
	if p.MinPrice <= 0 || p.MaxPrice <= 0 {
		return fmt.Errorf("%w: bounds must be > 0, got [%g, %g]", ErrInvalidPosition, p.MinPrice, p.MaxPrice)
	}
	if p.MinPrice == p.MaxPrice {
		return fmt.Errorf("%w: zero-width range at %g", ErrInvalidRange, p.MinPrice)
	}
	if p.MinPrice > p.MaxPrice {
		return fmt.Errorf("%w: min %g > max %g", ErrInvalidPosition, p.MinPrice, p.MaxPrice)
	}
	return nil
}

// Entry es el tamaño de la posición calculado una sola vez en la vela de entrada.
type Entry struct {
	EntryPrice         float64
	Amount0            float64
	Amount1            float64
	Liquidity          float64
	UnboundedLiquidity float64
}
