package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Candle es un periodo histórico (normalmente una hora) del pool.
//
// Los acumuladores FeeGrowthGlobal*X128 son fixed point Q128 escalados por los
// decimales del token; se guardan exactos para que la diferencia entre periodos
// no pierda precisión. Son monótonos no decrecientes en el orden cronológico real.
type Candle struct {
	PeriodStartUnix int64
	Low             float64
	High            float64
	Close           float64
	Liquidity       float64

	FeeGrowthGlobal0X128 decimal.Decimal
	FeeGrowthGlobal1X128 decimal.Decimal

	// Pool es el snapshot del pool en ese periodo (TVL incluido).
	Pool Pool
}

// Time devuelve el inicio del periodo en UTC.
func (c Candle) Time() time.Time {
	return time.Unix(c.PeriodStartUnix, 0).UTC()
}

// SortOldestFirst devuelve una copia de las velas ordenada de la más vieja a la más nueva.
// El proveedor las entrega newest-first; el motor las necesita oldest-first.
func SortOldestFirst(candles []Candle) []Candle {
	out := make([]Candle, len(candles))
	copy(out, candles)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PeriodStartUnix < out[j].PeriodStartUnix
	})
	return out
}
