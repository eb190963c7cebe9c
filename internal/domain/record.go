package domain

import "time"

// PeriodRecord es el resultado del backtest para una vela.
// Se construye una vez y no se modifica después.
type PeriodRecord struct {
	Candle

	// Fee ganado en el periodo por 1 unidad de liquidez sin rango, por token.
	FeeGrowthDelta0 float64
	FeeGrowthDelta1 float64
	// FeeGrowthValue combina los dos deltas en el price token.
	FeeGrowthValue float64

	// ActiveLiquidityPct es el % del movimiento de la vela dentro del rango (0–100).
	ActiveLiquidityPct float64

	FeeToken0 float64
	FeeToken1 float64

	// Tokens de la posición al cierre de la vela.
	Amount0 float64
	Amount1 float64

	FeeValue          float64 // fees del periodo en el price token
	UnboundedFeeValue float64 // fees de la misma inversión en rango completo
	HoldingsValue     float64 // valor de los tokens al cierre en el price token
	TokenRatioReturn  float64
	FeeUSD            float64
	BaseClose         float64
}

// DailyBucket agrega los PeriodRecord de un día calendario UTC.
// Los flujos (fees) se suman; los niveles (valor, retorno, close) toman el último valor del día.
type DailyBucket struct {
	Date time.Time // medianoche UTC

	FeeToken0         float64
	FeeToken1         float64
	FeeValue          float64
	UnboundedFeeValue float64
	FeeGrowthValue    float64
	FeeUSD            float64

	ActiveLiquidityPct float64 // media del día

	OpeningHoldingsValue float64
	HoldingsValue        float64
	TokenRatioReturn     float64
	Close                float64
	BaseClose            float64

	// PercFee es FeeValue / HoldingsValue × 100.
	PercFee float64
	Count   int
}

// Label devuelve la fecha en formato M/D/YYYY.
func (b DailyBucket) Label() string {
	return b.Date.Format("1/2/2006")
}
