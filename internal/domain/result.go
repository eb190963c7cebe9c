package domain

// Summary resume un run completo.
type Summary struct {
	Periods                int
	Days                   int
	TotalFeeToken0         float64
	TotalFeeToken1         float64
	TotalFeeValue          float64
	TotalFeeUSD            float64
	TotalUnboundedFeeValue float64
	AvgActiveLiquidityPct  float64
	FinalHoldingsValue     float64
	FinalTokenRatioReturn  float64
	// FeeAPR es el retorno anualizado de fees sobre la inversión, en %.
	FeeAPR float64
}

// Result es la salida de un backtest para una posición.
type Result struct {
	RunID    string
	PoolID   string
	Pool     Pool
	Position Position
	Entry    Entry
	From     int64
	To       int64

	Hourly []PeriodRecord
	Daily  []DailyBucket

	Summary Summary
}
