package backtest

import (
	"github.com/alejandrodnm/lpbacktest/internal/domain"
)

const hoursPerYear = 365 * 24

// Summarize resume un run. El APR de fees se anualiza sobre la duración real de
// la serie (último inicio de periodo - primero, más un periodo).
func Summarize(records []domain.PeriodRecord, daily []domain.DailyBucket, pos domain.Position) domain.Summary {
	s := domain.Summary{
		Periods: len(records),
		Days:    len(daily),
	}
	if len(records) == 0 {
		return s
	}

	var activeSum float64
	for _, r := range records {
		s.TotalFeeToken0 += r.FeeToken0
		s.TotalFeeToken1 += r.FeeToken1
		s.TotalFeeValue += r.FeeValue
		s.TotalFeeUSD += r.FeeUSD
		s.TotalUnboundedFeeValue += r.UnboundedFeeValue
		activeSum += r.ActiveLiquidityPct
	}
	s.AvgActiveLiquidityPct = activeSum / float64(len(records))

	last := records[len(records)-1]
	s.FinalHoldingsValue = last.HoldingsValue
	s.FinalTokenRatioReturn = last.TokenRatioReturn

	hours := float64(last.PeriodStartUnix-records[0].PeriodStartUnix)/3600 + 1
	if pos.Investment > 0 && hours > 0 {
		s.FeeAPR = s.TotalFeeValue / pos.Investment * (hoursPerYear / hours) * 100
	}
	return s
}
