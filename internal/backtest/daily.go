package backtest

import (
	"math"
	"time"

	"github.com/alejandrodnm/lpbacktest/internal/domain"
)

// AggregateDaily agrupa los registros horarios por día calendario UTC.
//
// Hay un único bucket abierto: los registros del mismo día suman flujos y pisan
// niveles; al cambiar de día (o al terminar la entrada) el bucket se cierra y se
// emite por valor. Los días sin datos no se rellenan.
func AggregateDaily(records []domain.PeriodRecord, priceToken domain.PriceToken) []domain.DailyBucket {
	if len(records) == 0 {
		return nil
	}

	var out []domain.DailyBucket
	cur := openBucket(records[0], priceToken)

	for _, r := range records[1:] {
		day := dayOf(r.PeriodStartUnix)
		if day.Equal(cur.Date) {
			cur.add(r, priceToken)
			continue
		}
		out = append(out, cur.close())
		cur = openBucket(r, priceToken)
	}

	return append(out, cur.close())
}

// dailyAccumulator es el bucket en construcción.
type dailyAccumulator struct {
	domain.DailyBucket
	activeSum float64
}

func openBucket(r domain.PeriodRecord, pt domain.PriceToken) *dailyAccumulator {
	acc := &dailyAccumulator{
		DailyBucket: domain.DailyBucket{
			Date:                 dayOf(r.PeriodStartUnix),
			OpeningHoldingsValue: r.HoldingsValue,
		},
	}
	acc.add(r, pt)
	return acc
}

func (a *dailyAccumulator) add(r domain.PeriodRecord, pt domain.PriceToken) {
	a.FeeToken0 += r.FeeToken0
	a.FeeToken1 += r.FeeToken1
	a.FeeValue += r.FeeValue
	a.UnboundedFeeValue += r.UnboundedFeeValue
	a.FeeGrowthValue += r.FeeGrowthValue
	a.FeeUSD += r.FeeUSD

	if !math.IsNaN(r.ActiveLiquidityPct) {
		a.activeSum += r.ActiveLiquidityPct
	}

	a.HoldingsValue = r.HoldingsValue
	a.TokenRatioReturn = r.TokenRatioReturn
	a.Close = r.Close
	a.BaseClose = basePrice(r.Close, pt)
	a.Count++
}

// close calcula la media de liquidez activa y el % de fees y devuelve una copia.
func (a *dailyAccumulator) close() domain.DailyBucket {
	b := a.DailyBucket
	if b.Count > 0 {
		b.ActiveLiquidityPct = a.activeSum / float64(b.Count)
	}
	if b.HoldingsValue != 0 {
		b.PercFee = b.FeeValue / b.HoldingsValue * 100
	}
	return b
}

func dayOf(unix int64) time.Time {
	t := time.Unix(unix, 0).UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
