package backtest

import (
	"testing"
	"time"

	"github.com/alejandrodnm/lpbacktest/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hourlyRecords(start int64, n int) []domain.PeriodRecord {
	out := make([]domain.PeriodRecord, n)
	for i := range out {
		out[i] = domain.PeriodRecord{
			Candle: domain.Candle{
				PeriodStartUnix: start + int64(i)*3600,
				Close:           1500 + float64(i),
			},
			FeeToken0:          float64(i) * 0.5,
			FeeToken1:          float64(i) * 0.001,
			FeeValue:           float64(i),
			UnboundedFeeValue:  float64(i) * 0.1,
			FeeUSD:             float64(i) * 2,
			ActiveLiquidityPct: float64(i % 2 * 100),
			HoldingsValue:      10000 + float64(i),
			TokenRatioReturn:   9000 + float64(i),
		}
	}
	return out
}

func TestAggregateDaily_TwoFullDays(t *testing.T) {
	records := hourlyRecords(day0, 48)
	buckets := AggregateDaily(records, domain.PriceToken0)
	require.Len(t, buckets, 2)

	for d, b := range buckets {
		var fee0 float64
		for _, r := range records[d*24 : (d+1)*24] {
			fee0 += r.FeeToken0
		}
		assert.InDelta(t, fee0, b.FeeToken0, 1e-9)
		assert.Equal(t, 24, b.Count)
		assert.InDelta(t, 50.0, b.ActiveLiquidityPct, 1e-12)
	}

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), buckets[0].Date)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), buckets[1].Date)
	assert.Equal(t, "1/2/2024", buckets[1].Label())
}

func TestAggregateDaily_LevelsTakeLastValueOfDay(t *testing.T) {
	records := hourlyRecords(day0, 48)
	b := AggregateDaily(records, domain.PriceToken0)[0]

	last := records[23]
	assert.Equal(t, last.HoldingsValue, b.HoldingsValue)
	assert.Equal(t, last.TokenRatioReturn, b.TokenRatioReturn)
	assert.Equal(t, last.Close, b.Close)
	assert.Equal(t, records[0].HoldingsValue, b.OpeningHoldingsValue)

	// sum(0..23) = 276 → 276 / 10023 × 100
	assert.InDelta(t, 276.0/10023*100, b.PercFee, 1e-9)
}

func TestAggregateDaily_PartialLastDayIsFinalized(t *testing.T) {
	// 30 horas: el segundo día sólo tiene 6 registros (24..29).
	buckets := AggregateDaily(hourlyRecords(day0, 30), domain.PriceToken0)
	require.Len(t, buckets, 2)

	b := buckets[1]
	assert.Equal(t, 6, b.Count)
	assert.InDelta(t, 50.0, b.ActiveLiquidityPct, 1e-12)
	assert.InDelta(t, float64(24+25+26+27+28+29)/10029*100, b.PercFee, 1e-9)
}

func TestAggregateDaily_SingleRecordStartingNewDay(t *testing.T) {
	buckets := AggregateDaily(hourlyRecords(day0, 25), domain.PriceToken0)
	require.Len(t, buckets, 2)
	assert.Equal(t, 1, buckets[1].Count)
	assert.Equal(t, 0.0, buckets[1].ActiveLiquidityPct) // hora 24 → 24%2 = 0
	assert.InDelta(t, 24.0/10024*100, buckets[1].PercFee, 1e-9)
}

func TestAggregateDaily_GapsAreNotFilled(t *testing.T) {
	records := append(hourlyRecords(day0, 2), hourlyRecords(day0+3*86400, 2)...)
	buckets := AggregateDaily(records, domain.PriceToken0)
	require.Len(t, buckets, 2)
	assert.Equal(t, 4, buckets[1].Date.Day())
}

func TestAggregateDaily_BaseCloseFollowsPriceToken(t *testing.T) {
	b := AggregateDaily(hourlyRecords(day0, 3), domain.PriceToken1)[0]
	assert.InDelta(t, 1.0/1502, b.BaseClose, 1e-15)
}

func TestAggregateDaily_ZeroHoldingsHasNoPercFee(t *testing.T) {
	records := hourlyRecords(day0, 2)
	records[1].HoldingsValue = 0
	b := AggregateDaily(records, domain.PriceToken0)[0]
	assert.Equal(t, 0.0, b.PercFee)
}

func TestSummarize_Totals(t *testing.T) {
	records := hourlyRecords(day0, 48)
	daily := AggregateDaily(records, domain.PriceToken0)
	s := Summarize(records, daily, domain.Position{Investment: 10000})

	assert.Equal(t, 48, s.Periods)
	assert.Equal(t, 2, s.Days)
	assert.InDelta(t, 1128.0, s.TotalFeeValue, 1e-9) // sum(0..47)
	assert.InDelta(t, 50.0, s.AvgActiveLiquidityPct, 1e-12)
	assert.Equal(t, records[47].HoldingsValue, s.FinalHoldingsValue)
	// 48 horas → ×(8760/48)
	assert.InDelta(t, 1128.0/10000*(8760.0/48)*100, s.FeeAPR, 1e-6)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, nil, domain.Position{Investment: 1})
	assert.Equal(t, 0, s.Periods)
	assert.Equal(t, 0.0, s.FeeAPR)
}
