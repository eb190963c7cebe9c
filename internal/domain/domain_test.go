package domain_test

import (
	"errors"
	"testing"

	"github.com/alejandrodnm/lpbacktest/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosition_Validate(t *testing.T) {
	tests := []struct {
		name string
		pos  domain.Position
		want error
	}{
		{"ok", domain.Position{MinPrice: 1500, MaxPrice: 2500, Investment: 1000}, nil},
		{"ok price token 1", domain.Position{MinPrice: 0.0004, MaxPrice: 0.0006, Investment: 1, PriceToken: domain.PriceToken1}, nil},
		{"price token inválido", domain.Position{MinPrice: 1, MaxPrice: 2, Investment: 1, PriceToken: 3}, domain.ErrInvalidPriceToken},
		{"inversión cero", domain.Position{MinPrice: 1, MaxPrice: 2}, domain.ErrInvalidPosition},
		{"bound negativo", domain.Position{MinPrice: -1, MaxPrice: 2, Investment: 1}, domain.ErrInvalidPosition},
		{"ancho cero", domain.Position{MinPrice: 2, MaxPrice: 2, Investment: 1}, domain.ErrInvalidRange},
		{"invertido", domain.Position{MinPrice: 3, MaxPrice: 2, Investment: 1}, domain.ErrInvalidPosition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pos.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestPool_Helpers(t *testing.T) {
	p := domain.Pool{
		FeeTier: 500,
		Token0:  domain.Token{Symbol: "USDC", Decimals: 6},
		Token1:  domain.Token{Symbol: "WETH", Decimals: 18},
	}
	d0, d1 := p.Decimals()
	assert.Equal(t, 6, d0)
	assert.Equal(t, 18, d1)
	assert.InDelta(t, 0.0005, p.FeeRate(), 1e-12)
	assert.Equal(t, "USDC/WETH", p.Pair())
	assert.NoError(t, p.Validate())

	assert.Equal(t, "token0/token1", domain.Pool{}.Pair())

	p.Token0.Decimals = -6
	assert.True(t, errors.Is(p.Validate(), domain.ErrInvalidDecimals))
}

func TestSortOldestFirst(t *testing.T) {
	in := []domain.Candle{{PeriodStartUnix: 30}, {PeriodStartUnix: 10}, {PeriodStartUnix: 20}}

	out := domain.SortOldestFirst(in)
	require.Len(t, out, 3)
	assert.Equal(t, int64(10), out[0].PeriodStartUnix)
	assert.Equal(t, int64(20), out[1].PeriodStartUnix)
	assert.Equal(t, int64(30), out[2].PeriodStartUnix)

	// no muta la entrada
	assert.Equal(t, int64(30), in[0].PeriodStartUnix)
}

func TestCandle_Time(t *testing.T) {
	c := domain.Candle{PeriodStartUnix: 1704067200}
	assert.Equal(t, "2024-01-01T00:00:00Z", c.Time().Format("2006-01-02T15:04:05Z07:00"))
}

func TestParsePeriod(t *testing.T) {
	for in, want := range map[string]domain.Period{
		"":       domain.PeriodHourly,
		"hourly": domain.PeriodHourly,
		"H":      domain.PeriodHourly,
		"daily":  domain.PeriodDaily,
		" d ":    domain.PeriodDaily,
	} {
		got, err := domain.ParsePeriod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := domain.ParsePeriod("weekly")
	assert.Error(t, err)
}
