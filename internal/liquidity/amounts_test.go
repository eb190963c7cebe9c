package liquidity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func relErr(want, got float64) float64 {
	return math.Abs(got-want) / math.Abs(want)
}

func TestTokensFromLiquidity_Regimes(t *testing.T) {
	const L = 1e15

	// Bajo el rango: solo amount1.
	a0, a1 := TokensFromLiquidity(0.0003, 0.0004, 0.0006, L, 6, 18)
	assert.Equal(t, 0.0, a0)
	assert.Greater(t, a1, 0.0)

	// Dentro: mezcla.
	a0, a1 = TokensFromLiquidity(0.0005, 0.0004, 0.0006, L, 6, 18)
	assert.InDelta(t, 2.3606797749978976, a0, 1e-9)
	assert.InDelta(t, 3896.530503609489, a1, 1e-6)

	// Sobre el rango: solo amount0.
	a0, a1 = TokensFromLiquidity(0.0007, 0.0004, 0.0006, L, 6, 18)
	assert.Greater(t, a0, 0.0)
	assert.Equal(t, 0.0, a1)
}

func TestTokensFromLiquidity_BoundsOrderIrrelevant(t *testing.T) {
	a0, a1 := TokensFromLiquidity(0.0005, 0.0004, 0.0006, 1e15, 6, 18)
	b0, b1 := TokensFromLiquidity(0.0005, 0.0006, 0.0004, 1e15, 6, 18)
	assert.Equal(t, a0, b0)
	assert.Equal(t, a1, b1)
}

func TestTokensFromLiquidity_PriceAtLowerBoundIsBelowRegime(t *testing.T) {
	a0, _ := TokensFromLiquidity(0.0004, 0.0004, 0.0006, 1e15, 6, 18)
	assert.Equal(t, 0.0, a0)
}

func TestLiquidityForStrategy_RoundTripInsideRange(t *testing.T) {
	cases := []struct {
		name             string
		price, min, max  float64
		liquidity        float64
		decimal0, decimal1 int
	}{
		{"usdc-weth", 0.0005, 0.0004, 0.0006, 1e15, 6, 18},
		{"weth-usdt", 1850, 1500, 2500, 3.2e12, 18, 6},
		{"same-decimals", 1.02, 0.5, 1.9, 42, 18, 18},
		{"near-lower", 1000.01, 1000, 2000, 7e9, 18, 6},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a0, a1 := TokensFromLiquidity(tc.price, tc.min, tc.max, tc.liquidity, tc.decimal0, tc.decimal1)
			require.Greater(t, a0, 0.0)
			require.Greater(t, a1, 0.0)

			got := LiquidityForStrategy(tc.price, tc.min, tc.max, a0, a1, tc.decimal0, tc.decimal1)
			assert.Less(t, relErr(tc.liquidity, got), 1e-9)
		})
	}
}

func TestLiquidityForStrategy_RoundTripOutsideRange(t *testing.T) {
	const L = 5e14

	_, a1 := TokensFromLiquidity(0.0002, 0.0004, 0.0006, L, 6, 18)
	assert.Less(t, relErr(L, LiquidityForStrategy(0.0002, 0.0004, 0.0006, 0, a1, 6, 18)), 1e-9)

	a0, _ := TokensFromLiquidity(0.0009, 0.0004, 0.0006, L, 6, 18)
	assert.Less(t, relErr(L, LiquidityForStrategy(0.0009, 0.0004, 0.0006, a0, 0, 6, 18)), 1e-9)
}

func TestLiquidityForStrategy_BindingTokenCapsLiquidity(t *testing.T) {
	a0, a1 := TokensFromLiquidity(0.0005, 0.0004, 0.0006, 1e15, 6, 18)

	// Con el doble de amount1 el límite sigue siendo amount0.
	got := LiquidityForStrategy(0.0005, 0.0004, 0.0006, a0, a1*2, 6, 18)
	assert.Less(t, relErr(1e15, got), 1e-9)

	// Con la mitad de amount0 la liquidez cae a la mitad.
	got = LiquidityForStrategy(0.0005, 0.0004, 0.0006, a0/2, a1, 6, 18)
	assert.Less(t, relErr(0.5e15, got), 1e-9)
}

func TestTokensForStrategy_MixedPositionInsideRange(t *testing.T) {
	// decimal0=18, decimal1=6 → decimal = 6 - 18
	a0, a1 := TokensForStrategy(1000, 2000, 10000, 1500, 6-18)
	assert.Greater(t, a0, 0.0)
	assert.Greater(t, a1, 0.0)
	assert.InDelta(t, 2.8133096836977516, a0, 1e-9)
	assert.InDelta(t, 5780.035474453374, a1, 1e-6)
	// La inversión se conserva al precio de entrada.
	assert.InDelta(t, 10000, a1+a0*1500, 1e-6)
}

func TestTokensForStrategy_BelowRangeAllToken0(t *testing.T) {
	a0, a1 := TokensForStrategy(1000, 2000, 10000, 800, -12)
	assert.Greater(t, a0, 0.0)
	assert.Equal(t, 0.0, a1)
	assert.InDelta(t, 10000, a0*800, 1e-6)
}

func TestTokensForStrategy_AboveRangeAllToken1(t *testing.T) {
	a0, a1 := TokensForStrategy(1000, 2000, 10000, 2500, -12)
	assert.Equal(t, 0.0, a0)
	assert.InDelta(t, 10000, a1, 1e-6)
}

func TestTokensForStrategy_ZeroWidthRangeIsNotGuarded(t *testing.T) {
	a0, a1 := TokensForStrategy(1500, 1500, 10000, 1500, -12)
	assert.True(t, math.IsNaN(a1) || math.IsInf(a1, 0) || math.IsNaN(a0), "got %g %g", a0, a1)
}
