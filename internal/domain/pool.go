package domain

import "fmt"

// Token es uno de los dos tokens del pool.
type Token struct {
	ID       string
	Symbol   string
	Name     string
	Decimals int
}

// Pool es el snapshot de metadata de un pool de liquidez concentrada.
// Los decimales no cambian durante un backtest; los TVL son los del momento
// en que se tomó el snapshot.
type Pool struct {
	ID      string
	FeeTier int // en centésimas de bip (3000 = 0.3%)
	Token0  Token
	Token1  Token

	TotalValueLockedUSD    float64
	TotalValueLockedToken0 float64
	TotalValueLockedToken1 float64
}

// Decimals devuelve los decimales de token0 y token1.
func (p Pool) Decimals() (int, int) {
	return p.Token0.Decimals, p.Token1.Decimals
}

// FeeRate devuelve el fee tier como fracción (3000 → 0.003).
func (p Pool) FeeRate() float64 {
	return float64(p.FeeTier) / 1_000_000
}

// Pair devuelve "TOKEN0/TOKEN1" para mostrar en reportes.
func (p Pool) Pair() string {
	s0, s1 := p.Token0.Symbol, p.Token1.Symbol
	if s0 == "" {
		s0 = "token0"
	}
	if s1 == "" {
		s1 = "token1"
	}
	return s0 + "/" + s1
}

// Validate comprueba que los decimales sean utilizables por el motor.
func (p Pool) Validate() error {
	if p.Token0.Decimals < 0 || p.Token1.Decimals < 0 {
		return fmt.Errorf("%w: token0=%d token1=%d", ErrInvalidDecimals, p.Token0.Decimals, p.Token1.Decimals)
	}
	return nil
}
