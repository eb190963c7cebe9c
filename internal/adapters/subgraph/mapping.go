package subgraph

import (
	"fmt"
	"strconv"

	"github.com/alejandrodnm/lpbacktest/internal/domain"
	"github.com/shopspring/decimal"
)

// parseDecimal es el único punto donde los strings numéricos del subgraph se
// convierten a números. Un string vacío vale 0.
func parseDecimal(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse %s %q: %w", field, s, err)
	}
	return d, nil
}

func parseFloat(field, s string) (float64, error) {
	d, err := parseDecimal(field, s)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

func parseInt(field, s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", field, s, err)
	}
	return n, nil
}

// mapPool convierte un rawPool a domain.Pool.
func mapPool(r rawPool) (domain.Pool, error) {
	var (
		p   = domain.Pool{ID: r.ID}
		err error
	)
	if p.FeeTier, err = parseInt("feeTier", r.FeeTier); err != nil {
		return domain.Pool{}, err
	}
	if p.Token0, err = mapToken(r.Token0); err != nil {
		return domain.Pool{}, fmt.Errorf("token0: %w", err)
	}
	if p.Token1, err = mapToken(r.Token1); err != nil {
		return domain.Pool{}, fmt.Errorf("token1: %w", err)
	}
	if p.TotalValueLockedUSD, err = parseFloat("totalValueLockedUSD", r.TotalValueLockedUSD); err != nil {
		return domain.Pool{}, err
	}
	if p.TotalValueLockedToken0, err = parseFloat("totalValueLockedToken0", r.TotalValueLockedToken0); err != nil {
		return domain.Pool{}, err
	}
	if p.TotalValueLockedToken1, err = parseFloat("totalValueLockedToken1", r.TotalValueLockedToken1); err != nil {
		return domain.Pool{}, err
	}
	return p, nil
}

func mapToken(r rawToken) (domain.Token, error) {
	dec, err := parseInt("decimals", r.Decimals)
	if err != nil {
		return domain.Token{}, err
	}
	return domain.Token{ID: r.ID, Symbol: r.Symbol, Name: r.Name, Decimals: dec}, nil
}

// mapHourData convierte un rawHourData a domain.Candle.
func mapHourData(r rawHourData) (domain.Candle, error) {
	c := domain.Candle{PeriodStartUnix: r.PeriodStartUnix}

	var err error
	for _, f := range []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"low", r.Low, &c.Low},
		{"high", r.High, &c.High},
		{"close", r.Close, &c.Close},
		{"liquidity", r.Liquidity, &c.Liquidity},
	} {
		if *f.dst, err = parseFloat(f.name, f.raw); err != nil {
			return domain.Candle{}, err
		}
	}

	if c.FeeGrowthGlobal0X128, err = parseDecimal("feeGrowthGlobal0X128", r.FeeGrowthGlobal0X128); err != nil {
		return domain.Candle{}, err
	}
	if c.FeeGrowthGlobal1X128, err = parseDecimal("feeGrowthGlobal1X128", r.FeeGrowthGlobal1X128); err != nil {
		return domain.Candle{}, err
	}
	if c.Pool, err = mapPool(r.Pool); err != nil {
		return domain.Candle{}, fmt.Errorf("pool: %w", err)
	}
	return c, nil
}
