package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alejandrodnm/lpbacktest/config"
	"github.com/alejandrodnm/lpbacktest/internal/application/runner"
	"github.com/alejandrodnm/lpbacktest/internal/domain"
)

// applyFlags sobreescribe la config con los flags que tienen valor.
func applyFlags(cfg *config.Config, pool string, investment, min, max float64, days, priceToken int, period, protocol string) {
	b := &cfg.Backtest
	if pool != "" {
		b.Pool = pool
	}
	if investment > 0 {
		b.Investment = investment
	}
	if min > 0 {
		b.MinPrice = min
	}
	if max > 0 {
		b.MaxPrice = max
	}
	if days > 0 {
		b.Days = days
	}
	if priceToken >= 0 {
		b.PriceToken = priceToken
	}
	if period != "" {
		b.Period = period
	}
	if protocol != "" {
		cfg.Subgraph.Protocol = protocol
	}
}

// buildRequest arma la petición del runner. La validación de la posición la
// hace el runner.
func buildRequest(cfg *config.Config, from, to string) (runner.Request, error) {
	b := cfg.Backtest
	if b.Pool == "" {
		return runner.Request{}, fmt.Errorf("pool is required (-pool or backtest.pool)")
	}

	req := runner.Request{
		PoolID: strings.ToLower(b.Pool),
		Position: domain.Position{
			MinPrice:   b.MinPrice,
			MaxPrice:   b.MaxPrice,
			Investment: b.Investment,
			PriceToken: domain.PriceToken(b.PriceToken),
		},
		Days: b.Days,
	}

	var err error
	if req.From, err = parseTime(from); err != nil {
		return runner.Request{}, fmt.Errorf("-from: %w", err)
	}
	if req.To, err = parseTime(to); err != nil {
		return runner.Request{}, fmt.Errorf("-to: %w", err)
	}
	return req, nil
}

// parseTime acepta unix seconds o una fecha YYYY-MM-DD (medianoche UTC).
func parseTime(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return 0, fmt.Errorf("want unix seconds or YYYY-MM-DD, got %q", s)
	}
	return t.Unix(), nil
}
