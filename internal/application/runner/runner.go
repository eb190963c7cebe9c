package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/lpbacktest/internal/backtest"
	"github.com/alejandrodnm/lpbacktest/internal/domain"
	"github.com/alejandrodnm/lpbacktest/internal/ports"
	"github.com/google/uuid"
)

const secondsPerDay = 24 * 60 * 60

// ErrEmptyWindow se devuelve cuando la petición no define una ventana utilizable.
var ErrEmptyWindow = errors.New("empty backtest window")

// Config contiene la configuración del runner.
type Config struct {
	Workers int              // goroutines para sweeps (0 = NumCPU*2)
	Now     func() time.Time // reloj; nil = time.Now
}

// Request describe un backtest: pool, posición y ventana.
// Si From es 0 la ventana son los Days días anteriores a To; si To es 0 se usa
// la hora en curso.
type Request struct {
	PoolID   string
	Position domain.Position
	Days     int
	From     int64
	To       int64
}

// Strategy es un rango alternativo para un sweep.
type Strategy struct {
	Name     string
	MinPrice float64
	MaxPrice float64
}

// Runner orquesta pool → velas → motor → resultado.
type Runner struct {
	cfg     Config
	pools   ports.PoolProvider
	candles ports.CandleProvider
}

// New crea un Runner con las dependencias inyectadas.
func New(cfg Config, pools ports.PoolProvider, candles ports.CandleProvider) *Runner {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Runner{cfg: cfg, pools: pools, candles: candles}
}

// Run ejecuta un backtest completo para la posición de la petición.
func (r *Runner) Run(ctx context.Context, req Request) (domain.Result, error) {
	if err := req.Position.Validate(); err != nil {
		return domain.Result{}, fmt.Errorf("runner.Run: %w", err)
	}

	in, err := r.load(ctx, req)
	if err != nil {
		return domain.Result{}, fmt.Errorf("runner.Run: %w", err)
	}

	res := evaluate(in, req.Position)
	slog.Info("backtest complete",
		"run_id", res.RunID,
		"pool", res.PoolID,
		"candles", len(in.candles),
		"fee_value", res.Summary.TotalFeeValue,
		"fee_apr", res.Summary.FeeAPR,
	)
	return res, nil
}

// input son los datos compartidos por todas las posiciones de un run o sweep.
type input struct {
	pool     domain.Pool
	poolID   string
	from, to int64
	candles  []domain.Candle // oldest-first
}

// load valida la ventana, trae el pool y sus velas y las ordena oldest-first.
func (r *Runner) load(ctx context.Context, req Request) (input, error) {
	from, to, err := r.window(req)
	if err != nil {
		return input{}, err
	}

	pool, err := r.pools.FetchPool(ctx, req.PoolID)
	if err != nil {
		return input{}, fmt.Errorf("fetch pool: %w", err)
	}
	if err := pool.Validate(); err != nil {
		return input{}, err
	}

	slog.Debug("fetching candles",
		"pool", req.PoolID,
		"pair", pool.Pair(),
		"from", time.Unix(from, 0).UTC(),
		"to", time.Unix(to, 0).UTC(),
	)

	candles, err := r.candles.FetchHourlyCandles(ctx, req.PoolID, from, to)
	if err != nil {
		return input{}, fmt.Errorf("fetch candles: %w", err)
	}
	if len(candles) == 0 {
		return input{}, fmt.Errorf("pool %s [%d, %d]: %w", req.PoolID, from, to, domain.ErrNoCandles)
	}

	return input{
		pool:    pool,
		poolID:  req.PoolID,
		from:    from,
		to:      to,
		candles: domain.SortOldestFirst(candles),
	}, nil
}

// window resuelve [from, to) a partir de la petición.
func (r *Runner) window(req Request) (int64, int64, error) {
	to := req.To
	if to == 0 {
		// Hora en curso truncada: ventanas repetidas dentro de la misma hora coinciden.
		to = r.cfg.Now().UTC().Truncate(time.Hour).Unix()
	}
	from := req.From
	if from == 0 {
		if req.Days <= 0 {
			return 0, 0, fmt.Errorf("%w: need days or from", ErrEmptyWindow)
		}
		from = to - int64(req.Days)*secondsPerDay
	}
	if from >= to {
		return 0, 0, fmt.Errorf("%w: from %d >= to %d", ErrEmptyWindow, from, to)
	}
	return from, to, nil
}

// evaluate corre el motor puro para una posición. No falla: los casos
// degenerados producen valores centinela.
func evaluate(in input, pos domain.Position) domain.Result {
	entry := backtest.Enter(in.pool, in.candles[0], pos)
	hourly := backtest.Series(in.pool, in.candles, pos, entry)
	daily := backtest.AggregateDaily(hourly, pos.PriceToken)

	return domain.Result{
		RunID:    uuid.New().String(),
		PoolID:   in.poolID,
		Pool:     in.pool,
		Position: pos,
		Entry:    entry,
		From:     in.from,
		To:       in.to,
		Hourly:   hourly,
		Daily:    daily,
		Summary:  backtest.Summarize(hourly, daily, pos),
	}
}
