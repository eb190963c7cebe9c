package runner

// sweep.go — worker pool para evaluar muchos rangos sobre las mismas velas.
//
// Las velas se descargan una sola vez; cada estrategia es CPU puro, así que el
// paralelismo escala con los cores.

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/alejandrodnm/lpbacktest/internal/domain"
)

// Sweep evalúa cada estrategia con la inversión y price token de req.Position.
// Devuelve los resultados en el orden de strategies. Una estrategia inválida
// se descarta con un warning (y no aparece en la salida); si todas lo son
// devuelve error.
func (r *Runner) Sweep(ctx context.Context, req Request, strategies []Strategy) ([]domain.Result, error) {
	positions := make([]domain.Position, 0, len(strategies))
	for _, s := range strategies {
		pos := req.Position
		pos.MinPrice, pos.MaxPrice = s.MinPrice, s.MaxPrice
		if err := pos.Validate(); err != nil {
			slog.Warn("skipping strategy", "name", s.Name, "err", err)
			continue
		}
		positions = append(positions, pos)
	}
	if len(positions) == 0 {
		return nil, fmt.Errorf("runner.Sweep: %w: no valid strategies", domain.ErrInvalidPosition)
	}

	in, err := r.load(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("runner.Sweep: %w", err)
	}

	results, err := evaluateConcurrent(ctx, in, positions, r.cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("runner.Sweep: %w", err)
	}
	return results, nil
}

// evaluateConcurrent evalúa las posiciones en paralelo usando un worker pool.
// Si workers <= 0 usa runtime.NumCPU() × 2.
func evaluateConcurrent(ctx context.Context, in input, positions []domain.Position, workers int) ([]domain.Result, error) {
	if workers <= 0 {
		workers = runtime.NumCPU() * 2
	}

	type work struct {
		idx int
		pos domain.Position
	}

	workCh := make(chan work, len(positions))
	results := make([]domain.Result, len(positions))

	// Cada worker escribe en su índice: el orden de salida es el de entrada.
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for w := range workCh {
				if ctx.Err() != nil {
					continue
				}
				results[w.idx] = evaluate(in, w.pos)
			}
		}()
	}

	for i, pos := range positions {
		workCh <- work{idx: i, pos: pos}
	}
	close(workCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slog.Debug("sweep complete",
		"pool", in.poolID,
		"strategies", len(positions),
		"candles", len(in.candles),
		"workers", workers,
	)
	return results, nil
}
