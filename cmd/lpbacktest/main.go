package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/lpbacktest/config"
	"github.com/alejandrodnm/lpbacktest/internal/adapters/notify"
	"github.com/alejandrodnm/lpbacktest/internal/adapters/storage"
	"github.com/alejandrodnm/lpbacktest/internal/adapters/subgraph"
	"github.com/alejandrodnm/lpbacktest/internal/application/runner"
	"github.com/alejandrodnm/lpbacktest/internal/domain"
	"github.com/alejandrodnm/lpbacktest/internal/ports"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file (empty = defaults + env)")
	pool := flag.String("pool", "", "pool address (overrides config)")
	investment := flag.Float64("investment", 0, "investment in token0 units (overrides config)")
	minPrice := flag.Float64("min", 0, "range lower bound, in the price token")
	maxPrice := flag.Float64("max", 0, "range upper bound, in the price token")
	days := flag.Int("days", 0, "days back from now (overrides config)")
	from := flag.String("from", "", "window start: unix seconds or YYYY-MM-DD (overrides -days)")
	to := flag.String("to", "", "window end: unix seconds or YYYY-MM-DD (default: now)")
	priceToken := flag.Int("price-token", -1, "0: prices in token0, 1: prices in token1")
	period := flag.String("period", "", "output granularity: hourly|daily")
	protocol := flag.String("protocol", "", "mainnet|optimism|arbitrum|polygon|perpetual (or 0-4)")
	sweep := flag.String("sweep", "", `compare ranges: "min:max,name=min:max" or "config"`)
	noCache := flag.Bool("no-cache", false, "always fetch candles from the subgraph")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	asJSON := flag.Bool("json", false, "print results as JSON instead of tables")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	// Con -json stdout es solo para resultados.
	var logOut io.Writer = os.Stdout
	if *asJSON {
		logOut = os.Stderr
	}
	setupLogger(cfg.Log, logOut)

	applyFlags(cfg, *pool, *investment, *minPrice, *maxPrice, *days, *priceToken, *period, *protocol)

	req, err := buildRequest(cfg, *from, *to)
	if err != nil {
		slog.Error("invalid arguments", "err", err)
		os.Exit(2)
	}

	proto, err := subgraph.ParseProtocol(cfg.Subgraph.Protocol)
	if err != nil {
		slog.Error("invalid protocol", "err", err)
		os.Exit(2)
	}
	per, err := domain.ParsePeriod(cfg.Backtest.Period)
	if err != nil {
		slog.Error("invalid period", "err", err)
		os.Exit(2)
	}

	client := subgraph.NewClient(subgraph.Options{
		Endpoint:   cfg.Endpoint(proto.String()),
		Protocol:   proto,
		APIKey:     cfg.Subgraph.APIKey,
		Timeout:    cfg.Timeout(),
		RatePerSec: cfg.Subgraph.RequestsPerSecond,
	})

	var cache ports.CandleCache
	if !*noCache && !cfg.Storage.DisableCache {
		c, err := storage.NewSQLiteCache(cfg.Storage.DSN)
		if err != nil {
			slog.Warn("candle cache disabled", "err", err, "dsn", cfg.Storage.DSN)
		} else {
			defer c.Close()
			cache = c
		}
	}
	candles := storage.NewCachingCandleProvider(client, cache)

	var reporter ports.Reporter = notify.NewConsole(per)
	if *asJSON {
		reporter = notify.NewJSON()
	}

	slog.Info("lpbacktest starting",
		"config", *configPath,
		"protocol", proto,
		"endpoint", client.Endpoint(),
		"pool", req.PoolID,
		"period", per,
		"cache", cache != nil,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	r := runner.New(runner.Config{Workers: cfg.Backtest.Workers}, client, candles)

	var results []domain.Result
	if *sweep != "" {
		strategies, err := sweepStrategies(cfg, *sweep)
		if err != nil {
			slog.Error("invalid sweep", "err", err)
			os.Exit(2)
		}
		results, err = r.Sweep(ctx, req, strategies)
		if err != nil {
			slog.Error("sweep failed", "err", err)
			os.Exit(1)
		}
	} else {
		res, err := r.Run(ctx, req)
		if err != nil {
			slog.Error("backtest failed", "err", err)
			os.Exit(1)
		}
		results = []domain.Result{res}
	}

	if err := reporter.Report(ctx, results); err != nil {
		slog.Error("report failed", "err", err)
		os.Exit(1)
	}
}

// sweepStrategies resuelve -sweep: "config" usa backtest.sweep del YAML.
func sweepStrategies(cfg *config.Config, arg string) ([]runner.Strategy, error) {
	if arg != "config" {
		return runner.ParseStrategies(arg)
	}
	if len(cfg.Backtest.Sweep) == 0 {
		return nil, fmt.Errorf("backtest.sweep is empty in config")
	}
	out := make([]runner.Strategy, len(cfg.Backtest.Sweep))
	for i, s := range cfg.Backtest.Sweep {
		out[i] = runner.Strategy{Name: s.Name, MinPrice: s.Min, MaxPrice: s.Max}
	}
	return out, nil
}

func setupLogger(cfg config.LogConfig, w io.Writer) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}
