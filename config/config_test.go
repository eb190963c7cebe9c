package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alejandrodnm/lpbacktest/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv evita que el entorno de la máquina contamine los defaults.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"LOG_LEVEL", "LOG_FORMAT", "SUBGRAPH_URL", "SUBGRAPH_API_KEY", "LPBACKTEST_DB"} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_ShippedConfig(t *testing.T) {
	clearEnv(t)
	cfg, err := config.Load("config.yaml")
	require.NoError(t, err)

	assert.Equal(t, "mainnet", cfg.Subgraph.Protocol)
	assert.Equal(t, 15*time.Second, cfg.Timeout())
	assert.Equal(t, 1, cfg.Backtest.PriceToken)
	assert.Equal(t, "daily", cfg.Backtest.Period)
	require.Len(t, cfg.Backtest.Sweep, 3)
	assert.Equal(t, config.StrategyConfig{Name: "tight", Min: 1800, Max: 2200}, cfg.Backtest.Sweep[2])
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := config.Load(writeConfig(t, "backtest:\n  pool: \"0xabc\"\n"))
	require.NoError(t, err)

	assert.Equal(t, "0xabc", cfg.Backtest.Pool)
	assert.Equal(t, 30, cfg.Backtest.Days)
	assert.Equal(t, "hourly", cfg.Backtest.Period)
	assert.Equal(t, 10.0, cfg.Subgraph.RequestsPerSecond)
	assert.Equal(t, "lpbacktest.db", cfg.Storage.DSN)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_EmptyPath(t *testing.T) {
	clearEnv(t)
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "mainnet", cfg.Subgraph.Protocol)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := config.Load(writeConfig(t, "backtest: [unclosed"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SUBGRAPH_API_KEY", "k123")
	t.Setenv("SUBGRAPH_URL", "http://localhost:8000/subgraphs/name/test")
	t.Setenv("LPBACKTEST_DB", ":memory:")

	cfg, err := config.Load(writeConfig(t, "log:\n  level: warn\nstorage:\n  dsn: file.db\n"))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "k123", cfg.Subgraph.APIKey)
	assert.Equal(t, ":memory:", cfg.Storage.DSN)
	assert.Equal(t, "http://localhost:8000/subgraphs/name/test", cfg.Endpoint("arbitrum"))
}

func TestEndpoint_PerProtocol(t *testing.T) {
	clearEnv(t)
	cfg, err := config.Load(writeConfig(t, "subgraph:\n  endpoints:\n    arbitrum: http://arb.local\n"))
	require.NoError(t, err)

	assert.Equal(t, "http://arb.local", cfg.Endpoint("Arbitrum"))
	assert.Equal(t, "", cfg.Endpoint("mainnet"))
}
