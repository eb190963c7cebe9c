package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del backtester.
type Config struct {
	Subgraph SubgraphConfig `yaml:"subgraph"`
	Backtest BacktestConfig `yaml:"backtest"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
}

// SubgraphConfig controla el acceso al subgraph del protocolo.
type SubgraphConfig struct {
	Protocol          string            `yaml:"protocol"`  // mainnet | optimism | arbitrum | polygon | perpetual
	Endpoints         map[string]string `yaml:"endpoints"` // override por protocolo
	URL               string            `yaml:"url"`       // override directo (gana a endpoints)
	APIKey            string            `yaml:"api_key"`
	TimeoutSeconds    int               `yaml:"timeout_seconds"`
	RequestsPerSecond float64           `yaml:"requests_per_second"`
}

// BacktestConfig son los valores por defecto de un run. Los flags los sobreescriben.
type BacktestConfig struct {
	Pool       string           `yaml:"pool"`
	Investment float64          `yaml:"investment"`
	MinPrice   float64          `yaml:"min_price"`
	MaxPrice   float64          `yaml:"max_price"`
	Days       int              `yaml:"days"`
	PriceToken int              `yaml:"price_token"` // 0 | 1
	Period     string           `yaml:"period"`      // hourly | daily
	Sweep      []StrategyConfig `yaml:"sweep"`
	Workers    int              `yaml:"workers"` // 0 = NumCPU*2
}

// StrategyConfig es un rango alternativo para sweeps.
type StrategyConfig struct {
	Name string  `yaml:"name"`
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
}

// StorageConfig controla la cache local de velas.
type StorageConfig struct {
	DSN          string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
	DisableCache bool   `yaml:"disable_cache"`
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Con path vacío solo se aplican .env, variables de entorno y defaults.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// Timeout devuelve el timeout HTTP del subgraph como time.Duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Subgraph.TimeoutSeconds) * time.Second
}

// Endpoint devuelve la URL configurada para el protocolo, o "" para usar la pública.
func (c *Config) Endpoint(protocol string) string {
	if c.Subgraph.URL != "" {
		return c.Subgraph.URL
	}
	return c.Subgraph.Endpoints[strings.ToLower(protocol)]
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("SUBGRAPH_URL"); v != "" {
		cfg.Subgraph.URL = v
	}
	if v := os.Getenv("SUBGRAPH_API_KEY"); v != "" {
		cfg.Subgraph.APIKey = v
	}
	if v := os.Getenv("LPBACKTEST_DB"); v != "" {
		cfg.Storage.DSN = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Subgraph.Protocol == "" {
		cfg.Subgraph.Protocol = "mainnet"
	}
	if cfg.Subgraph.TimeoutSeconds <= 0 {
		cfg.Subgraph.TimeoutSeconds = 15
	}
	if cfg.Subgraph.RequestsPerSecond <= 0 {
		cfg.Subgraph.RequestsPerSecond = 10
	}
	if cfg.Backtest.Days <= 0 {
		cfg.Backtest.Days = 30
	}
	if cfg.Backtest.Period == "" {
		cfg.Backtest.Period = "hourly"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "lpbacktest.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
