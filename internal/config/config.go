// Package config loads the service configuration from YAML with environment overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/argo-quant/internal/analytics"
	engine "github.com/rxtech-lab/argo-quant/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/rxtech-lab/argo-quant/pkg/marketdata"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvAddr          = "ARGO_QUANT_ADDR"
	EnvLogLevel      = "ARGO_QUANT_LOG_LEVEL"
	EnvProvider      = "ARGO_QUANT_PROVIDER"
	EnvOKXBaseURL    = "OKX_BASE_URL"
	EnvPolygonAPIKey = "POLYGON_API_KEY"
)

// Config is the top-level configuration.
type Config struct {
	Server     ServerConfig                  `yaml:"server" json:"server" jsonschema:"title=Server"`
	Logging    LoggingConfig                 `yaml:"logging" json:"logging" jsonschema:"title=Logging"`
	MarketData MarketDataConfig              `yaml:"market_data" json:"market_data" jsonschema:"title=Market Data"`
	Backtest   BacktestConfig                `yaml:"backtest" json:"backtest" jsonschema:"title=Backtest"`
	Engine     engine.BacktestEngineV1Config `yaml:"engine" json:"engine" jsonschema:"title=Engine"`
}

// ServerConfig holds the HTTP listener configuration.
type ServerConfig struct {
	Addr           string   `yaml:"addr" json:"addr" jsonschema:"title=Address,description=Listen address,default=:8000" validate:"required"`
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins" jsonschema:"title=Allowed Origins,description=Origins allowed by CORS"`
	// RequestTimeoutSeconds bounds a single request including the market data fetch.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds" json:"request_timeout_seconds" jsonschema:"title=Request Timeout,minimum=1,default=30" validate:"gt=0"`
}

// LoggingConfig configures the application logger.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level" jsonschema:"title=Level,enum=debug,enum=info,enum=warn,enum=error,default=info" validate:"required,oneof=debug info warn error"`
}

// MarketDataConfig selects and configures the candle provider.
type MarketDataConfig struct {
	Provider        string `yaml:"provider" json:"provider" jsonschema:"title=Provider,enum=okx,enum=binance,enum=polygon,default=okx" validate:"required,oneof=okx binance polygon"`
	BaseURL         string `yaml:"base_url" json:"base_url" jsonschema:"title=Base URL,description=Overrides the provider REST endpoint" validate:"omitempty,url"`
	PolygonAPIKey   string `yaml:"polygon_api_key" json:"polygon_api_key" jsonschema:"title=Polygon API Key" validate:"required_if=Provider polygon"`
	TimeoutSeconds  int    `yaml:"timeout_seconds" json:"timeout_seconds" jsonschema:"title=Timeout,minimum=1,default=10" validate:"gt=0"`
	DefaultInterval string `yaml:"default_interval" json:"default_interval" jsonschema:"title=Default Interval,default=1H" validate:"required"`
	DefaultLimit    int    `yaml:"default_limit" json:"default_limit" jsonschema:"title=Default Limit,minimum=1,default=300" validate:"gt=0"`
}

// BacktestConfig holds the analytics constants.
type BacktestConfig struct {
	InitialBalance float64           `yaml:"initial_balance" json:"initial_balance" jsonschema:"title=Initial Balance,exclusiveMinimum=0,default=10000" validate:"gt=0"`
	Analytics      analytics.Options `yaml:"analytics" json:"analytics" jsonschema:"title=Analytics"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:                  ":8000",
			AllowedOrigins:        []string{"http://localhost:5173"},
			RequestTimeoutSeconds: 30,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		MarketData: MarketDataConfig{
			Provider:        "okx",
			BaseURL:         "",
			PolygonAPIKey:   "",
			TimeoutSeconds:  10,
			DefaultInterval: "1H",
			DefaultLimit:    300,
		},
		Backtest: BacktestConfig{
			InitialBalance: analytics.DefaultInitialBalance,
			Analytics:      analytics.DefaultOptions(),
		},
		Engine: engine.EmptyConfig(),
	}
}

// Load reads the YAML file at path over the defaults, applies environment
// overrides and validates the result. An empty path loads the defaults only.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to read config file", err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config file", err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnvOverrides overrides fields whose environment variable is set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Server.Addr = v
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}

	if v := os.Getenv(EnvProvider); v != "" {
		cfg.MarketData.Provider = strings.ToLower(v)
	}

	if v := os.Getenv(EnvOKXBaseURL); v != "" && cfg.MarketData.Provider == "okx" {
		cfg.MarketData.BaseURL = v
	}

	if v := os.Getenv(EnvPolygonAPIKey); v != "" {
		cfg.MarketData.PolygonAPIKey = v
	}
}

// Validate checks every field constraint.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	return nil
}

// SourceConfig returns the provider configuration of the market data section.
func (c *Config) SourceConfig() marketdata.SourceConfig {
	return marketdata.SourceConfig{
		Provider: marketdata.ProviderType(c.MarketData.Provider),
		BaseURL:  c.MarketData.BaseURL,
		APIKey:   c.MarketData.PolygonAPIKey,
		Timeout:  time.Duration(c.MarketData.TimeoutSeconds) * time.Second,
	}
}

// RequestTimeout is the per-request bound of the HTTP server.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutSeconds) * time.Second
}

// GenerateSchema generates a JSON schema for the Config
func (c *Config) GenerateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		ExpandedStruct:            true,
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	schema := reflector.Reflect(c)

	// Set schema metadata
	schema.Title = "argo-quant-config"
	schema.Description = "Configuration schema for the argo-quant server and CLI"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema
}

// GenerateSchemaJSON generates a JSON schema string for the Config
func (c *Config) GenerateSchemaJSON() (string, error) {
	schemaBytes, err := json.MarshalIndent(c.GenerateSchema(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal config schema: %w", err)
	}

	return string(schemaBytes), nil
}
