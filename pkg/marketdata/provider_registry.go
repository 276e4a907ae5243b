package marketdata

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/rxtech-lab/argo-quant/pkg/strategy"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderOKX     ProviderType = "okx"
	ProviderBinance ProviderType = "binance"
	ProviderPolygon ProviderType = "polygon"
)

// ProviderInfo contains metadata about a market data provider.
type ProviderInfo struct {
	Name         string `json:"name"`
	DisplayName  string `json:"displayName"`
	Description  string `json:"description"`
	RequiresAuth bool   `json:"requiresAuth"`
	// MaxLimit is the largest number of bars one request returns.
	MaxLimit int `json:"maxLimit"`
}

// providerRegistry holds metadata about all supported providers.
var providerRegistry = map[ProviderType]ProviderInfo{
	ProviderOKX: {
		Name:         string(ProviderOKX),
		DisplayName:  "OKX",
		Description:  "Cryptocurrency exchange public candlestick API",
		RequiresAuth: false,
		MaxLimit:     300,
	},
	ProviderBinance: {
		Name:         string(ProviderBinance),
		DisplayName:  "Binance",
		Description:  "Cryptocurrency exchange with extensive market data for crypto trading pairs",
		RequiresAuth: false,
		MaxLimit:     1000,
	},
	ProviderPolygon: {
		Name:         string(ProviderPolygon),
		DisplayName:  "Polygon.io",
		Description:  "US stock market data provider with historical OHLCV aggregates",
		RequiresAuth: true,
		MaxLimit:     50000,
	},
}

// GetSupportedProviders returns the supported provider names in sorted order.
func GetSupportedProviders() []string {
	providers := make([]string, 0, len(providerRegistry))
	for providerType := range providerRegistry {
		providers = append(providers, string(providerType))
	}

	sort.Strings(providers)

	return providers
}

// GetProviderInfo returns metadata for a specific provider.
func GetProviderInfo(providerName string) (ProviderInfo, error) {
	info, exists := providerRegistry[ProviderType(providerName)]
	if !exists {
		return ProviderInfo{}, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported provider: %s", providerName)
	}

	return info, nil
}

// SourceConfig holds the configuration of a provider-backed Source.
type SourceConfig struct {
	Provider ProviderType `json:"provider" jsonschema:"title=Provider,enum=okx,enum=binance,enum=polygon,default=okx" validate:"required,oneof=okx binance polygon"`
	// BaseURL overrides the provider endpoint. Only OKX honours it.
	BaseURL string        `json:"baseUrl,omitempty" jsonschema:"title=Base URL" validate:"omitempty,url"`
	APIKey  string        `json:"apiKey,omitempty" jsonschema:"title=API Key,description=Required for Polygon.io" validate:"required_if=Provider polygon"`
	Timeout time.Duration `json:"timeout,omitempty" jsonschema:"title=Timeout"`
}

// Validate checks the configuration.
func (c SourceConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid market data configuration", err)
	}

	return nil
}

// GetSourceConfigSchema returns the JSON schema of SourceConfig.
func GetSourceConfigSchema() (string, error) {
	schema, err := strategy.ToJSONSchema(SourceConfig{})
	if err != nil {
		return "", fmt.Errorf("failed to generate source config schema: %w", err)
	}

	return schema, nil
}
