// Package provider implements marketdata.Source for OKX, Binance and Polygon.io.
package provider

import (
	"time"

	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/rxtech-lab/argo-quant/pkg/marketdata"
)

// DefaultTimeout bounds a single provider request when the config does not set one.
const DefaultTimeout = 10 * time.Second

// NewMarketDataProvider creates the provider named by config.
func NewMarketDataProvider(config marketdata.SourceConfig) (marketdata.Source, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	switch config.Provider {
	case marketdata.ProviderOKX:
		return NewOKXClient(config.BaseURL, timeout), nil
	case marketdata.ProviderBinance:
		return NewBinanceClient()
	case marketdata.ProviderPolygon:
		return NewPolygonClient(config.APIKey)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported market data provider: %s", config.Provider)
	}
}

// NewSource creates the configured provider behind a marketdata.Client.
func NewSource(config marketdata.SourceConfig, log *logger.Logger) (*marketdata.Client, error) {
	source, err := NewMarketDataProvider(config)
	if err != nil {
		return nil, err
	}

	return marketdata.NewClient(string(config.Provider), source, log), nil
}

// clampLimit bounds limit by the per-request maximum of the provider.
// A non-positive limit asks for the maximum.
func clampLimit(limit int, provider marketdata.ProviderType) int {
	info, err := marketdata.GetProviderInfo(string(provider))
	if err != nil {
		return limit
	}

	if limit <= 0 || limit > info.MaxLimit {
		return info.MaxLimit
	}

	return limit
}
