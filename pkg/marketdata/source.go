// Package marketdata fetches candle series from exchanges and data vendors.
package marketdata

import (
	"context"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"go.uber.org/zap"
)

// DefaultLimit is the number of bars fetched when the caller does not ask for a count.
const DefaultLimit = 300

// Source returns the most recent bars of a symbol, oldest first.
type Source interface {
	Fetch(ctx context.Context, symbol string, interval Interval, limit int) ([]types.Candle, error)
}

// FetchParams holds the parameters of a fetch request.
type FetchParams struct {
	Symbol   string   `validate:"required"`
	Interval Interval `validate:"required"`
	Limit    int      `validate:"gte=0"`
}

// Client guards a Source: it validates requests, orders the returned series
// and turns failures into coded errors. No retry is attempted.
type Client struct {
	source       Source
	name         string
	defaultLimit int
	validate     *validator.Validate
	log          *logger.Logger
}

// NewClient wraps source. name is used in logs and error messages.
func NewClient(name string, source Source, log *logger.Logger) *Client {
	return &Client{
		source:       source,
		name:         name,
		defaultLimit: DefaultLimit,
		validate:     validator.New(),
		log:          logger.OrNop(log),
	}
}

// WithDefaultLimit sets the limit used when a request asks for 0 bars. A zero
// default passes 0 through to the source.
func (c *Client) WithDefaultLimit(limit int) *Client {
	c.defaultLimit = limit

	return c
}

// Name returns the provider name.
func (c *Client) Name() string {
	return c.name
}

// Fetch implements Source.
func (c *Client) Fetch(ctx context.Context, symbol string, interval Interval, limit int) ([]types.Candle, error) {
	params := FetchParams{Symbol: symbol, Interval: interval, Limit: limit}
	if err := c.validate.Struct(params); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidParameter, "invalid fetch parameters", err)
	}

	if _, err := ParseInterval(string(interval)); err != nil {
		return nil, err
	}

	if params.Limit == 0 {
		params.Limit = c.defaultLimit
	}

	candles, err := c.source.Fetch(ctx, params.Symbol, params.Interval, params.Limit)
	if err != nil {
		c.log.Error("Market data fetch failed",
			zap.String("provider", c.name),
			zap.String("symbol", symbol),
			zap.String("interval", string(interval)),
			zap.Error(err),
		)

		if errors.HasCode(err, errors.ErrCodeNoDataFound) || errors.HasCode(err, errors.ErrCodeMarketDataFetchFailed) {
			return nil, err
		}

		return nil, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "%s fetch %s %s failed", c.name, symbol, interval)
	}

	if len(candles) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "%s returned no candles for %s %s", c.name, symbol, interval)
	}

	candles = Normalize(candles)

	c.log.Debug("Fetched market data",
		zap.String("provider", c.name),
		zap.String("symbol", symbol),
		zap.String("interval", string(interval)),
		zap.Int("count", len(candles)),
	)

	return candles, nil
}

// Normalize returns the candles sorted oldest first with duplicate timestamps
// removed. The last occurrence of a timestamp wins.
func Normalize(candles []types.Candle) []types.Candle {
	sorted := make([]types.Candle, len(candles))
	copy(sorted, candles)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	result := sorted[:0]
	for _, candle := range sorted {
		if n := len(result); n > 0 && result[n-1].Timestamp == candle.Timestamp {
			result[n-1] = candle

			continue
		}

		result = append(result, candle)
	}

	return result
}
