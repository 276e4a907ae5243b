package provider

import (
	"context"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/rxtech-lab/argo-quant/pkg/marketdata"
)

const (
	// polygonLookbackFactor widens the requested window to cover closed market sessions.
	polygonLookbackFactor = 4
)

// PolygonAPIClient lists aggregate bars.
type PolygonAPIClient interface {
	ListAggs(ctx context.Context, params *models.ListAggsParams) ([]models.Agg, error)
}

type polygonClientWrapper struct {
	client *polygon.Client
}

func (w *polygonClientWrapper) ListAggs(ctx context.Context, params *models.ListAggsParams) ([]models.Agg, error) {
	iter := w.client.ListAggs(ctx, params)

	var aggs []models.Agg
	for iter.Next() {
		aggs = append(aggs, iter.Item())
	}

	if iter.Err() != nil {
		return nil, iter.Err()
	}

	return aggs, nil
}

// PolygonClient fetches aggregate bars from Polygon.io.
type PolygonClient struct {
	apiClient PolygonAPIClient
	now       func() time.Time
}

// NewPolygonClient creates a Polygon.io client.
func NewPolygonClient(apiKey string) (marketdata.Source, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "apiKey is required")
	}

	return NewPolygonClientWithAPI(&polygonClientWrapper{client: polygon.New(apiKey)}, time.Now), nil
}

// NewPolygonClientWithAPI creates a client over the given API and clock.
func NewPolygonClientWithAPI(apiClient PolygonAPIClient, now func() time.Time) *PolygonClient {
	return &PolygonClient{apiClient: apiClient, now: now}
}

// Fetch implements marketdata.Source. The newest limit bars are requested in
// descending order and returned oldest first. Turnover is the traded volume
// and QuoteVolume is vwap times volume.
func (c *PolygonClient) Fetch(ctx context.Context, symbol string, interval marketdata.Interval, limit int) ([]types.Candle, error) {
	limit = clampLimit(limit, marketdata.ProviderPolygon)
	now := c.now()
	from := now.Add(-time.Duration(limit*polygonLookbackFactor) * interval.Duration())

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     symbol,
		Multiplier: interval.Multiplier(),
		Timespan:   interval.Timespan(),
		From:       models.Millis(from),
		To:         models.Millis(now),
	}.WithOrder(models.Desc).WithLimit(limit)

	aggs, err := c.apiClient.ListAggs(ctx, params)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "error listing polygon aggregates", err)
	}

	if len(aggs) > limit {
		aggs = aggs[:limit]
	}

	nowMillis := now.UnixMilli()
	barMillis := interval.Duration().Milliseconds()

	candles := make([]types.Candle, 0, len(aggs))
	for i := len(aggs) - 1; i >= 0; i-- {
		agg := aggs[i]
		timestamp := time.Time(agg.Timestamp).UnixMilli()

		candles = append(candles, types.Candle{
			Timestamp:   timestamp,
			Open:        agg.Open,
			High:        agg.High,
			Low:         agg.Low,
			Close:       agg.Close,
			Volume:      agg.Volume,
			Turnover:    agg.Volume,
			QuoteVolume: agg.VWAP * agg.Volume,
			Complete:    timestamp+barMillis <= nowMillis,
		})
	}

	return candles, nil
}
