package provider

import (
	"context"
	"strconv"
	"strings"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/rxtech-lab/argo-quant/pkg/marketdata"
)

// BinanceKlinesService is the subset of the go-binance klines service used here.
type BinanceKlinesService interface {
	Symbol(symbol string) BinanceKlinesService
	Interval(interval string) BinanceKlinesService
	Limit(limit int) BinanceKlinesService
	Do(ctx context.Context) ([]*binance.Kline, error)
}

// BinanceAPIClient creates klines services.
type BinanceAPIClient interface {
	NewKlinesService() BinanceKlinesService
}

type binanceClientWrapper struct {
	client *binance.Client
}

func (w *binanceClientWrapper) NewKlinesService() BinanceKlinesService {
	return &binanceKlinesServiceWrapper{service: w.client.NewKlinesService()}
}

type binanceKlinesServiceWrapper struct {
	service *binance.KlinesService
}

func (w *binanceKlinesServiceWrapper) Symbol(symbol string) BinanceKlinesService {
	w.service = w.service.Symbol(symbol)

	return w
}

func (w *binanceKlinesServiceWrapper) Interval(interval string) BinanceKlinesService {
	w.service = w.service.Interval(interval)

	return w
}

func (w *binanceKlinesServiceWrapper) Limit(limit int) BinanceKlinesService {
	w.service = w.service.Limit(limit)

	return w
}

func (w *binanceKlinesServiceWrapper) Do(ctx context.Context) ([]*binance.Kline, error) {
	return w.service.Do(ctx)
}

// BinanceClient fetches spot klines from Binance.
type BinanceClient struct {
	apiClient BinanceAPIClient
	now       func() time.Time
}

// NewBinanceClient creates a client for the public Binance API.
func NewBinanceClient() (marketdata.Source, error) {
	return NewBinanceClientWithAPI(&binanceClientWrapper{client: binance.NewClient("", "")}), nil
}

// NewBinanceClientWithAPI creates a client over the given API.
func NewBinanceClientWithAPI(apiClient BinanceAPIClient) *BinanceClient {
	return &BinanceClient{
		apiClient: apiClient,
		now:       time.Now,
	}
}

// Fetch implements marketdata.Source. Symbols may use the OKX form "BTC-USDT".
func (c *BinanceClient) Fetch(ctx context.Context, symbol string, interval marketdata.Interval, limit int) ([]types.Candle, error) {
	klines, err := c.apiClient.NewKlinesService().
		Symbol(binanceSymbol(symbol)).
		Interval(interval.BinanceInterval()).
		Limit(clampLimit(limit, marketdata.ProviderBinance)).
		Do(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "failed to fetch klines from Binance", err)
	}

	return processKlines(klines, c.now().UnixMilli())
}

// processKlines converts Binance klines to candles. Turnover is the base
// volume and QuoteVolume the quote asset volume.
func processKlines(klines []*binance.Kline, nowMillis int64) ([]types.Candle, error) {
	candles := make([]types.Candle, 0, len(klines))

	for _, k := range klines {
		fields := []string{k.Open, k.High, k.Low, k.Close, k.Volume, k.QuoteAssetVolume}
		values := make([]float64, len(fields))

		for i, field := range fields {
			value, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "invalid binance kline value %q at %d", field, k.OpenTime)
			}

			values[i] = value
		}

		candles = append(candles, types.Candle{
			Timestamp:   k.OpenTime,
			Open:        values[0],
			High:        values[1],
			Low:         values[2],
			Close:       values[3],
			Volume:      values[4],
			Turnover:    values[4],
			QuoteVolume: values[5],
			Complete:    k.CloseTime < nowMillis,
		})
	}

	return candles, nil
}

func binanceSymbol(symbol string) string {
	return strings.ToUpper(strings.ReplaceAll(symbol, "-", ""))
}
