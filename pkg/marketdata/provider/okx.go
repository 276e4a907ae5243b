package provider

import (
	"context"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/rxtech-lab/argo-quant/pkg/marketdata"
)

const (
	// OKXBaseURL is the public OKX REST endpoint.
	OKXBaseURL     = "https://www.okx.com"
	okxCandlesPath = "/api/v5/market/candles"
	// okxRowLength is ts, o, h, l, c, vol, volCcy, volCcyQuote, confirm.
	okxRowLength = 9
)

type okxCandlesResponse struct {
	Code string     `json:"code"`
	Msg  string     `json:"msg"`
	Data [][]string `json:"data"`
}

// OKXClient fetches candles from the OKX public market API.
type OKXClient struct {
	client *resty.Client
}

// NewOKXClient creates an OKX client. An empty baseURL uses the public endpoint.
func NewOKXClient(baseURL string, timeout time.Duration) *OKXClient {
	if baseURL == "" {
		baseURL = OKXBaseURL
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &OKXClient{client: client}
}

// Fetch implements marketdata.Source. OKX returns the newest bar first; the
// result is reordered oldest first.
func (c *OKXClient) Fetch(ctx context.Context, symbol string, interval marketdata.Interval, limit int) ([]types.Candle, error) {
	var payload okxCandlesResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"instId": symbol,
			"bar":    string(interval),
			"limit":  strconv.Itoa(clampLimit(limit, marketdata.ProviderOKX)),
		}).
		SetResult(&payload).
		Get(okxCandlesPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "okx request failed", err)
	}

	if resp.IsError() {
		return nil, errors.Newf(errors.ErrCodeMarketDataFetchFailed, "okx returned status %d", resp.StatusCode())
	}

	if payload.Code != "0" {
		return nil, errors.Newf(errors.ErrCodeMarketDataFetchFailed, "okx error %s: %s", payload.Code, payload.Msg)
	}

	candles := make([]types.Candle, 0, len(payload.Data))
	for i := len(payload.Data) - 1; i >= 0; i-- {
		candle, err := parseOKXRow(payload.Data[i])
		if err != nil {
			return nil, err
		}

		candles = append(candles, candle)
	}

	return candles, nil
}

func parseOKXRow(row []string) (types.Candle, error) {
	if len(row) < okxRowLength {
		return types.Candle{}, errors.Newf(errors.ErrCodeMarketDataParseFailed, "okx candle has %d fields, want %d", len(row), okxRowLength)
	}

	timestamp, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return types.Candle{}, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "invalid okx timestamp %q", row[0])
	}

	values := make([]float64, 7)
	for i := range values {
		values[i], err = strconv.ParseFloat(row[i+1], 64)
		if err != nil {
			return types.Candle{}, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "invalid okx value %q at %d", row[i+1], timestamp)
		}
	}

	return types.Candle{
		Timestamp:   timestamp,
		Open:        values[0],
		High:        values[1],
		Low:         values[2],
		Close:       values[3],
		Volume:      values[4],
		Turnover:    values[5],
		QuoteVolume: values[6],
		Complete:    row[8] == "1",
	}, nil
}
