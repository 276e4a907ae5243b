package provider

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/rxtech-lab/argo-quant/pkg/marketdata"
	"github.com/stretchr/testify/suite"
)

type mockPolygonAPIClient struct {
	aggs   []models.Agg
	err    error
	params *models.ListAggsParams
}

func (m *mockPolygonAPIClient) ListAggs(_ context.Context, params *models.ListAggsParams) ([]models.Agg, error) {
	m.params = params

	return m.aggs, m.err
}

type PolygonClientTestSuite struct {
	suite.Suite
	now time.Time
}

func TestPolygonClientSuite(t *testing.T) {
	suite.Run(t, new(PolygonClientTestSuite))
}

func (suite *PolygonClientTestSuite) SetupTest() {
	suite.now = time.Date(2024, 1, 10, 0, 30, 0, 0, time.UTC)
}

func (suite *PolygonClientTestSuite) TestNewPolygonClientRequiresKey() {
	_, err := NewPolygonClient("")
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))

	client, err := NewPolygonClient("key")
	suite.NoError(err)
	suite.NotNil(client)
}

func (suite *PolygonClientTestSuite) TestFetchReversesDescendingAggs() {
	newest := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	older := newest.Add(-time.Hour)

	mockAPI := &mockPolygonAPIClient{aggs: []models.Agg{
		{Timestamp: models.Millis(newest), Open: 2, High: 3, Low: 1, Close: 2.5, Volume: 100, VWAP: 2},
		{Timestamp: models.Millis(older), Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 10, VWAP: 1.2},
	}}

	client := NewPolygonClientWithAPI(mockAPI, func() time.Time { return suite.now })
	candles, err := client.Fetch(context.Background(), "AAPL", marketdata.IntervalOneHour, 2)
	suite.Require().NoError(err)
	suite.Require().Len(candles, 2)

	suite.Equal(older.UnixMilli(), candles[0].Timestamp)
	suite.Equal(1.5, candles[0].Close)
	suite.InDelta(12.0, candles[0].QuoteVolume, 1e-9)
	suite.True(candles[0].Complete)
	suite.Equal(newest.UnixMilli(), candles[1].Timestamp)
	suite.False(candles[1].Complete)

	suite.Require().NotNil(mockAPI.params)
	suite.Equal("AAPL", mockAPI.params.Ticker)
	suite.Equal(1, mockAPI.params.Multiplier)
	suite.Equal(models.Hour, mockAPI.params.Timespan)
}

func (suite *PolygonClientTestSuite) TestFetchTruncatesToLimit() {
	base := time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)
	mockAPI := &mockPolygonAPIClient{aggs: []models.Agg{
		{Timestamp: models.Millis(base.Add(2 * time.Hour)), Close: 3},
		{Timestamp: models.Millis(base.Add(time.Hour)), Close: 2},
		{Timestamp: models.Millis(base), Close: 1},
	}}

	client := NewPolygonClientWithAPI(mockAPI, func() time.Time { return suite.now })
	candles, err := client.Fetch(context.Background(), "AAPL", marketdata.IntervalOneHour, 2)
	suite.Require().NoError(err)
	suite.Require().Len(candles, 2)
	suite.Equal(2.0, candles[0].Close)
	suite.Equal(3.0, candles[1].Close)
}

func (suite *PolygonClientTestSuite) TestFetchError() {
	mockAPI := &mockPolygonAPIClient{err: stderrors.New("unauthorized")}

	client := NewPolygonClientWithAPI(mockAPI, func() time.Time { return suite.now })
	_, err := client.Fetch(context.Background(), "AAPL", marketdata.IntervalOneDay, 10)
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataFetchFailed))
}
