package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/rxtech-lab/argo-quant/pkg/marketdata"
	"github.com/stretchr/testify/suite"
)

type OKXClientTestSuite struct {
	suite.Suite
	server  *httptest.Server
	handler http.HandlerFunc
	query   map[string]string
}

func TestOKXClientSuite(t *testing.T) {
	suite.Run(t, new(OKXClientTestSuite))
}

func (suite *OKXClientTestSuite) SetupTest() {
	suite.query = map[string]string{}
	suite.handler = nil
	suite.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		suite.Equal(okxCandlesPath, r.URL.Path)

		for key := range r.URL.Query() {
			suite.query[key] = r.URL.Query().Get(key)
		}

		suite.handler(w, r)
	}))
}

func (suite *OKXClientTestSuite) TearDownTest() {
	suite.server.Close()
}

func (suite *OKXClientTestSuite) respond(status int, body string) {
	suite.handler = func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func (suite *OKXClientTestSuite) TestFetchReordersOldestFirst() {
	suite.respond(http.StatusOK, `{"code":"0","msg":"","data":[
		["1700007200000","102","103","101","102.5","12","12","1230","0"],
		["1700003600000","101","102","100","101.5","11","11","1115","1"],
		["1700000000000","100","101","99","100.5","10","10","1005","1"]
	]}`)

	client := NewOKXClient(suite.server.URL, time.Second)
	candles, err := client.Fetch(context.Background(), "BTC-USDT", marketdata.IntervalOneHour, 3)
	suite.Require().NoError(err)
	suite.Require().Len(candles, 3)

	suite.Equal(int64(1700000000000), candles[0].Timestamp)
	suite.Equal(100.5, candles[0].Close)
	suite.Equal(1005.0, candles[0].QuoteVolume)
	suite.True(candles[0].Complete)
	suite.Equal(int64(1700007200000), candles[2].Timestamp)
	suite.False(candles[2].Complete)

	suite.Equal("BTC-USDT", suite.query["instId"])
	suite.Equal("1H", suite.query["bar"])
	suite.Equal("3", suite.query["limit"])
}

func (suite *OKXClientTestSuite) TestLimitIsClamped() {
	suite.respond(http.StatusOK, `{"code":"0","msg":"","data":[]}`)

	client := NewOKXClient(suite.server.URL, time.Second)
	candles, err := client.Fetch(context.Background(), "BTC-USDT", marketdata.IntervalOneDay, 5000)
	suite.Require().NoError(err)
	suite.Empty(candles)
	suite.Equal("300", suite.query["limit"])
}

func (suite *OKXClientTestSuite) TestAPIErrorCode() {
	suite.respond(http.StatusOK, `{"code":"51001","msg":"Instrument ID does not exist","data":[]}`)

	client := NewOKXClient(suite.server.URL, time.Second)
	_, err := client.Fetch(context.Background(), "NOPE", marketdata.IntervalOneHour, 10)
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataFetchFailed))
	suite.Contains(err.Error(), "51001")
}

func (suite *OKXClientTestSuite) TestHTTPError() {
	suite.respond(http.StatusServiceUnavailable, `{}`)

	client := NewOKXClient(suite.server.URL, time.Second)
	_, err := client.Fetch(context.Background(), "BTC-USDT", marketdata.IntervalOneHour, 10)
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataFetchFailed))
	suite.Contains(err.Error(), "503")
}

func (suite *OKXClientTestSuite) TestMalformedRow() {
	suite.respond(http.StatusOK, `{"code":"0","msg":"","data":[["1700000000000","abc","1","1","1","1","1","1","1"]]}`)

	client := NewOKXClient(suite.server.URL, time.Second)
	_, err := client.Fetch(context.Background(), "BTC-USDT", marketdata.IntervalOneHour, 10)
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataParseFailed))
}

func (suite *OKXClientTestSuite) TestShortRow() {
	suite.respond(http.StatusOK, `{"code":"0","msg":"","data":[["1700000000000","1"]]}`)

	client := NewOKXClient(suite.server.URL, time.Second)
	_, err := client.Fetch(context.Background(), "BTC-USDT", marketdata.IntervalOneHour, 10)
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataParseFailed))
}

func (suite *OKXClientTestSuite) TestContextCancelled() {
	suite.respond(http.StatusOK, `{"code":"0","msg":"","data":[]}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewOKXClient(suite.server.URL, time.Second)
	_, err := client.Fetch(ctx, "BTC-USDT", marketdata.IntervalOneHour, 10)
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataFetchFailed))
}
