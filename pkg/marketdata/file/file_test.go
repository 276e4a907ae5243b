package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/rxtech-lab/argo-quant/pkg/marketdata"
	"github.com/stretchr/testify/suite"
)

type FileTestSuite struct {
	suite.Suite
	tempDir string
	candles []types.Candle
}

func TestFileSuite(t *testing.T) {
	suite.Run(t, new(FileTestSuite))
}

func (suite *FileTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
	suite.candles = []types.Candle{
		{Timestamp: 1700000000000, Open: 10, High: 11, Low: 9, Close: 10.5, Volume: 100, Turnover: 100, QuoteVolume: 1050, Complete: true},
		{Timestamp: 1700003600000, Open: 10.5, High: 12, Low: 10, Close: 11.25, Volume: 80, Turnover: 80, QuoteVolume: 900, Complete: true},
		{Timestamp: 1700007200000, Open: 11.25, High: 11.5, Low: 11, Close: 11.1, Volume: 5, Turnover: 5, QuoteVolume: 55.5, Complete: false},
	}
}

func (suite *FileTestSuite) TestCSVRoundTrip() {
	path := filepath.Join(suite.tempDir, "nested", "candles.csv")
	suite.Require().NoError(Write(path, suite.candles))

	candles, err := Read(path)
	suite.Require().NoError(err)
	suite.Equal(suite.candles, candles)
}

func (suite *FileTestSuite) TestParquetRoundTrip() {
	path := filepath.Join(suite.tempDir, "candles.parquet")
	suite.Require().NoError(Write(path, suite.candles))

	candles, err := Read(path)
	suite.Require().NoError(err)
	suite.Equal(suite.candles, candles)
}

func (suite *FileTestSuite) TestCSVOrderIsNormalized() {
	content := "close,timestamp,open,high,low,volume,turnover,quote_volume,complete\n" +
		"2,2000,1,2,1,1,1,2,true\n" +
		"1,1000,1,1,1,1,1,1,true\n"
	path := filepath.Join(suite.tempDir, "reordered.csv")
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o644))

	candles, err := Read(path)
	suite.Require().NoError(err)
	suite.Require().Len(candles, 2)
	suite.Equal(int64(1000), candles[0].Timestamp)
	suite.Equal(2.0, candles[1].Close)
}

func (suite *FileTestSuite) TestCSVExtraColumn() {
	content := "timestamp,open,high,low,close,volume,turnover,quote_volume,complete,source\n" +
		"1000,1,2,1,1.5,1,1,1.5,true,okx\n"
	path := filepath.Join(suite.tempDir, "extra.csv")
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o644))

	candles, err := Read(path)
	suite.Require().NoError(err)
	suite.Require().Len(candles, 1)
	suite.Equal(1.5, candles[0].Close)
	suite.True(candles[0].Complete)
}

func (suite *FileTestSuite) TestCSVShortRow() {
	content := "timestamp,open,high,low,close,volume,turnover,quote_volume,complete\n1000,1,2,1\n"
	path := filepath.Join(suite.tempDir, "short.csv")
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o644))

	_, err := Read(path)
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataParseFailed))
	suite.Contains(err.Error(), "line 2")
}

func (suite *FileTestSuite) TestWriteReportsCreateFailure() {
	blocker := filepath.Join(suite.tempDir, "blocker")
	suite.Require().NoError(os.WriteFile(blocker, nil, 0o644))

	for _, name := range []string{"candles.csv", "candles.parquet"} {
		err := Write(filepath.Join(blocker, name), suite.candles)
		suite.True(errors.HasCode(err, errors.ErrCodeDataFileReadFailed), "%s: %v", name, err)
	}
}

func (suite *FileTestSuite) TestWriteClosesFile() {
	for _, name := range []string{"closed.csv", "closed.parquet"} {
		path := filepath.Join(suite.tempDir, name)
		suite.Require().NoError(Write(path, suite.candles))

		// a complete write leaves a file that can be replaced and reread
		suite.Require().NoError(Write(path, suite.candles[:1]))

		candles, err := Read(path)
		suite.Require().NoError(err)
		suite.Len(candles, 1)
	}
}

func (suite *FileTestSuite) TestCSVMissingColumn() {
	path := filepath.Join(suite.tempDir, "missing.csv")
	suite.Require().NoError(os.WriteFile(path, []byte("timestamp,open,high,low,close,volume,turnover,quote_volume,done\n"), 0o644))

	_, err := Read(path)
	suite.True(errors.HasCode(err, errors.ErrCodeDataFileReadFailed))
	suite.Contains(err.Error(), "complete")
}

func (suite *FileTestSuite) TestCSVBadValue() {
	content := "timestamp,open,high,low,close,volume,turnover,quote_volume,complete\n1000,x,1,1,1,1,1,1,true\n"
	path := filepath.Join(suite.tempDir, "bad.csv")
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o644))

	_, err := Read(path)
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataParseFailed))
	suite.Contains(err.Error(), "line 2")
}

func (suite *FileTestSuite) TestUnsupportedExtension() {
	_, err := Read(filepath.Join(suite.tempDir, "candles.json"))
	suite.True(errors.HasCode(err, errors.ErrCodeUnsupportedDataFile))

	err = Write(filepath.Join(suite.tempDir, "candles.txt"), suite.candles)
	suite.True(errors.HasCode(err, errors.ErrCodeUnsupportedDataFile))
}

func (suite *FileTestSuite) TestMissingFile() {
	_, err := Read(filepath.Join(suite.tempDir, "absent.csv"))
	suite.True(errors.HasCode(err, errors.ErrCodeDataFileReadFailed))
}

func (suite *FileTestSuite) TestSourceReturnsNewestBars() {
	path := filepath.Join(suite.tempDir, "candles.csv")
	suite.Require().NoError(Write(path, suite.candles))

	source := NewSource(path)

	candles, err := source.Fetch(context.Background(), "BTC-USDT", marketdata.IntervalOneHour, 2)
	suite.Require().NoError(err)
	suite.Require().Len(candles, 2)
	suite.Equal(int64(1700003600000), candles[0].Timestamp)

	candles, err = source.Fetch(context.Background(), "BTC-USDT", marketdata.IntervalOneHour, 0)
	suite.Require().NoError(err)
	suite.Len(candles, 3)
}
