package indicator

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type RSITestSuite struct {
	suite.Suite
}

func TestRSISuite(t *testing.T) {
	suite.Run(t, new(RSITestSuite))
}

func (suite *RSITestSuite) compute(period int, closes []float64) []float64 {
	rsi := NewRSI()
	suite.Require().NoError(rsi.Config(types.NewPeriodSignal(types.IndicatorTypeRSI, period)))

	columns, err := rsi.Compute(closes)
	suite.Require().NoError(err)
	suite.Require().Len(columns, 1)
	suite.Equal(rsi.(*RSI).ColumnName(), columns[0].Name)

	return columns[0].Values
}

func (suite *RSITestSuite) TestWilderSmoothing() {
	values := suite.compute(2, []float64{1, 2, 1, 2})

	suite.True(math.IsNaN(values[0]))
	suite.True(math.IsNaN(values[1]))
	// seed: avg gain 0.5, avg loss 0.5
	suite.InDelta(50.0, values[2], 1e-9)
	// gain 0.75, loss 0.25
	suite.InDelta(75.0, values[3], 1e-9)
}

func (suite *RSITestSuite) TestOnlyGains() {
	values := suite.compute(3, []float64{1, 2, 3, 4, 5, 6})

	for i := 3; i < len(values); i++ {
		suite.Equal(100.0, values[i])
	}
}

func (suite *RSITestSuite) TestOnlyLosses() {
	values := suite.compute(2, []float64{6, 5, 4, 3})

	suite.Equal(0.0, values[2])
	suite.Equal(0.0, values[3])
}

func (suite *RSITestSuite) TestFlatSeriesUndefined() {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 50
	}

	values := suite.compute(14, closes)

	for i, v := range values {
		suite.True(math.IsNaN(v), "bar %d = %v", i, v)
	}
}

func (suite *RSITestSuite) TestFlatStretchAfterMoves() {
	// the seed window has gains only, then the price stays flat
	values := suite.compute(2, []float64{1, 2, 3, 3, 3})

	suite.Equal(100.0, values[2])
	suite.Equal(100.0, values[3])
	suite.Equal(100.0, values[4])
}

func (suite *RSITestSuite) TestBounded() {
	closes := []float64{44, 44.3, 44.1, 43.6, 44.3, 44.8, 45.1, 45.4, 45.8, 46.1, 45.9, 46.2, 45.6, 46.2, 46.3, 46.3, 46, 46.4}
	values := suite.compute(14, closes)

	for i, v := range values {
		if i < 14 {
			suite.True(math.IsNaN(v))
			continue
		}

		suite.GreaterOrEqual(v, 0.0)
		suite.LessOrEqual(v, 100.0)
	}
}

func (suite *RSITestSuite) TestConfigValidation() {
	rsi := NewRSI()

	err := rsi.Config(types.NewPeriodSignal(types.IndicatorTypeRSI, -3))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
	suite.Equal(types.IndicatorTypeRSI, rsi.Name())
}
