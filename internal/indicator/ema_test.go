package indicator

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type EMATestSuite struct {
	suite.Suite
}

func TestEMASuite(t *testing.T) {
	suite.Run(t, new(EMATestSuite))
}

func (suite *EMATestSuite) compute(period int, closes []float64) []float64 {
	ema := NewEMA()
	suite.Require().NoError(ema.Config(types.NewPeriodSignal(types.IndicatorTypeEMA, period)))

	columns, err := ema.Compute(closes)
	suite.Require().NoError(err)
	suite.Require().Len(columns, 1)
	suite.Equal(ema.(*EMA).ColumnName(), columns[0].Name)

	return columns[0].Values
}

func (suite *EMATestSuite) TestSeededBySimpleAverage() {
	values := suite.compute(2, []float64{10, 11, 12, 9, 8, 11})

	suite.True(math.IsNaN(values[0]))
	expected := []float64{10.5, 11.5, 9.833333, 8.611111, 10.203704}
	for i, want := range expected {
		suite.InDelta(want, values[i+1], 1e-6, "bar %d", i+1)
	}
}

func (suite *EMATestSuite) TestPeriodOneIsIdentity() {
	closes := []float64{3.5, 7, 1.25, 9, 9, 2}
	values := suite.compute(1, closes)

	suite.Equal(closes, values)
}

func (suite *EMATestSuite) TestShortSeriesIsUndefined() {
	values := suite.compute(5, []float64{1, 2, 3})

	suite.Len(values, 3)
	for _, v := range values {
		suite.True(math.IsNaN(v))
	}
}

func (suite *EMATestSuite) TestWarmupLength() {
	values := suite.compute(3, []float64{1, 2, 3, 4, 5})

	suite.True(math.IsNaN(values[0]))
	suite.True(math.IsNaN(values[1]))
	suite.InDelta(2.0, values[2], 1e-9)
	suite.InDelta(3.0, values[3], 1e-9)
	suite.InDelta(4.0, values[4], 1e-9)
}

func (suite *EMATestSuite) TestLeadingNaNIsSkipped() {
	values := exponentialMovingAverage([]float64{math.NaN(), math.NaN(), 2, 4, 6}, 2)

	suite.True(math.IsNaN(values[2]))
	suite.InDelta(3.0, values[3], 1e-9)
	suite.InDelta(5.0, values[4], 1e-9)
}

func (suite *EMATestSuite) TestConfigValidation() {
	ema := NewEMA()

	err := ema.Config(types.Signal{Type: types.IndicatorTypeEMA})
	suite.True(errors.HasCode(err, errors.ErrCodeMissingParameter))

	err = ema.Config(types.NewPeriodSignal(types.IndicatorTypeEMA, 0))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))

	suite.Equal(types.IndicatorTypeEMA, ema.Name())
}
