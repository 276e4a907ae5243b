package indicator

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type MACDTestSuite struct {
	suite.Suite
}

func TestMACDSuite(t *testing.T) {
	suite.Run(t, new(MACDTestSuite))
}

func (suite *MACDTestSuite) TestColumnsAndValues() {
	macd := NewMACD()
	suite.Require().NoError(macd.Config(types.NewMACDSignal(2, 3, 2)))

	columns, err := macd.Compute([]float64{1, 2, 3, 4, 5, 6})
	suite.Require().NoError(err)
	suite.Require().Len(columns, 2)
	suite.Equal("MACD_2_3_2", columns[0].Name)
	suite.Equal("MACDs_2_3_2", columns[1].Name)

	line := columns[0].Values
	signal := columns[1].Values

	suite.True(math.IsNaN(line[1]))
	for i := 2; i < 6; i++ {
		suite.InDelta(0.5, line[i], 1e-9)
	}

	suite.True(math.IsNaN(signal[2]))
	for i := 3; i < 6; i++ {
		suite.InDelta(0.5, signal[i], 1e-9)
	}
}

func (suite *MACDTestSuite) TestDefaults() {
	macd := NewMACD()
	suite.Require().NoError(macd.Config(types.Signal{Type: types.IndicatorTypeMACD}))

	suite.Equal("MACD_12_26_9", macd.(*MACD).LineColumnName())
	suite.Equal("MACDs_12_26_9", macd.(*MACD).SignalColumnName())
	suite.Equal(types.IndicatorTypeMACD, macd.Name())
}

func (suite *MACDTestSuite) TestInvalidPeriods() {
	macd := NewMACD()

	err := macd.Config(types.NewMACDSignal(0, 26, 9))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))

	err = macd.Config(types.NewMACDSignal(12, -1, 9))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))

	err = macd.Config(types.NewMACDSignal(12, 26, 0))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
}
