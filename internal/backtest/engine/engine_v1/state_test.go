package engine

import (
	"testing"

	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/stretchr/testify/suite"
)

type BacktestStateTestSuite struct {
	suite.Suite
}

func TestBacktestStateSuite(t *testing.T) {
	suite.Run(t, new(BacktestStateTestSuite))
}

func record(index int, timestamp int64, close float64) types.Record {
	return types.NewRecord(index, types.Candle{Timestamp: timestamp, Close: close, Complete: true}, nil)
}

func (suite *BacktestStateTestSuite) TestInitialState() {
	state := NewBacktestState()
	suite.Equal(PositionStateFlat, state.Position())
	suite.Empty(state.Trades())
}

func (suite *BacktestStateTestSuite) TestEntryOnlyWhileFlat() {
	state := NewBacktestState()

	_, ok := state.Step(record(0, 1000, 10), false, true)
	suite.False(ok, "exit is ignored while flat")
	suite.Equal(PositionStateFlat, state.Position())

	trade, ok := state.Step(record(1, 2000, 11), true, true)
	suite.True(ok)
	suite.Equal(types.TradeTypeBuy, trade.Type)
	suite.Equal(int64(2000), trade.Timestamp)
	suite.Equal(11.0, trade.Price)
	suite.Nil(trade.PnL)
	suite.Equal(PositionStateLong, state.Position())
}

func (suite *BacktestStateTestSuite) TestExitOnlyWhileLong() {
	state := NewBacktestState()
	state.Step(record(0, 1000, 10), true, false)

	_, ok := state.Step(record(1, 2000, 12), true, false)
	suite.False(ok, "entry is ignored while long")

	trade, ok := state.Step(record(2, 3000, 13.5), true, true)
	suite.True(ok)
	suite.Equal(types.TradeTypeSell, trade.Type)
	suite.Require().NotNil(trade.PnL)
	suite.InDelta(3.5, *trade.PnL, 1e-9)
	suite.Equal(PositionStateFlat, state.Position())
}

func (suite *BacktestStateTestSuite) TestAlternation() {
	state := NewBacktestState()

	for i := 0; i < 20; i++ {
		state.Step(record(i, int64(i+1)*1000, float64(10+i%3)), true, true)
	}

	trades := state.Trades()
	suite.Len(trades, 20)

	for i, trade := range trades {
		if i%2 == 0 {
			suite.Equal(types.TradeTypeBuy, trade.Type)
			continue
		}

		suite.Equal(types.TradeTypeSell, trade.Type)
		suite.InDelta(trade.Price-trades[i-1].Price, trade.RealizedPnL(), 1e-9)
	}
}

func (suite *BacktestStateTestSuite) TestTradesReturnsCopy() {
	state := NewBacktestState()
	state.Step(record(0, 1000, 10), true, false)

	trades := state.Trades()
	trades[0].Price = 99

	suite.Equal(10.0, state.Trades()[0].Price)
}
