package condition

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type EvaluatorTestSuite struct {
	suite.Suite
	record    types.Record
	evaluator *Evaluator
}

func TestEvaluatorSuite(t *testing.T) {
	suite.Run(t, new(EvaluatorTestSuite))
}

func (suite *EvaluatorTestSuite) SetupTest() {
	candle := types.Candle{Timestamp: 1_700_000_000_000, Open: 99, High: 102, Low: 98, Close: 100, Volume: 5, Complete: true}
	suite.record = types.NewRecord(7, candle, map[string]float64{
		"RSI_14": 28.5,
		"EMA_20": 101,
		"EMA_50": math.NaN(),
	})
	suite.evaluator = NewEvaluator(Options{})
}

func (suite *EvaluatorTestSuite) TestOperators() {
	tests := []struct {
		name     string
		operator types.Operator
		rhs      float64
		expected bool
	}{
		{"greater than true", types.OperatorGreaterThan, 99, true},
		{"greater than equal value", types.OperatorGreaterThan, 100, false},
		{"less than", types.OperatorLessThan, 101, true},
		{"greater or equal", types.OperatorGreaterThanEqual, 100, true},
		{"less or equal", types.OperatorLessThanEqual, 99.99, false},
		{"equal", types.OperatorEqual, 100, true},
		{"not equal", types.OperatorEqual, 100.5, false},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			ok, err := suite.evaluator.Evaluate(suite.record, types.Condition{
				LHS:      types.Field("close"),
				Operator: tc.operator,
				RHS:      types.Literal(tc.rhs),
			})
			suite.Require().NoError(err)
			suite.Equal(tc.expected, ok)
		})
	}
}

func (suite *EvaluatorTestSuite) TestFieldToField() {
	ok, err := suite.evaluator.Evaluate(suite.record, types.Condition{
		LHS:      types.Field("close"),
		Operator: types.OperatorLessThan,
		RHS:      types.Field("EMA_20"),
	})
	suite.Require().NoError(err)
	suite.True(ok)
}

func (suite *EvaluatorTestSuite) TestNumericStringRHS() {
	ok, err := suite.evaluator.Evaluate(suite.record, types.Condition{
		LHS:      types.Field("RSI_14"),
		Operator: types.OperatorLessThan,
		RHS:      types.Field("30"),
	})
	suite.Require().NoError(err)
	suite.True(ok)
}

func (suite *EvaluatorTestSuite) TestLiteralLHS() {
	ok, err := suite.evaluator.Evaluate(suite.record, types.Condition{
		LHS:      types.Literal(50),
		Operator: types.OperatorGreaterThan,
		RHS:      types.Field("RSI_14"),
	})
	suite.Require().NoError(err)
	suite.True(ok)
}

func (suite *EvaluatorTestSuite) TestMissingLHS() {
	_, err := suite.evaluator.Evaluate(suite.record, types.Condition{
		LHS:      types.Field("MACD_12_26_9"),
		Operator: types.OperatorGreaterThan,
		RHS:      types.Literal(0),
	})
	suite.Require().Error(err)
	suite.True(errors.IsMissingFieldError(err))
	suite.Contains(err.Error(), "MACD_12_26_9")
}

func (suite *EvaluatorTestSuite) TestMissingRHS() {
	_, err := suite.evaluator.Evaluate(suite.record, types.Condition{
		LHS:      types.Field("close"),
		Operator: types.OperatorGreaterThan,
		RHS:      types.Field("EMA_200"),
	})
	suite.Require().Error(err)
	suite.True(errors.IsMissingFieldError(err))
	suite.Contains(err.Error(), "EMA_200")
}

func (suite *EvaluatorTestSuite) TestUnsupportedOperator() {
	_, err := suite.evaluator.Evaluate(suite.record, types.Condition{
		LHS:      types.Field("close"),
		Operator: "!=",
		RHS:      types.Literal(1),
	})
	suite.Require().Error(err)
	suite.True(errors.IsUnsupportedOperatorError(err))
	suite.True(errors.HasCode(err, errors.ErrCodeUnsupportedOperator))
	suite.Contains(err.Error(), "!=")
}

func (suite *EvaluatorTestSuite) TestWarmupComparesFalse() {
	for _, op := range types.AllOperators {
		ok, err := suite.evaluator.Evaluate(suite.record, types.Condition{
			LHS:      types.Field("close"),
			Operator: op,
			RHS:      types.Field("EMA_50"),
		})
		suite.Require().NoError(err)
		suite.False(ok, "operator %s", op)
	}
}

func (suite *EvaluatorTestSuite) TestStrictWarmup() {
	strict := NewEvaluator(Options{StrictWarmup: true})

	_, err := strict.Evaluate(suite.record, types.Condition{
		LHS:      types.Field("EMA_50"),
		Operator: types.OperatorGreaterThan,
		RHS:      types.Literal(0),
	})
	suite.True(errors.IsMissingFieldError(err))
	suite.Contains(err.Error(), "EMA_50")
}

func (suite *EvaluatorTestSuite) TestEvaluateAll() {
	conditions := []types.Condition{
		{LHS: types.Field("close"), Operator: types.OperatorGreaterThan, RHS: types.Literal(90)},
		{LHS: types.Field("RSI_14"), Operator: types.OperatorLessThan, RHS: types.Literal(30)},
	}

	ok, err := suite.evaluator.EvaluateAll(suite.record, conditions, types.EntryConditionsList)
	suite.Require().NoError(err)
	suite.True(ok)

	conditions[1].RHS = types.Literal(20)
	ok, err = suite.evaluator.EvaluateAll(suite.record, conditions, types.EntryConditionsList)
	suite.Require().NoError(err)
	suite.False(ok)
}

func (suite *EvaluatorTestSuite) TestEvaluateAllEmptyIsTrue() {
	ok, err := suite.evaluator.EvaluateAll(suite.record, nil, types.ExitConditionsList)
	suite.NoError(err)
	suite.True(ok)
}

func (suite *EvaluatorTestSuite) TestEvaluateAllLocatesErrors() {
	conditions := []types.Condition{
		{LHS: types.Field("close"), Operator: types.OperatorGreaterThan, RHS: types.Literal(0)},
		{LHS: types.Field("volume"), Operator: "!=", RHS: types.Literal(0)},
	}

	_, err := suite.evaluator.EvaluateAll(suite.record, conditions, types.ExitConditionsList)
	suite.Require().Error(err)

	var condErr *errors.ConditionError
	suite.Require().True(errors.As(err, &condErr))
	suite.Equal(types.ExitConditionsList, condErr.List)
	suite.Equal(1, condErr.Index)
	suite.Equal("!=", condErr.Operator)
	suite.Equal(int64(1_700_000_000_000), condErr.Timestamp)
	suite.Equal(`[120] unsupported operator "!=" in exit_conditions[1] at bar 1700000000000`, err.Error())
}

func (suite *EvaluatorTestSuite) TestEvaluateAllStopsAtFirstFalse() {
	conditions := []types.Condition{
		{LHS: types.Field("close"), Operator: types.OperatorGreaterThan, RHS: types.Literal(1000)},
		{LHS: types.Field("missing"), Operator: types.OperatorGreaterThan, RHS: types.Literal(0)},
	}

	ok, err := suite.evaluator.EvaluateAll(suite.record, conditions, types.EntryConditionsList)
	suite.NoError(err)
	suite.False(ok)
}

func (suite *EvaluatorTestSuite) TestRecordUnchanged() {
	before := suite.record.Columns()
	_, _ = suite.evaluator.Evaluate(suite.record, types.Condition{
		LHS:      types.Field("close"),
		Operator: types.OperatorGreaterThan,
		RHS:      types.Field("55"),
	})
	suite.Equal(before, suite.record.Columns())
}
