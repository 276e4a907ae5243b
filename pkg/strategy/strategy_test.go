package strategy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type StrategyTestSuite struct {
	suite.Suite
	tempDir string
}

func TestStrategyTestSuite(t *testing.T) {
	suite.Run(t, new(StrategyTestSuite))
}

func (suite *StrategyTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
}

const emaCrossYAML = `
version: "1.0.0"
signals:
  - type: EMA
    period: 2
  - type: MACD
entry_conditions:
  - lhs: close
    operator: ">"
    rhs: EMA_2
exit_conditions:
  - lhs: close
    operator: "<"
    rhs: EMA_2
  - lhs: MACD_12_26_9
    operator: "<"
    rhs: 0
`

func (suite *StrategyTestSuite) TestLoadYAML() {
	path := filepath.Join(suite.tempDir, "strategy.yaml")
	suite.Require().NoError(os.WriteFile(path, []byte(emaCrossYAML), 0o644))

	strategy, err := Load(path)
	suite.Require().NoError(err)

	suite.Len(strategy.Signals, 2)
	suite.Equal(types.IndicatorTypeEMA, strategy.Signals[0].Type)
	suite.Equal(2, strategy.Signals[0].Period.Unwrap())
	suite.Equal("EMA_2", strategy.EntryConditions[0].RHS.FieldName())
	suite.Equal(0.0, strategy.ExitConditions[1].RHS.LiteralValue())
}

func (suite *StrategyTestSuite) TestParseJSON() {
	doc := `{"signals":[{"type":"RSI","period":14}],"entry_conditions":[{"lhs":"RSI_14","operator":"<","rhs":30}],"exit_conditions":[]}`

	strategy, err := Parse([]byte(doc), FormatJSON)
	suite.Require().NoError(err)
	suite.Equal(types.OperatorLessThan, strategy.EntryConditions[0].Operator)
	suite.Empty(strategy.ExitConditions)
}

func (suite *StrategyTestSuite) TestUnknownOperatorParsesAndFailsLater() {
	doc := `{"signals":[],"entry_conditions":[{"lhs":"close","operator":"!=","rhs":1}],"exit_conditions":[]}`

	strategy, err := Parse([]byte(doc), FormatJSON)
	suite.Require().NoError(err)
	suite.Equal(types.Operator("!="), strategy.EntryConditions[0].Operator)
}

func (suite *StrategyTestSuite) TestMissingSignalType() {
	_, err := Parse([]byte(`{"signals":[{"period":3}]}`), FormatJSON)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidStrategy), "got %v", err)
}

func (suite *StrategyTestSuite) TestNewerVersionRejected() {
	_, err := Parse([]byte(`{"version":"2.0.0","signals":[]}`), FormatJSON)
	suite.True(errors.HasCode(err, errors.ErrCodeVersionMismatch), "got %v", err)
}

func (suite *StrategyTestSuite) TestMalformedDocument() {
	_, err := Parse([]byte(`{"signals":`), FormatJSON)
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyLoadFailed))
}

func (suite *StrategyTestSuite) TestUnsupportedExtension() {
	_, err := Load(filepath.Join(suite.tempDir, "strategy.toml"))
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyLoadFailed))
}

func (suite *StrategyTestSuite) TestMissingFile() {
	_, err := Load(filepath.Join(suite.tempDir, "missing.json"))
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyLoadFailed))
}
