package indicator

import (
	"testing"

	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/stretchr/testify/suite"
)

// mockIndicator is a simple mock indicator for testing the registry
type mockIndicator struct {
	name types.IndicatorType
}

func (m *mockIndicator) Name() types.IndicatorType {
	return m.name
}

func (m *mockIndicator) Config(signal types.Signal) error {
	return nil
}

func (m *mockIndicator) Compute(closes []float64) ([]Column, error) {
	return []Column{{Name: string(m.name), Values: closes}}, nil
}

func mockFactory(name types.IndicatorType) Factory {
	return func() Indicator {
		return &mockIndicator{name: name}
	}
}

type RegistryTestSuite struct {
	suite.Suite
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (suite *RegistryTestSuite) TestNewIndicatorRegistry() {
	registry := NewIndicatorRegistry()
	suite.NotNil(registry)
	suite.Empty(registry.ListIndicators())
}

func (suite *RegistryTestSuite) TestRegisterIndicator() {
	registry := NewIndicatorRegistry()

	err := registry.RegisterIndicator(types.IndicatorTypeRSI, mockFactory(types.IndicatorTypeRSI))
	suite.NoError(err)

	retrieved, err := registry.GetIndicator(types.IndicatorTypeRSI)
	suite.NoError(err)
	suite.Equal(types.IndicatorTypeRSI, retrieved.Name())
}

func (suite *RegistryTestSuite) TestGetIndicatorReturnsFreshInstances() {
	registry := NewDefaultIndicatorRegistry()

	first, err := registry.GetIndicator(types.IndicatorTypeEMA)
	suite.Require().NoError(err)
	second, err := registry.GetIndicator(types.IndicatorTypeEMA)
	suite.Require().NoError(err)

	suite.Require().NoError(first.Config(types.NewPeriodSignal(types.IndicatorTypeEMA, 5)))
	suite.NotSame(first, second)
	suite.Equal("EMA_20", second.(*EMA).ColumnName())
}

func (suite *RegistryTestSuite) TestRegisterIndicatorDuplicate() {
	registry := NewIndicatorRegistry()

	err := registry.RegisterIndicator(types.IndicatorTypeRSI, mockFactory(types.IndicatorTypeRSI))
	suite.NoError(err)

	// Trying to register another indicator with the same name should fail
	err = registry.RegisterIndicator(types.IndicatorTypeRSI, mockFactory(types.IndicatorTypeRSI))
	suite.Error(err)
	suite.Contains(err.Error(), "already registered")
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorAlreadyExists))
}

func (suite *RegistryTestSuite) TestGetIndicatorNotFound() {
	registry := NewIndicatorRegistry()

	_, err := registry.GetIndicator(types.IndicatorTypeRSI)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorNotFound))
}

func (suite *RegistryTestSuite) TestListAndRemove() {
	registry := NewDefaultIndicatorRegistry()
	suite.Equal([]types.IndicatorType{types.IndicatorTypeEMA, types.IndicatorTypeMACD, types.IndicatorTypeRSI}, registry.ListIndicators())

	suite.NoError(registry.RemoveIndicator(types.IndicatorTypeMACD))
	suite.Len(registry.ListIndicators(), 2)

	err := registry.RemoveIndicator(types.IndicatorTypeMACD)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorNotFound))
}
