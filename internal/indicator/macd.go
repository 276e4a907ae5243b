package indicator

import (
	"fmt"

	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

// MACD represents the Moving Average Convergence Divergence indicator.
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a new MACD indicator with default configuration.
func NewMACD() Indicator {
	return &MACD{
		fastPeriod:   types.DefaultMACDFast,
		slowPeriod:   types.DefaultMACDSlow,
		signalPeriod: types.DefaultMACDSignal,
	}
}

// Name returns the name of the indicator.
func (m *MACD) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Config configures the MACD indicator. Omitted periods fall back to 12/26/9.
func (m *MACD) Config(signal types.Signal) error {
	fastPeriod, slowPeriod, signalPeriod := signal.MACDParams()

	if fastPeriod <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "fastPeriod must be a positive integer, got %d", fastPeriod)
	}

	if slowPeriod <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "slowPeriod must be a positive integer, got %d", slowPeriod)
	}

	if signalPeriod <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "signalPeriod must be a positive integer, got %d", signalPeriod)
	}

	m.fastPeriod = fastPeriod
	m.slowPeriod = slowPeriod
	m.signalPeriod = signalPeriod

	return nil
}

func (m *MACD) suffix() string {
	return fmt.Sprintf("%d_%d_%d", m.fastPeriod, m.slowPeriod, m.signalPeriod)
}

// LineColumnName returns the MACD line column, e.g. MACD_12_26_9.
func (m *MACD) LineColumnName() string {
	return "MACD_" + m.suffix()
}

// SignalColumnName returns the signal line column, e.g. MACDs_12_26_9.
func (m *MACD) SignalColumnName() string {
	return "MACDs_" + m.suffix()
}

// Compute returns the MACD line, EMA(fast) - EMA(slow), and its signal line,
// the EMA of the defined part of the MACD line.
func (m *MACD) Compute(closes []float64) ([]Column, error) {
	fast := exponentialMovingAverage(closes, m.fastPeriod)
	slow := exponentialMovingAverage(closes, m.slowPeriod)

	line := make([]float64, len(closes))
	for i := range closes {
		// NaN propagates through the warm-up of either EMA
		line[i] = fast[i] - slow[i]
	}

	signal := exponentialMovingAverage(line, m.signalPeriod)

	return []Column{
		{Name: m.LineColumnName(), Values: line},
		{Name: m.SignalColumnName(), Values: signal},
	}, nil
}
