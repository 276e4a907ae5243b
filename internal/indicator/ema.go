package indicator

import (
	"fmt"
	"math"

	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

// EMA indicator implements Exponential Moving Average calculation.
type EMA struct {
	period int
}

// NewEMA creates a new EMA indicator with default configuration.
func NewEMA() Indicator {
	return &EMA{
		period: 20, // Default period
	}
}

// Name returns the name of the indicator.
func (e *EMA) Name() types.IndicatorType {
	return types.IndicatorTypeEMA
}

// Config configures the EMA indicator. The signal must carry a period.
func (e *EMA) Config(signal types.Signal) error {
	period, err := requirePeriod(signal)
	if err != nil {
		return err
	}

	e.period = period

	return nil
}

// ColumnName returns the column the EMA is stored under, e.g. EMA_20.
func (e *EMA) ColumnName() string {
	return fmt.Sprintf("EMA_%d", e.period)
}

// Compute returns the EMA of closes. The first period-1 bars are NaN.
func (e *EMA) Compute(closes []float64) ([]Column, error) {
	return []Column{
		{Name: e.ColumnName(), Values: exponentialMovingAverage(closes, e.period)},
	}, nil
}

// exponentialMovingAverage computes the EMA of values with alpha = 2/(period+1),
// seeded by the simple average of the first period defined values.
// Leading NaN values are skipped, so the EMA of a warming-up series is defined
// period-1 bars after its first defined value.
func exponentialMovingAverage(values []float64, period int) []float64 {
	out := nanSeries(len(values))

	start := 0
	for start < len(values) && math.IsNaN(values[start]) {
		start++
	}

	if period <= 0 || len(values)-start < period {
		return out
	}

	seedEnd := start + period - 1
	ema := calculateSimpleMovingAverage(values[start : seedEnd+1])
	out[seedEnd] = ema

	// Use alpha = 2/(span+1) to match pandas ewm implementation with adjust=False
	alpha := 2.0 / float64(period+1)

	for i := seedEnd + 1; i < len(values); i++ {
		ema = (values[i] * alpha) + (ema * (1 - alpha))
		out[i] = ema
	}

	return out
}

// calculateSimpleMovingAverage calculates the mean of the given values.
func calculateSimpleMovingAverage(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

func nanSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}

	return out
}

// requirePeriod reads and validates the period of an EMA or RSI signal.
func requirePeriod(signal types.Signal) (int, error) {
	if signal.Period.IsNone() {
		return 0, errors.Newf(errors.ErrCodeMissingParameter, "%s signal requires a period", signal.Type)
	}

	period := signal.Period.Unwrap()
	if period <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidPeriod, "period must be a positive integer, got %d", period)
	}

	return period, nil
}
