package indicator

import (
	"fmt"
	"math"

	"github.com/rxtech-lab/argo-quant/internal/types"
)

// RSI represents the Relative Strength Index indicator.
type RSI struct {
	period int
}

// NewRSI creates a new RSI indicator with default configuration.
func NewRSI() Indicator {
	return &RSI{
		period: 14, // Default period
	}
}

// Name returns the name of the indicator.
func (r *RSI) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Config configures the RSI indicator. The signal must carry a period.
func (r *RSI) Config(signal types.Signal) error {
	period, err := requirePeriod(signal)
	if err != nil {
		return err
	}

	r.period = period

	return nil
}

// ColumnName returns the column the RSI is stored under, e.g. RSI_14.
func (r *RSI) ColumnName() string {
	return fmt.Sprintf("RSI_%d", r.period)
}

// Compute returns Wilder's RSI of closes. The first period bars are NaN, as is
// any bar where both average gain and average loss are zero.
func (r *RSI) Compute(closes []float64) ([]Column, error) {
	return []Column{
		{Name: r.ColumnName(), Values: relativeStrengthIndex(closes, r.period)},
	}, nil
}

// relativeStrengthIndex seeds the average gain and loss with the simple mean of
// the first period close-to-close changes, then applies Wilder's smoothing.
func relativeStrengthIndex(closes []float64, period int) []float64 {
	out := nanSeries(len(closes))
	if period <= 0 || len(closes) <= period {
		return out
	}

	avgGain := 0.0
	avgLoss := 0.0

	// First average
	for i := 1; i <= period; i++ {
		gain, loss := priceChange(closes[i-1], closes[i])
		avgGain += gain
		avgLoss += loss
	}

	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiFromAverages(avgGain, avgLoss)

	// Subsequent averages using Wilder's smoothing method
	for i := period + 1; i < len(closes); i++ {
		gain, loss := priceChange(closes[i-1], closes[i])
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiFromAverages(avgGain, avgLoss)
	}

	return out
}

func priceChange(previous, current float64) (gain, loss float64) {
	change := current - previous
	if change > 0 {
		return change, 0
	}

	return 0, -change
}

// rsiFromAverages is NaN when both averages are zero, so a flat stretch reads
// like a warm-up bar instead of an overbought one.
func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgGain == 0 && avgLoss == 0 {
		return math.NaN()
	}

	if avgLoss == 0 {
		return 100 // Perfect uptrend
	}

	rs := avgGain / avgLoss

	return 100 - (100 / (1 + rs))
}
