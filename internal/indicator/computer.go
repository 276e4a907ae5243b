package indicator

import (
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"go.uber.org/zap"
)

// ComputerOptions tunes how signals are turned into columns.
type ComputerOptions struct {
	// SkipUnknownSignals drops signals whose kind is not registered instead of failing.
	SkipUnknownSignals bool
}

// Computer annotates a candle series with the indicator columns a strategy asks for.
// It holds no per-series state and is safe for concurrent use.
type Computer struct {
	registry IndicatorRegistry
	options  ComputerOptions
	logger   *logger.Logger
}

// NewComputer creates a Computer backed by the given registry.
// A nil registry means the default EMA/RSI/MACD registry.
func NewComputer(registry IndicatorRegistry, options ComputerOptions, log *logger.Logger) *Computer {
	if registry == nil {
		registry = NewDefaultIndicatorRegistry()
	}

	return &Computer{
		registry: registry,
		options:  options,
		logger:   logger.OrNop(log),
	}
}

// Annotate computes every signal over the closes of candles and returns one
// immutable record per bar. Columns are added in signal order, so a later signal
// producing an existing column name replaces it.
func (c *Computer) Annotate(candles []types.Candle, signals []types.Signal) ([]types.Record, error) {
	if err := checkOrdered(candles); err != nil {
		return nil, err
	}

	closes := make([]float64, len(candles))
	for i, candle := range candles {
		closes[i] = candle.Close
	}

	columns := make(map[string][]float64)
	order := make([]string, 0, len(signals))

	for i, signal := range signals {
		computed, err := c.computeSignal(signal, closes)
		if err != nil {
			return nil, errors.Wrapf(errors.GetCode(err), err, "signals[%d]", i)
		}

		for _, column := range computed {
			if _, exists := columns[column.Name]; exists {
				c.logger.Debug("Indicator column overwritten",
					zap.String("column", column.Name),
					zap.Int("signal_index", i),
				)
			} else {
				order = append(order, column.Name)
			}

			columns[column.Name] = column.Values
		}
	}

	records := make([]types.Record, len(candles))
	for i, candle := range candles {
		values := make(map[string]float64, len(order))
		for _, name := range order {
			values[name] = columns[name][i]
		}

		records[i] = types.NewRecord(i, candle, values)
	}

	c.logger.Debug("Annotated series",
		zap.Int("bars", len(candles)),
		zap.Strings("columns", order),
	)

	return records, nil
}

func (c *Computer) computeSignal(signal types.Signal, closes []float64) ([]Column, error) {
	indicator, err := c.registry.GetIndicator(signal.Type)
	if err != nil {
		if !errors.HasCode(err, errors.ErrCodeIndicatorNotFound) {
			return nil, err
		}

		if c.options.SkipUnknownSignals {
			c.logger.Warn("Skipping unsupported signal", zap.String("type", string(signal.Type)))

			return nil, nil
		}

		return nil, errors.Newf(errors.ErrCodeUnsupportedSignal, "unsupported signal type %q", signal.Type)
	}

	if err := indicator.Config(signal); err != nil {
		return nil, err
	}

	columns, err := indicator.Compute(closes)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIndicatorCalculation, "failed to compute "+string(signal.Type), err)
	}

	return columns, nil
}

func checkOrdered(candles []types.Candle) error {
	for i := 1; i < len(candles); i++ {
		if candles[i].Timestamp <= candles[i-1].Timestamp {
			return errors.Newf(errors.ErrCodeUnorderedSeries,
				"candle timestamps must be strictly increasing: bar %d (%d) follows %d",
				i, candles[i].Timestamp, candles[i-1].Timestamp)
		}
	}

	return nil
}
