package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-quant/internal/backtest/engine"
	"github.com/rxtech-lab/argo-quant/internal/condition"
	"github.com/rxtech-lab/argo-quant/internal/indicator"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"go.uber.org/zap"
)

type BacktestEngineV1 struct {
	config    BacktestEngineV1Config
	log       *logger.Logger
	computer  *indicator.Computer
	evaluator *condition.Evaluator
}

// NewBacktestEngineV1 creates an engine using the default indicator registry.
func NewBacktestEngineV1(config BacktestEngineV1Config, log *logger.Logger) engine.Engine {
	return NewBacktestEngineV1WithRegistry(config, indicator.NewDefaultIndicatorRegistry(), log)
}

// NewBacktestEngineV1WithRegistry creates an engine computing signals from the given registry.
func NewBacktestEngineV1WithRegistry(config BacktestEngineV1Config, registry indicator.IndicatorRegistry, log *logger.Logger) engine.Engine {
	log = logger.OrNop(log)

	return &BacktestEngineV1{
		config: config,
		log:    log,
		computer: indicator.NewComputer(registry, indicator.ComputerOptions{
			SkipUnknownSignals: config.SkipUnknownSignals,
		}, log),
		evaluator: condition.NewEvaluator(condition.Options{
			StrictWarmup: config.StrictWarmup,
		}),
	}
}

// Run implements engine.Engine.
func (b *BacktestEngineV1) Run(ctx context.Context, candles []types.Candle, strategy types.Strategy, callbacks engine.LifecycleCallbacks) (engine.Result, error) {
	runID := uuid.New().String()

	records, err := b.computer.Annotate(candles, strategy.Signals)
	if err != nil {
		b.log.Error("Failed to compute signals",
			zap.String("run_id", runID),
			zap.Error(err),
		)

		return engine.Result{}, err
	}

	total := len(records)

	b.log.Debug("Running strategy",
		zap.String("run_id", runID),
		zap.Int("bars", total),
		zap.Int("entry_conditions", len(strategy.EntryConditions)),
		zap.Int("exit_conditions", len(strategy.ExitConditions)),
	)

	if callbacks.OnRunStart != nil {
		if err := (*callbacks.OnRunStart)(runID, total); err != nil {
			return engine.Result{}, errors.Wrap(errors.ErrCodeCallbackFailed, "run start callback failed", err)
		}
	}

	state := NewBacktestState()

	for i, record := range records {
		if err := ctx.Err(); err != nil {
			return engine.Result{}, errors.Wrapf(errors.ErrCodeBacktestCancelled, err, "backtest cancelled at bar %d of %d", i, total)
		}

		if err := b.processRecord(state, record, strategy); err != nil {
			b.log.Error("Backtest aborted",
				zap.String("run_id", runID),
				zap.Int("bar", record.Index()),
				zap.Int64("timestamp", record.Timestamp()),
				zap.Error(err),
			)

			return engine.Result{}, err
		}

		if callbacks.OnProcessData != nil {
			if err := (*callbacks.OnProcessData)(i+1, total); err != nil {
				return engine.Result{}, errors.Wrap(errors.ErrCodeCallbackFailed, "process data callback failed", err)
			}
		}
	}

	trades := state.Trades()

	b.log.Debug("Backtest finished",
		zap.String("run_id", runID),
		zap.Int("trades", len(trades)),
		zap.String("final_position", string(state.Position())),
	)

	if callbacks.OnRunEnd != nil {
		(*callbacks.OnRunEnd)(runID, trades)
	}

	return engine.Result{RunID: runID, Trades: trades}, nil
}

// processRecord evaluates both condition lists on every bar and advances the state.
func (b *BacktestEngineV1) processRecord(state *BacktestState, record types.Record, strategy types.Strategy) error {
	entry, err := b.evaluator.EvaluateAll(record, strategy.EntryConditions, types.EntryConditionsList)
	if err != nil {
		return errors.Wrap(errors.ErrCodeBacktestAborted, "invalid condition evaluation", err)
	}

	exit, err := b.evaluator.EvaluateAll(record, strategy.ExitConditions, types.ExitConditionsList)
	if err != nil {
		return errors.Wrap(errors.ErrCodeBacktestAborted, "invalid condition evaluation", err)
	}

	if trade, ok := state.Step(record, entry, exit); ok {
		b.log.Debug("Position changed",
			zap.String("type", string(trade.Type)),
			zap.Int64("timestamp", trade.Timestamp),
			zap.Float64("price", trade.Price),
			zap.Float64("pnl", trade.RealizedPnL()),
		)
	}

	return nil
}

// GetConfigSchema implements engine.Engine.
func (b *BacktestEngineV1) GetConfigSchema() (string, error) {
	config := b.config

	schema, err := config.GenerateSchemaJSON()
	if err != nil {
		return "", fmt.Errorf("failed to generate schema: %w", err)
	}

	return schema, nil
}
