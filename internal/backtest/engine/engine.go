package engine

import (
	"context"

	"github.com/rxtech-lab/argo-quant/internal/types"
)

// Lifecycle callback types for a backtest run.
// All callbacks with error return can abort execution if they return an error.

// OnRunStartCallback is called once the series is annotated, before the first bar is processed.
// runID is a unique identifier for this run.
type OnRunStartCallback func(runID string, totalBars int) error

// OnProcessDataCallback is called after each bar is processed.
type OnProcessDataCallback func(current int, total int) error

// OnRunEndCallback is called when a run completes successfully.
type OnRunEndCallback func(runID string, trades []types.Trade)

// LifecycleCallbacks holds all lifecycle callback functions for the backtest engine.
// All fields are pointers - nil means no callback will be invoked.
type LifecycleCallbacks struct {
	OnRunStart    *OnRunStartCallback
	OnProcessData *OnProcessDataCallback
	OnRunEnd      *OnRunEndCallback
}

// Result is the outcome of a single run.
type Result struct {
	RunID string
	// Trades is the ledger. It may end with an open BUY.
	Trades []types.Trade
}

type Engine interface {
	// Run annotates candles with the strategy signals and replays the strategy over them.
	// Any condition error aborts the run and no partial ledger is returned.
	// The context can be used to cancel the run between bars.
	Run(ctx context.Context, candles []types.Candle, strategy types.Strategy, callbacks LifecycleCallbacks) (Result, error)
	// GetConfigSchema returns the schema of the engine configuration
	GetConfigSchema() (string, error)
}
