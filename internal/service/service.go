// Package service runs strategy backtests against market data and derives their analytics.
package service

import (
	"context"

	"github.com/rxtech-lab/argo-quant/internal/analytics"
	"github.com/rxtech-lab/argo-quant/internal/backtest/engine"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/marketdata"
	"github.com/rxtech-lab/argo-quant/pkg/strategy"
	"go.uber.org/zap"
)

// Options configures a BacktestService.
type Options struct {
	InitialBalance float64
	// DefaultLimit is the number of bars fetched when a request does not set one.
	DefaultLimit int
}

// Request identifies the series and the strategy of a backtest.
type Request struct {
	Symbol   string
	Interval marketdata.Interval
	Limit    int
	Strategy types.Strategy
}

// BacktestService fetches a series, replays a strategy over it and computes
// the analytics of the resulting ledger. Each call is independent.
type BacktestService struct {
	source   marketdata.Source
	engine   engine.Engine
	analyzer *analytics.Analyzer
	options  Options
	log      *logger.Logger
}

// NewBacktestService creates a service. A nil analyzer uses the default formula constants.
func NewBacktestService(source marketdata.Source, eng engine.Engine, analyzer *analytics.Analyzer, options Options, log *logger.Logger) *BacktestService {
	if analyzer == nil {
		analyzer = analytics.NewAnalyzer(analytics.DefaultOptions())
	}

	if options.InitialBalance == 0 {
		options.InitialBalance = analytics.DefaultInitialBalance
	}

	if options.DefaultLimit <= 0 {
		options.DefaultLimit = marketdata.DefaultLimit
	}

	return &BacktestService{
		source:   source,
		engine:   eng,
		analyzer: analyzer,
		options:  options,
		log:      logger.OrNop(log),
	}
}

// OHLCV returns the candles of symbol at interval.
func (s *BacktestService) OHLCV(ctx context.Context, symbol string, interval marketdata.Interval, limit int) ([]types.Candle, error) {
	if limit <= 0 {
		limit = s.options.DefaultLimit
	}

	return s.source.Fetch(ctx, symbol, interval, limit)
}

// Backtest fetches the series of the request and reports the strategy ledger,
// its performance and the buy-and-hold benchmark.
func (s *BacktestService) Backtest(ctx context.Context, req Request) (types.BacktestReport, error) {
	if err := strategy.Validate(req.Strategy); err != nil {
		return types.BacktestReport{}, err
	}

	candles, err := s.OHLCV(ctx, req.Symbol, req.Interval, req.Limit)
	if err != nil {
		return types.BacktestReport{}, err
	}

	return s.Evaluate(ctx, req.Symbol, string(req.Interval), candles, req.Strategy, engine.LifecycleCallbacks{})
}

// Evaluate reports a strategy run over candles that are already loaded.
func (s *BacktestService) Evaluate(
	ctx context.Context,
	symbol string,
	interval string,
	candles []types.Candle,
	strat types.Strategy,
	callbacks engine.LifecycleCallbacks,
) (types.BacktestReport, error) {
	result, err := s.engine.Run(ctx, candles, strat, callbacks)
	if err != nil {
		s.log.Error("Backtest failed",
			zap.String("symbol", symbol),
			zap.String("interval", interval),
			zap.Error(err),
		)

		return types.BacktestReport{}, err
	}

	performance, err := s.analyzer.ComputePerformanceMetrics(result.Trades, s.options.InitialBalance)
	if err != nil {
		return types.BacktestReport{}, err
	}

	benchmark, err := s.analyzer.ComputeBuyAndHold(candles, s.options.InitialBalance)
	if err != nil {
		return types.BacktestReport{}, err
	}

	s.log.Info("Backtest completed",
		zap.String("run_id", result.RunID),
		zap.String("symbol", symbol),
		zap.String("interval", interval),
		zap.Int("bars", len(candles)),
		zap.Int("trades", len(result.Trades)),
	)

	return types.BacktestReport{
		RunID:       result.RunID,
		Symbol:      symbol,
		Interval:    interval,
		TradeCount:  len(result.Trades),
		Trades:      result.Trades,
		Performance: performance,
		Benchmark:   benchmark,
	}, nil
}

// EquityCurve fetches the series of the request and replays the strategy
// ledger into equity and drawdown curves.
func (s *BacktestService) EquityCurve(ctx context.Context, req Request) (types.EquityResult, error) {
	if err := strategy.Validate(req.Strategy); err != nil {
		return types.EquityResult{}, err
	}

	candles, err := s.OHLCV(ctx, req.Symbol, req.Interval, req.Limit)
	if err != nil {
		return types.EquityResult{}, err
	}

	result, err := s.engine.Run(ctx, candles, req.Strategy, engine.LifecycleCallbacks{})
	if err != nil {
		return types.EquityResult{}, err
	}

	return s.analyzer.ComputeEquityDrawdown(result.Trades, s.options.InitialBalance)
}

// StrategySchema returns the JSON schema of strategy documents.
func (s *BacktestService) StrategySchema() (string, error) {
	return strategy.Schema()
}
