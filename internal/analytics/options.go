// Package analytics derives performance metrics, equity curves and a buy-and-hold
// benchmark from a backtest ledger.
package analytics

import (
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

const (
	// DefaultInitialBalance is the account value a run starts with.
	DefaultInitialBalance = 10000.0
	// DefaultRiskFreeRate is the annual risk-free rate used by the Sharpe ratio.
	DefaultRiskFreeRate = 0.03
	// DefaultAnnualizationPeriods scales step-return volatility to a year.
	// It assumes daily steps whatever the bar interval.
	DefaultAnnualizationPeriods = 252
	// daysPerYear is the calendar year used by CAGR.
	daysPerYear = 365.0
)

// Options holds the constants of the metric formulas.
type Options struct {
	RiskFreeRate         float64 `yaml:"risk_free_rate" json:"risk_free_rate" jsonschema:"title=Risk Free Rate,description=Annual risk-free rate used by the Sharpe ratio,default=0.03" validate:"gte=0"`
	AnnualizationPeriods int     `yaml:"annualization_periods" json:"annualization_periods" jsonschema:"title=Annualization Periods,description=Number of return periods per year used to annualize volatility,default=252" validate:"gt=0"`
}

// DefaultOptions returns the standard formula constants.
func DefaultOptions() Options {
	return Options{
		RiskFreeRate:         DefaultRiskFreeRate,
		AnnualizationPeriods: DefaultAnnualizationPeriods,
	}
}

// Analyzer computes analytics with a fixed set of options. It is stateless and
// safe for concurrent use.
type Analyzer struct {
	options Options
}

// NewAnalyzer creates an Analyzer. Non-positive annualization periods fall back to the default.
func NewAnalyzer(options Options) *Analyzer {
	if options.AnnualizationPeriods <= 0 {
		options.AnnualizationPeriods = DefaultAnnualizationPeriods
	}

	return &Analyzer{options: options}
}

// Options returns the options the analyzer was built with.
func (a *Analyzer) Options() Options {
	return a.options
}

func validateBalance(balance float64) error {
	if balance <= 0 {
		return errors.Newf(errors.ErrCodeInvalidBalance, "initial balance must be positive, got %v", balance)
	}

	return nil
}

var defaultAnalyzer = NewAnalyzer(DefaultOptions())

// ComputePerformanceMetrics uses the default options.
func ComputePerformanceMetrics(trades []types.Trade, balance float64) (types.PerformanceResult, error) {
	return defaultAnalyzer.ComputePerformanceMetrics(trades, balance)
}

// ComputeBuyAndHold uses the default options.
func ComputeBuyAndHold(candles []types.Candle, balance float64) (types.BuyAndHoldResult, error) {
	return defaultAnalyzer.ComputeBuyAndHold(candles, balance)
}

// ComputeEquityDrawdown uses the default options.
func ComputeEquityDrawdown(trades []types.Trade, balance float64) (types.EquityResult, error) {
	return defaultAnalyzer.ComputeEquityDrawdown(trades, balance)
}
