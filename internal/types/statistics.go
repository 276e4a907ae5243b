package types

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Informational messages returned in place of analytics that cannot be computed.
const (
	InsufficientTradesMessage = "Not enough trades to calculate performance."
	EmptyLedgerMessage        = "No trades to compute equity curve."
)

// PerformanceMetrics summarises realized performance of a ledger.
// Every value is rounded to two decimals.
type PerformanceMetrics struct {
	TotalPnL    float64 `json:"total_pnl" yaml:"total_pnl"`
	TotalPnLPct float64 `json:"total_pnl_pct" yaml:"total_pnl_pct"`
	// CAGR is the compound annual growth rate in percent.
	CAGR           float64 `json:"cagr" yaml:"cagr"`
	SharpeRatio    float64 `json:"sharpe_ratio" yaml:"sharpe_ratio"`
	MaxDrawdownPct float64 `json:"max_drawdown_pct" yaml:"max_drawdown_pct"`
	MaxDrawdown    float64 `json:"max_drawdown" yaml:"max_drawdown"`
	CalmarRatio    float64 `json:"calmar_ratio" yaml:"calmar_ratio"`
	// VolatilityPct is the annualized standard deviation of step returns in percent.
	VolatilityPct float64 `json:"volatility_pct" yaml:"volatility_pct"`
	// TradeCount counts SELL trades.
	TradeCount int `json:"trade_count" yaml:"trade_count"`
	// WinRate is the percentage of SELL trades with positive pnl.
	WinRate             float64 `json:"win_rate" yaml:"win_rate"`
	LargestWin          float64 `json:"largest_win" yaml:"largest_win"`
	LargestLoss         float64 `json:"largest_loss" yaml:"largest_loss"`
	AvgTradeDurationHrs float64 `json:"avg_trade_duration_hrs" yaml:"avg_trade_duration_hrs"`
}

// notice is the wire shape of an informational result.
type notice struct {
	Error string `json:"error" yaml:"error"`
}

// PerformanceResult holds either metrics or an insufficient-data notice.
// It is a normal result, never an error.
type PerformanceResult struct {
	Metrics *PerformanceMetrics
	Message string
}

// NewPerformanceResult wraps computed metrics.
func NewPerformanceResult(metrics PerformanceMetrics) PerformanceResult {
	return PerformanceResult{Metrics: &metrics, Message: ""}
}

// InsufficientDataResult is returned for ledgers with fewer than two trades.
func InsufficientDataResult() PerformanceResult {
	return PerformanceResult{Metrics: nil, Message: InsufficientTradesMessage}
}

// IsInsufficientData reports whether the result carries no metrics.
func (r PerformanceResult) IsInsufficientData() bool {
	return r.Metrics == nil
}

// MarshalJSON implements json.Marshaler.
func (r PerformanceResult) MarshalJSON() ([]byte, error) {
	if r.Metrics == nil {
		return json.Marshal(notice{Error: r.Message})
	}

	return json.Marshal(r.Metrics)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *PerformanceResult) UnmarshalJSON(data []byte) error {
	var n notice
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}

	if n.Error != "" {
		*r = PerformanceResult{Metrics: nil, Message: n.Error}

		return nil
	}

	var metrics PerformanceMetrics
	if err := json.Unmarshal(data, &metrics); err != nil {
		return err
	}

	*r = NewPerformanceResult(metrics)

	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (r PerformanceResult) MarshalYAML() (any, error) {
	if r.Metrics == nil {
		return notice{Error: r.Message}, nil
	}

	return r.Metrics, nil
}

// BuyAndHoldResult is the benchmark of buying at the first close and holding to the last.
type BuyAndHoldResult struct {
	PnL    float64 `json:"buy_and_hold_pnl" yaml:"buy_and_hold_pnl"`
	PnLPct float64 `json:"buy_and_hold_pnl_pct" yaml:"buy_and_hold_pnl_pct"`
	// CAGR is in percent.
	CAGR float64 `json:"buy_and_hold_cagr" yaml:"buy_and_hold_cagr"`
}

// EquityPoint is the account value after a ledger entry.
type EquityPoint struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Equity    float64   `json:"equity" yaml:"equity"`
}

// DrawdownPoint is the distance from the running equity peak after a ledger entry.
type DrawdownPoint struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Drawdown  float64   `json:"drawdown" yaml:"drawdown"`
}

// EquityResult holds equity and drawdown curves aligned with the ledger,
// or an empty-ledger notice.
type EquityResult struct {
	EquityCurve   []EquityPoint   `json:"equity_curve" yaml:"equity_curve"`
	DrawdownCurve []DrawdownPoint `json:"drawdown_curve" yaml:"drawdown_curve"`
	Message       string          `json:"-" yaml:"-"`
}

// EmptyLedgerResult is returned when there are no trades to replay.
func EmptyLedgerResult() EquityResult {
	return EquityResult{EquityCurve: nil, DrawdownCurve: nil, Message: EmptyLedgerMessage}
}

// IsEmptyLedger reports whether the result carries no curves.
func (r EquityResult) IsEmptyLedger() bool {
	return r.Message != ""
}

type equityCurves struct {
	EquityCurve   []EquityPoint   `json:"equity_curve" yaml:"equity_curve"`
	DrawdownCurve []DrawdownPoint `json:"drawdown_curve" yaml:"drawdown_curve"`
}

// MarshalJSON implements json.Marshaler.
func (r EquityResult) MarshalJSON() ([]byte, error) {
	if r.IsEmptyLedger() {
		return json.Marshal(notice{Error: r.Message})
	}

	return json.Marshal(equityCurves{EquityCurve: r.EquityCurve, DrawdownCurve: r.DrawdownCurve})
}

// MarshalYAML implements yaml.Marshaler.
func (r EquityResult) MarshalYAML() (any, error) {
	if r.IsEmptyLedger() {
		return notice{Error: r.Message}, nil
	}

	return equityCurves{EquityCurve: r.EquityCurve, DrawdownCurve: r.DrawdownCurve}, nil
}

// BacktestReport is the outcome of one strategy run over one series.
type BacktestReport struct {
	// RunID identifies this run in logs.
	RunID       string            `json:"run_id" yaml:"run_id"`
	Symbol      string            `json:"symbol" yaml:"symbol"`
	Interval    string            `json:"interval" yaml:"interval"`
	TradeCount  int               `json:"trade_count" yaml:"trade_count"`
	Trades      []Trade           `json:"trades" yaml:"trades"`
	Performance PerformanceResult `json:"performance" yaml:"performance"`
	Benchmark   BuyAndHoldResult  `json:"benchmark" yaml:"benchmark"`
}

// WriteBacktestReports writes the reports as a YAML list.
func WriteBacktestReports(path string, reports []BacktestReport) error {
	data, err := yaml.Marshal(reports)
	if err != nil {
		return fmt.Errorf("failed to marshal backtest reports to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write backtest reports to file: %w", err)
	}

	return nil
}
