package analytics

import (
	"math"

	"github.com/rxtech-lab/argo-quant/internal/types"
)

// ComputeEquityDrawdown replays the ledger and emits one equity point and one
// drawdown point per trade. Equity moves only on SELL trades. The running peak
// starts at the initial balance.
func (a *Analyzer) ComputeEquityDrawdown(trades []types.Trade, balance float64) (types.EquityResult, error) {
	if err := validateBalance(balance); err != nil {
		return types.EquityResult{}, err
	}

	if len(trades) == 0 {
		return types.EmptyLedgerResult(), nil
	}

	ledger := sortedByTime(trades)

	equityCurve := make([]types.EquityPoint, len(ledger))
	drawdownCurve := make([]types.DrawdownPoint, len(ledger))

	equity := balance
	peak := balance

	for i, trade := range ledger {
		if trade.IsSell() {
			equity += trade.RealizedPnL()
		}

		peak = math.Max(peak, equity)

		equityCurve[i] = types.EquityPoint{Timestamp: trade.Time(), Equity: round2(equity)}
		drawdownCurve[i] = types.DrawdownPoint{Timestamp: trade.Time(), Drawdown: round2(peak - equity)}
	}

	return types.EquityResult{
		EquityCurve:   equityCurve,
		DrawdownCurve: drawdownCurve,
		Message:       "",
	}, nil
}
