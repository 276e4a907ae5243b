package analytics

import (
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

// ComputeBuyAndHold invests the whole balance at the first close and values it at the last close.
func (a *Analyzer) ComputeBuyAndHold(candles []types.Candle, balance float64) (types.BuyAndHoldResult, error) {
	if err := validateBalance(balance); err != nil {
		return types.BuyAndHoldResult{}, err
	}

	if len(candles) == 0 {
		return types.BuyAndHoldResult{}, errors.NewInsufficientDataErrorf(1, 0, "", "buy and hold needs at least one candle")
	}

	first, last := candles[0], candles[0]
	for _, candle := range candles {
		if candle.Timestamp < first.Timestamp {
			first = candle
		}

		if candle.Timestamp > last.Timestamp {
			last = candle
		}
	}

	if first.Close <= 0 {
		return types.BuyAndHoldResult{}, errors.Newf(errors.ErrCodeInvalidParameter, "first close must be positive, got %v", first.Close)
	}

	quantity := balance / first.Close
	finalBalance := quantity * last.Close
	pnl := finalBalance - balance

	days := spanDays(first.Time(), last.Time())
	cagr := compoundAnnualGrowth(balance, finalBalance, days)

	return types.BuyAndHoldResult{
		PnL:    round2(pnl),
		PnLPct: round2(pnl / balance * 100),
		CAGR:   round2(cagr * 100),
	}, nil
}
