package analytics

import (
	"math"
	"sort"

	"github.com/rxtech-lab/argo-quant/internal/types"
)

// ComputePerformanceMetrics summarises the realized performance of a ledger.
//
// Ledgers with fewer than two trades yield the insufficient-data result. The equity
// series is built from SELL trades only, so an open position does not count.
func (a *Analyzer) ComputePerformanceMetrics(trades []types.Trade, balance float64) (types.PerformanceResult, error) {
	if err := validateBalance(balance); err != nil {
		return types.PerformanceResult{}, err
	}

	if len(trades) < 2 {
		return types.InsufficientDataResult(), nil
	}

	ledger := sortedByTime(trades)

	sells := make([]types.Trade, 0, len(ledger)/2)
	for _, trade := range ledger {
		if trade.IsSell() && trade.PnL != nil {
			sells = append(sells, trade)
		}
	}

	if len(sells) == 0 {
		return types.InsufficientDataResult(), nil
	}

	equity := make([]float64, len(sells))
	cumulative := 0.0
	wins := 0
	largestWin := math.Inf(-1)
	largestLoss := math.Inf(1)

	for i, sell := range sells {
		pnl := sell.RealizedPnL()
		cumulative += pnl
		equity[i] = balance + cumulative

		if pnl > 0 {
			wins++
		}

		largestWin = math.Max(largestWin, pnl)
		largestLoss = math.Min(largestLoss, pnl)
	}

	finalEquity := equity[len(equity)-1]
	totalPnL := finalEquity - balance

	days := spanDays(sells[0].Time(), sells[len(sells)-1].Time())
	cagr := compoundAnnualGrowth(balance, finalEquity, days)

	volatility := sampleStdDev(percentChange(equity)) * math.Sqrt(float64(a.options.AnnualizationPeriods))

	sharpe := 0.0
	if volatility != 0 {
		sharpe = (cagr - a.options.RiskFreeRate) / volatility
	}

	maxDrawdown := maxDrawdown(equity)

	calmar := 0.0
	if maxDrawdown != 0 {
		calmar = cagr / (maxDrawdown / balance)
	}

	return types.NewPerformanceResult(types.PerformanceMetrics{
		TotalPnL:            round2(totalPnL),
		TotalPnLPct:         round2(totalPnL / balance * 100),
		CAGR:                round2(cagr * 100),
		SharpeRatio:         round2(sharpe),
		MaxDrawdownPct:      round2(maxDrawdown / balance * 100),
		MaxDrawdown:         round2(maxDrawdown),
		CalmarRatio:         round2(calmar),
		VolatilityPct:       round2(volatility * 100),
		TradeCount:          len(sells),
		WinRate:             round2(float64(wins) / float64(len(sells)) * 100),
		LargestWin:          round2(largestWin),
		LargestLoss:         round2(largestLoss),
		AvgTradeDurationHrs: round2(averageGapHours(ledger)),
	}), nil
}

// maxDrawdown is the largest fall from the running peak of series.
// The peak starts at the first value.
func maxDrawdown(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}

	peak := series[0]
	largest := 0.0

	for _, value := range series {
		if value > peak {
			peak = value
		}

		largest = math.Max(largest, peak-value)
	}

	return largest
}

// averageGapHours is the mean time between consecutive trades of the whole ledger,
// BUY to SELL and SELL to BUY alike.
func averageGapHours(ledger []types.Trade) float64 {
	if len(ledger) < 2 {
		return 0
	}

	first := ledger[0].Time()
	last := ledger[len(ledger)-1].Time()

	return last.Sub(first).Hours() / float64(len(ledger)-1)
}

func sortedByTime(trades []types.Trade) []types.Trade {
	ledger := make([]types.Trade, len(trades))
	copy(ledger, trades)

	sort.SliceStable(ledger, func(i, j int) bool {
		return ledger[i].Timestamp < ledger[j].Timestamp
	})

	return ledger
}
