package engine

import (
	"github.com/rxtech-lab/argo-quant/internal/types"
)

// PositionState is the state of the backtest state machine.
type PositionState string

const (
	PositionStateFlat PositionState = "FLAT"
	PositionStateLong PositionState = "LONG"
)

// BacktestState is the FLAT/LONG state machine of a single run.
// It is not safe for concurrent use; every run owns its own state.
type BacktestState struct {
	position   PositionState
	entryPrice float64
	trades     []types.Trade
}

// NewBacktestState creates a flat state with an empty ledger.
func NewBacktestState() *BacktestState {
	return &BacktestState{
		position:   PositionStateFlat,
		entryPrice: 0,
		trades:     nil,
	}
}

// Position returns the current position state.
func (b *BacktestState) Position() PositionState {
	return b.position
}

// Step advances the machine by one bar given the entry and exit decisions for that bar.
// Entry only applies while FLAT and exit only while LONG, so at most one trade is emitted.
func (b *BacktestState) Step(record types.Record, entry bool, exit bool) (types.Trade, bool) {
	switch b.position {
	case PositionStateFlat:
		if !entry {
			return types.Trade{}, false
		}

		trade := types.NewBuyTrade(record.Timestamp(), record.Close())
		b.position = PositionStateLong
		b.entryPrice = record.Close()
		b.trades = append(b.trades, trade)

		return trade, true
	case PositionStateLong:
		if !exit {
			return types.Trade{}, false
		}

		trade := types.NewSellTrade(record.Timestamp(), record.Close(), b.entryPrice)
		b.position = PositionStateFlat
		b.entryPrice = 0
		b.trades = append(b.trades, trade)

		return trade, true
	}

	return types.Trade{}, false
}

// Trades returns a copy of the ledger.
func (b *BacktestState) Trades() []types.Trade {
	trades := make([]types.Trade, len(b.trades))
	copy(trades, b.trades)

	return trades
}
