package types

import "time"

// TradeType is the side of a ledger entry.
type TradeType string

const (
	TradeTypeBuy  TradeType = "BUY"
	TradeTypeSell TradeType = "SELL"
)

// Trade is one entry of the backtest ledger. The ledger alternates BUY, SELL,
// BUY, ... starting with BUY; every SELL closes the BUY right before it.
type Trade struct {
	Type TradeType `json:"type" yaml:"type"`
	// Timestamp is the bar timestamp in milliseconds.
	Timestamp int64   `json:"timestamp" yaml:"timestamp"`
	Price     float64 `json:"price" yaml:"price"`
	// PnL is set on SELL trades only: exit price minus entry price.
	PnL *float64 `json:"pnl,omitempty" yaml:"pnl,omitempty"`
}

// NewBuyTrade records a position entry.
func NewBuyTrade(timestamp int64, price float64) Trade {
	return Trade{
		Type:      TradeTypeBuy,
		Timestamp: timestamp,
		Price:     price,
		PnL:       nil,
	}
}

// NewSellTrade records a position exit against the given entry price.
func NewSellTrade(timestamp int64, price float64, entryPrice float64) Trade {
	pnl := price - entryPrice

	return Trade{
		Type:      TradeTypeSell,
		Timestamp: timestamp,
		Price:     price,
		PnL:       &pnl,
	}
}

// IsSell reports whether the trade closes a position.
func (t Trade) IsSell() bool {
	return t.Type == TradeTypeSell
}

// RealizedPnL returns the pnl of a SELL trade and 0 otherwise.
func (t Trade) RealizedPnL() float64 {
	if t.PnL == nil {
		return 0
	}

	return *t.PnL
}

// Time returns the trade timestamp as a UTC time.
func (t Trade) Time() time.Time {
	return time.UnixMilli(t.Timestamp).UTC()
}
