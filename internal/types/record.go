package types

import (
	"math"
	"sort"
)

// Base column names every Record carries.
const (
	ColumnTimestamp   = "timestamp"
	ColumnOpen        = "open"
	ColumnHigh        = "high"
	ColumnLow         = "low"
	ColumnClose       = "close"
	ColumnVolume      = "volume"
	ColumnTurnover    = "turnover"
	ColumnQuoteVolume = "quote_volume"
	ColumnComplete    = "complete"
)

// Record is an immutable view of one bar: the candle columns plus the
// indicator columns computed for the series. Indicator values are NaN while
// the indicator is still warming up.
type Record struct {
	index  int
	candle Candle
	values map[string]float64
}

// NewRecord builds the record of bar index from its candle and indicator values.
// The indicator map is copied.
func NewRecord(index int, candle Candle, indicators map[string]float64) Record {
	values := make(map[string]float64, len(indicators)+9)

	complete := 0.0
	if candle.Complete {
		complete = 1
	}

	values[ColumnTimestamp] = float64(candle.Timestamp)
	values[ColumnOpen] = candle.Open
	values[ColumnHigh] = candle.High
	values[ColumnLow] = candle.Low
	values[ColumnClose] = candle.Close
	values[ColumnVolume] = candle.Volume
	values[ColumnTurnover] = candle.Turnover
	values[ColumnQuoteVolume] = candle.QuoteVolume
	values[ColumnComplete] = complete

	for name, value := range indicators {
		values[name] = value
	}

	return Record{index: index, candle: candle, values: values}
}

// Index is the bar position in the series.
func (r Record) Index() int {
	return r.index
}

// Candle returns the underlying candle.
func (r Record) Candle() Candle {
	return r.candle
}

// Timestamp is the bar timestamp in milliseconds.
func (r Record) Timestamp() int64 {
	return r.candle.Timestamp
}

// Close is the bar close price.
func (r Record) Close() float64 {
	return r.candle.Close
}

// Lookup returns the named column. ok is false when the record has no such column.
func (r Record) Lookup(name string) (value float64, ok bool) {
	value, ok = r.values[name]

	return value, ok
}

// IsDefined reports whether the column exists and is past its warm-up.
func (r Record) IsDefined(name string) bool {
	value, ok := r.values[name]

	return ok && !math.IsNaN(value)
}

// Columns returns the column names in sorted order.
func (r Record) Columns() []string {
	names := make([]string, 0, len(r.values))
	for name := range r.values {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
