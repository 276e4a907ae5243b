package types

import "time"

// Candle is one OHLCV bar of a price series.
// Series are ordered oldest first and Timestamp is unique within a series.
type Candle struct {
	// Timestamp is the bar open time in milliseconds since the Unix epoch.
	Timestamp   int64   `json:"timestamp" yaml:"timestamp" csv:"timestamp" parquet:"timestamp"`
	Open        float64 `json:"open" yaml:"open" csv:"open" parquet:"open"`
	High        float64 `json:"high" yaml:"high" csv:"high" parquet:"high"`
	Low         float64 `json:"low" yaml:"low" csv:"low" parquet:"low"`
	Close       float64 `json:"close" yaml:"close" csv:"close" parquet:"close"`
	Volume      float64 `json:"volume" yaml:"volume" csv:"volume" parquet:"volume"`
	Turnover    float64 `json:"turnover" yaml:"turnover" csv:"turnover" parquet:"turnover"`
	QuoteVolume float64 `json:"quote_volume" yaml:"quote_volume" csv:"quote_volume" parquet:"quote_volume"`
	// Complete is false while the bar is still forming.
	Complete bool `json:"complete" yaml:"complete" csv:"complete" parquet:"complete"`
}

// Time returns the candle timestamp as a UTC time.
func (c Candle) Time() time.Time {
	return time.UnixMilli(c.Timestamp).UTC()
}
