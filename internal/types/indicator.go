package types

// IndicatorType names an indicator a strategy can request.
type IndicatorType string

const (
	IndicatorTypeEMA  IndicatorType = "EMA"
	IndicatorTypeRSI  IndicatorType = "RSI"
	IndicatorTypeMACD IndicatorType = "MACD"
)

// AllIndicatorTypes lists the indicator types the computer knows about.
var AllIndicatorTypes = []IndicatorType{
	IndicatorTypeEMA,
	IndicatorTypeRSI,
	IndicatorTypeMACD,
}

// IsKnown reports whether t is one of AllIndicatorTypes.
func (t IndicatorType) IsKnown() bool {
	for _, known := range AllIndicatorTypes {
		if t == known {
			return true
		}
	}

	return false
}

// Default MACD parameters, used when a MACD signal omits them.
const (
	DefaultMACDFast   = 12
	DefaultMACDSlow   = 26
	DefaultMACDSignal = 9
)
