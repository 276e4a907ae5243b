package analytics

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// round2 rounds half away from zero to two decimals. NaN becomes 0 and infinities
// are clamped to the largest finite values so results always encode.
func round2(value float64) float64 {
	switch {
	case math.IsNaN(value):
		return 0
	case math.IsInf(value, 1):
		value = math.MaxFloat64
	case math.IsInf(value, -1):
		value = -math.MaxFloat64
	}

	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

// sampleStdDev is the standard deviation with one degree of freedom removed.
// It is 0 for fewer than two values.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}

	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += math.Pow(v-mean, 2)
	}

	variance /= float64(len(values) - 1)

	return math.Sqrt(variance)
}

// spanDays is the number of whole days between first and last, plus one.
func spanDays(first, last time.Time) int {
	return int(last.Sub(first)/(24*time.Hour)) + 1
}

// compoundAnnualGrowth is (final/initial)^(365/days) - 1 as a fraction.
// A non-positive final value is a total loss.
func compoundAnnualGrowth(initial, final float64, days int) float64 {
	ratio := final / initial
	if ratio <= 0 {
		return -1
	}

	return math.Pow(ratio, daysPerYear/float64(days)) - 1
}

// percentChange returns the step returns of series with the first return forced to 0.
func percentChange(series []float64) []float64 {
	returns := make([]float64, len(series))
	for i := 1; i < len(series); i++ {
		returns[i] = (series[i] - series[i-1]) / series[i-1]
	}

	return returns
}
