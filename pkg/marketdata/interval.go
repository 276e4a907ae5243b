package marketdata

import (
	"fmt"
	"strings"
	"time"

	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

// Interval is a bar size in OKX notation: lower-case minutes, upper-case hours and longer.
type Interval string

const (
	IntervalOneMinute      Interval = "1m"
	IntervalThreeMinutes   Interval = "3m"
	IntervalFiveMinutes    Interval = "5m"
	IntervalFifteenMinutes Interval = "15m"
	IntervalThirtyMinutes  Interval = "30m"
	IntervalOneHour        Interval = "1H"
	IntervalTwoHours       Interval = "2H"
	IntervalFourHours      Interval = "4H"
	IntervalSixHours       Interval = "6H"
	IntervalTwelveHours    Interval = "12H"
	IntervalOneDay         Interval = "1D"
	IntervalThreeDays      Interval = "3D"
	IntervalOneWeek        Interval = "1W"
	IntervalOneMonth       Interval = "1M"
)

// SupportedIntervals lists every interval in ascending bar size.
var SupportedIntervals = []Interval{
	IntervalOneMinute,
	IntervalThreeMinutes,
	IntervalFiveMinutes,
	IntervalFifteenMinutes,
	IntervalThirtyMinutes,
	IntervalOneHour,
	IntervalTwoHours,
	IntervalFourHours,
	IntervalSixHours,
	IntervalTwelveHours,
	IntervalOneDay,
	IntervalThreeDays,
	IntervalOneWeek,
	IntervalOneMonth,
}

// ParseInterval accepts OKX notation and the lower-case hour, day and week
// forms used by Binance ("1h", "1d", "1w"). "1m" is a minute, "1M" a month.
func ParseInterval(s string) (Interval, error) {
	s = strings.TrimSpace(s)

	candidate := Interval(s)
	if len(s) > 1 {
		unit := s[len(s)-1]
		switch unit {
		case 'h', 'd', 'w':
			candidate = Interval(s[:len(s)-1] + strings.ToUpper(string(unit)))
		}
	}

	for _, interval := range SupportedIntervals {
		if interval == candidate {
			return interval, nil
		}
	}

	return "", errors.Newf(errors.ErrCodeInvalidInterval, "unsupported interval %q", s)
}

// String implements fmt.Stringer.
func (i Interval) String() string {
	return string(i)
}

// Multiplier is the number of base units in one bar.
func (i Interval) Multiplier() int {
	switch i {
	case IntervalThreeMinutes, IntervalThreeDays:
		return 3
	case IntervalFiveMinutes:
		return 5
	case IntervalFifteenMinutes:
		return 15
	case IntervalThirtyMinutes:
		return 30
	case IntervalTwoHours:
		return 2
	case IntervalFourHours:
		return 4
	case IntervalSixHours:
		return 6
	case IntervalTwelveHours:
		return 12
	default:
		return 1
	}
}

// Timespan returns the Polygon base unit of the interval.
func (i Interval) Timespan() models.Timespan {
	switch i {
	case IntervalOneMinute, IntervalThreeMinutes, IntervalFiveMinutes, IntervalFifteenMinutes, IntervalThirtyMinutes:
		return models.Minute
	case IntervalOneHour, IntervalTwoHours, IntervalFourHours, IntervalSixHours, IntervalTwelveHours:
		return models.Hour
	case IntervalOneDay, IntervalThreeDays:
		return models.Day
	case IntervalOneWeek:
		return models.Week
	case IntervalOneMonth:
		return models.Month
	default:
		return models.Day
	}
}

// BinanceInterval returns the Binance kline interval string.
// Ref: https://binance-docs.github.io/apidocs/spot/en/#kline-candlestick-data
func (i Interval) BinanceInterval() string {
	switch i.Timespan() {
	case models.Minute:
		return fmt.Sprintf("%dm", i.Multiplier())
	case models.Hour:
		return fmt.Sprintf("%dh", i.Multiplier())
	case models.Day:
		return fmt.Sprintf("%dd", i.Multiplier())
	case models.Week:
		return "1w"
	default:
		return "1M"
	}
}

// Duration is the nominal bar length. A month counts as 30 days.
func (i Interval) Duration() time.Duration {
	unit := time.Minute

	switch i.Timespan() {
	case models.Hour:
		unit = time.Hour
	case models.Day:
		unit = 24 * time.Hour
	case models.Week:
		unit = 7 * 24 * time.Hour
	case models.Month:
		unit = 30 * 24 * time.Hour
	}

	return time.Duration(i.Multiplier()) * unit
}
