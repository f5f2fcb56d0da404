package dateutil

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// DaysPerMonth is the fixed month length shared by date-to-term conversion
// and the day-based tax tables
const DaysPerMonth = 30

var (
	twelve    = decimal.NewFromInt(12)
	maxMonths = decimal.NewFromInt(math.MaxInt32)
	minMonths = decimal.NewFromInt(math.MinInt32)
)

// DaysBetween returns the whole days from one instant to another, truncated
// toward zero. Negative when to is before from.
func DaysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}

// MonthsFromYears converts a (possibly fractional) year count to whole months,
// flooring any partial month. Counts outside the int32 range saturate so that
// callers can still compare the result against their own limits.
func MonthsFromYears(years decimal.Decimal) int {
	months := years.Mul(twelve).Floor()
	switch {
	case months.GreaterThan(maxMonths):
		return math.MaxInt32
	case months.LessThan(minMonths):
		return math.MinInt32
	}
	return int(months.IntPart())
}

// MonthsFromTargetDate converts the days until target into 30-day months,
// truncated toward zero. The result may be zero or negative; callers decide
// whether that is acceptable.
func MonthsFromTargetDate(target, now time.Time) int {
	return DaysBetween(now, target) / DaysPerMonth
}
