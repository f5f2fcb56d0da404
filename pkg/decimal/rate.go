package decimal

import (
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// GrowthFactor returns (1+rate)^periods for a whole number of periods
func GrowthFactor(rate decimal.Decimal, periods int) decimal.Decimal {
	if periods == 0 {
		return one
	}
	return one.Add(rate).Pow(decimal.NewFromInt(int64(periods)))
}

// NonNegative clamps d at zero
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Percent expresses a fraction as a percentage (0.125 -> 12.5)
func Percent(fraction decimal.Decimal) decimal.Decimal {
	return fraction.Shift(2)
}
