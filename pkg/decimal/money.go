package decimal

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// TruncateCents drops everything past the cents, toward zero
func (m Money) TruncateCents() Money {
	return Money{m.Decimal.Truncate(2)}
}

// MinorUnits returns the amount in the currency's smallest unit (cents for a
// fraction of 2), rounded half away from zero
func (m Money) MinorUnits(fraction int) int64 {
	return m.Decimal.Shift(int32(fraction)).Round(0).IntPart()
}

// String returns the string representation with two decimal places
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}
