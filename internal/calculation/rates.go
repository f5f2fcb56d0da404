package calculation

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/finkit/finproj/internal/domain"
	"github.com/finkit/finproj/pkg/dateutil"
)

var (
	one      = decimal.NewFromInt(1)
	minusOne = decimal.NewFromInt(-1)
	twelve   = decimal.NewFromInt(12)
	eleven   = decimal.NewFromInt(11)
	hundred  = decimal.NewFromInt(100)
)

// newtonScale is the precision of the refinement steps of AnnualToMonthly
const newtonScale = 28

// AnnualToMonthly converts an effective annual rate to the equivalent monthly
// rate, (1+annual)^(1/12) - 1, never annual/12. Zero converts to exactly zero.
// Rates below -100% return *domain.InvalidRateError.
func AnnualToMonthly(annual decimal.Decimal) (decimal.Decimal, error) {
	switch {
	case annual.IsZero():
		return decimal.Zero, nil
	case annual.LessThan(minusOne):
		return decimal.Zero, &domain.InvalidRateError{Rate: annual}
	case annual.Equal(minusOne):
		return minusOne, nil
	}

	base := one.Add(annual)
	x := decimal.NewFromFloat(math.Pow(base.InexactFloat64(), 1.0/12))
	// Newton on x^12 = base to recover the digits lost in float64
	for i := 0; i < 2; i++ {
		x11 := x.Pow(eleven).Round(newtonScale)
		f := x11.Mul(x).Sub(base)
		x = x.Sub(f.DivRound(twelve.Mul(x11), newtonScale)).Round(newtonScale)
	}
	return x.Sub(one).Round(domain.WorkingScale), nil
}

// MonthlyToAnnual is the inverse conversion, (1+monthly)^12 - 1
func MonthlyToAnnual(monthly decimal.Decimal) decimal.Decimal {
	return one.Add(monthly).Pow(twelve).Sub(one)
}

// ResolveMonthlyRate returns the monthly fraction for a rate quoted in either unit
func ResolveMonthlyRate(field string, spec domain.RateSpec) (decimal.Decimal, error) {
	if !spec.Unit.Valid() {
		return decimal.Zero, domain.NewValidationError(field, "rate unit must be 'monthly' or 'annual'")
	}
	if spec.Value.LessThan(minusOne) {
		return decimal.Zero, &domain.InvalidRateError{Field: field, Rate: spec.Value}
	}
	if !spec.IsAnnual() {
		return spec.Value, nil
	}
	m, err := AnnualToMonthly(spec.Value)
	if err != nil {
		return decimal.Zero, err
	}
	return m, nil
}

// ResolveTerm converts a TermSpec to a month count in [1, maxMonths].
// Target dates are measured from nowFunc.
func ResolveTerm(term domain.TermSpec, maxMonths int) (int, error) {
	var months int
	switch {
	case term.Months != 0:
		months = term.Months
	case term.Years != nil:
		if term.Years.IsNegative() {
			return 0, domain.NewValidationError("term.years", "must not be negative")
		}
		months = dateutil.MonthsFromYears(*term.Years)
	case term.Until != nil:
		months = dateutil.MonthsFromTargetDate(*term.Until, nowFunc())
		if months <= 0 {
			return 0, domain.NewValidationError("term.until", "target date must be at least 30 days ahead")
		}
	default:
		return 0, domain.NewValidationError("term", "missing required input")
	}
	if months <= 0 {
		return 0, domain.NewValidationError("term", "must be at least one month")
	}
	if maxMonths > 0 && months > maxMonths {
		return 0, domain.NewValidationError("term", fmt.Sprintf("must not exceed %d months", maxMonths))
	}
	return months, nil
}
