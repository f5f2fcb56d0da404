package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/finkit/finproj/internal/domain"
	fpdecimal "github.com/finkit/finproj/pkg/decimal"
)

// RetirementProjector estimates the capital accumulated by a retirement age
// with closed-form future-value formulas
type RetirementProjector struct {
	WithdrawalRate decimal.Decimal
	MaxTermMonths  int
	Logger         Logger
}

// NewRetirementProjector creates a projector with the default withdrawal rate
func NewRetirementProjector() *RetirementProjector {
	return NewRetirementProjectorWithConfig(domain.DefaultCalculationRules())
}

// NewRetirementProjectorWithConfig creates a projector bound to the given rules
func NewRetirementProjectorWithConfig(rules domain.CalculationRules) *RetirementProjector {
	return &RetirementProjector{
		WithdrawalRate: rules.WithdrawalRate,
		MaxTermMonths:  rules.MaxTermMonths,
		Logger:         NopLogger{},
	}
}

// FutureValueOfAnnuity returns c * ((1+m)^n - 1) / m, or c * n when m is zero
func FutureValueOfAnnuity(contribution, monthly decimal.Decimal, months int) decimal.Decimal {
	n := decimal.NewFromInt(int64(months))
	if monthly.IsZero() {
		return contribution.Mul(n)
	}
	growth := fpdecimal.GrowthFactor(monthly, months).Sub(one)
	return contribution.Mul(growth).DivRound(monthly, domain.WorkingScale)
}

func (rp *RetirementProjector) validate(in domain.RetirementInput) error {
	switch {
	case !in.MonthlyIncome.IsPositive():
		return domain.NewValidationError("monthly_income", "must be greater than zero")
	case !in.IncomePercentage.IsPositive():
		return domain.NewValidationError("income_percentage", "must be greater than zero")
	case in.IncomePercentage.GreaterThan(one):
		return domain.NewValidationError("income_percentage", "must not exceed 100%")
	case in.CurrentAge <= 0:
		return domain.NewValidationError("current_age", "must be greater than zero")
	case in.RetirementAge <= 0:
		return domain.NewValidationError("retirement_age", "must be greater than zero")
	case in.RetirementAge <= in.CurrentAge:
		return domain.NewValidationError("retirement_age", "must be greater than current age")
	case in.AnnualReturn.IsZero():
		return domain.NewValidationError("annual_return", "missing required input")
	case in.AnnualReturn.LessThan(minusOne):
		return &domain.InvalidRateError{Field: "annual_return", Rate: in.AnnualReturn}
	case in.CurrentPatrimony.IsNegative():
		return domain.NewValidationError("current_patrimony", "must not be negative")
	case in.TargetPatrimony.IsNegative():
		return domain.NewValidationError("target_patrimony", "must not be negative")
	case in.MonthlyExpenses.IsNegative():
		return domain.NewValidationError("monthly_expenses", "must not be negative")
	}
	if rp.MaxTermMonths > 0 && in.YearsToRetirement()*12 > rp.MaxTermMonths {
		return domain.NewValidationError("retirement_age", "accumulation period exceeds the maximum term")
	}
	return nil
}

// Project computes the accumulated capital at retirement and compares it with
// the target, or with the capital needed to sustain the current income
func (rp *RetirementProjector) Project(in domain.RetirementInput) (*domain.RetirementResult, error) {
	if err := rp.validate(in); err != nil {
		return nil, err
	}
	withdrawal := rp.WithdrawalRate
	if !withdrawal.IsPositive() {
		withdrawal = domain.DefaultCalculationRules().WithdrawalRate
	}

	years := in.YearsToRetirement()
	months := years * 12
	monthly, err := AnnualToMonthly(in.AnnualReturn)
	if err != nil {
		return nil, err
	}
	contribution := in.MonthlyContribution()

	principalFV := in.CurrentPatrimony.Mul(fpdecimal.GrowthFactor(in.AnnualReturn, years)).Round(domain.WorkingScale)
	contributionsFV := FutureValueOfAnnuity(contribution, monthly, months)
	total := principalFV.Add(contributionsFV)

	needed := in.TargetPatrimony
	if !needed.IsPositive() {
		needed = in.MonthlyIncome.DivRound(withdrawal, domain.WorkingScale)
	}

	res := &domain.RetirementResult{
		YearsToRetirement:           years,
		MonthsToRetirement:          months,
		MonthlyContribution:         contribution,
		MonthlyReturn:               monthly,
		CurrentPatrimony:            in.CurrentPatrimony,
		CurrentPrincipalFutureValue: principalFV,
		ContributionsFutureValue:    contributionsFV,
		TotalAccumulated:            total,
		TotalContributed:            contribution.Mul(decimal.NewFromInt(int64(months))),
		NeededCapital:               needed,
		DesiredMonthlyIncome:        in.MonthlyIncome,
		SustainableMonthlyIncome:    total.Mul(withdrawal),
		WithdrawalRate:              withdrawal,
		GoalAchieved:                total.GreaterThanOrEqual(needed),
		SurplusOrZero:               fpdecimal.NonNegative(total.Sub(needed)),
		Shortfall:                   fpdecimal.NonNegative(needed.Sub(total)),
		YearsOfExpenses:             decimal.Zero,
	}
	if in.MonthlyExpenses.IsPositive() {
		res.YearsOfExpenses = total.DivRound(in.MonthlyExpenses.Mul(twelve), 2)
	}

	rp.logger().Debugf("retirement: %d months at %s monthly, total %s, needed %s", months, monthly, total.StringFixed(2), needed.StringFixed(2))
	return res, nil
}

func (rp *RetirementProjector) logger() Logger {
	if rp.Logger == nil {
		return NopLogger{}
	}
	return rp.Logger
}
