package calculation

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finkit/finproj/internal/domain"
)

func TestFutureValueOfAnnuity(t *testing.T) {
	monthly, err := AnnualToMonthly(decimal.NewFromFloat(0.10))
	require.NoError(t, err)

	got := FutureValueOfAnnuity(decimal.NewFromInt(1000), monthly, 120)
	m := math.Pow(1.1, 1.0/12) - 1
	want := 1000 * (math.Pow(1.1, 10) - 1) / m
	assert.InDelta(t, want, got.InexactFloat64(), 1e-3)

	// zero rate degenerates to plain sum
	assert.Equal(t, "120000", FutureValueOfAnnuity(decimal.NewFromInt(1000), decimal.Zero, 120).String())
}

func baseRetirementInput() domain.RetirementInput {
	return domain.RetirementInput{
		MonthlyIncome:    decimal.NewFromInt(10000),
		IncomePercentage: decimal.NewFromFloat(0.10),
		CurrentAge:       30,
		RetirementAge:    40,
		AnnualReturn:     decimal.NewFromFloat(0.10),
		CurrentPatrimony: decimal.NewFromInt(50000),
		MonthlyExpenses:  decimal.NewFromInt(5000),
	}
}

func TestRetirementProjector_Project(t *testing.T) {
	res, err := NewRetirementProjector().Project(baseRetirementInput())
	require.NoError(t, err)

	assert.Equal(t, 10, res.YearsToRetirement)
	assert.Equal(t, 120, res.MonthsToRetirement)
	assert.Equal(t, "1000", res.MonthlyContribution.String())
	assert.Equal(t, "120000", res.TotalContributed.String())

	assert.InDelta(t, 50000*2.5937424601, res.CurrentPrincipalFutureValue.InexactFloat64(), 1e-6)
	annuity := 1000 * (math.Pow(1.1, 10) - 1) / (math.Pow(1.1, 1.0/12) - 1)
	assert.InDelta(t, annuity, res.ContributionsFutureValue.InexactFloat64(), 1e-3)
	assert.True(t, res.TotalAccumulated.Equal(res.CurrentPrincipalFutureValue.Add(res.ContributionsFutureValue)))

	// no target: capital needed to draw the current income at 0.5% a month
	assert.Equal(t, "2000000", res.NeededCapital.String())
	assert.Equal(t, "10000", res.DesiredMonthlyIncome.String())
	assert.False(t, res.GoalAchieved)
	assert.True(t, res.SurplusOrZero.IsZero())
	assert.True(t, res.Shortfall.Equal(res.NeededCapital.Sub(res.TotalAccumulated)))
	assert.True(t, res.SustainableMonthlyIncome.Equal(res.TotalAccumulated.Mul(decimal.NewFromFloat(0.005))))

	years := res.TotalAccumulated.InexactFloat64() / 60000
	assert.InDelta(t, years, res.YearsOfExpenses.InexactFloat64(), 0.01)
}

func TestRetirementProjector_TargetReached(t *testing.T) {
	in := baseRetirementInput()
	in.TargetPatrimony = decimal.NewFromInt(300000)
	in.MonthlyExpenses = decimal.Zero

	res, err := NewRetirementProjector().Project(in)
	require.NoError(t, err)

	assert.Equal(t, "300000", res.NeededCapital.String())
	assert.Equal(t, "10000", res.DesiredMonthlyIncome.String(), "the income being replaced, not the target's yield")
	assert.True(t, res.GoalAchieved)
	assert.True(t, res.SurplusOrZero.Equal(res.TotalAccumulated.Sub(res.NeededCapital)))
	assert.True(t, res.Shortfall.IsZero())
	assert.True(t, res.YearsOfExpenses.IsZero())
}

func TestRetirementProjector_CustomWithdrawalRate(t *testing.T) {
	rules := domain.DefaultCalculationRules()
	rules.WithdrawalRate = decimal.NewFromFloat(0.004)

	res, err := NewRetirementProjectorWithConfig(rules).Project(baseRetirementInput())
	require.NoError(t, err)
	assert.Equal(t, "2500000", res.NeededCapital.String())
	assert.Equal(t, "0.004", res.WithdrawalRate.String())
}

func TestRetirementProjector_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.RetirementInput)
		field  string
	}{
		{"retirement age equal to current", func(in *domain.RetirementInput) { in.RetirementAge = in.CurrentAge }, "retirement_age"},
		{"retirement age before current", func(in *domain.RetirementInput) { in.RetirementAge = 25 }, "retirement_age"},
		{"zero income", func(in *domain.RetirementInput) { in.MonthlyIncome = decimal.Zero }, "monthly_income"},
		{"zero percentage", func(in *domain.RetirementInput) { in.IncomePercentage = decimal.Zero }, "income_percentage"},
		{"percentage above 100%", func(in *domain.RetirementInput) { in.IncomePercentage = decimal.NewFromInt(15) }, "income_percentage"},
		{"zero age", func(in *domain.RetirementInput) { in.CurrentAge = 0 }, "current_age"},
		{"zero return", func(in *domain.RetirementInput) { in.AnnualReturn = decimal.Zero }, "annual_return"},
		{"return below -100%", func(in *domain.RetirementInput) { in.AnnualReturn = decimal.NewFromInt(-2) }, "annual_return"},
		{"negative patrimony", func(in *domain.RetirementInput) { in.CurrentPatrimony = decimal.NewFromInt(-1) }, "current_patrimony"},
		{"negative target", func(in *domain.RetirementInput) { in.TargetPatrimony = decimal.NewFromInt(-1) }, "target_patrimony"},
		{"negative expenses", func(in *domain.RetirementInput) { in.MonthlyExpenses = decimal.NewFromInt(-1) }, "monthly_expenses"},
		{"horizon above max term", func(in *domain.RetirementInput) { in.CurrentAge, in.RetirementAge = 1, 120 }, "retirement_age"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseRetirementInput()
			tt.mutate(&in)
			res, err := NewRetirementProjector().Project(in)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, domain.ErrValidation)
			ve, ok := domain.AsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}
