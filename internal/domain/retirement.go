package domain

import (
	"github.com/shopspring/decimal"
)

// RetirementInput is the request record of the retirement planner.
// Rates and percentages are fractions.
type RetirementInput struct {
	MonthlyIncome    decimal.Decimal `yaml:"monthly_income" json:"monthly_income"`
	IncomePercentage decimal.Decimal `yaml:"income_percentage" json:"income_percentage"`
	CurrentAge       int             `yaml:"current_age" json:"current_age"`
	RetirementAge    int             `yaml:"retirement_age" json:"retirement_age"`
	AnnualReturn     decimal.Decimal `yaml:"annual_return" json:"annual_return"`

	// Optional
	CurrentPatrimony decimal.Decimal `yaml:"current_patrimony,omitempty" json:"current_patrimony,omitempty"`
	TargetPatrimony  decimal.Decimal `yaml:"target_patrimony,omitempty" json:"target_patrimony,omitempty"`
	MonthlyExpenses  decimal.Decimal `yaml:"monthly_expenses,omitempty" json:"monthly_expenses,omitempty"`
}

// MonthlyContribution is the share of income invested every month
func (ri RetirementInput) MonthlyContribution() decimal.Decimal {
	return ri.MonthlyIncome.Mul(ri.IncomePercentage)
}

// YearsToRetirement returns the accumulation horizon in whole years
func (ri RetirementInput) YearsToRetirement() int {
	return ri.RetirementAge - ri.CurrentAge
}

// RetirementResult is the closed-form projection at retirement age
type RetirementResult struct {
	YearsToRetirement   int             `yaml:"years_to_retirement" json:"years_to_retirement"`
	MonthsToRetirement  int             `yaml:"months_to_retirement" json:"months_to_retirement"`
	MonthlyContribution decimal.Decimal `yaml:"monthly_contribution" json:"monthly_contribution"`
	MonthlyReturn       decimal.Decimal `yaml:"monthly_return" json:"monthly_return"`

	// Breakdown of the accumulated total
	CurrentPatrimony            decimal.Decimal `yaml:"current_patrimony" json:"current_patrimony"`
	CurrentPrincipalFutureValue decimal.Decimal `yaml:"current_principal_future_value" json:"current_principal_future_value"`
	ContributionsFutureValue    decimal.Decimal `yaml:"contributions_future_value" json:"contributions_future_value"`
	TotalAccumulated            decimal.Decimal `yaml:"total_accumulated" json:"total_accumulated"`
	TotalContributed            decimal.Decimal `yaml:"total_contributed" json:"total_contributed"`

	// Goal
	NeededCapital            decimal.Decimal `yaml:"needed_capital" json:"needed_capital"`
	DesiredMonthlyIncome     decimal.Decimal `yaml:"desired_monthly_income" json:"desired_monthly_income"`
	SustainableMonthlyIncome decimal.Decimal `yaml:"sustainable_monthly_income" json:"sustainable_monthly_income"`
	WithdrawalRate           decimal.Decimal `yaml:"withdrawal_rate" json:"withdrawal_rate"`
	GoalAchieved             bool            `yaml:"goal_achieved" json:"goal_achieved"`
	SurplusOrZero            decimal.Decimal `yaml:"surplus_or_zero" json:"surplus_or_zero"`
	Shortfall                decimal.Decimal `yaml:"shortfall" json:"shortfall"`

	// YearsOfExpenses is how long the total lasts at MonthlyExpenses, zero when
	// no expenses were given
	YearsOfExpenses decimal.Decimal `yaml:"years_of_expenses" json:"years_of_expenses"`
}
