package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finkit/finproj/internal/domain"
	"github.com/finkit/finproj/internal/locale"
)

// Monetary and rate fields accept JSON numbers or strings formatted in the
// request's locale ("R$ 1.234,56", "12,5%"). Numeric rates are fractions.

// CompoundRequest is the body of POST /api/compound
type CompoundRequest struct {
	Locale              string        `json:"locale" validate:"omitempty,locale"`
	Principal           locale.Amount `json:"principal" validate:"required"`
	MonthlyContribution locale.Amount `json:"monthly_contribution"`
	Rate                locale.Amount `json:"rate"`
	RateUnit            string        `json:"rate_unit" validate:"omitempty,oneof=monthly annual"`
	InflationRate       locale.Amount `json:"inflation_rate"`
	ReferenceRate       locale.Amount `json:"reference_rate"`
	Months              int           `json:"months" validate:"gte=0"`
	Years               locale.Amount `json:"years"`
	Until               string        `json:"until" validate:"omitempty,datetime=2006-01-02"`
	Rounding            string        `json:"rounding" validate:"omitempty,oneof=exact truncate_cents"`
}

// RetirementRequest is the body of POST /api/retirement
type RetirementRequest struct {
	Locale           string        `json:"locale" validate:"omitempty,locale"`
	MonthlyIncome    locale.Amount `json:"monthly_income" validate:"required"`
	IncomePercentage locale.Amount `json:"income_percentage" validate:"required"`
	CurrentAge       int           `json:"current_age" validate:"required,gt=0"`
	RetirementAge    int           `json:"retirement_age" validate:"required,gtfield=CurrentAge"`
	AnnualReturn     locale.Amount `json:"annual_return" validate:"required"`
	CurrentPatrimony locale.Amount `json:"current_patrimony"`
	TargetPatrimony  locale.Amount `json:"target_patrimony"`
	MonthlyExpenses  locale.Amount `json:"monthly_expenses"`
}

// InstrumentRequest is one side of a comparison
type InstrumentRequest struct {
	Category            string        `json:"category" validate:"required,instrument_category"`
	ReturnType          string        `json:"return_type" validate:"required,return_type"`
	Rate                locale.Amount `json:"rate"`
	HoldingPeriodMonths int           `json:"holding_period_months" validate:"gte=0"`
	Taxable             *bool         `json:"taxable"`
}

// CompareRequest is the body of POST /api/fixed-income/compare
type CompareRequest struct {
	Locale        string            `json:"locale" validate:"omitempty,locale"`
	A             InstrumentRequest `json:"a"`
	B             InstrumentRequest `json:"b"`
	BaseAmount    locale.Amount     `json:"base_amount"`
	ReferenceRate locale.Amount     `json:"reference_rate"`
	InflationRate locale.Amount     `json:"inflation_rate"`
}

// amountResolver collects the first parse failure while resolving fields
type amountResolver struct {
	loc locale.Locale
	err error
}

func (ar *amountResolver) amount(field string, a locale.Amount) decimal.Decimal {
	d, err := a.Resolve(ar.loc)
	if err != nil && ar.err == nil {
		ar.err = domain.NewValidationError(field, err.Error())
	}
	return d
}

func (ar *amountResolver) percent(field string, a locale.Amount) decimal.Decimal {
	d, err := a.ResolvePercent(ar.loc)
	if err != nil && ar.err == nil {
		ar.err = domain.NewValidationError(field, err.Error())
	}
	return d
}

// Scenario converts the request into a compound scenario
func (req CompoundRequest) Scenario(l locale.Locale) (domain.Scenario, error) {
	ar := &amountResolver{loc: l}
	in := domain.CompoundInput{
		Principal:           ar.amount("principal", req.Principal),
		MonthlyContribution: ar.amount("monthly_contribution", req.MonthlyContribution),
		Term:                domain.TermSpec{Months: req.Months},
		Rates:               map[domain.Regime]domain.RateSpec{},
		Rounding:            domain.RoundingPolicy(req.Rounding),
	}
	if req.Years.IsSet() {
		years := ar.amount("years", req.Years)
		in.Term.Years = &years
	}
	if req.Until != "" {
		until, err := time.Parse("2006-01-02", req.Until)
		if err != nil {
			return domain.Scenario{}, domain.NewValidationError("until", "must be a date formatted 2006-01-02")
		}
		in.Term.Until = &until
	}
	if rate := ar.percent("rate", req.Rate); !rate.IsZero() {
		unit := domain.RateUnit(req.RateUnit)
		if unit == "" {
			unit = domain.RateUnitMonthly
		}
		in.Rates[domain.RegimeInformed] = domain.RateSpec{Value: rate, Unit: unit}
	}
	if rate := ar.percent("inflation_rate", req.InflationRate); !rate.IsZero() {
		in.Rates[domain.RegimeInflationIndexed] = domain.AnnualRate(rate)
	}
	if rate := ar.percent("reference_rate", req.ReferenceRate); !rate.IsZero() {
		in.Rates[domain.RegimeReferenceIndexed] = domain.AnnualRate(rate)
	}
	if ar.err != nil {
		return domain.Scenario{}, ar.err
	}
	return domain.Scenario{Name: "compound", Kind: domain.KindCompound, Compound: &in}, nil
}

// Scenario converts the request into a retirement scenario
func (req RetirementRequest) Scenario(l locale.Locale) (domain.Scenario, error) {
	ar := &amountResolver{loc: l}
	in := domain.RetirementInput{
		MonthlyIncome:    ar.amount("monthly_income", req.MonthlyIncome),
		IncomePercentage: ar.percent("income_percentage", req.IncomePercentage),
		CurrentAge:       req.CurrentAge,
		RetirementAge:    req.RetirementAge,
		AnnualReturn:     ar.percent("annual_return", req.AnnualReturn),
		CurrentPatrimony: ar.amount("current_patrimony", req.CurrentPatrimony),
		TargetPatrimony:  ar.amount("target_patrimony", req.TargetPatrimony),
		MonthlyExpenses:  ar.amount("monthly_expenses", req.MonthlyExpenses),
	}
	if ar.err != nil {
		return domain.Scenario{}, ar.err
	}
	return domain.Scenario{Name: "retirement", Kind: domain.KindRetirement, Retirement: &in}, nil
}

func (ir InstrumentRequest) config(ar *amountResolver, field string) domain.InstrumentConfig {
	cfg := domain.InstrumentConfig{
		Category:            domain.InstrumentCategory(ir.Category),
		ReturnType:          domain.ReturnType(ir.ReturnType),
		HoldingPeriodMonths: ir.HoldingPeriodMonths,
		Taxable:             ir.Taxable,
	}
	if ir.Rate.IsSet() {
		rate := ar.percent(field, ir.Rate)
		cfg.Rate = &rate
	}
	return cfg
}

// Scenario converts the request into a comparison scenario
func (req CompareRequest) Scenario(l locale.Locale) (domain.Scenario, error) {
	ar := &amountResolver{loc: l}
	in := domain.ComparisonInput{
		A:          req.A.config(ar, "instrument A"),
		B:          req.B.config(ar, "instrument B"),
		BaseAmount: ar.amount("base_amount", req.BaseAmount),
	}
	if req.ReferenceRate.IsSet() || req.InflationRate.IsSet() {
		in.Market = &domain.MarketRates{
			ReferenceRate: ar.percent("reference_rate", req.ReferenceRate),
			InflationRate: ar.percent("inflation_rate", req.InflationRate),
		}
	}
	if ar.err != nil {
		return domain.Scenario{}, ar.err
	}
	return domain.Scenario{Name: "comparison", Kind: domain.KindComparison, Comparison: &in}, nil
}
