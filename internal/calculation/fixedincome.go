package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finkit/finproj/internal/domain"
	fpdecimal "github.com/finkit/finproj/pkg/decimal"
)

// FixedIncomeComparator computes after-tax returns of two instruments over
// their holding periods and ranks them by net return
type FixedIncomeComparator struct {
	Tax           *TaxEngine
	Market        domain.MarketRates
	BaseAmount    decimal.Decimal
	MaxTermMonths int
	Logger        Logger
}

// NewFixedIncomeComparator creates a comparator with default market rates and tax tables
func NewFixedIncomeComparator() *FixedIncomeComparator {
	return NewFixedIncomeComparatorWithConfig(domain.DefaultCalculationRules())
}

// NewFixedIncomeComparatorWithConfig creates a comparator bound to the given rules
func NewFixedIncomeComparatorWithConfig(rules domain.CalculationRules) *FixedIncomeComparator {
	rules = rules.WithDefaults()
	return &FixedIncomeComparator{
		Tax:           NewTaxEngineWithConfig(rules.Tax),
		Market:        rules.Market,
		BaseAmount:    rules.BaseAmount,
		MaxTermMonths: rules.MaxTermMonths,
		Logger:        NopLogger{},
	}
}

func sideField(side domain.Side) string {
	return "instrument " + string(side)
}

func (fc *FixedIncomeComparator) validateInstrument(side domain.Side, cfg domain.InstrumentConfig) error {
	field := sideField(side)
	if _, ok := cfg.Category.Info(); !ok {
		return domain.NewValidationError(field, fmt.Sprintf("unknown category %q", cfg.Category))
	}
	if _, ok := cfg.ReturnType.Info(); !ok {
		return domain.NewValidationError(field, fmt.Sprintf("unknown return type %q", cfg.ReturnType))
	}
	if cfg.Rate == nil {
		return domain.NewValidationError(field, "missing required input: rate")
	}
	if cfg.HoldingPeriodMonths <= 0 {
		return domain.NewValidationError(field, "missing required input: holding period must be at least one month")
	}
	if fc.MaxTermMonths > 0 && cfg.HoldingPeriodMonths > fc.MaxTermMonths {
		return domain.NewValidationError(field, fmt.Sprintf("holding period must not exceed %d months", fc.MaxTermMonths))
	}
	return nil
}

// Evaluate computes the after-tax outcome of one instrument on base
func (fc *FixedIncomeComparator) Evaluate(side domain.Side, cfg domain.InstrumentConfig, base decimal.Decimal, market domain.MarketRates) (*domain.TaxResult, error) {
	if err := fc.validateInstrument(side, cfg); err != nil {
		return nil, err
	}
	category, _ := cfg.Category.Info()
	returnType, _ := cfg.ReturnType.Info()

	annual := returnType.AnnualRate(*cfg.Rate, market)
	monthly, err := AnnualToMonthly(annual)
	if err != nil {
		return nil, &domain.InvalidRateError{Field: sideField(side), Rate: annual}
	}

	months := cfg.HoldingPeriodMonths
	gross := base.Mul(fpdecimal.GrowthFactor(monthly, months).Sub(one)).Round(domain.WorkingScale)
	units := fc.tax().PeriodUnits(months)
	taxable := cfg.IsTaxable()
	taxes := fc.tax().ComputeTax(gross, units, taxable)

	res := &domain.TaxResult{
		Label:                     category.Label,
		Category:                  cfg.Category,
		ReturnType:                cfg.ReturnType,
		AnnualRate:                annual,
		MonthlyRate:               monthly,
		HoldingPeriodMonths:       months,
		TaxPeriodUnits:            units,
		Taxable:                   taxable,
		WithholdingRate:           taxes.WithholdingRate,
		TransactionRate:           taxes.TransactionRate,
		GrossReturn:               gross,
		WithholdingTaxAmount:      taxes.Withholding,
		TransactionTaxAmount:      taxes.Transaction,
		NetReturn:                 taxes.Net,
		FinalAmount:               base.Add(taxes.Net),
		AnnualizedNetYieldPercent: taxes.Net.DivRound(base, domain.WorkingScale).Mul(hundred),
	}
	fc.logger().Debugf("instrument %s: %s %s annual %s over %d months, net %s", side, cfg.Category, cfg.ReturnType, annual, months, taxes.Net.StringFixed(2))
	return res, nil
}

// Compare evaluates both instruments on the same base amount. A wins ties.
func (fc *FixedIncomeComparator) Compare(in domain.ComparisonInput) (*domain.ComparisonResult, error) {
	base := in.BaseAmount
	if base.IsZero() {
		base = fc.BaseAmount
	}
	if base.IsZero() {
		base = domain.DefaultCalculationRules().BaseAmount
	}
	if !base.IsPositive() {
		return nil, domain.NewValidationError("base_amount", "must be greater than zero")
	}

	market := fc.Market
	if in.Market != nil {
		market = *in.Market
	}
	market = market.WithDefaults()

	a, err := fc.Evaluate(domain.SideA, in.A, base, market)
	if err != nil {
		return nil, err
	}
	b, err := fc.Evaluate(domain.SideB, in.B, base, market)
	if err != nil {
		return nil, err
	}

	winner := domain.SideA
	if b.NetReturn.GreaterThan(a.NetReturn) {
		winner = domain.SideB
	}
	fc.logger().Infof("fixed income comparison: winner %s (A net %s, B net %s)", winner, a.NetReturn.StringFixed(2), b.NetReturn.StringFixed(2))

	return &domain.ComparisonResult{
		A:          *a,
		B:          *b,
		Winner:     winner,
		BaseAmount: base,
		Difference: a.NetReturn.Sub(b.NetReturn),
		Market:     market,
	}, nil
}

func (fc *FixedIncomeComparator) tax() *TaxEngine {
	if fc.Tax == nil {
		return NewTaxEngine()
	}
	return fc.Tax
}

func (fc *FixedIncomeComparator) logger() Logger {
	if fc.Logger == nil {
		return NopLogger{}
	}
	return fc.Logger
}
