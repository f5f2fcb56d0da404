package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/finkit/finproj/internal/domain"
	"github.com/finkit/finproj/pkg/dateutil"
	fpdecimal "github.com/finkit/finproj/pkg/decimal"
)

// TaxEngine computes the withholding and short-term transaction taxes on a
// fixed-income yield from a configurable table
type TaxEngine struct {
	Rules domain.TaxRules
}

// TaxBreakdown is the tax part of a TaxResult
type TaxBreakdown struct {
	WithholdingRate decimal.Decimal
	TransactionRate decimal.Decimal
	Withholding     decimal.Decimal
	Transaction     decimal.Decimal
	Net             decimal.Decimal
}

// NewTaxEngine creates a tax engine with the default day-based tables
func NewTaxEngine() *TaxEngine {
	return NewTaxEngineWithConfig(domain.DefaultTaxRules())
}

// NewTaxEngineWithConfig creates a tax engine with configured tables
func NewTaxEngineWithConfig(rules domain.TaxRules) *TaxEngine {
	return &TaxEngine{Rules: rules}
}

// PeriodUnits converts a holding period in months to the table's unit
func (te *TaxEngine) PeriodUnits(months int) int {
	if te.Rules.PeriodUnit == domain.PeriodMonths {
		return months
	}
	return months * dateutil.DaysPerMonth
}

// IncomeTaxRate returns the withholding rate for a holding period. Tier
// boundaries are inclusive at the upper edge.
func (te *TaxEngine) IncomeTaxRate(units int) decimal.Decimal {
	for _, b := range te.Rules.WithholdingBrackets {
		if units <= b.UpTo {
			return b.Rate
		}
	}
	return te.Rules.FinalWithholding
}

// TransactionTaxRate returns the share of the yield taken by the short-term
// transaction tax. Zero from the end of the table onwards.
func (te *TaxEngine) TransactionTaxRate(units int) decimal.Decimal {
	table := te.Rules.TransactionTaxTable
	if units < 0 {
		units = 0
	}
	if units >= len(table) {
		return decimal.Zero
	}
	return table[units]
}

// ComputeTax applies both taxes to a gross yield. Exempt instruments and
// losses pay no tax; a loss passes through unchanged as the net return.
func (te *TaxEngine) ComputeTax(gross decimal.Decimal, units int, taxable bool) TaxBreakdown {
	out := TaxBreakdown{
		WithholdingRate: decimal.Zero,
		TransactionRate: decimal.Zero,
		Withholding:     decimal.Zero,
		Transaction:     decimal.Zero,
		Net:             gross,
	}
	if !taxable {
		return out
	}
	out.WithholdingRate = te.IncomeTaxRate(units)
	out.TransactionRate = te.TransactionTaxRate(units)

	taxBase := fpdecimal.NonNegative(gross)
	out.Withholding = taxBase.Mul(out.WithholdingRate)
	out.Transaction = taxBase.Mul(out.TransactionRate)
	out.Net = gross.Sub(out.Withholding).Sub(out.Transaction)
	return out
}
