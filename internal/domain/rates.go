package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateUnit is the compounding period a rate value is quoted in
type RateUnit string

const (
	RateUnitMonthly RateUnit = "monthly"
	RateUnitAnnual  RateUnit = "annual"
)

// Valid reports whether u is a known unit. An empty unit means annual;
// callers default the informed regime to monthly before it gets here.
func (u RateUnit) Valid() bool {
	return u == "" || u == RateUnitMonthly || u == RateUnitAnnual
}

// RateSpec is a rate fraction (0.12 = 12%) and the period it is quoted in.
// Annual rates are effective rates; they are converted to monthly by compounding.
type RateSpec struct {
	Value decimal.Decimal `yaml:"value" json:"value"`
	Unit  RateUnit        `yaml:"unit,omitempty" json:"unit,omitempty"`
}

// AnnualRate creates an annual RateSpec
func AnnualRate(value decimal.Decimal) RateSpec {
	return RateSpec{Value: value, Unit: RateUnitAnnual}
}

// MonthlyRate creates a monthly RateSpec
func MonthlyRate(value decimal.Decimal) RateSpec {
	return RateSpec{Value: value, Unit: RateUnitMonthly}
}

// IsAnnual reports whether the spec must be converted before use
func (r RateSpec) IsAnnual() bool {
	return r.Unit == "" || r.Unit == RateUnitAnnual
}

// TermSpec describes a simulation horizon. Exactly one of the fields is used,
// checked in the order Months, Years, Until.
type TermSpec struct {
	Months int              `yaml:"months,omitempty" json:"months,omitempty"`
	Years  *decimal.Decimal `yaml:"years,omitempty" json:"years,omitempty"`
	Until  *time.Time       `yaml:"until,omitempty" json:"until,omitempty"`
}

// TermMonths creates a TermSpec for a fixed month count
func TermMonths(months int) TermSpec {
	return TermSpec{Months: months}
}

// IsZero reports whether no term source was provided
func (t TermSpec) IsZero() bool {
	return t.Months == 0 && t.Years == nil && t.Until == nil
}

// MarketRates are the external benchmarks used by indexed instruments and regimes.
type MarketRates struct {
	// ReferenceRate is the annual interbank/policy benchmark (e.g. CDI).
	ReferenceRate decimal.Decimal `yaml:"reference_rate" json:"reference_rate" envconfig:"REFERENCE_RATE"`
	// InflationRate is the annual consumer price index (e.g. IPCA).
	InflationRate decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate" envconfig:"INFLATION_RATE"`
}

// DefaultMarketRates returns the benchmark values used when none are supplied
func DefaultMarketRates() MarketRates {
	return MarketRates{
		ReferenceRate: decimal.NewFromFloat(0.1465),
		InflationRate: decimal.NewFromFloat(0.045),
	}
}

// WithDefaults fills zero benchmarks from DefaultMarketRates
func (m MarketRates) WithDefaults() MarketRates {
	def := DefaultMarketRates()
	if m.ReferenceRate.IsZero() {
		m.ReferenceRate = def.ReferenceRate
	}
	if m.InflationRate.IsZero() {
		m.InflationRate = def.InflationRate
	}
	return m
}
