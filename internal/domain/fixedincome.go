package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// InstrumentCategory is the kind of fixed-income product being compared
type InstrumentCategory string

const (
	CategoryCDB           InstrumentCategory = "CDB"
	CategoryLCI           InstrumentCategory = "LCI"
	CategoryLCA           InstrumentCategory = "LCA"
	CategoryLC            InstrumentCategory = "LC"
	CategoryTreasurySelic InstrumentCategory = "TESOURO_SELIC"
	CategoryTreasuryIPCA  InstrumentCategory = "TESOURO_IPCA"
	CategoryTreasuryFixed InstrumentCategory = "TESOURO_PREFIXADO"
	CategoryDebentures    InstrumentCategory = "DEBENTURES"
)

// CategoryInfo is the behavior table entry of an instrument category
type CategoryInfo struct {
	Category InstrumentCategory `json:"category" yaml:"category"`
	Label    string             `json:"label" yaml:"label"`
	Taxable  bool               `json:"taxable" yaml:"taxable"`
}

var instrumentCategories = map[InstrumentCategory]CategoryInfo{
	CategoryCDB:           {CategoryCDB, "CDB (bank certificate of deposit)", true},
	CategoryLCI:           {CategoryLCI, "LCI (real-estate credit note)", false},
	CategoryLCA:           {CategoryLCA, "LCA (agribusiness credit note)", false},
	CategoryLC:            {CategoryLC, "Letter of exchange", true},
	CategoryTreasurySelic: {CategoryTreasurySelic, "Treasury Selic", true},
	CategoryTreasuryIPCA:  {CategoryTreasuryIPCA, "Treasury IPCA+", true},
	CategoryTreasuryFixed: {CategoryTreasuryFixed, "Fixed-rate treasury", true},
	CategoryDebentures:    {CategoryDebentures, "Debentures", true},
}

// Info returns the behavior table entry for c
func (c InstrumentCategory) Info() (CategoryInfo, bool) {
	info, ok := instrumentCategories[c]
	return info, ok
}

// InstrumentCategories returns every known category sorted by code
func InstrumentCategories() []CategoryInfo {
	out := make([]CategoryInfo, 0, len(instrumentCategories))
	for _, info := range instrumentCategories {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// ReturnType is how an instrument's annual rate is derived
type ReturnType string

const (
	// ReturnFixed uses the configured rate as the annual rate
	ReturnFixed ReturnType = "fixed"
	// ReturnPercentOfReference multiplies the configured fraction by the reference rate
	ReturnPercentOfReference ReturnType = "percent_of_reference"
	// ReturnInflationPlus adds the configured spread to the inflation rate
	ReturnInflationPlus ReturnType = "inflation_plus"
)

// ReturnTypeInfo is the behavior table entry of a return type
type ReturnTypeInfo struct {
	ReturnType ReturnType `json:"return_type" yaml:"return_type"`
	Label      string     `json:"label" yaml:"label"`
	resolve    func(rate decimal.Decimal, market MarketRates) decimal.Decimal
}

// AnnualRate resolves the instrument's annual rate against the market benchmarks
func (rt ReturnTypeInfo) AnnualRate(rate decimal.Decimal, market MarketRates) decimal.Decimal {
	return rt.resolve(rate, market)
}

var returnTypes = map[ReturnType]ReturnTypeInfo{
	ReturnFixed: {ReturnFixed, "Fixed rate", func(rate decimal.Decimal, _ MarketRates) decimal.Decimal {
		return rate
	}},
	ReturnPercentOfReference: {ReturnPercentOfReference, "% of reference rate", func(rate decimal.Decimal, m MarketRates) decimal.Decimal {
		return rate.Mul(m.ReferenceRate)
	}},
	ReturnInflationPlus: {ReturnInflationPlus, "Fixed spread + inflation", func(rate decimal.Decimal, m MarketRates) decimal.Decimal {
		return rate.Add(m.InflationRate)
	}},
}

// Info returns the behavior table entry for rt
func (rt ReturnType) Info() (ReturnTypeInfo, bool) {
	info, ok := returnTypes[rt]
	return info, ok
}

// ReturnTypes returns every known return type sorted by code
func ReturnTypes() []ReturnTypeInfo {
	out := make([]ReturnTypeInfo, 0, len(returnTypes))
	for _, info := range returnTypes {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReturnType < out[j].ReturnType })
	return out
}

// InstrumentConfig is one side of a fixed-income comparison.
// Rate is a fraction whose meaning depends on ReturnType: the annual rate,
// the share of the reference rate (1.10 = 110%) or the spread over inflation.
type InstrumentConfig struct {
	Category            InstrumentCategory `yaml:"category" json:"category"`
	ReturnType          ReturnType         `yaml:"return_type" json:"return_type"`
	Rate                *decimal.Decimal   `yaml:"rate" json:"rate"`
	HoldingPeriodMonths int                `yaml:"holding_period_months" json:"holding_period_months"`
	// Taxable overrides the category's default tax exposure
	Taxable *bool `yaml:"taxable,omitempty" json:"taxable,omitempty"`
}

// IsTaxable resolves the tax exposure from the override or the category table
func (ic InstrumentConfig) IsTaxable() bool {
	if ic.Taxable != nil {
		return *ic.Taxable
	}
	info, ok := ic.Category.Info()
	return ok && info.Taxable
}

// Side names one of the two compared configurations
type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

// ComparisonInput is the request record of the fixed-income comparator
type ComparisonInput struct {
	A          InstrumentConfig `yaml:"a" json:"a"`
	B          InstrumentConfig `yaml:"b" json:"b"`
	BaseAmount decimal.Decimal  `yaml:"base_amount,omitempty" json:"base_amount,omitempty"`
	// Market overrides the engine's benchmark rates for this comparison
	Market *MarketRates `yaml:"market,omitempty" json:"market,omitempty"`
}

// TaxResult is the after-tax outcome of one instrument over its holding period
type TaxResult struct {
	Label                     string             `yaml:"label" json:"label"`
	Category                  InstrumentCategory `yaml:"category" json:"category"`
	ReturnType                ReturnType         `yaml:"return_type" json:"return_type"`
	AnnualRate                decimal.Decimal    `yaml:"annual_rate" json:"annual_rate"`
	MonthlyRate               decimal.Decimal    `yaml:"monthly_rate" json:"monthly_rate"`
	HoldingPeriodMonths       int                `yaml:"holding_period_months" json:"holding_period_months"`
	TaxPeriodUnits            int                `yaml:"tax_period_units" json:"tax_period_units"`
	Taxable                   bool               `yaml:"taxable" json:"taxable"`
	WithholdingRate           decimal.Decimal    `yaml:"withholding_rate" json:"withholding_rate"`
	TransactionRate           decimal.Decimal    `yaml:"transaction_rate" json:"transaction_rate"`
	GrossReturn               decimal.Decimal    `yaml:"gross_return" json:"gross_return"`
	WithholdingTaxAmount      decimal.Decimal    `yaml:"withholding_tax_amount" json:"withholding_tax_amount"`
	TransactionTaxAmount      decimal.Decimal    `yaml:"transaction_tax_amount" json:"transaction_tax_amount"`
	NetReturn                 decimal.Decimal    `yaml:"net_return" json:"net_return"`
	FinalAmount               decimal.Decimal    `yaml:"final_amount" json:"final_amount"`
	AnnualizedNetYieldPercent decimal.Decimal    `yaml:"annualized_net_yield_percent" json:"annualized_net_yield_percent"`
}

// TotalTax returns the sum of both taxes
func (tr TaxResult) TotalTax() decimal.Decimal {
	return tr.WithholdingTaxAmount.Add(tr.TransactionTaxAmount)
}

// ComparisonResult ranks two instruments by net return
type ComparisonResult struct {
	A          TaxResult       `yaml:"a" json:"a"`
	B          TaxResult       `yaml:"b" json:"b"`
	Winner     Side            `yaml:"winner" json:"winner"`
	BaseAmount decimal.Decimal `yaml:"base_amount" json:"base_amount"`
	// Difference is net(A) - net(B)
	Difference decimal.Decimal `yaml:"difference" json:"difference"`
	Market     MarketRates     `yaml:"market" json:"market"`
}

// WinnerResult returns the winning side's result
func (cr *ComparisonResult) WinnerResult() TaxResult {
	if cr.Winner == SideB {
		return cr.B
	}
	return cr.A
}
