package domain

import (
	"github.com/shopspring/decimal"
)

// PeriodUnit is the unit a tax table's thresholds are expressed in
type PeriodUnit string

const (
	PeriodDays   PeriodUnit = "days"
	PeriodMonths PeriodUnit = "months"
)

// TransactionTaxWindow is the number of period units during which the
// short-term transaction tax applies.
const TransactionTaxWindow = 30

// TaxBracket is one tier of the withholding tax: holding periods up to and
// including UpTo units pay Rate.
type TaxBracket struct {
	UpTo int             `yaml:"up_to" json:"up_to"`
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
}

// TaxRules is the configurable tax table of the fixed-income comparator
type TaxRules struct {
	PeriodUnit          PeriodUnit        `yaml:"period_unit" json:"period_unit"`
	WithholdingBrackets []TaxBracket      `yaml:"withholding_brackets" json:"withholding_brackets"`
	FinalWithholding    decimal.Decimal   `yaml:"final_withholding_rate" json:"final_withholding_rate"` // beyond the last bracket
	TransactionTaxTable []decimal.Decimal `yaml:"transaction_tax_table" json:"transaction_tax_table"`   // fraction of yield, by period unit
}

// transactionTaxPercents is the regressive short-term tax, percent of yield
// per elapsed day.
var transactionTaxPercents = []int64{
	96, 93, 90, 86, 83, 80, 76, 73, 70, 66, 63, 60, 56, 53, 50,
	46, 43, 40, 36, 33, 30, 26, 23, 20, 16, 13, 10, 6, 3, 0,
}

// DefaultTaxRules returns the day-based withholding and transaction tax tables
func DefaultTaxRules() TaxRules {
	table := make([]decimal.Decimal, len(transactionTaxPercents))
	for i, p := range transactionTaxPercents {
		table[i] = decimal.New(p, -2)
	}
	return TaxRules{
		PeriodUnit: PeriodDays,
		WithholdingBrackets: []TaxBracket{
			{UpTo: 180, Rate: decimal.NewFromFloat(0.225)},
			{UpTo: 360, Rate: decimal.NewFromFloat(0.20)},
			{UpTo: 720, Rate: decimal.NewFromFloat(0.175)},
		},
		FinalWithholding:    decimal.NewFromFloat(0.15),
		TransactionTaxTable: table,
	}
}

// MonthlyTaxRules expresses the default withholding tiers in months
// (6/12/24). The transaction tax table is unchanged, indexed by month.
func MonthlyTaxRules() TaxRules {
	rules := DefaultTaxRules()
	rules.PeriodUnit = PeriodMonths
	rules.WithholdingBrackets = []TaxBracket{
		{UpTo: 6, Rate: decimal.NewFromFloat(0.225)},
		{UpTo: 12, Rate: decimal.NewFromFloat(0.20)},
		{UpTo: 24, Rate: decimal.NewFromFloat(0.175)},
	}
	return rules
}

// IsZero reports whether no table was configured
func (tr TaxRules) IsZero() bool {
	return tr.PeriodUnit == "" && len(tr.WithholdingBrackets) == 0 && len(tr.TransactionTaxTable) == 0 && tr.FinalWithholding.IsZero()
}

// Validate checks the tables respect the tax invariants: tiers ascending with
// non-increasing rates, and a transaction table of TransactionTaxWindow
// non-increasing entries ending at zero.
func (tr TaxRules) Validate() error {
	if tr.PeriodUnit != PeriodDays && tr.PeriodUnit != PeriodMonths {
		return NewValidationError("tax.period_unit", "must be 'days' or 'months'")
	}
	if len(tr.WithholdingBrackets) == 0 {
		return NewValidationError("tax.withholding_brackets", "at least one bracket is required")
	}
	prevUpTo := 0
	prevRate := decimal.NewFromInt(1)
	for _, b := range tr.WithholdingBrackets {
		if b.UpTo <= prevUpTo {
			return NewValidationError("tax.withholding_brackets", "up_to must be strictly increasing and positive")
		}
		if b.Rate.IsNegative() || b.Rate.GreaterThan(prevRate) {
			return NewValidationError("tax.withholding_brackets", "rates must be non-negative and non-increasing")
		}
		prevUpTo, prevRate = b.UpTo, b.Rate
	}
	if tr.FinalWithholding.IsNegative() || tr.FinalWithholding.GreaterThan(prevRate) {
		return NewValidationError("tax.final_withholding_rate", "must be non-negative and not above the last bracket")
	}
	if len(tr.TransactionTaxTable) != TransactionTaxWindow {
		return NewValidationError("tax.transaction_tax_table", "must have exactly 30 entries")
	}
	prevRate = decimal.NewFromInt(1)
	for _, r := range tr.TransactionTaxTable {
		if r.IsNegative() || r.GreaterThan(prevRate) {
			return NewValidationError("tax.transaction_tax_table", "entries must be between 0 and 1 and non-increasing")
		}
		prevRate = r
	}
	if !tr.TransactionTaxTable[TransactionTaxWindow-1].IsZero() {
		return NewValidationError("tax.transaction_tax_table", "last entry must be zero")
	}
	return nil
}

// CalculationRules gathers every tunable of the engine
type CalculationRules struct {
	Rounding       RoundingPolicy  `yaml:"rounding,omitempty" json:"rounding,omitempty" envconfig:"ROUNDING"`
	MaxTermMonths  int             `yaml:"max_term_months,omitempty" json:"max_term_months,omitempty" envconfig:"MAX_TERM_MONTHS"`
	WithdrawalRate decimal.Decimal `yaml:"withdrawal_rate,omitempty" json:"withdrawal_rate,omitempty" envconfig:"WITHDRAWAL_RATE"` // conservative monthly withdrawal
	BaseAmount     decimal.Decimal `yaml:"base_amount,omitempty" json:"base_amount,omitempty" envconfig:"BASE_AMOUNT"`             // comparator default
	Market         MarketRates     `yaml:"market,omitempty" json:"market,omitempty" envconfig:"MARKET"`
	Tax            TaxRules        `yaml:"tax,omitempty" json:"tax,omitempty" ignored:"true"`
}

// DefaultCalculationRules returns the engine defaults
func DefaultCalculationRules() CalculationRules {
	return CalculationRules{
		Rounding:       RoundingExact,
		MaxTermMonths:  1200,
		WithdrawalRate: decimal.NewFromFloat(0.005),
		BaseAmount:     decimal.NewFromInt(10000),
		Market:         DefaultMarketRates(),
		Tax:            DefaultTaxRules(),
	}
}

// WithDefaults fills every unset field from DefaultCalculationRules
func (cr CalculationRules) WithDefaults() CalculationRules {
	def := DefaultCalculationRules()
	if cr.Rounding == "" {
		cr.Rounding = def.Rounding
	}
	if cr.MaxTermMonths == 0 {
		cr.MaxTermMonths = def.MaxTermMonths
	}
	if cr.WithdrawalRate.IsZero() {
		cr.WithdrawalRate = def.WithdrawalRate
	}
	if cr.BaseAmount.IsZero() {
		cr.BaseAmount = def.BaseAmount
	}
	cr.Market = cr.Market.WithDefaults()
	if cr.Tax.IsZero() {
		cr.Tax = def.Tax
	}
	return cr
}

// Validate checks the rules after defaults were applied
func (cr CalculationRules) Validate() error {
	if !cr.Rounding.Valid() {
		return NewValidationError("rounding", "must be 'exact' or 'truncate_cents'")
	}
	if cr.MaxTermMonths < 1 {
		return NewValidationError("max_term_months", "must be positive")
	}
	if !cr.WithdrawalRate.IsPositive() || cr.WithdrawalRate.GreaterThan(decimal.NewFromFloat(0.1)) {
		return NewValidationError("withdrawal_rate", "must be between 0 and 10% per month")
	}
	if !cr.BaseAmount.IsPositive() {
		return NewValidationError("base_amount", "must be positive")
	}
	if cr.Market.ReferenceRate.LessThan(decimal.NewFromInt(-1)) || cr.Market.InflationRate.LessThan(decimal.NewFromInt(-1)) {
		return NewValidationError("market", "benchmark rates cannot be below -100%")
	}
	return cr.Tax.Validate()
}
