package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ScenarioKind selects which calculator runs a scenario
type ScenarioKind string

const (
	KindCompound   ScenarioKind = "compound"
	KindRetirement ScenarioKind = "retirement"
	KindComparison ScenarioKind = "comparison"
)

// Scenario is one named calculation of a batch file. Exactly one of the
// inputs matching Kind must be set.
type Scenario struct {
	Name       string           `yaml:"name" json:"name"`
	Kind       ScenarioKind     `yaml:"kind" json:"kind"`
	Compound   *CompoundInput   `yaml:"compound,omitempty" json:"compound,omitempty"`
	Retirement *RetirementInput `yaml:"retirement,omitempty" json:"retirement,omitempty"`
	Comparison *ComparisonInput `yaml:"comparison,omitempty" json:"comparison,omitempty"`
}

// Configuration represents the complete input configuration
type Configuration struct {
	Rules     CalculationRules `yaml:"rules,omitempty" json:"rules,omitempty"`
	Scenarios []Scenario       `yaml:"scenarios" json:"scenarios"`
}

// ScenarioResult holds the outcome of one scenario. Only the field matching
// Kind is populated.
type ScenarioResult struct {
	Name       string            `yaml:"name" json:"name"`
	Kind       ScenarioKind      `yaml:"kind" json:"kind"`
	Compound   *CompoundResult   `yaml:"compound,omitempty" json:"compound,omitempty"`
	Retirement *RetirementResult `yaml:"retirement,omitempty" json:"retirement,omitempty"`
	Comparison *ComparisonResult `yaml:"comparison,omitempty" json:"comparison,omitempty"`
}

// Report is the output of a batch run
type Report struct {
	ID          uuid.UUID        `yaml:"id" json:"id"`
	GeneratedAt time.Time        `yaml:"generated_at" json:"generated_at"`
	Assumptions []string         `yaml:"assumptions" json:"assumptions"` // from the rules in effect
	Highlights  []string         `yaml:"highlights" json:"highlights"`
	Results     []ScenarioResult `yaml:"results" json:"results"`
}

var hundred = decimal.NewFromInt(100)

// GenerateAssumptions creates dynamic assumptions list from actual rule values
func (cr *CalculationRules) GenerateAssumptions() []string {
	out := []string{
		fmt.Sprintf("Reference rate: %s%% a year", cr.Market.ReferenceRate.Mul(hundred).StringFixed(2)),
		fmt.Sprintf("Inflation rate: %s%% a year", cr.Market.InflationRate.Mul(hundred).StringFixed(2)),
		fmt.Sprintf("Sustainable withdrawal: %s%% of capital a month", cr.WithdrawalRate.Mul(hundred).StringFixed(2)),
		fmt.Sprintf("Interest rounding: %s", cr.Rounding),
		"Annual rates converted to monthly by compounding: (1+r)^(1/12) - 1",
	}
	if len(cr.Tax.WithholdingBrackets) > 0 {
		out = append(out, fmt.Sprintf("Income tax tiers in %s, %s%% to %s%%", cr.Tax.PeriodUnit,
			cr.Tax.WithholdingBrackets[0].Rate.Mul(hundred).StringFixed(1), cr.Tax.FinalWithholding.Mul(hundred).StringFixed(1)))
	}
	return out
}
