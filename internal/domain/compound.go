package domain

import (
	"github.com/shopspring/decimal"

	fpdecimal "github.com/finkit/finproj/pkg/decimal"
)

// Regime identifies one of the parallel rate regimes of a compound simulation
type Regime string

const (
	// RegimeInformed uses the rate typed in by the user
	RegimeInformed Regime = "informed"
	// RegimeInflationIndexed grows at the inflation index rate
	RegimeInflationIndexed Regime = "inflation_indexed"
	// RegimeReferenceIndexed grows at the reference (interbank) rate
	RegimeReferenceIndexed Regime = "reference_indexed"
)

// Regimes lists every regime in output order
var Regimes = []Regime{RegimeInformed, RegimeInflationIndexed, RegimeReferenceIndexed}

// Valid reports whether r is a known regime
func (r Regime) Valid() bool {
	for _, known := range Regimes {
		if r == known {
			return true
		}
	}
	return false
}

// RoundingPolicy controls how monthly interest is carried back into the balance
type RoundingPolicy string

const (
	// RoundingExact keeps every intermediate value at WorkingScale decimal places
	RoundingExact RoundingPolicy = "exact"
	// RoundingTruncateCents truncates interest, balance and cumulative interest
	// to cents each month
	RoundingTruncateCents RoundingPolicy = "truncate_cents"
)

// WorkingScale is the number of decimal places kept by RoundingExact.
const WorkingScale = 12

// Valid reports whether p is a known policy. Empty means RoundingExact.
func (p RoundingPolicy) Valid() bool {
	return p == "" || p == RoundingExact || p == RoundingTruncateCents
}

// Apply rounds an amount according to the policy
func (p RoundingPolicy) Apply(d decimal.Decimal) decimal.Decimal {
	if p == RoundingTruncateCents {
		return fpdecimal.NewMoneyFromDecimal(d).TruncateCents().Decimal
	}
	return d.Round(WorkingScale)
}

// CompoundInput is the request record of the compound-interest simulator
type CompoundInput struct {
	Principal           decimal.Decimal     `yaml:"principal" json:"principal"`
	MonthlyContribution decimal.Decimal     `yaml:"monthly_contribution,omitempty" json:"monthly_contribution,omitempty"`
	Term                TermSpec            `yaml:"term" json:"term"`
	Rates               map[Regime]RateSpec `yaml:"rates" json:"rates"`
	Rounding            RoundingPolicy      `yaml:"rounding,omitempty" json:"rounding,omitempty"`
}

// SimulationRow is the state of one regime at the end of a month.
// Month 0 is the initial deposit with no interest.
type SimulationRow struct {
	Month                   int             `yaml:"month" json:"month"`
	CumulativeContributions decimal.Decimal `yaml:"cumulative_contributions" json:"cumulative_contributions"`
	InterestThisMonth       decimal.Decimal `yaml:"interest_this_month" json:"interest_this_month"`
	CumulativeInterest      decimal.Decimal `yaml:"cumulative_interest" json:"cumulative_interest"`
	Balance                 decimal.Decimal `yaml:"balance" json:"balance"`
}

// RegimeProjection is the full series and totals of one active regime
type RegimeProjection struct {
	Regime           Regime          `yaml:"regime" json:"regime"`
	SourceRate       RateSpec        `yaml:"source_rate" json:"source_rate"`
	MonthlyRate      decimal.Decimal `yaml:"monthly_rate" json:"monthly_rate"`
	FinalBalance     decimal.Decimal `yaml:"final_balance" json:"final_balance"`
	TotalContributed decimal.Decimal `yaml:"total_contributed" json:"total_contributed"`
	TotalInterest    decimal.Decimal `yaml:"total_interest" json:"total_interest"`
	Rows             []SimulationRow `yaml:"rows" json:"rows"`
}

// CompoundResult holds one projection per active regime
type CompoundResult struct {
	Principal           decimal.Decimal    `yaml:"principal" json:"principal"`
	MonthlyContribution decimal.Decimal    `yaml:"monthly_contribution" json:"monthly_contribution"`
	TermMonths          int                `yaml:"term_months" json:"term_months"`
	Rounding            RoundingPolicy     `yaml:"rounding" json:"rounding"`
	Regimes             []RegimeProjection `yaml:"regimes" json:"regimes"`
}

// Regime returns the projection for r, if it was active
func (cr *CompoundResult) Regime(r Regime) (*RegimeProjection, bool) {
	for i := range cr.Regimes {
		if cr.Regimes[i].Regime == r {
			return &cr.Regimes[i], true
		}
	}
	return nil, false
}

// Best returns the regime with the highest final balance. Ties keep the
// earlier regime in Regimes order.
func (cr *CompoundResult) Best() *RegimeProjection {
	var best *RegimeProjection
	for i := range cr.Regimes {
		if best == nil || cr.Regimes[i].FinalBalance.GreaterThan(best.FinalBalance) {
			best = &cr.Regimes[i]
		}
	}
	return best
}
