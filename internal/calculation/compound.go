package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finkit/finproj/internal/domain"
)

// CompoundProjector simulates month-by-month compound growth under up to
// three rate regimes sharing the same principal, contribution and term
type CompoundProjector struct {
	MaxTermMonths int
	Rounding      domain.RoundingPolicy
	Logger        Logger
}

// NewCompoundProjector creates a projector with default limits
func NewCompoundProjector() *CompoundProjector {
	rules := domain.DefaultCalculationRules()
	return NewCompoundProjectorWithConfig(rules)
}

// NewCompoundProjectorWithConfig creates a projector bound to the given rules
func NewCompoundProjectorWithConfig(rules domain.CalculationRules) *CompoundProjector {
	return &CompoundProjector{
		MaxTermMonths: rules.MaxTermMonths,
		Rounding:      rules.Rounding,
		Logger:        NopLogger{},
	}
}

// Project runs every active regime of the input. A regime is active when its
// rate is non-zero.
func (cp *CompoundProjector) Project(in domain.CompoundInput) (*domain.CompoundResult, error) {
	if !in.Principal.IsPositive() {
		return nil, domain.NewValidationError("principal", "must be greater than zero")
	}
	if in.MonthlyContribution.IsNegative() {
		return nil, domain.NewValidationError("monthly_contribution", "must not be negative")
	}
	rounding := in.Rounding
	if rounding == "" {
		rounding = cp.Rounding
	}
	if rounding == "" {
		rounding = domain.RoundingExact
	}
	if !rounding.Valid() {
		return nil, domain.NewValidationError("rounding", "must be 'exact' or 'truncate_cents'")
	}
	term, err := ResolveTerm(in.Term, cp.MaxTermMonths)
	if err != nil {
		return nil, err
	}

	for regime := range in.Rates {
		if !regime.Valid() {
			return nil, domain.NewValidationError("rates", fmt.Sprintf("unknown regime %q", regime))
		}
	}

	result := &domain.CompoundResult{
		Principal:           in.Principal,
		MonthlyContribution: in.MonthlyContribution,
		TermMonths:          term,
		Rounding:            rounding,
	}
	for _, regime := range domain.Regimes {
		spec, ok := in.Rates[regime]
		if !ok || spec.Value.IsZero() {
			continue
		}
		field := "rates." + string(regime)
		monthly, err := ResolveMonthlyRate(field, spec)
		if err != nil {
			return nil, err
		}
		proj := simulate(in.Principal, in.MonthlyContribution, monthly, term, rounding)
		proj.Regime = regime
		proj.SourceRate = spec
		result.Regimes = append(result.Regimes, proj)
		cp.logger().Debugf("compound %s: monthly rate %s over %d months, final %s", regime, monthly, term, proj.FinalBalance.StringFixed(2))
	}
	if len(result.Regimes) == 0 {
		return nil, domain.NewValidationError("rates", "missing required input: at least one non-zero rate")
	}
	return result, nil
}

func (cp *CompoundProjector) logger() Logger {
	if cp.Logger == nil {
		return NopLogger{}
	}
	return cp.Logger
}

// simulate applies balance[i] = balance[i-1] + balance[i-1]*rate + contribution
func simulate(principal, contribution, monthly decimal.Decimal, term int, rounding domain.RoundingPolicy) domain.RegimeProjection {
	rows := make([]domain.SimulationRow, 0, term+1)
	balance := principal
	cumulativeInterest := decimal.Zero
	rows = append(rows, domain.SimulationRow{
		Month:                   0,
		CumulativeContributions: principal,
		InterestThisMonth:       decimal.Zero,
		CumulativeInterest:      decimal.Zero,
		Balance:                 principal,
	})

	for i := 1; i <= term; i++ {
		interest := rounding.Apply(balance.Mul(monthly))
		balance = rounding.Apply(balance.Add(interest).Add(contribution))
		contributed := principal.Add(contribution.Mul(decimal.NewFromInt(int64(i))))
		cumulativeInterest = rounding.Apply(balance.Sub(contributed))
		rows = append(rows, domain.SimulationRow{
			Month:                   i,
			CumulativeContributions: contributed,
			InterestThisMonth:       interest,
			CumulativeInterest:      cumulativeInterest,
			Balance:                 balance,
		})
	}

	last := rows[len(rows)-1]
	return domain.RegimeProjection{
		MonthlyRate:      monthly,
		FinalBalance:     last.Balance,
		TotalContributed: last.CumulativeContributions,
		TotalInterest:    last.CumulativeInterest,
		Rows:             rows,
	}
}
