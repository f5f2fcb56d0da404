package integration

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finkit/finproj/internal/calculation"
	"github.com/finkit/finproj/internal/config"
	"github.com/finkit/finproj/internal/domain"
)

const exampleScenarios = "../testdata/example_scenarios.yaml"

func runExample(t *testing.T) *domain.Report {
	t.Helper()
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(exampleScenarios)
	require.NoError(t, err)

	engine := calculation.NewCalculationEngineWithConfig(cfg.Rules)
	report, err := engine.RunScenarios(context.Background(), cfg.Scenarios)
	require.NoError(t, err)
	return report
}

func TestBasicCalculations(t *testing.T) {
	report := runExample(t)

	require.Len(t, report.Results, 6)
	kinds := []domain.ScenarioKind{
		domain.KindCompound, domain.KindCompound,
		domain.KindRetirement, domain.KindRetirement,
		domain.KindComparison, domain.KindComparison,
	}
	for i, res := range report.Results {
		assert.Equal(t, kinds[i], res.Kind, res.Name)
	}
	assert.NotEmpty(t, report.Assumptions)
	assert.NotEmpty(t, report.Highlights)
}

func TestCompoundInvariants(t *testing.T) {
	report := runExample(t)

	ten := report.Results[0].Compound
	require.Len(t, ten.Regimes, 3)
	assert.Equal(t, 120, ten.TermMonths)
	for _, p := range ten.Regimes {
		require.Len(t, p.Rows, 121)
		last := p.Rows[len(p.Rows)-1]
		assert.True(t, p.FinalBalance.Equal(last.Balance), p.Regime)
		assert.True(t, p.FinalBalance.Equal(p.TotalContributed.Add(p.TotalInterest)), p.Regime)
		assert.Equal(t, "65000", p.TotalContributed.String())
	}
	// 14.65% beats 12% which beats 4.5%
	assert.Equal(t, domain.RegimeReferenceIndexed, ten.Best().Regime)

	truncated := report.Results[1].Compound
	assert.Equal(t, domain.RoundingTruncateCents, truncated.Rounding)
	for _, row := range truncated.Regimes[0].Rows {
		assert.True(t, row.Balance.Equal(row.Balance.Truncate(2)), "month %d", row.Month)
	}
	assert.Equal(t, "1221.1", truncated.Regimes[0].Rows[2].Balance.String())
}

func TestRetirementOutcomes(t *testing.T) {
	report := runExample(t)

	onTrack := report.Results[2].Retirement
	assert.Equal(t, 360, onTrack.MonthsToRetirement)
	assert.Equal(t, "1600000", onTrack.NeededCapital.String())
	assert.True(t, onTrack.GoalAchieved)
	assert.True(t, onTrack.Shortfall.IsZero())
	assert.True(t, onTrack.TotalAccumulated.Equal(onTrack.CurrentPrincipalFutureValue.Add(onTrack.ContributionsFutureValue)))
	assert.True(t, onTrack.YearsOfExpenses.GreaterThan(decimal.NewFromInt(20)))

	late := report.Results[3].Retirement
	assert.False(t, late.GoalAchieved)
	assert.True(t, late.SurplusOrZero.IsZero())
	assert.True(t, late.Shortfall.Equal(late.NeededCapital.Sub(late.TotalAccumulated)))
	assert.True(t, late.YearsOfExpenses.IsZero())
}

func TestComparisonOutcomes(t *testing.T) {
	report := runExample(t)

	// the exempt note edges out the taxed CD at 17.5%
	exempt := report.Results[4].Comparison
	assert.Equal(t, domain.SideB, exempt.Winner)
	assert.Equal(t, "0.175", exempt.A.WithholdingRate.String())
	assert.True(t, exempt.B.WithholdingTaxAmount.IsZero())
	assert.True(t, exempt.Difference.IsNegative())

	for _, cmp := range []*domain.ComparisonResult{exempt, report.Results[5].Comparison} {
		for _, side := range []domain.TaxResult{cmp.A, cmp.B} {
			taxes := side.WithholdingTaxAmount.Add(side.TransactionTaxAmount)
			assert.True(t, side.NetReturn.Equal(side.GrossReturn.Sub(taxes)), side.Label)
			assert.True(t, side.FinalAmount.Equal(cmp.BaseAmount.Add(side.NetReturn)), side.Label)
		}
	}

	short := report.Results[5].Comparison
	assert.Equal(t, "50000", short.BaseAmount.String())
	assert.Equal(t, "0.225", short.A.WithholdingRate.String())
	assert.Equal(t, domain.SideA, short.Winner)
}
