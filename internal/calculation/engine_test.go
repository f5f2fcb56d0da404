package calculation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finkit/finproj/internal/domain"
)

type recordingLogger struct {
	NopLogger
	infos  []string
	errors []string
}

func (r *recordingLogger) Infof(format string, args ...any) {
	r.infos = append(r.infos, fmt.Sprintf(format, args...))
}

func (r *recordingLogger) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func sampleScenarios() []domain.Scenario {
	return []domain.Scenario{
		{
			Name: "Monthly savings",
			Kind: domain.KindCompound,
			Compound: &domain.CompoundInput{
				Principal:           decimal.NewFromInt(1000),
				MonthlyContribution: decimal.NewFromInt(100),
				Term:                domain.TermMonths(24),
				Rates:               informedMonthly(0.01),
			},
		},
		{
			Name:       "Retire at 60",
			Kind:       domain.KindRetirement,
			Retirement: func() *domain.RetirementInput { in := baseRetirementInput(); return &in }(),
		},
		{
			Name: "CDB vs LCA",
			Kind: domain.KindComparison,
			Comparison: &domain.ComparisonInput{
				A: instrument(domain.CategoryCDB, domain.ReturnPercentOfReference, 1.1, 24),
				B: instrument(domain.CategoryLCA, domain.ReturnPercentOfReference, 0.9, 24),
			},
		},
	}
}

func TestCalculationEngine_RunScenarios(t *testing.T) {
	fixedID := uuid.MustParse("5f1c7f0e-3c5c-4a8e-9a39-2d1fc0a4b6e1")
	fixedNow := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	SetIDFunc(func() uuid.UUID { return fixedID })
	SetNowFunc(func() time.Time { return fixedNow })
	t.Cleanup(func() {
		SetIDFunc(uuid.New)
		SetNowFunc(time.Now)
	})

	engine := NewCalculationEngine()
	logger := &recordingLogger{}
	engine.SetLogger(logger)

	report, err := engine.RunScenarios(context.Background(), sampleScenarios())
	require.NoError(t, err)

	assert.Equal(t, fixedID, report.ID)
	assert.Equal(t, fixedNow, report.GeneratedAt)
	require.Len(t, report.Results, 3)
	assert.NotNil(t, report.Results[0].Compound)
	assert.NotNil(t, report.Results[1].Retirement)
	assert.NotNil(t, report.Results[2].Comparison)
	assert.NotEmpty(t, report.Assumptions)
	require.Len(t, report.Highlights, 3)
	assert.Contains(t, report.Highlights[0], "Monthly savings: informed regime ends highest")
	assert.Contains(t, report.Highlights[1], "short of the 2000000.00 goal")
	assert.Contains(t, report.Highlights[2], "CDB vs LCA: instrument")

	// the engine logger reaches the calculators
	assert.Len(t, logger.infos, 4)
	assert.Same(t, logger, engine.FixedIncome.Logger)
}

func TestCalculationEngine_FailureAbortsRun(t *testing.T) {
	scenarios := sampleScenarios()
	scenarios[1].Retirement.RetirementAge = scenarios[1].Retirement.CurrentAge

	engine := NewCalculationEngine()
	logger := &recordingLogger{}
	engine.SetLogger(logger)

	report, err := engine.RunScenarios(context.Background(), scenarios)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), `scenario "Retire at 60"`)
	assert.Len(t, logger.errors, 1)
}

func TestCalculationEngine_RunScenario(t *testing.T) {
	engine := NewCalculationEngine()
	ctx := context.Background()

	_, err := engine.RunScenario(ctx, &domain.Scenario{Name: "x", Kind: "mortgage"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = engine.RunScenario(ctx, &domain.Scenario{Name: "x", Kind: domain.KindComparison})
	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "comparison", ve.Field)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	scenarios := sampleScenarios()
	_, err = engine.RunScenario(cancelled, &scenarios[0])
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalculationEngine_RulesFlowToCalculators(t *testing.T) {
	rules := domain.CalculationRules{
		Rounding:      domain.RoundingTruncateCents,
		MaxTermMonths: 24,
		Market:        domain.MarketRates{ReferenceRate: decimal.NewFromFloat(0.10)},
	}
	engine := NewCalculationEngineWithConfig(rules)

	assert.Equal(t, domain.RoundingTruncateCents, engine.Compound.Rounding)
	assert.Equal(t, 24, engine.Retirement.MaxTermMonths)
	assert.Equal(t, "0.1", engine.FixedIncome.Market.ReferenceRate.String())
	assert.Equal(t, "0.045", engine.FixedIncome.Market.InflationRate.String())
	assert.Equal(t, "10000", engine.FixedIncome.BaseAmount.String())

	_, err := engine.Compound.Project(domain.CompoundInput{
		Principal: decimal.NewFromInt(1),
		Term:      domain.TermMonths(25),
		Rates:     informedMonthly(0.01),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
