package calculation

import (
	"context"
	"fmt"

	"github.com/finkit/finproj/internal/domain"
)

// CalculationEngine orchestrates the calculators for batch scenario runs
type CalculationEngine struct {
	Rules       domain.CalculationRules
	Compound    *CompoundProjector
	Retirement  *RetirementProjector
	FixedIncome *FixedIncomeComparator
	Logger      Logger
}

// NewCalculationEngine creates a new calculation engine with default rules
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithConfig(domain.DefaultCalculationRules())
}

// NewCalculationEngineWithConfig creates a calculation engine with configurable
// rounding, limits, market rates and tax tables. Unset rules take defaults.
func NewCalculationEngineWithConfig(rules domain.CalculationRules) *CalculationEngine {
	rules = rules.WithDefaults()
	engine := &CalculationEngine{
		Rules:       rules,
		Compound:    NewCompoundProjectorWithConfig(rules),
		Retirement:  NewRetirementProjectorWithConfig(rules),
		FixedIncome: NewFixedIncomeComparatorWithConfig(rules),
	}
	engine.SetLogger(nil)
	return engine
}

// SetLogger sets the logger for the engine and its calculators. If nil is
// provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	ce.Logger = l
	ce.Compound.Logger = l
	ce.Retirement.Logger = l
	ce.FixedIncome.Logger = l
}

// RunScenario calculates a single named scenario
func (ce *CalculationEngine) RunScenario(ctx context.Context, scenario *domain.Scenario) (*domain.ScenarioResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := &domain.ScenarioResult{Name: scenario.Name, Kind: scenario.Kind}

	var err error
	switch scenario.Kind {
	case domain.KindCompound:
		if scenario.Compound == nil {
			return nil, domain.NewValidationError("compound", "missing required input")
		}
		res.Compound, err = ce.Compound.Project(*scenario.Compound)
	case domain.KindRetirement:
		if scenario.Retirement == nil {
			return nil, domain.NewValidationError("retirement", "missing required input")
		}
		res.Retirement, err = ce.Retirement.Project(*scenario.Retirement)
	case domain.KindComparison:
		if scenario.Comparison == nil {
			return nil, domain.NewValidationError("comparison", "missing required input")
		}
		res.Comparison, err = ce.FixedIncome.Compare(*scenario.Comparison)
	default:
		return nil, domain.NewValidationError("kind", fmt.Sprintf("unknown scenario kind %q", scenario.Kind))
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// RunScenarios calculates every scenario in order. The first failure aborts the
// run; no partial report is returned.
func (ce *CalculationEngine) RunScenarios(ctx context.Context, scenarios []domain.Scenario) (*domain.Report, error) {
	report := &domain.Report{
		ID:          idFunc(),
		GeneratedAt: nowFunc(),
		Assumptions: ce.Rules.GenerateAssumptions(),
		Results:     make([]domain.ScenarioResult, 0, len(scenarios)),
	}
	for i := range scenarios {
		ce.Logger.Infof("running scenario %d: %s (%s)", i+1, scenarios[i].Name, scenarios[i].Kind)
		res, err := ce.RunScenario(ctx, &scenarios[i])
		if err != nil {
			ce.Logger.Errorf("scenario %s failed: %v", scenarios[i].Name, err)
			return nil, fmt.Errorf("scenario %q: %w", scenarios[i].Name, err)
		}
		report.Results = append(report.Results, *res)
	}
	report.Highlights = ce.generateHighlights(report.Results)
	return report, nil
}
