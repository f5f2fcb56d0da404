package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/finkit/finproj/internal/domain"
)

// InputParser handles parsing of scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a scenario batch from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a scenario batch
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	config.Rules = config.Rules.WithDefaults()
	defaultInformedUnits(&config)

	// Validate the configuration
	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration checks the structure of a batch. Value constraints
// are enforced by the calculators when the scenarios run.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := config.Rules.Validate(); err != nil {
		return fmt.Errorf("rules validation failed: %w", err)
	}

	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	seen := make(map[string]bool, len(config.Scenarios))
	for i, scenario := range config.Scenarios {
		if err := ip.validateScenario(&scenario); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
		if seen[scenario.Name] {
			return fmt.Errorf("scenario %d validation failed: duplicate name %q", i, scenario.Name)
		}
		seen[scenario.Name] = true
	}

	return nil
}

func (ip *InputParser) validateScenario(scenario *domain.Scenario) error {
	if scenario.Name == "" {
		return domain.NewValidationError("name", "scenario name is required")
	}

	inputs := 0
	for _, set := range []bool{scenario.Compound != nil, scenario.Retirement != nil, scenario.Comparison != nil} {
		if set {
			inputs++
		}
	}
	if inputs != 1 {
		return domain.NewValidationError("kind", "exactly one of compound, retirement or comparison must be set")
	}

	switch scenario.Kind {
	case domain.KindCompound:
		if scenario.Compound == nil {
			return domain.NewValidationError("compound", "missing required input")
		}
		return ip.validateCompound(scenario.Compound)
	case domain.KindRetirement:
		if scenario.Retirement == nil {
			return domain.NewValidationError("retirement", "missing required input")
		}
	case domain.KindComparison:
		if scenario.Comparison == nil {
			return domain.NewValidationError("comparison", "missing required input")
		}
		return ip.validateComparison(scenario.Comparison)
	default:
		return domain.NewValidationError("kind", fmt.Sprintf("unknown scenario kind %q", scenario.Kind))
	}
	return nil
}

// defaultInformedUnits quotes a unit-less informed rate monthly, like the
// CLI and API do. Benchmark regimes keep the annual default.
func defaultInformedUnits(config *domain.Configuration) {
	for _, scenario := range config.Scenarios {
		if scenario.Compound == nil {
			continue
		}
		if spec, ok := scenario.Compound.Rates[domain.RegimeInformed]; ok && spec.Unit == "" {
			spec.Unit = domain.RateUnitMonthly
			scenario.Compound.Rates[domain.RegimeInformed] = spec
		}
	}
}

func (ip *InputParser) validateCompound(in *domain.CompoundInput) error {
	if in.Term.IsZero() {
		return domain.NewValidationError("term", "one of months, years or until is required")
	}
	if !in.Rounding.Valid() {
		return domain.NewValidationError("rounding", "must be 'exact' or 'truncate_cents'")
	}
	for regime, spec := range in.Rates {
		if !regime.Valid() {
			return domain.NewValidationError("rates", fmt.Sprintf("unknown regime %q", regime))
		}
		if !spec.Unit.Valid() {
			return domain.NewValidationError("rates."+string(regime), "rate unit must be 'monthly' or 'annual'")
		}
	}
	return nil
}

func (ip *InputParser) validateComparison(in *domain.ComparisonInput) error {
	for side, cfg := range map[domain.Side]domain.InstrumentConfig{domain.SideA: in.A, domain.SideB: in.B} {
		field := "instrument " + string(side)
		if _, ok := cfg.Category.Info(); !ok {
			return domain.NewValidationError(field, fmt.Sprintf("unknown category %q", cfg.Category))
		}
		if _, ok := cfg.ReturnType.Info(); !ok {
			return domain.NewValidationError(field, fmt.Sprintf("unknown return type %q", cfg.ReturnType))
		}
	}
	return nil
}

// SaveConfiguration writes a batch as YAML
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}

// CreateExampleConfiguration creates an example scenario batch with one
// scenario of each kind
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	rules := domain.DefaultCalculationRules()
	years := decimal.NewFromInt(10)
	cdbRate := decimal.NewFromFloat(1.10)
	lcaRate := decimal.NewFromFloat(0.92)

	return &domain.Configuration{
		Rules: domain.CalculationRules{
			Rounding:       rules.Rounding,
			MaxTermMonths:  rules.MaxTermMonths,
			WithdrawalRate: rules.WithdrawalRate,
			BaseAmount:     rules.BaseAmount,
			Market:         rules.Market,
		},
		Scenarios: []domain.Scenario{
			{
				Name: "Ten years of monthly savings",
				Kind: domain.KindCompound,
				Compound: &domain.CompoundInput{
					Principal:           decimal.NewFromInt(5000),
					MonthlyContribution: decimal.NewFromInt(500),
					Term:                domain.TermSpec{Years: &years},
					Rates: map[domain.Regime]domain.RateSpec{
						domain.RegimeInformed:         domain.AnnualRate(decimal.NewFromFloat(0.12)),
						domain.RegimeInflationIndexed: domain.AnnualRate(rules.Market.InflationRate),
						domain.RegimeReferenceIndexed: domain.AnnualRate(rules.Market.ReferenceRate),
					},
				},
			},
			{
				Name: "Retire at 60",
				Kind: domain.KindRetirement,
				Retirement: &domain.RetirementInput{
					MonthlyIncome:    decimal.NewFromInt(8000),
					IncomePercentage: decimal.NewFromFloat(0.15),
					CurrentAge:       30,
					RetirementAge:    60,
					AnnualReturn:     decimal.NewFromFloat(0.08),
					CurrentPatrimony: decimal.NewFromInt(20000),
					MonthlyExpenses:  decimal.NewFromInt(6000),
				},
			},
			{
				Name: "CDB 110% vs LCA 92% for two years",
				Kind: domain.KindComparison,
				Comparison: &domain.ComparisonInput{
					A: domain.InstrumentConfig{
						Category:            domain.CategoryCDB,
						ReturnType:          domain.ReturnPercentOfReference,
						Rate:                &cdbRate,
						HoldingPeriodMonths: 24,
					},
					B: domain.InstrumentConfig{
						Category:            domain.CategoryLCA,
						ReturnType:          domain.ReturnPercentOfReference,
						Rate:                &lcaRate,
						HoldingPeriodMonths: 24,
					},
					BaseAmount: decimal.NewFromInt(10000),
				},
			},
		},
	}
}
