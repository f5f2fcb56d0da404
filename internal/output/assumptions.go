package output

import "github.com/finkit/finproj/internal/domain"

// DefaultAssumptions lists the modeling assumptions of the default rules.
func DefaultAssumptions() []string {
	rules := domain.DefaultCalculationRules()
	return rules.GenerateAssumptions()
}

// assumptionsOf uses the report's assumptions if available, otherwise the defaults
func assumptionsOf(report *domain.Report) []string {
	if len(report.Assumptions) > 0 {
		return report.Assumptions
	}
	return DefaultAssumptions()
}
