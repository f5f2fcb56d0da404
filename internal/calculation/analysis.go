package calculation

import (
	"fmt"

	"github.com/finkit/finproj/internal/domain"
)

// generateHighlights summarizes the outcome of each scenario in one line
func (ce *CalculationEngine) generateHighlights(results []domain.ScenarioResult) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		switch {
		case r.Compound != nil:
			best := r.Compound.Best()
			if best == nil {
				continue
			}
			out = append(out, fmt.Sprintf("%s: %s regime ends highest at %s after %d months",
				r.Name, best.Regime, best.FinalBalance.StringFixed(2), r.Compound.TermMonths))
		case r.Retirement != nil:
			if r.Retirement.GoalAchieved {
				out = append(out, fmt.Sprintf("%s: goal reached with %s to spare", r.Name, r.Retirement.SurplusOrZero.StringFixed(2)))
			} else {
				out = append(out, fmt.Sprintf("%s: %s short of the %s goal", r.Name,
					r.Retirement.Shortfall.StringFixed(2), r.Retirement.NeededCapital.StringFixed(2)))
			}
		case r.Comparison != nil:
			w := r.Comparison.WinnerResult()
			out = append(out, fmt.Sprintf("%s: instrument %s (%s) wins by %s net", r.Name,
				r.Comparison.Winner, w.Category, r.Comparison.Difference.Abs().StringFixed(2)))
		}
	}
	return out
}
