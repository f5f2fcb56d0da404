package output

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finkit/finproj/internal/domain"
)

// SummaryRow is one comparable outcome of a report: a compound regime, a
// retirement plan or one side of a fixed-income comparison.
type SummaryRow struct {
	Scenario    string
	Kind        domain.ScenarioKind
	Subject     string
	FinalAmount decimal.Decimal
	Contributed decimal.Decimal
	Earnings    decimal.Decimal
	Taxes       decimal.Decimal
	// Best marks the leading regime, the winning side or an achieved goal
	Best bool
	Note string
}

// Summarize flattens the report results into summary rows, in result order.
// Extracted from the formatters for testability.
func Summarize(report *domain.Report) []SummaryRow {
	var rows []SummaryRow
	for _, res := range report.Results {
		switch {
		case res.Compound != nil:
			best := res.Compound.Best()
			for _, p := range res.Compound.Regimes {
				rows = append(rows, SummaryRow{
					Scenario:    res.Name,
					Kind:        res.Kind,
					Subject:     string(p.Regime),
					FinalAmount: p.FinalBalance,
					Contributed: p.TotalContributed,
					Earnings:    p.TotalInterest,
					Best:        best != nil && best.Regime == p.Regime,
					Note:        fmt.Sprintf("%d months", res.Compound.TermMonths),
				})
			}
		case res.Retirement != nil:
			r := res.Retirement
			note := "goal reached"
			if !r.GoalAchieved {
				note = "short by " + plain(r.Shortfall)
			}
			rows = append(rows, SummaryRow{
				Scenario:    res.Name,
				Kind:        res.Kind,
				Subject:     "retirement",
				FinalAmount: r.TotalAccumulated,
				Contributed: r.TotalContributed.Add(r.CurrentPatrimony),
				Earnings:    r.TotalAccumulated.Sub(r.TotalContributed).Sub(r.CurrentPatrimony),
				Best:        r.GoalAchieved,
				Note:        note,
			})
		case res.Comparison != nil:
			c := res.Comparison
			for _, side := range []domain.Side{domain.SideA, domain.SideB} {
				tr := c.A
				if side == domain.SideB {
					tr = c.B
				}
				note := ""
				if c.Winner == side {
					note = "winner"
				}
				rows = append(rows, SummaryRow{
					Scenario:    res.Name,
					Kind:        res.Kind,
					Subject:     fmt.Sprintf("%s: %s", side, tr.Category),
					FinalAmount: tr.FinalAmount,
					Contributed: c.BaseAmount,
					Earnings:    tr.NetReturn,
					Taxes:       tr.TotalTax(),
					Best:        c.Winner == side,
					Note:        note,
				})
			}
		}
	}
	return rows
}
