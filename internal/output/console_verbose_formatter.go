package output

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finkit/finproj/internal/domain"
	"github.com/finkit/finproj/internal/locale"
)

// ConsoleVerboseFormatter renders the detailed console report via the pluggable interface.
type ConsoleVerboseFormatter struct {
	Locale locale.Locale
}

func (c ConsoleVerboseFormatter) Name() string      { return "console" }
func (c ConsoleVerboseFormatter) Extension() string { return "txt" }

// fullSeriesMonths is the longest term printed month by month; longer
// series are printed at yearly checkpoints.
const fullSeriesMonths = 24

func (c ConsoleVerboseFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf, "FINANCIAL PROJECTION REPORT")
	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintf(&buf, "Report:    %s\n", report.ID)
	if !report.GeneratedAt.IsZero() {
		fmt.Fprintf(&buf, "Generated: %s\n", report.GeneratedAt.UTC().Format(time.RFC3339))
	}
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range assumptionsOf(report) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, res := range report.Results {
		fmt.Fprintf(&buf, "SCENARIO %d: %s\n", i+1, res.Name)
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		switch {
		case res.Compound != nil:
			c.writeCompound(&buf, res.Compound)
		case res.Retirement != nil:
			c.writeRetirement(&buf, res.Retirement)
		case res.Comparison != nil:
			c.writeComparison(&buf, res.Comparison)
		}
		fmt.Fprintln(&buf)
	}

	if len(report.Highlights) > 0 {
		fmt.Fprintln(&buf, "SUMMARY")
		fmt.Fprintln(&buf, "=======")
		for _, h := range report.Highlights {
			fmt.Fprintf(&buf, "• %s\n", h)
		}
	}

	return buf.Bytes(), nil
}

func (c ConsoleVerboseFormatter) writeCompound(buf *bytes.Buffer, res *domain.CompoundResult) {
	l := c.Locale
	fmt.Fprintf(buf, "COMPOUND PROJECTION (%d months, rounding %s)\n", res.TermMonths, res.Rounding)
	fmt.Fprintf(buf, "  Principal:            %s\n", FormatCurrency(l, res.Principal))
	fmt.Fprintf(buf, "  Monthly Contribution: %s\n", FormatCurrency(l, res.MonthlyContribution))
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "%-20s %18s %14s %20s %20s\n", "REGIME", "SOURCE RATE", "MONTHLY RATE", "FINAL BALANCE", "TOTAL INTEREST")
	fmt.Fprintln(buf, strings.Repeat("-", 96))
	for _, p := range res.Regimes {
		fmt.Fprintf(buf, "%-20s %18s %14s %20s %20s\n", p.Regime, c.sourceRate(p.SourceRate),
			FormatRate(l, p.MonthlyRate), FormatCurrency(l, p.FinalBalance), FormatCurrency(l, p.TotalInterest))
	}
	if best := res.Best(); best != nil {
		fmt.Fprintf(buf, "Best regime: %s\n", best.Regime)
	}

	for _, p := range res.Regimes {
		fmt.Fprintln(buf)
		fmt.Fprintf(buf, "%s SERIES:\n", strings.ToUpper(string(p.Regime)))
		fmt.Fprintf(buf, "%6s %20s %16s %20s %20s\n", "MONTH", "CONTRIBUTED", "INTEREST", "CUM. INTEREST", "BALANCE")
		for _, r := range checkpointRows(p.Rows) {
			fmt.Fprintf(buf, "%6d %20s %16s %20s %20s\n", r.Month,
				FormatCurrency(l, r.CumulativeContributions), FormatCurrency(l, r.InterestThisMonth),
				FormatCurrency(l, r.CumulativeInterest), FormatCurrency(l, r.Balance))
		}
	}
}

func (c ConsoleVerboseFormatter) sourceRate(spec domain.RateSpec) string {
	unit := spec.Unit
	if unit == "" {
		unit = domain.RateUnitAnnual
	}
	return fmt.Sprintf("%s %s", FormatPercentage(c.Locale, spec.Value), unit)
}

// checkpointRows keeps every row of short series, otherwise month 0, each
// anniversary and the final month
func checkpointRows(rows []domain.SimulationRow) []domain.SimulationRow {
	if len(rows) <= fullSeriesMonths+1 {
		return rows
	}
	var out []domain.SimulationRow
	for i, r := range rows {
		if r.Month%12 == 0 || i == len(rows)-1 {
			out = append(out, r)
		}
	}
	return out
}

func (c ConsoleVerboseFormatter) writeRetirement(buf *bytes.Buffer, r *domain.RetirementResult) {
	l := c.Locale
	fmt.Fprintf(buf, "RETIREMENT PLAN (%d years, %d months)\n", r.YearsToRetirement, r.MonthsToRetirement)
	fmt.Fprintln(buf, "----------------------------------------")
	fmt.Fprintln(buf, "ACCUMULATION:")
	fmt.Fprintf(buf, "  Monthly Contribution:        %s\n", FormatCurrency(l, r.MonthlyContribution))
	fmt.Fprintf(buf, "  Monthly Return:              %s\n", FormatRate(l, r.MonthlyReturn))
	fmt.Fprintf(buf, "  Current Patrimony:           %s\n", FormatCurrency(l, r.CurrentPatrimony))
	fmt.Fprintf(buf, "  Patrimony at Retirement:     %s\n", FormatCurrency(l, r.CurrentPrincipalFutureValue))
	fmt.Fprintf(buf, "  Contributions at Retirement: %s\n", FormatCurrency(l, r.ContributionsFutureValue))
	fmt.Fprintf(buf, "  Total Contributed:           %s\n", FormatCurrency(l, r.TotalContributed))
	fmt.Fprintf(buf, "  TOTAL ACCUMULATED:           %s\n", FormatCurrency(l, r.TotalAccumulated))
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "GOAL:")
	fmt.Fprintf(buf, "  Needed Capital:              %s\n", FormatCurrency(l, r.NeededCapital))
	fmt.Fprintf(buf, "  Desired Monthly Income:      %s\n", FormatCurrency(l, r.DesiredMonthlyIncome))
	fmt.Fprintf(buf, "  Sustainable Monthly Income:  %s\n", FormatCurrency(l, r.SustainableMonthlyIncome))
	fmt.Fprintf(buf, "  Withdrawal Rate:             %s a month\n", FormatPercentage(l, r.WithdrawalRate))
	if r.GoalAchieved {
		fmt.Fprintf(buf, "  STATUS: GOAL ACHIEVED (+%s)\n", FormatCurrency(l, r.SurplusOrZero))
	} else {
		fmt.Fprintf(buf, "  STATUS: SHORTFALL (%s)\n", FormatCurrency(l, r.Shortfall))
	}
	if r.YearsOfExpenses.IsPositive() {
		fmt.Fprintf(buf, "  Covers %s years of expenses\n", resolveLocale(l).FormatNumber(r.YearsOfExpenses, 2))
	}
}

func (c ConsoleVerboseFormatter) writeComparison(buf *bytes.Buffer, res *domain.ComparisonResult) {
	l := c.Locale
	a, b := res.A, res.B
	fmt.Fprintf(buf, "FIXED-INCOME COMPARISON (base %s)\n", FormatCurrency(l, res.BaseAmount))
	fmt.Fprintf(buf, "  Reference rate %s, inflation %s\n", FormatPercentage(l, res.Market.ReferenceRate), FormatPercentage(l, res.Market.InflationRate))
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "%-28s %20s %20s %20s\n", "COMPONENT", "A", "B", "DIFFERENCE")
	fmt.Fprintln(buf, strings.Repeat("-", 91))
	fmt.Fprintf(buf, "%-28s %20s %20s\n", "Category", a.Category, b.Category)
	fmt.Fprintf(buf, "%-28s %20s %20s\n", "Return Type", a.ReturnType, b.ReturnType)
	fmt.Fprintf(buf, "%-28s %20d %20d\n", "Holding Period (months)", a.HoldingPeriodMonths, b.HoldingPeriodMonths)
	fmt.Fprintf(buf, "%-28s %20s %20s\n", "Annual Rate", FormatPercentage(l, a.AnnualRate), FormatPercentage(l, b.AnnualRate))
	fmt.Fprintf(buf, "%-28s %20s %20s\n", "Monthly Rate", FormatRate(l, a.MonthlyRate), FormatRate(l, b.MonthlyRate))
	fmt.Fprintf(buf, "%-28s %20t %20t\n", "Taxable", a.Taxable, b.Taxable)
	c.cmpLine(buf, "Gross Return", a.GrossReturn, b.GrossReturn)
	fmt.Fprintf(buf, "%-28s %20s %20s\n", "Income Tax Rate", FormatPercentage(l, a.WithholdingRate), FormatPercentage(l, b.WithholdingRate))
	c.cmpLine(buf, "Income Tax", a.WithholdingTaxAmount, b.WithholdingTaxAmount)
	fmt.Fprintf(buf, "%-28s %20s %20s\n", "Transaction Tax Rate", FormatPercentage(l, a.TransactionRate), FormatPercentage(l, b.TransactionRate))
	c.cmpLine(buf, "Transaction Tax", a.TransactionTaxAmount, b.TransactionTaxAmount)
	fmt.Fprintln(buf, strings.Repeat("-", 91))
	c.cmpLine(buf, "NET RETURN", a.NetReturn, b.NetReturn)
	c.cmpLine(buf, "FINAL AMOUNT", a.FinalAmount, b.FinalAmount)
	fmt.Fprintf(buf, "%-28s %20s %20s\n", "Net Yield", FormatPercentage(l, a.AnnualizedNetYieldPercent.Shift(-2)), FormatPercentage(l, b.AnnualizedNetYieldPercent.Shift(-2)))
	fmt.Fprintln(buf)
	winner := res.WinnerResult()
	fmt.Fprintf(buf, "WINNER: %s (%s), by %s\n", res.Winner, winner.Label, FormatCurrency(l, res.Difference.Abs()))
}

func (c ConsoleVerboseFormatter) cmpLine(buf *bytes.Buffer, label string, a, b decimal.Decimal) {
	fmt.Fprintf(buf, "%-28s %20s %20s %20s\n", label, FormatCurrency(c.Locale, a), FormatCurrency(c.Locale, b), FormatCurrency(c.Locale, a.Sub(b)))
}
