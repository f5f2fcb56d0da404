package cmd

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finkit/finproj/internal/domain"
	"github.com/finkit/finproj/internal/locale"
)

// flagParser reads locale-formatted flag values and keeps the first error.
// Rate flags are percentages: "1" and "1%" both mean 0.01.
type flagParser struct {
	loc locale.Locale
	err error
}

func (p *flagParser) amount(name, v string) decimal.Decimal {
	if v == "" {
		return decimal.Zero
	}
	d, err := p.loc.ParseAmount(v)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("--%s: %w", name, err)
	}
	return d
}

func (p *flagParser) percent(name, v string) decimal.Decimal {
	if v == "" {
		return decimal.Zero
	}
	d, err := p.loc.ParsePercent(v)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("--%s: %w", name, err)
	}
	return d
}

type compoundFlags struct {
	name         string
	principal    string
	contribution string
	rate         string
	rateUnit     string
	inflation    string
	reference    string
	months       int
	years        string
	until        string
	rounding     string
}

func newCompoundCmd(opts *rootOptions) *cobra.Command {
	f := &compoundFlags{}
	cmd := &cobra.Command{
		Use:   "compound",
		Short: "Project savings with monthly contributions",
		Long: `Project a principal plus monthly contributions month by month.

Each non-zero rate runs as its own regime: the informed rate (monthly or
annual), the inflation rate and the reference rate (both annual).

Examples:
  finproj compound --principal 10000 --contribution 500 --rate 1 --years 5
  finproj compound --principal 10000 --rate 12 --rate-unit annual --inflation 4,5 --reference 14,65 --months 60`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := f.scenario(opts.loc)
			if err != nil {
				return err
			}
			return opts.runScenario(cmd, scenario)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.name, "name", "Compound projection", "scenario name")
	fl.StringVar(&f.principal, "principal", "", "initial amount")
	fl.StringVar(&f.contribution, "contribution", "", "monthly contribution")
	fl.StringVar(&f.rate, "rate", "", "informed rate, percent")
	fl.StringVar(&f.rateUnit, "rate-unit", string(domain.RateUnitMonthly), "unit of --rate (monthly, annual)")
	fl.StringVar(&f.inflation, "inflation", "", "annual inflation rate, percent")
	fl.StringVar(&f.reference, "reference", "", "annual reference rate, percent")
	fl.IntVar(&f.months, "months", 0, "term in months")
	fl.StringVar(&f.years, "years", "", "term in years, fractions allowed")
	fl.StringVar(&f.until, "until", "", "target date (YYYY-MM-DD)")
	fl.StringVar(&f.rounding, "rounding", "", "interest rounding (exact, truncate_cents)")
	_ = cmd.MarkFlagRequired("principal")
	return cmd
}

func (f *compoundFlags) scenario(loc locale.Locale) (domain.Scenario, error) {
	p := &flagParser{loc: loc}
	in := domain.CompoundInput{
		Principal:           p.amount("principal", f.principal),
		MonthlyContribution: p.amount("contribution", f.contribution),
		Term:                domain.TermSpec{Months: f.months},
		Rates:               map[domain.Regime]domain.RateSpec{},
		Rounding:            domain.RoundingPolicy(f.rounding),
	}
	if f.years != "" {
		years := p.amount("years", f.years)
		in.Term.Years = &years
	}
	if f.until != "" {
		until, err := time.Parse("2006-01-02", f.until)
		if err != nil {
			return domain.Scenario{}, fmt.Errorf("--until: %w", err)
		}
		in.Term.Until = &until
	}
	if rate := p.percent("rate", f.rate); !rate.IsZero() {
		in.Rates[domain.RegimeInformed] = domain.RateSpec{Value: rate, Unit: domain.RateUnit(f.rateUnit)}
	}
	if rate := p.percent("inflation", f.inflation); !rate.IsZero() {
		in.Rates[domain.RegimeInflationIndexed] = domain.AnnualRate(rate)
	}
	if rate := p.percent("reference", f.reference); !rate.IsZero() {
		in.Rates[domain.RegimeReferenceIndexed] = domain.AnnualRate(rate)
	}
	if p.err != nil {
		return domain.Scenario{}, p.err
	}
	return domain.Scenario{Name: f.name, Kind: domain.KindCompound, Compound: &in}, nil
}

type retireFlags struct {
	name       string
	income     string
	percentage string
	age        int
	retireAt   int
	annual     string
	patrimony  string
	target     string
	expenses   string
}

func newRetireCmd(opts *rootOptions) *cobra.Command {
	f := &retireFlags{}
	cmd := &cobra.Command{
		Use:     "retire",
		Aliases: []string{"retirement"},
		Short:   "Plan the capital accumulated until retirement",
		Long: `Project the capital accumulated by investing a share of the monthly
income until retirement age, and compare it with the capital needed to
live off a conservative monthly withdrawal.

Example:
  finproj retire --income 8000 --percentage 15 --age 30 --retire-at 60 --return 8 --expenses 6000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := f.scenario(opts.loc)
			if err != nil {
				return err
			}
			return opts.runScenario(cmd, scenario)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.name, "name", "Retirement plan", "scenario name")
	fl.StringVar(&f.income, "income", "", "monthly income")
	fl.StringVar(&f.percentage, "percentage", "", "share of income invested, percent")
	fl.IntVar(&f.age, "age", 0, "current age")
	fl.IntVar(&f.retireAt, "retire-at", 0, "retirement age")
	fl.StringVar(&f.annual, "return", "", "expected annual return, percent")
	fl.StringVar(&f.patrimony, "patrimony", "", "capital already invested")
	fl.StringVar(&f.target, "target", "", "capital goal; derived from the income when omitted")
	fl.StringVar(&f.expenses, "expenses", "", "monthly expenses in retirement")
	for _, name := range []string{"income", "percentage", "age", "retire-at", "return"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (f *retireFlags) scenario(loc locale.Locale) (domain.Scenario, error) {
	p := &flagParser{loc: loc}
	in := domain.RetirementInput{
		MonthlyIncome:    p.amount("income", f.income),
		IncomePercentage: p.percent("percentage", f.percentage),
		CurrentAge:       f.age,
		RetirementAge:    f.retireAt,
		AnnualReturn:     p.percent("return", f.annual),
		CurrentPatrimony: p.amount("patrimony", f.patrimony),
		TargetPatrimony:  p.amount("target", f.target),
		MonthlyExpenses:  p.amount("expenses", f.expenses),
	}
	if p.err != nil {
		return domain.Scenario{}, p.err
	}
	return domain.Scenario{Name: f.name, Kind: domain.KindRetirement, Retirement: &in}, nil
}

type instrumentFlags struct {
	category   string
	returnType string
	rate       string
	months     int
	taxable    bool
}

type compareFlags struct {
	name      string
	a, b      instrumentFlags
	months    int
	base      string
	reference string
	inflation string
}

func newCompareCmd(opts *rootOptions) *cobra.Command {
	f := &compareFlags{}
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare two fixed-income instruments after taxes",
		Long: `Rank two fixed-income instruments by net return over their holding
periods. Rates of percent_of_reference instruments are a percentage of the
reference rate; inflation_plus rates are added to inflation.

Example:
  finproj compare --a-category CDB --a-rate 110 --b-category LCA --b-rate 92 --months 24`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := f.scenario(cmd, opts.loc)
			if err != nil {
				return err
			}
			return opts.runScenario(cmd, scenario)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.name, "name", "Fixed-income comparison", "scenario name")
	for _, side := range []struct {
		prefix   string
		flags    *instrumentFlags
		category domain.InstrumentCategory
	}{
		{"a", &f.a, domain.CategoryCDB},
		{"b", &f.b, domain.CategoryLCI},
	} {
		fl.StringVar(&side.flags.category, side.prefix+"-category", string(side.category), "instrument "+side.prefix+" category")
		fl.StringVar(&side.flags.returnType, side.prefix+"-type", string(domain.ReturnPercentOfReference), "instrument "+side.prefix+" return type (fixed, percent_of_reference, inflation_plus)")
		fl.StringVar(&side.flags.rate, side.prefix+"-rate", "", "instrument "+side.prefix+" rate, percent")
		fl.IntVar(&side.flags.months, side.prefix+"-months", 0, "instrument "+side.prefix+" holding period in months")
		fl.BoolVar(&side.flags.taxable, side.prefix+"-taxable", false, "override whether instrument "+side.prefix+" is taxed")
	}
	fl.IntVar(&f.months, "months", 0, "holding period of both instruments, unless set per side")
	fl.StringVar(&f.base, "base", "", "amount invested")
	fl.StringVar(&f.reference, "reference", "", "annual reference rate, percent")
	fl.StringVar(&f.inflation, "inflation", "", "annual inflation rate, percent")
	return cmd
}

func (f *compareFlags) scenario(cmd *cobra.Command, loc locale.Locale) (domain.Scenario, error) {
	p := &flagParser{loc: loc}
	side := func(prefix string, fl instrumentFlags) domain.InstrumentConfig {
		cfg := domain.InstrumentConfig{
			Category:            domain.InstrumentCategory(fl.category),
			ReturnType:          domain.ReturnType(fl.returnType),
			HoldingPeriodMonths: fl.months,
		}
		if cfg.HoldingPeriodMonths == 0 {
			cfg.HoldingPeriodMonths = f.months
		}
		if fl.rate != "" {
			rate := p.percent(prefix+"-rate", fl.rate)
			cfg.Rate = &rate
		}
		if cmd.Flags().Changed(prefix + "-taxable") {
			taxable := fl.taxable
			cfg.Taxable = &taxable
		}
		return cfg
	}

	in := domain.ComparisonInput{
		A:          side("a", f.a),
		B:          side("b", f.b),
		BaseAmount: p.amount("base", f.base),
	}
	if f.reference != "" || f.inflation != "" {
		in.Market = &domain.MarketRates{
			ReferenceRate: p.percent("reference", f.reference),
			InflationRate: p.percent("inflation", f.inflation),
		}
	}
	if p.err != nil {
		return domain.Scenario{}, p.err
	}
	return domain.Scenario{Name: f.name, Kind: domain.KindComparison, Comparison: &in}, nil
}
