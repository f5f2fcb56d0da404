package output

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finkit/finproj/internal/domain"
)

func buildTestReport() *domain.Report {
	d := decimal.RequireFromString
	rows := []domain.SimulationRow{
		{Month: 0, CumulativeContributions: d("1000"), InterestThisMonth: decimal.Zero, CumulativeInterest: decimal.Zero, Balance: d("1000")},
		{Month: 1, CumulativeContributions: d("1100"), InterestThisMonth: d("10"), CumulativeInterest: d("10"), Balance: d("1110")},
		{Month: 2, CumulativeContributions: d("1200"), InterestThisMonth: d("11.1"), CumulativeInterest: d("21.1"), Balance: d("1221.1")},
	}
	compound := &domain.CompoundResult{
		Principal:           d("1000"),
		MonthlyContribution: d("100"),
		TermMonths:          2,
		Rounding:            domain.RoundingExact,
		Regimes: []domain.RegimeProjection{
			{Regime: domain.RegimeInformed, SourceRate: domain.MonthlyRate(d("0.01")), MonthlyRate: d("0.01"),
				FinalBalance: d("1221.1"), TotalContributed: d("1200"), TotalInterest: d("21.1"), Rows: rows},
			{Regime: domain.RegimeInflationIndexed, SourceRate: domain.AnnualRate(d("0.045")), MonthlyRate: d("0.003674"),
				FinalBalance: d("1207.35"), TotalContributed: d("1200"), TotalInterest: d("7.35"), Rows: rows},
		},
	}
	retirement := &domain.RetirementResult{
		YearsToRetirement:   30,
		MonthsToRetirement:  360,
		MonthlyContribution: d("1200"),
		MonthlyReturn:       d("0.006434"),
		CurrentPatrimony:    d("20000"),
		TotalAccumulated:    d("2000000"),
		TotalContributed:    d("432000"),
		NeededCapital:       d("1200000"),
		WithdrawalRate:      d("0.005"),
		GoalAchieved:        true,
		SurplusOrZero:       d("800000"),
		Shortfall:           decimal.Zero,
		YearsOfExpenses:     d("27.77"),
	}
	comparison := &domain.ComparisonResult{
		A: domain.TaxResult{Label: "CDB (bank certificate of deposit)", Category: domain.CategoryCDB, ReturnType: domain.ReturnPercentOfReference,
			AnnualRate: d("0.16115"), HoldingPeriodMonths: 24, Taxable: true, WithholdingRate: d("0.175"),
			GrossReturn: d("3000"), WithholdingTaxAmount: d("500"), NetReturn: d("2500"), FinalAmount: d("12500"), AnnualizedNetYieldPercent: d("25")},
		B: domain.TaxResult{Label: "LCA (agribusiness credit note)", Category: domain.CategoryLCA, ReturnType: domain.ReturnPercentOfReference,
			AnnualRate: d("0.13478"), HoldingPeriodMonths: 24, GrossReturn: d("2300"), NetReturn: d("2300"), FinalAmount: d("12300"), AnnualizedNetYieldPercent: d("23")},
		Winner:     domain.SideA,
		BaseAmount: d("10000"),
		Difference: d("200"),
		Market:     domain.DefaultMarketRates(),
	}
	return &domain.Report{
		ID:          uuid.MustParse("6f1c2a4e-0000-4000-8000-000000000001"),
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Assumptions: DefaultAssumptions(),
		Highlights:  []string{"Savings: informed regime ends highest at 1221.10 after 2 months"},
		Results: []domain.ScenarioResult{
			{Name: "Savings", Kind: domain.KindCompound, Compound: compound},
			{Name: "Retire", Kind: domain.KindRetirement, Retirement: retirement},
			{Name: "CDB vs LCA", Kind: domain.KindComparison, Comparison: comparison},
		},
	}
}
