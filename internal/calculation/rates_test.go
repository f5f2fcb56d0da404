package calculation

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finkit/finproj/internal/domain"
)

func TestAnnualToMonthly(t *testing.T) {
	tests := []struct {
		name   string
		annual float64
	}{
		{"typical 12%", 0.12},
		{"reference rate", 0.1465},
		{"small", 0.0001},
		{"doubling", 1.0},
		{"deflation", -0.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			annual := decimal.NewFromFloat(tt.annual)
			monthly, err := AnnualToMonthly(annual)
			require.NoError(t, err)

			// compounding twelve times gets back to 1+annual
			back := MonthlyToAnnual(monthly)
			assert.InDelta(t, tt.annual, back.InexactFloat64(), 1e-10)

			// never the linear approximation
			if tt.annual > 0 {
				assert.True(t, monthly.LessThan(annual.Div(decimal.NewFromInt(12))))
			}
		})
	}
}

func TestAnnualToMonthly_ZeroIsExact(t *testing.T) {
	monthly, err := AnnualToMonthly(decimal.Zero)
	require.NoError(t, err)
	assert.True(t, monthly.IsZero())
	assert.Equal(t, "0", monthly.String())
}

func TestAnnualToMonthly_KnownValue(t *testing.T) {
	monthly, err := AnnualToMonthly(decimal.NewFromFloat(0.12))
	require.NoError(t, err)
	assert.InDelta(t, 0.0094887929, monthly.InexactFloat64(), 1e-9)
	assert.LessOrEqual(t, int(-monthly.Exponent()), domain.WorkingScale)
}

func TestAnnualToMonthly_BelowMinusOne(t *testing.T) {
	_, err := AnnualToMonthly(decimal.NewFromFloat(-1.01))
	require.Error(t, err)

	var rateErr *domain.InvalidRateError
	assert.True(t, errors.As(err, &rateErr))
	assert.ErrorIs(t, err, domain.ErrValidation)

	monthly, err := AnnualToMonthly(decimal.NewFromInt(-1))
	require.NoError(t, err)
	assert.Equal(t, "-1", monthly.String())
}

func TestResolveMonthlyRate(t *testing.T) {
	m, err := ResolveMonthlyRate("rate", domain.MonthlyRate(decimal.NewFromFloat(0.01)))
	require.NoError(t, err)
	assert.Equal(t, "0.01", m.String())

	m, err = ResolveMonthlyRate("rate", domain.RateSpec{Value: decimal.NewFromFloat(0.12)})
	require.NoError(t, err)
	converted, _ := AnnualToMonthly(decimal.NewFromFloat(0.12))
	assert.True(t, converted.Equal(m), "empty unit means annual")

	_, err = ResolveMonthlyRate("rate", domain.RateSpec{Value: decimal.NewFromFloat(0.01), Unit: "weekly"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = ResolveMonthlyRate("rates.informed", domain.MonthlyRate(decimal.NewFromInt(-2)))
	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "rates.informed", ve.Field)
}

func TestResolveTerm(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	SetNowFunc(func() time.Time { return now })
	t.Cleanup(func() { SetNowFunc(time.Now) })

	years := decimal.NewFromFloat(2.5)
	negYears := decimal.NewFromInt(-1)
	hugeYears := decimal.RequireFromString("1e30")
	future := now.AddDate(0, 0, 95)
	soon := now.AddDate(0, 0, 20)
	past := now.AddDate(0, -2, 0)

	tests := []struct {
		name    string
		term    domain.TermSpec
		want    int
		wantErr bool
	}{
		{"months", domain.TermMonths(12), 12, false},
		{"years", domain.TermSpec{Years: &years}, 30, false},
		{"target date truncates", domain.TermSpec{Until: &future}, 3, false},
		{"target date under a month", domain.TermSpec{Until: &soon}, 0, true},
		{"target date in the past", domain.TermSpec{Until: &past}, 0, true},
		{"negative years", domain.TermSpec{Years: &negYears}, 0, true},
		{"negative months", domain.TermMonths(-3), 0, true},
		{"missing", domain.TermSpec{}, 0, true},
		{"above max", domain.TermMonths(1201), 0, true},
		{"years beyond int range", domain.TermSpec{Years: &hugeYears}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveTerm(tt.term, 1200)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
