package dateutil

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMonthsFromYears(t *testing.T) {
	tests := []struct {
		name  string
		years decimal.Decimal
		want  int
	}{
		{"whole years", decimal.NewFromInt(10), 120},
		{"half year", decimal.NewFromFloat(2.5), 30},
		{"partial month floors", decimal.NewFromFloat(1.05), 12},
		{"zero", decimal.Zero, 0},
		{"huge saturates", decimal.RequireFromString("1e30"), math.MaxInt32},
		{"huge negative saturates", decimal.RequireFromString("-1e30"), math.MinInt32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthsFromYears(tt.years))
		})
	}
}

func TestMonthsFromTargetDate(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		target time.Time
		want   int
	}{
		{"exactly 30 days", now.AddDate(0, 0, 30), 1},
		{"29 days truncates to zero", now.AddDate(0, 0, 29), 0},
		{"one year", time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), 12}, // 365/30
		{"partial day ignored", now.AddDate(0, 0, 60).Add(-time.Hour), 1},
		{"past date", now.AddDate(0, 0, -45), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthsFromTargetDate(tt.target, now))
		})
	}
}

func TestDaysBetween(t *testing.T) {
	from := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, DaysBetween(from, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, -2, DaysBetween(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), from))
}
