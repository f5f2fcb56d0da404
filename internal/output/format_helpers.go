package output

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/finkit/finproj/internal/locale"
	fpdecimal "github.com/finkit/finproj/pkg/decimal"
)

// resolveLocale falls back to the default locale for a zero Locale.
func resolveLocale(l locale.Locale) locale.Locale {
	if l.Tag == "" {
		return locale.Default()
	}
	return l
}

// FormatCurrency formats an amount with the locale's currency symbol and separators.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(l locale.Locale, amount decimal.Decimal) string {
	return resolveLocale(l).FormatMoney(amount)
}

// FormatPercentage formats a fraction (0.125) as a percentage with 2 decimals.
func FormatPercentage(l locale.Locale, fraction decimal.Decimal) string {
	return resolveLocale(l).FormatPercent(fraction)
}

// FormatRate formats a fraction as a percentage with 4 decimals, for monthly rates.
func FormatRate(l locale.Locale, fraction decimal.Decimal) string {
	return resolveLocale(l).FormatNumber(fraction.Shift(2), 4) + "%"
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

// plain renders an amount for machine-readable outputs
func plain(d decimal.Decimal) string { return fpdecimal.NewMoneyFromDecimal(d).String() }
