// Package locale holds the number and currency conventions used to parse
// user-typed amounts and to render results.
package locale

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	fpdecimal "github.com/finkit/finproj/pkg/decimal"
)

// Locale is injected configuration; nothing in the calculators depends on it
type Locale struct {
	Tag              string `json:"tag" yaml:"tag"`
	CurrencyCode     string `json:"currency_code" yaml:"currency_code"`
	CurrencySymbol   string `json:"currency_symbol" yaml:"currency_symbol"`
	DecimalSeparator string `json:"decimal_separator" yaml:"decimal_separator"`
	GroupSeparator   string `json:"group_separator" yaml:"group_separator"`

	fraction int
	template string
}

// DefaultTag is used when no locale is requested
const DefaultTag = "pt-BR"

type definition struct {
	currency string
	decimal  string
	group    string
	template string // go-money template, $ is the symbol and 1 the amount
}

var definitions = map[string]definition{
	"pt-BR": {currency: "BRL", decimal: ",", group: ".", template: "$ 1"},
	"en-US": {currency: "USD", decimal: ".", group: ",", template: "$1"},
	"es-ES": {currency: "EUR", decimal: ",", group: ".", template: "1 $"},
}

// Lookup returns the locale registered under tag. Matching ignores case and
// accepts '_' as separator.
func Lookup(tag string) (Locale, error) {
	if tag == "" {
		tag = DefaultTag
	}
	norm := normalizeTag(tag)
	def, ok := definitions[norm]
	if !ok {
		return Locale{}, fmt.Errorf("unknown locale %q (available: %s)", tag, strings.Join(Available(), ", "))
	}
	cur := money.GetCurrency(def.currency)
	if cur == nil {
		return Locale{}, fmt.Errorf("currency %s not found for locale %s", def.currency, norm)
	}
	return Locale{
		Tag:              norm,
		CurrencyCode:     cur.Code,
		CurrencySymbol:   cur.Grapheme,
		DecimalSeparator: def.decimal,
		GroupSeparator:   def.group,
		fraction:         cur.Fraction,
		template:         def.template,
	}, nil
}

// MustLookup is Lookup for registered tags; it panics on unknown ones
func MustLookup(tag string) Locale {
	l, err := Lookup(tag)
	if err != nil {
		panic(err)
	}
	return l
}

// Default returns the pt-BR locale
func Default() Locale {
	return MustLookup(DefaultTag)
}

// Available lists the registered tags
func Available() []string {
	out := make([]string, 0, len(definitions))
	for tag := range definitions {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

func normalizeTag(tag string) string {
	tag = strings.ReplaceAll(strings.TrimSpace(tag), "_", "-")
	parts := strings.SplitN(tag, "-", 2)
	if len(parts) == 2 {
		return strings.ToLower(parts[0]) + "-" + strings.ToUpper(parts[1])
	}
	return strings.ToLower(tag)
}

// FormatMoney renders an amount with the currency symbol, rounded to the
// currency's fraction
func (l Locale) FormatMoney(d decimal.Decimal) string {
	f := money.NewFormatter(l.fraction, l.DecimalSeparator, l.GroupSeparator, l.CurrencySymbol, l.template)
	return f.Format(fpdecimal.NewMoneyFromDecimal(d).MinorUnits(l.fraction))
}

// FormatNumber renders d with the given places and the locale separators
func (l Locale) FormatNumber(d decimal.Decimal, places int) string {
	f := money.NewFormatter(places, l.DecimalSeparator, l.GroupSeparator, "", "1")
	return f.Format(fpdecimal.NewMoneyFromDecimal(d).MinorUnits(places))
}

// FormatPercent renders a fraction as a percentage with two places
func (l Locale) FormatPercent(fraction decimal.Decimal) string {
	return l.FormatNumber(fpdecimal.Percent(fraction), 2) + "%"
}

// ParseAmount reads a user-typed amount such as "R$ 1.234,56" or "$1,234.56".
// The currency symbol, code and spaces are ignored. Group separators must
// split the integer part in thousands, so "1.5" is rejected in pt-BR instead
// of being read as 15.
func (l Locale) ParseAmount(s string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	clean := strings.NewReplacer(
		l.CurrencySymbol, "",
		l.CurrencyCode, "",
		" ", "",
		"\u00a0", "",
	).Replace(raw)
	invalid := fmt.Errorf("invalid amount %q for locale %s", s, l.Tag)
	whole, frac, hasFrac := strings.Cut(clean, l.DecimalSeparator)
	if strings.Contains(frac, l.DecimalSeparator) {
		return decimal.Zero, invalid
	}
	if l.GroupSeparator != "" {
		if strings.Contains(frac, l.GroupSeparator) || !wellGrouped(whole, l.GroupSeparator) {
			return decimal.Zero, invalid
		}
		whole = strings.ReplaceAll(whole, l.GroupSeparator, "")
	}
	clean = whole
	if hasFrac {
		clean += "." + frac
	}
	m, err := fpdecimal.NewMoneyFromString(clean)
	if err != nil {
		return decimal.Zero, invalid
	}
	return m.Decimal, nil
}

// wellGrouped reports whether the separators in the integer part of an
// amount fall every three digits, as in "1.234.567". Without separators any
// digit run is accepted.
func wellGrouped(whole, sep string) bool {
	groups := strings.Split(whole, sep)
	if len(groups) == 1 {
		return true
	}
	first := strings.TrimLeft(groups[0], "+-")
	if first == "" || len(first) > 3 {
		return false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return false
		}
	}
	return true
}

// ParsePercent reads "12,5%" or "12.5" (locale dependent) into a fraction
func (l Locale) ParsePercent(s string) (decimal.Decimal, error) {
	d, err := l.ParseAmount(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if err != nil {
		return decimal.Zero, err
	}
	return d.Shift(-2), nil
}
