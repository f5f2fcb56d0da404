package locale

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is a request field that accepts either a JSON number or a
// locale-formatted string. Strings are kept raw until Resolve is called with
// the request's locale.
type Amount struct {
	value decimal.Decimal
	raw   string
	set   bool
}

// IsSet reports whether the field was present
func (a Amount) IsSet() bool { return a.set }

// String returns the raw text or the numeric value
func (a Amount) String() string {
	if a.raw != "" {
		return a.raw
	}
	return a.value.String()
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = Amount{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount{raw: s, set: true}
		return nil
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("invalid amount %s: %w", data, err)
	}
	*a = Amount{value: d, set: true}
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if a.raw != "" {
		return json.Marshal(a.raw)
	}
	return []byte(a.value.String()), nil
}

// Resolve returns the numeric value, parsing a string with l. Unset amounts
// resolve to zero.
func (a Amount) Resolve(l Locale) (decimal.Decimal, error) {
	if !a.set {
		return decimal.Zero, nil
	}
	if a.raw == "" {
		return a.value, nil
	}
	return l.ParseAmount(a.raw)
}

// ResolvePercent is Resolve for rate fields: numbers are fractions, strings
// are percentages ("12,5%" = 0.125)
func (a Amount) ResolvePercent(l Locale) (decimal.Decimal, error) {
	if !a.set {
		return decimal.Zero, nil
	}
	if a.raw == "" {
		return a.value, nil
	}
	return l.ParsePercent(a.raw)
}
