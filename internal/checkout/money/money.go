// Package money implements the rounding policy for currency amounts.
//
// Every derived amount (subtotal, discount, tax) is rounded to Places decimal
// places, half away from zero, at the moment it is derived. Sums and
// differences of already rounded amounts are exact, so a total built from
// rounded parts never drifts from what the receipt prints.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Places is the number of minor-unit digits kept for every monetary amount.
const Places int32 = 2

var hundred = decimal.NewFromInt(100)

// Round applies the rounding policy to d.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Percent returns pct percent of amount, rounded.
func Percent(amount, pct decimal.Decimal) decimal.Decimal {
	return Round(amount.Mul(pct).Div(hundred))
}

// Rate returns amount × rate, rounded. rate is a fraction (0.08 for 8%).
func Rate(amount, rate decimal.Decimal) decimal.Decimal {
	return Round(amount.Mul(rate))
}

// Format renders d with exactly two decimal places.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Places)
}

// FormatPercent renders a rate fraction as a percentage without trailing zeros,
// e.g. 0.08 -> "8%", 0.08875 -> "8.875%".
func FormatPercent(rate decimal.Decimal) string {
	return rate.Mul(hundred).String() + "%"
}

// Parse reads an operator-entered amount such as "15", "15.5" or "$15.50".
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("money: parse %q: %w", s, err)
	}
	return d, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) decimal.Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}
