package ui

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// NotAvailable is printed in place of NaN and infinite values
const NotAvailable = "n/a"

// Amount formats v with fixed decimal places and thousands grouping
func Amount(v float64, places int32) string {
	if !finite(v) {
		return NotAvailable
	}
	d := decimal.NewFromFloat(v).Round(places)
	return group(d.StringFixed(places))
}

// Money formats a currency-agnostic amount with two decimals
func Money(v float64) string {
	return Amount(v, 2)
}

// Percent formats a fraction as a percentage
func Percent(v float64) string {
	if !finite(v) {
		return NotAvailable
	}
	return decimal.NewFromFloat(v).Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

// Months formats a duration in months
func Months(v float64) string {
	if !finite(v) {
		return NotAvailable
	}
	return decimal.NewFromFloat(v).StringFixed(2) + " mo"
}

// Multiple formats a ratio such as LTV:CAC
func Multiple(v float64) string {
	if !finite(v) {
		return NotAvailable
	}
	return decimal.NewFromFloat(v).StringFixed(2) + "x"
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// group inserts thousands separators into a plain decimal string
func group(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + frac
}
