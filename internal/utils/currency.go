// Package utils holds small pure helpers shared by the analytics commands.
package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders amount as dollars with cents and thousands
// separators, e.g. "$1,234.50" or "-$3.10". Halves round away from zero.
func FormatCurrency(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	s := d.Abs().StringFixed(2)
	whole, cents, _ := strings.Cut(s, ".")

	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	b.WriteString(groupThousands(whole))
	b.WriteByte('.')
	b.WriteString(cents)
	return b.String()
}

// RoundCents rounds amount to two decimal places, halves away from zero.
func RoundCents(amount decimal.Decimal) float64 {
	f, _ := amount.Round(2).Float64()
	return f
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
