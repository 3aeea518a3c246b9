// Package money converts between display-formatted Brazilian real prices and decimals.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseBRL parses prices such as "R$ 1.234,56", "1234,56", "150" or "99.90".
//
// A comma is always the decimal separator. Without a comma, a dot followed by
// exactly three digits is treated as a thousands separator, otherwise as the
// decimal point.
func ParseBRL(s string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimPrefix(raw, "R$")
	raw = strings.ReplaceAll(raw, "\u00a0", "")
	raw = strings.ReplaceAll(raw, " ", "")
	if raw == "" {
		return decimal.Zero, fmt.Errorf("parse price %q: empty", s)
	}

	switch {
	case strings.Contains(raw, ","):
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.Replace(raw, ",", ".", 1)
	case strings.Count(raw, ".") > 1 || isThousandsDot(raw):
		raw = strings.ReplaceAll(raw, ".", "")
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse price %q: %w", s, err)
	}
	return d, nil
}

func isThousandsDot(s string) bool {
	i := strings.LastIndex(s, ".")
	return i >= 0 && len(s)-i-1 == 3
}

// FormatBRL renders d as "R$ 1.234,56".
func FormatBRL(d decimal.Decimal) string {
	neg := d.IsNegative()
	fixed := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%s", sign, b.String(), frac)
}

// Sum adds the parsed prices of every line multiplied by its quantity.
// A quantity below one counts as one.
func Sum(prices []string, quantities []int) (decimal.Decimal, error) {
	total := decimal.Zero
	for i, p := range prices {
		d, err := ParseBRL(p)
		if err != nil {
			return decimal.Zero, err
		}
		q := 1
		if i < len(quantities) && quantities[i] > 1 {
			q = quantities[i]
		}
		total = total.Add(d.Mul(decimal.NewFromInt(int64(q))))
	}
	return total, nil
}
