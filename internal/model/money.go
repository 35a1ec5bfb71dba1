package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatDollars renders a decimal amount as "$1,234.56". Used anywhere a
// money value is shown to a human (insights, CLI output, report sheets).
func FormatDollars(d decimal.Decimal) string {
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := "$" + b.String() + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}
