package wallet

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatAmount renders an amount for display: rounded to the currency's
// fraction (2 digits for the wallet currencies), trailing zeros trimmed,
// thousands grouped, with the currency code as suffix. Amounts keep their
// full precision until this point.
func FormatAmount(d decimal.Decimal, code string) string {
	digits := int32(2)
	if cur := money.GetCurrency(code); cur != nil {
		digits = int32(cur.Fraction)
	}
	return FormatAmountRounded(d, code, digits)
}

// FormatAmountRounded is FormatAmount with an explicit fraction-digit limit.
// The zakat report uses it to display whole figures.
func FormatAmountRounded(d decimal.Decimal, code string, digits int32) string {
	s := d.StringFixed(digits)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	fracPart = strings.TrimRight(fracPart, "0")

	out := groupThousands(intPart)
	if fracPart != "" {
		out += "." + fracPart
	}
	if neg {
		out = "-" + out
	}
	return out + " " + code
}

// groupThousands inserts a comma every three digits of an unsigned integer
// literal.
func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
