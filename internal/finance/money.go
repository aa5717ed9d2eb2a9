package finance

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)

	fzpMasterRate  = decimal.RequireFromString("0.45")
	fzpForemanRate = decimal.RequireFromString("0.10")
)

// FormatCurrency renders a ruble amount with space-grouped thousands and two
// decimal places: 1234567.5 -> "1 234 567.50 ₽".
func FormatCurrency(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	intPart := fixed[:len(fixed)-3]
	fracPart := fixed[len(fixed)-2:]

	var b strings.Builder
	if amount.IsNegative() {
		b.WriteByte('-')
	}
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 && (i > lead || lead > 0) {
			b.WriteByte(' ')
		}
		b.WriteString(intPart[i : i+3])
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	b.WriteString(" ₽")
	return b.String()
}

// FormatPercentage renders a two-decimal percent string: 12.345 -> "12.35%".
func FormatPercentage(value decimal.Decimal) string {
	return value.StringFixed(2) + "%"
}

// Ratio divides num by den, defining division by zero as zero.
func Ratio(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den)
}
