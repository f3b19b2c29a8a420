package reporting

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const pesoSign = "₱"

// FormatPeso renders an amount rounded to centavos with thousands separators,
// e.g. -1234.5 -> "-₱1,234.50".
func FormatPeso(v float64) string {
	amount := toDecimal(v).Round(2)
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}

	fixed := amount.StringFixed(2)
	whole, cents, _ := strings.Cut(fixed, ".")
	return sign + pesoSign + groupThousands(whole) + "." + cents
}

// FormatTons renders a weight with two decimals.
func FormatTons(v float64) string {
	return toDecimal(v).StringFixed(2)
}

// roundCentavos rounds an amount for spreadsheet cells.
func roundCentavos(v float64) float64 {
	f, _ := toDecimal(v).Round(2).Float64()
	return f
}

// toDecimal maps non-finite values to zero; decimal panics on them.
func toDecimal(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
