package quotes

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Display formats use comma grouping and a dot decimal separator. Template "1"
// prints the bare amount with no currency sign.
var (
	fixed2Formatter  = money.NewFormatter(2, ".", ",", "", "1")
	integerFormatter = money.NewFormatter(0, ".", ",", "", "1")

	hundred = decimal.NewFromInt(100)
)

// FormatFixed2 renders v with two decimals and thousands grouping, e.g. "1,385.20".
func FormatFixed2(v decimal.Decimal) string {
	return fixed2Formatter.Format(v.Round(2).Shift(2).IntPart())
}

// FormatInteger renders v rounded to a whole number with grouping, e.g. "143,250,000".
func FormatInteger(v decimal.Decimal) string {
	return integerFormatter.Format(v.Round(0).IntPart())
}

// PercentChange returns (cur-prev)/prev*100 rounded to 2 decimals. ok is false when prev is zero.
func PercentChange(cur, prev decimal.Decimal) (float64, bool) {
	if prev.IsZero() {
		return 0, false
	}
	return cur.Sub(prev).Div(prev).Mul(hundred).Round(2).InexactFloat64(), true
}

// Ratio scales a fractional rate (0.0105) to a percent (1.05).
func Ratio(rate decimal.Decimal) float64 {
	return rate.Mul(hundred).Round(2).InexactFloat64()
}

// Round2 rounds an already-percent figure to two decimals.
func Round2(v decimal.Decimal) float64 {
	return v.Round(2).InexactFloat64()
}

// ParseNumber parses provider text like "35,120" or "-0.32".
func ParseNumber(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
}

// Style picks the display convention of a quote.
type Style int

const (
	StyleFixed2 Style = iota
	StyleInteger
)

func (s Style) Format(v decimal.Decimal) string {
	if s == StyleInteger {
		return FormatInteger(v)
	}
	return FormatFixed2(v)
}
