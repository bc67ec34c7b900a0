// Package money rounds and formats amounts and percentages for reports.
package money

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

func finite(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}

// Round rounds half away from zero to the given number of places.
func Round(x float64, places int32) float64 {
	return decimal.NewFromFloat(finite(x)).Round(places).InexactFloat64()
}

// Fixed formats x with exactly places decimals and no grouping, e.g. "63.2".
func Fixed(x float64, places int32) string {
	return decimal.NewFromFloat(finite(x)).StringFixed(places)
}

// Amount formats x with thousands grouping and up to two decimals,
// dropping trailing zeros: 4000 -> "4,000", 833.333 -> "833.33".
func Amount(x float64) string {
	return printer.Sprint(number.Decimal(Round(x, 2), number.MaxFractionDigits(2)))
}

// Format prefixes Amount with a currency symbol. Negative values keep the
// sign in front of the symbol: "-$250".
func Format(currency string, x float64) string {
	x = finite(x)
	if x < 0 {
		return "-" + currency + Amount(-x)
	}
	return currency + Amount(x)
}

// Cents formats x with grouping and exactly two decimals behind a currency
// symbol: "$4,000.00".
func Cents(currency string, x float64) string {
	x = finite(x)
	sign := ""
	if x < 0 {
		sign, x = "-", -x
	}
	return sign + currency + printer.Sprint(number.Decimal(Round(x, 2),
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Percent formats a value already scaled to 0-100 with one decimal: "63.2%".
func Percent(p float64) string {
	return Fixed(p, 1) + "%"
}

// Share returns part/whole*100, or 0 when whole is zero.
func Share(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return finite(part / whole * 100)
}
