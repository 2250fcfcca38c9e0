// Package format renders amounts for reasoning trails and reports.
package format

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCurrency is the ISO code used for all rendered amounts.
const DefaultCurrency = money.USD

var printer = message.NewPrinter(language.English)

// Currency returns a currency string with a symbol, thousands separators and
// cents (e.g., "-$1,234.56").
func Currency(amount float64) string {
	cur := money.GetCurrency(DefaultCurrency)
	minor := decimal.NewFromFloat(amount).Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

// Dollars returns a whole-dollar string with separators (e.g., "$1,235").
// Negative amounts keep their sign in front of the symbol.
func Dollars(amount float64) string {
	whole := decimal.NewFromFloat(amount).Round(0).InexactFloat64()
	if whole < 0 {
		return printer.Sprintf("-$%.0f", -whole)
	}
	return printer.Sprintf("$%.0f", whole)
}

// Grouped returns a plain number with separators and two decimals.
func Grouped(amount float64) string {
	return printer.Sprintf("%.2f", amount)
}

// Fixed returns the cent-rounded amount without separators, for CSV cells.
func Fixed(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}

// Percent renders a decimal ratio as a percentage with one decimal
// (0.245 -> "24.5%").
func Percent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}
