// Package currency formats monetary amounts for display. Amounts are
// decimal euro values in a single currency; formatting applies the French
// locale's digit grouping with a trailing currency symbol.
package currency

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.French)

// Format renders an amount as a display price, e.g. "1 234,56 €"
func Format(amount decimal.Decimal) string {
	value, _ := amount.Float64()
	return printer.Sprintf("%v €", number.Decimal(value,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
