// Package money formats integer cent amounts for display.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders cents with the grouping and decimal separators of a
// locale, prefixed by a currency symbol.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter builds a formatter for a BCP 47 locale such as "pt-BR". An
// unparsable locale falls back to English.
func NewFormatter(locale, symbol string) Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return Formatter{printer: message.NewPrinter(tag), symbol: symbol}
}

// Format renders cents, e.g. 123456 as "R$ 1.234,56" for pt-BR.
func (f Formatter) Format(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	amount := f.printer.Sprint(number.Decimal(float64(cents)/100, number.Scale(2)))
	if f.symbol == "" {
		return sign + amount
	}
	return sign + f.symbol + " " + amount
}

// FormatInt renders an integer with locale grouping.
func (f Formatter) FormatInt(n int64) string {
	return f.printer.Sprintf("%d", n)
}
