// Package money renders amounts as localized currency strings. Display only;
// no parsing or arithmetic happens here.
package money

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewFormatter builds a formatter for an ISO 4217 code and a BCP 47 locale
// tag. An unknown locale falls back to English rather than failing startup.
func NewFormatter(code, locale string) (*Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, err
	}
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Formatter{printer: message.NewPrinter(tag), unit: unit}, nil
}

func (f *Formatter) Format(amount float64) string {
	return f.printer.Sprint(currency.NarrowSymbol(f.unit.Amount(amount)))
}
