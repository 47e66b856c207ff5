package report

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders amounts as dollar text for a locale, e.g. "$1,234.50".
type Formatter struct {
	printer *message.Printer
	point   string
}

func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	p := message.NewPrinter(tag)
	point := strings.Trim(p.Sprint(number.Decimal(1.5, number.Scale(1))), "15")
	if point == "" {
		point = "."
	}
	return &Formatter{printer: p, point: point}
}

// Format groups the whole dollars through the locale and appends the cents
// from the decimal itself, so large sums keep every digit.
func (f *Formatter) Format(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	whole, cents, _ := strings.Cut(fixed, ".")

	sign := ""
	if amount.Round(2).IsNegative() {
		sign = "-"
	}

	grouped := whole
	if d, err := decimal.NewFromString(whole); err == nil && d.BigInt().IsUint64() {
		grouped = f.printer.Sprint(number.Decimal(d.BigInt().Uint64()))
	}
	return sign + "$" + grouped + f.point + cents
}
