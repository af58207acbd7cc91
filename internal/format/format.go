// Package format renders values for display.
package format

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DatePlaceholder is shown for sale dates the server sent in an unreadable form.
const DatePlaceholder = "---"

type Config struct {
	Locale   string `mapstructure:"locale"`
	Currency string `mapstructure:"currency"`
}

type Formatter struct {
	p    *message.Printer
	unit currency.Unit
	tag  language.Tag

	sep      separators
	pos, neg affix
}

func New(c *Config) (*Formatter, error) {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return nil, fmt.Errorf("failed to parse locale %q: %w", c.Locale, err)
	}
	unit, err := currency.ParseISO(c.Currency)
	if err != nil {
		return nil, fmt.Errorf("failed to parse currency %q: %w", c.Currency, err)
	}
	p := message.NewPrinter(tag)
	return &Formatter{
		p:    p,
		unit: unit,
		tag:  tag,
		sep:  localeSeparators(p),
		pos:  moneyAffix(p.Sprint(currency.Symbol(unit.Amount(1)))),
		neg:  moneyAffix(p.Sprint(currency.Symbol(unit.Amount(-1)))),
	}, nil
}

// Money formats d in the configured currency, e.g. "R$ 1.234,50" for pt-BR.
func (f *Formatter) Money(d decimal.Decimal) string {
	places := DecimalPlaces(f.unit.String())
	amount, a := Round(d, f.unit.String()), f.pos
	if amount.IsNegative() {
		amount, a = amount.Neg(), f.neg
	}
	return a.prefix + f.sep.group(amount, places) + a.suffix
}

// Number formats d with two decimals and locale separators.
func (f *Formatter) Number(d decimal.Decimal) string {
	return f.sep.group(d.Round(2), 2)
}

func (f *Formatter) Int(i int) string {
	return f.p.Sprintf("%d", i)
}

// Date renders a sale date, or the placeholder for a zero time.
func (f *Formatter) Date(t time.Time) string {
	if t.IsZero() {
		return DatePlaceholder
	}
	if f.tag == language.AmericanEnglish || f.tag == language.English {
		return t.Format("01/02/2006")
	}
	return t.Format("02/01/2006")
}
