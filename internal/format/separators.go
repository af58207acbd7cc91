package format

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/message"
)

// separators are the digit group and decimal marks of a locale. Amounts are
// laid out from their exact decimal digits; only the marks come from x/text.
type separators struct {
	grouping string
	decimal  string
}

func localeSeparators(p *message.Printer) separators {
	r := []rune(p.Sprintf("%.1f", 1234567.5))
	sep := separators{decimal: "."}
	if len(r) >= 3 && !unicode.IsDigit(r[len(r)-2]) {
		sep.decimal = string(r[len(r)-2])
	}
	if len(r) > 1 && !unicode.IsDigit(r[1]) {
		sep.grouping = string(r[1])
	}
	return sep
}

func (s separators) group(d decimal.Decimal, places int32) string {
	fixed := d.StringFixed(places)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, c := range intPart {
		if i > 0 && s.grouping != "" && (len(intPart)-i)%3 == 0 {
			b.WriteString(s.grouping)
		}
		b.WriteRune(c)
	}
	if frac != "" {
		b.WriteString(s.decimal)
		b.WriteString(frac)
	}
	return b.String()
}

// affix is what a locale puts around the digits of an amount, symbol and
// sign included.
type affix struct {
	prefix string
	suffix string
}

func moneyAffix(sample string) affix {
	first := strings.IndexFunc(sample, unicode.IsDigit)
	last := strings.LastIndexFunc(sample, unicode.IsDigit)
	if first < 0 {
		return affix{prefix: sample + " "}
	}
	_, size := utf8.DecodeRuneInString(sample[last:])
	return affix{prefix: sample[:first], suffix: sample[last+size:]}
}
