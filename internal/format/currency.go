package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currencies without minor units per ISO 4217.
var zeroDecimalCurrencies = map[string]bool{
	"BIF": true, "CLP": true, "DJF": true, "GNF": true,
	"JPY": true, "KMF": true, "KRW": true, "MGA": true,
	"PYG": true, "RWF": true, "UGX": true, "VND": true,
	"VUV": true, "XAF": true, "XOF": true, "XPF": true,
}

func IsZeroDecimal(c string) bool {
	return zeroDecimalCurrencies[strings.ToUpper(c)]
}

// DecimalPlaces returns the number of decimal places shown for the currency.
func DecimalPlaces(c string) int32 {
	if IsZeroDecimal(c) {
		return 0
	}
	return 2
}

// Round rounds amount to the display precision of the currency.
func Round(amount decimal.Decimal, c string) decimal.Decimal {
	return amount.Round(DecimalPlaces(c))
}
