package pricefmt

import (
	"strings"

	"github.com/shopspring/decimal"

	"SignalRelay/internal/model"
)

// Format renders a price as text under the regime of the given asset class.
//
// Major-class prices are truncated to a whole number. Everything else is
// rendered with up to 10 decimal places, keeping the leading run of decimal
// digits through the 5th non-zero digit, with trailing zeros (and a dangling
// decimal point) stripped. Example: 0.0000123456 -> "0.000012345".
func Format(price decimal.Decimal, class model.AssetClass) string {
	if class == model.ClassMajor {
		return price.Truncate(0).String()
	}

	s := price.Truncate(10).String()
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return s
	}
	intPart, frac := s[:dot], s[dot+1:]

	nonzero := 0
	cut := len(frac)
	for i := 0; i < len(frac); i++ {
		if frac[i] != '0' {
			nonzero++
			if nonzero == 5 {
				cut = i + 1
				break
			}
		}
	}
	frac = strings.TrimRight(frac[:cut], "0")
	if frac == "" {
		return intPart
	}
	return intPart + "." + frac
}
