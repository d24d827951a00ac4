package renderer

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/harksen/stockfolio"
)

// pct renders a possibly-undefined percentage.
func pct(p *stockfolio.Percent) string {
	if p == nil {
		return "n/a"
	}
	return p.String()
}

// signedPct renders a possibly-undefined percentage with an explicit sign.
func signedPct(p *stockfolio.Percent) string {
	if p == nil {
		return "n/a"
	}
	return p.SignedString()
}

// amount renders a native-currency decimal with its currency code.
func amount(d decimal.Decimal, currency string) string {
	return fmt.Sprintf("%s %s", d.StringFixed(2), currency)
}

// signedAmount renders a native-currency decimal with an explicit sign.
func signedAmount(d decimal.Decimal, currency string) string {
	if d.IsPositive() {
		return "+" + amount(d, currency)
	}
	return amount(d, currency)
}
