package stockfolio

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a ratio expressed in percent (12.34 means 12.34%).
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}

// PercentOf returns num/den as a Percent, or nil when den is zero.
//
// A nil result means "no meaningful percentage", never NaN or Inf.
func PercentOf(num, den decimal.Decimal) *Percent {
	if den.IsZero() {
		return nil
	}
	p := Percent(num.Div(den).InexactFloat64() * 100)
	return &p
}

// AbsPercentOf is PercentOf with the sign stripped. Account summaries report
// magnitude only; direction is carried by the numerator itself.
func AbsPercentOf(num, den decimal.Decimal) *Percent {
	p := PercentOf(num, den)
	if p == nil {
		return nil
	}
	if *p < 0 {
		*p = -*p
	}
	return p
}
