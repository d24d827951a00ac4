package stockfolio

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in a specific currency.
//
// Amounts inside a security's records stay in that security's native currency
// as plain decimals; Money is the type used once currency starts to matter,
// at report and aggregation boundaries.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M builds a Money from a decimal amount and a currency code.
func M(value decimal.Decimal, currency string) Money {
	return Money{value: value, cur: currency}
}

// currency returns the money's currency metadata, never nil.
func (m Money) currency() money.Currency {
	return *money.New(0, m.cur).Currency()
}

// String returns the amount formatted with its currency symbol and fraction digits.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// SignedString is like String but with an explicit sign, and "-" for zero.
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Currency() string        { return m.cur }
func (m Money) Amount() decimal.Decimal { return m.value }
func (m Money) Equal(n Money) bool      { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool            { return m.value.IsZero() }
func (m Money) IsPositive() bool        { return m.value.IsPositive() }
func (m Money) IsNegative() bool        { return m.value.IsNegative() }
func (m Money) Neg() Money              { return Money{value: m.value.Neg(), cur: m.cur} }

// Mul scales the amount by a dimensionless factor (a quantity or a rate).
func (m Money) Mul(q decimal.Decimal) Money { return Money{value: m.value.Mul(q), cur: m.cur} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// makes the "" currency totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + "!=" + b.cur)
	}
	return a.cur
}
