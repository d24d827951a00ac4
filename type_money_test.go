package stockfolio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMoney_String(t *testing.T) {
	require.Equal(t, "$1,234.50", M(mustD("1234.5"), "AUD").String())
	require.Equal(t, "-$10.00", M(mustD("-10"), "AUD").String())
}

func TestMoney_SignedString(t *testing.T) {
	require.Equal(t, "+$10.00", M(mustD("10"), "AUD").SignedString())
	require.Equal(t, "-$10.00", M(mustD("-10"), "AUD").SignedString())
	require.Equal(t, "-", M(mustD("0"), "AUD").SignedString())
}

func TestMoney_Arithmetic(t *testing.T) {
	a := M(mustD("10"), "AUD")
	b := M(mustD("4"), "AUD")

	require.True(t, a.Add(b).Equal(M(mustD("14"), "AUD")))
	require.True(t, a.Sub(b).Equal(M(mustD("6"), "AUD")))
	require.True(t, a.Mul(mustD("2.5")).Equal(M(mustD("25"), "AUD")))
	require.True(t, a.Neg().IsNegative())

	// The empty currency is weak and takes the other side's.
	var zero Money
	require.Equal(t, "AUD", zero.Add(a).Currency())

	require.Panics(t, func() { a.Add(M(mustD("1"), "USD")) })
}
