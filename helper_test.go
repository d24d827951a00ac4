package stockfolio

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// mustD parses a decimal literal, panicking on bad test data.
func mustD(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// requireDecimal asserts decimal equality with a readable failure message.
func requireDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	require.True(t, got.Equal(mustD(want)), "want %s, got %s %v", want, got, msgAndArgs)
}

// fakeProvider implements MarketData with pluggable function fields. A nil
// field fails the test if called.
type fakeProvider struct {
	t       *testing.T
	history func(symbol string, from Date) (*Historical, error)
	rate    func(fromCurrency, toCurrency string, from Date) (*ExchangeRate, error)
	quotes  func(symbols []string) (map[string]Quote, error)
}

func (f *fakeProvider) FetchHistory(_ context.Context, symbol string, from Date) (*Historical, error) {
	if f.history == nil {
		f.t.Fatalf("unexpected FetchHistory(%q)", symbol)
	}
	return f.history(symbol, from)
}

func (f *fakeProvider) FetchRate(_ context.Context, fromCurrency, toCurrency string, from Date) (*ExchangeRate, error) {
	if f.rate == nil {
		f.t.Fatalf("unexpected FetchRate(%q, %q)", fromCurrency, toCurrency)
	}
	return f.rate(fromCurrency, toCurrency, from)
}

func (f *fakeProvider) FetchQuotes(_ context.Context, symbols []string) (map[string]Quote, error) {
	if f.quotes == nil {
		f.t.Fatalf("unexpected FetchQuotes(%v)", symbols)
	}
	return f.quotes(symbols)
}

// newTestSystem builds a memory-only system with a pinned clock, one account
// and one AUD security.
func newTestSystem(t *testing.T, today Date, provider *fakeProvider) (*System, Account) {
	t.Helper()

	store, err := NewStore("", zerolog.Nop())
	require.NoError(t, err)

	if provider == nil {
		provider = &fakeProvider{t: t}
	}
	provider.t = t

	sys := NewSystem(store, provider, zerolog.Nop())
	sys.today = func() Date { return today }

	account := Account{AccountID: "1234567", Name: "Personal"}
	require.NoError(t, store.MutateAccounts(func(accounts map[string]*Account) error {
		accounts[account.AccountID] = &account
		return nil
	}))
	require.NoError(t, store.MutateSecurities(func(securities map[string]*Security) error {
		securities["BHP"] = NewSecurity("BHP", "BHP Group", "AUD", "ASX", "Stock")
		return nil
	}))
	return sys, account
}
