package stockfolio

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCreateRenameDeleteAccount(t *testing.T) {
	today := NewDate(2025, time.June, 1)
	sys, seeded := newTestSystem(t, today, nil)

	account, err := sys.CreateAccount("Super")
	require.NoError(t, err)
	require.Equal(t, "Super", account.Name)
	require.Regexp(t, regexp.MustCompile(`^\d{7}$`), account.AccountID)

	require.NoError(t, sys.RenameAccount(account.AccountID, "SMSF"))
	got, ok := sys.Store().Account(account.AccountID)
	require.True(t, ok)
	require.Equal(t, "SMSF", got.Name)

	err = sys.RenameAccount("0000000", "nope")
	require.ErrorIs(t, err, ErrUnknownAccount)

	// Deleting an account strips its records from every security.
	recordTestTrade(t, sys, seeded, BuySide, NewDate(2025, time.January, 1), "100", "10", "0")
	recordTestTrade(t, sys, seeded, SellSide, NewDate(2025, time.February, 1), "40", "11", "0")
	require.NoError(t, sys.DeleteAccount(seeded.AccountID))

	_, ok = sys.Store().Account(seeded.AccountID)
	require.False(t, ok)
	sec := bhp(t, sys)
	require.Empty(t, sec.Holdings)
	require.Empty(t, sec.BuyHistory)
	require.Empty(t, sec.SellHistory)
}

func TestAddSecurity(t *testing.T) {
	today := NewDate(2025, time.June, 1)

	t.Run("verifies the symbol and takes the quote currency", func(t *testing.T) {
		provider := &fakeProvider{
			quotes: func(symbols []string) (map[string]Quote, error) {
				require.Equal(t, []string{"NVDA"}, symbols)
				return map[string]Quote{
					"NVDA": {Symbol: "NVDA", Price: mustD("120"), PreviousClose: mustD("118"), Currency: "USD"},
				}, nil
			},
		}
		sys, _ := newTestSystem(t, today, provider)

		require.NoError(t, sys.AddSecurity(context.Background(), "NVDA", "NVIDIA", "NASDAQ", "Stock"))

		sec, ok := sys.Store().Security("NVDA")
		require.True(t, ok)
		require.Equal(t, "USD", sec.Currency)
		require.Equal(t, "NASDAQ", sec.Exchange)
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		sys, _ := newTestSystem(t, today, nil)
		err := sys.AddSecurity(context.Background(), "BHP", "BHP Group", "ASX", "Stock")
		require.ErrorContains(t, err, "already exists")
	})

	t.Run("rejects unquotable symbols", func(t *testing.T) {
		provider := &fakeProvider{
			quotes: func([]string) (map[string]Quote, error) {
				return map[string]Quote{}, nil
			},
		}
		sys, _ := newTestSystem(t, today, provider)
		err := sys.AddSecurity(context.Background(), "NOPE", "Nope", "", "")
		require.ErrorIs(t, err, ErrQuoteNotFound)
	})

	t.Run("rejects quotes without a currency", func(t *testing.T) {
		provider := &fakeProvider{
			quotes: func([]string) (map[string]Quote, error) {
				return map[string]Quote{"X": {Symbol: "X", Price: mustD("1")}}, nil
			},
		}
		sys, _ := newTestSystem(t, today, provider)
		err := sys.AddSecurity(context.Background(), "X", "X", "", "")
		require.ErrorContains(t, err, "currency")
	})
}

func TestSecuritiesSorted(t *testing.T) {
	today := NewDate(2025, time.June, 1)
	sys, _ := newTestSystem(t, today, nil)

	require.NoError(t, sys.Store().MutateSecurities(func(securities map[string]*Security) error {
		securities["AAA"] = NewSecurity("AAA", "Aaa", "AUD", "ASX", "Stock")
		securities["ZZZ"] = NewSecurity("ZZZ", "Zzz", "AUD", "ASX", "Stock")
		return nil
	}))

	list := sys.Securities()
	require.Len(t, list, 3)
	require.Equal(t, "AAA", list[0].Symbol)
	require.Equal(t, "BHP", list[1].Symbol)
	require.Equal(t, "ZZZ", list[2].Symbol)
}
