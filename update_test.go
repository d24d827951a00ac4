package stockfolio

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRefreshHistoricals_ReusesFreshSeries(t *testing.T) {
	today := NewDate(2025, time.June, 15)
	fetched := 0
	provider := &fakeProvider{
		history: func(symbol string, from Date) (*Historical, error) {
			fetched++
			require.Equal(t, today.AddYear(-historyYears), from)
			return &Historical{Symbol: symbol, Currency: "AUD", Entries: points("2025-06-01", "10")}, nil
		},
	}
	sys, _ := newTestSystem(t, today, provider)

	// Fresh series in the store: no fetch.
	require.NoError(t, sys.Store().SetHistorical(&Historical{
		Symbol:      "BHP",
		LastUpdated: today,
		Currency:    "AUD",
		Entries:     points("2025-06-01", "9"),
	}))
	out, err := sys.refreshHistoricals(context.Background(), []string{"BHP"})
	require.NoError(t, err)
	require.Equal(t, 0, fetched)
	requireDecimal(t, "9", out["BHP"].Entries[0].Value)

	// Stale stamp: refetched and restamped.
	require.NoError(t, sys.Store().SetHistorical(&Historical{
		Symbol:      "BHP",
		LastUpdated: today.Add(-1),
		Currency:    "AUD",
		Entries:     points("2025-06-01", "9"),
	}))
	out, err = sys.refreshHistoricals(context.Background(), []string{"BHP"})
	require.NoError(t, err)
	require.Equal(t, 1, fetched)
	requireDecimal(t, "10", out["BHP"].Entries[0].Value)
	require.Equal(t, today, out["BHP"].LastUpdated)

	stored, ok := sys.Store().Historical("BHP")
	require.True(t, ok)
	require.Equal(t, today, stored.LastUpdated)
}

func TestRefreshRates_SkipsTargetCurrency(t *testing.T) {
	today := NewDate(2025, time.June, 15)
	provider := &fakeProvider{
		rate: func(fromCurrency, toCurrency string, _ Date) (*ExchangeRate, error) {
			require.Equal(t, "USD", fromCurrency)
			require.Equal(t, "AUD", toCurrency)
			return &ExchangeRate{From: "USD", To: "AUD", Entries: points("2025-06-01", "1.5")}, nil
		},
	}
	sys, _ := newTestSystem(t, today, provider)

	out, err := sys.refreshRates(context.Background(), []string{"AUD", "USD"}, "AUD")
	require.NoError(t, err)

	// The target currency needs no series; callers use the identity rate.
	require.NotContains(t, out, "AUD")
	require.Contains(t, out, "USD")
	require.Equal(t, today, out["USD"].LastUpdated)
}

func TestRefreshRates_DropsRatesForOldTarget(t *testing.T) {
	today := NewDate(2025, time.June, 15)
	provider := &fakeProvider{
		rate: func(fromCurrency, toCurrency string, _ Date) (*ExchangeRate, error) {
			return &ExchangeRate{From: fromCurrency, To: toCurrency, Entries: points("2025-06-01", "1.5")}, nil
		},
	}
	sys, _ := newTestSystem(t, today, provider)

	// A leftover series targeting the previous reporting currency.
	require.NoError(t, sys.Store().SetRate(&ExchangeRate{
		From:        "USD",
		To:          "NZD",
		LastUpdated: today,
		Entries:     points("2025-06-01", "1.7"),
	}))

	out, err := sys.refreshRates(context.Background(), []string{"USD"}, "AUD")
	require.NoError(t, err)
	require.Equal(t, "AUD", out["USD"].To)
	requireDecimal(t, "1.5", out["USD"].Entries[0].Value)
}
