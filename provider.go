package stockfolio

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// Quote is a live market snapshot for one symbol, fetched once per report and
// discarded afterwards.
type Quote struct {
	Symbol        string
	Price         decimal.Decimal
	PreviousClose decimal.Decimal
	Currency      string
}

// ErrQuoteNotFound is returned by quote lookups for symbols the provider did
// not answer for.
var ErrQuoteNotFound = errors.New("quote not found")

// MarketData is the external market-data collaborator.
//
// FetchHistory and FetchRate return ascending daily series from the given
// date; FetchQuotes answers per-symbol and may omit symbols it failed on —
// callers treat a missing symbol as a skip, not a fatal error.
type MarketData interface {
	FetchHistory(ctx context.Context, symbol string, from Date) (*Historical, error)
	FetchRate(ctx context.Context, fromCurrency, toCurrency string, from Date) (*ExchangeRate, error)
	FetchQuotes(ctx context.Context, symbols []string) (map[string]Quote, error)
}

// FXSymbol is the quote symbol of the pair converting one currency into
// another, in the provider's notation ("AUDUSD=X").
func FXSymbol(from, to string) string { return from + to + "=X" }
