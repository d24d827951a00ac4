package stockfolio

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// System ties the store, the market-data provider and the diagnostics logger
// together. It is the surface the CLI (or any other front end) talks to.
type System struct {
	store    *Store
	provider MarketData
	log      zerolog.Logger

	// today is injectable so tests can pin the clock.
	today func() Date
}

// NewSystem builds a System around an opened store and a provider.
func NewSystem(store *Store, provider MarketData, log zerolog.Logger) *System {
	return &System{
		store:    store,
		provider: provider,
		log:      log,
		today:    Today,
	}
}

// Store exposes the underlying store, mainly for settings management.
func (s *System) Store() *Store { return s.store }

// RecordTrade validates and applies one buy or sell trade, returning the
// trade id. The whole operation is atomic: any validation failure leaves the
// ledger untouched.
func (s *System) RecordTrade(t Trade) (string, error) {
	if !t.Quantity.IsPositive() {
		return "", fmt.Errorf("%w: got %s", ErrZeroQuantity, t.Quantity)
	}
	if t.Side != BuySide && t.Side != SellSide {
		return "", fmt.Errorf("unknown trade side %q", t.Side)
	}
	if t.Date.IsZero() {
		t.Date = s.today()
	}
	if _, ok := s.store.Account(t.AccountID); !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAccount, t.AccountID)
	}

	settings := s.store.Settings()
	gstPercent, err := decimal.NewFromString(strings.TrimSpace(settings.GSTPercent))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrBadTaxRate, settings.GSTPercent)
	}

	tradeID := uuid.NewString()
	err = s.store.UpdateSecurity(t.Symbol, func(sec *Security) error {
		if t.Side == BuySide {
			recordBuy(sec, t, gstPercent, tradeID)
			return nil
		}
		return recordSell(sec, t, gstPercent, tradeID)
	})
	if err != nil {
		return "", err
	}

	s.log.Info().
		Str("trade", tradeID).
		Str("side", string(t.Side)).
		Str("symbol", t.Symbol).
		Str("account", t.AccountID).
		Stringer("quantity", t.Quantity).
		Msg("trade recorded")
	return tradeID, nil
}

// AddSecurity registers a new security after verifying it against a live
// quote: the symbol must be quotable, carry a currency, and be listed on the
// exchange the caller claims.
func (s *System) AddSecurity(ctx context.Context, symbol, name, exchange, typ string) error {
	if _, ok := s.store.Security(symbol); ok {
		return fmt.Errorf("security %q already exists", symbol)
	}

	quotes, err := s.provider.FetchQuotes(ctx, []string{symbol})
	if err != nil {
		return fmt.Errorf("could not fetch quote for %q: %w", symbol, err)
	}
	quote, ok := quotes[symbol]
	if !ok {
		return fmt.Errorf("%w: %q", ErrQuoteNotFound, symbol)
	}
	if quote.Currency == "" {
		return fmt.Errorf("quote for %q is missing its currency", symbol)
	}

	return s.store.MutateSecurities(func(securities map[string]*Security) error {
		if _, ok := securities[symbol]; ok {
			return fmt.Errorf("security %q already exists", symbol)
		}
		securities[symbol] = NewSecurity(symbol, name, quote.Currency, exchange, typ)
		return nil
	})
}

// Securities returns a snapshot list of all registered securities, sorted by
// symbol.
func (s *System) Securities() []*Security {
	snap := s.store.Snapshot()
	list := make([]*Security, 0, len(snap.Securities))
	for _, symbol := range sortedKeys(snap.Securities) {
		list = append(list, snap.Securities[symbol])
	}
	return list
}

// generateAccountID returns a random id that is exactly 7 digits long.
func generateAccountID() string {
	return fmt.Sprintf("%d", 1000000+rand.Intn(9000000))
}

// CreateAccount adds a new named account with a fresh random id.
func (s *System) CreateAccount(name string) (Account, error) {
	var created Account
	err := s.store.MutateAccounts(func(accounts map[string]*Account) error {
		id := generateAccountID()
		for {
			if _, taken := accounts[id]; !taken {
				break
			}
			id = generateAccountID()
		}
		created = Account{AccountID: id, Name: name}
		accounts[id] = &created
		return nil
	})
	return created, err
}

// RenameAccount changes the display name of an existing account.
func (s *System) RenameAccount(accountID, name string) error {
	return s.store.MutateAccounts(func(accounts map[string]*Account) error {
		a, ok := accounts[accountID]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownAccount, accountID)
		}
		a.Name = name
		return nil
	})
}

// DeleteAccount removes an account and every lot and trade record belonging
// to it across all securities.
func (s *System) DeleteAccount(accountID string) error {
	err := s.store.MutateAccounts(func(accounts map[string]*Account) error {
		delete(accounts, accountID)
		return nil
	})
	if err != nil {
		return err
	}
	return s.store.MutateSecurities(func(securities map[string]*Security) error {
		for _, sec := range securities {
			holdings := sec.Holdings[:0]
			for _, h := range sec.Holdings {
				if h.AccountID != accountID {
					holdings = append(holdings, h)
				}
			}
			sec.Holdings = holdings

			buys := sec.BuyHistory[:0]
			for _, b := range sec.BuyHistory {
				if b.AccountID != accountID {
					buys = append(buys, b)
				}
			}
			sec.BuyHistory = buys

			sells := sec.SellHistory[:0]
			for _, entry := range sec.SellHistory {
				if entry.AccountID != accountID {
					sells = append(sells, entry)
				}
			}
			sec.SellHistory = sells
		}
		return nil
	})
}
