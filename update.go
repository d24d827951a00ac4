package stockfolio

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// historyYears is the trailing window fetched for price and rate series.
const historyYears = 5

// refreshHistoricals returns up-to-date price series for the given symbols,
// fetching concurrently any that are missing from the store or were not
// updated today. A single fetch failure fails the whole batch; callers
// degrade to a partial report.
func (s *System) refreshHistoricals(ctx context.Context, symbols []string) (map[string]*Historical, error) {
	today := s.today()
	from := today.AddYear(-historyYears)

	out := make(map[string]*Historical, len(symbols))
	var need []string
	for _, symbol := range symbols {
		if h, ok := s.store.Historical(symbol); ok && !h.Stale(today) {
			out[symbol] = h
			continue
		}
		need = append(need, symbol)
	}
	if len(need) == 0 {
		return out, nil
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	for _, symbol := range need {
		g.Go(func() error {
			h, err := s.provider.FetchHistory(ctx, symbol, from)
			if err != nil {
				return err
			}
			h.LastUpdated = today
			if err := s.store.SetHistorical(h); err != nil {
				return err
			}
			s.log.Debug().Str("symbol", symbol).Int("points", len(h.Entries)).Msg("historical series refreshed")
			mu.Lock()
			out[symbol] = h
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// refreshRates returns up-to-date exchange-rate series converting each given
// currency into target. The target currency itself needs no series; callers
// use the identity rate. Series targeting a stale reporting currency are
// dropped first.
func (s *System) refreshRates(ctx context.Context, currencies []string, target string) (map[string]*ExchangeRate, error) {
	today := s.today()
	from := today.AddYear(-historyYears)

	if err := s.store.DropRatesNotTargeting(target); err != nil {
		return nil, err
	}

	out := make(map[string]*ExchangeRate, len(currencies))
	var need []string
	for _, currency := range currencies {
		if currency == target {
			continue
		}
		if r, ok := s.store.Rate(currency); ok && !r.Stale(today) {
			out[currency] = r
			continue
		}
		need = append(need, currency)
	}
	if len(need) == 0 {
		return out, nil
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	for _, currency := range need {
		g.Go(func() error {
			r, err := s.provider.FetchRate(ctx, currency, target, from)
			if err != nil {
				return err
			}
			r.LastUpdated = today
			if err := s.store.SetRate(r); err != nil {
				return err
			}
			s.log.Debug().Str("from", currency).Str("to", target).Int("points", len(r.Entries)).Msg("exchange rate series refreshed")
			mu.Lock()
			out[currency] = r
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
