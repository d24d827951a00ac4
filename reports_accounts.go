package stockfolio

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
)

// accountTotals accumulates one account's figures in the reporting currency.
type accountTotals struct {
	name      string
	accountID string

	todayChange          decimal.Decimal
	realizedProfitOrLoss decimal.Decimal
	realizedTotal        decimal.Decimal
	marketValue          decimal.Decimal
	totalCost            decimal.Decimal
}

// AccountSummary rolls every account's figures up across all securities,
// independent of the chart reconstruction.
//
// Realized profit or loss needs no market data, so it is accumulated while
// the quote batch is in flight; a quote failure still returns the realized
// figures with everything else zero.
func (s *System) AccountSummary(ctx context.Context) []AccountReport {
	snap := s.store.Snapshot()
	target := snap.Settings.Currency

	totals := make(map[string]*accountTotals, len(snap.Accounts))
	for id, account := range snap.Accounts {
		totals[id] = &accountTotals{name: account.Name, accountID: id}
	}

	var symbols []string
	currencies := make(map[string]struct{})
	for _, symbol := range sortedKeys(snap.Securities) {
		sec := snap.Securities[symbol]
		if !sec.HasActivity() {
			continue
		}
		symbols = append(symbols, symbol)
		currencies[sec.Currency] = struct{}{}
	}
	if len(symbols) == 0 {
		return summaryOf(totals, target)
	}

	quoteCh := make(chan quoteFetch, 1)
	go func() {
		quotes, err := s.provider.FetchQuotes(ctx, quoteSymbols(symbols, sortedKeys(currencies), target))
		quoteCh <- quoteFetch{quotes: quotes, err: err}
	}()

	for _, symbol := range symbols {
		sec := snap.Securities[symbol]
		for _, entry := range sec.SellHistory {
			t, ok := totals[entry.AccountID]
			if !ok {
				s.log.Warn().Str("symbol", symbol).Str("account", entry.AccountID).
					Msg("account summary: skipped sell entry, unknown account")
				continue
			}
			t.realizedTotal = t.realizedTotal.Add(entry.Total)
			t.realizedProfitOrLoss = t.realizedProfitOrLoss.Add(entry.ProfitOrLoss)
		}
	}

	fetch := <-quoteCh
	if fetch.err != nil {
		s.log.Warn().Err(fetch.err).Msg("account summary: quote batch fetch failed, returning realized figures only")
		return summaryOf(totals, target)
	}
	quotes := quoteSet{quotes: fetch.quotes, target: target}

	today := s.today()
	for _, symbol := range symbols {
		sec := snap.Securities[symbol]
		if len(sec.Holdings) == 0 {
			continue
		}

		quote, rate, previousRate, err := quotes.resolve(symbol)
		if err != nil {
			s.log.Warn().Err(err).Str("symbol", symbol).Msg("account summary: skipping security")
			continue
		}
		previousPrice := quote.PreviousClose
		lastPrice := quote.Price

		for _, holding := range sec.Holdings {
			t, ok := totals[holding.AccountID]
			if !ok {
				s.log.Warn().Str("symbol", symbol).Str("account", holding.AccountID).
					Msg("account summary: skipped holding, unknown account")
				continue
			}

			current := lastPrice.Mul(holding.Quantity).Mul(rate)

			// A lot held before today moves against the previous close,
			// a lot bought today against its own buy price. Both branches
			// keep the previous-close rate on the reference side.
			reference := holding.Price
			if holding.Date.Before(today) {
				reference = previousPrice
			}
			t.todayChange = t.todayChange.Add(current.Sub(reference.Mul(holding.Quantity).Mul(previousRate)))

			t.marketValue = t.marketValue.Add(current)
			cost := holding.Price.Mul(holding.Quantity).Add(holding.Brokerage).Add(holding.GST)
			t.totalCost = t.totalCost.Add(cost.Mul(rate))
		}
	}

	return summaryOf(totals, target)
}

// summaryOf converts the working totals into sorted reports. Percentages are
// magnitudes, nil when the base is zero.
func summaryOf(totals map[string]*accountTotals, target string) []AccountReport {
	out := make([]AccountReport, 0, len(totals))
	for _, t := range totals {
		unrealized := t.marketValue.Sub(t.totalCost)
		out = append(out, AccountReport{
			Name:      t.name,
			AccountID: t.accountID,

			TodayChange:    M(t.todayChange, target),
			TodayChangePct: AbsPercentOf(t.todayChange, t.marketValue.Sub(t.todayChange)),

			UnrealizedProfitOrLoss:    M(unrealized, target),
			UnrealizedProfitOrLossPct: AbsPercentOf(unrealized, t.totalCost),

			RealizedProfitOrLoss:    M(t.realizedProfitOrLoss, target),
			RealizedProfitOrLossPct: AbsPercentOf(t.realizedProfitOrLoss, t.realizedTotal.Sub(t.realizedProfitOrLoss)),

			MarketValue: M(t.marketValue, target),
			TotalCost:   M(t.totalCost, target),
			Currency:    target,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
