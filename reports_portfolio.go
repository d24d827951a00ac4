package stockfolio

import (
	"context"

	"github.com/shopspring/decimal"
)

// PortfolioReport reconstructs the daily value series and holding rows for
// the securities matching the filter.
//
// External-data failures never fail the whole report: a failed batch fetch
// returns the best-effort partial result accumulated so far, and a single
// security with missing data is skipped and logged. Only the ledger is
// all-or-nothing; reporting degrades in place.
func (s *System) PortfolioReport(ctx context.Context, f Filter) *PortfolioReport {
	snap := s.store.Snapshot()
	target := snap.Settings.Currency

	b := &portfolioBuilder{
		sys:    s,
		filter: f,
		snap:   snap,
		report: &PortfolioReport{
			Chart:       []ChartPoint{},
			Holdings:    []HoldingRow{},
			Trades:      []TradeRow{},
			BuyHistory:  []BuyRow{},
			SellHistory: []SellRow{},
			MarketValue: M(decimal.Zero, target),
			TodayChange: M(decimal.Zero, target),
			ProfitOrLoss: M(decimal.Zero, target),
			Currency:    target,
		},
		target: target,
		today:  s.today(),
	}
	return b.assemble(ctx)
}

// portfolioBuilder holds the working state of one report computation.
type portfolioBuilder struct {
	sys    *System
	filter Filter
	snap   *Snapshot
	target string
	today  Date

	securities  map[string]*Security
	historicals map[string]*Historical
	rates       map[string]*ExchangeRate
	quotes      quoteSet

	dataPoints []ChartPoint
	report     *PortfolioReport
}

type quoteFetch struct {
	quotes map[string]Quote
	err    error
}

func (b *portfolioBuilder) assemble(ctx context.Context) *PortfolioReport {
	b.securities = make(map[string]*Security)
	for symbol, sec := range b.snap.Securities {
		if b.filter.matches(sec) {
			b.securities[symbol] = sec
		}
	}
	if len(b.securities) == 0 {
		return b.report
	}
	symbols := sortedKeys(b.securities)

	historicals, err := b.sys.refreshHistoricals(ctx, symbols)
	if err != nil {
		b.sys.log.Warn().Err(err).Msg("portfolio report: historical batch fetch failed, returning partial result")
		return b.report
	}
	b.historicals = historicals

	currencies := make(map[string]struct{})
	for _, h := range b.historicals {
		currencies[h.Currency] = struct{}{}
	}

	// Quotes are fetched while the historical loop below runs; the two are
	// joined before the today overlay.
	quoteCh := make(chan quoteFetch, 1)
	go func() {
		quotes, err := b.sys.provider.FetchQuotes(ctx, quoteSymbols(symbols, sortedKeys(currencies), b.target))
		quoteCh <- quoteFetch{quotes: quotes, err: err}
	}()

	rates, err := b.sys.refreshRates(ctx, sortedKeys(currencies), b.target)
	if err != nil {
		b.sys.log.Warn().Err(err).Msg("portfolio report: exchange rate batch fetch failed, returning partial result")
		return b.report
	}
	b.rates = rates

	b.initDataPoints()

	for _, symbol := range symbols {
		sec := b.securities[symbol]
		hist := b.historicals[symbol]
		if hist == nil || len(hist.Entries) == 0 {
			b.sys.log.Warn().Str("symbol", symbol).Msg("portfolio report: skipped, missing or empty historical data")
			continue
		}

		fx := RateSource(UnitRate())
		if hist.Currency != b.target {
			rate := b.rates[hist.Currency]
			if rate == nil || len(rate.Entries) == 0 {
				b.sys.log.Warn().Str("symbol", symbol).Str("currency", hist.Currency).
					Msg("portfolio report: skipped, missing or empty exchange rate data")
				continue
			}
			fx = NewCursor(rate.Entries)
		}

		b.processDataPoints(sec, hist, fx)
		b.processTradesAndHistory(sec)
	}

	fetch := <-quoteCh
	if fetch.err != nil {
		b.sys.log.Warn().Err(fetch.err).Msg("portfolio report: quote batch fetch failed, returning partial result")
		return b.report
	}
	b.quotes = quoteSet{quotes: fetch.quotes, target: b.target}

	b.finishWithQuotes()
	return b.report
}

// initDataPoints creates one zero-valued point per calendar day in the
// window, not just trading days.
func (b *portfolioBuilder) initDataPoints() {
	start := b.today.AddMonth(-b.filter.months())
	for on := start; !on.After(b.today); on = on.Add(1) {
		b.dataPoints = append(b.dataPoints, ChartPoint{Date: on, Value: decimal.Zero})
	}
}

// processDataPoints adds one security's daily value into the chart. The
// three cursors all require ascending queries, which is why the points are
// visited strictly in date order.
func (b *portfolioBuilder) processDataPoints(sec *Security, hist *Historical, fx RateSource) {
	units := NewUnitTracker(sec, b.filter.AccountID)
	prices := NewCursor(hist.Entries)

	for i := range b.dataPoints {
		on := b.dataPoints[i].Date
		held := units.UnitsAt(on)
		if held.IsNegative() {
			b.sys.log.Warn().Str("symbol", sec.Symbol).Stringer("on", on).
				Stringer("units", held).Msg("portfolio report: negative units held, data integrity issue")
		}
		value := held.Mul(prices.ValueAt(on)).Mul(fx.ValueAt(on))
		b.dataPoints[i].Value = b.dataPoints[i].Value.Add(value)
	}
}

// processTradesAndHistory emits the buy/sell history rows and the merged
// trade rows for one security, honoring the account filter.
func (b *portfolioBuilder) processTradesAndHistory(sec *Security) {
	var order []string
	merged := make(map[string]*TradeRow)

	for _, entry := range sec.BuyHistory {
		if b.filter.AccountID != "" && b.filter.AccountID != entry.AccountID {
			continue
		}
		accountName := b.accountName(entry.AccountID)

		b.report.BuyHistory = append(b.report.BuyHistory, BuyRow{
			BuyRecord:   entry,
			AccountName: accountName,
			Symbol:      sec.Symbol,
			Currency:    sec.Currency,
			Exchange:    sec.Exchange,
		})

		merged[entry.TradeID] = &TradeRow{
			TradeID:     entry.TradeID,
			Date:        entry.Date,
			AccountName: accountName,
			Side:        BuySide,
			Symbol:      sec.Symbol,
			Currency:    sec.Currency,
			Exchange:    sec.Exchange,
			Quantity:    entry.Quantity,
			Price:       entry.Price,
			Brokerage:   entry.Brokerage,
			GST:         entry.GST,
			Total:       entry.Total,
		}
		order = append(order, entry.TradeID)
	}

	for _, entry := range sec.SellHistory {
		if b.filter.AccountID != "" && b.filter.AccountID != entry.AccountID {
			continue
		}
		accountName := b.accountName(entry.AccountID)

		b.report.SellHistory = append(b.report.SellHistory, SellRow{
			SellRecord:  entry,
			AccountName: accountName,
			Symbol:      sec.Symbol,
			Currency:    sec.Currency,
			Exchange:    sec.Exchange,
		})

		// Sell records sharing a trade id are slices of one sell trade;
		// re-merge them into a single row.
		if row, ok := merged[entry.TradeID]; ok {
			row.Quantity = row.Quantity.Add(entry.Quantity)
			row.Brokerage = row.Brokerage.Add(entry.AppliedSellBrokerage)
			row.GST = row.GST.Add(entry.AppliedSellGST)
			row.Total = row.Total.Add(entry.Total)
			continue
		}
		merged[entry.TradeID] = &TradeRow{
			TradeID:     entry.TradeID,
			Date:        entry.SellDate,
			AccountName: accountName,
			Side:        SellSide,
			Symbol:      sec.Symbol,
			Currency:    sec.Currency,
			Exchange:    sec.Exchange,
			Quantity:    entry.Quantity,
			Price:       entry.SellPrice,
			Brokerage:   entry.AppliedSellBrokerage,
			GST:         entry.AppliedSellGST,
			Total:       entry.Total,
		}
		order = append(order, entry.TradeID)
	}

	for _, id := range order {
		b.report.Trades = append(b.report.Trades, *merged[id])
	}
}

// finishWithQuotes derives the holding rows from live quotes, overlays today
// on the chart, and fills the combined totals.
func (b *portfolioBuilder) finishWithQuotes() {
	var combinedValue, combinedPreviousValue, combinedCost decimal.Decimal
	var converted []decimal.Decimal // per-row market value in the reporting currency

	for _, symbol := range sortedKeys(b.securities) {
		sec := b.securities[symbol]
		if len(sec.Holdings) == 0 {
			continue
		}

		quote, rate, previousRate, err := b.quotes.resolve(symbol)
		if err != nil {
			b.sys.log.Warn().Err(err).Str("symbol", symbol).Msg("portfolio report: skipping security")
			continue
		}
		previousPrice := quote.PreviousClose
		lastPrice := quote.Price

		var marketValue, previousValue, units, cost decimal.Decimal
		var firstPurchase, lastPurchase Date

		for _, holding := range sec.Holdings {
			if b.filter.AccountID != "" && b.filter.AccountID != holding.AccountID {
				continue
			}

			marketValue = marketValue.Add(lastPrice.Mul(holding.Quantity))
			cost = cost.Add(holding.Price.Mul(holding.Quantity)).Add(holding.Brokerage).Add(holding.GST)
			units = units.Add(holding.Quantity)

			// Lots held before today move against the previous close; a lot
			// bought today moves against its own buy price, otherwise the
			// purchase day would show a phantom change.
			if holding.Date.Before(b.today) {
				previousValue = previousValue.Add(previousPrice.Mul(holding.Quantity))
			} else {
				previousValue = previousValue.Add(holding.Price.Mul(holding.Quantity))
			}

			if firstPurchase.IsZero() || holding.Date.Before(firstPurchase) {
				firstPurchase = holding.Date
			}
			if lastPurchase.IsZero() || holding.Date.After(lastPurchase) {
				lastPurchase = holding.Date
			}
		}

		rowValue := marketValue.Mul(rate)
		combinedValue = combinedValue.Add(rowValue)
		combinedPreviousValue = combinedPreviousValue.Add(previousValue.Mul(previousRate))
		combinedCost = combinedCost.Add(cost.Mul(rate))

		if units.IsPositive() {
			profitOrLoss := marketValue.Sub(cost)
			todayChange := marketValue.Sub(previousValue)
			b.report.Holdings = append(b.report.Holdings, HoldingRow{
				Symbol:          sec.Symbol,
				Name:            sec.Name,
				Currency:        sec.Currency,
				Exchange:        sec.Exchange,
				Type:            sec.Type,
				Units:           units,
				BuyPrice:        cost.Div(units),
				LastPrice:       lastPrice,
				MarketValue:     marketValue,
				PurchaseCost:    cost,
				ProfitOrLoss:    profitOrLoss,
				ProfitOrLossPct: PercentOf(profitOrLoss, cost),
				TodayChange:     todayChange,
				TodayChangePct:  PercentOf(todayChange, previousValue),
				FirstPurchase:   firstPurchase,
				LastPurchase:    lastPurchase,
			})
			converted = append(converted, rowValue)
		}
	}

	// Weights need the combined market value, so they come last.
	for i := range b.report.Holdings {
		b.report.Holdings[i].Weight = PercentOf(converted[i], combinedValue)
	}

	// Overlay today with the live aggregate instead of re-running the
	// historical loop.
	if n := len(b.dataPoints); n > 0 && b.dataPoints[n-1].Date == b.today {
		b.dataPoints[n-1].Value = combinedValue
	} else {
		b.dataPoints = append(b.dataPoints, ChartPoint{Date: b.today, Value: combinedValue})
	}
	b.report.Chart = b.dataPoints

	todayChange := combinedValue.Sub(combinedPreviousValue)
	profitOrLoss := combinedValue.Sub(combinedCost)
	b.report.MarketValue = M(combinedValue, b.target)
	b.report.TodayChange = M(todayChange, b.target)
	b.report.TodayChangePct = PercentOf(todayChange, combinedPreviousValue)
	b.report.ProfitOrLoss = M(profitOrLoss, b.target)
	b.report.ProfitOrLossPct = PercentOf(profitOrLoss, combinedCost)
}

func (b *portfolioBuilder) accountName(accountID string) string {
	if a, ok := b.snap.Accounts[accountID]; ok {
		return a.Name
	}
	return ""
}
