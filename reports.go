package stockfolio

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// ChartPoint is one day of the reconstructed portfolio value series.
type ChartPoint struct {
	Date  Date            `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// HoldingRow is the per-security line of the portfolio report. Monetary
// amounts are in the security's native currency.
type HoldingRow struct {
	Symbol   string
	Name     string
	Currency string
	Exchange string
	Type     string

	Units           decimal.Decimal
	BuyPrice        decimal.Decimal // weighted average: purchase cost / units
	LastPrice       decimal.Decimal
	MarketValue     decimal.Decimal
	PurchaseCost    decimal.Decimal
	ProfitOrLoss    decimal.Decimal
	ProfitOrLossPct *Percent
	TodayChange     decimal.Decimal
	TodayChangePct  *Percent
	FirstPurchase   Date
	LastPurchase    Date
	Weight          *Percent // share of combined market value, in the reporting currency
}

// TradeRow is one trade in the report: a buy record as-is, or the merged view
// of the sell records sharing one trade id.
type TradeRow struct {
	TradeID     string
	Date        Date
	AccountName string
	Side        TradeSide
	Symbol      string
	Currency    string
	Exchange    string
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	Brokerage   decimal.Decimal
	GST         decimal.Decimal
	Total       decimal.Decimal
}

// BuyRow is a buy-history entry annotated for display.
type BuyRow struct {
	BuyRecord
	AccountName string
	Symbol      string
	Currency    string
	Exchange    string
}

// SellRow is a sell-history entry annotated for display.
type SellRow struct {
	SellRecord
	AccountName string
	Symbol      string
	Currency    string
	Exchange    string
}

// PortfolioReport is the full on-demand report for a filtered universe of
// securities: the daily value chart, holding rows, trade and history tables,
// and combined totals in the reporting currency.
type PortfolioReport struct {
	Chart       []ChartPoint
	Holdings    []HoldingRow
	Trades      []TradeRow
	BuyHistory  []BuyRow
	SellHistory []SellRow

	MarketValue     Money
	TodayChange     Money
	TodayChangePct  *Percent
	ProfitOrLoss    Money
	ProfitOrLossPct *Percent
	Currency        string
}

// AccountReport is the roll-up of one account across all securities, in the
// reporting currency. Percentages are magnitudes; nil when undefined.
type AccountReport struct {
	Name      string
	AccountID string

	TodayChange    Money
	TodayChangePct *Percent

	UnrealizedProfitOrLoss    Money
	UnrealizedProfitOrLossPct *Percent

	RealizedProfitOrLoss    Money
	RealizedProfitOrLossPct *Percent

	MarketValue Money
	TotalCost   Money
	Currency    string
}

// Filter selects the security universe and window of a portfolio report.
type Filter struct {
	AccountID   string   // empty for all accounts
	Exchanges   []string // empty for all exchanges
	Types       []string // empty for all types
	RangeMonths int      // chart window; 0 means the default 60
}

// chartRangeMonths are the supported chart windows.
var chartRangeMonths = []int{1, 3, 6, 12, 60}

func (f Filter) months() int {
	for _, m := range chartRangeMonths {
		if f.RangeMonths == m {
			return m
		}
	}
	return 60
}

func (f Filter) matches(sec *Security) bool {
	if len(f.Exchanges) > 0 && !contains(f.Exchanges, sec.Exchange) {
		return false
	}
	if len(f.Types) > 0 && !contains(f.Types, sec.Type) {
		return false
	}
	return true
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// quoteSet resolves a symbol's live quote together with the exchange rates
// (current and previous close) converting its currency into the target.
type quoteSet struct {
	quotes map[string]Quote
	target string
}

// resolve returns the quote and its currency's current and previous-close
// conversion rates. It errors when the quote, one of its fields, or the
// required FX pair quote is missing; callers skip the security and log.
func (q quoteSet) resolve(symbol string) (Quote, decimal.Decimal, decimal.Decimal, error) {
	one := decimal.NewFromInt(1)
	quote, ok := q.quotes[symbol]
	if !ok {
		return Quote{}, one, one, fmt.Errorf("%w: %q", ErrQuoteNotFound, symbol)
	}
	if quote.Currency == "" || quote.Price.IsZero() || quote.PreviousClose.IsZero() {
		return Quote{}, one, one, fmt.Errorf("quote for %q is missing fields", symbol)
	}

	rate, previousRate := one, one
	if quote.Currency != q.target {
		pair := FXSymbol(quote.Currency, q.target)
		fx, ok := q.quotes[pair]
		if !ok {
			return Quote{}, one, one, fmt.Errorf("%w: exchange rate %q", ErrQuoteNotFound, pair)
		}
		if fx.Price.IsZero() || fx.PreviousClose.IsZero() {
			return Quote{}, one, one, fmt.Errorf("exchange rate quote %q is missing fields", pair)
		}
		rate, previousRate = fx.Price, fx.PreviousClose
	}
	return quote, rate, previousRate, nil
}

// quoteSymbols lists the symbols one batched quote request must cover: the
// security symbols plus the FX pair for every foreign currency involved.
func quoteSymbols(symbols []string, currencies []string, target string) []string {
	out := append([]string(nil), symbols...)
	seen := make(map[string]struct{})
	for _, currency := range currencies {
		if currency == target {
			continue
		}
		pair := FXSymbol(currency, target)
		if _, ok := seen[pair]; ok {
			continue
		}
		seen[pair] = struct{}{}
		out = append(out, pair)
	}
	return out
}
