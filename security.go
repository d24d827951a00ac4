package stockfolio

import (
	"github.com/shopspring/decimal"
)

// Account is a named owner of trades. Several accounts may hold lots of the
// same security.
type Account struct {
	AccountID string `json:"accountId"`
	Name      string `json:"name"`
}

// Settings holds the user-level configuration persisted in the store.
//
// GSTPercent is kept as the raw string it was configured with and parsed at
// trade time, so a malformed value fails the trade instead of silently
// defaulting.
type Settings struct {
	Currency          string          `json:"currency"`
	GSTPercent        string          `json:"gstPercent"`
	BrokerageAutofill decimal.Decimal `json:"brokerageAutofill"`
}

// Holding is one open buy lot: a quantity of a security acquired by one
// account at one price on one date.
//
// Quantity, Brokerage and GST shrink when the lot is partially sold; they
// never grow. A Holding with zero quantity is removed from the security.
type Holding struct {
	AccountID string          `json:"accountId"`
	Date      Date            `json:"date"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Brokerage decimal.Decimal `json:"brokerage"` // remaining unapplied buy brokerage
	GST       decimal.Decimal `json:"gst"`       // remaining unapplied tax on that brokerage
}

// BuyRecord is the immutable log entry of a buy trade. Unlike the Holding it
// spawned, it is never reduced by later sells.
type BuyRecord struct {
	TradeID   string          `json:"tradeId"`
	AccountID string          `json:"accountId"`
	Date      Date            `json:"date"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Brokerage decimal.Decimal `json:"brokerage"`
	GST       decimal.Decimal `json:"gst"`
	Total     decimal.Decimal `json:"total"` // quantity*price + brokerage + gst
}

// SellRecord is one (sell trade, consumed lot) pair. A sell spanning several
// lots produces several records sharing one TradeID.
type SellRecord struct {
	TradeID              string          `json:"tradeId"`
	AccountID            string          `json:"accountId"`
	BuyDate              Date            `json:"buyDate"`
	SellDate             Date            `json:"sellDate"`
	Quantity             decimal.Decimal `json:"quantity"`
	BuyPrice             decimal.Decimal `json:"buyPrice"`
	SellPrice            decimal.Decimal `json:"sellPrice"`
	AppliedBuyBrokerage  decimal.Decimal `json:"appliedBuyBrokerage"`
	AppliedSellBrokerage decimal.Decimal `json:"appliedSellBrokerage"`
	AppliedBuyGST        decimal.Decimal `json:"appliedBuyGst"`
	AppliedSellGST       decimal.Decimal `json:"appliedSellGst"`
	Total                decimal.Decimal `json:"total"` // net proceeds for this slice
	ProfitOrLoss         decimal.Decimal `json:"profitOrLoss"`
	CapitalGainOrLoss    decimal.Decimal `json:"capitalGainOrLoss"`
	CGTDiscount          bool            `json:"cgtDiscount"`
}

// Security is the record a lot ledger operates on: identity plus the three
// history collections.
//
// Invariant: for any account, the sum of open lot quantities equals total
// bought minus total sold.
type Security struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Exchange string `json:"exchange"`
	Type     string `json:"type"`

	Holdings    []*Holding   `json:"holdings"`
	BuyHistory  []BuyRecord  `json:"buyHistory"`  // ascending by Date
	SellHistory []SellRecord `json:"sellHistory"` // ascending by SellDate
}

// NewSecurity returns a Security with empty history collections.
func NewSecurity(symbol, name, currency, exchange, typ string) *Security {
	return &Security{
		Symbol:      symbol,
		Name:        name,
		Currency:    currency,
		Exchange:    exchange,
		Type:        typ,
		Holdings:    make([]*Holding, 0),
		BuyHistory:  make([]BuyRecord, 0),
		SellHistory: make([]SellRecord, 0),
	}
}

// UnitsOwned sums the open lot quantities for one account (or all accounts
// when accountID is empty).
func (s *Security) UnitsOwned(accountID string) decimal.Decimal {
	var units decimal.Decimal
	for _, h := range s.Holdings {
		if accountID == "" || h.AccountID == accountID {
			units = units.Add(h.Quantity)
		}
	}
	return units
}

// HasActivity reports whether the security has any trade history or open lots.
func (s *Security) HasActivity() bool {
	return len(s.Holdings) > 0 || len(s.BuyHistory) > 0 || len(s.SellHistory) > 0
}

// clone deep-copies the security so reports can run on a consistent snapshot
// while trades keep mutating the stored record.
func (s *Security) clone() *Security {
	dup := *s
	dup.Holdings = make([]*Holding, len(s.Holdings))
	for i, h := range s.Holdings {
		hdup := *h
		dup.Holdings[i] = &hdup
	}
	dup.BuyHistory = append([]BuyRecord(nil), s.BuyHistory...)
	dup.SellHistory = append([]SellRecord(nil), s.SellHistory...)
	return &dup
}
