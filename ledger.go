package stockfolio

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// TradeSide identifies the direction of a trade.
type TradeSide string

const (
	BuySide  TradeSide = "BUY"
	SellSide TradeSide = "SELL"
)

// Sentinel errors for trade validation. All of them abort the trade before
// any record is touched.
var (
	ErrZeroQuantity         = errors.New("trade quantity must be greater than zero")
	ErrUnknownSymbol        = errors.New("unknown security symbol")
	ErrUnknownAccount       = errors.New("unknown account id")
	ErrBadTaxRate           = errors.New("GST percent setting is not a number")
	ErrInsufficientQuantity = errors.New("insufficient quantity")
)

// Trade is a validated buy or sell order against one security.
type Trade struct {
	AccountID string
	Symbol    string
	Side      TradeSide
	Date      Date
	Quantity  decimal.Decimal
	Price     decimal.Decimal
	Brokerage decimal.Decimal
}

var oneHundred = decimal.NewFromInt(100)
var two = decimal.NewFromInt(2)

// recordBuy appends a new open lot and its immutable buy record to the
// security. gstPercent is the tax applied on brokerage, in percent.
func recordBuy(sec *Security, t Trade, gstPercent decimal.Decimal, tradeID string) {
	gst := t.Brokerage.Mul(gstPercent).Div(oneHundred)
	total := t.Quantity.Mul(t.Price).Add(t.Brokerage).Add(gst)

	sec.Holdings = append(sec.Holdings, &Holding{
		AccountID: t.AccountID,
		Date:      t.Date,
		Quantity:  t.Quantity,
		Price:     t.Price,
		Brokerage: t.Brokerage,
		GST:       gst,
	})
	sec.BuyHistory = append(sec.BuyHistory, BuyRecord{
		TradeID:   tradeID,
		AccountID: t.AccountID,
		Date:      t.Date,
		Quantity:  t.Quantity,
		Price:     t.Price,
		Brokerage: t.Brokerage,
		GST:       gst,
		Total:     total,
	})

	sortBuyHistory(sec)
}

// recordSell consumes open lots oldest-first until the sell quantity is
// covered, writing one sell record per consumed lot.
//
// The availability check and the consumption run against the same candidate
// slice, so a failed sell leaves the security untouched.
func recordSell(sec *Security, t Trade, gstPercent decimal.Decimal, tradeID string) error {
	// Candidate lots: same account, not acquired after the sell date, oldest
	// first. Lots bought after the sell date must not back a sell.
	candidates := make([]*Holding, 0, len(sec.Holdings))
	for _, h := range sec.Holdings {
		if h.AccountID == t.AccountID && !h.Date.After(t.Date) {
			candidates = append(candidates, h)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Date.Before(candidates[j].Date)
	})

	var owned decimal.Decimal
	for _, h := range candidates {
		owned = owned.Add(h.Quantity)
	}
	if owned.LessThan(t.Quantity) {
		return fmt.Errorf("%w: required %s, owned %s", ErrInsufficientQuantity, t.Quantity, owned)
	}

	totalSellGST := t.Brokerage.Mul(gstPercent).Div(oneHundred)

	remaining := t.Quantity
	for _, lot := range candidates {
		if !remaining.IsPositive() {
			break
		}
		consumed := decimal.Min(lot.Quantity, remaining)
		remaining = remaining.Sub(consumed)

		// buyRatio apportions the lot's own remaining fees; sellRatio
		// apportions the sell trade's fees across its split records.
		buyRatio := consumed.Div(lot.Quantity)
		sellRatio := consumed.Div(t.Quantity)

		appliedBuyBrokerage := buyRatio.Mul(lot.Brokerage)
		appliedSellBrokerage := sellRatio.Mul(t.Brokerage)
		appliedBuyGST := buyRatio.Mul(lot.GST)
		appliedSellGST := sellRatio.Mul(totalSellGST)

		cost := consumed.Mul(lot.Price).Add(appliedBuyBrokerage).Add(appliedBuyGST)
		proceeds := consumed.Mul(t.Price).Sub(appliedSellBrokerage).Sub(appliedSellGST)
		profitOrLoss := proceeds.Sub(cost)

		// The CGT discount (50%) applies only to a gain on a lot held
		// strictly longer than one year. Losses are never discounted.
		discount := profitOrLoss.IsPositive() && t.Date.After(lot.Date.AddYear(1))
		capitalGainOrLoss := profitOrLoss
		if discount {
			capitalGainOrLoss = profitOrLoss.Div(two)
		}

		sec.SellHistory = append(sec.SellHistory, SellRecord{
			TradeID:              tradeID,
			AccountID:            t.AccountID,
			BuyDate:              lot.Date,
			SellDate:             t.Date,
			Quantity:             consumed,
			BuyPrice:             lot.Price,
			SellPrice:            t.Price,
			AppliedBuyBrokerage:  appliedBuyBrokerage,
			AppliedSellBrokerage: appliedSellBrokerage,
			AppliedBuyGST:        appliedBuyGST,
			AppliedSellGST:       appliedSellGST,
			Total:                proceeds,
			ProfitOrLoss:         profitOrLoss,
			CapitalGainOrLoss:    capitalGainOrLoss,
			CGTDiscount:          discount,
		})

		if consumed.Equal(lot.Quantity) {
			removeHolding(sec, lot)
		} else {
			// Shrink the lot; its unapplied fees travel out proportionally.
			keep := decimal.NewFromInt(1).Sub(buyRatio)
			lot.Quantity = lot.Quantity.Sub(consumed)
			lot.Brokerage = lot.Brokerage.Mul(keep)
			lot.GST = lot.GST.Mul(keep)
		}
	}

	sortSellHistory(sec)
	return nil
}

func removeHolding(sec *Security, target *Holding) {
	for i, h := range sec.Holdings {
		if h == target {
			sec.Holdings = append(sec.Holdings[:i], sec.Holdings[i+1:]...)
			return
		}
	}
}

func sortBuyHistory(sec *Security) {
	sort.SliceStable(sec.BuyHistory, func(i, j int) bool {
		return sec.BuyHistory[i].Date.Before(sec.BuyHistory[j].Date)
	})
}

func sortSellHistory(sec *Security) {
	sort.SliceStable(sec.SellHistory, func(i, j int) bool {
		return sec.SellHistory[i].SellDate.Before(sec.SellHistory[j].SellDate)
	})
}
