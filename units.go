package stockfolio

import "github.com/shopspring/decimal"

// UnitTracker replays a security's buy and sell history to answer "how many
// units were held as of this date", optionally for a single account.
//
// Queries must be non-decreasing, like a Cursor's. A transaction dated
// exactly on the query date is not counted yet: daily valuation bars reflect
// the position going into the day.
type UnitTracker struct {
	sec       *Security
	accountID string // empty means all accounts
	units     decimal.Decimal
	buyIdx    int
	sellIdx   int
}

// NewUnitTracker builds a tracker for one security. Use accountID "" for no
// account filtering.
func NewUnitTracker(sec *Security, accountID string) *UnitTracker {
	return &UnitTracker{sec: sec, accountID: accountID}
}

// UnitsAt advances the tracker and returns the units held before the given
// date. The result can go negative on inconsistent data; callers surface
// that, the tracker does not clamp.
func (u *UnitTracker) UnitsAt(on Date) decimal.Decimal {
	for u.buyIdx < len(u.sec.BuyHistory) {
		entry := u.sec.BuyHistory[u.buyIdx]
		if !entry.Date.Before(on) {
			break
		}
		if u.accountID == "" || u.accountID == entry.AccountID {
			u.units = u.units.Add(entry.Quantity)
		}
		u.buyIdx++
	}

	for u.sellIdx < len(u.sec.SellHistory) {
		entry := u.sec.SellHistory[u.sellIdx]
		if !entry.SellDate.Before(on) {
			break
		}
		if u.accountID == "" || u.accountID == entry.AccountID {
			u.units = u.units.Sub(entry.Quantity)
		}
		u.sellIdx++
	}

	return u.units
}
