package stockfolio

import (
	"testing"
	"time"
)

func trackerSecurity() *Security {
	sec := NewSecurity("BHP", "BHP Group", "AUD", "ASX", "Stock")
	sec.BuyHistory = []BuyRecord{
		{AccountID: "a", Date: NewDate(2025, time.January, 10), Quantity: mustD("100")},
		{AccountID: "b", Date: NewDate(2025, time.February, 1), Quantity: mustD("50")},
		{AccountID: "a", Date: NewDate(2025, time.March, 5), Quantity: mustD("30")},
	}
	sec.SellHistory = []SellRecord{
		{AccountID: "a", SellDate: NewDate(2025, time.February, 20), Quantity: mustD("40")},
	}
	return sec
}

func TestUnitTracker_SameDayLag(t *testing.T) {
	u := NewUnitTracker(trackerSecurity(), "")

	// A transaction dated on the query date is not counted yet.
	requireDecimal(t, "0", u.UnitsAt(NewDate(2025, time.January, 10)))
	requireDecimal(t, "100", u.UnitsAt(NewDate(2025, time.January, 11)))
	requireDecimal(t, "100", u.UnitsAt(NewDate(2025, time.February, 1)))
	requireDecimal(t, "150", u.UnitsAt(NewDate(2025, time.February, 2)))
	requireDecimal(t, "150", u.UnitsAt(NewDate(2025, time.February, 20)))
	requireDecimal(t, "110", u.UnitsAt(NewDate(2025, time.February, 21)))
	requireDecimal(t, "140", u.UnitsAt(NewDate(2025, time.April, 1)))
}

func TestUnitTracker_AccountFilter(t *testing.T) {
	end := NewDate(2025, time.April, 1)

	a := NewUnitTracker(trackerSecurity(), "a")
	requireDecimal(t, "90", a.UnitsAt(end))

	b := NewUnitTracker(trackerSecurity(), "b")
	requireDecimal(t, "50", b.UnitsAt(end))

	missing := NewUnitTracker(trackerSecurity(), "zzz")
	requireDecimal(t, "0", missing.UnitsAt(end))
}

func TestUnitTracker_NegativeIsNotClamped(t *testing.T) {
	sec := NewSecurity("BHP", "BHP Group", "AUD", "ASX", "Stock")
	sec.SellHistory = []SellRecord{
		{AccountID: "a", SellDate: NewDate(2025, time.January, 1), Quantity: mustD("10")},
	}

	u := NewUnitTracker(sec, "")
	requireDecimal(t, "-10", u.UnitsAt(NewDate(2025, time.June, 1)))
}
